package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Corpus.MaxTextLength <= 0 {
		return fmt.Errorf("corpus.max_text_length must be > 0 (got %d)", c.Corpus.MaxTextLength)
	}
	if c.Corpus.SearchDefaultLimit <= 0 {
		return fmt.Errorf("corpus.search_default_limit must be > 0 (got %d)", c.Corpus.SearchDefaultLimit)
	}
	if c.Corpus.SearchMaxLimit < c.Corpus.SearchDefaultLimit {
		return fmt.Errorf("corpus.search_max_limit must be >= search_default_limit (got %d < %d)",
			c.Corpus.SearchMaxLimit, c.Corpus.SearchDefaultLimit)
	}

	if c.Ingest.BatchSize <= 0 {
		return fmt.Errorf("ingest.batch_size must be > 0 (got %d)", c.Ingest.BatchSize)
	}
	if c.Ingest.Workers <= 0 {
		return fmt.Errorf("ingest.workers must be > 0 (got %d)", c.Ingest.Workers)
	}
	if c.Ingest.MaxBatchRows < c.Ingest.BatchSize {
		return fmt.Errorf("ingest.max_batch_rows must be >= batch_size (got %d < %d)",
			c.Ingest.MaxBatchRows, c.Ingest.BatchSize)
	}

	return nil
}
