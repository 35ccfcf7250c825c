package ingest

import (
	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// SentenceItem is one monolingual sentence in a batch.
type SentenceItem struct {
	Text        string
	LanguageUID int64
}

// LoadSentencesInput holds the parameters for a monolingual batch load.
type LoadSentencesInput struct {
	Items     []SentenceItem
	SourceUID *int64
	DomainUID *int64
	// AllOrNothing makes the whole batch one transaction: any failing item
	// rolls back every other item.
	AllOrNothing bool
}

// Validate checks all fields and collects all errors.
func (i *LoadSentencesInput) Validate(maxRows int) error {
	var errs []domain.FieldError

	if len(i.Items) == 0 {
		errs = append(errs, domain.FieldError{Field: "items", Message: "required (at least 1)"})
	} else if maxRows > 0 && len(i.Items) > maxRows {
		errs = append(errs, domain.FieldError{Field: "items", Message: "too many"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// PairItem is one bilingual sentence pair in a batch, with an optional
// alignment score.
type PairItem struct {
	SourceText string
	TargetText string
	Score      *float64
}

// LoadPairsInput holds the parameters for a bilingual batch load.
type LoadPairsInput struct {
	Items        []PairItem
	DirectionUID int64
	MethodUID    int64
	// MetricUID receives the per-pair Score when set.
	MetricUID    *int64
	SourceUID    *int64
	DomainUID    *int64
	IsSynthetic  bool
	AllOrNothing bool
}

// Validate checks all fields and collects all errors.
func (i *LoadPairsInput) Validate(maxRows int) error {
	var errs []domain.FieldError

	if len(i.Items) == 0 {
		errs = append(errs, domain.FieldError{Field: "items", Message: "required (at least 1)"})
	} else if maxRows > 0 && len(i.Items) > maxRows {
		errs = append(errs, domain.FieldError{Field: "items", Message: "too many"})
	}
	if i.DirectionUID <= 0 {
		errs = append(errs, domain.FieldError{Field: "direction_uid", Message: "required"})
	}
	if i.MethodUID <= 0 {
		errs = append(errs, domain.FieldError{Field: "method_uid", Message: "required"})
	}
	if i.MetricUID != nil && *i.MetricUID <= 0 {
		errs = append(errs, domain.FieldError{Field: "metric_uid", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ItemResult reports the outcome of one batch item.
type ItemResult struct {
	Index int
	// SentenceID / TranslationID identify what the item produced; zero when
	// the item failed.
	SentenceID    int64
	TranslationID int64
	// Deduplicated is set when the sentence already existed and the
	// original was reused.
	Deduplicated bool
	Err          error
}

// BatchResult summarizes a batch load.
type BatchResult struct {
	Total     int
	Succeeded int
	Failed    int
	Items     []ItemResult
}

// collect tallies the per-item outcomes into the summary counters.
func (r *BatchResult) collect() {
	r.Total = len(r.Items)
	r.Succeeded = 0
	r.Failed = 0
	for _, item := range r.Items {
		if item.Err != nil {
			r.Failed++
		} else {
			r.Succeeded++
		}
	}
}
