package corpus

import (
	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// AddSentenceInput holds the parameters for adding a sentence.
type AddSentenceInput struct {
	Text        string
	LanguageUID int64
	SourceUID   *int64
	DomainUID   *int64
}

// Validate checks all fields and collects all errors.
func (i *AddSentenceInput) Validate(maxTextLength int) error {
	var errs []domain.FieldError

	if i.Text == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	} else if maxTextLength > 0 && len(i.Text) > maxTextLength {
		errs = append(errs, domain.FieldError{Field: "text", Message: "too long"})
	}
	if i.LanguageUID <= 0 {
		errs = append(errs, domain.FieldError{Field: "language_uid", Message: "required"})
	}
	if i.SourceUID != nil && *i.SourceUID <= 0 {
		errs = append(errs, domain.FieldError{Field: "source_uid", Message: "must be positive"})
	}
	if i.DomainUID != nil && *i.DomainUID <= 0 {
		errs = append(errs, domain.FieldError{Field: "domain_uid", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AddTranslationInput holds the parameters for linking two sentences.
type AddTranslationInput struct {
	SourceID      int64
	TargetID      int64
	DirectionUID  int64
	MethodUID     int64
	MethodVersion *string
	IsSynthetic   bool
}

// Validate checks all fields and collects all errors.
func (i *AddTranslationInput) Validate() error {
	var errs []domain.FieldError

	if i.SourceID <= 0 {
		errs = append(errs, domain.FieldError{Field: "source_id", Message: "required"})
	}
	if i.TargetID <= 0 {
		errs = append(errs, domain.FieldError{Field: "target_id", Message: "required"})
	}
	if i.SourceID > 0 && i.SourceID == i.TargetID {
		errs = append(errs, domain.FieldError{Field: "target_id", Message: "must differ from source_id"})
	}
	if i.DirectionUID <= 0 {
		errs = append(errs, domain.FieldError{Field: "direction_uid", Message: "required"})
	}
	if i.MethodUID <= 0 {
		errs = append(errs, domain.FieldError{Field: "method_uid", Message: "required"})
	}
	if i.MethodVersion != nil && len(*i.MethodVersion) > 200 {
		errs = append(errs, domain.FieldError{Field: "method_version", Message: "too long (max 200)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AddScoreInput holds the parameters for scoring a translation with one
// metric. At least one of ScoreNum/ScoreTxt must be set.
type AddScoreInput struct {
	TranslationID int64
	MetricUID     int64
	ScoreNum      *float64
	ScoreTxt      *string
}

// Validate checks all fields and collects all errors.
func (i *AddScoreInput) Validate() error {
	var errs []domain.FieldError

	if i.TranslationID <= 0 {
		errs = append(errs, domain.FieldError{Field: "translation_id", Message: "required"})
	}
	if i.MetricUID <= 0 {
		errs = append(errs, domain.FieldError{Field: "metric_uid", Message: "required"})
	}
	if i.ScoreTxt != nil && len(*i.ScoreTxt) > 2000 {
		errs = append(errs, domain.FieldError{Field: "score_txt", Message: "too long (max 2000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SearchInput holds filtering and pagination parameters for sentence search.
type SearchInput struct {
	LanguageUID *int64
	DomainUID   *int64
	SourceUID   *int64
	Search      *string
	Limit       int
	Offset      int
}

// Validate checks all fields and collects all errors.
func (i *SearchInput) Validate() error {
	var errs []domain.FieldError

	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be >= 0"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
