package refcatalog

import (
	"net/url"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// LanguageInput holds the payload for creating or revising a language.
type LanguageInput struct {
	Code    string
	Dialect *string
	Name    string
}

// Validate checks all fields and collects all errors.
func (i *LanguageInput) Validate() error {
	var errs []domain.FieldError

	if i.Code == "" {
		errs = append(errs, domain.FieldError{Field: "code", Message: "required"})
	} else if len(i.Code) > 16 {
		errs = append(errs, domain.FieldError{Field: "code", Message: "too long (max 16)"})
	}
	if i.Dialect != nil && len(*i.Dialect) > 64 {
		errs = append(errs, domain.FieldError{Field: "dialect", Message: "too long (max 64)"})
	}
	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long (max 200)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// DomainInput holds the payload for creating or revising a text domain.
type DomainInput struct {
	Code        string
	Description *string
}

// Validate checks all fields and collects all errors.
func (i *DomainInput) Validate() error {
	var errs []domain.FieldError

	if i.Code == "" {
		errs = append(errs, domain.FieldError{Field: "code", Message: "required"})
	} else if len(i.Code) > 64 {
		errs = append(errs, domain.FieldError{Field: "code", Message: "too long (max 64)"})
	}
	if i.Description != nil && len(*i.Description) > 2000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long (max 2000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SourceInput holds the payload for creating or revising a source.
type SourceInput struct {
	Type     string
	Name     string
	Author   *string
	URL      *string
	Metadata map[string]any
}

// Validate checks all fields and collects all errors.
func (i *SourceInput) Validate() error {
	var errs []domain.FieldError

	if i.Type == "" {
		errs = append(errs, domain.FieldError{Field: "type", Message: "required"})
	} else if len(i.Type) > 64 {
		errs = append(errs, domain.FieldError{Field: "type", Message: "too long (max 64)"})
	}
	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 500 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long (max 500)"})
	}
	if i.Author != nil && len(*i.Author) > 500 {
		errs = append(errs, domain.FieldError{Field: "author", Message: "too long (max 500)"})
	}
	if i.URL != nil && *i.URL != "" {
		if _, err := url.ParseRequestURI(*i.URL); err != nil {
			errs = append(errs, domain.FieldError{Field: "url", Message: "invalid URL"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// MethodInput holds the payload for creating or revising a translation method.
type MethodInput struct {
	Name        string
	Description *string
	Provider    *string
}

// Validate checks all fields and collects all errors.
func (i *MethodInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long (max 200)"})
	}
	if i.Description != nil && len(*i.Description) > 2000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long (max 2000)"})
	}
	if i.Provider != nil && len(*i.Provider) > 200 {
		errs = append(errs, domain.FieldError{Field: "provider", Message: "too long (max 200)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// MetricInput holds the payload for creating or revising a scoring metric.
type MetricInput struct {
	Name        string
	Description *string
}

// Validate checks all fields and collects all errors.
func (i *MetricInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long (max 200)"})
	}
	if i.Description != nil && len(*i.Description) > 2000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long (max 2000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// DirectionInput holds the payload for creating or revising a direction.
type DirectionInput struct {
	Code          string
	SourceLangUID int64
	TargetLangUID int64
	Description   *string
}

// Validate checks all fields and collects all errors.
func (i *DirectionInput) Validate() error {
	var errs []domain.FieldError

	if i.Code == "" {
		errs = append(errs, domain.FieldError{Field: "code", Message: "required"})
	} else if len(i.Code) > 64 {
		errs = append(errs, domain.FieldError{Field: "code", Message: "too long (max 64)"})
	}
	if i.SourceLangUID <= 0 {
		errs = append(errs, domain.FieldError{Field: "source_lang_uid", Message: "required"})
	}
	if i.TargetLangUID <= 0 {
		errs = append(errs, domain.FieldError{Field: "target_lang_uid", Message: "required"})
	}
	if i.SourceLangUID > 0 && i.SourceLangUID == i.TargetLangUID {
		errs = append(errs, domain.FieldError{Field: "target_lang_uid", Message: "must differ from source_lang_uid"})
	}
	if i.Description != nil && len(*i.Description) > 2000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long (max 2000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
