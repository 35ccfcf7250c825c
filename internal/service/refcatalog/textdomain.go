package refcatalog

import (
	"context"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// CreateDomain registers a new text domain and returns version 1.
func (s *Service) CreateDomain(ctx context.Context, input DomainInput) (*domain.TextDomain, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	payload := domain.TextDomain{Code: input.Code, Description: input.Description}
	return createOne(ctx, s, s.domains, domain.EntityTypeDomain, payload, map[string]any{
		"code": input.Code,
	})
}

// ReviseDomain appends a new version for an existing text domain identity.
func (s *Service) ReviseDomain(ctx context.Context, uid int64, input DomainInput) (*domain.TextDomain, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	payload := domain.TextDomain{Code: input.Code, Description: input.Description}
	return reviseOne(ctx, s, s.domains, domain.EntityTypeDomain, uid, payload, map[string]any{
		"code": input.Code,
	})
}

// DeactivateDomain retires a text domain. It refuses while any active
// sentence still references the identity.
func (s *Service) DeactivateDomain(ctx context.Context, uid int64) error {
	return deactivateOne(ctx, s, s.domains, domain.EntityTypeDomain, uid, func(txCtx context.Context) error {
		count, err := s.sentences.CountActiveBy(txCtx, "domain_uid", uid)
		if err != nil {
			return err
		}
		return dependentsBlock(count, "domain", uid, "sentence")
	})
}

// GetDomain returns the active version of a text domain.
func (s *Service) GetDomain(ctx context.Context, uid int64) (*domain.TextDomain, error) {
	return s.domains.GetActive(ctx, uid)
}

// GetDomainVersion returns one historical version of a text domain.
func (s *Service) GetDomainVersion(ctx context.Context, uid int64, version int) (*domain.TextDomain, error) {
	return s.domains.GetVersion(ctx, uid, version)
}

// GetDomainHistory returns every version of a text domain, oldest first.
func (s *Service) GetDomainHistory(ctx context.Context, uid int64) ([]domain.TextDomain, error) {
	return s.domains.ListHistory(ctx, uid)
}

// LookupDomain finds the active text domain with the given code.
func (s *Service) LookupDomain(ctx context.Context, code string) (*domain.TextDomain, error) {
	if code == "" {
		return nil, domain.NewValidationError("code", "required")
	}
	return s.domains.GetActiveBy(ctx, "code", code)
}

// ListDomains returns all active text domains.
func (s *Service) ListDomains(ctx context.Context) ([]domain.TextDomain, error) {
	return s.domains.ListActive(ctx)
}
