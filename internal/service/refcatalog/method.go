package refcatalog

import (
	"context"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// CreateMethod registers a new translation method and returns version 1.
func (s *Service) CreateMethod(ctx context.Context, input MethodInput) (*domain.Method, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	payload := domain.Method{Name: input.Name, Description: input.Description, Provider: input.Provider}
	return createOne(ctx, s, s.methods, domain.EntityTypeMethod, payload, map[string]any{
		"name": input.Name,
	})
}

// ReviseMethod appends a new version for an existing method identity.
func (s *Service) ReviseMethod(ctx context.Context, uid int64, input MethodInput) (*domain.Method, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	payload := domain.Method{Name: input.Name, Description: input.Description, Provider: input.Provider}
	return reviseOne(ctx, s, s.methods, domain.EntityTypeMethod, uid, payload, map[string]any{
		"name": input.Name,
	})
}

// DeactivateMethod retires a method. It refuses while any active translation
// still references the identity.
func (s *Service) DeactivateMethod(ctx context.Context, uid int64) error {
	return deactivateOne(ctx, s, s.methods, domain.EntityTypeMethod, uid, func(txCtx context.Context) error {
		count, err := s.translations.CountActiveBy(txCtx, "method_uid", uid)
		if err != nil {
			return err
		}
		return dependentsBlock(count, "method", uid, "translation")
	})
}

// GetMethod returns the active version of a method.
func (s *Service) GetMethod(ctx context.Context, uid int64) (*domain.Method, error) {
	return s.methods.GetActive(ctx, uid)
}

// GetMethodVersion returns one historical version of a method.
func (s *Service) GetMethodVersion(ctx context.Context, uid int64, version int) (*domain.Method, error) {
	return s.methods.GetVersion(ctx, uid, version)
}

// GetMethodHistory returns every version of a method, oldest first.
func (s *Service) GetMethodHistory(ctx context.Context, uid int64) ([]domain.Method, error) {
	return s.methods.ListHistory(ctx, uid)
}

// LookupMethod finds the active method with the given name.
func (s *Service) LookupMethod(ctx context.Context, name string) (*domain.Method, error) {
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}
	return s.methods.GetActiveBy(ctx, "name", name)
}

// ListMethods returns all active methods.
func (s *Service) ListMethods(ctx context.Context) ([]domain.Method, error) {
	return s.methods.ListActive(ctx)
}
