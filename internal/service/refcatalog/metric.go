package refcatalog

import (
	"context"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// CreateMetric registers a new scoring metric and returns version 1.
func (s *Service) CreateMetric(ctx context.Context, input MetricInput) (*domain.Metric, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	payload := domain.Metric{Name: input.Name, Description: input.Description}
	return createOne(ctx, s, s.metrics, domain.EntityTypeMetric, payload, map[string]any{
		"name": input.Name,
	})
}

// ReviseMetric appends a new version for an existing metric identity.
func (s *Service) ReviseMetric(ctx context.Context, uid int64, input MetricInput) (*domain.Metric, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	payload := domain.Metric{Name: input.Name, Description: input.Description}
	return reviseOne(ctx, s, s.metrics, domain.EntityTypeMetric, uid, payload, map[string]any{
		"name": input.Name,
	})
}

// DeactivateMetric retires a metric. It refuses while any active score still
// references the identity.
func (s *Service) DeactivateMetric(ctx context.Context, uid int64) error {
	return deactivateOne(ctx, s, s.metrics, domain.EntityTypeMetric, uid, func(txCtx context.Context) error {
		count, err := s.scores.CountActiveBy(txCtx, "metric_uid", uid)
		if err != nil {
			return err
		}
		return dependentsBlock(count, "metric", uid, "score")
	})
}

// GetMetric returns the active version of a metric.
func (s *Service) GetMetric(ctx context.Context, uid int64) (*domain.Metric, error) {
	return s.metrics.GetActive(ctx, uid)
}

// GetMetricVersion returns one historical version of a metric.
func (s *Service) GetMetricVersion(ctx context.Context, uid int64, version int) (*domain.Metric, error) {
	return s.metrics.GetVersion(ctx, uid, version)
}

// GetMetricHistory returns every version of a metric, oldest first.
func (s *Service) GetMetricHistory(ctx context.Context, uid int64) ([]domain.Metric, error) {
	return s.metrics.ListHistory(ctx, uid)
}

// LookupMetric finds the active metric with the given name.
func (s *Service) LookupMetric(ctx context.Context, name string) (*domain.Metric, error) {
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}
	return s.metrics.GetActiveBy(ctx, "name", name)
}

// ListMetrics returns all active metrics.
func (s *Service) ListMetrics(ctx context.Context) ([]domain.Metric, error) {
	return s.metrics.ListActive(ctx)
}
