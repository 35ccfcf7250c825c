// Package refcatalog implements the reference catalog business logic:
// languages, text domains, sources, methods, metrics and directions.
//
// Every mutation runs in a transaction, appends an audit record attributed
// to the caller, and preserves the version history of the touched entity.
package refcatalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
	"github.com/bhashasetu/corpus-catalog/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

// catalogRepo is the versioned-entity contract every catalog repository
// satisfies.
type catalogRepo[T any] interface {
	Create(ctx context.Context, payload T) (*T, error)
	Revise(ctx context.Context, uid int64, payload T) (*T, error)
	Deactivate(ctx context.Context, uid int64) error
	GetActive(ctx context.Context, uid int64) (*T, error)
	GetVersion(ctx context.Context, uid int64, version int) (*T, error)
	ListHistory(ctx context.Context, uid int64) ([]T, error)
	ListActive(ctx context.Context) ([]T, error)
	GetActiveBy(ctx context.Context, column string, value any) (*T, error)
	CountActiveBy(ctx context.Context, column string, value any) (int, error)
}

type directionRepo interface {
	catalogRepo[domain.Direction]
	CountActiveByLanguage(ctx context.Context, languageUID int64) (int, error)
}

type sentenceCounter interface {
	CountActiveBy(ctx context.Context, column string, value any) (int, error)
}

type translationCounter interface {
	CountActiveBy(ctx context.Context, column string, value any) (int, error)
}

type scoreCounter interface {
	CountActiveBy(ctx context.Context, column string, value any) (int, error)
}

type auditRepo interface {
	Log(ctx context.Context, record domain.AuditRecord) error
	GetByEntity(ctx context.Context, entityType domain.EntityType, entityUID int64, limit int) ([]domain.AuditRecord, error)
	GetByActor(ctx context.Context, actor string, limit, offset int) ([]domain.AuditRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the reference catalog business logic.
type Service struct {
	log          *slog.Logger
	languages    catalogRepo[domain.Language]
	domains      catalogRepo[domain.TextDomain]
	sources      catalogRepo[domain.Source]
	methods      catalogRepo[domain.Method]
	metrics      catalogRepo[domain.Metric]
	directions   directionRepo
	sentences    sentenceCounter
	translations translationCounter
	scores       scoreCounter
	audit        auditRepo
	tx           txManager
}

// NewService creates a new reference catalog service.
func NewService(
	logger *slog.Logger,
	languages catalogRepo[domain.Language],
	domains catalogRepo[domain.TextDomain],
	sources catalogRepo[domain.Source],
	methods catalogRepo[domain.Method],
	metrics catalogRepo[domain.Metric],
	directions directionRepo,
	sentences sentenceCounter,
	translations translationCounter,
	scores scoreCounter,
	audit auditRepo,
	tx txManager,
) *Service {
	return &Service{
		log:          logger.With("service", "refcatalog"),
		languages:    languages,
		domains:      domains,
		sources:      sources,
		methods:      methods,
		metrics:      metrics,
		directions:   directions,
		sentences:    sentences,
		translations: translations,
		scores:       scores,
		audit:        audit,
		tx:           tx,
	}
}

// ---------------------------------------------------------------------------
// Generic mutation flows
// ---------------------------------------------------------------------------

type versioned interface {
	Identity() int64
}

// createOne inserts version 1 of a new identity and audits it, both inside
// one transaction.
func createOne[T versioned](ctx context.Context, s *Service, repo catalogRepo[T], entity domain.EntityType, payload T, changes map[string]any) (*T, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var created *T
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = repo.Create(txCtx, payload)
		if err != nil {
			return fmt.Errorf("create %s: %w", entityName(entity), err)
		}

		uid := (*created).Identity()
		if err := s.audit.Log(txCtx, domain.AuditRecord{
			Actor:      actor,
			EntityType: entity,
			EntityUID:  &uid,
			Action:     domain.AuditActionCreate,
			Changes:    changes,
		}); err != nil {
			return fmt.Errorf("audit create %s: %w", entityName(entity), err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "catalog entity created",
		"entity", entityName(entity), "uid", (*created).Identity(), "actor", actor)
	return created, nil
}

// reviseOne appends a new version for uid, deactivating the previous one,
// and audits the revision.
func reviseOne[T versioned](ctx context.Context, s *Service, repo catalogRepo[T], entity domain.EntityType, uid int64, payload T, changes map[string]any) (*T, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var revised *T
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		revised, err = repo.Revise(txCtx, uid, payload)
		if err != nil {
			return fmt.Errorf("revise %s %d: %w", entityName(entity), uid, err)
		}

		if err := s.audit.Log(txCtx, domain.AuditRecord{
			Actor:      actor,
			EntityType: entity,
			EntityUID:  &uid,
			Action:     domain.AuditActionRevise,
			Changes:    changes,
		}); err != nil {
			return fmt.Errorf("audit revise %s %d: %w", entityName(entity), uid, err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "catalog entity revised",
		"entity", entityName(entity), "uid", uid, "actor", actor)
	return revised, nil
}

// deactivateOne retires the active version of uid. check runs inside the
// transaction before the flip and blocks the deactivation of entities that
// still have active dependents.
func deactivateOne[T versioned](ctx context.Context, s *Service, repo catalogRepo[T], entity domain.EntityType, uid int64, check func(ctx context.Context) error) error {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if check != nil {
			if err := check(txCtx); err != nil {
				return err
			}
		}

		if err := repo.Deactivate(txCtx, uid); err != nil {
			return fmt.Errorf("deactivate %s %d: %w", entityName(entity), uid, err)
		}

		if err := s.audit.Log(txCtx, domain.AuditRecord{
			Actor:      actor,
			EntityType: entity,
			EntityUID:  &uid,
			Action:     domain.AuditActionDeactivate,
		}); err != nil {
			return fmt.Errorf("audit deactivate %s %d: %w", entityName(entity), uid, err)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	s.log.InfoContext(ctx, "catalog entity deactivated",
		"entity", entityName(entity), "uid", uid, "actor", actor)
	return nil
}

// dependentsBlock converts a non-zero dependent count into a conflict error.
func dependentsBlock(count int, entity string, uid int64, dependent string) error {
	if count > 0 {
		return fmt.Errorf("%s %d still referenced by %d active %s(s): %w",
			entity, uid, count, dependent, domain.ErrConflict)
	}
	return nil
}

func entityName(entity domain.EntityType) string {
	return strings.ToLower(string(entity))
}
