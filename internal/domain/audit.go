package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntityType identifies which catalog or store an audit record refers to.
type EntityType string

const (
	EntityTypeLanguage    EntityType = "LANGUAGE"
	EntityTypeDomain      EntityType = "DOMAIN"
	EntityTypeSource      EntityType = "SOURCE"
	EntityTypeMethod      EntityType = "METHOD"
	EntityTypeMetric      EntityType = "METRIC"
	EntityTypeDirection   EntityType = "DIRECTION"
	EntityTypeSentence    EntityType = "SENTENCE"
	EntityTypeTranslation EntityType = "TRANSLATION"
	EntityTypeScore       EntityType = "SCORE"
)

// AuditAction is the kind of mutation recorded.
type AuditAction string

const (
	AuditActionCreate     AuditAction = "CREATE"
	AuditActionRevise     AuditAction = "REVISE"
	AuditActionDeactivate AuditAction = "DEACTIVATE"
)

// AuditRecord is one append-only entry in the mutation trail. Actor is the
// caller identity extracted from the request credentials; Changes is a
// free-form diff persisted as JSONB.
type AuditRecord struct {
	ID         uuid.UUID
	Actor      string
	EntityType EntityType
	EntityUID  *int64
	Action     AuditAction
	Changes    map[string]any
	CreatedAt  time.Time
}
