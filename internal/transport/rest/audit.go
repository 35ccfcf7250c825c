package rest

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
	"github.com/bhashasetu/corpus-catalog/internal/service/refcatalog"
)

type auditRecordResponse struct {
	ID         string         `json:"id"`
	Actor      string         `json:"actor"`
	EntityType string         `json:"entityType"`
	EntityUID  *int64         `json:"entityUid,omitempty"`
	Action     string         `json:"action"`
	Changes    map[string]any `json:"changes,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func toAuditRecords(records []domain.AuditRecord) []auditRecordResponse {
	out := make([]auditRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, auditRecordResponse{
			ID:         rec.ID.String(),
			Actor:      rec.Actor,
			EntityType: string(rec.EntityType),
			EntityUID:  rec.EntityUID,
			Action:     string(rec.Action),
			Changes:    rec.Changes,
			CreatedAt:  rec.CreatedAt,
		})
	}
	return out
}

// RegisterAuditRoutes mounts the audit trail reads under /v1/audit.
func RegisterAuditRoutes(mux *http.ServeMux, svc *refcatalog.Service, logger *slog.Logger) {
	log := logger.With("handler", "audit")

	mux.HandleFunc("GET /v1/audit/entities/{entityType}/{uid}", func(w http.ResponseWriter, r *http.Request) {
		entityType := domain.EntityType(strings.ToUpper(r.PathValue("entityType")))
		uid, err := pathID(r, "uid")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid uid")
			return
		}
		records, err := svc.GetAuditTrail(r.Context(), entityType, uid, queryInt(r, "limit", 0))
		if err != nil {
			respondError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAuditRecords(records))
	})

	mux.HandleFunc("GET /v1/audit/actors/{actor}", func(w http.ResponseWriter, r *http.Request) {
		records, err := svc.GetActorTrail(r.Context(), r.PathValue("actor"),
			queryInt(r, "limit", 0), queryInt(r, "offset", 0))
		if err != nil {
			respondError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAuditRecords(records))
	})
}
