package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
	"github.com/bhashasetu/corpus-catalog/internal/service/refcatalog"
)

// versionMetaResponse is the identity/version envelope shared by every
// catalog and corpus response.
type versionMetaResponse struct {
	UID           int64     `json:"uid"`
	Version       int       `json:"version"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedOn time.Time `json:"lastUpdatedOn"`
}

func toVersionMeta(m domain.VersionMeta) versionMetaResponse {
	return versionMetaResponse{
		UID:           m.UID,
		Version:       m.Version,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		LastUpdatedOn: m.LastUpdatedOn,
	}
}

// catalogEntity wires one reference catalog into the mux. The six catalogs
// share route shape and differ only in payload; the type parameters carry
// the entity and its input struct.
type catalogEntity[T any, I any] struct {
	log       *slog.Logger
	name      string
	lookupKey string

	parse  func(*http.Request) (I, error)
	render func(*T) any

	create     func(context.Context, I) (*T, error)
	revise     func(context.Context, int64, I) (*T, error)
	deactivate func(context.Context, int64) error
	get        func(context.Context, int64) (*T, error)
	getVersion func(context.Context, int64, int) (*T, error)
	history    func(context.Context, int64) ([]T, error)
	lookup     func(context.Context, string) (*T, error)
	list       func(context.Context) ([]T, error)
}

func (e *catalogEntity[T, I]) register(mux *http.ServeMux) {
	base := "/v1/catalog/" + e.name
	mux.HandleFunc("POST "+base, e.handleCreate)
	mux.HandleFunc("GET "+base, e.handleList)
	mux.HandleFunc("GET "+base+"/{uid}", e.handleGet)
	mux.HandleFunc("PUT "+base+"/{uid}", e.handleRevise)
	mux.HandleFunc("DELETE "+base+"/{uid}", e.handleDeactivate)
	mux.HandleFunc("GET "+base+"/{uid}/history", e.handleHistory)
	mux.HandleFunc("GET "+base+"/{uid}/versions/{version}", e.handleVersion)
}

func (e *catalogEntity[T, I]) handleCreate(w http.ResponseWriter, r *http.Request) {
	input, err := e.parse(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item, err := e.create(r.Context(), input)
	if err != nil {
		respondError(w, r, e.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, e.render(item))
}

func (e *catalogEntity[T, I]) handleRevise(w http.ResponseWriter, r *http.Request) {
	uid, err := pathID(r, "uid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid uid")
		return
	}
	input, err := e.parse(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item, err := e.revise(r.Context(), uid, input)
	if err != nil {
		respondError(w, r, e.log, err)
		return
	}
	writeJSON(w, http.StatusOK, e.render(item))
}

func (e *catalogEntity[T, I]) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	uid, err := pathID(r, "uid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid uid")
		return
	}
	if err := e.deactivate(r.Context(), uid); err != nil {
		respondError(w, r, e.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

func (e *catalogEntity[T, I]) handleGet(w http.ResponseWriter, r *http.Request) {
	uid, err := pathID(r, "uid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid uid")
		return
	}
	item, err := e.get(r.Context(), uid)
	if err != nil {
		respondError(w, r, e.log, err)
		return
	}
	writeJSON(w, http.StatusOK, e.render(item))
}

func (e *catalogEntity[T, I]) handleVersion(w http.ResponseWriter, r *http.Request) {
	uid, err := pathID(r, "uid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid uid")
		return
	}
	version, err := pathInt(r, "version")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid version")
		return
	}
	item, err := e.getVersion(r.Context(), uid, version)
	if err != nil {
		respondError(w, r, e.log, err)
		return
	}
	writeJSON(w, http.StatusOK, e.render(item))
}

func (e *catalogEntity[T, I]) handleHistory(w http.ResponseWriter, r *http.Request) {
	uid, err := pathID(r, "uid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid uid")
		return
	}
	items, err := e.history(r.Context(), uid)
	if err != nil {
		respondError(w, r, e.log, err)
		return
	}
	e.renderList(w, items)
}

// handleList serves both the full active listing and natural-key lookup via
// the entity's query parameter (?code= or ?name=).
func (e *catalogEntity[T, I]) handleList(w http.ResponseWriter, r *http.Request) {
	if key := r.URL.Query().Get(e.lookupKey); key != "" {
		item, err := e.lookup(r.Context(), key)
		if err != nil {
			respondError(w, r, e.log, err)
			return
		}
		writeJSON(w, http.StatusOK, e.render(item))
		return
	}
	items, err := e.list(r.Context())
	if err != nil {
		respondError(w, r, e.log, err)
		return
	}
	e.renderList(w, items)
}

func (e *catalogEntity[T, I]) renderList(w http.ResponseWriter, items []T) {
	out := make([]any, 0, len(items))
	for i := range items {
		out = append(out, e.render(&items[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// ---------------------------------------------------------------------------
// Request / response payloads
// ---------------------------------------------------------------------------

type languageRequest struct {
	Code    string  `json:"code"`
	Dialect *string `json:"dialect,omitempty"`
	Name    string  `json:"name"`
}

type languageResponse struct {
	versionMetaResponse
	Code    string  `json:"code"`
	Dialect *string `json:"dialect,omitempty"`
	Name    string  `json:"name"`
}

type domainRequest struct {
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
}

type domainResponse struct {
	versionMetaResponse
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
}

type sourceRequest struct {
	Type     string         `json:"type"`
	Name     string         `json:"name"`
	Author   *string        `json:"author,omitempty"`
	URL      *string        `json:"url,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type sourceResponse struct {
	versionMetaResponse
	Type     string         `json:"type"`
	Name     string         `json:"name"`
	Author   *string        `json:"author,omitempty"`
	URL      *string        `json:"url,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type methodRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Provider    *string `json:"provider,omitempty"`
}

type methodResponse struct {
	versionMetaResponse
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Provider    *string `json:"provider,omitempty"`
}

type metricRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type metricResponse struct {
	versionMetaResponse
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type directionRequest struct {
	Code          string  `json:"code"`
	SourceLangUID int64   `json:"sourceLangUid"`
	TargetLangUID int64   `json:"targetLangUid"`
	Description   *string `json:"description,omitempty"`
}

type directionResponse struct {
	versionMetaResponse
	Code          string  `json:"code"`
	SourceLangUID int64   `json:"sourceLangUid"`
	TargetLangUID int64   `json:"targetLangUid"`
	Description   *string `json:"description,omitempty"`
}

// ---------------------------------------------------------------------------
// Registration
// ---------------------------------------------------------------------------

// RegisterCatalogRoutes mounts the six reference catalogs under /v1/catalog.
func RegisterCatalogRoutes(mux *http.ServeMux, svc *refcatalog.Service, logger *slog.Logger) {
	log := logger.With("handler", "catalog")

	languages := &catalogEntity[domain.Language, refcatalog.LanguageInput]{
		log: log, name: "languages", lookupKey: "code",
		parse: func(r *http.Request) (refcatalog.LanguageInput, error) {
			var req languageRequest
			if err := decodeJSON(r, &req); err != nil {
				return refcatalog.LanguageInput{}, err
			}
			return refcatalog.LanguageInput{Code: req.Code, Dialect: req.Dialect, Name: req.Name}, nil
		},
		render: func(l *domain.Language) any {
			return languageResponse{toVersionMeta(l.VersionMeta), l.Code, l.Dialect, l.Name}
		},
		create:     svc.CreateLanguage,
		revise:     svc.ReviseLanguage,
		deactivate: svc.DeactivateLanguage,
		get:        svc.GetLanguage,
		getVersion: svc.GetLanguageVersion,
		history:    svc.GetLanguageHistory,
		lookup:     svc.LookupLanguage,
		list:       svc.ListLanguages,
	}
	languages.register(mux)

	domains := &catalogEntity[domain.TextDomain, refcatalog.DomainInput]{
		log: log, name: "domains", lookupKey: "code",
		parse: func(r *http.Request) (refcatalog.DomainInput, error) {
			var req domainRequest
			if err := decodeJSON(r, &req); err != nil {
				return refcatalog.DomainInput{}, err
			}
			return refcatalog.DomainInput{Code: req.Code, Description: req.Description}, nil
		},
		render: func(d *domain.TextDomain) any {
			return domainResponse{toVersionMeta(d.VersionMeta), d.Code, d.Description}
		},
		create:     svc.CreateDomain,
		revise:     svc.ReviseDomain,
		deactivate: svc.DeactivateDomain,
		get:        svc.GetDomain,
		getVersion: svc.GetDomainVersion,
		history:    svc.GetDomainHistory,
		lookup:     svc.LookupDomain,
		list:       svc.ListDomains,
	}
	domains.register(mux)

	sources := &catalogEntity[domain.Source, refcatalog.SourceInput]{
		log: log, name: "sources", lookupKey: "name",
		parse: func(r *http.Request) (refcatalog.SourceInput, error) {
			var req sourceRequest
			if err := decodeJSON(r, &req); err != nil {
				return refcatalog.SourceInput{}, err
			}
			return refcatalog.SourceInput{
				Type: req.Type, Name: req.Name,
				Author: req.Author, URL: req.URL, Metadata: req.Metadata,
			}, nil
		},
		render: func(s *domain.Source) any {
			return sourceResponse{toVersionMeta(s.VersionMeta), s.Type, s.Name, s.Author, s.URL, s.Metadata}
		},
		create:     svc.CreateSource,
		revise:     svc.ReviseSource,
		deactivate: svc.DeactivateSource,
		get:        svc.GetSource,
		getVersion: svc.GetSourceVersion,
		history:    svc.GetSourceHistory,
		lookup:     svc.LookupSource,
		list:       svc.ListSources,
	}
	sources.register(mux)

	methods := &catalogEntity[domain.Method, refcatalog.MethodInput]{
		log: log, name: "methods", lookupKey: "name",
		parse: func(r *http.Request) (refcatalog.MethodInput, error) {
			var req methodRequest
			if err := decodeJSON(r, &req); err != nil {
				return refcatalog.MethodInput{}, err
			}
			return refcatalog.MethodInput{Name: req.Name, Description: req.Description, Provider: req.Provider}, nil
		},
		render: func(m *domain.Method) any {
			return methodResponse{toVersionMeta(m.VersionMeta), m.Name, m.Description, m.Provider}
		},
		create:     svc.CreateMethod,
		revise:     svc.ReviseMethod,
		deactivate: svc.DeactivateMethod,
		get:        svc.GetMethod,
		getVersion: svc.GetMethodVersion,
		history:    svc.GetMethodHistory,
		lookup:     svc.LookupMethod,
		list:       svc.ListMethods,
	}
	methods.register(mux)

	metrics := &catalogEntity[domain.Metric, refcatalog.MetricInput]{
		log: log, name: "metrics", lookupKey: "name",
		parse: func(r *http.Request) (refcatalog.MetricInput, error) {
			var req metricRequest
			if err := decodeJSON(r, &req); err != nil {
				return refcatalog.MetricInput{}, err
			}
			return refcatalog.MetricInput{Name: req.Name, Description: req.Description}, nil
		},
		render: func(m *domain.Metric) any {
			return metricResponse{toVersionMeta(m.VersionMeta), m.Name, m.Description}
		},
		create:     svc.CreateMetric,
		revise:     svc.ReviseMetric,
		deactivate: svc.DeactivateMetric,
		get:        svc.GetMetric,
		getVersion: svc.GetMetricVersion,
		history:    svc.GetMetricHistory,
		lookup:     svc.LookupMetric,
		list:       svc.ListMetrics,
	}
	metrics.register(mux)

	directions := &catalogEntity[domain.Direction, refcatalog.DirectionInput]{
		log: log, name: "directions", lookupKey: "code",
		parse: func(r *http.Request) (refcatalog.DirectionInput, error) {
			var req directionRequest
			if err := decodeJSON(r, &req); err != nil {
				return refcatalog.DirectionInput{}, err
			}
			return refcatalog.DirectionInput{
				Code:          req.Code,
				SourceLangUID: req.SourceLangUID,
				TargetLangUID: req.TargetLangUID,
				Description:   req.Description,
			}, nil
		},
		render: func(d *domain.Direction) any {
			return directionResponse{toVersionMeta(d.VersionMeta), d.Code, d.SourceLangUID, d.TargetLangUID, d.Description}
		},
		create:     svc.CreateDirection,
		revise:     svc.ReviseDirection,
		deactivate: svc.DeactivateDirection,
		get:        svc.GetDirection,
		getVersion: svc.GetDirectionVersion,
		history:    svc.GetDirectionHistory,
		lookup:     svc.LookupDirection,
		list:       svc.ListDirections,
	}
	directions.register(mux)
}
