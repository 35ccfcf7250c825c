package rest

import (
	"log/slog"
	"net/http"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
	"github.com/bhashasetu/corpus-catalog/internal/service/corpus"
)

// CorpusHandler serves the sentence, translation and score endpoints.
type CorpusHandler struct {
	svc *corpus.Service
	log *slog.Logger
}

// NewCorpusHandler creates a CorpusHandler.
func NewCorpusHandler(svc *corpus.Service, logger *slog.Logger) *CorpusHandler {
	return &CorpusHandler{svc: svc, log: logger.With("handler", "corpus")}
}

// Register mounts the corpus routes under /v1.
func (h *CorpusHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/sentences", h.AddSentence)
	mux.HandleFunc("GET /v1/sentences", h.SearchSentences)
	mux.HandleFunc("GET /v1/sentences/{id}", h.GetSentence)
	mux.HandleFunc("PUT /v1/sentences/{id}", h.ReviseSentence)
	mux.HandleFunc("DELETE /v1/sentences/{id}", h.DeactivateSentence)
	mux.HandleFunc("GET /v1/sentences/{id}/history", h.SentenceHistory)
	mux.HandleFunc("GET /v1/sentences/{id}/versions/{version}", h.SentenceVersion)
	mux.HandleFunc("GET /v1/sentences/{id}/translations", h.SentenceTranslations)

	mux.HandleFunc("POST /v1/translations", h.AddTranslation)
	mux.HandleFunc("GET /v1/translations/{id}", h.GetTranslation)
	mux.HandleFunc("PUT /v1/translations/{id}", h.ReviseTranslation)
	mux.HandleFunc("DELETE /v1/translations/{id}", h.DeactivateTranslation)
	mux.HandleFunc("GET /v1/translations/{id}/history", h.TranslationHistory)
	mux.HandleFunc("GET /v1/translations/{id}/versions/{version}", h.TranslationVersion)

	mux.HandleFunc("POST /v1/translations/{id}/scores", h.AddScore)
	mux.HandleFunc("GET /v1/translations/{id}/scores", h.ListScores)
	mux.HandleFunc("GET /v1/translations/{id}/scores/{metricUid}", h.GetScore)
	mux.HandleFunc("DELETE /v1/translations/{id}/scores/{metricUid}", h.DeactivateScore)
	mux.HandleFunc("GET /v1/translations/{id}/scores/{metricUid}/history", h.ScoreHistory)

	mux.HandleFunc("POST /v1/maintenance/mark-duplicates", h.MarkDuplicates)
}

// ---------------------------------------------------------------------------
// Payloads
// ---------------------------------------------------------------------------

type sentenceRequest struct {
	Text        string `json:"text"`
	LanguageUID int64  `json:"languageUid"`
	SourceUID   *int64 `json:"sourceUid,omitempty"`
	DomainUID   *int64 `json:"domainUid,omitempty"`
}

type sentenceResponse struct {
	versionMetaResponse
	Text        string `json:"text"`
	LanguageUID int64  `json:"languageUid"`
	SourceUID   *int64 `json:"sourceUid,omitempty"`
	DomainUID   *int64 `json:"domainUid,omitempty"`
	Status      string `json:"status"`
	DuplicateOf *int64 `json:"duplicateOf,omitempty"`
	ContentHash string `json:"contentHash"`
	// Deduplicated is set on create when the text already existed and the
	// original row was returned instead.
	Deduplicated bool `json:"deduplicated,omitempty"`
}

func toSentenceResponse(s *domain.Sentence, deduplicated bool) sentenceResponse {
	return sentenceResponse{
		versionMetaResponse: toVersionMeta(s.VersionMeta),
		Text:                s.Text,
		LanguageUID:         s.LanguageUID,
		SourceUID:           s.SourceUID,
		DomainUID:           s.DomainUID,
		Status:              string(s.Status),
		DuplicateOf:         s.DuplicateOf,
		ContentHash:         s.ContentHash,
		Deduplicated:        deduplicated,
	}
}

type translationRequest struct {
	SourceID      int64   `json:"sourceId"`
	TargetID      int64   `json:"targetId"`
	DirectionUID  int64   `json:"directionUid"`
	MethodUID     int64   `json:"methodUid"`
	MethodVersion *string `json:"methodVersion,omitempty"`
	IsSynthetic   bool    `json:"isSynthetic"`
}

func (req translationRequest) toInput() corpus.AddTranslationInput {
	return corpus.AddTranslationInput{
		SourceID:      req.SourceID,
		TargetID:      req.TargetID,
		DirectionUID:  req.DirectionUID,
		MethodUID:     req.MethodUID,
		MethodVersion: req.MethodVersion,
		IsSynthetic:   req.IsSynthetic,
	}
}

type translationResponse struct {
	versionMetaResponse
	SourceID      int64   `json:"sourceId"`
	TargetID      int64   `json:"targetId"`
	DirectionUID  int64   `json:"directionUid"`
	MethodUID     int64   `json:"methodUid"`
	MethodVersion *string `json:"methodVersion,omitempty"`
	IsSynthetic   bool    `json:"isSynthetic"`
	Deduplicated  bool    `json:"deduplicated,omitempty"`
}

func toTranslationResponse(t *domain.Translation, deduplicated bool) translationResponse {
	return translationResponse{
		versionMetaResponse: toVersionMeta(t.VersionMeta),
		SourceID:            t.SourceID,
		TargetID:            t.TargetID,
		DirectionUID:        t.DirectionUID,
		MethodUID:           t.MethodUID,
		MethodVersion:       t.MethodVersion,
		IsSynthetic:         t.IsSynthetic,
		Deduplicated:        deduplicated,
	}
}

type scoreRequest struct {
	MetricUID int64    `json:"metricUid"`
	ScoreNum  *float64 `json:"scoreNum,omitempty"`
	ScoreTxt  *string  `json:"scoreTxt,omitempty"`
}

type scoreResponse struct {
	versionMetaResponse
	TranslationID int64    `json:"translationId"`
	MetricUID     int64    `json:"metricUid"`
	ScoreNum      *float64 `json:"scoreNum,omitempty"`
	ScoreTxt      *string  `json:"scoreTxt,omitempty"`
}

func toScoreResponse(s *domain.TranslationScore) scoreResponse {
	return scoreResponse{
		versionMetaResponse: toVersionMeta(s.VersionMeta),
		TranslationID:       s.TranslationID,
		MetricUID:           s.MetricUID,
		ScoreNum:            s.ScoreNum,
		ScoreTxt:            s.ScoreTxt,
	}
}

// ---------------------------------------------------------------------------
// Sentences
// ---------------------------------------------------------------------------

func (h *CorpusHandler) AddSentence(w http.ResponseWriter, r *http.Request) {
	var req sentenceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sent, created, err := h.svc.AddSentence(r.Context(), corpus.AddSentenceInput{
		Text:        req.Text,
		LanguageUID: req.LanguageUID,
		SourceUID:   req.SourceUID,
		DomainUID:   req.DomainUID,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	writeJSON(w, status, toSentenceResponse(sent, !created))
}

func (h *CorpusHandler) SearchSentences(w http.ResponseWriter, r *http.Request) {
	input := corpus.SearchInput{
		LanguageUID: queryInt64Ptr(r, "languageUid"),
		DomainUID:   queryInt64Ptr(r, "domainUid"),
		SourceUID:   queryInt64Ptr(r, "sourceUid"),
		Limit:       queryInt(r, "limit", 0),
		Offset:      queryInt(r, "offset", 0),
	}
	if q := r.URL.Query().Get("q"); q != "" {
		input.Search = &q
	}

	sentences, err := h.svc.SearchSentences(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]sentenceResponse, 0, len(sentences))
	for i := range sentences {
		out = append(out, toSentenceResponse(&sentences[i], false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CorpusHandler) GetSentence(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	sent, err := h.svc.GetSentence(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSentenceResponse(sent, false))
}

func (h *CorpusHandler) ReviseSentence(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req sentenceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sent, err := h.svc.ReviseSentence(r.Context(), id, corpus.AddSentenceInput{
		Text:        req.Text,
		LanguageUID: req.LanguageUID,
		SourceUID:   req.SourceUID,
		DomainUID:   req.DomainUID,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSentenceResponse(sent, false))
}

func (h *CorpusHandler) DeactivateSentence(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.DeactivateSentence(r.Context(), id, queryBool(r, "cascade")); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

func (h *CorpusHandler) SentenceHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	history, err := h.svc.GetSentenceHistory(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	out := make([]sentenceResponse, 0, len(history))
	for i := range history {
		out = append(out, toSentenceResponse(&history[i], false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CorpusHandler) SentenceVersion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	version, err := pathInt(r, "version")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid version")
		return
	}
	sent, err := h.svc.GetSentenceVersion(r.Context(), id, version)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSentenceResponse(sent, false))
}

func (h *CorpusHandler) SentenceTranslations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	translations, err := h.svc.ListTranslationsForSentence(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	out := make([]translationResponse, 0, len(translations))
	for i := range translations {
		out = append(out, toTranslationResponse(&translations[i], false))
	}
	writeJSON(w, http.StatusOK, out)
}

// ---------------------------------------------------------------------------
// Translations
// ---------------------------------------------------------------------------

func (h *CorpusHandler) AddTranslation(w http.ResponseWriter, r *http.Request) {
	var req translationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tr, created, err := h.svc.AddTranslation(r.Context(), req.toInput())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	writeJSON(w, status, toTranslationResponse(tr, !created))
}

func (h *CorpusHandler) GetTranslation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	tr, err := h.svc.GetTranslation(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTranslationResponse(tr, false))
}

func (h *CorpusHandler) ReviseTranslation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req translationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tr, err := h.svc.ReviseTranslation(r.Context(), id, req.toInput())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTranslationResponse(tr, false))
}

func (h *CorpusHandler) DeactivateTranslation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.DeactivateTranslation(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

func (h *CorpusHandler) TranslationHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	history, err := h.svc.GetTranslationHistory(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	out := make([]translationResponse, 0, len(history))
	for i := range history {
		out = append(out, toTranslationResponse(&history[i], false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CorpusHandler) TranslationVersion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	version, err := pathInt(r, "version")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid version")
		return
	}
	tr, err := h.svc.GetTranslationVersion(r.Context(), id, version)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTranslationResponse(tr, false))
}

// ---------------------------------------------------------------------------
// Scores
// ---------------------------------------------------------------------------

func (h *CorpusHandler) AddScore(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req scoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	score, err := h.svc.AddScore(r.Context(), corpus.AddScoreInput{
		TranslationID: id,
		MetricUID:     req.MetricUID,
		ScoreNum:      req.ScoreNum,
		ScoreTxt:      req.ScoreTxt,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toScoreResponse(score))
}

func (h *CorpusHandler) ListScores(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	scores, err := h.svc.ListScores(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	out := make([]scoreResponse, 0, len(scores))
	for i := range scores {
		out = append(out, toScoreResponse(&scores[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CorpusHandler) GetScore(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	metricUID, err := pathID(r, "metricUid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid metric uid")
		return
	}
	score, err := h.svc.GetScore(r.Context(), id, metricUID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toScoreResponse(score))
}

func (h *CorpusHandler) DeactivateScore(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	metricUID, err := pathID(r, "metricUid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid metric uid")
		return
	}
	if err := h.svc.DeactivateScore(r.Context(), id, metricUID); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

func (h *CorpusHandler) ScoreHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	metricUID, err := pathID(r, "metricUid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid metric uid")
		return
	}
	history, err := h.svc.GetScoreHistory(r.Context(), id, metricUID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	out := make([]scoreResponse, 0, len(history))
	for i := range history {
		out = append(out, toScoreResponse(&history[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// ---------------------------------------------------------------------------
// Maintenance
// ---------------------------------------------------------------------------

func (h *CorpusHandler) MarkDuplicates(w http.ResponseWriter, r *http.Request) {
	marked, err := h.svc.MarkDuplicates(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"marked": marked})
}
