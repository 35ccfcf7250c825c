package rest

import (
	"log/slog"
	"net/http"

	"github.com/bhashasetu/corpus-catalog/internal/service/ingest"
)

// IngestHandler serves the bulk-load endpoints.
type IngestHandler struct {
	svc *ingest.Service
	log *slog.Logger
}

// NewIngestHandler creates an IngestHandler.
func NewIngestHandler(svc *ingest.Service, logger *slog.Logger) *IngestHandler {
	return &IngestHandler{svc: svc, log: logger.With("handler", "ingest")}
}

// Register mounts the ingest routes under /v1/ingest.
func (h *IngestHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/ingest/sentences", h.LoadSentences)
	mux.HandleFunc("POST /v1/ingest/pairs", h.LoadPairs)
}

type sentenceItemRequest struct {
	Text        string `json:"text"`
	LanguageUID int64  `json:"languageUid"`
}

type loadSentencesRequest struct {
	Items        []sentenceItemRequest `json:"items"`
	SourceUID    *int64                `json:"sourceUid,omitempty"`
	DomainUID    *int64                `json:"domainUid,omitempty"`
	AllOrNothing bool                  `json:"allOrNothing"`
}

type pairItemRequest struct {
	SourceText string   `json:"sourceText"`
	TargetText string   `json:"targetText"`
	Score      *float64 `json:"score,omitempty"`
}

type loadPairsRequest struct {
	Items        []pairItemRequest `json:"items"`
	DirectionUID int64             `json:"directionUid"`
	MethodUID    int64             `json:"methodUid"`
	MetricUID    *int64            `json:"metricUid,omitempty"`
	SourceUID    *int64            `json:"sourceUid,omitempty"`
	DomainUID    *int64            `json:"domainUid,omitempty"`
	IsSynthetic  bool              `json:"isSynthetic"`
	AllOrNothing bool              `json:"allOrNothing"`
}

type itemResultResponse struct {
	Index         int    `json:"index"`
	SentenceID    int64  `json:"sentenceId,omitempty"`
	TranslationID int64  `json:"translationId,omitempty"`
	Deduplicated  bool   `json:"deduplicated,omitempty"`
	Error         string `json:"error,omitempty"`
}

type batchResultResponse struct {
	Total     int                  `json:"total"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
	Items     []itemResultResponse `json:"items"`
}

func toBatchResult(result *ingest.BatchResult) batchResultResponse {
	out := batchResultResponse{
		Total:     result.Total,
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Items:     make([]itemResultResponse, 0, len(result.Items)),
	}
	for _, item := range result.Items {
		res := itemResultResponse{
			Index:         item.Index,
			SentenceID:    item.SentenceID,
			TranslationID: item.TranslationID,
			Deduplicated:  item.Deduplicated,
		}
		if item.Err != nil {
			res.Error = item.Err.Error()
		}
		out.Items = append(out.Items, res)
	}
	return out
}

func (h *IngestHandler) LoadSentences(w http.ResponseWriter, r *http.Request) {
	var req loadSentencesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := ingest.LoadSentencesInput{
		SourceUID:    req.SourceUID,
		DomainUID:    req.DomainUID,
		AllOrNothing: req.AllOrNothing,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, ingest.SentenceItem{
			Text:        item.Text,
			LanguageUID: item.LanguageUID,
		})
	}

	result, err := h.svc.LoadSentences(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toBatchResult(result))
}

func (h *IngestHandler) LoadPairs(w http.ResponseWriter, r *http.Request) {
	var req loadPairsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := ingest.LoadPairsInput{
		DirectionUID: req.DirectionUID,
		MethodUID:    req.MethodUID,
		MetricUID:    req.MetricUID,
		SourceUID:    req.SourceUID,
		DomainUID:    req.DomainUID,
		IsSynthetic:  req.IsSynthetic,
		AllOrNothing: req.AllOrNothing,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, ingest.PairItem{
			SourceText: item.SourceText,
			TargetText: item.TargetText,
			Score:      item.Score,
		})
	}

	result, err := h.svc.LoadPairs(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toBatchResult(result))
}
