// File: internal/server/handlers.go
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/salman3757/passgauge/api/schemas"
	"github.com/salman3757/passgauge/internal/analysis"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// maxRequestBytes caps request bodies. Generator options and single
// passwords are tiny; anything larger is abuse.
const maxRequestBytes = 1 << 20

// Handlers manages the HTTP request handling for the facade.
type Handlers struct {
	log         *zap.Logger
	generator   *analysis.Generator
	estimator   *analysis.Estimator
	wordSets    []analysis.WordSet
	zxcvbnCheck bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(logger *zap.Logger, generator *analysis.Generator, estimator *analysis.Estimator, sets []analysis.WordSet, zxcvbnCheck bool) *Handlers {
	return &Handlers{
		log:         logger.Named("handlers"),
		generator:   generator,
		estimator:   estimator,
		wordSets:    sets,
		zxcvbnCheck: zxcvbnCheck,
	}
}

// RegisterRoutes sets up the routing table.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.HandleHealthCheck)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/generate", h.HandleGenerate)
		r.Post("/analyze", h.HandleAnalyze)
	})
}

// HandleHealthCheck confirms the server is responsive.
func (h *Handlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// HandleGenerate synthesizes one password from the posted options.
func (h *Handlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var opts schemas.GeneratorOptions
	if err := decodeBody(w, r, &opts); err != nil {
		h.respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	result, err := h.generator.Generate(opts)
	if err != nil {
		if errors.Is(err, analysis.ErrInvalidOptions) {
			h.respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("Generation failed", zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "generation failed")
		return
	}

	h.respondWithJSON(w, http.StatusOK, result)
}

// AnalyzeRequest is the POST /v1/analyze body.
type AnalyzeRequest struct {
	Password string `json:"password"`
}

// AnalyzeResponse wraps the engine report with the optional advisory score.
type AnalyzeResponse struct {
	*schemas.AnalysisReport
	ZxcvbnScore *int `json:"zxcvbn_score,omitempty"`
}

// HandleAnalyze scores one password against the shared word sets. The
// password itself is never logged.
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Password == "" {
		h.respondWithError(w, http.StatusBadRequest, "password is required")
		return
	}

	report := h.estimator.Analyze(req.Password, h.wordSets)

	resp := AnalyzeResponse{AnalysisReport: report}
	if h.zxcvbnCheck {
		score := analysis.CrossCheckScore(req.Password)
		resp.ZxcvbnScore = &score
	}

	h.respondWithJSON(w, http.StatusOK, resp)
}

// decodeBody reads one JSON value from a size-capped body, rejecting
// trailing garbage.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	dec := jsonAPI.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}

// respondWithError sends a standardized JSON error response.
func (h *Handlers) respondWithError(w http.ResponseWriter, statusCode int, message string) {
	h.respondWithJSON(w, statusCode, map[string]string{"error": message})
}

// respondWithJSON sends data with the given status code.
func (h *Handlers) respondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := jsonAPI.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("Failed to encode response", zap.Error(err))
	}
}
