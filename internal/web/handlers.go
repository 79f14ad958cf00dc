package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/graphio"
	"github.com/matzehuels/flowgraph/pkg/metrics"
	"github.com/matzehuels/flowgraph/pkg/pipeline"
	"github.com/matzehuels/flowgraph/pkg/store"
)

// maxSourceSize caps posted source text at 1MB. The parser is linear in
// input size, but diagrams beyond this are unusable anyway.
const maxSourceSize = 1 << 20

// pageData is passed to the index template.
type pageData struct {
	Source  string
	Mode    string
	SVG     template.HTML
	Metrics *metrics.Report
	Error   string
}

// handleIndex renders the editor page with the default example.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, pageData{Source: defaultSource}, http.StatusOK)
}

// handleAnalyze processes a form submission: parse, measure, render. This is
// the pipeline's failure boundary - any error is caught here and shown on
// the page as a readable message.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSourceSize)
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, pageData{Error: "could not parse form (source too large?)"}, http.StatusRequestEntityTooLarge)
		return
	}

	source := r.FormValue("source")
	if strings.TrimSpace(source) == "" {
		s.renderPage(w, pageData{Error: "source text is required"}, http.StatusUnprocessableEntity)
		return
	}

	result, err := s.runner.Execute(r.Context(), source, pipeline.Options{
		Formats: []string{pipeline.FormatSVG},
	})
	if err != nil {
		s.logger.Error("analyze failed", "err", err)
		s.renderPage(w, pageData{
			Source: source,
			Error:  apperrors.UserMessage(err),
		}, statusForError(err))
		return
	}

	s.renderPage(w, pageData{
		Source:  source,
		Mode:    string(result.Mode),
		SVG:     template.HTML(result.Artifacts[pipeline.FormatSVG]),
		Metrics: &result.Metrics,
	}, http.StatusOK)
}

func (s *Server) renderPage(w http.ResponseWriter, data pageData, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error("render template", "err", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// analyzeRequest is the JSON API request body.
type analyzeRequest struct {
	Source string `json:"source"`
}

// analyzeResponse is the JSON API response body. DOT is included because it
// is cheap and lets API consumers run their own layout.
type analyzeResponse struct {
	Mode    string         `json:"mode"`
	Graph   graphio.Graph  `json:"graph"`
	Metrics metrics.Report `json:"metrics"`
	DOT     string         `json:"dot"`
}

// handleAPIAnalyze is the JSON twin of handleAnalyze.
func (s *Server) handleAPIAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSourceSize)

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Source) == "" {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "source text is required"))
		return
	}

	result, err := s.runner.Execute(r.Context(), req.Source, pipeline.Options{
		Formats: []string{pipeline.FormatDOT},
	})
	if err != nil {
		s.logger.Error("api analyze failed", "err", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Mode:    string(result.Mode),
		Graph:   graphio.FromGraph(result.Graph),
		Metrics: result.Metrics,
		DOT:     string(result.Artifacts[pipeline.FormatDOT]),
	})
}

// saveRequest is the body for POST /api/analyses.
type saveRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// handleSaveAnalysis parses the posted source and persists the result.
func (s *Server) handleSaveAnalysis(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSourceSize)

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Source) == "" {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "source text is required"))
		return
	}

	result, err := s.runner.Execute(r.Context(), req.Source, pipeline.Options{
		Formats: []string{pipeline.FormatDOT},
	})
	if err != nil {
		writeError(w, err)
		return
	}

	analysis := &store.Analysis{
		ID:        store.NewID(),
		Name:      req.Name,
		Source:    req.Source,
		Mode:      string(result.Mode),
		Graph:     graphio.FromGraph(result.Graph),
		Metrics:   result.Metrics,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Save(r.Context(), analysis); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStorage, err, "save analysis"))
		return
	}

	writeJSON(w, http.StatusCreated, analysis)
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	analyses, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStorage, err, "list analyses"))
		return
	}
	writeJSON(w, http.StatusOK, analyses)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	analysis, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, apperrors.New(apperrors.ErrCodeNotFound, "analysis %s not found", id))
		return
	}
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStorage, err, "get analysis"))
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, apperrors.New(apperrors.ErrCodeNotFound, "analysis %s not found", id))
		return
	}
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStorage, err, "delete analysis"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForError(err), errorResponse{
		Code:    string(apperrors.GetCode(err)),
		Message: apperrors.UserMessage(err),
	})
}

// statusForError maps application error codes to HTTP statuses.
func statusForError(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeStorage:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
