// Package server exposes the analyzer over HTTP: submit a URL, get back
// the full analysis record, and browse the report history.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/afajohn/page-keyword-analyzer-sub000/internal/fetch"
	"github.com/afajohn/page-keyword-analyzer-sub000/internal/llm"
	"github.com/afajohn/page-keyword-analyzer-sub000/internal/page"
	"github.com/afajohn/page-keyword-analyzer-sub000/internal/report"
	"github.com/afajohn/page-keyword-analyzer-sub000/internal/store"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic"
)

const analyzeTimeout = 25 * time.Second

// Server wires the engine, fetcher, store, and optional reasoning client
// behind an HTTP mux.
type Server struct {
	engine  *semantic.Engine
	fetcher *fetch.Client
	store   store.Store
	builder *report.Builder
	llm     *llm.Client // nil disables commentary
	mux     *http.ServeMux
}

// New builds a server. The store may be nil to disable history; the llm
// client may be nil to disable commentary.
func New(engine *semantic.Engine, fetcher *fetch.Client, st store.Store, llmClient *llm.Client) *Server {
	s := &Server{
		engine:  engine,
		fetcher: fetcher,
		store:   st,
		builder: report.NewBuilder(),
		llm:     llmClient,
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /analyze", s.handleAnalyze)
	s.mux.HandleFunc("POST /analyze/text", s.handleAnalyzeText)
	s.mux.HandleFunc("GET /analyses", s.handleList)
	s.mux.HandleFunc("GET /analyses/{id}", s.handleGet)
	s.mux.HandleFunc("GET /analyses/{id}/export", s.handleExport)
	s.mux.Handle("GET /metrics", promhttp.Handler())
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type analyzeRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	body, finalURL, contentType, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		analyzeTotal.WithLabelValues("fetch_error").Inc()
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	defer body.Close()

	parsed, err := page.Parse(body, contentType, finalURL)
	if err != nil {
		analyzeTotal.WithLabelValues("parse_error").Inc()
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	rep := s.run(ctx, finalURL, parsed.EngineInput())
	analyzeTotal.WithLabelValues("ok").Inc()
	analyzeDuration.Observe(time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	var in semantic.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	rep := s.run(ctx, "", in)
	analyzeTotal.WithLabelValues("ok").Inc()
	analyzeDuration.Observe(time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, rep)
}

// run analyzes one input, attaches commentary when the reasoning service is
// configured, and persists the report when history is enabled. Commentary
// and persistence failures degrade the response, they never fail it.
func (s *Server) run(ctx context.Context, pageURL string, in semantic.Input) report.Report {
	analysis := s.engine.Analyze(in)

	commentary := ""
	if s.llm != nil {
		text, err := s.llm.Commentary(ctx, pageURL, analysis)
		if err != nil {
			log.Printf("commentary unavailable: %v", err)
		} else {
			commentary = text
		}
	}

	rep := s.builder.Build(pageURL, analysis, commentary)
	if s.store != nil {
		if err := s.store.SaveReport(ctx, rep); err != nil {
			log.Printf("save report %s: %v", rep.ID, err)
		}
	}
	return rep
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "history disabled"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	summaries, err := s.store.ListReports(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.lookup(w, r)
	if !ok {
		return
	}
	switch r.URL.Query().Get("format") {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		if err := report.WriteCSV(w, rep); err != nil {
			log.Printf("export %s: %v", rep.ID, err)
		}
	case "markdown", "":
		w.Header().Set("Content-Type", "text/markdown")
		if err := report.WriteMarkdown(w, rep); err != nil {
			log.Printf("export %s: %v", rep.ID, err)
		}
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown format"})
	}
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (report.Report, bool) {
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "history disabled"})
		return report.Report{}, false
	}
	rep, found, err := s.store.GetReport(r.Context(), r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return report.Report{}, false
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return report.Report{}, false
	}
	return rep, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
