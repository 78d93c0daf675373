package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hazyhaar/domscan/analyze"
	"github.com/hazyhaar/domscan/cache"
	"github.com/hazyhaar/domscan/fetch"
	"github.com/hazyhaar/domscan/kit"
)

// service bundles the engine with its collaborators for the HTTP surface.
type service struct {
	analyzer *analyze.Analyzer
	fetcher  *fetch.Fetcher
	store    *cache.Store // nil when caching is disabled
	logger   *slog.Logger
}

func (s *service) router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := kit.WithRequestID(req.Context(), middleware.GetReqID(req.Context()))
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]string{"status": "ok", "analyzer_version": analyze.AnalyzerVersion})
	})
	r.Post("/api/analyze", s.handleAnalyze)
	r.Post("/api/analyze/url", s.handleAnalyzeURL)
	return r
}

func (s *service) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Markup string `json:"markup"`
		Entity string `json:"entity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, err)
		return
	}

	result, err := s.analyzer.Analyze(req.Markup, req.Entity)
	if err != nil {
		writeError(w, analyzeStatus(err), err)
		return
	}
	writeJSON(w, 200, result)
}

func (s *service) handleAnalyzeURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL    string `json:"url"`
		Entity string `json:"entity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, err)
		return
	}
	if req.URL == "" {
		writeJSON(w, 400, map[string]string{"error": "url is required"})
		return
	}

	fetched, err := s.fetcher.Fetch(r.Context(), req.URL, "", "", "")
	if err != nil {
		writeError(w, 502, err)
		return
	}
	markup := string(fetched.Body)
	fingerprint := cache.Fingerprint(markup)

	// Cache reuse: fingerprint AND analyzer version must both match.
	if s.store != nil {
		cached, err := s.store.Get(r.Context(), fingerprint, analyze.AnalyzerVersion)
		if err != nil {
			s.logger.Warn("cache lookup failed", "error", err, "request_id", kit.GetRequestID(r.Context()))
		} else if cached != nil {
			w.Header().Set("X-Cache", "hit")
			writeJSON(w, 200, cached)
			return
		}
	}

	result, err := s.analyzer.Analyze(markup, req.Entity)
	if err != nil {
		writeError(w, analyzeStatus(err), err)
		return
	}

	if s.store != nil {
		if err := s.store.Put(r.Context(), fingerprint, req.URL, result); err != nil {
			// A failing cache never blocks the response.
			s.logger.Warn("cache store failed", "error", err, "request_id", kit.GetRequestID(r.Context()))
		}
	}
	w.Header().Set("X-Cache", "miss")
	writeJSON(w, 200, result)
}

// analyzeStatus maps the engine's two fatal error kinds to HTTP codes.
func analyzeStatus(err error) int {
	switch {
	case errors.Is(err, analyze.ErrEmptyInput):
		return 400
	case errors.Is(err, analyze.ErrMalformedMarkup):
		return 422
	}
	return 500
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
