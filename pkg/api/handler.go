package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hazyhaar/zemailer/pkg/kit"
	"github.com/hazyhaar/zemailer/pkg/pattern"
	"github.com/hazyhaar/zemailer/pkg/preset"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter returns an http.Handler with all zemailer API routes. gatherer
// backs /metrics; nil leaves the route out.
func (s *Service) NewRouter(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/classify/{template}", s.handleClassify)
	mux.HandleFunc("POST /v1/generate", s.handleGenerate)
	mux.HandleFunc("POST /v1/expand", s.handleExpand)
	mux.HandleFunc("GET /v1/presets", s.handleListPresets)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return cors(requestID(mux))
}

// --- classify ---

func (s *Service) handleClassify(w http.ResponseWriter, r *http.Request) {
	tmpl := r.PathValue("template")
	if tmpl == "" {
		writeError(w, http.StatusBadRequest, "missing template")
		return
	}
	resp, err := s.classify(r.Context(), &classifyReq{Template: tmpl})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- generate ---

func (s *Service) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MiB max
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	resp, err := s.generate(r.Context(), &req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- expand ---

func (s *Service) handleExpand(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req expandReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	resp, err := s.expand(r.Context(), &req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- presets ---

func (s *Service) handleListPresets(w http.ResponseWriter, r *http.Request) {
	resp, err := s.list(r.Context(), nil)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status          string `json:"status"`
	Presets         int    `json:"presets"`
	CachedTemplates int    `json:"cached_templates"`
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	count := 0
	if s.presets != nil {
		if list, err := s.presets.ListPresets(); err == nil {
			count = len(list)
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		Presets:         count,
		CachedTemplates: s.cache.Len(),
	})
}

// --- helpers ---

// statusFor maps endpoint errors to HTTP status codes.
func statusFor(err error) int {
	var br *badRequest
	var ute *pattern.UnrecognizedTemplateError
	switch {
	case errors.As(err, &br):
		return http.StatusBadRequest
	case errors.As(err, &ute):
		return http.StatusUnprocessableEntity
	case errors.Is(err, preset.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// requestID propagates X-Request-ID into the endpoint context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := kit.WithTransport(r.Context(), "http")
		if id := r.Header.Get("X-Request-ID"); id != "" {
			ctx = kit.WithRequestID(ctx, id)
			w.Header().Set("X-Request-ID", id)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
