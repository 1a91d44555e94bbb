package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"admind/internal/audit"
	"admind/internal/console"
	"admind/internal/orchestrator"
	"admind/internal/upstream"
	"admind/pkg/types"
)

// Service defines the console methods required by the HTTP API layer.
type Service interface {
	Resources() []types.ResourceSummary
	State(name string) (types.ResourceState, error)
	Refresh(ctx context.Context, name string, silent bool) error
	ClearError(name string) error
	ClearSuccess(name string) error
	RunAction(ctx context.Context, name, action string, input any) (any, error)
	AuditTrail(ctx context.Context, limit int) ([]audit.Entry, error)
	Ready() bool
}

// Notifications is the visible notification feed.
type Notifications interface {
	Active() []types.Notification
	Dismiss(id string)
}

func NewMux(svc Service, notes Notifications) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	r.Use(accessLog)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}

	// Resources godoc
	// @Summary  List orchestrated resources
	// @Produce  json
	// @Success  200 {object} types.ResourcesResponse
	// @Router   /resources [get]
	r.Get("/resources", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.ResourcesResponse{Resources: svc.Resources()})
	})

	// ResourceState godoc
	// @Summary  Current state of one resource
	// @Produce  json
	// @Param    name path string true "resource name"
	// @Success  200 {object} types.ResourceState
	// @Failure  404 {object} types.ErrorResponse
	// @Router   /resources/{name} [get]
	r.Get("/resources/{name}", func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.State(chi.URLParam(r, "name"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	})

	// Refresh godoc
	// @Summary  Re-pull a resource's data
	// @Produce  json
	// @Param    name   path  string true  "resource name"
	// @Param    silent query bool   false "suppress the loading flag"
	// @Success  200 {object} types.ResourceState
	// @Failure  404 {object} types.ErrorResponse
	// @Router   /resources/{name}/refresh [post]
	r.Post("/resources/{name}/refresh", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		silent := r.URL.Query().Get("silent") == "1" || r.URL.Query().Get("silent") == "true"
		joined, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		if err := svc.Refresh(joined, name, silent); err != nil {
			writeServiceError(w, err)
			return
		}
		st, err := svc.State(name)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	})

	// RunAction godoc
	// @Summary  Execute a named action on a resource
	// @Accept   json
	// @Produce  json
	// @Param    name   path string true "resource name"
	// @Param    action path string true "action name"
	// @Param    body   body types.ActionRequest false "optional action input"
	// @Success  200 {object} types.ActionResponse
	// @Failure  404 {object} types.ErrorResponse
	// @Router   /resources/{name}/actions/{action} [post]
	r.Post("/resources/{name}/actions/{action}", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		action := chi.URLParam(r, "action")

		var input any
		if r.ContentLength != 0 {
			ct := r.Header.Get("Content-Type")
			if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
				writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			var req types.ActionRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
				return
			}
			input = req.Input
		}

		joined, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		res, err := svc.RunAction(joined, name, action, input)
		if err != nil {
			// Client disconnect or shutdown: nothing useful to write.
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			if console.IsUnknownResource(err) || orchestrator.IsConfigError(err) {
				writeJSONError(w, http.StatusNotFound, err.Error())
				return
			}
			status := http.StatusInternalServerError
			if s, ok := upstream.IsAPIError(err); ok {
				status = s
			} else if he, ok := err.(HTTPError); ok {
				status = he.StatusCode()
			}
			writeJSON(w, status, types.ActionResponse{Action: action, OK: false, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, types.ActionResponse{Action: action, OK: true, Result: res})
	})

	r.Delete("/resources/{name}/error", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.ClearError(chi.URLParam(r, "name")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Delete("/resources/{name}/success", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.ClearSuccess(chi.URLParam(r, "name")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	// Notifications godoc
	// @Summary  Active notifications
	// @Produce  json
	// @Success  200 {object} types.NotificationsResponse
	// @Router   /notifications [get]
	r.Get("/notifications", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.NotificationsResponse{Notifications: notes.Active()})
	})

	r.Delete("/notifications/{id}", func(w http.ResponseWriter, r *http.Request) {
		notes.Dismiss(chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	})

	// AuditTrail godoc
	// @Summary  Recent admin actions
	// @Produce  json
	// @Param    limit query int false "max entries (default 50)"
	// @Success  200 {array} audit.Entry
	// @Router   /audit [get]
	r.Get("/audit", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		entries, err := svc.AuditTrail(r.Context(), limit)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if entries == nil {
			entries = []audit.Entry{}
		}
		writeJSON(w, http.StatusOK, entries)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps console lookup failures onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	if console.IsUnknownResource(err) {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSONError(w, http.StatusInternalServerError, err.Error())
}
