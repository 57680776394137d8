// Package handler provides HTTP handlers for all API endpoints.
// Reference data handlers talk to the store directly; aggregate endpoints go
// through the analysis service and are recomputed on every request.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/matchday/matchday-api/internal/analysis"
	"github.com/matchday/matchday-api/internal/api/respond"
	"github.com/matchday/matchday-api/internal/config"
	"github.com/matchday/matchday-api/internal/db"
	"github.com/matchday/matchday-api/internal/model"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	store    db.Store
	stats    *analysis.Service
	cfg      *config.Config
	validate *validator.Validate
}

// New creates a Handler with shared dependencies.
func New(store db.Store, cfg *config.Config) *Handler {
	return &Handler{
		store:    store,
		stats:    analysis.New(store),
		cfg:      cfg,
		validate: newValidator(),
	}
}

// newValidator teaches the validator to see through the nullable wrappers, so
// "required,gt=0" applies to the wrapped value and an absent value is nil.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if o, ok := field.Interface().(model.OptInt); ok && o.Valid {
			return o.Int
		}
		return nil
	}, model.OptInt{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if o, ok := field.Interface().(model.OptFloat); ok && o.Valid {
			return o.Float
		}
		return nil
	}, model.OptFloat{})
	return v
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and docs location.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"name":    "Matchday API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"metrics": "/metrics",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies database connectivity and reports pool usage.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		slog.Warn("database health check failed", "error", err)
		respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	stats := h.store.Stats()
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"database": "connected",
		"driver":   h.cfg.Driver(),
		"pool": map[string]int{
			"total":  stats.Total,
			"idle":   stats.Idle,
			"in_use": stats.InUse,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// --------------------------------------------------------------------------
// Shared helpers
// --------------------------------------------------------------------------

// messageResponse is the body of a successful delete.
type messageResponse struct {
	Message string `json:"message"`
}

// pathID parses a positive integer URL parameter. On failure it writes the
// 400 and returns false.
func pathID(w http.ResponseWriter, r *http.Request, param string) (int, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidID,
			fmt.Sprintf("%s must be a positive integer", param))
		return 0, false
	}
	return id, true
}

// decode reads a JSON body into v and validates it. On failure it writes the
// 400 and returns false.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, respond.CodeInvalidBody,
			"Request body must be a JSON object", err.Error())
		return false
	}
	if err := h.validate.StructCtx(r.Context(), v); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, respond.CodeValidationFailed,
			"Request body failed validation", err.Error())
		return false
	}
	return true
}

// dbError logs and reports a store failure as a 500 carrying its message.
func dbError(w http.ResponseWriter, r *http.Request, message string, err error) {
	slog.Error(message, "error", err, "path", r.URL.Path)
	respond.WriteErrorDetail(w, http.StatusInternalServerError, respond.CodeDBError, message, err.Error())
}

// deleted maps a delete result onto 200, 404, or 500.
func deleted(w http.ResponseWriter, r *http.Request, entity string, err error) {
	switch {
	case err == nil:
		respond.WriteJSON(w, http.StatusOK, messageResponse{Message: entity + " deleted"})
	case errors.Is(err, db.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, respond.CodeNotFound, entity+" not found")
	default:
		dbError(w, r, "Failed to delete "+entity, err)
	}
}
