package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/martinsuchenak/camguard/internal/classify"
	"github.com/martinsuchenak/camguard/internal/log"
	"github.com/martinsuchenak/camguard/internal/storage"
	"github.com/martinsuchenak/camguard/pkg/model"
)

// DetectionService is the detection surface the handlers consume
type DetectionService interface {
	ClassifyDevices(ctx context.Context) []model.Classification
	Run(ctx context.Context) *model.DetectionRun
}

// Handler handles HTTP requests
type Handler struct {
	detector  DetectionService
	store     storage.HistoryStore // nil disables the history endpoints
	blacklist *classify.Blacklist
}

// NewHandler creates a new API handler
func NewHandler(detector DetectionService, store storage.HistoryStore, blacklist *classify.Blacklist) *Handler {
	return &Handler{
		detector:  detector,
		store:     store,
		blacklist: blacklist,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/detect", h.detect)
	mux.HandleFunc("GET /api/devices", h.listDevices)
	mux.HandleFunc("GET /api/runs", h.listRuns)
	mux.HandleFunc("GET /api/runs/latest", h.latestRun)
	mux.HandleFunc("GET /api/runs/{id}", h.getRun)
	mux.HandleFunc("GET /api/blacklist", h.getBlacklist)
	mux.HandleFunc("GET /api/health", h.health)
}

// detect handles POST /api/detect: one fresh detection pass
func (h *Handler) detect(w http.ResponseWriter, r *http.Request) {
	run := h.detector.Run(r.Context())

	if h.store != nil {
		if err := h.store.SaveRun(run); err != nil {
			// The verdict is still valid; persistence is best effort
			log.Warn("Failed to save detection run", "run_id", run.ID, "error", err)
		}
	}

	h.writeJSON(w, http.StatusOK, run)
}

// listDevices handles GET /api/devices: the raw merged inventory with
// per-device classification
func (h *Handler) listDevices(w http.ResponseWriter, r *http.Request) {
	results := h.detector.ClassifyDevices(r.Context())
	h.writeJSON(w, http.StatusOK, results)
}

// listRuns handles GET /api/runs
func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		h.writeError(w, http.StatusNotFound, "history not enabled")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			h.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	runs, err := h.store.ListRuns(limit)
	if err != nil {
		h.internalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, runs)
}

// latestRun handles GET /api/runs/latest. The literal pattern takes
// precedence over the {id} wildcard.
func (h *Handler) latestRun(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		h.writeError(w, http.StatusNotFound, "history not enabled")
		return
	}

	run, err := h.store.LatestRun()
	if err != nil {
		if errors.Is(err, storage.ErrRunNotFound) {
			h.writeError(w, http.StatusNotFound, "no runs recorded")
			return
		}
		h.internalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, run)
}

// getRun handles GET /api/runs/{id}
func (h *Handler) getRun(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		h.writeError(w, http.StatusNotFound, "history not enabled")
		return
	}

	run, err := h.store.GetRun(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrRunNotFound) {
			h.writeError(w, http.StatusNotFound, "run not found")
			return
		}
		h.internalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, run)
}

// getBlacklist handles GET /api/blacklist: the active rule tables, for
// diagnosing why a device classified the way it did
func (h *Handler) getBlacklist(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.blacklist)
}

// health handles GET /api/health
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func (h *Handler) internalError(w http.ResponseWriter, err error) {
	log.Error("Internal server error", "error", err)
	h.writeError(w, http.StatusInternalServerError, "Internal Server Error")
}
