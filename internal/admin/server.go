// Package admin serves the operational HTTP surface of the planner: dry-run
// plans, persisted rounds, metrics and version.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dynoinc/skyplan/internal/background"
	"github.com/dynoinc/skyplan/internal/database"
	"github.com/dynoinc/skyplan/internal/files"
	"github.com/dynoinc/skyplan/internal/middleware"
)

const contentTypeJSON = "application/json"

type planner interface {
	Plan(ctx context.Context, partition files.PartitionID, skipUnchanged bool) (background.Plan, bool, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

type server struct {
	planner planner
	db      database.Querier
}

// NewRouter builds the admin routes. db may be nil when no catalog database is
// configured, in which case persisted rounds are unavailable.
func NewRouter(p planner, db database.Querier) http.Handler {
	s := &server{planner: p, db: db}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.LogErrors)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/partitions/{id}", func(r chi.Router) {
		r.Get("/plan", s.handlePlan)
		r.Get("/rounds/latest", s.handleLatestRound)
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": versioninfo.Short()})
}

// handlePlan plans the next round of a partition without persisting it.
func (s *server) handlePlan(w http.ResponseWriter, r *http.Request) {
	partition, ok := partitionID(w, r)
	if !ok {
		return
	}

	plan, ok, err := s.planner.Plan(r.Context(), partition, false)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "partition has no files"})
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

func (s *server) handleLatestRound(w http.ResponseWriter, r *http.Request) {
	partition, ok := partitionID(w, r)
	if !ok {
		return
	}

	if s.db == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: "no catalog database configured"})
		return
	}

	latest, err := s.db.GetLatestCompactionRound(r.Context(), int64(partition))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "no rounds planned yet"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":          latest.ID,
		"partition":   latest.PartitionID,
		"fingerprint": uint64(latest.Fingerprint),
		"attrs":       latest.Attrs,
		"created_at":  latest.CreatedAt.Time,
	})
}

func partitionID(w http.ResponseWriter, r *http.Request) (files.PartitionID, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid partition id"})
		return 0, false
	}
	return files.PartitionID(id), true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("error encoding response", "error", err)
	}
}
