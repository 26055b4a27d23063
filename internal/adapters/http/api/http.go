// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fieldday/scorekeeper/internal/adapters/audit"
	"github.com/fieldday/scorekeeper/internal/domain/entry"
	"github.com/fieldday/scorekeeper/internal/domain/guard"
	"github.com/fieldday/scorekeeper/internal/domain/locksync"
	"github.com/fieldday/scorekeeper/internal/domain/model"
	"github.com/fieldday/scorekeeper/internal/domain/resolve"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StartSession(ctx context.Context, eventID, actor, drillID string) (string, error)
	EndSession(ctx context.Context, sessionID string) error

	SubmitEntry(ctx context.Context, sessionID string, in entry.Input) (resolve.Result, error)
	ResolveDuplicate(ctx context.Context, sessionID string, d resolve.Decision) (resolve.Result, error)

	RequestDrillSwitch(ctx context.Context, sessionID, drillID string) (guard.Outcome, error)
	ConfirmDrillSwitch(ctx context.Context, sessionID string) (guard.SwitchResult, error)
	CancelDrillSwitch(ctx context.Context, sessionID string) error

	ToggleLock(ctx context.Context, eventID string, desired bool, actor, reason string) (locksync.LockResult, error)
	Rankings(ctx context.Context, eventID string, overrides model.WeightConfig) ([]model.RankingRow, error)
	AuditLog(ctx context.Context, eventID string, n int) ([]audit.Record, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	sessionsHandler *SessionsHandler
	entriesHandler  *EntriesHandler
	drillHandler    *DrillHandler
	lockHandler     *LockHandler
	rankingsHandler *RankingsHandler
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		sessionsHandler: NewSessionsHandler(deps),
		entriesHandler:  NewEntriesHandler(deps),
		drillHandler:    NewDrillHandler(deps),
		lockHandler:     NewLockHandler(deps),
		rankingsHandler: NewRankingsHandler(deps),
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /sessions", MetricsMiddleware(s.sessionsHandler.HandleStart, "sessions"))
	mux.HandleFunc("DELETE /sessions/{id}", MetricsMiddleware(s.sessionsHandler.HandleEnd, "sessions"))

	mux.HandleFunc("POST /sessions/{id}/entries", MetricsMiddleware(s.entriesHandler.HandleSubmit, "entries"))
	mux.HandleFunc("POST /sessions/{id}/decision", MetricsMiddleware(s.entriesHandler.HandleDecision, "decision"))

	mux.HandleFunc("POST /sessions/{id}/drill", MetricsMiddleware(s.drillHandler.HandleRequest, "drill"))
	mux.HandleFunc("POST /sessions/{id}/drill/confirm", MetricsMiddleware(s.drillHandler.HandleConfirm, "drill"))
	mux.HandleFunc("POST /sessions/{id}/drill/cancel", MetricsMiddleware(s.drillHandler.HandleCancel, "drill"))

	mux.HandleFunc("PATCH /events/{id}/lock", MetricsMiddleware(s.lockHandler.HandleToggle, "lock"))
	mux.HandleFunc("GET /events/{id}/audit", MetricsMiddleware(s.lockHandler.HandleAudit, "audit"))

	mux.HandleFunc("GET /events/{id}/rankings", MetricsMiddleware(s.rankingsHandler.HandleGet, "rankings"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
