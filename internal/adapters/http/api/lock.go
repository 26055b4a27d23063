package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fieldday/scorekeeper/internal/domain/locksync"
)

const defaultAuditLimit = 20

// LockHandler toggles event locks and serves the audit trail.
type LockHandler struct {
	deps Dependencies
}

// NewLockHandler creates a new lock handler.
func NewLockHandler(deps Dependencies) *LockHandler {
	return &LockHandler{deps: deps}
}

type lockRequest struct {
	Locked bool   `json:"locked"`
	Actor  string `json:"actor"`
	Reason string `json:"reason,omitempty"`
}

type lockResponse struct {
	IsLocked bool `json:"is_locked"`
	Changed  bool `json:"changed"`
	Verified bool `json:"verified"`
}

// HandleToggle handles PATCH /events/{id}/lock.
func (h *LockHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	const op = "api.toggle_lock"
	var req lockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Actor) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	res, err := h.deps.ToggleLock(r.Context(), r.PathValue("id"), req.Locked, req.Actor, req.Reason)
	if err != nil && !errors.Is(err, locksync.ErrVerification) {
		writeDomainError(w, Wrap(op, err))
		return
	}

	body := lockResponse{IsLocked: res.IsLocked, Changed: res.Changed, Verified: res.Verified}
	if !res.Verified {
		// The write may not have persisted; the caller must re-fetch.
		writeJSON(w, http.StatusConflict, body)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

type auditRow struct {
	Actor    string    `json:"actor"`
	Previous bool      `json:"previous"`
	New      bool      `json:"new"`
	Reason   string    `json:"reason,omitempty"`
	At       time.Time `json:"at"`
}

// HandleAudit handles GET /events/{id}/audit?limit=N.
func (h *LockHandler) HandleAudit(w http.ResponseWriter, r *http.Request) {
	const op = "api.lock_audit"
	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	records, err := h.deps.AuditLog(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}

	rows := make([]auditRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, auditRow{
			Actor:    rec.Actor,
			Previous: rec.Previous,
			New:      rec.New,
			Reason:   rec.Reason,
			At:       rec.At,
		})
	}
	writeJSON(w, http.StatusOK, rows)
}
