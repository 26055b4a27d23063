package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// SessionsHandler opens and closes entry sessions.
type SessionsHandler struct {
	deps Dependencies
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps Dependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

type startSessionRequest struct {
	EventID string `json:"event_id"`
	DrillID string `json:"drill_id"`
	Actor   string `json:"actor"`
}

func (r startSessionRequest) validate() error {
	switch {
	case strings.TrimSpace(r.EventID) == "":
		return NewKind("api.start_session", ErrBadRequest)
	case strings.TrimSpace(r.DrillID) == "":
		return NewKind("api.start_session", ErrBadRequest)
	case strings.TrimSpace(r.Actor) == "":
		return NewKind("api.start_session", ErrBadRequest)
	}
	return nil
}

type startSessionResponse struct {
	SessionID string `json:"session_id"`
}

// HandleStart handles POST /sessions.
func (h *SessionsHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	const op = "api.start_session"
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	id, err := h.deps.StartSession(r.Context(), req.EventID, req.Actor, req.DrillID)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, startSessionResponse{SessionID: id})
}

// HandleEnd handles DELETE /sessions/{id}.
func (h *SessionsHandler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	const op = "api.end_session"
	if err := h.deps.EndSession(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
