package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fieldday/scorekeeper/internal/domain/guard"
)

// DrillHandler drives the drill switch guard for a session.
type DrillHandler struct {
	deps Dependencies
}

// NewDrillHandler creates a new drill handler.
func NewDrillHandler(deps Dependencies) *DrillHandler {
	return &DrillHandler{deps: deps}
}

type switchRequest struct {
	DrillID string `json:"drill_id"`
}

type switchResponse struct {
	Outcome        string `json:"outcome"` // switched, confirmation_required, unchanged
	OldDrillID     string `json:"old_drill_id,omitempty"`
	NewDrillID     string `json:"new_drill_id,omitempty"`
	ImplicitCancel bool   `json:"implicit_cancel,omitempty"`
}

// HandleRequest handles POST /sessions/{id}/drill.
func (h *DrillHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	const op = "api.request_drill_switch"
	var req switchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.DrillID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	out, err := h.deps.RequestDrillSwitch(r.Context(), r.PathValue("id"), req.DrillID)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}

	switch out {
	case guard.OutcomeSwitched:
		writeJSON(w, http.StatusOK, switchResponse{Outcome: "switched", NewDrillID: req.DrillID})
	case guard.OutcomeUnchanged:
		writeJSON(w, http.StatusOK, switchResponse{Outcome: "unchanged"})
	default:
		writeJSON(w, http.StatusConflict, switchResponse{Outcome: "confirmation_required", NewDrillID: req.DrillID})
	}
}

// HandleConfirm handles POST /sessions/{id}/drill/confirm.
func (h *DrillHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	const op = "api.confirm_drill_switch"
	res, err := h.deps.ConfirmDrillSwitch(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, switchResponse{
		Outcome:        "switched",
		OldDrillID:     res.OldDrillID,
		NewDrillID:     res.NewDrillID,
		ImplicitCancel: res.ImplicitCancel,
	})
}

// HandleCancel handles POST /sessions/{id}/drill/cancel.
func (h *DrillHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	const op = "api.cancel_drill_switch"
	if err := h.deps.CancelDrillSwitch(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, switchResponse{Outcome: "unchanged"})
}
