package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fieldday/scorekeeper/internal/domain/entry"
	"github.com/fieldday/scorekeeper/internal/domain/resolve"
)

// EntriesHandler accepts operator input lines and duplicate decisions.
type EntriesHandler struct {
	deps Dependencies
}

// NewEntriesHandler creates a new entries handler.
func NewEntriesHandler(deps Dependencies) *EntriesHandler {
	return &EntriesHandler{deps: deps}
}

type submitEntryRequest struct {
	Mode   string `json:"mode"`             // "standard" or "rapid"
	Player string `json:"player,omitempty"` // standard mode
	Score  string `json:"score,omitempty"`  // standard mode
	Raw    string `json:"raw,omitempty"`    // rapid mode
}

func (r submitEntryRequest) input() (entry.Input, error) {
	switch strings.ToLower(strings.TrimSpace(r.Mode)) {
	case "standard", "":
		return entry.Input{Mode: entry.ModeStandard, PlayerField: r.Player, ScoreField: r.Score}, nil
	case "rapid":
		return entry.Input{Mode: entry.ModeRapid, Raw: r.Raw}, nil
	default:
		return entry.Input{}, NewKind("api.submit_entry", ErrBadRequest)
	}
}

type submissionResponse struct {
	Outcome       string   `json:"outcome"`
	PlayerID      string   `json:"player_id,omitempty"`
	DrillID       string   `json:"drill_id,omitempty"`
	Value         *float64 `json:"value,omitempty"`
	ExistingValue *float64 `json:"existing_value,omitempty"`
	Reason        string   `json:"reason,omitempty"`
}

func toSubmissionResponse(res resolve.Result) (submissionResponse, int) {
	out := submissionResponse{
		PlayerID: res.Candidate.PlayerID,
		DrillID:  res.Candidate.DrillID,
	}
	v := res.Candidate.Value
	out.Value = &v

	switch res.Outcome {
	case resolve.OutcomeCommitted:
		out.Outcome = "committed"
		return out, http.StatusOK
	case resolve.OutcomeAwaitingDecision:
		out.Outcome = "awaiting_decision"
		if res.Existing != nil {
			ev := res.Existing.Value
			out.ExistingValue = &ev
		}
		return out, http.StatusConflict
	case resolve.OutcomeCancelled:
		out.Outcome = "cancelled"
		return out, http.StatusOK
	default:
		out.Outcome = "rejected"
		if res.Reason != nil {
			out.Reason = res.Reason.Error()
		}
		return out, http.StatusConflict
	}
}

// HandleSubmit handles POST /sessions/{id}/entries.
func (h *EntriesHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_entry"
	var req submitEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	in, err := req.input()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	res, err := h.deps.SubmitEntry(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	body, status := toSubmissionResponse(res)
	writeJSON(w, status, body)
}

type decisionRequest struct {
	Decision           string `json:"decision"` // "replace" or "cancel"
	PersistAutoReplace bool   `json:"persist_auto_replace"`
}

// HandleDecision handles POST /sessions/{id}/decision. The UI must call
// this exactly once per awaiting-decision response.
func (h *EntriesHandler) HandleDecision(w http.ResponseWriter, r *http.Request) {
	const op = "api.resolve_duplicate"
	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	var d resolve.Decision
	switch strings.ToLower(strings.TrimSpace(req.Decision)) {
	case "replace":
		d = resolve.Decision{Kind: resolve.Replace, PersistAutoReplace: req.PersistAutoReplace}
	case "cancel":
		d = resolve.Decision{Kind: resolve.Cancel}
	default:
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	res, err := h.deps.ResolveDuplicate(r.Context(), r.PathValue("id"), d)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	body, status := toSubmissionResponse(res)
	writeJSON(w, status, body)
}
