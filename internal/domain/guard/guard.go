// Package guard protects an in-progress entry session when the operator
// changes the active drill, so unsaved context is never lost silently.
package guard

import (
	"errors"

	"github.com/fieldday/scorekeeper/internal/session"
	"github.com/fieldday/scorekeeper/pkg/metrics"
)

// ErrNoSwitchPending is returned by Confirm/Cancel when no switch awaits
// confirmation.
var ErrNoSwitchPending = errors.New("no drill switch pending")

// Outcome classifies a switch request.
type Outcome int

const (
	// OutcomeSwitched means the active drill changed immediately.
	OutcomeSwitched Outcome = iota
	// OutcomeConfirmationRequired means the operator must confirm first.
	OutcomeConfirmationRequired
	// OutcomeUnchanged means the requested drill is already active.
	OutcomeUnchanged
)

// SwitchResult reports what a confirmed switch cleaned up.
type SwitchResult struct {
	OldDrillID      string
	NewDrillID      string
	ImplicitCancel  bool // an outstanding duplicate decision was discarded
	ClearedAutoRepl bool // the old drill carried an auto-replace preference
}

// RequestSwitch asks to change the session's active drill. Switching is
// immediate when the current drill has no entries recorded this session
// and no duplicate decision is outstanding; otherwise the operator must
// confirm, since either would be lost. A request while a confirmation is
// already pending re-shows the same pending confirmation.
func RequestSwitch(st *session.State, newDrillID string) Outcome {
	if st.Phase == session.PhasePendingConfirmation {
		return OutcomeConfirmationRequired
	}
	if newDrillID == st.ActiveDrillID {
		return OutcomeUnchanged
	}

	if st.EntryCount(st.ActiveDrillID) == 0 && st.Pending() == nil {
		complete(st, newDrillID)
		return OutcomeSwitched
	}

	st.Phase = session.PhasePendingConfirmation
	st.PendingDrillID = newDrillID
	return OutcomeConfirmationRequired
}

// Confirm applies a pending switch. Any outstanding duplicate decision is
// treated as an implicit Cancel, and the old drill's auto-replace
// preference is dropped.
func Confirm(st *session.State) (SwitchResult, error) {
	if st.Phase != session.PhasePendingConfirmation {
		return SwitchResult{}, ErrNoSwitchPending
	}

	st.Phase = session.PhaseSwitching

	res := SwitchResult{
		OldDrillID: st.ActiveDrillID,
		NewDrillID: st.PendingDrillID,
	}
	if st.Pending() != nil {
		st.ClearPending()
		res.ImplicitCancel = true
	}
	if st.AutoReplace(st.ActiveDrillID) {
		res.ClearedAutoRepl = true
	}

	complete(st, st.PendingDrillID)
	return res, nil
}

// CancelSwitch abandons a pending switch; the active drill and all
// session state stay as they were.
func CancelSwitch(st *session.State) error {
	if st.Phase != session.PhasePendingConfirmation {
		return ErrNoSwitchPending
	}
	st.Phase = session.PhaseIdle
	st.PendingDrillID = ""
	return nil
}

// complete activates the new drill. The old drill's auto-replace
// preference is always reset; the new drill's starts absent.
func complete(st *session.State, newDrillID string) {
	st.ClearAutoReplace(st.ActiveDrillID)
	st.ClearAutoReplace(newDrillID)
	st.ActiveDrillID = newDrillID
	st.PendingDrillID = ""
	st.Phase = session.PhaseIdle
	metrics.RecordDrillSwitch()
}
