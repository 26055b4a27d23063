package api

import (
	"errors"
	"net/http"

	"github.com/fieldday/scorekeeper/internal/adapters/store"
	service "github.com/fieldday/scorekeeper/internal/app"
	"github.com/fieldday/scorekeeper/internal/domain/entry"
	"github.com/fieldday/scorekeeper/internal/domain/guard"
	"github.com/fieldday/scorekeeper/internal/domain/locksync"
	"github.com/fieldday/scorekeeper/internal/domain/resolve"
	"github.com/fieldday/scorekeeper/internal/session"
)

// writeDomainError maps domain error kinds onto HTTP statuses and
// machine-readable codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entry.ErrMissingField),
		errors.Is(err, entry.ErrUnknownPlayer),
		errors.Is(err, entry.ErrInvalidScore):
		writeError(w, http.StatusUnprocessableEntity, "parse_error:"+entry.Kind(err), err)
	case errors.Is(err, resolve.ErrEventLocked):
		writeError(w, http.StatusConflict, "event_locked", err)
	case errors.Is(err, resolve.ErrDecisionPending),
		errors.Is(err, resolve.ErrNoDecisionPending),
		errors.Is(err, guard.ErrNoSwitchPending):
		writeError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, session.ErrBusy):
		writeError(w, http.StatusTooManyRequests, "backpressure", err)
	case errors.Is(err, session.ErrClosed),
		errors.Is(err, service.ErrUnknownSession):
		writeError(w, http.StatusNotFound, "unknown_session", err)
	case errors.Is(err, service.ErrUnknownEvent),
		errors.Is(err, service.ErrUnknownDrill),
		errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, store.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", err)
	case errors.Is(err, locksync.ErrVerification):
		writeError(w, http.StatusConflict, "verification_mismatch", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
