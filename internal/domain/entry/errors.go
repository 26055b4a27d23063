package entry

import "errors"

// Sentinel kinds for parse errors. All are operator-recoverable: the
// caller re-prompts, nothing is mutated.
var (
	ErrMissingField  = errors.New("missing field")
	ErrUnknownPlayer = errors.New("unknown player")
	ErrInvalidScore  = errors.New("invalid score")
)

// Kind returns a short machine-readable name for a parse error, or "" if
// err is not a parse error.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrMissingField):
		return "missing_field"
	case errors.Is(err, ErrUnknownPlayer):
		return "unknown_player"
	case errors.Is(err, ErrInvalidScore):
		return "invalid_score"
	default:
		return ""
	}
}
