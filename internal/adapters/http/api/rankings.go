package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fieldday/scorekeeper/internal/domain/model"
)

// weightParamPrefix marks per-drill weight overrides in the query string,
// e.g. ?w.forty_yard=2&w.bench=-1.
const weightParamPrefix = "w."

// RankingsHandler serves the derived event ranking.
type RankingsHandler struct {
	deps Dependencies
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps Dependencies) *RankingsHandler {
	return &RankingsHandler{deps: deps}
}

type rankingRow struct {
	Rank      int     `json:"rank"`
	PlayerID  string  `json:"player_id"`
	Composite float64 `json:"composite"`
}

// HandleGet handles GET /events/{id}/rankings.
func (h *RankingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_rankings"

	overrides, err := weightOverrides(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	rows, err := h.deps.Rankings(r.Context(), r.PathValue("id"), overrides)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}

	out := make([]rankingRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, rankingRow{Rank: row.Rank, PlayerID: row.PlayerID, Composite: row.Composite})
	}
	writeJSON(w, http.StatusOK, out)
}

// weightOverrides extracts per-drill weight overrides from the query.
// Returns nil when no override is present so drill defaults apply.
func weightOverrides(r *http.Request) (model.WeightConfig, error) {
	var overrides model.WeightConfig
	for key, vals := range r.URL.Query() {
		if !strings.HasPrefix(key, weightParamPrefix) || len(vals) == 0 {
			continue
		}
		weight, err := strconv.ParseFloat(vals[0], 64)
		if err != nil {
			return nil, err
		}
		if overrides == nil {
			overrides = make(model.WeightConfig)
		}
		overrides[strings.TrimPrefix(key, weightParamPrefix)] = weight
	}
	return overrides, nil
}
