// Package ranking computes weighted, dense-ranked standings from the
// full set of recorded scores. Pure and total: no I/O, no failure modes.
package ranking

import (
	"sort"
	"time"

	"github.com/fieldday/scorekeeper/internal/domain/model"
	"github.com/fieldday/scorekeeper/pkg/metrics"
)

// normalizedScale is the common scale every drill value is mapped onto
// before weighting, so "larger means better" holds uniformly.
const normalizedScale = 100.0

// Normalize maps a raw drill value onto [0, normalizedScale]. Values are
// clamped into the drill's domain first; lower-is-better drills are
// inverted. A degenerate domain (Max == Min) maps to the midpoint.
func Normalize(d model.Drill, v float64) float64 {
	if d.Max == d.Min {
		return normalizedScale / 2
	}

	clamped := v
	if clamped < d.Min {
		clamped = d.Min
	}
	if clamped > d.Max {
		clamped = d.Max
	}

	if d.HigherIsBetter {
		return (clamped - d.Min) / (d.Max - d.Min) * normalizedScale
	}
	return (d.Max - clamped) / (d.Max - d.Min) * normalizedScale
}

// Compute derives the ordered ranking for every player with at least one
// recorded score. Missing drills contribute zero. Weights may be zero or
// negative. Ties on exactly equal composites share a dense rank; order
// within the output is always deterministic (composite desc, then player
// ID asc).
func Compute(scores []model.ScoreEntry, drills map[string]model.Drill, weights model.WeightConfig) []model.RankingRow {
	start := time.Now()
	defer func() {
		metrics.RecordRankingRecompute()
		metrics.RecordRankingDuration(float64(time.Since(start).Milliseconds()))
	}()

	composites := make(map[string]float64)
	for _, s := range scores {
		if _, seen := composites[s.PlayerID]; !seen {
			composites[s.PlayerID] = 0
		}

		d, ok := drills[s.DrillID]
		if !ok {
			continue // unknown drill carries no weight
		}
		w := weightFor(d, weights)
		composites[s.PlayerID] += Normalize(d, s.Value) * w
	}

	rows := make([]model.RankingRow, 0, len(composites))
	for playerID, composite := range composites {
		rows = append(rows, model.RankingRow{PlayerID: playerID, Composite: composite})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Composite != rows[j].Composite {
			return rows[i].Composite > rows[j].Composite
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})

	// Dense 1-based ranks: ties share a rank, the next distinct
	// composite takes the next integer.
	rank := 0
	for i := range rows {
		if i == 0 || rows[i].Composite != rows[i-1].Composite {
			rank++
		}
		rows[i].Rank = rank
	}
	return rows
}

// weightFor resolves the drill's weight: an explicit entry in weights
// wins, otherwise the drill's default applies.
func weightFor(d model.Drill, weights model.WeightConfig) float64 {
	if weights != nil {
		if w, ok := weights[d.ID]; ok {
			return w
		}
	}
	return d.Weight
}
