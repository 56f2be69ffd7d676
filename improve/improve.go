// Package improve implements C5: the time-bounded simulated-annealing
// driver that repeatedly calls Tree.ImproveOnce under a wall-clock budget,
// retaining the best tree seen (spec §4.5).
package improve

import (
	"log/slog"
	"time"

	"github.com/steinertree/mctree/config"
	"github.com/steinertree/mctree/mctree"
)

// Recorder receives the total attempt count from one ImproveTree run
// (mirrors Statistics.nbImproveTry in the original). Implemented by
// stats.Stats; a nil Recorder disables telemetry entirely.
type Recorder interface {
	RecordImproveAttempts(attempts int)
}

// temperature derives the simulated-annealing temperature for the current
// round from elapsed/remaining time, per the configured schedule (spec
// §4.5).
func temperature(cfg config.Config, elapsed, maxTime time.Duration) float64 {
	if cfg.TemperatureSchedule() == config.Constant {
		return cfg.ConstantTemperature()
	}
	remaining := maxTime - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return float64(remaining.Milliseconds()) / 10
}

// ImproveTree runs improveOnce in a tight loop until maxTime elapses,
// decaying the tabu list every round and clearing it at the start, and
// returns the best (lowest-weight) snapshot observed (spec §4.5). The
// input tree t is mutated in place; callers that want to keep the
// pre-improvement tree should snapshot it themselves first.
func ImproveTree(t *mctree.Tree, maxTime time.Duration, cfg config.Config, rec Recorder) *mctree.Tree {
	start := time.Now()
	best := t.Snapshot()
	bestCost := t.Weight()
	t.TabuClear()

	attempt := 0
	for time.Since(start) < maxTime {
		attempt++
		temp := temperature(cfg, time.Since(start), maxTime)

		t.ImproveOnce(attempt, temp)
		t.TabuDecay()

		if t.Weight() < bestCost {
			best = t.Snapshot()
			bestCost = t.Weight()
		}
	}

	if rec != nil {
		rec.RecordImproveAttempts(attempt)
	}
	slog.Debug("improveTree finished", "attempts", attempt, "bestCost", bestCost, "elapsed", time.Since(start))
	return best
}
