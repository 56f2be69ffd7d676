package improve_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/steinertree/mctree/config"
	"github.com/steinertree/mctree/improve"
	"github.com/steinertree/mctree/mctree"
	"github.com/steinertree/mctree/network"
	"github.com/stretchr/testify/require"
)

func squareWithDiagonal(t *testing.T) (*network.Graph, *network.Oracle) {
	t.Helper()
	g, err := network.New(
		[]int{0, 1, 2, 3},
		[]network.Edge{
			{U: 0, V: 1, Weight: 1},
			{U: 1, V: 2, Weight: 1},
			{U: 2, V: 3, Weight: 1},
			{U: 3, V: 0, Weight: 1},
			{U: 0, V: 2, Weight: 3},
		},
	)
	require.NoError(t, err)
	return g, network.BuildOracle(g)
}

type countingRecorder struct {
	attempts int
}

func (r *countingRecorder) RecordImproveAttempts(attempts int) {
	r.attempts = attempts
}

// S4/P5: the returned snapshot's weight never exceeds the input tree's
// starting weight (best-cost monotonicity).
func TestImproveTree_NeverWorseThanStart(t *testing.T) {
	g, o := squareWithDiagonal(t)
	cfg := config.New(config.WithSelectionHeuristic(config.MostExpensive))
	tr, err := mctree.New(g, o, 0, cfg, rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	_, err = tr.AddClient(2)
	require.NoError(t, err)
	startWeight := tr.Weight()

	rec := &countingRecorder{}
	best := improve.ImproveTree(tr, 30*time.Millisecond, cfg, rec)

	require.LessOrEqual(t, best.Weight(), startWeight)
	require.NoError(t, best.Validate())
	require.Greater(t, rec.attempts, 0)
}

// S5: a zero-length time budget must be a no-op — improveTree returns
// immediately without ever calling improveOnce.
func TestImproveTree_ZeroBudgetIsNoop(t *testing.T) {
	g, o := squareWithDiagonal(t)
	cfg := config.New()
	tr, err := mctree.New(g, o, 0, cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	_, err = tr.AddClient(2)
	require.NoError(t, err)
	startWeight := tr.Weight()

	rec := &countingRecorder{}
	best := improve.ImproveTree(tr, 0, cfg, rec)

	require.Equal(t, startWeight, best.Weight())
	require.Equal(t, 0, rec.attempts)
}

// Under the CONSTANT schedule, ImproveTree still makes and records at
// least one improveOnce attempt within its budget.
func TestImproveTree_ConstantScheduleRecorded(t *testing.T) {
	g, o := squareWithDiagonal(t)
	cfg := config.New(
		config.WithTemperatureSchedule(config.Constant),
		config.WithSelectionHeuristic(config.MostExpensive),
	)
	tr, err := mctree.New(g, o, 0, cfg, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	_, err = tr.AddClient(2)
	require.NoError(t, err)

	rec := &countingRecorder{}
	improve.ImproveTree(tr, 10*time.Millisecond, cfg, rec)
	require.Greater(t, rec.attempts, 0)
}
