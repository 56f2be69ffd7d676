package scenario_test

import (
	"math/rand"
	"testing"

	"github.com/steinertree/mctree/config"
	"github.com/steinertree/mctree/events"
	"github.com/steinertree/mctree/mctree"
	"github.com/steinertree/mctree/network"
	"github.com/steinertree/mctree/scenario"
	"github.com/steinertree/mctree/stats"
)

func completeGraph5(t *testing.T) (*network.Graph, *network.Oracle) {
	t.Helper()
	nodes := []int{0, 1, 2, 3, 4}
	var edges []network.Edge
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			edges = append(edges, network.Edge{U: nodes[i], V: nodes[j], Weight: 1})
		}
	}
	g, err := network.New(nodes, edges)
	if err != nil {
		t.Fatalf("network.New: %v", err)
	}
	return g, network.BuildOracle(g)
}

func TestOrder_OrderedLeavesClientsUnchanged(t *testing.T) {
	_, o := completeGraph5(t)
	evs := []events.Event{
		{Action: events.Add, Arg: 1},
		{Action: events.Add, Arg: 2},
		{Action: events.Tick, Arg: 0},
	}
	cfg := config.New()
	out, err := scenario.Order(evs, o, 0, cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if out[0].Arg != 1 || out[1].Arg != 2 || out[2].Action != events.Tick {
		t.Fatalf("ORDERED must preserve input order, got %+v", out)
	}
}

func TestOrder_ClosestSourceRejected(t *testing.T) {
	_, o := completeGraph5(t)
	cfg := config.New(config.WithClientOrdering(config.ClosestSource))
	_, err := scenario.Order(nil, o, 0, cfg, rand.New(rand.NewSource(1)))
	if err != scenario.ErrClosestSourceUnsupported {
		t.Fatalf("want ErrClosestSourceUnsupported, got %v", err)
	}
}

func TestOrder_ClosestTreePicksNearestFirst(t *testing.T) {
	g, err := network.New(
		[]int{0, 1, 2, 3},
		[]network.Edge{
			{U: 0, V: 1, Weight: 1},
			{U: 1, V: 2, Weight: 1},
			{U: 2, V: 3, Weight: 1},
		},
	)
	if err != nil {
		t.Fatalf("network.New: %v", err)
	}
	o := network.BuildOracle(g)
	evs := []events.Event{
		{Action: events.Add, Arg: 3},
		{Action: events.Add, Arg: 1},
	}
	cfg := config.New(config.WithClientOrdering(config.ClosestTree))
	out, err := scenario.Order(evs, o, 0, cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if out[0].Arg != 1 {
		t.Fatalf("want node 1 (distance 1 from root) picked before node 3 (distance 3), got %+v", out)
	}
}

func TestRun_S1SingleAdd(t *testing.T) {
	g, o := completeGraph5(t)
	cfg := config.New()
	tr, err := mctree.New(g, o, 0, cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("mctree.New: %v", err)
	}
	evs := []events.Event{{Action: events.Add, Arg: 1}}
	st := stats.New()
	if err := scenario.Run(tr, evs, cfg, st); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if tr.Weight() != 1 {
		t.Fatalf("want weight 1, got %d", tr.Weight())
	}
}

func TestRun_TickRecordsCost(t *testing.T) {
	g, o := completeGraph5(t)
	cfg := config.New()
	tr, err := mctree.New(g, o, 0, cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("mctree.New: %v", err)
	}
	evs := []events.Event{
		{Action: events.Add, Arg: 1},
		{Action: events.Tick, Arg: 0},
	}
	st := stats.New()
	if err := scenario.Run(tr, evs, cfg, st); err != nil {
		t.Fatalf("Run: %v", err)
	}
	ticks := st.TickCosts()
	if len(ticks) != 1 || ticks[0] != 1 {
		t.Fatalf("want tick cost [1], got %v", ticks)
	}
}

func TestRun_RemoveNonClientIsNoop(t *testing.T) {
	g, o := completeGraph5(t)
	cfg := config.New()
	tr, err := mctree.New(g, o, 0, cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("mctree.New: %v", err)
	}
	evs := []events.Event{{Action: events.Remove, Arg: 2}}
	if err := scenario.Run(tr, evs, cfg, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if tr.Weight() != 0 {
		t.Fatalf("removing a non-client must be a no-op, got weight %d", tr.Weight())
	}
}

// pim_mode skips every improve event, leaving the tree unchanged.
func TestRun_ImproveSkippedUnderPIMMode(t *testing.T) {
	g, o := completeGraph5(t)
	cfg := config.New(config.WithPIMMode(true))
	tr, err := mctree.New(g, o, 0, cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("mctree.New: %v", err)
	}
	evs := []events.Event{
		{Action: events.Add, Arg: 1},
		{Action: events.Improve, Arg: 25},
	}
	if err := scenario.Run(tr, evs, cfg, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := tr.ValidatePIM(); err != nil {
		t.Fatalf("ValidatePIM: %v", err)
	}
}
