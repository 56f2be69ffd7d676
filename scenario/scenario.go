// Package scenario implements C6: the event-dispatch loop that drives a
// MulticastTree through an ordered sequence of join/leave/tick/improve
// events, applying the configured client-ordering policy up front.
// Grounded on networkgraph.py.buildMCTree.
package scenario

import (
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/steinertree/mctree/config"
	"github.com/steinertree/mctree/events"
	"github.com/steinertree/mctree/improve"
	"github.com/steinertree/mctree/mctree"
	"github.com/steinertree/mctree/network"
	"github.com/steinertree/mctree/stats"
)

// ErrClosestSourceUnsupported reports that client_ordering was set to
// CLOSEST_SOURCE: a ConfigError-class condition, preserving the
// original's "declared enum value but throws at runtime" behavior (spec
// §9 Open Questions) rather than silently aliasing it to ORDERED.
var ErrClosestSourceUnsupported = errors.New("scenario: CLOSEST_SOURCE client ordering is not supported")

// Order reorders the Add events of evs according to cfg's client_ordering
// policy (spec §4.6), leaving every Remove/Tick/Improve event and the
// relative position of each event kind untouched: only which client id
// fills each Add slot changes.
func Order(evs []events.Event, oracle *network.Oracle, root int, cfg config.Config, rng *rand.Rand) ([]events.Event, error) {
	if cfg.ClientOrdering() == config.ClosestSource {
		return nil, ErrClosestSourceUnsupported
	}

	addIdx := make([]int, 0)
	clients := make([]int, 0)
	for i, e := range evs {
		if e.Action == events.Add {
			addIdx = append(addIdx, i)
			clients = append(clients, e.Arg)
		}
	}

	var ordered []int
	switch cfg.ClientOrdering() {
	case config.Shuffled:
		ordered = append([]int(nil), clients...)
		rng.Shuffle(len(ordered), func(i, j int) { ordered[i], ordered[j] = ordered[j], ordered[i] })
	case config.ClosestTree:
		ordered = closestTreeOrder(clients, oracle, root)
	default: // ORDERED
		ordered = clients
	}

	out := append([]events.Event(nil), evs...)
	for i, idx := range addIdx {
		out[idx] = events.Event{Action: events.Add, Arg: ordered[i]}
	}
	return out, nil
}

// closestTreeOrder greedily picks, at each step, the not-yet-chosen
// client whose shortest-path length to any already-chosen node (root
// included) is smallest, breaking ties by scan order (spec §4.6).
// Grounded on networkgraph.py.buildMCTree's CLOSEST_TREE branch.
func closestTreeOrder(clients []int, oracle *network.Oracle, root int) []int {
	remaining := append([]int(nil), clients...)
	treeNodes := []int{root}
	ordered := make([]int, 0, len(clients))

	for len(remaining) > 0 {
		bestIdx := -1
		bestLen := -1
		for i, c := range remaining {
			for _, t := range treeNodes {
				l, ok := oracle.ShortestPathLength(t, c)
				if !ok {
					continue
				}
				if bestLen < 0 || l < bestLen {
					bestLen = l
					bestIdx = i
				}
			}
		}
		if bestIdx < 0 {
			// no remaining client is reachable from any tree node; preserve
			// scan order for the rest rather than looping forever.
			ordered = append(ordered, remaining...)
			break
		}
		chosen := remaining[bestIdx]
		ordered = append(ordered, chosen)
		treeNodes = append(treeNodes, chosen)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return ordered
}

// injectImproveSteps inserts an ('i', improveMaxTimeMs) event after every
// improvePeriod-th event of evs, mirroring Utils.addImproveSteps but
// applied to the whole finalized event stream rather than only the
// CLOSEST_TREE branch (spec §6 Table B: "tick count between automatic i
// events injected by the runner"). A non-positive improvePeriod disables
// injection.
func injectImproveSteps(evs []events.Event, improvePeriod, improveMaxTimeMs int) []events.Event {
	if improvePeriod <= 0 {
		return evs
	}
	out := make([]events.Event, 0, len(evs)+len(evs)/improvePeriod+1)
	for i, e := range evs {
		out = append(out, e)
		if (i+1)%improvePeriod == 0 {
			out = append(out, events.Event{Action: events.Improve, Arg: improveMaxTimeMs})
		}
	}
	return out
}

// Run drives tr through evs in order (spec §4.6), recording telemetry
// into rec if non-nil. Invariants are checked after every structural
// mutation; a breach aborts the run and returns the *mctree.InvariantError.
// TopologyError-class conditions (an event naming a node absent from the
// graph) are logged and treated as no-ops rather than aborting (spec §7).
func Run(tr *mctree.Tree, evs []events.Event, cfg config.Config, rec *stats.Stats) error {
	ordered := injectImproveSteps(evs, cfg.ImprovePeriod(), cfg.ImproveMaxTimeMS())

	for _, e := range ordered {
		nodesBefore := tr.NodeCount()
		if rec != nil {
			rec.StartEvent(nodesBefore)
		}

		switch e.Action {
		case events.Add:
			if _, err := tr.AddClient(e.Arg); err != nil {
				slog.Warn("addClient failed, treating as no-op", "client", e.Arg, "err", err)
			}
			if rec != nil {
				rec.EndEvent('a')
			}
		case events.Remove:
			if _, err := tr.RemoveClient(e.Arg); err != nil {
				slog.Warn("removeClient failed, treating as no-op", "client", e.Arg, "err", err)
			}
			if rec != nil {
				rec.EndEvent('r')
			}
		case events.Tick:
			if rec != nil {
				rec.RecordTick(tr.Weight())
			}
		case events.Improve:
			if err := runImprove(tr, e.Arg, cfg, rec); err != nil {
				return err
			}
			continue // improve has already validated and recorded its own timing
		}

		if e.Action == events.Add || e.Action == events.Remove {
			if err := tr.Validate(); err != nil {
				return err
			}
		}
	}
	return tr.Validate()
}

// runImprove runs the Improver for argMs milliseconds and installs its
// result back into tr, skipped entirely when pim_mode is set or argMs is
// zero (spec §4.6).
func runImprove(tr *mctree.Tree, argMs int, cfg config.Config, rec *stats.Stats) error {
	if cfg.PIMMode() || argMs == 0 {
		slog.Debug("improve event discarded", "pim_mode", cfg.PIMMode(), "arg_ms", argMs)
		return nil
	}

	edgesBefore, weightBefore := len(tr.Edges()), tr.Weight()

	// rec is passed through a concrete *stats.Stats parameter above, but
	// improve.ImproveTree takes the Recorder interface: a nil *stats.Stats
	// boxed directly into that interface would be a non-nil interface
	// wrapping a nil pointer, so the nil check is done here instead.
	var recorder improve.Recorder
	if rec != nil {
		recorder = rec
	}
	best := improve.ImproveTree(tr, time.Duration(argMs)*time.Millisecond, cfg, recorder)
	*tr = *best

	if rec != nil {
		rec.RecordImproveSnapshot(stats.ImproveSnapshot{
			EdgesBefore:  edgesBefore,
			EdgesAfter:   len(tr.Edges()),
			WeightBefore: weightBefore,
			WeightAfter:  tr.Weight(),
		})
	}
	return tr.Validate()
}
