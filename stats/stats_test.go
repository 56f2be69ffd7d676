package stats_test

import (
	"testing"

	"github.com/steinertree/mctree/stats"
)

func TestStartEndEvent_RecordsAdditionLatency(t *testing.T) {
	s := stats.New()
	s.StartEvent(3)
	s.EndEvent('a')

	got := s.AdditionTimes()
	if len(got[3]) != 1 {
		t.Fatalf("want 1 addition sample at size 3, got %v", got)
	}
}

func TestStartEndEvent_RemoveUsesRemovalBucket(t *testing.T) {
	s := stats.New()
	s.StartEvent(5)
	s.EndEvent('r')

	if len(s.AdditionTimes()) != 0 {
		t.Fatalf("removal event must not populate additionTimes")
	}
	if len(s.RemovalTimes()[5]) != 1 {
		t.Fatalf("want 1 removal sample at size 5")
	}
}

func TestRecordTick_AppendsInOrder(t *testing.T) {
	s := stats.New()
	s.RecordTick(10)
	s.RecordTick(7)
	got := s.TickCosts()
	want := []int{10, 7}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestRecordImproveAttempts_Accumulates(t *testing.T) {
	s := stats.New()
	s.RecordImproveAttempts(4)
	s.RecordImproveAttempts(9)
	got := s.ImproveAttempts()
	if len(got) != 2 || got[0] != 4 || got[1] != 9 {
		t.Fatalf("want [4 9], got %v", got)
	}
}

func TestRecordImproveSnapshot_Stored(t *testing.T) {
	s := stats.New()
	snap := stats.ImproveSnapshot{EdgesBefore: 5, EdgesAfter: 4, WeightBefore: 10, WeightAfter: 8}
	s.RecordImproveSnapshot(snap)
	got := s.ImproveSnapshots()
	if len(got) != 1 || got[0] != snap {
		t.Fatalf("want [%v], got %v", snap, got)
	}
}

func TestReset_ClearsAllAccumulators(t *testing.T) {
	s := stats.New()
	s.RecordTick(1)
	s.StartEvent(1)
	s.EndEvent('a')
	s.RecordImproveAttempts(2)
	s.RecordImproveSnapshot(stats.ImproveSnapshot{})

	s.Reset()

	if len(s.TickCosts()) != 0 || len(s.AdditionTimes()) != 0 || len(s.ImproveAttempts()) != 0 || len(s.ImproveSnapshots()) != 0 {
		t.Fatalf("Reset did not clear all accumulators")
	}
}
