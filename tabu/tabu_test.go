package tabu_test

import (
	"testing"

	"github.com/steinertree/mctree/tabu"
)

func TestAddPath_MarksDirectedEdgesOnly(t *testing.T) {
	idx := tabu.NewIndex()
	idx.AddPath([]int{1, 2, 3}, 2)

	if !idx.Contains(tabu.Edge{From: 1, To: 2}) {
		t.Fatal("expected (1,2) to be tabu")
	}
	if !idx.Contains(tabu.Edge{From: 2, To: 3}) {
		t.Fatal("expected (2,3) to be tabu")
	}
	if idx.Contains(tabu.Edge{From: 2, To: 1}) {
		t.Fatal("reverse edge must not be implicitly tabu")
	}
	if idx.Len() != 2 {
		t.Fatalf("want 2 tabu edges, got %d", idx.Len())
	}
}

func TestDecay_DropsExpiredEntries(t *testing.T) {
	idx := tabu.NewIndex()
	idx.AddPath([]int{1, 2}, 1) // TTL = 2

	idx.Decay() // TTL = 1
	if !idx.Contains(tabu.Edge{From: 1, To: 2}) {
		t.Fatal("edge should still be tabu after one decay")
	}

	idx.Decay() // TTL reaches 0, dropped
	if idx.Contains(tabu.Edge{From: 1, To: 2}) {
		t.Fatal("edge should have expired after second decay")
	}
	if idx.Len() != 0 {
		t.Fatalf("want empty index, got %d entries", idx.Len())
	}
}

func TestAddPath_OverwritesExistingTTL(t *testing.T) {
	idx := tabu.NewIndex()
	idx.AddPath([]int{1, 2}, 1)
	idx.Decay() // TTL = 1

	idx.AddPath([]int{1, 2}, 5) // overwritten to TTL = 6
	for i := 0; i < 5; i++ {
		idx.Decay()
	}
	if !idx.Contains(tabu.Edge{From: 1, To: 2}) {
		t.Fatal("edge should still be tabu after overwrite and 5 decays")
	}
}

func TestClear_EmptiesIndex(t *testing.T) {
	idx := tabu.NewIndex()
	idx.AddPath([]int{1, 2, 3}, 10)
	idx.Clear()
	if idx.Len() != 0 {
		t.Fatalf("want empty index after Clear, got %d", idx.Len())
	}
}

func TestClone_IsIndependent(t *testing.T) {
	idx := tabu.NewIndex()
	idx.AddPath([]int{1, 2}, 3)

	cp := idx.Clone()
	cp.AddPath([]int{9, 10}, 3)

	if idx.Contains(tabu.Edge{From: 9, To: 10}) {
		t.Fatal("mutating the clone must not affect the original")
	}
	if !cp.Contains(tabu.Edge{From: 1, To: 2}) {
		t.Fatal("clone should retain entries from the original")
	}
}
