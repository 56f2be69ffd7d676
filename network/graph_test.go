package network_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/steinertree/mctree/network"
)

func square() *network.Graph {
	// 0-1-2-3-0 square, plus diagonal 0-2 weight 3, unit weights otherwise.
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
	if err != nil {
		panic(err)
	}
	return g
}

func TestNew_RejectsInvalidEdges(t *testing.T) {
	cases := []struct {
		name  string
		nodes []int
		edges []network.Edge
	}{
		{"self loop", []int{0, 1}, []network.Edge{{U: 0, V: 0, Weight: 1}}},
		{"zero weight", []int{0, 1}, []network.Edge{{U: 0, V: 1, Weight: 0}}},
		{"unknown node", []int{0, 1}, []network.Edge{{U: 0, V: 2, Weight: 1}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := network.New(c.nodes, c.edges); !errors.Is(err, network.ErrInvalidEdge) {
				t.Fatalf("want ErrInvalidEdge, got %v", err)
			}
		})
	}
}

func TestOracle_PrefersDirectOverDiagonal(t *testing.T) {
	g := square()
	o := network.BuildOracle(g)

	length, ok := o.ShortestPathLength(0, 2)
	if !ok {
		t.Fatal("expected a path from 0 to 2")
	}
	if length != 2 {
		t.Fatalf("want shortest 0->2 length 2 (via square edge), got %d", length)
	}

	path, _ := o.ShortestPath(0, 2)
	if len(path) != 3 {
		t.Fatalf("want a 3-node path, got %v", path)
	}
}

func TestOracle_CacheRoundTrips(t *testing.T) {
	g := square()
	o := network.BuildOracle(g)

	dir := t.TempDir()
	cachePath := filepath.Join(dir, "sp.cache")

	if err := network.SaveOracle(o, cachePath); err != nil {
		t.Fatalf("SaveOracle: %v", err)
	}
	if !network.CacheExists(cachePath) {
		t.Fatal("expected cache file to exist after save")
	}

	loaded, err := network.LoadOracle(cachePath)
	if err != nil {
		t.Fatalf("LoadOracle: %v", err)
	}

	for _, u := range g.Nodes() {
		for _, v := range g.Nodes() {
			wantLen, wantOk := o.ShortestPathLength(u, v)
			gotLen, gotOk := loaded.ShortestPathLength(u, v)
			if wantOk != gotOk || wantLen != gotLen {
				t.Fatalf("SPL[%d][%d]: want (%d,%v) got (%d,%v)", u, v, wantLen, wantOk, gotLen, gotOk)
			}
			wantPath, _ := o.ShortestPath(u, v)
			gotPath, _ := loaded.ShortestPath(u, v)
			if len(wantPath) != len(gotPath) {
				t.Fatalf("SP[%d][%d]: length mismatch want %v got %v", u, v, wantPath, gotPath)
			}
			for i := range wantPath {
				if wantPath[i] != gotPath[i] {
					t.Fatalf("SP[%d][%d]: want %v got %v", u, v, wantPath, gotPath)
				}
			}
		}
	}
}

func TestLoadOracle_MissingFile(t *testing.T) {
	_, err := network.LoadOracle(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want os.ErrNotExist, got %v", err)
	}
}
