package topoload_test

import (
	"strings"
	"testing"

	"github.com/steinertree/mctree/config"
	"github.com/steinertree/mctree/topoload"
)

const sampleTopo = `
# a tiny triangle
node 0 50.8 4.3
node 1 50.9 4.4
node 2 51.0 4.5
edge 0 1 5
edge 1 2 7
edge 2 0 3
`

func TestLoad_WeightPolicyUsesFileWeights(t *testing.T) {
	nodes, edges, err := topoload.Load(strings.NewReader(sampleTopo), config.WeightAttr)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("want 3 nodes, got %d", len(nodes))
	}
	if len(edges) != 3 {
		t.Fatalf("want 3 edges, got %d", len(edges))
	}
	for _, e := range edges {
		if e.Weight <= 0 {
			t.Fatalf("edge %+v has non-positive weight", e)
		}
	}
}

func TestLoad_NonePolicyForcesUnitWeight(t *testing.T) {
	_, edges, err := topoload.Load(strings.NewReader(sampleTopo), config.NoneAttr)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, e := range edges {
		if e.Weight != 1 {
			t.Fatalf("want unit weight under NONE policy, got %d", e.Weight)
		}
	}
}

func TestLoad_GeoPolicyDerivesPositiveDistance(t *testing.T) {
	_, edges, err := topoload.Load(strings.NewReader(sampleTopo), config.GeoAttr)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, e := range edges {
		if e.Weight < 1 {
			t.Fatalf("GEO weight must be clamped to >= 1, got %d", e.Weight)
		}
	}
}

func TestLoad_WeightPolicyRejectsMissingWeight(t *testing.T) {
	topo := "node 0\nnode 1\nedge 0 1\n"
	_, _, err := topoload.Load(strings.NewReader(topo), config.WeightAttr)
	if err == nil {
		t.Fatal("want error for an edge missing a weight under WEIGHT policy")
	}
}

func TestLoad_GeoPolicyFallsBackWhenCoordinatesMissing(t *testing.T) {
	topo := "node 0\nnode 1\nedge 0 1\n"
	_, edges, err := topoload.Load(strings.NewReader(topo), config.GeoAttr)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if edges[0].Weight != 60 {
		t.Fatalf("want default GEO distance 60, got %d", edges[0].Weight)
	}
}

// Load defers node-reference validation to network.New (spec §4.1): it
// only assembles the (nodes, edges) contract, so an edge naming a node
// absent from the node list is not itself an error here.
func TestLoad_DoesNotValidateNodeReferences(t *testing.T) {
	topo := "node 0\nedge 0 1\n"
	_, _, err := topoload.Load(strings.NewReader(topo), config.NoneAttr)
	if err != nil {
		t.Fatalf("Load should not itself validate node references: %v", err)
	}
}
