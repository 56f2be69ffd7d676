// Package topoload reads a graph topology file and applies the
// weight-derivation policy (spec §4.1, §6 "Graph input"): the contract is
// `(nodes, edges, weight_per_edge)`, not any particular file encoding
// (spec §1 Non-goals — this is an out-of-scope external collaborator
// implemented only to that contract). The format read here is a small
// ad hoc text format (node/edge lines, optional coordinates), the
// idiomatic stdlib choice for a collaborator whose contract, not
// implementation, the core depends on (see DESIGN.md).
package topoload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/steinertree/mctree/config"
	"github.com/steinertree/mctree/network"
)

// ErrInvalidEdge indicates a malformed node or edge line, an unrecognized
// keyword, a self-loop edge, or (under WEIGHT) an edge with no weight. An
// edge naming a node absent from the node list is not rejected by Load.
var ErrInvalidEdge = errors.New("topoload: invalid edge")

// ErrMissingCoordinate indicates a GEO-policy load hit a node with no
// recorded latitude/longitude; the load falls back to defaultGeoDistance
// rather than failing (mirrors add_weight_attribute's try/except).
var ErrMissingCoordinate = errors.New("topoload: missing coordinate")

// defaultGeoDistance is the original's fallback distance (km) used when a
// GEO edge's endpoint coordinates are missing or malformed.
const defaultGeoDistance = 60

// earthRadiusKm is the haversine sphere radius.
const earthRadiusKm = 6371.0

type coord struct {
	lat, lon float64
	has      bool
}

type rawEdge struct {
	u, v int
	w    int
	has  bool
}

// Load parses r into a node list and a weighted edge list honoring
// policy (spec §4.1's WEIGHT/GEO/NONE). The text format is:
//
//	# comment
//	node <id> [lat] [lon]
//	edge <u> <v> [weight]
//
// coordinates are read only under GeoAttr, where an edge with an endpoint
// lacking them gets defaultGeoDistance and a warning instead of an error;
// weight is required only under WeightAttr.
func Load(r io.Reader, policy config.WeightPolicy) ([]int, []network.Edge, error) {
	sc := bufio.NewScanner(r)
	nodes := make([]int, 0)
	coords := make(map[int]coord)
	var rawEdges []rawEdge
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "node":
			n, c, err := parseNode(fields)
			if err != nil {
				return nil, nil, fmt.Errorf("topoload: line %d: %w", lineNo, err)
			}
			nodes = append(nodes, n)
			coords[n] = c
		case "edge":
			e, err := parseEdge(fields)
			if err != nil {
				return nil, nil, fmt.Errorf("topoload: line %d: %w", lineNo, err)
			}
			rawEdges = append(rawEdges, e)
		default:
			return nil, nil, fmt.Errorf("%w: line %d: unrecognized keyword %q", ErrInvalidEdge, lineNo, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}

	edges := make([]network.Edge, 0, len(rawEdges))
	for _, e := range rawEdges {
		w, err := weightFor(e, coords, policy)
		if err != nil {
			return nil, nil, err
		}
		edges = append(edges, network.Edge{U: e.u, V: e.v, Weight: w})
	}
	return nodes, edges, nil
}

func parseNode(fields []string) (int, coord, error) {
	if len(fields) < 2 {
		return 0, coord{}, ErrInvalidEdge
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, coord{}, ErrInvalidEdge
	}
	if len(fields) < 4 {
		return n, coord{}, nil
	}
	lat, errLat := strconv.ParseFloat(fields[2], 64)
	lon, errLon := strconv.ParseFloat(fields[3], 64)
	if errLat != nil || errLon != nil {
		return n, coord{}, nil
	}
	return n, coord{lat: lat, lon: lon, has: true}, nil
}

func parseEdge(fields []string) (rawEdge, error) {
	if len(fields) < 3 {
		return rawEdge{}, ErrInvalidEdge
	}
	u, errU := strconv.Atoi(fields[1])
	v, errV := strconv.Atoi(fields[2])
	if errU != nil || errV != nil || u == v {
		return rawEdge{}, ErrInvalidEdge
	}
	if len(fields) < 4 {
		return rawEdge{u: u, v: v}, nil
	}
	w, err := strconv.Atoi(fields[3])
	if err != nil {
		return rawEdge{}, ErrInvalidEdge
	}
	return rawEdge{u: u, v: v, w: w, has: true}, nil
}

func weightFor(e rawEdge, coords map[int]coord, policy config.WeightPolicy) (int, error) {
	switch policy {
	case config.WeightAttr:
		if !e.has {
			return 0, fmt.Errorf("%w: edge (%d,%d) has no weight under WEIGHT policy", ErrInvalidEdge, e.u, e.v)
		}
		return e.w, nil
	case config.GeoAttr:
		a, b := coords[e.u], coords[e.v]
		if !a.has || !b.has {
			slog.Warn("edge endpoint missing coordinates, using default GEO distance", "edge", [2]int{e.u, e.v}, "err", ErrMissingCoordinate)
		}
		return geoWeight(a, b), nil
	default: // NoneAttr
		return 1, nil
	}
}

// geoWeight derives an edge weight from two coordinates via the haversine
// distance in kilometers, clamped to a minimum of 1 (a link's weight must
// be strictly positive), falling back to defaultGeoDistance when either
// endpoint lacks coordinates.
func geoWeight(a, b coord) int {
	if !a.has || !b.has {
		return defaultGeoDistance
	}
	dist := haversineKm(a.lat, a.lon, b.lat, b.lon)
	if dist < 1.0 {
		dist = 1
	}
	return int(dist)
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
