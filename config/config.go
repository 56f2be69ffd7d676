// Package config holds the immutable run configuration shared by mctree,
// improve, and scenario. It replaces the original Setup global singleton
// (see spec Design Notes) with a Config value built once via New and passed
// explicitly to every constructor that needs it.
package config

import (
	"errors"
	"math"
)

// ErrUnknownParameter indicates a YAML setup section named a parameter that
// Table B does not recognize.
var ErrUnknownParameter = errors.New("config: unknown parameter")

// ErrMissingKey indicates a required key is absent; LoadScenarioFile checks
// main.name only.
var ErrMissingKey = errors.New("config: missing required key")

// ErrInvalidChoice indicates an enum-valued parameter received a value
// outside its recognized choices.
var ErrInvalidChoice = errors.New("config: invalid choice")

// SelectionHeuristic selects how MulticastTree.ImproveOnce picks the edge
// or path to remove on a given round.
type SelectionHeuristic string

const (
	Random                   SelectionHeuristic = "RANDOM"
	MostExpensive            SelectionHeuristic = "MOST_EXPENSIVE"
	MostExpensivePath        SelectionHeuristic = "MOST_EXPENSIVE_PATH"
	AveragedMostExpensivePath SelectionHeuristic = "AVERAGED_MOST_EXPENSIVE_PATH"
)

// ClientOrdering selects the pre-shuffle applied to join events before a
// scenario run starts.
type ClientOrdering string

const (
	Ordered ClientOrdering = "ORDERED"
	Shuffled ClientOrdering = "RANDOM"
	ClosestTree ClientOrdering = "CLOSEST_TREE"
	// ClosestSource is a recognized enum value that scenario.Order refuses to
	// honor (see SPEC_FULL.md §3): the original declares it but throws at
	// runtime, and this keeps that behavior instead of silently aliasing it
	// to Ordered.
	ClosestSource ClientOrdering = "CLOSEST_SOURCE"
)

// SearchStrategy selects whether reconnection search stops at the first
// improving candidate or scans every source-side sample for the best one.
type SearchStrategy string

const (
	FirstImprovement SearchStrategy = "FIRST_IMPROVEMENT"
	BestImprovement  SearchStrategy = "BEST_IMPROVEMENT"
)

// TemperatureSchedule selects the law used to derive the SA temperature
// from elapsed/remaining time in a given improvement round.
type TemperatureSchedule string

const (
	Linear   TemperatureSchedule = "LINEAR"
	Constant TemperatureSchedule = "CONSTANT"
)

// WeightPolicy selects how topoload.Load derives edge weights from a
// topology file (see spec §4.1).
type WeightPolicy string

const (
	WeightAttr WeightPolicy = "WEIGHT"
	GeoAttr    WeightPolicy = "GEO"
	NoneAttr   WeightPolicy = "NONE"
)

// constantTemperature is Setup.TEMPERATURE in the original: the fixed
// temperature value used by the CONSTANT schedule.
const constantTemperature = 10.0

// Config is the immutable set of tunables listed in spec §6 Table B.
// Build one with New; all fields are unexported so that the zero value is
// never mistaken for a validated Config.
type Config struct {
	selectionHeuristic  SelectionHeuristic
	clientOrdering      ClientOrdering
	tabuTTL             int
	intensifyOnly       bool
	pimMode             bool
	searchStrategy      SearchStrategy
	improvePeriod       int
	improveMaxTimeMS    int
	improveSearchSpace  int
	temperatureSchedule TemperatureSchedule
	kShortestPaths      int
	maxPaths            int
}

// Option mutates a Config under construction. Defined the same way as
// builder.BuilderOption: a function over a pointer to the struct being
// assembled, applied in order by New.
type Option func(*Config)

// WithSelectionHeuristic overrides the default MOST_EXPENSIVE heuristic.
func WithSelectionHeuristic(h SelectionHeuristic) Option {
	return func(c *Config) { c.selectionHeuristic = h }
}

// WithClientOrdering overrides the default ORDERED policy.
func WithClientOrdering(o ClientOrdering) Option {
	return func(c *Config) { c.clientOrdering = o }
}

// WithTabuTTL overrides the default tabu TTL of 50 rounds.
func WithTabuTTL(ttl int) Option {
	return func(c *Config) { c.tabuTTL = ttl }
}

// WithIntensifyOnly forbids degrading reconnection moves when true.
func WithIntensifyOnly(v bool) Option {
	return func(c *Config) { c.intensifyOnly = v }
}

// WithPIMMode switches join installation to root-to-client shortest paths
// and disables the Improver entirely.
func WithPIMMode(v bool) Option {
	return func(c *Config) { c.pimMode = v }
}

// WithSearchStrategy overrides the default BEST_IMPROVEMENT strategy.
func WithSearchStrategy(s SearchStrategy) Option {
	return func(c *Config) { c.searchStrategy = s }
}

// WithImprovePeriod sets the tick count between runner-injected improve
// events.
func WithImprovePeriod(p int) Option {
	return func(c *Config) { c.improvePeriod = p }
}

// WithImproveMaxTimeMS sets the per-round improvement time budget.
func WithImproveMaxTimeMS(ms int) Option {
	return func(c *Config) { c.improveMaxTimeMS = ms }
}

// WithImproveSearchSpace caps the source-side sample size considered during
// reconnection search.
func WithImproveSearchSpace(n int) Option {
	return func(c *Config) { c.improveSearchSpace = n }
}

// WithTemperatureSchedule overrides the default LINEAR schedule.
func WithTemperatureSchedule(s TemperatureSchedule) Option {
	return func(c *Config) { c.temperatureSchedule = s }
}

// WithKShortestPaths sets the oracle breadth. The core only ever reads the
// first path (k=1); kept for forward compatibility with a k-shortest-paths
// oracle, per spec §4.1.
func WithKShortestPaths(k int) Option {
	return func(c *Config) { c.kShortestPaths = k }
}

// WithMaxPaths sets how many valid candidates PopBestValid collects before
// choosing uniformly at random among them.
func WithMaxPaths(n int) Option {
	return func(c *Config) { c.maxPaths = n }
}

// New builds a Config from defaults, then applies each Option in order.
// Later options override earlier ones, same as builder.newBuilderConfig.
func New(opts ...Option) Config {
	c := Config{
		selectionHeuristic:  MostExpensive,
		clientOrdering:      Ordered,
		tabuTTL:             50,
		intensifyOnly:       false,
		pimMode:             false,
		searchStrategy:      BestImprovement,
		improvePeriod:       1,
		improveMaxTimeMS:    25,
		improveSearchSpace:  math.MaxInt,
		temperatureSchedule: Linear,
		kShortestPaths:      1,
		maxPaths:            1,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c Config) SelectionHeuristic() SelectionHeuristic   { return c.selectionHeuristic }
func (c Config) ClientOrdering() ClientOrdering            { return c.clientOrdering }
func (c Config) TabuTTL() int                              { return c.tabuTTL }
func (c Config) IntensifyOnly() bool                        { return c.intensifyOnly }
func (c Config) PIMMode() bool                              { return c.pimMode }
func (c Config) SearchStrategy() SearchStrategy             { return c.searchStrategy }
func (c Config) ImprovePeriod() int                          { return c.improvePeriod }
func (c Config) ImproveMaxTimeMS() int                       { return c.improveMaxTimeMS }
func (c Config) ImproveSearchSpace() int                     { return c.improveSearchSpace }
func (c Config) TemperatureSchedule() TemperatureSchedule    { return c.temperatureSchedule }
func (c Config) KShortestPaths() int                         { return c.kShortestPaths }
func (c Config) MaxPaths() int                                { return c.maxPaths }

// ConstantTemperature returns the fixed temperature used by the CONSTANT
// schedule (Setup.TEMPERATURE in the original).
func (c Config) ConstantTemperature() float64 { return constantTemperature }

// UsePathQueue reports whether the selection heuristic needs the PathIndex
// maintained on every tree mutation (mirrors selectEdge_choose's usePathQueue
// side effect in the original, made an explicit query instead of a
// construction-time side effect).
func (c Config) UsePathQueue() bool {
	return c.selectionHeuristic == MostExpensivePath || c.selectionHeuristic == AveragedMostExpensivePath
}
