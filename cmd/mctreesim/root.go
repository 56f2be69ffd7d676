package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/steinertree/mctree/config"
	"github.com/steinertree/mctree/events"
	"github.com/steinertree/mctree/mctree"
	"github.com/steinertree/mctree/network"
	"github.com/steinertree/mctree/scenario"
	"github.com/steinertree/mctree/stats"
	"github.com/steinertree/mctree/topoload"
)

// flags mirrors Table B (spec §6) plus the --events, --root,
// --weight-policy and --seed flags and the -v/-w options; the topology
// file is the one positional argument.
type flags struct {
	eventsPath   string
	root         int
	weightPolicy string
	workdir      string
	verbosity    int
	seed         int64

	selectionHeuristic string
	clientOrdering     string
	tabuTTL            int
	intensifyOnly      bool
	pimMode            bool
	searchStrategy     string
	improvePeriod      int
	improveMaxtime     int
	improveSearchSpace int
	temperatureSched   string
	kShortestPaths     int
	maxPaths           int
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "mctreesim <topology-file>",
		Short: "Simulate multicast Steiner-tree maintenance over an event stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], f)
		},
		SilenceUsage: true,
	}

	fl := cmd.Flags()
	fl.StringVar(&f.eventsPath, "events", "", "path to the event-stream file (required)")
	fl.IntVar(&f.root, "root", 0, "root node id")
	fl.StringVar(&f.weightPolicy, "weight-policy", string(config.WeightAttr), "WEIGHT|GEO|NONE")
	fl.StringVarP(&f.workdir, "workdir", "w", "", "working directory")
	fl.CountVarP(&f.verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	fl.Int64Var(&f.seed, "seed", 1, "random source seed")

	fl.StringVar(&f.selectionHeuristic, "selection-heuristic", string(config.MostExpensive), "selection_heuristic")
	fl.StringVar(&f.clientOrdering, "client-ordering", string(config.Ordered), "client_ordering")
	fl.IntVar(&f.tabuTTL, "tabu-ttl", 50, "tabu_ttl")
	fl.BoolVar(&f.intensifyOnly, "intensify-only", false, "intensify_only")
	fl.BoolVar(&f.pimMode, "pim-mode", false, "pim_mode")
	fl.StringVar(&f.searchStrategy, "search-strategy", string(config.BestImprovement), "search_strategy")
	fl.IntVar(&f.improvePeriod, "improve-period", 1, "improve_period")
	fl.IntVar(&f.improveMaxtime, "improve-maxtime", 25, "improve_maxtime")
	fl.IntVar(&f.improveSearchSpace, "improve-search-space", 0, "improve_search_space (0 = unbounded)")
	fl.StringVar(&f.temperatureSched, "temperature-schedule", string(config.Linear), "temperature_schedule")
	fl.IntVar(&f.kShortestPaths, "k-shortest-paths", 1, "k_shortest_paths")
	fl.IntVar(&f.maxPaths, "max-paths", 1, "max_paths")

	cmd.AddCommand(newGenCmd())
	return cmd
}

func (f *flags) toConfig() (config.Config, error) {
	opts := []config.Option{
		config.WithSelectionHeuristic(config.SelectionHeuristic(f.selectionHeuristic)),
		config.WithClientOrdering(config.ClientOrdering(f.clientOrdering)),
		config.WithTabuTTL(f.tabuTTL),
		config.WithIntensifyOnly(f.intensifyOnly),
		config.WithPIMMode(f.pimMode),
		config.WithSearchStrategy(config.SearchStrategy(f.searchStrategy)),
		config.WithImprovePeriod(f.improvePeriod),
		config.WithImproveMaxTimeMS(f.improveMaxtime),
		config.WithTemperatureSchedule(config.TemperatureSchedule(f.temperatureSched)),
		config.WithKShortestPaths(f.kShortestPaths),
		config.WithMaxPaths(f.maxPaths),
	}
	if f.improveSearchSpace > 0 {
		opts = append(opts, config.WithImproveSearchSpace(f.improveSearchSpace))
	}
	return config.New(opts...), nil
}

func run(topologyPath string, f *flags) error {
	configureLogging(f.verbosity)

	if f.workdir != "" {
		if err := os.Chdir(f.workdir); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if f.eventsPath == "" {
		return fmt.Errorf("config: --events is required")
	}

	cfg, err := f.toConfig()
	if err != nil {
		return err
	}

	topoFile, err := os.Open(topologyPath)
	if err != nil {
		return fmt.Errorf("topology: %w", err)
	}
	defer topoFile.Close()

	nodes, edges, err := topoload.Load(topoFile, config.WeightPolicy(f.weightPolicy))
	if err != nil {
		return fmt.Errorf("topology: %w", err)
	}
	graph, err := network.New(nodes, edges)
	if err != nil {
		return fmt.Errorf("topology: %w", err)
	}
	oracle := network.BuildOracle(graph)

	eventsFile, err := os.Open(f.eventsPath)
	if err != nil {
		return fmt.Errorf("events: %w", err)
	}
	defer eventsFile.Close()

	evs, err := events.Read(eventsFile)
	if err != nil {
		return fmt.Errorf("events: %w", err)
	}

	rng := rand.New(rand.NewSource(f.seed))
	ordered, err := scenario.Order(evs, oracle, f.root, cfg, rng)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	tr, err := mctree.New(graph, oracle, f.root, cfg, rng)
	if err != nil {
		return fmt.Errorf("topology: %w", err)
	}

	st := stats.New()
	if err := scenario.Run(tr, ordered, cfg, st); err != nil {
		return fmt.Errorf("invariant: %w", err)
	}

	fmt.Printf("final tree weight: %d\n", tr.Weight())
	fmt.Printf("tick costs: %v\n", st.TickCosts())
	fmt.Printf("improve attempts: %v\n", st.ImproveAttempts())
	return nil
}
