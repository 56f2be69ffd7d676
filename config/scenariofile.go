package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Main mirrors the `main` section of a scenario configuration file: the
// experiment name, a repeat count, and an optional reference column for
// downstream plotting (out of scope here; kept only because spec §6 names
// it as part of the contract).
type Main struct {
	Name      string `yaml:"name"`
	Tests     int    `yaml:"tests"`
	ColumnRef int    `yaml:"columnRef"`
}

// ScenarioFile is the parsed form of a scenario configuration file: one
// `main` section plus an ordered list of setup sections, each a subset of
// Table B's recognized parameter names (missing keys inherit defaults).
type ScenarioFile struct {
	Main   Main                     `yaml:"main"`
	Setups []map[string]interface{} `yaml:"setups"`
}

// LoadScenarioFile reads and parses a YAML scenario configuration file.
// A missing or unreadable file returns the wrapped os.ReadFile error
// (errors.Is(err, fs.ErrNotExist) holds for a missing file), and
// ErrMissingKey is returned if `main.name` is empty.
func LoadScenarioFile(path string) (*ScenarioFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var sf ScenarioFile
	sf.Main.ColumnRef = -1 // Table B: columnRef defaults to -1 when absent.
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("config: malformed scenario file: %w", err)
	}
	if sf.Main.Name == "" {
		return nil, fmt.Errorf("%w: main.name", ErrMissingKey)
	}
	return &sf, nil
}

// paramSetters maps each Table B parameter name to a function applying a
// raw YAML-decoded value onto a Config being built. Unknown keys surface
// ErrUnknownParameter the same way Setup.configure did.
var paramSetters = map[string]func(v interface{}) (Option, error){
	"selection_heuristic": func(v interface{}) (Option, error) {
		h := SelectionHeuristic(fmt.Sprint(v))
		switch h {
		case Random, MostExpensive, MostExpensivePath, AveragedMostExpensivePath:
			return WithSelectionHeuristic(h), nil
		default:
			return nil, fmt.Errorf("%w: selection_heuristic=%v", ErrInvalidChoice, v)
		}
	},
	"client_ordering": func(v interface{}) (Option, error) {
		o := ClientOrdering(fmt.Sprint(v))
		switch o {
		case Ordered, Shuffled, ClosestTree, ClosestSource:
			return WithClientOrdering(o), nil
		default:
			return nil, fmt.Errorf("%w: client_ordering=%v", ErrInvalidChoice, v)
		}
	},
	"tabu_ttl":             intSetter(WithTabuTTL),
	"intensify_only":       boolSetter(WithIntensifyOnly),
	"pim_mode":             boolSetter(WithPIMMode),
	"search_strategy": func(v interface{}) (Option, error) {
		s := SearchStrategy(fmt.Sprint(v))
		switch s {
		case FirstImprovement, BestImprovement:
			return WithSearchStrategy(s), nil
		default:
			return nil, fmt.Errorf("%w: search_strategy=%v", ErrInvalidChoice, v)
		}
	},
	"improve_period":       intSetter(WithImprovePeriod),
	"improve_maxtime":      intSetter(WithImproveMaxTimeMS),
	"improve_search_space": intSetter(WithImproveSearchSpace),
	"temperature_schedule": func(v interface{}) (Option, error) {
		s := TemperatureSchedule(fmt.Sprint(v))
		switch s {
		case Linear, Constant:
			return WithTemperatureSchedule(s), nil
		default:
			return nil, fmt.Errorf("%w: temperature_schedule=%v", ErrInvalidChoice, v)
		}
	},
	"k_shortest_paths": intSetter(WithKShortestPaths),
	"max_paths":        intSetter(WithMaxPaths),
}

func intSetter(opt func(int) Option) func(interface{}) (Option, error) {
	return func(v interface{}) (Option, error) {
		switch n := v.(type) {
		case int:
			return opt(n), nil
		case int64:
			return opt(int(n)), nil
		case float64:
			return opt(int(n)), nil
		default:
			return nil, fmt.Errorf("%w: expected integer, got %T", ErrInvalidChoice, v)
		}
	}
}

func boolSetter(opt func(bool) Option) func(interface{}) (Option, error) {
	return func(v interface{}) (Option, error) {
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: expected boolean, got %T", ErrInvalidChoice, v)
		}
		return opt(b), nil
	}
}

// BuildConfig applies a single setup section (as decoded from YAML) on top
// of the Table B defaults, the equivalent of Setup.configure merging a
// setup dict into the global parameter table but producing a fresh,
// independent Config instead of mutating shared state.
func BuildConfig(setup map[string]interface{}) (Config, error) {
	var opts []Option
	for k, v := range setup {
		setter, ok := paramSetters[k]
		if !ok {
			return Config{}, fmt.Errorf("%w: %s", ErrUnknownParameter, k)
		}
		opt, err := setter(v)
		if err != nil {
			return Config{}, err
		}
		opts = append(opts, opt)
	}
	return New(opts...), nil
}
