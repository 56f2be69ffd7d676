// Command mctreesim runs a single multicast-tree scenario end to end:
// load a topology file, apply Table B configuration flags, replay an
// event stream against a MulticastTree rooted at a given node, and print
// the resulting tree weight and tick costs.
package main

import (
	"fmt"
	"log/slog"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mctreesim: "+err.Error())
		os.Exit(1)
	}
}

func configureLogging(verbosity int) {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
