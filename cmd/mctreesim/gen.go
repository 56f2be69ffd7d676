package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/steinertree/mctree/topogen"
)

// newGenCmd wires topogen's synthetic topology generators in as a
// companion subcommand: `mctreesim gen` writes a topology file consumable
// by the root command's positional argument.
func newGenCmd() *cobra.Command {
	var (
		kind string
		rows int
		cols int
		n    int
		p    float64
		seed int64
		out  string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a synthetic topology file (GRID|COMPLETE|RANDOM_SPARSE)",
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, edges, err := topogen.Generate(topogen.Kind(kind), topogen.Params{
				Rows: rows, Cols: cols, N: n, P: p, Seed: seed,
			})
			if err != nil {
				return err
			}

			w := os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("gen: %w", err)
				}
				defer f.Close()
				w = f
			}

			for _, node := range nodes {
				fmt.Fprintf(w, "node %d\n", node)
			}
			for _, e := range edges {
				fmt.Fprintf(w, "edge %d %d %d\n", e.U, e.V, e.Weight)
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&kind, "kind", string(topogen.Grid), "GRID|COMPLETE|RANDOM_SPARSE")
	fl.IntVar(&rows, "rows", 3, "GRID rows")
	fl.IntVar(&cols, "cols", 3, "GRID cols")
	fl.IntVar(&n, "n", 5, "COMPLETE/RANDOM_SPARSE vertex count")
	fl.Float64Var(&p, "p", 0.3, "RANDOM_SPARSE edge probability")
	fl.Int64Var(&seed, "seed", 1, "random source seed")
	fl.StringVar(&out, "out", "", "output path (default: stdout)")

	return cmd
}
