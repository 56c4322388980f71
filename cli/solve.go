package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/kmst"
	"github.com/katalvlaran/kmst/core"
	"github.com/katalvlaran/kmst/export"
)

func newSolveCommand(a *app) *cobra.Command {
	var (
		in     inputFlags
		solver solverFlags
		k      int
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve one k-MST instance and write nodes.geojson, edges.geojson and summary.txt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := positive("k", k); err != nil {
				return err
			}
			if err := solver.apply(cmd.Flags(), a.cfg); err != nil {
				return err
			}
			root, cands, err := in.load()
			if err != nil {
				return err
			}

			return a.solveAndWrite(cmd, root, cands, k, a.cfg.Output.Dir)
		},
	}
	in.bind(cmd.Flags())
	solver.bind(cmd.Flags())
	cmd.Flags().IntVarP(&k, "k", "k", 0, "number of nodes in the tree, root included")

	return cmd
}

func (a *app) solveAndWrite(cmd *cobra.Command, root core.Point, cands []core.Point, k int, dir string) error {
	opts, err := a.options()
	if err != nil {
		return err
	}
	st, err := a.openStore()
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	sol, err := kmst.Solve(a.ctx, root, cands, k, opts...)
	a.save(st, sol)
	if errors.Is(err, kmst.ErrSolverInfeasible) {
		fmt.Fprintf(cmd.OutOrStdout(), "k=%d: no feasible tree\n", k)
	}
	if err != nil {
		return err
	}

	if err := export.Write(dir, root, cands, sol); err != nil {
		return err
	}
	a.logger.WithField("dir", dir).Infof("Results saved to %s", filepath.Join(dir, export.SummaryFile))

	return export.WriteSummary(cmd.OutOrStdout(), sol, root)
}

func newDemoCommand(a *app) *cobra.Command {
	var (
		in     inputFlags
		solver solverFlags
		k      int
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Generate a random network around the origin, save it as points.geojson and solve it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := positive("k", k); err != nil {
				return err
			}
			if err := solver.apply(cmd.Flags(), a.cfg); err != nil {
				return err
			}
			root, cands, err := in.generate()
			if err != nil {
				return err
			}

			dir := a.cfg.Output.Dir
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			f, err := os.Create(filepath.Join(dir, "points.geojson"))
			if err != nil {
				return err
			}
			if err := export.WritePoints(f, root, cands); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			return a.solveAndWrite(cmd, root, cands, k, dir)
		},
	}
	in.bindNetwork(cmd.Flags())
	solver.bind(cmd.Flags())
	cmd.Flags().IntVarP(&k, "k", "k", DemoK, "number of nodes in the tree, root included")

	return cmd
}
