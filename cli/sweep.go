package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/kmst"
	"github.com/katalvlaran/kmst/export"
)

func newSweepCommand(a *app) *cobra.Command {
	var (
		in             inputFlags
		solver         solverFlags
		from, to, step int
		concurrency    int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Solve a range of k and print the cost curve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := positive("to", to); err != nil {
				return err
			}
			if err := solver.apply(cmd.Flags(), a.cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("concurrency") {
				a.cfg.Sweep.Concurrency = concurrency
			}
			root, cands, err := in.load()
			if err != nil {
				return err
			}
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

			sols, err := kmst.Sweep(a.ctx, root, cands, kmst.KRange(from, to, step), opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%4s  %12s  %-10s  %7s  %s\n", "k", "cost", "status", "gap", "run_id")
			for _, sol := range sols {
				a.save(st, sol)
				dir := filepath.Join(a.cfg.Output.Dir, fmt.Sprintf("k_%d", sol.K))
				if err := export.Write(dir, root, cands, sol); err != nil {
					return err
				}
				printRow(out, sol)
			}

			return nil
		},
	}
	in.bind(cmd.Flags())
	solver.bind(cmd.Flags())
	cmd.Flags().IntVar(&from, "from", 1, "first k")
	cmd.Flags().IntVar(&to, "to", 0, "last k (inclusive)")
	cmd.Flags().IntVar(&step, "step", 1, "k increment")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "parallel solves (config sweep.concurrency)")

	return cmd
}
