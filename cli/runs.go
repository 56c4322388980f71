package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/kmst/store"
)

func newRunsCommand(a *app) *cobra.Command {
	var (
		limit   int
		curve   bool
		network string
	)
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List runs recorded in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			if st == nil {
				return errors.New("no store configured: pass --store or set store.path")
			}
			defer st.Close()

			var runs []*store.Run
			if curve {
				runs, err = st.CostCurve(a.ctx, network)
			} else {
				runs, err = st.ListRuns(a.ctx, limit)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%4s  %12s  %-10s  %7s  %s\n", "k", "cost", "status", "gap", "run_id")
			for _, r := range runs {
				fmt.Fprintf(out, "%4d  %12.3f  %-10s  %7.4f  %s\n", r.K, r.Cost, r.Status, r.Gap, r.RunID)
			}

			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "most recent runs to show, 0 = all")
	cmd.Flags().BoolVar(&curve, "curve", false, "show the cheapest run per k of one network instead")
	cmd.Flags().StringVar(&network, "network", "", "network id for --curve; default is the network of the latest run")

	return cmd
}
