// Package cli implements the kmst command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/kmst"
	"github.com/katalvlaran/kmst/config"
	"github.com/katalvlaran/kmst/metrics"
	"github.com/katalvlaran/kmst/store"
)

// app is the state shared by every sub-command of one invocation.
type app struct {
	ctx context.Context

	configPath  string
	verbose     bool
	metricsFile string
	storePath   string
	outputDir   string

	cfg     *config.Config
	logger  *log.Logger
	metrics *metrics.Metrics
}

// Execute is the entry point to running the CLI.
func Execute(ctx context.Context, version string) {
	if err := NewRootCommand(ctx, version).Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand builds the command tree. Output goes to cmd.OutOrStdout,
// logs to cmd.ErrOrStderr.
func NewRootCommand(ctx context.Context, version string) *cobra.Command {
	a := &app{ctx: ctx}
	rootCmd := &cobra.Command{
		Use:               "kmst",
		Short:             "Plan a minimum-length tree joining k nodes, the root included.",
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.flushMetrics()
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "path to config file (default: $KMST_CONFIG or ./kmst.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&a.metricsFile, "metrics-textfile", "", "write Prometheus metrics to this file on exit")
	pf.StringVar(&a.storePath, "store", "", "sqlite database recording every run")
	pf.StringVarP(&a.outputDir, "output", "o", "", "directory for result files")

	rootCmd.AddCommand(
		newSolveCommand(a),
		newSweepCommand(a),
		newDemoCommand(a),
		newRunsCommand(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, used, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = log.New()
	a.logger.SetOutput(cmd.ErrOrStderr())
	if err := cfg.Log.Apply(a.logger); err != nil {
		return err
	}
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
	if used != "" {
		a.logger.Debugf("Using config %s", used)
	}

	flags := cmd.Flags()
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = a.metricsFile
	}
	if flags.Changed("store") {
		cfg.Store.Path = a.storePath
	}
	if flags.Changed("output") {
		cfg.Output.Dir = a.outputDir
	}
	a.metrics = metrics.New()

	return nil
}

func (a *app) flushMetrics() error {
	if a.cfg == nil || a.cfg.Metrics.Textfile == "" {
		return nil
	}
	a.logger.Debugf("Writing metrics to %s", a.cfg.Metrics.Textfile)

	return a.metrics.WriteTextfile(a.cfg.Metrics.Textfile)
}

// options merges config, sub-command overrides, logger and recorder.
func (a *app) options() ([]kmst.Option, error) {
	opts, err := a.cfg.KMSTOptions()
	if err != nil {
		return nil, err
	}

	return append(opts, kmst.WithLogger(a.logger), kmst.WithRecorder(a.metrics)), nil
}

// openStore returns nil when no store is configured.
func (a *app) openStore() (*store.Store, error) {
	if a.cfg.Store.Path == "" {
		return nil, nil
	}
	s, err := store.Open(a.cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", a.cfg.Store.Path, err)
	}

	return s, nil
}

func (a *app) save(s *store.Store, sol *kmst.Solution) {
	if s == nil || sol == nil {
		return
	}
	if err := s.SaveSolution(a.ctx, sol); err != nil {
		a.logger.WithError(err).WithField("run_id", sol.RunID).Warn("failed to record run")
	}
}

func printRow(w io.Writer, sol *kmst.Solution) {
	fmt.Fprintf(w, "%4d  %12.3f  %-10s  %7.4f  %s\n", sol.K, sol.Cost, sol.Status, sol.Gap, sol.RunID)
}
