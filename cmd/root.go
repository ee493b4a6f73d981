package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gatesim/gatesim/sim"
	"github.com/gatesim/gatesim/sim/batch"
	"github.com/gatesim/gatesim/sim/metrics"
)

var (
	// CLI flags shared by every command
	logLevel      string // Log verbosity level
	configPath    string // Optional YAML config file
	maxIterations int    // Stabilization bound
	trailingRow   bool   // Repeat the final zero-delay row
	metricsFile   string // Prometheus text file written on exit
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "gatesim",
	Short: "Zero-delay and unit-delay simulator for gate-level netlists",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return errors.Errorf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// settings is the configuration a command runs with, after the config file
// and explicitly set flags have been merged.
type settings struct {
	Config  sim.Config
	Layout  batch.Layout
	Workers int
}

// resolveSettings loads the config file (if any) and applies the flags the
// user actually set on top of it. Unset flags never overwrite file values.
func resolveSettings(cmd *cobra.Command) (settings, error) {
	fc := DefaultFileConfig()
	if configPath != "" {
		var err error
		if fc, err = LoadConfig(configPath); err != nil {
			return settings{}, err
		}
	}
	s := settings{
		Config:  fc.SimConfig(),
		Layout:  fc.Layout(),
		Workers: fc.Batch.Workers,
	}
	flags := cmd.Flags()
	if flags.Changed("max-iterations") {
		s.Config.MaxIterations = maxIterations
	}
	if flags.Changed("trailing-row") {
		s.Config.TrailingRow = trailingRow
	}
	if err := s.Config.Validate(); err != nil {
		return settings{}, err
	}
	return s, nil
}

// newCollector returns a metrics collector on a fresh registry.
func newCollector() (*metrics.Collector, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return metrics.NewCollector(reg), reg
}

// writeMetrics writes the registry to --metrics-file when set.
func writeMetrics(reg *prometheus.Registry) {
	if metricsFile == "" {
		return
	}
	if err := metrics.WriteTextfile(metricsFile, reg); err != nil {
		logrus.Errorf("Failed to write metrics to %s: %v", metricsFile, err)
		return
	}
	logrus.Infof("Metrics written to %s", metricsFile)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	def := sim.DefaultConfig()
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().IntVar(&maxIterations, "max-iterations", def.MaxIterations, "Propagation steps before stabilization gives up")
	rootCmd.PersistentFlags().BoolVar(&trailingRow, "trailing-row", def.TrailingRow, "Repeat the final settled zero-delay row at t+1")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
}
