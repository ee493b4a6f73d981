package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gatesim/gatesim/sim/batch"
)

var (
	batchRoot    string // Directory whose sub-directories are test cases
	batchWorkers int    // Concurrent cases
)

// batchCmd simulates every test case under a root directory
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Simulate every test-case directory under --root",
	Long:  "Each sub-directory of --root that contains a netlist is simulated independently; its traces are written next to its inputs.",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := resolveSettings(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if cmd.Flags().Changed("workers") {
			s.Workers = batchWorkers
		}

		cases, err := batch.Discover(batchRoot, s.Layout)
		if err != nil {
			logrus.Fatalf("Failed to discover test cases: %v", err)
		}
		if len(cases) == 0 {
			logrus.Warnf("No test cases with a %s under %s", s.Layout.Netlist, batchRoot)
			return
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		collector, reg := newCollector()
		runner := &batch.Runner{
			Layout:   s.Layout,
			Config:   s.Config,
			Workers:  s.Workers,
			Observer: collector,
		}
		logrus.Infof("Simulating %d case(s) with max-iterations=%d, trailing-row=%v",
			len(cases), s.Config.MaxIterations, s.Config.TrailingRow)
		reports := runner.Run(ctx, cases)
		writeMetrics(reg)

		for _, rep := range reports {
			status := "ok"
			switch {
			case rep.Err != nil:
				status = "FAILED"
			case !rep.Result.Converged():
				status = fmt.Sprintf("ok, %d warning(s)", len(rep.Result.Warnings))
			}
			fmt.Printf("%-24s %s\n", rep.Case.Name, status)
		}
		if failed := batch.Failed(reports); len(failed) > 0 {
			logrus.Fatalf("%d of %d case(s) failed", len(failed), len(reports))
		}
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchRoot, "root", "./test", "Directory whose sub-directories are test cases")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Cases simulated concurrently (0 = GOMAXPROCS)")

	rootCmd.AddCommand(batchCmd)
}
