package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gioe/quotient/internal/itembank"
	"github.com/gioe/quotient/internal/simulation"
	"github.com/gioe/quotient/internal/stopping"
	"github.com/gioe/quotient/internal/store"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a batch of synthetic examinees against the engine",
	Long: "Simulates examinees with known true abilities to check estimator bias, " +
		"RMSE, test length, and item exposure before a bank goes live.",
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().String("bank", "", "Path to item bank JSON (demo bank if unset)")
	simulateCmd.Flags().Int("examinees", 500, "Number of synthetic examinees")
	simulateCmd.Flags().Int64("seed", 1, "Random seed for the batch")
	simulateCmd.Flags().Float64("mean", 0, "True ability population mean")
	simulateCmd.Flags().Float64("sd", 1, "True ability population standard deviation")
	simulateCmd.Flags().Int("top", 10, "Number of most-exposed items to report")
	simulateCmd.Flags().Bool("dry-run", false, "Report only; do not record simulated sessions to the database")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}

	var bank *itembank.Bank
	if path, _ := cmd.Flags().GetString("bank"); path != "" {
		bank, err = itembank.Load(path, reg)
		if err != nil {
			return fmt.Errorf("load bank: %w", err)
		}
	} else {
		bank = itembank.DemoBank(reg, 10)
	}

	sim, err := simulation.New(reg, bank, cfg.SelectionConfig(), cfg.StoppingConfig())
	if err != nil {
		return fmt.Errorf("build simulator: %w", err)
	}

	simCfg := simulation.DefaultConfig()
	simCfg.Examinees, _ = cmd.Flags().GetInt("examinees")
	simCfg.Seed, _ = cmd.Flags().GetInt64("seed")
	simCfg.TrueMean, _ = cmd.Flags().GetFloat64("mean")
	simCfg.TrueSD, _ = cmd.Flags().GetFloat64("sd")

	report, err := sim.Run(simCfg)
	if err != nil {
		return fmt.Errorf("run simulation: %w", err)
	}

	if dry, _ := cmd.Flags().GetBool("dry-run"); !dry {
		if err := recordRuns(cmd, report); err != nil {
			return err
		}
	}

	top, _ := cmd.Flags().GetInt("top")
	printReport(report, top)
	return nil
}

// recordRuns appends every simulated session and response to the event log so
// bank-tuning queries can replay them.
func recordRuns(cmd *cobra.Command, report *simulation.Report) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	events := st.EventRepo()
	for _, run := range report.Runs {
		if err := events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:  run.SessionID,
			ExamineeID: run.ExamineeID,
			Action:     store.ActionStart,
		}); err != nil {
			return fmt.Errorf("record session start: %w", err)
		}
		for i, resp := range run.Session.Responses {
			if err := events.AppendResponseEvent(ctx, store.ResponseEventData{
				SessionID:      run.SessionID,
				ExamineeID:     run.ExamineeID,
				ItemID:         resp.ItemID,
				Domain:         resp.Domain,
				Discrimination: resp.Discrimination,
				Difficulty:     resp.Difficulty,
				Correct:        resp.Correct,
				ThetaAfter:     run.Session.Trajectory[i],
				SEAfter:        run.Session.SETrajectory[i],
			}); err != nil {
				return fmt.Errorf("record response: %w", err)
			}
		}
		if err := events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:  run.SessionID,
			ExamineeID: run.ExamineeID,
			Action:     store.ActionEnd,
			ItemsGiven: run.Final.ItemsGiven,
			Correct:    run.Final.CorrectCount,
			Theta:      run.Final.Theta,
			SE:         run.Final.SE,
			Score:      run.Final.Score.Score,
			StopReason: string(run.Final.StopReason),
		}); err != nil {
			return fmt.Errorf("record session end: %w", err)
		}
	}
	fmt.Printf("Recorded %d sessions to %s\n\n", len(report.Runs), dbPath)
	return nil
}

func printReport(report *simulation.Report, top int) {
	fmt.Printf("Examinees:  %d\n", report.Examinees)
	fmt.Printf("Bias:       %+.3f\n", report.Bias)
	fmt.Printf("RMSE:       %.3f\n", report.RMSE)
	fmt.Printf("Mean items: %.1f\n", report.MeanItems)
	fmt.Printf("Mean SE:    %.3f\n", report.MeanSE)

	reasons := make([]stopping.Reason, 0, len(report.StopReasons))
	for r := range report.StopReasons {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	fmt.Println("\nStop reasons:")
	for _, r := range reasons {
		n := report.StopReasons[r]
		fmt.Printf("  %-24s %5d  (%.1f%%)\n", r, n, 100*float64(n)/float64(report.Examinees))
	}

	fmt.Println("\nMost exposed items:")
	for _, e := range report.TopExposures(top) {
		fmt.Printf("  %-12s %.1f%%\n", e.ItemID, e.Rate*100)
	}
}
