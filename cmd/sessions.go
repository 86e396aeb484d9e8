package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gioe/quotient/internal/store"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List completed test sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		examinee, _ := cmd.Flags().GetString("examinee")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer s.Close()

		records, err := s.EventRepo().RecentSessions(context.Background(), store.QueryOpts{
			Limit:    limit,
			Examinee: examinee,
		})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No completed sessions found.")
			return nil
		}

		fmt.Printf("%-19s  %-12s  %-5s  %-7s  %-6s  %-5s  %s\n",
			"Completed", "Examinee", "Items", "Correct", "Theta", "Score", "Stopped")
		fmt.Println(strings.Repeat("─", 80))
		for _, r := range records {
			fmt.Printf("%-19s  %-12s  %5d  %7d  %+6.2f  %5d  %s\n",
				r.Timestamp.Format("2006-01-02 15:04:05"),
				r.ExamineeID, r.ItemsGiven, r.Correct, r.Theta, r.Score, r.StopReason)
		}
		return nil
	},
}

func init() {
	sessionsCmd.Flags().Int("limit", 20, "Maximum sessions to list")
	sessionsCmd.Flags().String("examinee", "", "Only show sessions for this examinee")
}
