package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"sains-quiz-service/internal/app"
	"sains-quiz-service/internal/config"
)

// NewLeaderboardCmd prints the top scores.
func NewLeaderboardCmd(configPath *string) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			service, cleanup, err := buildService(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, global := service.Leaderboard(cmd.Context(), top)
			out := cmd.OutOrStdout()
			if !global {
				fmt.Fprintln(out, "(global leaderboard unavailable, showing local scores)")
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No scores yet. Be the first!")
				return nil
			}
			for i, e := range entries {
				fmt.Fprintf(out, "%2d. %-20s %3d  %s\n", i+1, e.Name, e.Score, e.Date())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&top, "top", "n", app.DefaultTopN, "number of scores to show")
	return cmd
}
