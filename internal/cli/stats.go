package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top players",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := client.Leaderboard(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RANK\tUSERNAME\tHIGH SCORE\tGAMES\tWINS\tLOSSES")
			for i, u := range users {
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\n",
					i+1, u.Username, u.HighScore, u.GamesPlayed, u.Wins, u.Losses)
			}
			return w.Flush()
		},
	}
}

func newStatsCmd() *cobra.Command {
	var score int
	var won, lost bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Report a finished solo game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if won && lost {
				return fmt.Errorf("--won and --lost are mutually exclusive")
			}

			var outcome *bool
			if won || lost {
				outcome = &won
			}

			user, err := client.UpdateStats(cmd.Context(), score, outcome)
			if err != nil {
				return err
			}

			fmt.Printf("%s: high score %d, %d games, %d wins, %d losses\n",
				user.Username, user.HighScore, user.GamesPlayed, user.Wins, user.Losses)
			return nil
		},
	}

	cmd.Flags().IntVar(&score, "score", 0, "Final score of the game")
	cmd.Flags().BoolVar(&won, "won", false, "The game was won")
	cmd.Flags().BoolVar(&lost, "lost", false, "The game was lost")

	return cmd
}
