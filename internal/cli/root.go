package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/brainbreak/brainbreak-api/internal/gameclient"
)

var (
	cfg    *Config
	client *gameclient.Client
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "brainbreak",
		Short: "CLI client for the BrainBreak memory game API",
		Long: `brainbreak is a CLI client for the BrainBreak memory matching game.

It covers account signup and verification, solo stat reporting, the
leaderboard, and playing multiplayer matches from the terminal.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.LoadSession(); err != nil {
				return err
			}
			client = gameclient.NewClient(cfg.ServerURL, cfg.Token)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: BRAINBREAK_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Bearer token (env: BRAINBREAK_TOKEN)")

	rootCmd.AddCommand(newSignupCmd())
	rootCmd.AddCommand(newSigninCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newResendCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newPlayCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
