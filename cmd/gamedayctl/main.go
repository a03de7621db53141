package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag  string
	userFlag int64
	rootCmd  = &cobra.Command{
		Use:   "gamedayctl",
		Short: "CLI client for the gameday REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Gameday service base URL")

	gamesCmd := &cobra.Command{
		Use:   "games",
		Short: "List games released on a date (default today)",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			return runGames(apiFlag, date, os.Stdout)
		},
	}
	gamesCmd.Flags().StringP("date", "d", "", "Calendar date (YYYY-MM-DD)")
	rootCmd.AddCommand(gamesCmd)

	gotdCmd := &cobra.Command{
		Use:   "gotd",
		Short: "Show today's game of the day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGotd(apiFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(gotdCmd)

	detailCmd := &cobra.Command{
		Use:   "detail <game-id>",
		Short: "Show the full detail record for one game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetail(apiFlag, args[0], os.Stdout)
		},
	}
	rootCmd.AddCommand(detailCmd)

	voteCmd := &cobra.Command{
		Use:   "vote <game-id>",
		Short: "Vote for a game in today's set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if userFlag <= 0 {
				return fmt.Errorf("--user required")
			}
			return runVote(apiFlag, userFlag, args[0], os.Stdout)
		},
	}
	voteCmd.Flags().Int64VarP(&userFlag, "user", "u", 0, "User ID (required)")
	rootCmd.AddCommand(voteCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
