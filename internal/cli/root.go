/*
Package cli implements the wayfinder-coach command surface.

Each command constructs a coach over the configured data directory, runs
one operation, and prints human-readable output (or JSON with --json).
*/
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfinderhq/wayfinder-coach/internal/coach"
	"github.com/wayfinderhq/wayfinder-coach/internal/version"
)

// dataDir is the shared --data-dir flag value.
var dataDir string

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wayfinder-coach",
		Short: "Adaptive coaching for file organization",
		Long: `wayfinder-coach learns how you search, name, and organize files,
then offers suggestions scaled to your skill level.

Guidance starts at full intensity for new users and fades out as each
skill improves. If a skill regresses, coaching picks back up. All data
stays in a local directory you can export or wipe at any time.`,
		Version: version.GetVersion(),
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"Data directory (default: ~/.wayfinder/learning)")

	rootCmd.AddCommand(NewSessionCmd())
	rootCmd.AddCommand(NewSuggestCmd())
	rootCmd.AddCommand(NewTipCmd())
	rootCmd.AddCommand(NewRespondCmd())
	rootCmd.AddCommand(NewStatusCmd())
	rootCmd.AddCommand(NewFadeCmd())
	rootCmd.AddCommand(NewHistoryCmd())
	rootCmd.AddCommand(NewOverrideCmd())
	rootCmd.AddCommand(NewResetCmd())
	rootCmd.AddCommand(NewReengageCmd())
	rootCmd.AddCommand(NewTrackCmd())
	rootCmd.AddCommand(NewExportCmd())
	rootCmd.AddCommand(NewClearCmd())

	return rootCmd
}

// openCoach builds a coach over the configured data directory.
func openCoach() (*coach.Coach, error) {
	c, err := coach.New(coach.Options{DataDir: dataDir})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize coach: %w", err)
	}
	return c, nil
}

// printJSON pretty-prints a value as JSON.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
