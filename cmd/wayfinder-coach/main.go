/*
Package main is the entry point for the wayfinder-coach CLI.

wayfinder-coach is an adaptive coaching engine for personal file
organization. It learns how you search, name, and organize files, then
offers suggestions scaled to your skill level: full guidance for
beginners, fading out as skills improve, re-engaging on regression.

Usage:
  wayfinder-coach [command]

Available Commands:
  session     Start or end a coaching session
  suggest     Get naming, folder, and convention suggestions
  tip         Get a search tip for a query
  respond     Record your response to a suggestion
  status      Show skill levels and coaching activity
  fade        Show which skills have faded out of coaching
  history     Show score history for a skill
  override    Disable suggestions for a skill
  reset       Reset skill tracking
  reengage    Restart full coaching for a skill
  track       Record behavior events
  export      Export tracked behavior data as JSON
  clear       Delete all tracked behavior data

Examples:
  # Get a name suggestion for a new file
  wayfinder-coach suggest name notes.md --content "Meeting notes about budget"

  # Record that the suggestion was accepted
  wayfinder-coach respond --type naming --accepted \
      --original notes.md --suggested 20260830_meetings_notes.md

  # See where coaching stands
  wayfinder-coach status
*/
package main

import (
	"fmt"
	"os"

	"github.com/wayfinderhq/wayfinder-coach/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
