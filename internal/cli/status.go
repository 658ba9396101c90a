package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wayfinderhq/wayfinder-coach/internal/assess"
)

// NewStatusCmd creates the 'status' command.
func NewStatusCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show skill levels and coaching activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCoach()
			if err != nil {
				return err
			}
			defer c.Close()

			status := c.Status()
			if jsonOutput {
				return printJSON(status)
			}

			fmt.Println("Coaching Status")
			fmt.Println("===============")
			fmt.Printf("Overall skill: %.0f%%\n", status.OverallSkill*100)
			fmt.Println()

			for _, name := range assess.AllSkills {
				skill, ok := status.Skills[name]
				if !ok {
					continue
				}
				fmt.Printf("  %-20s %.0f%%  %-11s trend: %-10s intensity: %.0f%%\n",
					humanSkill(name), skill.Score*100, skill.Level, skill.Trend,
					skill.Intensity*100)
			}
			fmt.Println()

			if status.GuidanceActive {
				fmt.Println("Guidance: active")
			} else {
				fmt.Println("Guidance: faded out")
			}
			if status.SessionActive {
				fmt.Println("Session: active")
			}
			if status.TotalSuggestionsOffered > 0 {
				fmt.Printf("Suggestions: %d offered, %d accepted, %d dismissed (%.0f%%)\n",
					status.TotalSuggestionsOffered, status.TotalSuggestionsAccepted,
					status.TotalSuggestionsDismissed, status.AcceptanceRate*100)
			}
			if len(status.Regressions) > 0 {
				fmt.Printf("Regressing: %s\n", strings.Join(status.Regressions, ", "))
			}

			for _, rec := range status.Recommendations {
				fmt.Printf("\n  * %s\n", rec)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

// NewFadeCmd creates the 'fade' command showing per-skill fade state.
func NewFadeCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "fade",
		Short: "Show which skills have faded out of coaching",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCoach()
			if err != nil {
				return err
			}
			defer c.Close()

			fades := c.FadeStatus()
			if jsonOutput {
				return printJSON(fades)
			}

			fmt.Println("Fade-Out Status")
			fmt.Println("===============")
			for _, name := range assess.AllSkills {
				fade, ok := fades[name]
				if !ok {
					continue
				}
				state := "coaching"
				switch {
				case fade.OverrideDisabled:
					state = "disabled by you"
				case fade.FadedOut:
					state = "faded out"
				}
				if fade.WillReEngage {
					state += ", re-engaging"
				}
				fmt.Printf("  %-20s %-11s %s\n", humanSkill(name), fade.Level, state)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

// NewHistoryCmd creates the 'history' command showing skill score history.
func NewHistoryCmd() *cobra.Command {
	var days int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:       "history <skill>",
		Short:     "Show score history for a skill",
		Example:   `  wayfinder-coach history naming_consistency --days 30`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: assess.AllSkills,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCoach()
			if err != nil {
				return err
			}
			defer c.Close()

			points := c.SkillHistory(args[0], days)
			if jsonOutput {
				return printJSON(points)
			}

			if len(points) == 0 {
				fmt.Println("No history yet.")
				return nil
			}

			sort.Slice(points, func(i, j int) bool {
				return points[i].Date.Before(points[j].Date)
			})
			for _, p := range points {
				fmt.Printf("  %s  %.0f%%  %s\n",
					p.Date.Format("2006-01-02 15:04"), p.Score*100, p.Trend)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 0, "Limit to the last N days (0 = all)")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

func humanSkill(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
