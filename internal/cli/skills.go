package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfinderhq/wayfinder-coach/internal/assess"
)

// NewOverrideCmd creates the 'override' command for disabling or
// re-enabling suggestions per skill.
func NewOverrideCmd() *cobra.Command {
	var enable bool

	cmd := &cobra.Command{
		Use:   "override <skill>",
		Short: "Disable suggestions for a skill (or re-enable with --enable)",
		Example: `  wayfinder-coach override naming_consistency
  wayfinder-coach override naming_consistency --enable`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: assess.AllSkills,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCoach()
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.SetFadeOutOverride(args[0], !enable); err != nil {
				return err
			}

			if enable {
				fmt.Printf("Suggestions re-enabled for %s\n", humanSkill(args[0]))
			} else {
				fmt.Printf("Suggestions disabled for %s\n", humanSkill(args[0]))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&enable, "enable", "e", false, "Re-enable suggestions instead of disabling")
	return cmd
}

// NewResetCmd creates the 'reset' command for wiping skill tracking.
func NewResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [skill]",
		Short: "Reset skill tracking (all skills when none given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCoach()
			if err != nil {
				return err
			}
			defer c.Close()

			skill := ""
			if len(args) > 0 {
				skill = args[0]
			}
			if err := c.ResetSkillTracking(skill); err != nil {
				return err
			}

			if skill == "" {
				fmt.Println("All skill tracking reset")
			} else {
				fmt.Printf("Skill tracking reset for %s\n", humanSkill(skill))
			}
			return nil
		},
	}
}

// NewReengageCmd creates the 'reengage' command for restarting full
// coaching on a skill.
func NewReengageCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "reengage <skill>",
		Short:     "Restart full coaching for a skill",
		Args:      cobra.ExactArgs(1),
		ValidArgs: assess.AllSkills,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCoach()
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.ForceReEngagement(args[0]); err != nil {
				return err
			}
			fmt.Printf("Coaching restarted for %s\n", humanSkill(args[0]))
			return nil
		},
	}
}
