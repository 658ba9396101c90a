package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfinderhq/wayfinder-coach/internal/behavior"
)

// NewSessionCmd creates the 'session' command group.
func NewSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Start or end a coaching session",
	}
	cmd.AddCommand(newSessionStartCmd())
	cmd.AddCommand(newSessionEndCmd())
	return cmd
}

// newSessionStartCmd starts a new session.
func newSessionStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a coaching session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCoach()
			if err != nil {
				return err
			}
			defer c.Close()

			id := c.StartSession()
			fmt.Printf("Session started: %s\n", id)
			return nil
		},
	}
}

// newSessionEndCmd ends the active session and prints a summary.
func newSessionEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the active session and show a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCoach()
			if err != nil {
				return err
			}
			defer c.Close()

			// The session was usually opened by a previous process;
			// adopt the open session left in storage.
			if !c.ResumeSession() {
				fmt.Println("No active session.")
				return nil
			}

			summary, err := c.EndSession()
			if err != nil {
				if errors.Is(err, behavior.ErrNoActiveSession) {
					fmt.Println("No active session.")
					return nil
				}
				return err
			}

			fmt.Printf("Session ended: %s\n", summary.SessionID)
			fmt.Printf("  Duration:             %s\n", summary.Duration)
			fmt.Printf("  Suggestions offered:  %d\n", summary.SuggestionsOffered)
			fmt.Printf("  Suggestions accepted: %d\n", summary.SuggestionsAccepted)
			fmt.Printf("  Skill change:         %+.2f\n", summary.SkillChange)
			return nil
		},
	}
}
