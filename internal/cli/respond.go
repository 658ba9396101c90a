package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRespondCmd creates the 'respond' command for recording how the
// user reacted to a suggestion.
func NewRespondCmd() *cobra.Command {
	var suggestionType string
	var accepted bool
	var original string
	var suggested string
	var final string

	cmd := &cobra.Command{
		Use:   "respond",
		Short: "Record your response to a suggestion",
		Example: `  wayfinder-coach respond --type naming --accepted \
      --original notes.md --suggested 20260830_meetings_notes.md
  wayfinder-coach respond --type naming \
      --original notes.md --suggested 20260830_meetings_notes.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCoach()
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.RecordSuggestionResponse(suggestionType, accepted, original, suggested, final); err != nil {
				return err
			}

			if accepted {
				fmt.Println("Response recorded: accepted")
			} else {
				fmt.Println("Response recorded: dismissed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&suggestionType, "type", "t", "naming", "Suggestion type (naming, folder, convention)")
	cmd.Flags().BoolVarP(&accepted, "accepted", "a", false, "The suggestion was accepted")
	cmd.Flags().StringVar(&original, "original", "", "Original value before the suggestion")
	cmd.Flags().StringVar(&suggested, "suggested", "", "Value the coach suggested")
	cmd.Flags().StringVar(&final, "final", "", "Value the user actually used (default: the suggested value)")
	return cmd
}
