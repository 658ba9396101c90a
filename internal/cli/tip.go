package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewTipCmd creates the 'tip' command.
func NewTipCmd() *cobra.Command {
	var resultsCount int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "tip <query>",
		Short: "Get a search tip for a query",
		Example: `  wayfinder-coach tip "budget report" --results 0
  wayfinder-coach tip meeting --results 12`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCoach()
			if err != nil {
				return err
			}
			defer c.Close()

			tip := c.GetSearchTip(args[0], resultsCount)
			if jsonOutput {
				if tip == nil {
					fmt.Println("null")
					return nil
				}
				return printJSON(tip)
			}

			if tip == nil {
				fmt.Println("No tip. Your search skills look solid.")
				return nil
			}
			fmt.Printf("Tip (%s): %s\n", tip.Type, tip.Tip)
			return nil
		},
	}

	cmd.Flags().IntVarP(&resultsCount, "results", "r", 0, "How many results the search returned")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}
