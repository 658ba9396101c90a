package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewExportCmd creates the 'export' command for backing up tracked data.
func NewExportCmd() *cobra.Command {
	var outputFile string
	var summaryOnly bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tracked behavior data as JSON",
		Example: `  wayfinder-coach export
  wayfinder-coach export -o backup.json
  wayfinder-coach export --summary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCoach()
			if err != nil {
				return err
			}
			defer c.Close()

			var payload interface{}
			if summaryOnly {
				payload = c.Store().Summarize()
			} else {
				payload = c.Store().Export()
			}

			data, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode export: %w", err)
			}

			if outputFile == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(outputFile, data, 0644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Printf("Exported to %s\n", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "Export a condensed summary instead of the full log")
	return cmd
}

// NewClearCmd creates the 'clear' command for wiping all tracked data.
func NewClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all tracked behavior data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Print("This will delete all tracked behavior data. Continue? (y/N): ")
				var response string
				fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					fmt.Println("Cancelled")
					return nil
				}
			}

			c, err := openCoach()
			if err != nil {
				return err
			}
			defer c.Close()

			c.Store().ClearAll()
			if err := c.ResetSkillTracking(""); err != nil {
				return err
			}

			fmt.Println("Behavior data cleared")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
