package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wayfinderhq/wayfinder-coach/internal/coach"
	"github.com/wayfinderhq/wayfinder-coach/internal/suggest"
)

// NewSuggestCmd creates the 'suggest' command group.
func NewSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Get naming, folder, and convention suggestions",
	}
	cmd.AddCommand(newSuggestNameCmd())
	cmd.AddCommand(newSuggestFolderCmd())
	cmd.AddCommand(newSuggestConventionCmd())
	return cmd
}

// newSuggestNameCmd suggests a filename.
func newSuggestNameCmd() *cobra.Command {
	var content string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "name <file>",
		Short: "Suggest a better name for a file",
		Example: `  wayfinder-coach suggest name notes.md
  wayfinder-coach suggest name notes.md --content "Meeting notes about budget"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCoach()
			if err != nil {
				return err
			}
			defer c.Close()

			result := c.GetNamingSuggestion(args[0], content)
			if jsonOutput {
				return printJSON(result)
			}

			printGate(result)
			if result.Naming != nil {
				n := result.Naming
				fmt.Printf("Suggested: %s\n", n.SuggestedName)
				fmt.Printf("  Convention: %s\n", n.ConventionUsed)
				fmt.Printf("  Confidence: %.0f%%\n", n.Confidence*100)
				fmt.Printf("  Reasoning:  %s\n", n.Reasoning)
				for _, alt := range n.Alternatives {
					fmt.Printf("  Alternative: %s\n", alt)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&content, "content", "c", "", "Free-text summary of the file contents")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

// newSuggestFolderCmd suggests a folder for a file.
func newSuggestFolderCmd() *cobra.Command {
	var baseDir string
	var content string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "folder <file>",
		Short: "Suggest where a file belongs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCoach()
			if err != nil {
				return err
			}
			defer c.Close()

			result := c.GetFolderSuggestion(args[0], baseDir, content)
			if jsonOutput {
				return printJSON(result)
			}

			printGate(result)
			if result.Folder != nil {
				f := result.Folder
				fmt.Printf("Suggested folder: %s\n", f.SuggestedPath)
				fmt.Printf("  Confidence: %.0f%%\n", f.Confidence*100)
				fmt.Printf("  Reasoning:  %s\n", f.Reasoning)
				if f.CreatesNewFolder {
					fmt.Println("  (new folder)")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&baseDir, "base-dir", "b", "", "Base directory to organize under (default: file's directory)")
	cmd.Flags().StringVarP(&content, "content", "c", "", "Free-text summary of the file contents")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

// newSuggestConventionCmd recommends a naming convention for file types.
func newSuggestConventionCmd() *cobra.Command {
	var jsonOutput bool
	var listAll bool

	cmd := &cobra.Command{
		Use:   "convention [extension...]",
		Short: "Recommend a naming convention for your file types",
		Example: `  wayfinder-coach suggest convention md pdf
  wayfinder-coach suggest convention py
  wayfinder-coach suggest convention --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listAll {
				catalog := suggest.Conventions()
				if jsonOutput {
					return printJSON(catalog)
				}
				for _, info := range catalog {
					fmt.Printf("%s  %s\n", info.Name, info.Pattern)
					fmt.Printf("  %s\n", info.Description)
					fmt.Printf("  Best for: %s\n", strings.Join(info.BestFor, ", "))
					for _, example := range info.Examples {
						fmt.Printf("    %s\n", example)
					}
					fmt.Println()
				}
				return nil
			}

			c, err := openCoach()
			if err != nil {
				return err
			}
			defer c.Close()

			engine := suggest.NewEngine(c.Store().NamingPreferences(), nil)
			recommendation := engine.SuggestConvention(args)
			if jsonOutput {
				return printJSON(recommendation)
			}

			fmt.Printf("Convention: %s\n", recommendation.ConventionName)
			fmt.Printf("  %s\n", recommendation.Description)
			fmt.Println("  Examples:")
			for _, example := range recommendation.Examples {
				fmt.Printf("    %s\n", example)
			}
			fmt.Printf("  Applies to: %s\n", strings.Join(recommendation.AppliesTo, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	cmd.Flags().BoolVarP(&listAll, "list", "l", false, "List all built-in conventions")
	return cmd
}

// printGate prints the display decision line for a suggestion result.
func printGate(result coach.SuggestionResult) {
	shown := "shown"
	if !result.ShouldShow {
		shown = "held back"
	}
	fmt.Printf("Guidance %s (level: %s, intensity: %.0f%%)\n",
		shown, result.SkillLevel, result.Intensity*100)
	fmt.Printf("  %s\n", result.Reason)
}
