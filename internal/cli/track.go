package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfinderhq/wayfinder-coach/internal/behavior"
)

// NewTrackCmd creates the 'track' command group. These commands are the
// bridge other tools call to feed behavior events into the store.
func NewTrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Record behavior events (search, access, navigation)",
	}
	cmd.AddCommand(newTrackSearchCmd())
	cmd.AddCommand(newTrackAccessCmd())
	cmd.AddCommand(newTrackNavigationCmd())
	return cmd
}

// newTrackSearchCmd records a search event.
func newTrackSearchCmd() *cobra.Command {
	var resultsCount int
	var clicked string
	var timeToClickMS int
	var refined string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Record a search",
		Example: `  wayfinder-coach track search "budget report" --results 12 --clicked budget_2026.xlsx
  wayfinder-coach track search "bdget" --results 0 --refined "budget"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCoach()
			if err != nil {
				return err
			}
			defer c.Close()

			c.Store().RecordSearch(behavior.SearchEvent{
				Query:         args[0],
				ResultsCount:  resultsCount,
				ClickedResult: clicked,
				TimeToClickMS: timeToClickMS,
				RefinedQuery:  refined,
			})
			fmt.Println("Search recorded")
			return nil
		},
	}

	cmd.Flags().IntVarP(&resultsCount, "results", "r", 0, "Number of results returned")
	cmd.Flags().StringVar(&clicked, "clicked", "", "Result the user opened (empty = abandoned)")
	cmd.Flags().IntVar(&timeToClickMS, "time-to-click", 0, "Milliseconds until the user picked a result")
	cmd.Flags().StringVar(&refined, "refined", "", "Rephrased query, if the user refined")
	return cmd
}

// newTrackAccessCmd records a file access event.
func newTrackAccessCmd() *cobra.Command {
	var accessType string
	var previousName string
	var newName string
	var sourcePath string
	var destPath string

	cmd := &cobra.Command{
		Use:   "access <file>",
		Short: "Record a file access",
		Example: `  wayfinder-coach track access notes.md --type open
  wayfinder-coach track access notes.md --type rename --previous notes.md --new 20260830_meeting_notes.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCoach()
			if err != nil {
				return err
			}
			defer c.Close()

			c.Store().RecordFileAccess(behavior.FileAccessEvent{
				FilePath:     args[0],
				AccessType:   accessType,
				PreviousName: previousName,
				NewName:      newName,
				SourcePath:   sourcePath,
				DestPath:     destPath,
			})
			fmt.Println("File access recorded")
			return nil
		},
	}

	cmd.Flags().StringVarP(&accessType, "type", "t", behavior.AccessOpen,
		"Access type (open, preview, edit, rename, move, delete)")
	cmd.Flags().StringVar(&previousName, "previous", "", "Previous name (renames)")
	cmd.Flags().StringVar(&newName, "new", "", "New name (renames)")
	cmd.Flags().StringVar(&sourcePath, "source", "", "Source path (moves)")
	cmd.Flags().StringVar(&destPath, "dest", "", "Destination path (moves)")
	return cmd
}

// newTrackNavigationCmd records a folder navigation event.
func newTrackNavigationCmd() *cobra.Command {
	var timeSpent float64
	var filesViewed int
	var action string

	cmd := &cobra.Command{
		Use:   "navigation <path>",
		Short: "Record folder navigation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCoach()
			if err != nil {
				return err
			}
			defer c.Close()

			c.Store().RecordNavigation(behavior.NavigationEvent{
				Path:             args[0],
				TimeSpentSeconds: timeSpent,
				FilesViewed:      filesViewed,
				ActionTaken:      action,
			})
			fmt.Println("Navigation recorded")
			return nil
		},
	}

	cmd.Flags().Float64VarP(&timeSpent, "seconds", "s", 0, "Seconds spent in the folder")
	cmd.Flags().IntVar(&filesViewed, "files-viewed", 0, "Files viewed while browsing")
	cmd.Flags().StringVarP(&action, "action", "a", "", "Action that ended the visit (opened_file, searched, navigated_away)")
	return cmd
}
