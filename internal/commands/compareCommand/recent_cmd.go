package comparecommand

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/redjax/revview/internal/config"
	"github.com/redjax/revview/internal/services/gitService/resolverService"
)

// NewRecentCommand creates the 'recent' command: list recently presented
// comparisons.
func NewRecentCommand() *cobra.Command {
	var maxCount int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recent comparisons",
		Long:  "Show the most recently opened comparisons, newest first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter := resolverService.NewStderrReporter(config.K.Bool("debug"))

			store := openRecentStore(reporter)
			if store == nil {
				return fmt.Errorf("comparison log unavailable; run with --debug for detail")
			}
			defer store.Close()

			comparisons, err := store.List(maxCount)
			if err != nil {
				return err
			}
			if len(comparisons) == 0 {
				fmt.Println("No comparisons recorded yet.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"When", "File", "From", "To", "Repository"})
			for _, c := range comparisons {
				t.AppendRow(table.Row{
					c.CreatedAt.Local().Format("2006-01-02 15:04"),
					c.FilePath,
					shortRev(c.FromRev),
					shortRev(c.ToRev),
					c.RepoPath,
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&maxCount, "max", 20, "Maximum number of comparisons to list")

	return cmd
}

func shortRev(rev string) string {
	if len(rev) > 8 {
		return rev[:8]
	}
	return rev
}
