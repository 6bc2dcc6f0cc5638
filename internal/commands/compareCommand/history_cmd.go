package comparecommand

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/redjax/revview/internal/config"
	"github.com/redjax/revview/internal/services/gitService/compareService"
	"github.com/redjax/revview/internal/services/gitService/historyService"
	"github.com/redjax/revview/internal/services/gitService/identityService"
	"github.com/redjax/revview/internal/services/gitService/resolverService"
	"github.com/redjax/revview/internal/services/gitService/workingService"
)

// NewHistoryCommand creates the 'history' command: browse a file's commits
// and open a comparison for any of them.
func NewHistoryCommand() *cobra.Command {
	var (
		maxCount int
		plain    bool
	)

	cmd := &cobra.Command{
		Use:   "history [file]",
		Short: "Browse a file's history",
		Long:  "Interactive commit table for a single file; selecting a commit opens the comparison with its previous revision.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter := resolverService.NewStderrReporter(config.K.Bool("debug"))

			id, err := identityService.NewResolver().ResolveFileIdentity(args[0])
			if err != nil {
				return err
			}

			entries, err := historyService.NewProvider().FileHistory(id.RepoPath, id.RelPath, historyService.Options{
				MaxCount:   maxCount,
				StartRev:   id.Rev,
				SkipMerges: true,
			})
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				reporter.Warnf("%s is not under source control", args[0])
				return nil
			}

			if plain {
				printHistoryTable(entries)
				return nil
			}

			selected, err := historyService.RunHistoryBrowser(id.RelPath, entries)
			if err != nil || selected == nil {
				return err
			}

			viewer := compareService.NewViewer()
			store := openRecentStore(reporter)
			var recents resolverService.Recorder
			if store != nil {
				recents = store
				defer store.Close()
			}

			working := workingService.NewService(viewer, recents, reporter)
			resolver := resolverService.NewResolver(viewer, working, recents, reporter)

			// The commit is already known, so the resolver skips its own
			// history lookup.
			err = resolver.Handle(
				resolverService.NodeContext(args[0]),
				resolverService.DiffArgs{Commit: resolverService.CommitFromEntry(*selected)},
			)
			if err != nil {
				return err
			}

			return viewer.Run()
		},
	}

	cmd.Flags().IntVar(&maxCount, "max", 20, "Maximum number of commits to list")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the history instead of opening the TUI")

	return cmd
}

func printHistoryTable(entries []historyService.Entry) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Commit", "Date", "Author", "Message"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.ShortHash, e.Date.Format("2006-01-02 15:04"), e.Author, e.Message})
	}
	t.Render()
}
