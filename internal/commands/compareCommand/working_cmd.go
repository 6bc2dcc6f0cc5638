package comparecommand

import (
	"github.com/spf13/cobra"

	"github.com/redjax/revview/internal/config"
	"github.com/redjax/revview/internal/services/gitService/compareService"
	"github.com/redjax/revview/internal/services/gitService/historyService"
	"github.com/redjax/revview/internal/services/gitService/identityService"
	"github.com/redjax/revview/internal/services/gitService/resolverService"
	"github.com/redjax/revview/internal/services/gitService/workingService"
)

// NewWorkingCommand creates the 'working' command: compare a committed
// revision against the on-disk working copy.
func NewWorkingCommand() *cobra.Command {
	var (
		rev   string
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "working [file]",
		Short: "Compare a revision with the working tree",
		Long:  "Open a side-by-side comparison of a file's committed revision (latest by default, or --rev) and its current on-disk state.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter := resolverService.NewStderrReporter(config.K.Bool("debug"))
			viewer := compareService.NewViewer()

			store := openRecentStore(reporter)
			var recents resolverService.Recorder
			if store != nil {
				recents = store
				defer store.Close()
			}

			target := args[0]
			if rev != "" {
				target += "@" + rev
			}

			id, err := identityService.NewResolver().ResolveFileIdentity(target)
			if err != nil {
				return err
			}

			entries, err := historyService.NewProvider().FileHistory(id.RepoPath, id.RelPath, historyService.Options{
				MaxCount:   1,
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

			working := workingService.NewService(viewer, recents, reporter)
			if err := working.ShowWorkingDiff(id, resolverService.CommitFromEntry(entries[0]), compareService.ViewOptions{Plain: plain}); err != nil {
				return err
			}

			return viewer.Run()
		},
	}

	cmd.Flags().StringVar(&rev, "rev", "", "Compare this revision instead of the latest commit")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the comparison instead of opening the TUI")

	return cmd
}
