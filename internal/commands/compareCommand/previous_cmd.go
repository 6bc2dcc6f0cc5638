package comparecommand

import (
	"github.com/spf13/cobra"

	"github.com/redjax/revview/internal/config"
	"github.com/redjax/revview/internal/services/gitService/compareService"
	"github.com/redjax/revview/internal/services/gitService/historyService"
	"github.com/redjax/revview/internal/services/gitService/recentService"
	"github.com/redjax/revview/internal/services/gitService/resolverService"
	"github.com/redjax/revview/internal/services/gitService/workingService"
	"github.com/redjax/revview/internal/utils/spinner"
)

// NewPreviousCommand creates the 'previous' command: compare a file's
// committed revision against the one right before it.
func NewPreviousCommand() *cobra.Command {
	var (
		rev       string
		line      int
		rangeSpec string
		plain     bool
	)

	cmd := &cobra.Command{
		Use:   "previous [file...]",
		Short: "Compare a file with its previous revision",
		Long: `Open a side-by-side comparison of a file's committed revision and the
revision right before it. With uncommitted local edits, compares the latest
commit against the working tree instead. Pin a revision with --rev or a
"file@rev" argument.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter := resolverService.NewStderrReporter(config.K.Bool("debug"))
			viewer := compareService.NewViewer()

			store := openRecentStore(reporter)
			var recents resolverService.Recorder
			if store != nil {
				recents = store
				defer store.Close()
			}

			working := workingService.NewService(viewer, recents, reporter)
			resolver := resolverService.NewResolver(viewer, working, recents, reporter)

			targets := args
			if rev != "" && len(targets) == 1 {
				targets = []string{targets[0] + "@" + rev}
			}

			diffArgs := resolverService.DiffArgs{
				Line: line,
				View: compareService.ViewOptions{Plain: plain},
			}
			if rangeSpec != "" {
				lineRange, err := historyService.ParseLineRange(rangeSpec)
				if err != nil {
					return err
				}
				diffArgs.Range = lineRange
			}

			var stop func()
			if !plain {
				stop = spinner.StartSpinner("Resolving revisions ")
			}
			err := resolver.Handle(resolverService.ContextFromArgs(targets), diffArgs)
			if stop != nil {
				stop()
			}
			if err != nil {
				return err
			}

			return viewer.Run()
		},
	}

	cmd.Flags().StringVar(&rev, "rev", "", "Pin the comparison to this revision (hash, branch, tag, HEAD~n)")
	cmd.Flags().IntVar(&line, "line", 0, "Reveal this 1-based line in the current revision pane")
	cmd.Flags().StringVar(&rangeSpec, "range", "", "Only consider commits touching these lines (start:end)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the comparison instead of opening the TUI")

	return cmd
}

// openRecentStore opens the comparison log, or returns nil when it is
// unavailable; comparisons still work without it.
func openRecentStore(reporter resolverService.Reporter) *recentService.Store {
	dbPath := config.K.String("recent.db")
	if dbPath == "" {
		defaultPath, err := recentService.DefaultPath()
		if err != nil {
			reporter.Debugf("comparison log unavailable: %v", err)
			return nil
		}
		dbPath = defaultPath
	}

	store, err := recentService.Open(dbPath)
	if err != nil {
		reporter.Debugf("comparison log unavailable: %v", err)
		return nil
	}
	return store
}
