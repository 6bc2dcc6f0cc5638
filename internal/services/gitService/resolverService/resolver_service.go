package resolverService

import (
	"path"

	"github.com/google/uuid"

	"github.com/redjax/revview/internal/services/gitService/compareService"
	"github.com/redjax/revview/internal/services/gitService/contentService"
	"github.com/redjax/revview/internal/services/gitService/historyService"
	"github.com/redjax/revview/internal/services/gitService/identityService"
	"github.com/redjax/revview/internal/services/gitService/statusService"
)

// IdentityResolver maps a raw path to its repository file identity.
type IdentityResolver interface {
	ResolveFileIdentity(path string) (identityService.FileIdentity, error)
}

// HistoryProvider returns a file's most recent history entries.
type HistoryProvider interface {
	FileHistory(repoPath, relPath string, opts historyService.Options) ([]historyService.Entry, error)
}

// ContentFetcher fetches two file revisions concurrently, fail-fast.
type ContentFetcher interface {
	RevisionContentPair(first, second contentService.Request) (string, string, error)
}

// StatusChecker reports uncommitted local modifications.
type StatusChecker interface {
	IsModified(repoPath, relPath string) (bool, error)
}

// Presenter opens a two-pane diff view and moves the caret, best effort.
type Presenter interface {
	ShowDiff(previous, current compareService.Revision, title string, opts compareService.ViewOptions) error
	RevealLine(line int) error
}

// WorkingDiff is the comparison against the working copy; the resolver
// delegates to it when the target file has uncommitted edits.
type WorkingDiff interface {
	ShowWorkingDiff(id identityService.FileIdentity, commit *CommitRef, opts compareService.ViewOptions) error
}

// Recorder keeps track of presented comparisons. Optional.
type Recorder interface {
	Record(repoPath, filePath, fromRev, toRev string) error
}

// Resolver turns an invocation context into a previous-revision comparison:
// it resolves the target file, finds the two revisions to compare, fetches
// both contents, and hands them to the presenter. Collaborator failures are
// surfaced through the Reporter once and never propagate further; nothing
// is retried.
type Resolver struct {
	Identities  IdentityResolver
	History     HistoryProvider
	Contents    ContentFetcher
	Status      StatusChecker
	Presenter   Presenter
	WorkingDiff WorkingDiff
	Recents     Recorder
	Reporter    Reporter
}

// NewResolver wires a resolver over the real git services. Recents may be
// nil when no comparison log is wanted.
func NewResolver(presenter Presenter, working WorkingDiff, recents Recorder, reporter Reporter) *Resolver {
	if reporter == nil {
		reporter = NewStderrReporter(false)
	}
	return &Resolver{
		Identities:  identityService.NewResolver(),
		History:     historyService.NewProvider(),
		Contents:    contentService.NewFetcher(),
		Status:      statusService.NewChecker(),
		Presenter:   presenter,
		WorkingDiff: working,
		Recents:     recents,
		Reporter:    reporter,
	}
}

// Handle dispatches on the invocation context shape. Group selections have
// no single file to diff and are a no-op.
func (r *Resolver) Handle(ctx InvocationContext, args DiffArgs) error {
	switch ctx.Kind {
	case ContextEditor:
		return r.Resolve(ctx.Editor, ctx.Path, args)
	case ContextNode:
		return r.Resolve(nil, ctx.Path, args)
	case ContextSelection:
		if len(ctx.Paths) == 0 {
			return nil
		}
		return r.Resolve(nil, ctx.Paths[0], args)
	case ContextGroup:
		return nil
	default:
		return r.Resolve(ctx.Editor, "", args)
	}
}

// Resolve compares filePath's committed revision against the one before it.
//
// The commit reference is looked up fresh unless the caller supplied a
// file-kind commit and no line range; a range always forces a scoped lookup.
// When the identity is unpinned and the working copy has local edits, the
// comparison is handed to WorkingDiff instead.
func (r *Resolver) Resolve(editor *Editor, filePath string, args DiffArgs) error {
	op := shortID()

	if filePath == "" && editor != nil {
		filePath = editor.Path
	}
	if filePath == "" {
		r.Reporter.Debugf("[%s] no file to compare, nothing to do", op)
		return nil
	}

	line := args.Line
	if line == 0 && editor != nil {
		line = editor.CaretLine
	}

	// args is a by-value copy; assignments below never touch the caller's
	// DiffArgs, which may be reused across invocations.
	commit := args.Commit
	if commit == nil || commit.Kind != KindFile || args.Range != nil {
		id, err := r.Identities.ResolveFileIdentity(filePath)
		if err != nil {
			r.Reporter.Debugf("[%s] identity resolution failed for %s: %v", op, filePath, err)
			r.Reporter.Errorf("unable to open compare for %s; run with --debug for detail", filePath)
			return nil
		}

		entries, err := r.History.FileHistory(id.RepoPath, id.RelPath, historyService.Options{
			MaxCount:   2,
			StartRev:   id.Rev,
			Range:      args.Range,
			SkipMerges: true,
		})
		if err != nil {
			r.Reporter.Debugf("[%s] history lookup failed (repo=%s file=%s): %v", op, id.RepoPath, id.RelPath, err)
			r.Reporter.Errorf("unable to open compare for %s; run with --debug for detail", filePath)
			return nil
		}
		if len(entries) == 0 {
			r.Reporter.Warnf("%s is not under source control", filePath)
			return nil
		}

		// Prefer the entry matching a pinned revision; when the pin is
		// missing from the result set, fall back to the most recent entry.
		pick := entries[0]
		if id.Pinned() {
			for i := range entries {
				if entries[i].Hash == id.Rev {
					pick = entries[i]
					break
				}
			}
		}

		if !id.Pinned() {
			modified, statusErr := r.Status.IsModified(id.RepoPath, id.RelPath)
			if statusErr != nil {
				r.Reporter.Debugf("[%s] worktree status check failed (repo=%s file=%s): %v", op, id.RepoPath, id.RelPath, statusErr)
			} else if modified {
				// Uncommitted edits trump the previous-revision compare.
				return r.WorkingDiff.ShowWorkingDiff(id, CommitFromEntry(pick), args.View)
			}
		}

		commit = CommitFromEntry(pick)
		args.Commit = commit
	}

	if commit.PreviousRev == "" {
		r.Reporter.Warnf("commit %s has no previous commit for %s", commit.ShortRev, commit.Path)
		return nil
	}

	currContent, prevContent, err := r.Contents.RevisionContentPair(
		contentService.Request{RepoPath: commit.RepoPath, Path: commit.Path, Rev: commit.Rev},
		contentService.Request{RepoPath: commit.RepoPath, Path: commit.PreviousPath, Rev: commit.PreviousRev},
	)
	if err != nil {
		r.Reporter.Debugf("[%s] getVersionedFile failed (repo=%s file=%s): %v", op, commit.RepoPath, commit.Path, err)
		r.Reporter.Errorf("unable to open compare for %s; run with --debug for detail", commit.Path)
		return nil
	}

	previous := compareService.Revision{
		Name:    path.Base(commit.PreviousPath),
		Rev:     commit.PreviousShortRev,
		Content: prevContent,
	}
	current := compareService.Revision{
		Name:    path.Base(commit.Path),
		Rev:     commit.ShortRev,
		Content: currContent,
	}

	if err := r.Presenter.ShowDiff(previous, current, compareService.Title(previous, current), args.View); err != nil {
		r.Reporter.Debugf("[%s] presenter failed (repo=%s file=%s): %v", op, commit.RepoPath, commit.Path, err)
		r.Reporter.Errorf("unable to open compare for %s; run with --debug for detail", commit.Path)
		return nil
	}

	if r.Recents != nil {
		if recErr := r.Recents.Record(commit.RepoPath, commit.Path, commit.PreviousRev, commit.Rev); recErr != nil {
			r.Reporter.Debugf("[%s] failed to record comparison: %v", op, recErr)
		}
	}

	if line > 0 {
		// Best effort, right pane only; the presenter cannot focus the
		// previous/left pane.
		if err := r.Presenter.RevealLine(line); err != nil {
			r.Reporter.Debugf("[%s] line reveal failed: %v", op, err)
		}
	}

	return nil
}

// shortID returns a correlation id for one invocation's debug lines.
func shortID() string {
	return uuid.NewString()[:8]
}
