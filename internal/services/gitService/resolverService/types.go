package resolverService

import (
	"github.com/redjax/revview/internal/services/gitService/compareService"
	"github.com/redjax/revview/internal/services/gitService/historyService"
)

// CommitKind distinguishes file-level commit references from anything else
// (branch heads, stash entries, ...). Only file-level references carry
// previous-revision links that can be trusted.
type CommitKind int

const (
	KindFile CommitKind = iota
	KindOther
)

// CommitRef identifies a file at a commit, with a link to the previous
// revision touching the same file. PreviousRev is empty when this is the
// first commit that introduced the file.
type CommitRef struct {
	RepoPath         string
	Path             string
	Rev              string
	ShortRev         string
	PreviousPath     string
	PreviousRev      string
	PreviousShortRev string
	Kind             CommitKind
}

// CommitFromEntry converts a history entry into a file-kind commit reference.
func CommitFromEntry(e historyService.Entry) *CommitRef {
	return &CommitRef{
		RepoPath:         e.RepoPath,
		Path:             e.Path,
		Rev:              e.Hash,
		ShortRev:         e.ShortHash,
		PreviousPath:     e.PreviousPath,
		PreviousRev:      e.PreviousHash,
		PreviousShortRev: e.PreviousShortHash,
		Kind:             KindFile,
	}
}

// DiffArgs are the caller-supplied knobs for one comparison. Passed by
// value everywhere so the caller's copy is never mutated.
type DiffArgs struct {
	// Commit skips history resolution when already known and of file kind.
	Commit *CommitRef
	// Line is the 1-based caret line to reveal; 0 leaves the caret alone.
	Line int
	// Range restricts the history lookup to commits touching these lines.
	// Supplying a range always forces a fresh lookup.
	Range *historyService.LineRange
	// View is passed through to the presenter untouched.
	View compareService.ViewOptions
}
