package historyService

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	gitservice "github.com/redjax/revview/internal/services/gitService"
)

// DefaultMaxCount bounds history walks when the caller gives no limit.
const DefaultMaxCount = 50

// Entry is one commit in a file's linear history, newest first. PreviousHash
// links to the next older entry that touched the same file; it is empty for
// the first commit that introduced the file.
type Entry struct {
	RepoPath          string
	Path              string
	Hash              string
	ShortHash         string
	PreviousHash      string
	PreviousShortHash string
	PreviousPath      string
	Author            string
	Email             string
	Date              time.Time
	Message           string
}

// LineRange is an inclusive 1-based span of lines in a file.
type LineRange struct {
	Start int
	End   int
}

// ParseLineRange parses "start:end" (or a single "line") into a LineRange.
func ParseLineRange(spec string) (*LineRange, error) {
	var start, end int

	if strings.Contains(spec, ":") {
		if _, err := fmt.Sscanf(spec, "%d:%d", &start, &end); err != nil {
			return nil, fmt.Errorf("invalid range %q, expected start:end", spec)
		}
	} else {
		if _, err := fmt.Sscanf(spec, "%d", &start); err != nil {
			return nil, fmt.Errorf("invalid range %q, expected start:end", spec)
		}
		end = start
	}

	if start < 1 || end < start {
		return nil, fmt.Errorf("invalid range %q, lines are 1-based and end >= start", spec)
	}

	return &LineRange{Start: start, End: end}, nil
}

// Options configures a file history lookup.
type Options struct {
	// MaxCount caps the number of returned entries. DefaultMaxCount when 0.
	MaxCount int
	// StartRev starts the walk at this revision instead of HEAD.
	StartRev string
	// Range keeps only commits whose changes touch these lines.
	Range *LineRange
	// SkipMerges excludes commits with more than one parent.
	SkipMerges bool
}

// Provider walks a repository's log for a single file.
type Provider struct{}

func NewProvider() *Provider {
	return &Provider{}
}

// FileHistory returns up to opts.MaxCount history entries for relPath,
// newest first. An empty result without error means the file has no commits.
func (p *Provider) FileHistory(repoPath, relPath string, opts Options) ([]Entry, error) {
	repo, _, err := gitservice.OpenRepository(repoPath)
	if err != nil {
		return nil, err
	}

	start, err := resolveStart(repo, opts.StartRev)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Log(&git.LogOptions{From: start, FileName: &relPath})
	if err != nil {
		return nil, fmt.Errorf("failed to read log for %s: %w", relPath, err)
	}

	limit := opts.MaxCount
	if limit <= 0 {
		limit = DefaultMaxCount
	}

	// Walk one commit past the limit so every returned entry gets its
	// previous-revision link.
	var matched []*object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if opts.SkipMerges && c.NumParents() > 1 {
			return nil
		}
		if opts.Range != nil && !touchesRange(c, relPath, opts.Range) {
			return nil
		}
		matched = append(matched, c)
		if len(matched) > limit {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk history of %s: %w", relPath, err)
	}

	count := len(matched)
	if count > limit {
		count = limit
	}

	entries := make([]Entry, 0, count)
	for i := 0; i < count; i++ {
		c := matched[i]
		entry := Entry{
			RepoPath:     repoPath,
			Path:         relPath,
			Hash:         c.Hash.String(),
			ShortHash:    gitservice.ShortHash(c.Hash.String()),
			PreviousPath: relPath,
			Author:       c.Author.Name,
			Email:        c.Author.Email,
			Date:         c.Author.When,
			Message:      strings.Split(c.Message, "\n")[0],
		}
		if i+1 < len(matched) {
			entry.PreviousHash = matched[i+1].Hash.String()
			entry.PreviousShortHash = gitservice.ShortHash(entry.PreviousHash)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func resolveStart(repo *git.Repository, rev string) (plumbing.Hash, error) {
	if rev == "" {
		head, err := repo.Head()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("failed to get HEAD: %w", err)
		}
		return head.Hash(), nil
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve revision %q: %w", rev, err)
	}
	return *hash, nil
}

// touchesRange reports whether the commit's changes to relPath overlap rng.
// Added chunks are checked in new-file coordinates, deleted chunks in
// old-file coordinates. The commit that introduced the file touches
// every line by definition.
func touchesRange(c *object.Commit, relPath string, rng *LineRange) bool {
	parent, err := c.Parent(0)
	if err != nil {
		return true
	}

	patch, err := parent.Patch(c)
	if err != nil {
		// Keep the commit rather than silently narrowing the history.
		return true
	}

	for _, fp := range patch.FilePatches() {
		from, to := fp.Files()
		name := ""
		if to != nil {
			name = to.Path()
		} else if from != nil {
			name = from.Path()
		}
		if name != relPath {
			continue
		}

		oldLine, newLine := 1, 1
		for _, chunk := range fp.Chunks() {
			n := countLines(chunk.Content())
			switch chunk.Type() {
			case diff.Equal:
				oldLine += n
				newLine += n
			case diff.Add:
				if spansOverlap(newLine, newLine+n-1, rng.Start, rng.End) {
					return true
				}
				newLine += n
			case diff.Delete:
				if spansOverlap(oldLine, oldLine+n-1, rng.Start, rng.End) {
					return true
				}
				oldLine += n
			}
		}
	}

	return false
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

func spansOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart <= bEnd && bStart <= aEnd
}
