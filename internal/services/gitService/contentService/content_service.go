package contentService

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"golang.org/x/sync/errgroup"

	gitservice "github.com/redjax/revview/internal/services/gitService"
)

// Request identifies one file revision to fetch.
type Request struct {
	RepoPath string
	Path     string
	Rev      string
}

// Fetcher reads committed file content out of a repository's object store.
type Fetcher struct{}

func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// RevisionContent returns the content of req.Path at req.Rev.
func (f *Fetcher) RevisionContent(req Request) (string, error) {
	repo, _, err := gitservice.OpenRepository(req.RepoPath)
	if err != nil {
		return "", err
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(req.Rev))
	if err != nil {
		return "", fmt.Errorf("failed to resolve revision %q: %w", req.Rev, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return "", fmt.Errorf("failed to read commit %s: %w", req.Rev, err)
	}

	file, err := commit.File(req.Path)
	if err != nil {
		return "", fmt.Errorf("%s not found at revision %s: %w", req.Path, req.Rev, err)
	}

	content, err := file.Contents()
	if err != nil {
		return "", fmt.Errorf("failed to read %s at %s: %w", req.Path, req.Rev, err)
	}

	return content, nil
}

// RevisionContentPair fetches two revisions concurrently. Both must succeed;
// the first failure wins and no partial result is returned.
func (f *Fetcher) RevisionContentPair(first, second Request) (string, string, error) {
	var firstContent, secondContent string

	var g errgroup.Group
	g.Go(func() error {
		content, err := f.RevisionContent(first)
		if err != nil {
			return err
		}
		firstContent = content
		return nil
	})
	g.Go(func() error {
		content, err := f.RevisionContent(second)
		if err != nil {
			return err
		}
		secondContent = content
		return nil
	})

	if err := g.Wait(); err != nil {
		return "", "", err
	}

	return firstContent, secondContent, nil
}
