package gitservice

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// OpenRepository opens the repository containing dir, walking up parent
// directories until a .git is found. Returns the repository and the absolute
// path of its worktree root.
func OpenRepository(dir string) (*git.Repository, string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrNotAGitRepo, dir)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, "", fmt.Errorf("failed to access worktree: %w", err)
	}

	root, err := filepath.Abs(worktree.Filesystem.Root())
	if err != nil {
		return nil, "", err
	}

	return repo, root, nil
}

// IsGitRepo reports whether dir is inside a git repository.
func IsGitRepo(dir string) bool {
	_, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

// ShortHash abbreviates a full revision hash for display.
func ShortHash(hash string) string {
	if len(hash) <= 8 {
		return hash
	}
	return hash[:8]
}
