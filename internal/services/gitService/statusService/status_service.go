package statusService

import (
	"fmt"

	"github.com/go-git/go-git/v5"

	gitservice "github.com/redjax/revview/internal/services/gitService"
)

// FileState summarizes a single file's worktree status.
type FileState struct {
	Path     string
	Staged   bool
	Modified bool
	Deleted  bool
}

// Checker inspects the state of files in a repository worktree.
type Checker struct{}

func NewChecker() *Checker {
	return &Checker{}
}

// FileStatus returns the worktree state of relPath. A zero-value FileState
// means the file is clean.
func (c *Checker) FileStatus(repoPath, relPath string) (FileState, error) {
	repo, _, err := gitservice.OpenRepository(repoPath)
	if err != nil {
		return FileState{}, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return FileState{}, fmt.Errorf("failed to access worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return FileState{}, fmt.Errorf("failed to read worktree status: %w", err)
	}

	fileStatus := status.File(relPath)
	return FileState{
		Path:     relPath,
		Staged:   fileStatus.Staging != git.Unmodified && fileStatus.Staging != git.Untracked,
		Modified: fileStatus.Worktree == git.Modified,
		Deleted:  fileStatus.Worktree == git.Deleted,
	}, nil
}

// IsModified reports whether relPath has uncommitted changes, staged or not.
func (c *Checker) IsModified(repoPath, relPath string) (bool, error) {
	state, err := c.FileStatus(repoPath, relPath)
	if err != nil {
		return false, err
	}
	return state.Staged || state.Modified || state.Deleted, nil
}
