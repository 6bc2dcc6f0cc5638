package statusService

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initCommittedFile(t *testing.T) (*git.Worktree, string) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("one\n"), 0o644))
	_, err = wt.Add("f.txt")
	require.NoError(t, err)
	_, err = wt.Commit("first", &git.CommitOptions{
		Author: &object.Signature{Name: "Test Dev", Email: "dev@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return wt, dir
}

func TestFileStatusClean(t *testing.T) {
	_, dir := initCommittedFile(t)

	state, err := NewChecker().FileStatus(dir, "f.txt")

	require.NoError(t, err)
	assert.False(t, state.Staged)
	assert.False(t, state.Modified)
	assert.False(t, state.Deleted)

	modified, err := NewChecker().IsModified(dir, "f.txt")
	require.NoError(t, err)
	assert.False(t, modified)
}

func TestFileStatusModifiedOnDisk(t *testing.T) {
	_, dir := initCommittedFile(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("changed\n"), 0o644))

	state, err := NewChecker().FileStatus(dir, "f.txt")

	require.NoError(t, err)
	assert.True(t, state.Modified)

	modified, err := NewChecker().IsModified(dir, "f.txt")
	require.NoError(t, err)
	assert.True(t, modified)
}

func TestFileStatusStagedChange(t *testing.T) {
	wt, dir := initCommittedFile(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("staged\n"), 0o644))
	_, err := wt.Add("f.txt")
	require.NoError(t, err)

	state, err := NewChecker().FileStatus(dir, "f.txt")

	require.NoError(t, err)
	assert.True(t, state.Staged)

	modified, err := NewChecker().IsModified(dir, "f.txt")
	require.NoError(t, err)
	assert.True(t, modified)
}

func TestFileStatusDeletedOnDisk(t *testing.T) {
	_, dir := initCommittedFile(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "f.txt")))

	state, err := NewChecker().FileStatus(dir, "f.txt")

	require.NoError(t, err)
	assert.True(t, state.Deleted)

	modified, err := NewChecker().IsModified(dir, "f.txt")
	require.NoError(t, err)
	assert.True(t, modified)
}

func TestFileStatusOutsideRepositoryFails(t *testing.T) {
	_, err := NewChecker().FileStatus(t.TempDir(), "f.txt")

	assert.Error(t, err)
}
