package contentService

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestRepo(t *testing.T) (*git.Worktree, string) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	return wt, dir
}

func writeCommit(t *testing.T, wt *git.Worktree, dir, name, content, msg string) plumbing.Hash {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	_, err := wt.Add(name)
	require.NoError(t, err)

	hash, err := wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "Test Dev", Email: "dev@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return hash
}

func TestRevisionContent(t *testing.T) {
	wt, dir := initTestRepo(t)
	c1 := writeCommit(t, wt, dir, "f.txt", "one\n", "first")
	c2 := writeCommit(t, wt, dir, "f.txt", "two\n", "second")

	fetcher := NewFetcher()

	got, err := fetcher.RevisionContent(Request{RepoPath: dir, Path: "f.txt", Rev: c1.String()})
	require.NoError(t, err)
	assert.Equal(t, "one\n", got)

	got, err = fetcher.RevisionContent(Request{RepoPath: dir, Path: "f.txt", Rev: c2.String()})
	require.NoError(t, err)
	assert.Equal(t, "two\n", got)
}

func TestRevisionContentFileMissingAtRevision(t *testing.T) {
	wt, dir := initTestRepo(t)
	c1 := writeCommit(t, wt, dir, "f.txt", "one\n", "first")
	writeCommit(t, wt, dir, "g.txt", "late\n", "second")

	_, err := NewFetcher().RevisionContent(Request{RepoPath: dir, Path: "g.txt", Rev: c1.String()})

	assert.Error(t, err)
}

func TestRevisionContentBadRevision(t *testing.T) {
	wt, dir := initTestRepo(t)
	writeCommit(t, wt, dir, "f.txt", "one\n", "first")

	_, err := NewFetcher().RevisionContent(Request{RepoPath: dir, Path: "f.txt", Rev: "nosuchrev"})

	assert.Error(t, err)
}

func TestRevisionContentPair(t *testing.T) {
	wt, dir := initTestRepo(t)
	c1 := writeCommit(t, wt, dir, "f.txt", "one\n", "first")
	c2 := writeCommit(t, wt, dir, "f.txt", "two\n", "second")

	first, second, err := NewFetcher().RevisionContentPair(
		Request{RepoPath: dir, Path: "f.txt", Rev: c2.String()},
		Request{RepoPath: dir, Path: "f.txt", Rev: c1.String()},
	)

	require.NoError(t, err)
	assert.Equal(t, "two\n", first)
	assert.Equal(t, "one\n", second)
}

func TestRevisionContentPairFailsWhole(t *testing.T) {
	wt, dir := initTestRepo(t)
	c1 := writeCommit(t, wt, dir, "f.txt", "one\n", "first")

	first, second, err := NewFetcher().RevisionContentPair(
		Request{RepoPath: dir, Path: "f.txt", Rev: c1.String()},
		Request{RepoPath: dir, Path: "f.txt", Rev: "nosuchrev"},
	)

	assert.Error(t, err)
	assert.Empty(t, first)
	assert.Empty(t, second)
}
