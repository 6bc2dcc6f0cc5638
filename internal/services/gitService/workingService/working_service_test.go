package workingService

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redjax/revview/internal/services/gitService/compareService"
	"github.com/redjax/revview/internal/services/gitService/historyService"
	"github.com/redjax/revview/internal/services/gitService/identityService"
	"github.com/redjax/revview/internal/services/gitService/resolverService"
)

type capturePresenter struct {
	titles   []string
	previous []compareService.Revision
	current  []compareService.Revision
}

func (p *capturePresenter) ShowDiff(previous, current compareService.Revision, title string, opts compareService.ViewOptions) error {
	p.titles = append(p.titles, title)
	p.previous = append(p.previous, previous)
	p.current = append(p.current, current)
	return nil
}

func (p *capturePresenter) RevealLine(line int) error { return nil }

type captureReporter struct {
	warns  []string
	errors []string
	debugs []string
}

func (c *captureReporter) Warnf(format string, args ...any) {
	c.warns = append(c.warns, fmt.Sprintf(format, args...))
}

func (c *captureReporter) Errorf(format string, args ...any) {
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
}

func (c *captureReporter) Debugf(format string, args ...any) {
	c.debugs = append(c.debugs, fmt.Sprintf(format, args...))
}

type captureRecorder struct {
	records [][]string
}

func (r *captureRecorder) Record(repoPath, filePath, fromRev, toRev string) error {
	r.records = append(r.records, []string{repoPath, filePath, fromRev, toRev})
	return nil
}

func initRepoWithCommit(t *testing.T, content string) (string, plumbing.Hash) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte(content), 0o644))
	_, err = wt.Add("f.txt")
	require.NoError(t, err)

	hash, err := wt.Commit("first", &git.CommitOptions{
		Author: &object.Signature{Name: "Test Dev", Email: "dev@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir, hash
}

func commitRef(dir string, hash plumbing.Hash) *resolverService.CommitRef {
	return resolverService.CommitFromEntry(historyService.Entry{
		RepoPath:  dir,
		Path:      "f.txt",
		Hash:      hash.String(),
		ShortHash: hash.String()[:8],
	})
}

func TestShowWorkingDiffPresentsCommittedVersusDisk(t *testing.T) {
	dir, hash := initRepoWithCommit(t, "committed\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("edited\n"), 0o644))

	presenter := &capturePresenter{}
	recorder := &captureRecorder{}
	reporter := &captureReporter{}
	svc := NewService(presenter, recorder, reporter)

	id := identityService.FileIdentity{RepoPath: dir, RelPath: "f.txt"}
	err := svc.ShowWorkingDiff(id, commitRef(dir, hash), compareService.ViewOptions{})

	require.NoError(t, err)
	require.Len(t, presenter.titles, 1)
	assert.Equal(t, fmt.Sprintf("f.txt (%s) ↔ f.txt (working tree)", hash.String()[:8]), presenter.titles[0])
	assert.Equal(t, "committed\n", presenter.previous[0].Content)
	assert.Equal(t, "edited\n", presenter.current[0].Content)
	assert.Equal(t, WorkingLabel, presenter.current[0].Rev)

	require.Len(t, recorder.records, 1)
	assert.Equal(t, []string{dir, "f.txt", hash.String(), WorkingLabel}, recorder.records[0])
	assert.Empty(t, reporter.errors)
}

func TestShowWorkingDiffMissingWorkingCopy(t *testing.T) {
	dir, hash := initRepoWithCommit(t, "committed\n")
	require.NoError(t, os.Remove(filepath.Join(dir, "f.txt")))

	presenter := &capturePresenter{}
	reporter := &captureReporter{}
	svc := NewService(presenter, nil, reporter)

	id := identityService.FileIdentity{RepoPath: dir, RelPath: "f.txt"}
	err := svc.ShowWorkingDiff(id, commitRef(dir, hash), compareService.ViewOptions{})

	require.NoError(t, err)
	assert.Empty(t, presenter.titles)
	require.Len(t, reporter.errors, 1)
	assert.Contains(t, reporter.errors[0], "unable to open compare")
}

func TestShowWorkingDiffBadRevision(t *testing.T) {
	dir, _ := initRepoWithCommit(t, "committed\n")

	presenter := &capturePresenter{}
	reporter := &captureReporter{}
	svc := NewService(presenter, nil, reporter)

	ref := &resolverService.CommitRef{RepoPath: dir, Path: "f.txt", Rev: "nosuchrev", ShortRev: "nosuchre"}
	id := identityService.FileIdentity{RepoPath: dir, RelPath: "f.txt"}
	err := svc.ShowWorkingDiff(id, ref, compareService.ViewOptions{})

	require.NoError(t, err)
	assert.Empty(t, presenter.titles)
	require.Len(t, reporter.errors, 1)

	var sawFetchDebug bool
	for _, d := range reporter.debugs {
		if strings.Contains(d, "getVersionedFile") {
			sawFetchDebug = true
		}
	}
	assert.True(t, sawFetchDebug)
}
