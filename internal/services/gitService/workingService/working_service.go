package workingService

import (
	"os"
	"path"
	"path/filepath"

	"github.com/redjax/revview/internal/services/gitService/compareService"
	"github.com/redjax/revview/internal/services/gitService/contentService"
	"github.com/redjax/revview/internal/services/gitService/identityService"
	"github.com/redjax/revview/internal/services/gitService/resolverService"
)

// WorkingLabel stands in for a revision id on the working-copy side of a
// comparison title.
const WorkingLabel = "working tree"

// Service compares a committed file revision against the on-disk working
// copy. The previous-revision resolver delegates here when it finds
// uncommitted local edits.
type Service struct {
	Contents  *contentService.Fetcher
	Presenter resolverService.Presenter
	Recents   resolverService.Recorder
	Reporter  resolverService.Reporter
}

func NewService(presenter resolverService.Presenter, recents resolverService.Recorder, reporter resolverService.Reporter) *Service {
	if reporter == nil {
		reporter = resolverService.NewStderrReporter(false)
	}
	return &Service{
		Contents:  contentService.NewFetcher(),
		Presenter: presenter,
		Recents:   recents,
		Reporter:  reporter,
	}
}

// ShowWorkingDiff presents commit's revision of the file on the left and the
// working copy on the right. Failures are reported once and not propagated.
func (s *Service) ShowWorkingDiff(id identityService.FileIdentity, commit *resolverService.CommitRef, opts compareService.ViewOptions) error {
	revContent, err := s.Contents.RevisionContent(contentService.Request{
		RepoPath: commit.RepoPath,
		Path:     commit.Path,
		Rev:      commit.Rev,
	})
	if err != nil {
		s.Reporter.Debugf("getVersionedFile failed (repo=%s file=%s): %v", commit.RepoPath, commit.Path, err)
		s.Reporter.Errorf("unable to open compare for %s; run with --debug for detail", commit.Path)
		return nil
	}

	diskPath := filepath.Join(id.RepoPath, filepath.FromSlash(id.RelPath))
	diskContent, err := os.ReadFile(diskPath)
	if err != nil {
		s.Reporter.Debugf("failed to read working copy %s: %v", diskPath, err)
		s.Reporter.Errorf("unable to open compare for %s; run with --debug for detail", id.RelPath)
		return nil
	}

	previous := compareService.Revision{
		Name:    path.Base(commit.Path),
		Rev:     commit.ShortRev,
		Content: revContent,
	}
	current := compareService.Revision{
		Name:    path.Base(id.RelPath),
		Rev:     WorkingLabel,
		Content: string(diskContent),
	}

	if err := s.Presenter.ShowDiff(previous, current, compareService.Title(previous, current), opts); err != nil {
		s.Reporter.Debugf("presenter failed (repo=%s file=%s): %v", commit.RepoPath, commit.Path, err)
		s.Reporter.Errorf("unable to open compare for %s; run with --debug for detail", commit.Path)
		return nil
	}

	if s.Recents != nil {
		if recErr := s.Recents.Record(commit.RepoPath, commit.Path, commit.Rev, WorkingLabel); recErr != nil {
			s.Reporter.Debugf("failed to record comparison: %v", recErr)
		}
	}

	return nil
}
