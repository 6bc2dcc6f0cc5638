package identityService

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	gitservice "github.com/redjax/revview/internal/services/gitService"
)

// FileIdentity is a file's repository-relative identity, optionally pinned
// to an explicit revision. Derived once per invocation and immutable after.
type FileIdentity struct {
	// RepoPath is the absolute path of the repository worktree root.
	RepoPath string
	// RelPath is the slash-separated path relative to RepoPath.
	RelPath string
	// Rev is the full pinned revision hash; empty means "latest/working copy".
	Rev string
}

// Pinned reports whether the identity carries an explicit revision.
func (id FileIdentity) Pinned() bool {
	return id.Rev != ""
}

// Resolver maps raw file paths to repository file identities.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveFileIdentity resolves a path (optionally suffixed "path@rev") to its
// repository-relative identity. The revision suffix accepts anything go-git
// can resolve: a hash prefix, branch, tag, or expressions like HEAD~2.
func (r *Resolver) ResolveFileIdentity(path string) (FileIdentity, error) {
	rawPath, rawRev := SplitRevisionSpec(path)

	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return FileIdentity{}, err
	}

	repo, root, err := gitservice.OpenRepository(filepath.Dir(absPath))
	if err != nil {
		return FileIdentity{}, err
	}

	relPath, err := filepath.Rel(root, absPath)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return FileIdentity{}, fmt.Errorf("%s is outside repository %s", absPath, root)
	}

	identity := FileIdentity{
		RepoPath: root,
		RelPath:  filepath.ToSlash(relPath),
	}

	if rawRev != "" {
		hash, err := repo.ResolveRevision(plumbing.Revision(rawRev))
		if err != nil {
			return FileIdentity{}, fmt.Errorf("failed to resolve revision %q: %w", rawRev, err)
		}
		identity.Rev = hash.String()
	}

	return identity, nil
}

// SplitRevisionSpec splits "path@rev" into its path and revision parts.
// A path without an "@" (or with a trailing one) is returned unpinned.
func SplitRevisionSpec(spec string) (path, rev string) {
	idx := strings.LastIndex(spec, "@")
	if idx <= 0 || idx == len(spec)-1 {
		return spec, ""
	}
	return spec[:idx], spec[idx+1:]
}
