package gitservice

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRepositoryDetectsRootFromSubdirectory(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	_, err = git.PlainInit(dir, false)
	require.NoError(t, err)

	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	_, root, err := OpenRepository(sub)

	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestOpenRepositoryOutsideRepo(t *testing.T) {
	_, _, err := OpenRepository(t.TempDir())

	assert.ErrorIs(t, err, ErrNotAGitRepo)
}

func TestIsGitRepo(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, IsGitRepo(dir))

	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	assert.True(t, IsGitRepo(dir))
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "c1c1c1c1", ShortHash("c1c1c1c1c1c1c1c1c1c1c1c1c1c1c1c1c1c1c1c1"))
	assert.Equal(t, "abc", ShortHash("abc"))
	assert.Equal(t, "", ShortHash(""))
}
