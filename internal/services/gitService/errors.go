package gitservice

import (
	"errors"
)

// ErrNotAGitRepo is returned when a path is not inside a git repository
var ErrNotAGitRepo = errors.New("path is not inside a git repository")
