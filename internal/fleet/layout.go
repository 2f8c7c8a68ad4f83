// Package fleet creates, tears down and rebuilds the set of numbered agent
// worktrees ("task-1".."task-n") and their "<prefix>/task-<i>" branches.
package fleet

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Layout is the naming scheme shared by init, reset and rm.
type Layout struct {
	// Workdir is the container directory, relative to the repository root.
	Workdir string
	Prefix  string
}

func (l Layout) Name(i int) string {
	return fmt.Sprintf("task-%d", i)
}

// RelPath is the worktree location for index i, relative to the root.
func (l Layout) RelPath(i int) string {
	return filepath.Join(l.Workdir, l.Name(i))
}

func (l Layout) Branch(i int) string {
	return l.Prefix + "/" + l.Name(i)
}

// BranchPattern matches every fleet branch under the prefix.
func (l Layout) BranchPattern() string {
	return l.Prefix + "/task-*"
}

// Resolve turns an rm argument into a repo-relative path. Anything with a
// slash or a leading dot is already a path; a bare name lives in Workdir.
func (l Layout) Resolve(nameOrPath string) string {
	if strings.Contains(nameOrPath, "/") || strings.HasPrefix(nameOrPath, ".") {
		return nameOrPath
	}
	return filepath.Join(l.Workdir, nameOrPath)
}

// Contains reports whether path lies inside dir (or is dir). Both are
// cleaned; no symlinks are resolved.
func Contains(dir string, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
