package gitx

import (
	"fmt"
	"os"
	"strings"

	"github.com/mrbonezy/agentctl/internal/procexec"
)

// Locate returns the top-level directory of the repository enclosing dir
// ("" means the current directory).
func Locate(r procexec.Runner, dir string) (string, error) {
	res, err := r.Run(dir, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	root := strings.TrimSpace(res.Stdout)
	if !res.OK() || root == "" {
		return "", ErrNotARepository
	}
	return root, nil
}

// LocateAndEnter locates the repository root and makes it the process
// working directory, so repo-relative paths resolve the same way no matter
// where the command was started.
func LocateAndEnter(r procexec.Runner, chdir func(string) error) (string, error) {
	root, err := Locate(r, "")
	if err != nil {
		return "", err
	}
	if chdir == nil {
		chdir = os.Chdir
	}
	if err := chdir(root); err != nil {
		return "", fmt.Errorf("enter repository root %s: %w", root, err)
	}
	return root, nil
}

// CurrentBranch returns the branch checked out in dir, or ok=false for a
// detached HEAD.
func CurrentBranch(r procexec.Runner, dir string) (string, bool, error) {
	res, err := r.Run(dir, "git", "symbolic-ref", "--short", "-q", "HEAD")
	if err != nil {
		return "", false, err
	}
	branch := strings.TrimSpace(res.Stdout)
	if !res.OK() || branch == "" {
		return "", false, nil
	}
	return branch, true, nil
}
