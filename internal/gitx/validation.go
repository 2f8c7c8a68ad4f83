package gitx

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var branchNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._/-]+$`)

// IsValidBranchName applies a conservative subset of git's ref-name rules.
func IsValidBranchName(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "-") || strings.HasPrefix(name, "/") {
		return false
	}
	if strings.HasSuffix(name, "/") || strings.HasSuffix(name, ".") || strings.HasSuffix(name, ".lock") {
		return false
	}
	if strings.Contains(name, "..") || strings.Contains(name, "//") {
		return false
	}
	return branchNameRegex.MatchString(name)
}

// ValidatePrefix checks a fleet branch prefix ("agent" -> agent/task-1).
func ValidatePrefix(prefix string) error {
	if !IsValidBranchName(prefix) {
		return fmt.Errorf("%w: invalid branch prefix %q (letters, digits, '.', '_', '-', '/'; cannot start with '.', '-' or '/')", ErrInvalidArgument, prefix)
	}
	return nil
}

// ValidateWorkdir checks the worktree container directory. It must stay
// inside the repository: reset removes everything registered beneath it.
func ValidateWorkdir(workdir string) error {
	if strings.TrimSpace(workdir) == "" {
		return fmt.Errorf("%w: --workdir cannot be empty", ErrInvalidArgument)
	}
	if filepath.IsAbs(workdir) {
		return fmt.Errorf("%w: --workdir must be relative to the repository root: %s", ErrInvalidArgument, workdir)
	}
	for _, segment := range strings.FieldsFunc(workdir, func(r rune) bool { return r == '/' || r == '\\' }) {
		if segment == ".." {
			return fmt.Errorf("%w: --workdir must not contain '..': %s", ErrInvalidArgument, workdir)
		}
	}
	if filepath.Clean(workdir) == "." {
		return fmt.Errorf("%w: --workdir cannot be the repository root", ErrInvalidArgument)
	}
	return nil
}
