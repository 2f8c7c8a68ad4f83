// Package testutil holds helpers shared by tests that drive a real git binary.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// SkipIfNoGit skips the test if git is not available.
func SkipIfNoGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH, skipping")
	}
}

// ResolvePath resolves symlinks (macOS /var -> /private/var) so paths match
// what git reports. Returns the original path if resolution fails.
func ResolvePath(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}

// IsolateGitEnv points HOME and XDG_CONFIG_HOME at an empty directory so the
// developer's global git config (signing, hooks, default branch) cannot leak in.
func IsolateGitEnv(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_TERMINAL_PROMPT", "0")
}

// Git runs git in dir and fails the test on error. Returns trimmed stdout+stderr.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t *testing.T, dir string, name string, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// Commit writes a file and commits it.
func Commit(t *testing.T, dir string, name string, content string, message string) {
	t.Helper()
	WriteFile(t, dir, name, content)
	Git(t, dir, "add", name)
	Git(t, dir, "commit", "-q", "-m", message)
}

// CreateTempGitRepo creates a repository on branch main with one commit.
// The returned path has symlinks resolved.
func CreateTempGitRepo(t *testing.T) string {
	t.Helper()
	SkipIfNoGit(t)
	IsolateGitEnv(t)

	dir := filepath.Join(ResolvePath(t.TempDir()), "repo")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir repo: %v", err)
	}
	Git(t, dir, "init", "-q")
	Git(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	Git(t, dir, "config", "user.email", "test@example.test")
	Git(t, dir, "config", "user.name", "Test")
	Git(t, dir, "config", "commit.gpgsign", "false")
	Commit(t, dir, "README.md", "# test\n", "initial")
	return dir
}

// CreateRepoWithRemote creates a bare "origin" holding main and a clone of it,
// so refs/remotes/origin/HEAD is set. Returns the clone and the bare remote.
func CreateRepoWithRemote(t *testing.T) (string, string) {
	t.Helper()
	seed := CreateTempGitRepo(t)
	base := filepath.Dir(seed)

	remote := filepath.Join(base, "origin.git")
	Git(t, base, "init", "-q", "--bare", remote)
	Git(t, remote, "symbolic-ref", "HEAD", "refs/heads/main")
	Git(t, seed, "remote", "add", "origin", remote)
	Git(t, seed, "push", "-q", "origin", "main")

	clone := filepath.Join(base, "clone")
	Git(t, base, "clone", "-q", remote, clone)
	Git(t, clone, "config", "user.email", "test@example.test")
	Git(t, clone, "config", "user.name", "Test")
	Git(t, clone, "config", "commit.gpgsign", "false")
	return clone, remote
}
