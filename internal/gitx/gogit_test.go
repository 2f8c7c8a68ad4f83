package gitx

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrbonezy/agentctl/internal/procexec"
	"github.com/mrbonezy/agentctl/internal/testutil"
)

func TestGoGitRunnerMatchesBinary(t *testing.T) {
	clone, _ := testutil.CreateRepoWithRemote(t)
	testutil.Git(t, clone, "branch", "agent/task-1")

	binary := procexec.NewExecRunner(nil)
	emulated := NewGoGitRunner(procexec.NewFake().Missing("git"))

	queries := [][]string{
		{"rev-parse", "--verify", "origin/main"},
		{"rev-parse", "--verify", "origin/master"},
		{"show-ref", "--verify", "--quiet", "refs/heads/agent/task-1"},
		{"show-ref", "--verify", "--quiet", "refs/heads/agent/task-2"},
		{"symbolic-ref", "-q", "refs/remotes/origin/HEAD"},
		{"symbolic-ref", "--short", "-q", "HEAD"},
		{"remote", "get-url", "nope"},
	}
	for _, args := range queries {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			want, err := binary.Run(clone, "git", args...)
			if err != nil {
				t.Fatalf("binary: %v", err)
			}
			got, err := emulated.Run(clone, "git", args...)
			if err != nil {
				t.Fatalf("emulated: %v", err)
			}
			if got.OK() != want.OK() {
				t.Fatalf("exit mismatch: go-git=%d git=%d", got.ExitCode, want.ExitCode)
			}
			if strings.TrimSpace(got.Stdout) != strings.TrimSpace(want.Stdout) {
				t.Fatalf("stdout mismatch: go-git=%q git=%q", got.Stdout, want.Stdout)
			}
		})
	}
}

func TestGoGitRunnerRemoteURL(t *testing.T) {
	clone, remote := testutil.CreateRepoWithRemote(t)
	emulated := NewGoGitRunner(procexec.NewFake().Missing("git"))

	res, err := emulated.Run(clone, "git", "remote", "get-url", "origin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.OK() || filepath.Clean(strings.TrimSpace(res.Stdout)) != filepath.Clean(remote) {
		t.Fatalf("expected %s, got %+v", remote, res)
	}
}

func TestGoGitRunnerFallsBack(t *testing.T) {
	dir := testutil.CreateTempGitRepo(t)
	fallback := procexec.NewFake().On("git worktree prune", procexec.Out(""))
	r := NewGoGitRunner(fallback)

	if _, err := r.Run(dir, "git", "worktree", "prune"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Run(t.TempDir(), "git", "rev-parse", "--verify", "main"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Run(dir, "gh", "--version"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"git worktree prune", "git rev-parse --verify main", "gh --version"}
	got := fallback.Lines()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected fallback calls %v, got %v", want, got)
	}
}

func TestGoGitRunnerSkipsLinkedWorktrees(t *testing.T) {
	dir := testutil.CreateTempGitRepo(t)
	linked := filepath.Join(filepath.Dir(dir), "linked")
	testutil.Git(t, dir, "worktree", "add", "-q", "-b", "agent/task-1", linked)

	fallback := procexec.NewFake().On("git symbolic-ref --short -q HEAD", procexec.Out("agent/task-1\n"))
	r := NewGoGitRunner(fallback)
	branch, ok, err := CurrentBranch(r, linked)
	if err != nil || !ok || branch != "agent/task-1" {
		t.Fatalf("unexpected result branch=%q ok=%v err=%v", branch, ok, err)
	}
	if fallback.Count("git symbolic-ref --short -q HEAD") != 1 {
		t.Fatalf("expected linked worktree query to reach the binary")
	}
}
