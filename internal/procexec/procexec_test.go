package procexec

import (
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func TestExecErrorPrefersStderr(t *testing.T) {
	err := &ExecError{Tool: "git", Args: []string{"worktree", "remove"}, ExitCode: 128, Stderr: "fatal: worktree contains unstaged changes"}
	if !strings.Contains(err.Error(), "unstaged changes") {
		t.Fatalf("expected stderr message, got %q", err.Error())
	}
	if !strings.HasPrefix(err.Error(), "git worktree failed") {
		t.Fatalf("expected tool and subcommand prefix, got %q", err.Error())
	}
}

func TestExecErrorFallsBackToExitStatus(t *testing.T) {
	err := &ExecError{Tool: "git", Args: []string{"fetch"}, ExitCode: 1, Stderr: "  "}
	if err.Error() != "git fetch failed: exit status 1" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestRunCheckedConvertsNonZeroExit(t *testing.T) {
	f := NewFake().On("git worktree prune", Fail(1, "fatal: boom\n"))
	_, err := RunChecked(f, "/repo", "git", "worktree", "prune")
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecError, got %v", err)
	}
	if execErr.ExitCode != 1 || execErr.Stderr != "fatal: boom" {
		t.Fatalf("unexpected exec error %+v", execErr)
	}
}

func TestRunCheckedPassesThroughSuccess(t *testing.T) {
	f := NewFake().On("git rev-parse --show-toplevel", Out("/repo\n"))
	res, err := RunChecked(f, "", "git", "rev-parse", "--show-toplevel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stdout != "/repo\n" {
		t.Fatalf("unexpected stdout %q", res.Stdout)
	}
}

func TestExecRunnerToolNotFound(t *testing.T) {
	r := NewExecRunner(nil)
	r.LookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	_, err := r.Run("", "git", "status")
	if !IsToolNotFound(err) {
		t.Fatalf("expected tool-not-found, got %v", err)
	}
}

func TestExecRunnerCapturesExitCodeWithoutError(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	r := NewExecRunner(nil)
	res, err := r.Run(t.TempDir(), "sh", "-c", "echo out; echo err >&2; exit 3")
	if err != nil {
		t.Fatalf("non-zero exit must not be an error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Fatalf("expected exit 3, got %d", res.ExitCode)
	}
	if strings.TrimSpace(res.Stdout) != "out" || strings.TrimSpace(res.Stderr) != "err" {
		t.Fatalf("unexpected output %+v", res)
	}
	if res.Combined() != "out\nerr" {
		t.Fatalf("unexpected combined output %q", res.Combined())
	}
}

func TestFakeQueueReturnsInOrderThenRepeatsLast(t *testing.T) {
	f := NewFake().Queue("git a", Out("1"), Out("2"))
	for _, want := range []string{"1", "2", "2"} {
		res, _ := f.Run("", "git", "a")
		if res.Stdout != want {
			t.Fatalf("expected %q, got %q", want, res.Stdout)
		}
	}
	if f.Count("git a") != 3 {
		t.Fatalf("expected 3 calls, got %d", f.Count("git a"))
	}
}
