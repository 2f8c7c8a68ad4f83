//go:build local_e2e

package e2e

import (
	"os"
	"strings"
	"testing"
)

func TestLocalE2EResetDeletesPushedBranches(t *testing.T) {
	if strings.TrimSpace(os.Getenv("AGENTCTL_LOCAL_E2E")) != "1" {
		t.Skip("set AGENTCTL_LOCAL_E2E=1 to run local-only e2e tests")
	}

	repo := setupRepoWithOrigin(t)
	env := testEnv(t.TempDir())
	if result := runAgentctl(t, repo.clone, env, "init", "-n", "2"); result.err != nil {
		t.Fatalf("init failed: %v\n%s", result.err, result.out)
	}
	runCmd(t, repo.clone, nil, "git", "push", "origin", "agent/task-1")

	result := runAgentctl(t, repo.clone, env, "reset", "--yes", "--delete-remote")
	if result.err != nil {
		t.Fatalf("reset failed: %v\n%s", result.err, result.out)
	}
	assertContains(t, result.out, "Deleted 1 remote branch(es).")
	assertContains(t, result.out, "(not found or already deleted)")

	remaining := runCmd(t, repo.origin, nil, "git", "branch", "--list", "agent/*")
	if remaining != "" {
		t.Fatalf("expected no agent branches on origin, got %q", remaining)
	}
}
