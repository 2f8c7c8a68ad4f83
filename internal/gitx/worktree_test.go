package gitx

import (
	"reflect"
	"testing"

	"github.com/mrbonezy/agentctl/internal/procexec"
)

func TestParseWorktreesMixedEntries(t *testing.T) {
	output := "worktree /repo\n" +
		"bare\n" +
		"\n" +
		"worktree /repo/worktrees/task-1\n" +
		"HEAD 1111111111111111111111111111111111111111\n" +
		"detached\n" +
		"\n" +
		"worktree /repo/worktrees/task 2\n" +
		"HEAD 2222222222222222222222222222222222222222\n" +
		"branch refs/heads/agent/task-2"

	got := ParseWorktrees(output)
	want := []Worktree{
		{Path: "/repo", Bare: true},
		{Path: "/repo/worktrees/task-1", Head: "1111111111111111111111111111111111111111"},
		{Path: "/repo/worktrees/task 2", Head: "2222222222222222222222222222222222222222", Branch: "agent/task-2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected worktrees\n got: %+v\nwant: %+v", got, want)
	}
	if got[1].HasBranch() {
		t.Fatalf("detached entry must not report a branch")
	}
}

func TestParseWorktreesTrailingBlankLineAndCRLF(t *testing.T) {
	output := "worktree /repo\r\nHEAD abc\r\nbranch refs/heads/main\r\n\r\n"
	got := ParseWorktrees(output)
	if len(got) != 1 {
		t.Fatalf("expected 1 worktree, got %d", len(got))
	}
	if got[0].Branch != "main" || got[0].Head != "abc" {
		t.Fatalf("unexpected entry %+v", got[0])
	}
}

func TestParseWorktreesIgnoresFieldsBeforeFirstRecord(t *testing.T) {
	got := ParseWorktrees("HEAD abc\nbranch refs/heads/x\n\nworktree /a\nlocked\nprunable gitdir file points to non-existent location\n")
	if len(got) != 1 || got[0].Path != "/a" || got[0].Branch != "" {
		t.Fatalf("unexpected worktrees %+v", got)
	}
}

func TestParseWorktreesEmpty(t *testing.T) {
	if got := ParseWorktrees(""); len(got) != 0 {
		t.Fatalf("expected no worktrees, got %+v", got)
	}
}

func TestListWorktreesHumanTrimsOutput(t *testing.T) {
	f := procexec.NewFake().On("git worktree list", procexec.Out("/repo  abc [main]\n"))
	got, err := ListWorktreesHuman(f, "/repo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/repo  abc [main]" {
		t.Fatalf("unexpected listing %q", got)
	}
}
