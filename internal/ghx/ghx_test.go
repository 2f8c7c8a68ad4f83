package ghx

import (
	"reflect"
	"testing"

	"github.com/mrbonezy/agentctl/internal/procexec"
)

func TestParseCommentsSkipsBadLines(t *testing.T) {
	output := `{"author":"alice","createdAt":"2024-01-02T00:00:00Z","body":"looks good","url":"https://example.test/1","type":"comment"}
not json

{"author":null,"createdAt":"2024-01-01T00:00:00Z","body":"nit","path":"main.go","line":12,"url":"https://example.test/2","type":"review_comment"}
{"author":"bob","createdAt":"2024-01-03T00:00:00Z","body":"outdated","path":"a.go","line":null,"type":"review_comment"}
`
	got := ParseComments(output)
	want := []PRComment{
		{Author: "alice", CreatedAt: "2024-01-02T00:00:00Z", Body: "looks good", URL: "https://example.test/1", Type: TypeComment},
		{Author: "unknown", CreatedAt: "2024-01-01T00:00:00Z", Body: "nit", Path: "main.go", Line: 12, URL: "https://example.test/2", Type: TypeReviewComment},
		{Author: "bob", CreatedAt: "2024-01-03T00:00:00Z", Body: "outdated", Path: "a.go", Type: TypeReviewComment},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected comments\n got: %+v\nwant: %+v", got, want)
	}
}

func TestCommentsMergesAndSorts(t *testing.T) {
	runner := procexec.NewFake().
		On("gh api repos/{owner}/{repo}/issues/7/comments --jq "+issueCommentsJQ, procexec.Out(
			`{"author":"a","createdAt":"2024-01-03T00:00:00Z","body":"third","type":"comment"}`+"\n"+
				`{"author":"b","createdAt":"2024-01-01T00:00:00Z","body":"first","type":"comment"}`+"\n")).
		On("gh api repos/{owner}/{repo}/pulls/7/comments --jq "+reviewCommentsJQ, procexec.Out(
			`{"author":"c","createdAt":"2024-01-02T00:00:00Z","body":"second","path":"x.go","line":3,"type":"review_comment"}`+"\n"+
				`{"author":"d","createdAt":"2024-01-03T00:00:00Z","body":"tie","type":"review_comment"}`+"\n"))

	comments, err := NewClient(runner, "/repo").Comments(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var bodies []string
	for _, c := range comments {
		bodies = append(bodies, c.Body)
	}
	want := []string{"first", "second", "third", "tie"}
	if !reflect.DeepEqual(bodies, want) {
		t.Fatalf("expected %v, got %v", want, bodies)
	}
}

func TestCommentsIgnoresFailedListing(t *testing.T) {
	runner := procexec.NewFake().
		On("gh api repos/{owner}/{repo}/issues/7/comments --jq "+issueCommentsJQ, procexec.Fail(1, "HTTP 404")).
		On("gh api repos/{owner}/{repo}/pulls/7/comments --jq "+reviewCommentsJQ, procexec.Out(
			`{"author":"c","createdAt":"2024-01-02T00:00:00Z","body":"only","type":"review_comment"}`+"\n"))
	comments, err := NewClient(runner, "/repo").Comments(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comments) != 1 || comments[0].Body != "only" {
		t.Fatalf("unexpected comments %+v", comments)
	}
}

func TestPRForBranch(t *testing.T) {
	runner := procexec.NewFake().
		On("gh pr view agent/task-1 --json number --jq .number", procexec.Out("42\n")).
		On("gh pr view agent/task-2 --json number --jq .number", procexec.Fail(1, "no pull requests found")).
		On("gh pr view agent/task-3 --json number --jq .number", procexec.Out("\n"))
	client := NewClient(runner, "/repo")

	if n, ok, err := client.PRForBranch("agent/task-1"); err != nil || !ok || n != 42 {
		t.Fatalf("expected PR 42, got n=%d ok=%v err=%v", n, ok, err)
	}
	for _, branch := range []string{"agent/task-2", "agent/task-3"} {
		if _, ok, err := client.PRForBranch(branch); err != nil || ok {
			t.Fatalf("%s: expected no PR, got ok=%v err=%v", branch, ok, err)
		}
	}
}

func TestAuthStatus(t *testing.T) {
	runner := procexec.NewFake().On("gh auth status", procexec.Result{
		Stderr: "github.com\n  ✓ Logged in to github.com account alice\n",
	})
	ok, message, err := NewClient(runner, "").AuthStatus()
	if err != nil || !ok {
		t.Fatalf("expected authenticated, got ok=%v err=%v", ok, err)
	}
	if message != "github.com\n  ✓ Logged in to github.com account alice" {
		t.Fatalf("unexpected message %q", message)
	}

	loggedOut := procexec.NewFake().On("gh auth status", procexec.Fail(1, "You are not logged into any GitHub hosts."))
	if ok, _, _ := NewClient(loggedOut, "").AuthStatus(); ok {
		t.Fatalf("expected not authenticated")
	}
}

func TestInstalled(t *testing.T) {
	if NewClient(procexec.NewFake().Missing("gh"), "").Installed() {
		t.Fatalf("expected gh to be reported missing")
	}
	if !NewClient(procexec.NewFake(), "").Installed() {
		t.Fatalf("expected gh to be reported installed")
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		comment PRComment
		want    string
	}{
		{comment: PRComment{Path: "a.go", Line: 3}, want: "a.go:3"},
		{comment: PRComment{Path: "a.go"}, want: "a.go"},
		{comment: PRComment{}, want: ""},
	}
	for _, tc := range tests {
		if got := tc.comment.Location(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}
