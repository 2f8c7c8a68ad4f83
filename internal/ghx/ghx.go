// Package ghx talks to GitHub through the gh CLI.
package ghx

import (
	"bufio"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mrbonezy/agentctl/internal/procexec"
)

const InstallURL = "https://cli.github.com/"

type CommentType string

const (
	TypeComment       CommentType = "comment"
	TypeReviewComment CommentType = "review_comment"
)

// PRComment is an issue comment or an inline review comment. Path and Line
// are only set for review comments anchored to a file.
type PRComment struct {
	Author    string      `json:"author"`
	CreatedAt string      `json:"createdAt"`
	Body      string      `json:"body"`
	Type      CommentType `json:"type"`
	Path      string      `json:"path,omitempty"`
	Line      int         `json:"line,omitempty"`
	URL       string      `json:"url,omitempty"`
}

func (c PRComment) Location() string {
	if c.Path != "" && c.Line > 0 {
		return fmt.Sprintf("%s:%d", c.Path, c.Line)
	}
	return c.Path
}

const (
	issueCommentsJQ  = `.[] | {author: .user.login, createdAt: .created_at, body: .body, url: .html_url, type: "comment"}`
	reviewCommentsJQ = `.[] | {author: .user.login, createdAt: .created_at, body: .body, path: .path, line: .line, url: .html_url, type: "review_comment"}`
)

type Client struct {
	runner procexec.Runner
	dir    string
}

func NewClient(runner procexec.Runner, dir string) *Client {
	return &Client{runner: runner, dir: dir}
}

func (c *Client) gh(args ...string) (procexec.Result, error) {
	return c.runner.Run(c.dir, "gh", args...)
}

// Installed reports whether gh can be run at all.
func (c *Client) Installed() bool {
	res, err := c.gh("--version")
	return err == nil && res.OK()
}

// AuthStatus returns whether gh is logged in, with gh's own explanation.
func (c *Client) AuthStatus() (bool, string, error) {
	res, err := c.gh("auth", "status")
	if err != nil {
		return false, "", err
	}
	message := strings.TrimSpace(res.Stderr)
	if message == "" {
		message = strings.TrimSpace(res.Stdout)
	}
	return res.OK(), message, nil
}

// PRForBranch returns the number of the pull request whose head is branch,
// or ok=false when there is none.
func (c *Client) PRForBranch(branch string) (int, bool, error) {
	res, err := c.gh("pr", "view", branch, "--json", "number", "--jq", ".number")
	if err != nil {
		return 0, false, err
	}
	if !res.OK() {
		return 0, false, nil
	}
	number, convErr := strconv.Atoi(strings.TrimSpace(res.Stdout))
	if convErr != nil {
		return 0, false, nil
	}
	return number, true, nil
}

// Comments merges issue and review comments of a pull request, oldest first.
// A failing listing contributes no comments.
func (c *Client) Comments(pr int) ([]PRComment, error) {
	var comments []PRComment
	endpoints := []struct {
		path string
		jq   string
	}{
		{path: fmt.Sprintf("repos/{owner}/{repo}/issues/%d/comments", pr), jq: issueCommentsJQ},
		{path: fmt.Sprintf("repos/{owner}/{repo}/pulls/%d/comments", pr), jq: reviewCommentsJQ},
	}
	for _, ep := range endpoints {
		res, err := c.gh("api", ep.path, "--jq", ep.jq)
		if err != nil {
			return nil, err
		}
		if !res.OK() {
			continue
		}
		comments = append(comments, ParseComments(res.Stdout)...)
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt < comments[j].CreatedAt
	})
	return comments, nil
}

type rawComment struct {
	Author    *string `json:"author"`
	CreatedAt string  `json:"createdAt"`
	Body      string  `json:"body"`
	Type      string  `json:"type"`
	Path      *string `json:"path"`
	Line      *int    `json:"line"`
	URL       *string `json:"url"`
}

// ParseComments reads one JSON object per line. Lines that do not parse
// are skipped.
func ParseComments(output string) []PRComment {
	var comments []PRComment
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var raw rawComment
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			continue
		}
		comment := PRComment{
			Author:    "unknown",
			CreatedAt: raw.CreatedAt,
			Body:      raw.Body,
			Type:      TypeComment,
		}
		if raw.Author != nil {
			comment.Author = *raw.Author
		}
		if raw.Type != "" {
			comment.Type = CommentType(raw.Type)
		}
		if raw.Path != nil {
			comment.Path = *raw.Path
		}
		if raw.Line != nil {
			comment.Line = *raw.Line
		}
		if raw.URL != nil {
			comment.URL = *raw.URL
		}
		comments = append(comments, comment)
	}
	return comments
}
