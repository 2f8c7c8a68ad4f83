package gitx

import (
	"bufio"
	"strings"

	"github.com/mrbonezy/agentctl/internal/procexec"
)

// Worktree is one entry of `git worktree list --porcelain`.
type Worktree struct {
	Path string
	// Branch is empty for detached or bare entries.
	Branch string
	Head   string
	Bare   bool
}

func (w Worktree) HasBranch() bool {
	return w.Branch != ""
}

// ListWorktrees returns the registry as seen by git right now.
func ListWorktrees(r procexec.Runner, root string) ([]Worktree, error) {
	res, err := procexec.RunChecked(r, root, "git", "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	return ParseWorktrees(res.Stdout), nil
}

// ListWorktreesHuman returns git's own listing, for display only.
func ListWorktreesHuman(r procexec.Runner, root string) (string, error) {
	res, err := procexec.RunChecked(r, root, "git", "worktree", "list")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// ParseWorktrees parses porcelain output. Records are separated by blank
// lines; the last one is usually not terminated by one.
func ParseWorktrees(output string) []Worktree {
	var worktrees []Worktree
	var current *Worktree

	flush := func() {
		if current != nil {
			worktrees = append(worktrees, *current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "worktree":
			flush()
			current = &Worktree{Path: value}
		case "HEAD":
			if current != nil {
				current.Head = value
			}
		case "branch":
			if current != nil {
				current.Branch = strings.TrimPrefix(value, "refs/heads/")
			}
		case "bare":
			if current != nil {
				current.Bare = true
			}
		}
	}
	flush()
	return worktrees
}
