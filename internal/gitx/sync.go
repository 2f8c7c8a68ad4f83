package gitx

import (
	"fmt"
	"strings"

	"github.com/mrbonezy/agentctl/internal/procexec"
)

type Strategy string

const (
	StrategyRebase Strategy = "rebase"
	StrategyMerge  Strategy = "merge"
)

func ParseStrategy(value string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(value))); s {
	case StrategyRebase, StrategyMerge:
		return s, nil
	default:
		return "", fmt.Errorf("%w: --strategy must be 'rebase' or 'merge', got '%s'", ErrInvalidArgument, value)
	}
}

// SyncResult describes one attempt to reconcile a branch with its base.
// Conflicts usually comes with Success=false, but nothing enforces it.
type SyncResult struct {
	RepoRoot  string   `json:"repo_root"`
	Branch    string   `json:"branch"`
	Base      string   `json:"base"`
	Strategy  Strategy `json:"strategy"`
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	Changed   bool     `json:"changed"`
	Conflicts bool     `json:"conflicts"`
}

type SyncOptions struct {
	Base     string
	Strategy Strategy
	// Autostash only applies to rebase.
	Autostash bool
}

// Sync rebases or merges the branch checked out in dir onto opts.Base.
// A failing rebase/merge is reported through the result; err is reserved for
// a detached HEAD, a missing tool or an unknown strategy.
func Sync(r procexec.Runner, dir string, opts SyncOptions) (SyncResult, error) {
	branch, ok, err := CurrentBranch(r, dir)
	if err != nil {
		return SyncResult{}, err
	}
	if !ok {
		return SyncResult{}, ErrDetachedHead
	}

	var args []string
	switch opts.Strategy {
	case StrategyRebase:
		args = []string{"rebase"}
		if opts.Autostash {
			args = append(args, "--autostash")
		}
		args = append(args, opts.Base)
	case StrategyMerge:
		args = []string{"merge", "--no-edit", opts.Base}
	default:
		return SyncResult{}, fmt.Errorf("%w: unknown strategy %q", ErrInvalidArgument, opts.Strategy)
	}

	res, err := r.Run(dir, "git", args...)
	if err != nil {
		return SyncResult{}, err
	}

	message := strings.TrimSpace(res.Stderr)
	if message == "" {
		message = strings.TrimSpace(res.Stdout)
	}
	return SyncResult{
		RepoRoot:  dir,
		Branch:    branch,
		Base:      opts.Base,
		Strategy:  opts.Strategy,
		Success:   res.OK(),
		Message:   message,
		Changed:   !IsUpToDate(message),
		Conflicts: HasConflicts(res.Stdout, res.Stderr),
	}, nil
}
