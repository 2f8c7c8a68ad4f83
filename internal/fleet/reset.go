package fleet

import (
	"errors"
	"fmt"
	"os"

	"github.com/mrbonezy/agentctl/internal/gitx"
)

type ResetOptions struct {
	Workdir      string
	Prefix       string
	DeleteRemote bool
	Recreate     bool
	// Count and Base only apply with Recreate.
	Count int
	Base  string
}

func (o ResetOptions) Layout() Layout {
	return Layout{Workdir: o.Workdir, Prefix: o.Prefix}
}

func (o ResetOptions) Validate() error {
	if err := gitx.ValidatePrefix(o.Prefix); err != nil {
		return err
	}
	if err := gitx.ValidateWorkdir(o.Workdir); err != nil {
		return err
	}
	if o.Recreate && o.Count < 1 {
		return fmt.Errorf("%w: --count must be >= 1", gitx.ErrInvalidArgument)
	}
	return nil
}

type ResetResult struct {
	Removed        Batch
	LocalBranches  Batch
	RemoteBranches Batch
	Recreated      *BootstrapResult
}

// Partial returns the per-step failure summaries, or nil when every item
// succeeded. Remote deletions are left out: an absent remote branch is an
// expected outcome.
func (r ResetResult) Partial() error {
	return errors.Join(r.Removed.Err(), r.LocalBranches.Err())
}

// Reset tears the fleet down: it removes every worktree registered under
// Workdir, prunes, force-deletes <prefix>/task-* branches, optionally deletes
// them on the remote and optionally bootstraps the fleet again.
//
// Per-item failures are reported and counted without stopping the run; the
// returned error is reserved for failures that leave the run meaningless.
func (f *Fleet) Reset(opts ResetOptions) (ResetResult, error) {
	var res ResetResult
	if err := opts.Validate(); err != nil {
		return res, err
	}
	logger := f.runLogger("reset")
	layout := opts.Layout()

	f.printf("Repo root:       %s\n", f.root)
	f.printf("Worktrees dir:   %s\n", opts.Workdir)
	f.printf("Branch prefix:   %s\n", opts.Prefix)
	f.printf("Delete remote:   %t\n", opts.DeleteRemote)
	f.printf("Recreate:        %t\n", opts.Recreate)
	if opts.Recreate {
		f.printf("  Count:         %d\n", opts.Count)
		base := opts.Base
		if base == "" {
			base = "(auto-detect)"
		}
		f.printf("  Base:          %s\n", base)
	}
	f.printf("\n")

	// 1. worktrees under the container, by path containment
	res.Removed.Step = "remove worktrees"
	f.printf("Removing worktrees under %s...\n", opts.Workdir)
	container := f.abs(opts.Workdir)
	if _, err := os.Stat(container); err == nil {
		worktrees, err := f.manager.List()
		if err != nil {
			logger.Warn("listing worktrees failed", "error", err)
			f.warnf("  Warning: could not list worktrees: %v\n", err)
		}
		for _, wt := range worktrees {
			if wt.Bare || !Contains(container, wt.Path) {
				continue
			}
			f.printf("  - %s\n", wt.Path)
			err := f.manager.Remove(wt.Path)
			res.Removed.Record(wt.Path, err)
			if err != nil {
				logger.Warn("worktree removal failed", "path", wt.Path, "error", err)
				f.warnf("    Warning: failed to remove %s: %v\n", wt.Path, err)
			}
		}
	}
	f.printf("Removed %d worktree(s).\n\n", res.Removed.Succeeded())

	// 2. prune, always
	f.printf("Pruning worktree references...\n")
	if err := f.manager.Prune(); err != nil {
		logger.Warn("prune failed", "error", err)
		f.warnf("  Warning: prune failed: %v\n", err)
	}
	f.printf("\n")

	// 3. local branches
	res.LocalBranches.Step = "delete local branches"
	pattern := layout.BranchPattern()
	f.printf("Deleting local branches matching '%s'...\n", pattern)
	branches, err := f.manager.ListBranches(pattern)
	if err != nil {
		return res, err
	}
	for _, branch := range branches {
		f.printf("  - %s\n", branch)
		err := f.manager.DeleteLocalBranch(branch, true)
		res.LocalBranches.Record(branch, err)
		if err != nil {
			logger.Warn("local branch deletion failed", "branch", branch, "error", err)
			f.warnf("    Warning: failed to delete %s\n", branch)
		}
	}
	f.printf("Deleted %d local branch(es).\n\n", res.LocalBranches.Succeeded())

	// 4. remote branches, same set
	if opts.DeleteRemote {
		res.RemoteBranches.Step = "delete remote branches"
		f.printf("Deleting remote branches matching '%s'...\n", pattern)
		for _, branch := range branches {
			f.printf("  - %s/%s\n", f.remote, branch)
			err := f.manager.DeleteRemoteBranch(branch, f.remote)
			res.RemoteBranches.Record(branch, err)
			if err != nil {
				logger.Info("remote branch not deleted", "branch", branch, "error", err)
				f.printf("    (not found or already deleted)\n")
			}
		}
		f.printf("Deleted %d remote branch(es).\n\n", res.RemoteBranches.Succeeded())
	}

	// 5. rebuild
	if opts.Recreate {
		f.printf("Recreating worktrees...\n\n")
		base := gitx.ResolveBaseRef(f.runner, f.root, f.remote, opts.Base)
		if err := os.MkdirAll(container, 0o755); err != nil {
			return res, fmt.Errorf("create %s: %w", opts.Workdir, err)
		}
		f.printf("Base ref:     %s\n\n", base)
		if err := f.fetch(logger); err != nil {
			return res, err
		}
		recreated, err := f.populate(logger, layout, opts.Count, base, true)
		res.Recreated = &recreated
		if err != nil {
			return res, err
		}
	}

	f.printf("Current worktrees:\n")
	if err := f.printListing(); err != nil {
		return res, err
	}
	if err := res.Partial(); err != nil {
		logger.Warn("reset finished with failures", "error", err)
	}
	return res, nil
}
