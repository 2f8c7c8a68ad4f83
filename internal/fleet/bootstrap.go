package fleet

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mrbonezy/agentctl/internal/gitx"
)

type BootstrapOptions struct {
	Count   int
	Prefix  string
	Workdir string
	// Base is used verbatim when set; otherwise it is resolved.
	Base string
}

func (o BootstrapOptions) Layout() Layout {
	return Layout{Workdir: o.Workdir, Prefix: o.Prefix}
}

func (o BootstrapOptions) Validate() error {
	if o.Count < 1 {
		return fmt.Errorf("%w: --count must be >= 1", gitx.ErrInvalidArgument)
	}
	if err := gitx.ValidatePrefix(o.Prefix); err != nil {
		return err
	}
	return gitx.ValidateWorkdir(o.Workdir)
}

type BootstrapResult struct {
	Base    string
	Created []string
	Skipped []string
}

// BranchCollisionError means a fleet branch exists while its directory does
// not. The run stops there instead of checking out unrelated history.
type BranchCollisionError struct {
	Branch string
	// AfterReset is set when the branch survived a reset that deleted it.
	AfterReset bool
}

func (e *BranchCollisionError) Error() string {
	if e.AfterReset {
		return fmt.Sprintf("branch '%s' already exists. This shouldn't happen after reset.", e.Branch)
	}
	return fmt.Sprintf("branch '%s' already exists. Delete it or choose a different prefix.", e.Branch)
}

// Bootstrap creates worktrees task-1..task-n that do not exist yet. Indices
// whose directory exists are skipped, so re-running only fills gaps.
func (f *Fleet) Bootstrap(opts BootstrapOptions) (BootstrapResult, error) {
	if err := opts.Validate(); err != nil {
		return BootstrapResult{}, err
	}
	logger := f.runLogger("init")

	base := gitx.ResolveBaseRef(f.runner, f.root, f.remote, opts.Base)
	f.printf("Repo root:    %s\n", f.root)
	f.printf("Worktrees:    %s\n", opts.Workdir)
	f.printf("Prefix:       %s\n", opts.Prefix)
	f.printf("Base ref:     %s\n\n", base)

	if err := os.MkdirAll(f.abs(opts.Workdir), 0o755); err != nil {
		return BootstrapResult{}, fmt.Errorf("create %s: %w", opts.Workdir, err)
	}

	f.printf("Pruning stale worktrees...\n")
	if err := f.manager.Prune(); err != nil {
		return BootstrapResult{}, err
	}
	if err := f.fetch(logger); err != nil {
		return BootstrapResult{}, err
	}

	res, err := f.populate(logger, opts.Layout(), opts.Count, base, false)
	if err != nil {
		return res, err
	}
	if err := f.printListing(); err != nil {
		return res, err
	}
	return res, nil
}

// populate is the create loop shared by init and reset --recreate.
func (f *Fleet) populate(logger *slog.Logger, layout Layout, count int, base string, afterReset bool) (BootstrapResult, error) {
	res := BootstrapResult{Base: base}
	f.printf("Creating worktrees...\n")
	for i := 1; i <= count; i++ {
		rel := layout.RelPath(i)
		branch := layout.Branch(i)

		exists, err := f.exists(rel)
		if err != nil {
			return res, err
		}
		if exists {
			f.printf("  Skip: %s (already exists)\n", rel)
			res.Skipped = append(res.Skipped, rel)
			continue
		}

		taken, err := f.manager.BranchExists(branch)
		if err != nil {
			return res, err
		}
		if taken {
			logger.Error("fleet branch already exists", "branch", branch, "index", i)
			return res, &BranchCollisionError{Branch: branch, AfterReset: afterReset}
		}

		f.printf("  + %s  (branch %s)\n", rel, branch)
		if err := f.manager.Add(rel, branch, base); err != nil {
			return res, err
		}
		logger.Debug("worktree created", "path", rel, "branch", branch, "base", base)
		res.Created = append(res.Created, rel)
	}
	f.printf("\nCreated %d worktree(s).\n\n", len(res.Created))
	return res, nil
}
