package fleet

import (
	"fmt"
	"strings"

	"github.com/mrbonezy/agentctl/internal/gitx"
)

// Clean prunes stale registry entries and prints what is left.
func (f *Fleet) Clean() error {
	if err := f.manager.Prune(); err != nil {
		return err
	}
	f.printf("Pruned. Current worktrees:\n\n")
	return f.printListing()
}

// Remove force-removes one worktree given by name (resolved under workdir)
// or by path, then prunes.
func (f *Fleet) Remove(workdir string, nameOrPath string) error {
	nameOrPath = strings.TrimSpace(nameOrPath)
	if nameOrPath == "" {
		return fmt.Errorf("%w: worktree name or path is required", gitx.ErrInvalidArgument)
	}
	rel := Layout{Workdir: workdir}.Resolve(nameOrPath)
	exists, err := f.exists(rel)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("no such worktree directory: %s", rel)
	}

	f.printf("Removing worktree: %s\n", rel)
	if err := f.manager.Remove(rel); err != nil {
		return err
	}
	f.printf("Pruning...\n")
	if err := f.manager.Prune(); err != nil {
		return err
	}
	f.printf("\nCurrent worktrees:\n")
	return f.printListing()
}
