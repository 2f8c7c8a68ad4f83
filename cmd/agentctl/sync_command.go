package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrbonezy/agentctl/internal/gitx"
)

func (a *app) newSyncCommand() *cobra.Command {
	var base string
	var strategy string
	var autostash bool
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch and rebase/merge the current branch onto the base ref",
		Long: "Keeps a long-running agent branch up to date with its base. Allowed in agent mode.\n\n" +
			"With --json the full result is printed as one object; a failed sync still exits non-zero.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.enterRepo()
			if err != nil {
				return err
			}
			parsed, err := gitx.ParseStrategy(stringSetting(cmd, "strategy", strategy, repo.cfg.Strategy))
			if err != nil {
				return err
			}

			narrative := a.stdout
			if jsonOutput {
				narrative = io.Discard
			}
			fl := a.fleet(repo)
			fl.Stdout = narrative
			if err := fl.Fetch(); err != nil {
				return err
			}
			remote := fl.Remote()

			branch, ok, err := gitx.CurrentBranch(a.runner, repo.root)
			if err != nil {
				return err
			}
			if !ok {
				return gitx.ErrDetachedHead
			}
			baseRef := gitx.ResolveBaseRef(a.runner, repo.root, remote, stringSetting(cmd, "base", base, repo.cfg.Base))
			fmt.Fprintf(narrative, "Syncing '%s' with '%s' (strategy: %s)...\n", branch, baseRef, parsed)

			res, err := gitx.Sync(a.runner, repo.root, gitx.SyncOptions{Base: baseRef, Strategy: parsed, Autostash: autostash})
			if err != nil {
				return err
			}
			a.logger.Debug("sync finished", "branch", res.Branch, "base", res.Base, "success", res.Success, "changed", res.Changed, "conflicts", res.Conflicts)

			if jsonOutput {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
				if !res.Success {
					return fmt.Errorf("sync of '%s' onto '%s' failed", res.Branch, res.Base)
				}
				return nil
			}
			return a.printSyncResult(res)
		},
	}
	cmd.Flags().StringVarP(&base, "base", "b", "", "Base ref to sync with; auto-detected if omitted")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "rebase", "Sync strategy: 'rebase' or 'merge'")
	cmd.Flags().BoolVar(&autostash, "autostash", false, "Stash and restore local changes around the rebase (rebase only)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as structured JSON")
	return cmd
}

func (a *app) printSyncResult(res gitx.SyncResult) error {
	if res.Success {
		status := okMark()
		if !res.Changed {
			status += " (already up to date)"
		}
		fmt.Fprintf(a.stdout, "%s Branch '%s' synced with '%s'\n", status, res.Branch, res.Base)
		if res.Message != "" && res.Changed {
			fmt.Fprintf(a.stdout, "\n%s\n", res.Message)
		}
		return nil
	}

	fmt.Fprintf(a.stderr, "%s Sync failed\n", failMark())
	if res.Message != "" {
		fmt.Fprintf(a.stderr, "\n%s\n", res.Message)
	}
	if res.Conflicts {
		fmt.Fprintln(a.stderr, "\nConflicts detected. Resolve conflicts and continue/abort manually.")
	}
	return &exitError{code: 1}
}
