package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrbonezy/agentctl/internal/fleet"
)

func (a *app) newInitCommand() *cobra.Command {
	var count int
	var prefix string
	var workdir string
	var base string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create worktrees task-1..task-n for agents",
		Long: "Creates <workdir>/task-<i> worktrees on new <prefix>/task-<i> branches cut from the base ref.\n" +
			"Existing worktree directories are skipped, so re-running only fills gaps. A leftover branch\n" +
			"without its directory aborts the run.",
		Example: strings.Join([]string{
			"  agentctl init",
			"  agentctl init -n 4 -p bots -b origin/develop",
		}, "\n"),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.enterRepo()
			if err != nil {
				return err
			}
			opts := fleet.BootstrapOptions{
				Count:   intSetting(cmd, "count", count, repo.cfg.Count),
				Prefix:  stringSetting(cmd, "prefix", prefix, repo.cfg.Prefix),
				Workdir: stringSetting(cmd, "workdir", workdir, repo.cfg.Workdir),
				Base:    stringSetting(cmd, "base", base, repo.cfg.Base),
			}
			_, err = a.fleet(repo).Bootstrap(opts)
			return err
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 2, "Number of worktrees to create")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "agent", "Branch prefix")
	cmd.Flags().StringVarP(&workdir, "workdir", "w", "worktrees", "Directory for worktrees (relative to repo root)")
	cmd.Flags().StringVarP(&base, "base", "b", "", "Base ref (e.g. origin/main); auto-detected if omitted")
	return cmd
}

func (a *app) newCleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Prune stale worktree references",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			repo, err := a.enterRepo()
			if err != nil {
				return err
			}
			return a.fleet(repo).Clean()
		},
	}
}

func (a *app) newRmCommand() *cobra.Command {
	var workdir string
	cmd := &cobra.Command{
		Use:   "rm <name|path>",
		Short: "Remove a worktree",
		Long: "Force-removes a worktree, discarding local changes. A bare name such as task-2 is looked up\n" +
			"under the worktrees directory; anything containing '/' or starting with '.' is a path.",
		Example: strings.Join([]string{
			"  agentctl rm task-2",
			"  agentctl rm ./scratch/experiment",
		}, "\n"),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return nil
			}
			if len(args) == 0 {
				return usageError(cmd, "missing worktree name or path")
			}
			return usageError(cmd, "too many arguments; provide exactly one worktree name or path")
		},
		ValidArgsFunction: a.completeWorktreeNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.enterRepo()
			if err != nil {
				return err
			}
			return a.fleet(repo).Remove(stringSetting(cmd, "workdir", workdir, repo.cfg.Workdir), args[0])
		},
	}
	cmd.Flags().StringVarP(&workdir, "workdir", "w", "worktrees", "Worktrees directory (used to resolve short names)")
	return cmd
}

func (a *app) newResetCommand() *cobra.Command {
	var yes bool
	var workdir string
	var prefix string
	var deleteRemote bool
	var recreate bool
	var count int
	var base string
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove agent worktrees and branches, optionally recreating them",
		Long: "Removes every worktree under the worktrees directory, prunes, force-deletes local\n" +
			"<prefix>/task-* branches and, with --delete-remote, the same branches on the remote.\n" +
			"--recreate bootstraps a fresh fleet afterwards. Uncommitted work in removed worktrees is lost.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.enterRepo()
			if err != nil {
				return err
			}
			opts := fleet.ResetOptions{
				Workdir:      stringSetting(cmd, "workdir", workdir, repo.cfg.Workdir),
				Prefix:       stringSetting(cmd, "prefix", prefix, repo.cfg.Prefix),
				DeleteRemote: deleteRemote,
				Recreate:     recreate,
				Count:        intSetting(cmd, "count", count, repo.cfg.Count),
				Base:         stringSetting(cmd, "base", base, repo.cfg.Base),
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			if !yes {
				confirmed, err := a.confirmReset(opts)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(a.stdout, "Reset cancelled.")
					return nil
				}
			}

			res, err := a.fleet(repo).Reset(opts)
			if err != nil {
				return err
			}
			if partial := res.Partial(); partial != nil {
				for _, line := range strings.Split(partial.Error(), "\n") {
					fmt.Fprintln(a.stderr, warnStyle.Render("Warning: "+line))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm reset operation (required when not on a terminal)")
	cmd.Flags().StringVarP(&workdir, "workdir", "w", "worktrees", "Worktrees directory to clear")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "agent", "Branch prefix to delete")
	cmd.Flags().BoolVar(&deleteRemote, "delete-remote", false, "Also delete remote branches")
	cmd.Flags().BoolVar(&recreate, "recreate", false, "Recreate worktrees after reset")
	cmd.Flags().IntVarP(&count, "count", "n", 2, "Number of worktrees to recreate (with --recreate)")
	cmd.Flags().StringVarP(&base, "base", "b", "", "Base ref for recreated worktrees (with --recreate)")
	return cmd
}

var errResetNotConfirmed = errors.New("--yes flag is required to confirm reset operation.\nThis will remove worktrees and delete branches.")

func (a *app) confirmReset(opts fleet.ResetOptions) (bool, error) {
	if !a.interactive || a.confirm == nil {
		return false, errResetNotConfirmed
	}
	description := fmt.Sprintf("Removes every worktree under %s and deletes %s branches.", opts.Workdir, opts.Layout().BranchPattern())
	if opts.DeleteRemote {
		description += " Remote branches are deleted too."
	}
	return a.confirm("Reset agent worktrees?", description)
}
