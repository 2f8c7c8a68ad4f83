package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type listOutput struct {
	RepoRoot  string           `json:"repo_root"`
	Worktrees []worktreeOutput `json:"worktrees"`
}

type worktreeOutput struct {
	Path       string  `json:"path"`
	Branch     *string `json:"branch"`
	HeadCommit string  `json:"head_commit,omitempty"`
	Bare       bool    `json:"bare,omitempty"`
}

func (a *app) newListCommand() *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all worktrees",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			repo, err := a.enterRepo()
			if err != nil {
				return err
			}
			manager := a.fleet(repo).Manager()
			if !jsonOutput {
				listing, err := manager.ListHuman()
				if err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, listing)
				return nil
			}

			worktrees, err := manager.List()
			if err != nil {
				return err
			}
			out := listOutput{RepoRoot: repo.root, Worktrees: make([]worktreeOutput, 0, len(worktrees))}
			for _, wt := range worktrees {
				entry := worktreeOutput{Path: wt.Path, HeadCommit: wt.Head, Bare: wt.Bare}
				if wt.HasBranch() {
					branch := wt.Branch
					entry.Branch = &branch
				}
				out.Worktrees = append(out.Worktrees, entry)
			}
			enc := json.NewEncoder(a.stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as structured JSON")
	return cmd
}
