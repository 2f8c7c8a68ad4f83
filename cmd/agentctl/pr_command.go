package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrbonezy/agentctl/internal/ghx"
	"github.com/mrbonezy/agentctl/internal/gitx"
)

const commentPreviewLimit = 100

func (a *app) newPRCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pr",
		Short: "GitHub pull request operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(a.newPRCommentsCommand())
	return cmd
}

func (a *app) newPRCommentsCommand() *cobra.Command {
	var number int
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Fetch issue and review comments of a pull request",
		Long: "Lists issue comments and inline review comments oldest first. The pull request is looked up\n" +
			"from the current branch unless --pr is given. Read-only; allowed in agent mode.\n\n" +
			"Requires `gh` and a GitHub-backed repository.",
		Example: strings.Join([]string{
			"  agentctl pr comments",
			"  agentctl pr comments --pr 123 --json",
		}, "\n"),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("pr") && number <= 0 {
				return usageError(cmd, fmt.Sprintf("invalid pull request number %d", number))
			}
			repo, err := a.enterRepo()
			if err != nil {
				return err
			}
			client := a.gh(repo)
			if !client.Installed() {
				return fmt.Errorf("gh CLI is not installed.\nInstall from: %s", ghx.InstallURL)
			}
			authenticated, message, err := client.AuthStatus()
			if err != nil {
				return err
			}
			if !authenticated {
				return fmt.Errorf("gh is not authenticated.\n%s\n\nRun: gh auth login", message)
			}

			if number == 0 {
				number, err = a.prForCurrentBranch(repo.root, client)
				if err != nil {
					return err
				}
			}

			stop := a.spin("Fetching comments for PR #" + strconv.Itoa(number) + "...")
			comments, err := client.Comments(number)
			stop()
			if err != nil {
				return err
			}
			a.logger.Debug("pr comments fetched", "pr", number, "count", len(comments))

			if jsonOutput {
				if comments == nil {
					comments = []ghx.PRComment{}
				}
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(comments)
			}
			a.printComments(number, comments)
			return nil
		},
	}
	cmd.Flags().IntVar(&number, "pr", 0, "PR number (auto-detected from current branch if omitted)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as structured JSON")
	return cmd
}

func (a *app) prForCurrentBranch(root string, client *ghx.Client) (int, error) {
	branch, ok, err := gitx.CurrentBranch(a.runner, root)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.New("detached HEAD and no --pr specified.\nCheck out a branch or provide --pr <number>.")
	}
	stop := a.spin("Resolving PR...")
	number, found, err := client.PRForBranch(branch)
	stop()
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("no PR found for branch '%s'.\nSpecify --pr <number> explicitly.", branch)
	}
	return number, nil
}

func (a *app) printComments(number int, comments []ghx.PRComment) {
	if len(comments) == 0 {
		fmt.Fprintf(a.stdout, "No comments found for PR #%d.\n", number)
		return
	}
	fmt.Fprintf(a.stdout, "Comments for PR #%d:\n\n", number)
	for i, c := range comments {
		location := ""
		if loc := c.Location(); loc != "" {
			location = " (" + loc + ")"
		}
		fmt.Fprintf(a.stdout, "[%d] %s%s - %s\n", i+1, c.Author, location, dimStyle.Render(c.CreatedAt))
		fmt.Fprintf(a.stdout, "    %s\n", truncateBody(c.Body, commentPreviewLimit))
		if c.URL != "" {
			fmt.Fprintf(a.stdout, "    %s\n", link(a.stdoutTTY, c.URL, c.URL))
		}
		fmt.Fprintln(a.stdout)
	}
}

// truncateBody cuts body to limit runes and marks the cut with "...".
func truncateBody(body string, limit int) string {
	runes := []rune(body)
	if len(runes) <= limit {
		return body
	}
	return string(runes[:limit]) + "..."
}
