package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrbonezy/agentctl/internal/config"
	"github.com/mrbonezy/agentctl/internal/gitx"
)

const (
	zshCompletionBlockStart = "# >>> agentctl completion >>>"
	zshCompletionBlockEnd   = "# <<< agentctl completion <<<"
)

type zshCompletionStatus struct {
	Installed  bool
	Enabled    bool
	ScriptPath string
	ZshrcPath  string
}

func (a *app) newCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Manage shell completion",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			status, err := detectZshCompletionStatus()
			if err != nil {
				return err
			}
			printCompletionStatus(a.stdout, status)
			return nil
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "zsh",
			Short: "Generate zsh completion script",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return cmd.Root().GenZshCompletion(a.stdout)
			},
		},
		&cobra.Command{
			Use:   "bash",
			Short: "Generate bash completion script",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return cmd.Root().GenBashCompletionV2(a.stdout, true)
			},
		},
		&cobra.Command{
			Use:   "install",
			Short: "Install zsh completion",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				status, err := installZshCompletion(cmd.Root())
				if err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "Installed completion script: %s\n", status.ScriptPath)
				fmt.Fprintf(a.stdout, "Updated zsh config: %s\n", status.ZshrcPath)
				fmt.Fprintln(a.stdout, "Restart shell or run: exec zsh")
				return nil
			},
		},
	)
	return cmd
}

func printCompletionStatus(w io.Writer, status zshCompletionStatus) {
	fmt.Fprintf(w, "zsh completion installed: %t\n", status.Installed)
	fmt.Fprintf(w, "zsh completion enabled: %t\n", status.Enabled)
	fmt.Fprintf(w, "script: %s\n", status.ScriptPath)
	if !status.Installed || !status.Enabled {
		fmt.Fprintln(w, "Install with: agentctl completion install")
	}
}

func detectZshCompletionStatus() (zshCompletionStatus, error) {
	home := strings.TrimSpace(os.Getenv("HOME"))
	if home == "" {
		return zshCompletionStatus{}, errors.New("HOME not set")
	}
	status := zshCompletionStatus{
		ScriptPath: filepath.Join(home, ".agentctl", "completions", "_agentctl"),
		ZshrcPath:  filepath.Join(home, ".zshrc"),
	}
	if info, err := os.Stat(status.ScriptPath); err == nil && info.Size() > 0 {
		status.Installed = true
	}
	data, err := os.ReadFile(status.ZshrcPath)
	if errors.Is(err, os.ErrNotExist) {
		return status, nil
	}
	if err != nil {
		return zshCompletionStatus{}, err
	}
	content := string(data)
	status.Enabled = strings.Contains(content, zshCompletionBlockStart) && strings.Contains(content, zshCompletionBlockEnd)
	return status, nil
}

func installZshCompletion(root *cobra.Command) (zshCompletionStatus, error) {
	status, err := detectZshCompletionStatus()
	if err != nil {
		return zshCompletionStatus{}, err
	}
	if err := os.MkdirAll(filepath.Dir(status.ScriptPath), 0o755); err != nil {
		return zshCompletionStatus{}, err
	}
	var buf bytes.Buffer
	if err := root.GenZshCompletion(&buf); err != nil {
		return zshCompletionStatus{}, err
	}
	if err := os.WriteFile(status.ScriptPath, buf.Bytes(), 0o644); err != nil {
		return zshCompletionStatus{}, err
	}

	block := strings.Join([]string{
		zshCompletionBlockStart,
		"fpath+=(\"$HOME/.agentctl/completions\")",
		"autoload -Uz compinit",
		"compinit",
		zshCompletionBlockEnd,
		"",
	}, "\n")

	current := ""
	if data, err := os.ReadFile(status.ZshrcPath); err == nil {
		current = string(data)
	} else if !errors.Is(err, os.ErrNotExist) {
		return zshCompletionStatus{}, err
	}
	updated := upsertManagedBlock(current, block, zshCompletionBlockStart, zshCompletionBlockEnd)
	if err := os.WriteFile(status.ZshrcPath, []byte(updated), 0o644); err != nil {
		return zshCompletionStatus{}, err
	}
	return detectZshCompletionStatus()
}

func upsertManagedBlock(content string, block string, startMarker string, endMarker string) string {
	start := strings.Index(content, startMarker)
	end := strings.Index(content, endMarker)
	if start >= 0 && end >= start {
		end += len(endMarker)
		replaced := content[:start] + block + content[end:]
		return strings.TrimRight(replaced, "\n") + "\n"
	}
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return block
	}
	return content + "\n\n" + block
}

// completeWorktreeNames offers the directories under the worktrees
// directory as short names for rm. It never enters the repository.
func (a *app) completeWorktreeNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	root, err := gitx.Locate(a.runner, cwd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	workdir := config.DefaultWorkdir
	if cfg, _, err := config.Load(root); err == nil {
		workdir = cfg.Workdir
	}
	if cmd.Flags().Changed("workdir") {
		if value, err := cmd.Flags().GetString("workdir"); err == nil {
			workdir = value
		}
	}
	return worktreeNames(filepath.Join(root, workdir), toComplete), cobra.ShellCompDirectiveNoFileComp
}

func worktreeNames(dir string, prefix string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}
