package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrbonezy/agentctl/internal/modeguard"
)

func (a *app) execute(args []string) error {
	root := a.newRootCommand()
	if len(args) > 1 {
		root.SetArgs(args[1:])
	} else {
		root.SetArgs([]string{})
	}
	return root.Execute()
}

func (a *app) newRootCommand() *cobra.Command {
	var showVersion bool
	var verbose bool
	root := &cobra.Command{
		Use:   "agentctl",
		Short: "Bootstrap and manage git worktrees for parallel agents",
		Long: "agentctl creates a fleet of worktrees (task-1..task-n) on <prefix>/task-<i> branches, keeps them\n" +
			"in sync with the base branch and tears them down again.\n\n" +
			"Set AGENTCTL_MODE=agent to restrict an automated caller to read-only commands and sync.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if verbose {
				a.logLevel.Set(slog.LevelDebug)
			}
			return a.checkMode(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				fmt.Fprintln(a.stdout, versionLine())
				return nil
			}
			return cmd.Help()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.Flags().BoolVarP(&showVersion, "version", "V", false, "Print agentctl version and exit")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log every git/gh invocation to stderr")

	root.AddCommand(
		a.newInitCommand(),
		a.newSyncCommand(),
		a.newListCommand(),
		a.newCleanCommand(),
		a.newRmCommand(),
		a.newResetCommand(),
		a.newPRCommand(),
		a.newDoctorCommand(),
		a.newCompletionCommand(),
	)
	for _, sub := range root.Commands() {
		a.guardArgs(sub)
	}
	return root
}

func (a *app) checkMode(cmd *cobra.Command) error {
	op := commandOp(cmd)
	if err := modeguard.Check(a.mode, op); err != nil {
		a.logger.Debug("command denied", "op", op, "mode", a.mode)
		return err
	}
	return nil
}

// guardArgs runs the mode check ahead of each command's argument
// validation, which cobra performs before PersistentPreRunE.
func (a *app) guardArgs(cmd *cobra.Command) {
	validate := cmd.Args
	cmd.Args = func(c *cobra.Command, args []string) error {
		if err := a.checkMode(c); err != nil {
			return err
		}
		if validate == nil {
			return nil
		}
		return validate(c, args)
	}
	for _, sub := range cmd.Commands() {
		a.guardArgs(sub)
	}
}

// commandOp names cmd for the mode guard: its path below the root, such as
// "reset" or "pr comments".
func commandOp(cmd *cobra.Command) string {
	path := strings.TrimSpace(strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()))
	if path == "" {
		return cmd.Root().Name()
	}
	return path
}

func usageError(cmd *cobra.Command, message string) error {
	return fmt.Errorf("%s\n\n%s", message, strings.TrimSpace(cmd.UsageString()))
}

// stringSetting returns the flag value when it was given explicitly and the
// configured default otherwise.
func stringSetting(cmd *cobra.Command, name string, flagValue string, configured string) string {
	if cmd.Flags().Changed(name) {
		return strings.TrimSpace(flagValue)
	}
	return configured
}

func intSetting(cmd *cobra.Command, name string, flagValue int, configured int) int {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configured
}
