package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrbonezy/agentctl/internal/config"
	"github.com/mrbonezy/agentctl/internal/ghx"
	"github.com/mrbonezy/agentctl/internal/gitx"
	"github.com/mrbonezy/agentctl/internal/modeguard"
	"github.com/mrbonezy/agentctl/internal/procexec"
)

func (a *app) newDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check dependencies and configuration",
		Long:  "Read-only diagnostics; allowed in agent mode. Never fails on a missing dependency.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a.runDoctor()
			return nil
		},
	}
}

func (a *app) runDoctor() {
	out := a.stdout
	fmt.Fprintln(out, "Checking agentctl dependencies...")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Version: %s\n", versionLine())

	root, err := gitx.Locate(a.runner, "")
	switch {
	case procexec.IsToolNotFound(err):
		fmt.Fprintf(out, "%s git not installed\n", failMark())
		fmt.Fprintf(out, "  %s\n", installHint("git"))
	case err != nil:
		fmt.Fprintf(out, "%s git installed, but not in a repository\n", failMark())
	default:
		fmt.Fprintf(out, "%s git installed\n", okMark())
		fmt.Fprintf(out, "  Repo root: %s\n", root)
	}
	fmt.Fprintln(out)

	client := ghx.NewClient(a.runner, root)
	if client.Installed() {
		fmt.Fprintf(out, "%s gh CLI installed\n", okMark())
		authenticated, message, err := client.AuthStatus()
		switch {
		case err != nil:
			fmt.Fprintf(out, "  %s Could not check authentication: %v\n", failMark(), err)
		case authenticated:
			fmt.Fprintf(out, "  %s Authenticated\n", okMark())
			if first, _, _ := strings.Cut(message, "\n"); strings.TrimSpace(first) != "" {
				fmt.Fprintf(out, "  %s\n", strings.TrimSpace(first))
			}
		default:
			fmt.Fprintf(out, "  %s Not authenticated\n", failMark())
			fmt.Fprintln(out, "  Run: gh auth login")
		}
	} else {
		fmt.Fprintf(out, "%s gh CLI not installed\n", failMark())
		fmt.Fprintf(out, "  Install from: %s\n", ghx.InstallURL)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Mode: %s (%s)\n", a.mode, modeguard.EnvVar)
	if a.mode == modeguard.ModeAgent {
		fmt.Fprintf(out, "  Denied commands: %s\n", strings.Join(modeguard.UserOnly(), ", "))
	}
	if root != "" {
		cfg, path, err := config.Load(root)
		switch {
		case err != nil:
			fmt.Fprintf(out, "%s Config: %v\n", failMark(), err)
		case path == "":
			fmt.Fprintf(out, "Config: defaults (no %s)\n", config.FileName)
		default:
			fmt.Fprintf(out, "Config: %s\n", path)
		}
		if err == nil {
			fmt.Fprintf(out, "Base ref: %s\n", gitx.ResolveBaseRef(a.runner, root, cfg.Remote, cfg.Base))
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "All checks complete.")
}
