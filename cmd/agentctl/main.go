package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mrbonezy/agentctl/internal/ghx"
	"github.com/mrbonezy/agentctl/internal/modeguard"
	"github.com/mrbonezy/agentctl/internal/procexec"
)

func main() {
	if err := run(os.Args); err != nil {
		os.Exit(reportError(os.Stderr, err))
	}
}

func run(args []string) error {
	return newApp().execute(args)
}

// exitError carries a status whose diagnostics were already printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// reportError prints err for the user and returns the exit status.
func reportError(w io.Writer, err error) int {
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	var denied *modeguard.DeniedError
	if errors.As(err, &denied) {
		fmt.Fprintln(w, denied.Error())
		return 1
	}
	var missing *procexec.ToolNotFoundError
	if errors.As(err, &missing) {
		fmt.Fprintln(w, "agentctl error:", missing.Error())
		if hint := installHint(missing.Tool); hint != "" {
			fmt.Fprintln(w, hint)
		}
		return 1
	}
	fmt.Fprintln(w, "agentctl error:", err)
	return 1
}

func installHint(tool string) string {
	switch tool {
	case "git":
		return "Install it from: https://git-scm.com/downloads"
	case "gh":
		return "Install it from: " + ghx.InstallURL
	}
	return ""
}
