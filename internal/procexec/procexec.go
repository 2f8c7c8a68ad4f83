// Package procexec runs external tools (git, gh) and captures their output.
//
// A non-zero exit status is not an error for Run: callers that need to look
// at a failing command's output (conflict detection, existence probes) get the
// Result back untouched. RunChecked turns a non-zero exit into an *ExecError.
package procexec

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Result is the captured outcome of one external command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// OK reports whether the command exited with status 0.
func (r Result) OK() bool {
	return r.ExitCode == 0
}

// Combined returns stdout and stderr joined by a newline, trimmed.
func (r Result) Combined() string {
	return strings.TrimSpace(strings.TrimSpace(r.Stdout) + "\n" + strings.TrimSpace(r.Stderr))
}

// Runner executes a named tool in dir. It returns an error only when the
// process could not be started at all.
type Runner interface {
	Run(dir string, name string, args ...string) (Result, error)
}

// ToolNotFoundError is returned when the executable is not on PATH.
type ToolNotFoundError struct {
	Tool string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("%s not installed", e.Tool)
}

// ExecError is returned by RunChecked for a non-zero exit.
type ExecError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ExecError) Error() string {
	sub := ""
	if len(e.Args) > 0 {
		sub = " " + e.Args[0]
	}
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("%s%s failed: exit status %d", e.Tool, sub, e.ExitCode)
	}
	return fmt.Sprintf("%s%s failed: %s", e.Tool, sub, msg)
}

// IsToolNotFound reports whether err (or anything it wraps) is a ToolNotFoundError.
func IsToolNotFound(err error) bool {
	var tnf *ToolNotFoundError
	return errors.As(err, &tnf)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	Logger *slog.Logger
	// LookPath defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

func NewExecRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{Logger: logger, LookPath: exec.LookPath}
}

func (r *ExecRunner) Run(dir string, name string, args ...string) (Result, error) {
	lookPath := r.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	bin, err := lookPath(name)
	if err != nil {
		return Result{}, &ToolNotFoundError{Tool: name}
	}

	start := time.Now()
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := Result{}
	runErr := cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return res, fmt.Errorf("start %s: %w", name, runErr)
		}
		res.ExitCode = exitErr.ExitCode()
	}

	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("command finished",
		"tool", name,
		"dir", dir,
		"args", args,
		"exit_code", res.ExitCode,
		"duration_ms", time.Since(start).Milliseconds())
	return res, nil
}

// RunChecked runs the command and converts a non-zero exit into an *ExecError
// carrying the captured stderr.
func RunChecked(r Runner, dir string, name string, args ...string) (Result, error) {
	res, err := r.Run(dir, name, args...)
	if err != nil {
		return res, err
	}
	if !res.OK() {
		return res, &ExecError{
			Tool:     name,
			Args:     append([]string(nil), args...),
			ExitCode: res.ExitCode,
			Stderr:   strings.TrimSpace(res.Stderr),
		}
	}
	return res, nil
}
