package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/mrbonezy/agentctl/internal/config"
	"github.com/mrbonezy/agentctl/internal/fleet"
	"github.com/mrbonezy/agentctl/internal/ghx"
	"github.com/mrbonezy/agentctl/internal/gitx"
	"github.com/mrbonezy/agentctl/internal/modeguard"
	"github.com/mrbonezy/agentctl/internal/procexec"
)

// app is everything a command needs from the outside world. Environment
// switches are read once when it is built.
type app struct {
	runner   procexec.Runner
	mode     modeguard.Mode
	stdout   io.Writer
	stderr   io.Writer
	logger   *slog.Logger
	logLevel *slog.LevelVar
	chdir    func(string) error

	// stdoutTTY enables hyperlinks; interactive enables prompts and spinners.
	stdoutTTY   bool
	interactive bool
	confirm     func(title string, description string) (bool, error)
}

func newApp() *app {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	if debugLoggingEnabled() {
		level.Set(slog.LevelDebug)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var runner procexec.Runner = procexec.NewExecRunner(logger)
	if !goGitDisabled() {
		runner = gitx.NewGoGitRunner(runner)
	}
	return &app{
		runner:      runner,
		mode:        modeguard.FromEnv(),
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		logger:      logger,
		logLevel:    level,
		chdir:       os.Chdir,
		stdoutTTY:   isTerminal(os.Stdout),
		interactive: isTerminal(os.Stdin) && isTerminal(os.Stderr),
		confirm:     runConfirm,
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// repoContext is the located repository with its defaults applied.
type repoContext struct {
	root    string
	cfg     config.Config
	cfgPath string
}

// enterRepo locates the repository, makes it the working directory and
// loads its config file.
func (a *app) enterRepo() (repoContext, error) {
	root, err := gitx.LocateAndEnter(a.runner, a.chdir)
	if err != nil {
		return repoContext{}, err
	}
	cfg, path, err := config.Load(root)
	if err != nil {
		return repoContext{}, err
	}
	if path != "" {
		a.logger.Debug("config loaded", "path", path)
	}
	return repoContext{root: root, cfg: cfg, cfgPath: path}, nil
}

func (a *app) fleet(repo repoContext) *fleet.Fleet {
	f := fleet.New(a.runner, repo.root, repo.cfg.Remote)
	f.Stdout = a.stdout
	f.Stderr = a.stderr
	f.Logger = a.logger
	f.Spin = a.spin
	return f
}

func (a *app) gh(repo repoContext) *ghx.Client {
	return ghx.NewClient(a.runner, repo.root)
}

// spin shows a spinner on stderr while a slow step runs.
func (a *app) spin(message string) func() {
	if !a.interactive {
		return func() {}
	}
	return startDelayedSpinner(a.stderr, message, spinnerDelay)
}
