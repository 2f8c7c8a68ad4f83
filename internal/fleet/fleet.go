package fleet

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mrbonezy/agentctl/internal/gitx"
	"github.com/mrbonezy/agentctl/internal/procexec"
)

// Fleet runs fleet operations against one repository root. Progress is
// written to Stdout, per-item warnings to Stderr.
type Fleet struct {
	runner  procexec.Runner
	manager *gitx.Manager
	root    string
	remote  string

	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	// Spin wraps slow steps (fetch). It returns the function that stops it.
	Spin func(label string) func()
}

func New(runner procexec.Runner, root string, remote string) *Fleet {
	if strings.TrimSpace(remote) == "" {
		remote = gitx.DefaultRemote
	}
	return &Fleet{
		runner:  runner,
		manager: gitx.NewManager(runner, root),
		root:    root,
		remote:  remote,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
		Logger:  slog.Default(),
	}
}

func (f *Fleet) Root() string {
	return f.root
}

func (f *Fleet) Remote() string {
	return f.remote
}

func (f *Fleet) Manager() *gitx.Manager {
	return f.manager
}

func (f *Fleet) printf(format string, args ...any) {
	fmt.Fprintf(f.Stdout, format, args...)
}

func (f *Fleet) warnf(format string, args ...any) {
	fmt.Fprintf(f.Stderr, format, args...)
}

// runLogger tags every record of one destructive run with a shared id.
func (f *Fleet) runLogger(op string) *slog.Logger {
	return f.Logger.With("op", op, "run_id", uuid.NewString(), "repo_root", f.root)
}

func (f *Fleet) abs(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(f.root, rel)
}

func (f *Fleet) exists(rel string) (bool, error) {
	_, err := os.Stat(f.abs(rel))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Fetch updates remote-tracking refs of the fleet's remote. A repository
// without the remote is not an error; the resolver already falls back to
// local main.
func (f *Fleet) Fetch() error {
	return f.fetch(f.Logger)
}

func (f *Fleet) fetch(logger *slog.Logger) error {
	configured, err := f.manager.RemoteConfigured(f.remote)
	if err != nil {
		return err
	}
	if !configured {
		f.printf("No remote '%s' configured; skipping fetch.\n", f.remote)
		logger.Info("fetch skipped", "remote", f.remote)
		return nil
	}
	f.printf("Fetching %s...\n", f.remote)
	stop := func() {}
	if f.Spin != nil {
		stop = f.Spin("Fetching " + f.remote + "...")
	}
	err = f.manager.Fetch(f.remote)
	stop()
	return err
}

func (f *Fleet) printListing() error {
	listing, err := f.manager.ListHuman()
	if err != nil {
		return err
	}
	f.printf("%s\n", listing)
	return nil
}
