package gitx

import (
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/mrbonezy/agentctl/internal/procexec"
)

// GoGitRunner answers a few read-only git queries in-process with go-git and
// hands everything else to Fallback. Linked worktrees always go to the
// binary; go-git's support for them is incomplete.
type GoGitRunner struct {
	Fallback procexec.Runner
}

func NewGoGitRunner(fallback procexec.Runner) *GoGitRunner {
	return &GoGitRunner{Fallback: fallback}
}

func (g *GoGitRunner) Run(dir string, name string, args ...string) (procexec.Result, error) {
	if name == "git" {
		if res, handled := g.emulate(dir, args); handled {
			return res, nil
		}
	}
	return g.Fallback.Run(dir, name, args...)
}

func (g *GoGitRunner) emulate(dir string, args []string) (procexec.Result, bool) {
	if !isEmulatable(args) {
		return procexec.Result{}, false
	}
	repo, ok := openMainRepo(dir)
	if !ok {
		return procexec.Result{}, false
	}
	switch args[0] {
	case "rev-parse":
		return revParseVerify(repo, args[2]), true
	case "show-ref":
		return showRefVerify(repo, args[3]), true
	case "symbolic-ref":
		return symbolicRef(repo, args[len(args)-1], args[1] == "--short"), true
	case "remote":
		return remoteGetURL(repo, args[2]), true
	}
	return procexec.Result{}, false
}

func isEmulatable(args []string) bool {
	switch {
	case len(args) == 3 && args[0] == "rev-parse" && args[1] == "--verify":
		return true
	case len(args) == 4 && args[0] == "show-ref" && args[1] == "--verify" && args[2] == "--quiet":
		return true
	case len(args) == 3 && args[0] == "symbolic-ref" && args[1] == "-q":
		return true
	case len(args) == 4 && args[0] == "symbolic-ref" && args[1] == "--short" && args[2] == "-q" && args[3] == "HEAD":
		return true
	case len(args) == 3 && args[0] == "remote" && args[1] == "get-url":
		return true
	}
	return false
}

// openMainRepo opens dir only when it is the root of a non-linked checkout.
func openMainRepo(dir string) (*git.Repository, bool) {
	if strings.TrimSpace(dir) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, false
		}
		dir = wd
	}
	info, err := os.Stat(filepath.Join(dir, ".git"))
	if err != nil || !info.IsDir() {
		return nil, false
	}
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, false
	}
	return repo, true
}

func revParseVerify(repo *git.Repository, revision string) procexec.Result {
	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil || hash == nil {
		return procexec.Result{ExitCode: 128, Stderr: "fatal: Needed a single revision\n"}
	}
	return procexec.Result{Stdout: hash.String() + "\n"}
}

func showRefVerify(repo *git.Repository, name string) procexec.Result {
	if _, err := repo.Reference(plumbing.ReferenceName(name), true); err != nil {
		return procexec.Result{ExitCode: 1}
	}
	return procexec.Result{}
}

func symbolicRef(repo *git.Repository, name string, short bool) procexec.Result {
	ref, err := repo.Reference(plumbing.ReferenceName(name), false)
	if err != nil || ref.Type() != plumbing.SymbolicReference {
		return procexec.Result{ExitCode: 1}
	}
	target := ref.Target()
	if short {
		return procexec.Result{Stdout: target.Short() + "\n"}
	}
	return procexec.Result{Stdout: target.String() + "\n"}
}

func remoteGetURL(repo *git.Repository, name string) procexec.Result {
	remote, err := repo.Remote(name)
	if err != nil {
		return procexec.Result{ExitCode: 2, Stderr: "error: No such remote '" + name + "'\n"}
	}
	cfg := remote.Config()
	if cfg == nil || len(cfg.URLs) == 0 {
		return procexec.Result{ExitCode: 2, Stderr: "error: No such remote '" + name + "'\n"}
	}
	return procexec.Result{Stdout: strings.TrimSpace(cfg.URLs[0]) + "\n"}
}
