package gitx

import (
	"strings"

	"github.com/mrbonezy/agentctl/internal/procexec"
)

// Manager creates, removes and prunes worktrees and their branches in one
// repository. Paths handed to it may be relative to Root.
type Manager struct {
	runner procexec.Runner
	root   string
}

func NewManager(runner procexec.Runner, root string) *Manager {
	return &Manager{runner: runner, root: root}
}

func (m *Manager) Root() string {
	return m.root
}

func (m *Manager) git(args ...string) (procexec.Result, error) {
	return m.runner.Run(m.root, "git", args...)
}

func (m *Manager) gitChecked(args ...string) (procexec.Result, error) {
	return procexec.RunChecked(m.runner, m.root, "git", args...)
}

// Prune drops registry entries whose directory is gone.
func (m *Manager) Prune() error {
	_, err := m.gitChecked("worktree", "prune")
	return err
}

// Add creates branch at base and checks it out into a new worktree at path.
// The caller makes sure neither the path nor the branch exist yet.
func (m *Manager) Add(path string, branch string, base string) error {
	_, err := m.gitChecked("worktree", "add", "-b", branch, path, base)
	return err
}

// Remove force-removes the worktree at path, discarding local changes.
func (m *Manager) Remove(path string) error {
	_, err := m.gitChecked("worktree", "remove", "--force", path)
	return err
}

func (m *Manager) BranchExists(name string) (bool, error) {
	res, err := m.git("show-ref", "--verify", "--quiet", "refs/heads/"+name)
	if err != nil {
		return false, err
	}
	return res.OK(), nil
}

// ListBranches returns local branches matching a git glob such as
// "agent/task-*". A failing listing yields no branches.
func (m *Manager) ListBranches(pattern string) ([]string, error) {
	res, err := m.git("branch", "--list", "--format=%(refname:lstrip=2)", pattern)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, nil
	}
	var branches []string
	for _, raw := range strings.Split(res.Stdout, "\n") {
		name := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(raw), "*+ "))
		if name == "" {
			continue
		}
		branches = append(branches, name)
	}
	return branches, nil
}

// DeleteLocalBranch deletes name (-D when force, -d otherwise). The returned
// error describes the failure; callers looping over branches keep going.
func (m *Manager) DeleteLocalBranch(name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	_, err := m.gitChecked("branch", flag, name)
	return err
}

// DeleteRemoteBranch removes name from remote. A branch that was never
// pushed fails the same way as any other remote error.
func (m *Manager) DeleteRemoteBranch(name string, remote string) error {
	_, err := m.gitChecked("push", remote, "--delete", name)
	return err
}

func (m *Manager) Fetch(remote string) error {
	_, err := m.gitChecked("fetch", remote, "--prune")
	return err
}

// RemoteConfigured reports whether remote has a URL configured.
func (m *Manager) RemoteConfigured(remote string) (bool, error) {
	res, err := m.git("remote", "get-url", remote)
	if err != nil {
		return false, err
	}
	return res.OK() && strings.TrimSpace(res.Stdout) != "", nil
}

func (m *Manager) List() ([]Worktree, error) {
	return ListWorktrees(m.runner, m.root)
}

func (m *Manager) ListHuman() (string, error) {
	return ListWorktreesHuman(m.runner, m.root)
}
