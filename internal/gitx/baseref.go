package gitx

import (
	"strings"

	"github.com/mrbonezy/agentctl/internal/procexec"
)

const DefaultRemote = "origin"

// ResolveBaseRef picks the ref new and synced branches should track.
//
// An explicit base wins unchanged. Otherwise the first hit of: the remote's
// symbolic HEAD, <remote>/main, <remote>/master, and finally local "main".
// It never fails; a ref that does not exist surfaces in the command using it.
func ResolveBaseRef(r procexec.Runner, dir string, remote string, explicit string) string {
	if base := strings.TrimSpace(explicit); base != "" {
		return base
	}
	remote = strings.TrimSpace(remote)
	if remote == "" {
		remote = DefaultRemote
	}

	if res, err := r.Run(dir, "git", "symbolic-ref", "-q", "refs/remotes/"+remote+"/HEAD"); err == nil && res.OK() {
		if ref := strings.TrimSpace(res.Stdout); ref != "" {
			return strings.TrimPrefix(ref, "refs/remotes/")
		}
	}
	for _, name := range []string{"main", "master"} {
		candidate := remote + "/" + name
		if res, err := r.Run(dir, "git", "rev-parse", "--verify", candidate); err == nil && res.OK() {
			return candidate
		}
	}
	return "main"
}
