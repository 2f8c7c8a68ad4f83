package gitx

import "strings"

// HasConflicts looks for git's conflict markers in rebase/merge output.
// git prints "CONFLICT (...)" on stdout; rebase also mentions conflicts in
// its stderr hints.
func HasConflicts(stdout string, stderr string) bool {
	return strings.Contains(stdout, "CONFLICT") ||
		strings.Contains(strings.ToLower(stderr), "conflict")
}

// IsUpToDate reports whether git said there was nothing to do
// ("Already up to date.", "Current branch x is up to date.", older
// "up-to-date" spellings).
func IsUpToDate(message string) bool {
	msg := strings.ToLower(message)
	return strings.Contains(msg, "up to date") || strings.Contains(msg, "up-to-date")
}
