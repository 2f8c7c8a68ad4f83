// Package modeguard decides which commands an automated agent may run.
package modeguard

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// EnvVar selects the operating mode for the whole process.
const EnvVar = "AGENTCTL_MODE"

type Mode string

const (
	ModeUser  Mode = "user"
	ModeAgent Mode = "agent"
)

// ParseMode maps the raw env value to a Mode. Only "agent" restricts;
// anything else, including empty, is user mode.
func ParseMode(value string) Mode {
	if strings.EqualFold(strings.TrimSpace(value), string(ModeAgent)) {
		return ModeAgent
	}
	return ModeUser
}

func FromEnv() Mode {
	return ParseMode(os.Getenv(EnvVar))
}

// userOnly lists the operations that change worktree topology or branch
// existence. sync is intentionally absent.
var userOnly = map[string]bool{
	"init":  true,
	"rm":    true,
	"clean": true,
	"reset": true,
}

// DeniedError is returned when mode forbids op.
type DeniedError struct {
	Op   string
	Mode Mode
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("Denied: '%s' is user-only (%s=%s).", e.Op, EnvVar, e.Mode)
}

// Allowed reports whether op may run in mode.
func Allowed(mode Mode, op string) bool {
	return mode != ModeAgent || !userOnly[op]
}

// Check returns a *DeniedError when op may not run in mode.
func Check(mode Mode, op string) error {
	if Allowed(mode, op) {
		return nil
	}
	return &DeniedError{Op: op, Mode: mode}
}

// UserOnly returns the restricted operations in a stable order.
func UserOnly() []string {
	ops := make([]string, 0, len(userOnly))
	for op := range userOnly {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}
