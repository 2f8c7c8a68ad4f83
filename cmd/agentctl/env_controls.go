package main

import (
	"os"
	"strings"
)

func envFlagEnabled(name string) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func debugLoggingEnabled() bool {
	return envFlagEnabled("AGENTCTL_DEBUG")
}

func goGitDisabled() bool {
	return envFlagEnabled("AGENTCTL_DISABLE_GOGIT")
}
