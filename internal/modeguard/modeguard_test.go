package modeguard

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"agent":   ModeAgent,
		" AGENT ": ModeAgent,
		"":        ModeUser,
		"user":    ModeUser,
		"agents":  ModeUser,
	}
	for raw, want := range tests {
		if got := ParseMode(raw); got != want {
			t.Fatalf("ParseMode(%q): expected %q, got %q", raw, want, got)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvVar, "agent")
	if FromEnv() != ModeAgent {
		t.Fatalf("expected agent mode from environment")
	}
}

func TestCheckAgentMode(t *testing.T) {
	for _, op := range []string{"init", "rm", "clean", "reset"} {
		err := Check(ModeAgent, op)
		var denied *DeniedError
		if !errors.As(err, &denied) {
			t.Fatalf("expected %s to be denied, got %v", op, err)
		}
		want := "Denied: '" + op + "' is user-only (AGENTCTL_MODE=agent)."
		if err.Error() != want {
			t.Fatalf("expected %q, got %q", want, err.Error())
		}
	}
	for _, op := range []string{"sync", "list", "pr comments", "doctor"} {
		if err := Check(ModeAgent, op); err != nil {
			t.Fatalf("expected %s to be allowed in agent mode, got %v", op, err)
		}
	}
}

func TestCheckUserModeAllowsEverything(t *testing.T) {
	for _, op := range UserOnly() {
		if err := Check(ModeUser, op); err != nil {
			t.Fatalf("expected %s to be allowed in user mode, got %v", op, err)
		}
	}
}

func TestUserOnly(t *testing.T) {
	want := []string{"clean", "init", "reset", "rm"}
	if got := UserOnly(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
