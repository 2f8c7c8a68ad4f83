package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrbonezy/agentctl/internal/gitx"
)

func writeConfig(t *testing.T, dir string, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, path, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" {
		t.Fatalf("expected no config path, got %q", path)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.Count != 2 || cfg.Prefix != "agent" || cfg.Workdir != "worktrees" || cfg.Remote != "origin" || cfg.Strategy != "rebase" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	want := writeConfig(t, dir, "prefix: bots\ncount: 4\nbase: origin/develop\nstrategy: merge\n")

	cfg, path, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != want {
		t.Fatalf("expected path %q, got %q", want, path)
	}
	if cfg.Prefix != "bots" || cfg.Count != 4 || cfg.Base != "origin/develop" || cfg.Strategy != "merge" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Workdir != DefaultWorkdir || cfg.Remote != "origin" {
		t.Fatalf("expected untouched fields to keep defaults, got %+v", cfg)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "")
	cfg, _, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "prefix: bots\nworktree_count: 3\n")
	_, _, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "worktree_count") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadValidates(t *testing.T) {
	tests := map[string]string{
		"negative count": "count: -1\n",
		"bad strategy":   "strategy: squash\n",
		"escaping dir":   "workdir: ../elsewhere\n",
		"bad prefix":     "prefix: -bots\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, content)
			if _, _, err := Load(dir); !errors.Is(err, gitx.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	got := Default().Merge(Config{Prefix: " ci ", Count: 5})
	if got.Prefix != "ci" || got.Count != 5 || got.Workdir != DefaultWorkdir {
		t.Fatalf("unexpected merge result %+v", got)
	}
}
