// Package config loads per-repository defaults from .agentctl.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/mrbonezy/agentctl/internal/gitx"
)

// FileName is looked up at the repository root.
const FileName = ".agentctl.yaml"

const (
	DefaultCount    = 2
	DefaultPrefix   = "agent"
	DefaultWorkdir  = "worktrees"
	DefaultStrategy = string(gitx.StrategyRebase)
)

// Config holds fleet defaults. Zero values mean "not set"; Default fills them.
type Config struct {
	Prefix   string `yaml:"prefix,omitempty"`
	Workdir  string `yaml:"workdir,omitempty"`
	Count    int    `yaml:"count,omitempty"`
	Base     string `yaml:"base,omitempty"`
	Remote   string `yaml:"remote,omitempty"`
	Strategy string `yaml:"strategy,omitempty"`
}

func Default() Config {
	return Config{
		Prefix:   DefaultPrefix,
		Workdir:  DefaultWorkdir,
		Count:    DefaultCount,
		Remote:   gitx.DefaultRemote,
		Strategy: DefaultStrategy,
	}
}

// Load reads <repoRoot>/.agentctl.yaml over the defaults. A missing file is
// not an error; path is empty in that case.
func Load(repoRoot string) (Config, string, error) {
	cfg := Default()
	path := filepath.Join(repoRoot, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, "", nil
		}
		return Config{}, "", fmt.Errorf("read %s: %w", path, err)
	}

	var file Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, "", fmt.Errorf("parse %s: %w", path, err)
	}
	cfg = cfg.Merge(file)
	if err := cfg.Validate(); err != nil {
		return Config{}, "", fmt.Errorf("%s: %w", path, err)
	}
	return cfg, path, nil
}

// Merge returns c with every field set in override replacing it.
func (c Config) Merge(override Config) Config {
	if v := strings.TrimSpace(override.Prefix); v != "" {
		c.Prefix = v
	}
	if v := strings.TrimSpace(override.Workdir); v != "" {
		c.Workdir = v
	}
	if override.Count != 0 {
		c.Count = override.Count
	}
	if v := strings.TrimSpace(override.Base); v != "" {
		c.Base = v
	}
	if v := strings.TrimSpace(override.Remote); v != "" {
		c.Remote = v
	}
	if v := strings.TrimSpace(override.Strategy); v != "" {
		c.Strategy = v
	}
	return c
}

// Validate applies the same rules as the command-line flags.
func (c Config) Validate() error {
	if c.Count < 1 {
		return fmt.Errorf("%w: count must be >= 1", gitx.ErrInvalidArgument)
	}
	if err := gitx.ValidatePrefix(c.Prefix); err != nil {
		return err
	}
	if err := gitx.ValidateWorkdir(c.Workdir); err != nil {
		return err
	}
	if strings.TrimSpace(c.Remote) == "" {
		return fmt.Errorf("%w: remote cannot be empty", gitx.ErrInvalidArgument)
	}
	if _, err := gitx.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	return nil
}
