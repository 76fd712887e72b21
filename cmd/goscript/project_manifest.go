package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"goscript/internal/session"
)

// goscript.toml supplies per-project session defaults; switches layered on
// top always win.
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Script scriptConfig `toml:"script"`
}

type scriptConfig struct {
	EntryPoint       string   `toml:"entrypoint"`
	WarningLevel     *int     `toml:"warning_level"`
	WarningsAsErrors *bool    `toml:"warnings_as_errors"`
	References       []string `toml:"references"`
	// LocalReferences defaults to true: the host's library snapshot is
	// offered to every script unless the project opts out.
	LocalReferences *bool `toml:"local_references"`
}

func findGoscriptToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "goscript.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findGoscriptToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return projectConfig{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

func applyManifest(sess *session.Session, m *projectManifest, out io.Writer, cfg runConfig) error {
	sc := m.Config.Script
	if sc.EntryPoint != "" {
		if err := sess.SetEntryPoint(sc.EntryPoint); err != nil {
			return fmt.Errorf("%s: %w", m.Path, err)
		}
	}
	if sc.WarningLevel != nil {
		sess.WarningLevel = *sc.WarningLevel
	}
	if sc.WarningsAsErrors != nil {
		sess.WarningsAsErrors = *sc.WarningsAsErrors
	}
	if sc.LocalReferences == nil || *sc.LocalReferences {
		sess.AddLocalReferences()
	}
	for _, name := range sc.References {
		if err := addReference(sess, out, cfg, name); err != nil {
			return fmt.Errorf("%s: %w", m.Path, err)
		}
	}
	return nil
}
