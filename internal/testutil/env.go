// Package testutil provides utilities for testing venvctl in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Env holds the directories created by SetupTestEnv.
type Env struct {
	Root      string
	Home      string
	ConfigDir string
	Settings  string
}

// SetupTestEnv points HOME, XDG_CONFIG_HOME and VENVCTL_CONFIG at temp
// directories and clears the variables venvctl toggles.
// This keeps tests away from the user's rc files and an activation
// inherited from the shell running the tests.
//
// The cleanup is handled by t.TempDir() and t.Setenv().
func SetupTestEnv(t *testing.T) *Env {
	t.Helper()

	tmpDir := t.TempDir()
	e := &Env{
		Root:      tmpDir,
		Home:      filepath.Join(tmpDir, "home"),
		ConfigDir: filepath.Join(tmpDir, "home", ".config"),
	}
	e.Settings = filepath.Join(e.ConfigDir, "venvctl", "config.toml")

	for _, dir := range []string{e.Home, e.ConfigDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", e.Home)
	t.Setenv("USERPROFILE", e.Home)
	t.Setenv("XDG_CONFIG_HOME", e.ConfigDir)
	t.Setenv("VENVCTL_CONFIG", e.Settings)

	for _, key := range []string{
		"VIRTUAL_ENV",
		"VIRTUAL_ENV_PROMPT",
		"VIRTUAL_ENV_DISABLE_PROMPT",
		"PYTHONHOME",
		"_OLD_VIRTUAL_PATH",
		"_OLD_VIRTUAL_PYTHONHOME",
		"_OLD_VIRTUAL_PS1",
		"VENVCTL_SHELL",
		"VENVCTL_CONFIG_NAME",
		"VENVCTL_PROMPT_SCRIPT",
		"VENVCTL_DISABLE_PROMPT",
		"VENVCTL_DEBUG",
	} {
		unsetenv(t, key)
	}

	return e
}

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	// t.Setenv registers the restore.
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
}
