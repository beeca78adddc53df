package shell

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewManager(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "Valid config", config: Config{Command: DefaultCommand}},
		{name: "Empty command", config: Config{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, err := NewManager(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewManager() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && manager == nil {
				t.Error("NewManager() returned nil manager")
			}
		})
	}
}

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	m, err := NewManager(Config{Command: DefaultCommand})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return m, home
}

func TestManager_SetupIntegration(t *testing.T) {
	t.Run("Creates missing rc file", func(t *testing.T) {
		m, home := newTestManager(t)

		result, err := m.SetupIntegration(ShellZsh, SetupOptions{})
		if err != nil {
			t.Fatalf("SetupIntegration() error = %v", err)
		}
		if !result.Added || result.AlreadyPresent {
			t.Errorf("result = %+v, want Added", result)
		}
		if result.RCFile != filepath.Join(home, ".zshrc") {
			t.Errorf("RCFile = %v", result.RCFile)
		}

		content, _ := os.ReadFile(result.RCFile)
		if !strings.Contains(string(content), `eval "$(venvctl hook zsh)"`) {
			t.Errorf("rc file missing hook line:\n%s", content)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		m, home := newTestManager(t)
		rc := filepath.Join(home, ".bashrc")
		if err := os.WriteFile(rc, []byte("export A=1\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := m.SetupIntegration(ShellBash, SetupOptions{}); err != nil {
			t.Fatal(err)
		}
		result, err := m.SetupIntegration(ShellBash, SetupOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if !result.AlreadyPresent || result.Added {
			t.Errorf("second run result = %+v, want AlreadyPresent", result)
		}

		content, _ := os.ReadFile(rc)
		if n := strings.Count(string(content), ActivationMarker); n != 1 {
			t.Errorf("hook line appears %d times, want 1", n)
		}
	})

	t.Run("Force adds again", func(t *testing.T) {
		m, home := newTestManager(t)
		if _, err := m.SetupIntegration(ShellFish, SetupOptions{}); err != nil {
			t.Fatal(err)
		}
		result, err := m.SetupIntegration(ShellFish, SetupOptions{Force: true})
		if err != nil {
			t.Fatal(err)
		}
		if !result.Added {
			t.Errorf("result = %+v, want Added", result)
		}

		content, _ := os.ReadFile(filepath.Join(home, ".config", "fish", "config.fish"))
		if n := strings.Count(string(content), ActivationMarker); n != 2 {
			t.Errorf("hook line appears %d times, want 2", n)
		}
	})

	t.Run("Backup", func(t *testing.T) {
		m, home := newTestManager(t)
		rc := filepath.Join(home, ".bashrc")
		if err := os.WriteFile(rc, []byte("original\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		result, err := m.SetupIntegration(ShellBash, SetupOptions{Backup: true})
		if err != nil {
			t.Fatal(err)
		}
		if result.BackupPath != rc+BackupSuffix {
			t.Errorf("BackupPath = %q, want %q", result.BackupPath, rc+BackupSuffix)
		}
		backup, _ := os.ReadFile(result.BackupPath)
		if string(backup) != "original\n" {
			t.Errorf("backup content = %q", backup)
		}
	})

	t.Run("Dry run changes nothing", func(t *testing.T) {
		m, home := newTestManager(t)

		result, err := m.SetupIntegration(ShellBash, SetupOptions{DryRun: true, Backup: true})
		if err != nil {
			t.Fatal(err)
		}
		if result.Added || result.BackupPath != "" {
			t.Errorf("dry run result = %+v", result)
		}
		if result.ActivationCommand != `eval "$(venvctl hook bash)"` {
			t.Errorf("ActivationCommand = %q", result.ActivationCommand)
		}
		if _, err := os.Stat(filepath.Join(home, ".bashrc")); !os.IsNotExist(err) {
			t.Error("dry run created the rc file")
		}
	})

	t.Run("Unsupported shell", func(t *testing.T) {
		m, _ := newTestManager(t)
		_, err := m.SetupIntegration(ShellUnknown, SetupOptions{})
		var unsupported *UnsupportedShellError
		if !errors.As(err, &unsupported) {
			t.Errorf("error = %v, want *UnsupportedShellError", err)
		}
	})
}

func TestManager_DetectAndSetup(t *testing.T) {
	t.Run("Uses detected shell", func(t *testing.T) {
		m, home := newTestManager(t)
		t.Setenv("SHELL", "/bin/zsh")

		result, err := m.DetectAndSetup(context.Background(), SetupOptions{})
		if err != nil {
			t.Fatalf("DetectAndSetup() error = %v", err)
		}
		if result.Shell != ShellZsh || result.RCFile != filepath.Join(home, ".zshrc") {
			t.Errorf("result = %+v", result)
		}
	})

	t.Run("Undetectable shell", func(t *testing.T) {
		m, _ := newTestManager(t)
		t.Setenv("SHELL", "/bin/ksh")
		stubAncestors(t)

		_, err := m.DetectAndSetup(context.Background(), SetupOptions{})
		var unsupported *UnsupportedShellError
		if !errors.As(err, &unsupported) {
			t.Errorf("error = %v, want *UnsupportedShellError", err)
		}
	})
}
