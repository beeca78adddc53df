package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ZebulonRouseFrantzich/venvctl/internal/activation"
	"github.com/ZebulonRouseFrantzich/venvctl/internal/config"
	"github.com/ZebulonRouseFrantzich/venvctl/internal/environ"
	"github.com/ZebulonRouseFrantzich/venvctl/internal/platform"
	"github.com/ZebulonRouseFrantzich/venvctl/internal/shell"
)

// Process hooks, replaced in tests.
var (
	stdout      io.Writer = os.Stdout
	stderr      io.Writer = os.Stderr
	environment           = os.Environ
	executable            = os.Executable
	detectShell           = shell.DetectShell
)

// session is the state shared by subcommands that read the caller's shell
// environment.
type session struct {
	env      environ.Map
	settings config.Settings
	logger   *slog.Logger
	layout   platform.Layout
	script   *shell.Script
}

func newSession() (*session, error) {
	list := environment()
	env := environ.FromList(list)

	logger := newLogger(config.DebugEnabled(env))

	// Settings problems are warnings; the remaining layers still apply.
	settings := config.DefaultSettings()
	settingsPath, err := config.SettingsPath(env)
	if err != nil {
		logger.Warn("cannot locate settings, using defaults", "error", err)
	} else if settings, err = config.LoadSettings(settingsPath, env); err != nil {
		logger.Warn("settings partly ignored", "path", settingsPath, "error", err)
	}
	logger.Debug("loaded settings", "path", settingsPath, "shell", settings.Shell, "config_name", settings.ConfigName)

	exe, err := executable()
	if err != nil {
		logger.Warn("cannot locate venvctl executable, deactivate will use PATH lookup", "error", err)
		exe = shell.DefaultCommand
	}

	layout := platform.Current()
	return &session{
		env:      env,
		settings: settings,
		logger:   logger,
		layout:   layout,
		script:   shell.NewScript(list, shell.ScriptOptions{Executable: exe, FoldCase: layout.IsWindows()}),
	}, nil
}

// newLogger logs to stderr so that stdout carries only shell code.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// controller returns an activation controller that records into the
// session's script.
func (s *session) controller() (*activation.Controller, error) {
	return activation.New(activation.Config{
		Env:        s.script,
		Layout:     &s.layout,
		Prompt:     s.script,
		Handle:     s.script,
		ConfigName: s.settings.ConfigName,
		Executable: executable,
		Logger:     s.logger,
	})
}

// resolveShell picks the dialect: the flag, then the settings, then
// detection.
func (s *session) resolveShell(ctx context.Context, flagValue string) (shell.ShellType, error) {
	name := flagValue
	if name == "" {
		name = s.settings.Shell
	}
	if name != "" {
		return shell.ParseShellType(name)
	}

	detection, err := detectShell(ctx)
	if err != nil {
		return shell.ShellUnknown, fmt.Errorf("detect shell: %w", err)
	}
	if !detection.Shell.IsValid() {
		return shell.ShellUnknown, fmt.Errorf("could not detect shell, pass --shell (supported: bash, zsh, fish, powershell)")
	}
	s.logger.Debug("detected shell", "shell", detection.Shell, "method", detection.Method)
	return detection.Shell, nil
}

// emit writes the recorded changes as shell code.
func (s *session) emit(shellType shell.ShellType) error {
	out, err := s.script.Render(shellType)
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdout, out)
	return err
}
