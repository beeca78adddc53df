package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Settings holds the user's venvctl preferences.
type Settings struct {
	// Shell is the dialect emitted when --shell is not given. Empty means
	// detect.
	Shell string `toml:"shell" env:"VENVCTL_SHELL"`

	// ConfigName is the environment config file name at the root.
	ConfigName string `toml:"config_name" env:"VENVCTL_CONFIG_NAME"`

	// PromptScript is an optional Lua script defining prompt().
	PromptScript string `toml:"prompt_script" env:"VENVCTL_PROMPT_SCRIPT"`

	// DisablePrompt leaves the prompt untouched on every activation.
	DisablePrompt bool `toml:"disable_prompt" env:"VENVCTL_DISABLE_PROMPT"`

	// Debug enables debug logging. Set when VENVCTL_DEBUG is non-empty.
	Debug bool `toml:"-"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{ConfigName: DefaultConfigName}
}

// SettingsPath returns the user settings file location for the given
// environment: $VENVCTL_CONFIG, then $XDG_CONFIG_HOME/venvctl/config.toml,
// then ~/.config/venvctl/config.toml.
func SettingsPath(environ map[string]string) (string, error) {
	if p := environ[EnvSettingsPath]; p != "" {
		return p, nil
	}
	if xdg := environ["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, settingsDirName, settingsFileName), nil
	}

	home := environ["HOME"]
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
	}
	return filepath.Join(home, ".config", settingsDirName, settingsFileName), nil
}

// DebugEnabled reports whether VENVCTL_DEBUG is set to anything.
func DebugEnabled(environ map[string]string) bool {
	return environ[EnvDebug] != ""
}

// LoadSettings layers defaults, the TOML file at path (if it exists), and
// VENVCTL_* variables from environ, in that order.
//
// The returned settings are always usable. A layer that fails to decode is
// skipped and its error returned alongside the settings built from the
// other layers.
func LoadSettings(path string, environ map[string]string) (Settings, error) {
	s := DefaultSettings()
	var errs []error

	if path != "" {
		fromFile := s
		if _, err := toml.DecodeFile(path, &fromFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, fmt.Errorf("decode settings %s: %w", path, err))
			}
		} else {
			s = fromFile
		}
	}

	fromEnv := s
	if err := env.ParseWithOptions(&fromEnv, env.Options{Environment: environ}); err != nil {
		errs = append(errs, fmt.Errorf("parse env: %w", err))
	} else {
		s = fromEnv
	}

	if s.ConfigName == "" {
		s.ConfigName = DefaultConfigName
	}
	s.Debug = DebugEnabled(environ)
	return s, errors.Join(errs...)
}
