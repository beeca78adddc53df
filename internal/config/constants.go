package config

// Environment config file and keys
const (
	// DefaultConfigName is the file name of the environment config at the
	// environment root.
	DefaultConfigName = "pyvenv.cfg"

	// KeyPrompt is the only environment config key consumed by activation.
	KeyPrompt = "prompt"
)

// User settings locations
const (
	// EnvSettingsPath overrides the user settings file location.
	EnvSettingsPath = "VENVCTL_CONFIG"

	// EnvDebug enables debug logging when non-empty.
	EnvDebug = "VENVCTL_DEBUG"

	settingsDirName  = "venvctl"
	settingsFileName = "config.toml"
)

// quoteChars are stripped from both ends of a value that starts with one.
const quoteChars = `'"`
