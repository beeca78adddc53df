package shell

// Prompt markers. Each dialect exports one while a prompt prefix is
// installed so later venvctl processes can see it.
const (
	// EnvPromptMarkerPOSIX holds the saved PS1 for bash and zsh.
	EnvPromptMarkerPOSIX = "_OLD_VIRTUAL_PS1"

	// EnvPromptMarkerFish is set while fish_prompt is wrapped.
	EnvPromptMarkerFish = "_OLD_FISH_PROMPT_OVERRIDE"

	// EnvPromptMarkerPowerShell is set while the prompt function is wrapped.
	EnvPromptMarkerPowerShell = "_OLD_VIRTUAL_PROMPT"
)

// Shell function and command names
const (
	// DefaultCommand is the command name written into rc files.
	DefaultCommand = "venvctl"

	// DeactivateFunc is the shell function installed by activation.
	DeactivateFunc = "deactivate"

	// ActivateFunc is the shell function defined by the hook.
	ActivateFunc = "venv_activate"
)

// Activation and backup markers
const (
	// ActivationMarker is the string that must appear in rc file lines.
	ActivationMarker = "venvctl hook"

	// BackupSuffix is appended to rc files backed up before modification.
	BackupSuffix = ".venvctl-backup"
)
