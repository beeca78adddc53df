package environ

// Variables read or written by the toggler
const (
	// EnvPath is the executable search path.
	EnvPath = "PATH"

	// EnvHome is the home override cleared while an environment is active.
	EnvHome = "PYTHONHOME"

	// EnvVirtualEnv holds the active environment root.
	EnvVirtualEnv = "VIRTUAL_ENV"

	// EnvVirtualEnvPrompt holds the active environment prompt label.
	EnvVirtualEnvPrompt = "VIRTUAL_ENV_PROMPT"

	// EnvDisablePrompt disables prompt modification when non-empty.
	EnvDisablePrompt = "VIRTUAL_ENV_DISABLE_PROMPT"
)

// Bookkeeping variables holding the pre-activation snapshot
const (
	EnvOldPath = "_OLD_VIRTUAL_PATH"
	EnvOldHome = "_OLD_VIRTUAL_PYTHONHOME"
)
