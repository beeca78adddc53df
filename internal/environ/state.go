package environ

// State is the snapshot captured before an activation mutates the
// environment.
type State struct {
	Root   string
	Prompt string

	// PathSaved is false when no snapshot of PATH exists; deactivation then
	// leaves PATH alone.
	PathSaved bool
	OldPath   string
	HadPath   bool

	OldHome string
	HadHome bool
}

// LoadState reconstructs the snapshot of the activation recorded in env.
// ok is false when no environment is active.
//
// A persisted empty _OLD_VIRTUAL_PATH is read back as "PATH was unset".
func LoadState(env Environment) (state *State, ok bool) {
	root, ok := env.Get(EnvVirtualEnv)
	if !ok || root == "" {
		return nil, false
	}

	s := &State{Root: root}
	s.Prompt, _ = env.Get(EnvVirtualEnvPrompt)
	if old, saved := env.Get(EnvOldPath); saved {
		s.PathSaved = true
		s.OldPath = old
		s.HadPath = old != ""
	}
	s.OldHome, s.HadHome = env.Get(EnvOldHome)
	return s, true
}
