package environ

import (
	"io"
	"log/slog"

	"github.com/ZebulonRouseFrantzich/venvctl/internal/platform"
)

// Toggler applies and reverts an environment activation.
type Toggler struct {
	env    Environment
	layout platform.Layout
	logger *slog.Logger

	// current is the snapshot taken by this toggler's last Activate. It
	// is exact where the persisted copy is not: an empty PATH that was set
	// reads back from the environment as unset.
	current *State
}

// NewToggler creates a toggler writing to env. A nil logger discards.
func NewToggler(env Environment, layout platform.Layout, logger *slog.Logger) *Toggler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Toggler{env: env, layout: layout, logger: logger}
}

// Active reports the activation currently recorded in the environment.
// The in-memory snapshot is preferred while the environment still shows
// the root it activated.
func (t *Toggler) Active() (*State, bool) {
	if t.current != nil {
		if root, _ := t.env.Get(EnvVirtualEnv); root == t.current.Root {
			return t.current, true
		}
		t.current = nil
	}
	return LoadState(t.env)
}

// Activate makes root the active environment and returns the snapshot it
// replaced. An environment that is already active is deactivated first so
// search path entries never accumulate.
func (t *Toggler) Activate(root, prompt string) *State {
	if prev, ok := t.Active(); ok {
		t.logger.Debug("deactivating previous environment", "root", prev.Root)
		t.Deactivate(prev)
	}

	path, hadPath := t.env.Get(EnvPath)
	s := &State{
		Root:      root,
		Prompt:    prompt,
		PathSaved: true,
		OldPath:   path,
		HadPath:   hadPath,
	}

	binDir := t.layout.ExecutableDir(root)
	t.env.Set(EnvOldPath, path)
	t.env.Set(EnvPath, t.layout.PrependPath(binDir, path))

	if home, ok := t.env.Get(EnvHome); ok {
		s.OldHome, s.HadHome = home, true
		t.env.Set(EnvOldHome, home)
		t.env.Unset(EnvHome)
		t.logger.Debug("cleared home override", "var", EnvHome)
	}

	t.env.Set(EnvVirtualEnv, root)
	t.env.Set(EnvVirtualEnvPrompt, prompt)
	t.logger.Debug("environment activated", "root", root, "bin", binDir, "prompt", prompt)
	t.current = s
	return s
}

// Deactivate restores the snapshot in s. A nil s means the snapshot from
// Active. Any piece of the snapshot that is missing is skipped, so
// deactivating when nothing is active only removes variables that are
// already absent.
func (t *Toggler) Deactivate(s *State) {
	if s == nil {
		s, _ = t.Active()
	}
	t.current = nil

	if s != nil {
		if s.PathSaved {
			if s.HadPath {
				t.env.Set(EnvPath, s.OldPath)
			} else {
				t.env.Unset(EnvPath)
			}
		}
		if s.HadHome {
			t.env.Set(EnvHome, s.OldHome)
		}
		t.logger.Debug("environment deactivated", "root", s.Root)
	}

	for _, key := range []string{EnvOldPath, EnvOldHome, EnvVirtualEnv, EnvVirtualEnvPrompt} {
		t.env.Unset(key)
	}
}
