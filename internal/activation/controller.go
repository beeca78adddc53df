package activation

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/venvctl/internal/config"
	"github.com/ZebulonRouseFrantzich/venvctl/internal/environ"
	"github.com/ZebulonRouseFrantzich/venvctl/internal/platform"
	"github.com/ZebulonRouseFrantzich/venvctl/internal/prompt"
)

// State is the controller's position in the activation state machine.
type State int

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Handle is the session's deactivation capability, e.g. a "deactivate"
// shell function.
type Handle interface {
	InstallDeactivate()
	RemoveDeactivate()
}

type nopHandle struct{}

func (nopHandle) InstallDeactivate() {}
func (nopHandle) RemoveDeactivate()  {}

// Options are the per-call activation parameters.
type Options struct {
	// VenvDir is the environment root. Empty means derive it from the
	// executable location.
	VenvDir string

	// Prompt overrides the prompt label.
	Prompt string

	// DisablePrompt leaves the prompt untouched, like a non-empty
	// VIRTUAL_ENV_DISABLE_PROMPT.
	DisablePrompt bool
}

// Config holds the controller's collaborators.
type Config struct {
	// Env is the environment to toggle. Required.
	Env environ.Environment

	// Layout defaults to platform.Current().
	Layout *platform.Layout

	// Prompt is the session's prompt slot. Defaults to an empty holder.
	Prompt prompt.Slot

	// Handle defaults to a no-op handle.
	Handle Handle

	// ConfigName defaults to config.DefaultConfigName.
	ConfigName string

	// Executable defaults to os.Executable.
	Executable func() (string, error)

	Logger *slog.Logger
}

// Controller runs activation and deactivation for one session.
type Controller struct {
	env        environ.Environment
	toggler    *environ.Toggler
	prompts    *prompt.Manager
	handle     Handle
	configName string
	executable func() (string, error)
	logger     *slog.Logger

	state           State
	current         *environ.State
	handleInstalled bool
}

// New creates a controller in the Inactive state.
func New(cfg Config) (*Controller, error) {
	if cfg.Env == nil {
		return nil, errors.New("Env is required")
	}

	layout := platform.Current()
	if cfg.Layout != nil {
		layout = *cfg.Layout
	}
	slot := cfg.Prompt
	if slot == nil {
		slot = prompt.NewHolder(nil)
	}
	handle := cfg.Handle
	if handle == nil {
		handle = nopHandle{}
	}
	configName := cfg.ConfigName
	if configName == "" {
		configName = config.DefaultConfigName
	}
	executable := cfg.Executable
	if executable == nil {
		executable = os.Executable
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Controller{
		env:        cfg.Env,
		toggler:    environ.NewToggler(cfg.Env, layout, logger),
		prompts:    prompt.NewManager(slot, logger),
		handle:     handle,
		configName: configName,
		executable: executable,
		logger:     logger,
	}, nil
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Current returns the snapshot of the active environment, or nil.
func (c *Controller) Current() *environ.State {
	return c.current
}

// HandleInstalled reports whether the deactivation capability is available.
func (c *Controller) HandleInstalled() bool {
	return c.handleInstalled
}

// Attach takes over an activation recorded in the environment by an
// earlier process of the same session, so that it can be deactivated. It
// reports whether the controller is Active afterwards.
func (c *Controller) Attach() bool {
	if c.state == Active {
		return true
	}
	s, ok := c.toggler.Active()
	if !ok {
		return false
	}

	c.prompts.Adopt()
	c.state, c.current, c.handleInstalled = Active, s, true
	c.logger.Debug("attached to active environment", "root", s.Root)
	return true
}

// Activate resolves the root and prompt and activates the environment. An
// active environment is deactivated first with its handle preserved. The
// only error is failing to resolve the root, which leaves the state
// unchanged.
func (c *Controller) Activate(opts Options) (*environ.State, error) {
	root, err := ResolveRoot(opts.VenvDir, c.executable)
	if err != nil {
		return nil, fmt.Errorf("resolve environment root: %w", err)
	}

	cfgPath := filepath.Join(root, c.configName)
	cfg, err := config.Parse(cfgPath, c.logger)
	if err != nil {
		c.logger.Warn("environment config unreadable, using defaults", "path", cfgPath, "error", err)
	}
	label := ResolvePrompt(opts.Prompt, cfg, root)
	c.logger.Debug("resolved activation parameters", "root", root, "prompt", label)

	c.Attach()
	if c.state == Active {
		c.Deactivate(true)
	}

	s := c.toggler.Activate(root, label)

	if c.promptDisabled(opts) {
		c.logger.Debug("prompt modification disabled")
	} else if err := c.prompts.Install(label); err != nil {
		c.logger.Warn("prompt not modified", "error", err)
	}

	if !c.handleInstalled {
		c.handle.InstallDeactivate()
		c.handleInstalled = true
	}

	c.state, c.current = Active, s
	return s, nil
}

// Deactivate reverts the active environment. With preserve set the
// deactivation handle stays installed; otherwise it is removed. It is a
// no-op when Inactive.
func (c *Controller) Deactivate(preserve bool) {
	if c.state == Inactive {
		c.logger.Debug("deactivate: nothing active")
		return
	}

	if err := c.prompts.Uninstall(); err != nil {
		c.logger.Warn("prompt not restored", "error", err)
	}
	c.toggler.Deactivate(c.current)
	c.state, c.current = Inactive, nil

	if !preserve && c.handleInstalled {
		c.handle.RemoveDeactivate()
		c.handleInstalled = false
	}
}

func (c *Controller) promptDisabled(opts Options) bool {
	if opts.DisablePrompt {
		return true
	}
	v, _ := c.env.Get(environ.EnvDisablePrompt)
	return v != ""
}
