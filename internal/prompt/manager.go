package prompt

import (
	"fmt"
	"io"
	"log/slog"
)

// Manager installs and removes the environment prefix on a Slot.
type Manager struct {
	slot     Slot
	saved    Renderer
	captured bool
	logger   *slog.Logger
}

// NewManager creates a manager for slot. A nil logger discards.
func NewManager(slot Slot, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{slot: slot, logger: logger}
}

// Install captures the slot's renderer and replaces it with one that prints
// "(<prefix>) " first. Installing while already installed swaps the prefix
// and keeps the originally captured renderer, so prefixes never stack.
func (m *Manager) Install(prefix string) error {
	original := m.saved
	if !m.captured {
		original = m.slot.Current()
	}

	if err := m.slot.Replace(&Prefixed{Prefix: prefix, Delegate: original}); err != nil {
		return fmt.Errorf("install prompt prefix: %w", err)
	}

	m.saved, m.captured = original, true
	m.logger.Debug("prompt prefix installed", "prefix", prefix)
	return nil
}

// Uninstall restores the captured renderer. It is a no-op when nothing was
// captured, e.g. when prompt modification was disabled.
func (m *Manager) Uninstall() error {
	if !m.captured {
		return nil
	}
	if err := m.slot.Replace(m.saved); err != nil {
		return fmt.Errorf("restore prompt: %w", err)
	}

	m.saved, m.captured = nil, false
	m.logger.Debug("prompt restored")
	return nil
}

// Adopt takes over a prefix installed by an earlier step of the same
// session: if the slot holds a *Prefixed renderer, its delegate becomes the
// captured original. It reports whether a prefix is now managed.
func (m *Manager) Adopt() bool {
	if m.captured {
		return true
	}
	p, ok := m.slot.Current().(*Prefixed)
	if !ok {
		return false
	}
	m.saved, m.captured = p.Delegate, true
	m.logger.Debug("adopted installed prompt prefix", "prefix", p.Prefix)
	return true
}

// Installed reports whether a prefix is currently managed.
func (m *Manager) Installed() bool {
	return m.captured
}

// Render renders the slot's current prompt. Render failures are logged and
// whatever text was produced is returned.
func (m *Manager) Render() string {
	r := m.slot.Current()
	if r == nil {
		return ""
	}
	out, err := r.Render()
	if err != nil {
		m.logger.Warn("prompt render failed", "error", err)
	}
	return out
}
