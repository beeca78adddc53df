// Package prompt manages the interactive prompt prefix that marks an active
// environment.
//
// A Renderer produces prompt text. A Slot holds the renderer a session
// currently uses. The Manager swaps the slot's renderer for a Prefixed one
// that prints "(<prefix>) " ahead of the original and swaps the original
// back on Uninstall.
package prompt

import "fmt"

// Renderer produces the text of an interactive prompt.
type Renderer interface {
	Render() (string, error)
}

// Static renders a fixed string.
type Static string

func (s Static) Render() (string, error) {
	return string(s), nil
}

// Func adapts a function to Renderer.
type Func func() (string, error)

func (f Func) Render() (string, error) {
	return f()
}

// Prefixed renders "(<Prefix>) " followed by the output of Delegate.
type Prefixed struct {
	Prefix   string
	Delegate Renderer
}

// Label returns the text placed between the parentheses.
func (p *Prefixed) Label() string {
	return p.Prefix
}

// Render returns the prefix even when the delegate fails, together with the
// delegate's error.
func (p *Prefixed) Render() (string, error) {
	head := "(" + p.Prefix + ") "
	if p.Delegate == nil {
		return head, nil
	}
	rest, err := p.Delegate.Render()
	if err != nil {
		return head, fmt.Errorf("render original prompt: %w", err)
	}
	return head + rest, nil
}

// Slot is the place a session looks up its prompt renderer.
type Slot interface {
	Current() Renderer
	Replace(r Renderer) error
}

// Holder is an in-memory Slot.
type Holder struct {
	r Renderer
}

// NewHolder returns a slot holding r.
func NewHolder(r Renderer) *Holder {
	return &Holder{r: r}
}

func (h *Holder) Current() Renderer {
	return h.r
}

func (h *Holder) Replace(r Renderer) error {
	h.r = r
	return nil
}
