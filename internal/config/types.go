package config

import "fmt"

// VenvConfig is the flat key-value mapping read from an environment config
// file. Duplicate keys resolve to the last value seen.
type VenvConfig map[string]string

// Get returns the value stored under key.
func (c VenvConfig) Get(key string) (string, bool) {
	v, ok := c[key]
	return v, ok
}

// Prompt returns the configured prompt label, or "" if none is set.
func (c VenvConfig) Prompt() string {
	return c[KeyPrompt]
}

// ReadError reports a failure to read an environment config file other than
// the file being absent. It is a warning: the config returned alongside it
// holds every entry parsed before the failure.
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read config %s: %v", e.Path, e.Cause)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
