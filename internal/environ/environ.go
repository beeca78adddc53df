package environ

import (
	"os"
	"sort"
	"strings"
)

// Environment is a mutable set of environment variables.
type Environment interface {
	// Get returns the value of key and whether it is set.
	Get(key string) (string, bool)
	// Set assigns value to key.
	Set(key, value string)
	// Unset removes key. Removing an unset key is a no-op.
	Unset(key string)
}

// Process is the environment of the running process.
type Process struct{}

func (Process) Get(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Set ignores the error from os.Setenv, which only fails for keys the
// toggler never uses.
func (Process) Set(key, value string) {
	_ = os.Setenv(key, value)
}

func (Process) Unset(key string) {
	_ = os.Unsetenv(key)
}

// Map is an in-memory environment.
type Map map[string]string

// FromList builds a Map from "KEY=value" entries such as os.Environ().
// Entries without '=' are dropped.
func FromList(entries []string) Map {
	m := Map{}
	for _, e := range entries {
		k, v, ok := strings.Cut(e, "=")
		if !ok || k == "" {
			continue
		}
		m[k] = v
	}
	return m
}

func (m Map) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m Map) Set(key, value string) {
	m[key] = value
}

func (m Map) Unset(key string) {
	delete(m, key)
}

// Clone returns an independent copy of m.
func (m Map) Clone() Map {
	c := make(Map, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// List returns the entries as sorted "KEY=value" strings.
func (m Map) List() []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
