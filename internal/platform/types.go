// Package platform describes how a virtual environment is laid out on disk
// for each operating system.
//
// POSIX environments keep their executables in <root>/bin and join search
// path entries with ':'. Windows environments use <root>\Scripts and ';'.
package platform

import (
	"path/filepath"
	"runtime"
)

// Executable directory names.
const (
	BinDirPOSIX   = "bin"
	BinDirWindows = "Scripts"
)

// Layout is the OS-specific shape of a virtual environment.
type Layout struct {
	OS            string // "linux", "darwin", "windows"
	BinDir        string // "bin" or "Scripts"
	ListSeparator string // search path separator
}

// ForOS returns the layout used on the given GOOS value.
func ForOS(goos string) Layout {
	if goos == "windows" {
		return Layout{OS: goos, BinDir: BinDirWindows, ListSeparator: ";"}
	}
	return Layout{OS: goos, BinDir: BinDirPOSIX, ListSeparator: ":"}
}

// Current returns the layout for the running platform.
func Current() Layout {
	return ForOS(runtime.GOOS)
}

// ExecutableDir returns the directory holding the environment's executables.
func (l Layout) ExecutableDir(root string) string {
	return filepath.Join(root, l.BinDir)
}

// PrependPath puts dir in front of an existing search path value.
// An empty path yields dir alone, never a trailing separator.
func (l Layout) PrependPath(dir, path string) string {
	if path == "" {
		return dir
	}
	return dir + l.ListSeparator + path
}

// IsWindows returns true if the layout targets Windows.
func (l Layout) IsWindows() bool {
	return l.OS == "windows"
}
