package shell

import (
	"fmt"
	"strings"
)

// ShellType represents a supported shell
type ShellType string

const (
	// ShellBash represents the Bash shell
	ShellBash ShellType = "bash"
	// ShellZsh represents the Z shell
	ShellZsh ShellType = "zsh"
	// ShellFish represents the Fish shell
	ShellFish ShellType = "fish"
	// ShellPowerShell represents PowerShell (pwsh or Windows PowerShell)
	ShellPowerShell ShellType = "powershell"
	// ShellUnknown represents an unknown or unsupported shell
	ShellUnknown ShellType = "unknown"
)

// String returns the string representation of the shell type
func (s ShellType) String() string {
	return string(s)
}

// IsValid returns true if the shell type is supported
func (s ShellType) IsValid() bool {
	switch s {
	case ShellBash, ShellZsh, ShellFish, ShellPowerShell:
		return true
	default:
		return false
	}
}

// IsPOSIX returns true for shells that share sh syntax
func (s ShellType) IsPOSIX() bool {
	return s == ShellBash || s == ShellZsh
}

// ParseShellType parses a user-supplied shell name.
func ParseShellType(name string) (ShellType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bash":
		return ShellBash, nil
	case "zsh":
		return ShellZsh, nil
	case "fish":
		return ShellFish, nil
	case "powershell", "pwsh":
		return ShellPowerShell, nil
	default:
		return ShellUnknown, &UnsupportedShellError{Shell: name}
	}
}

// Config holds configuration for the shell manager
type Config struct {
	// Command is the venvctl command written into rc files (default: venvctl)
	Command string
}

// SetupOptions holds options for shell integration setup
type SetupOptions struct {
	// Force skips duplicate detection and adds the hook line unconditionally
	Force bool
	// Backup creates a backup of the rc file before modification
	Backup bool
	// DryRun shows what would be done without making changes
	DryRun bool
}

// SetupResult contains the result of shell integration setup
type SetupResult struct {
	// Shell is the detected or specified shell type
	Shell ShellType
	// RCFile is the path to the shell's configuration file
	RCFile string
	// Added indicates if the hook line was added
	Added bool
	// AlreadyPresent indicates if the hook was already configured
	AlreadyPresent bool
	// BackupPath is the path to the backup file (if created)
	BackupPath string
	// ActivationCommand is the line that was added
	ActivationCommand string
}

// DetectionResult contains the result of shell detection
type DetectionResult struct {
	// Shell is the detected shell type
	Shell ShellType
	// Method describes how the shell was detected
	Method string
	// ShellPath is the filesystem path to the shell binary
	ShellPath string
	// Confidence is the confidence level (high, medium, none)
	Confidence string
}

// UnsupportedShellError represents an unsupported shell error
type UnsupportedShellError struct {
	Shell string
}

func (e *UnsupportedShellError) Error() string {
	return fmt.Sprintf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", e.Shell)
}

// RCFileError represents an error with shell rc file operations
type RCFileError struct {
	Path    string
	Message string
	Cause   error
}

func (e *RCFileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rc file error (%s): %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("rc file error (%s): %s", e.Path, e.Message)
}

func (e *RCFileError) Unwrap() error {
	return e.Cause
}
