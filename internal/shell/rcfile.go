package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// GetRCFilePath returns the path to the shell's RC file
func GetRCFilePath(shell ShellType) (string, error) {
	if err := ValidateShell(shell); err != nil {
		return "", err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	var rcPath string
	switch shell {
	case ShellBash:
		rcPath = filepath.Join(homeDir, ".bashrc")
	case ShellZsh:
		rcPath = filepath.Join(homeDir, ".zshrc")
	case ShellFish:
		rcPath = filepath.Join(homeDir, ".config", "fish", "config.fish")
	case ShellPowerShell:
		rcPath = filepath.Join(homeDir, ".config", "powershell", "Microsoft.PowerShell_profile.ps1")
	default:
		return "", &UnsupportedShellError{Shell: shell.String()}
	}

	return rcPath, nil
}

// validateRCPath rejects relative paths and paths containing ".." elements.
func validateRCPath(rcPath string) error {
	if !filepath.IsAbs(rcPath) {
		return &RCFileError{Path: rcPath, Message: "rc file path must be absolute"}
	}
	for _, part := range strings.Split(filepath.ToSlash(rcPath), "/") {
		if part == ".." {
			return &RCFileError{Path: rcPath, Message: "path traversal not allowed"}
		}
	}
	return nil
}

// RCFileExists checks if the RC file exists
func RCFileExists(rcPath string) (bool, error) {
	info, err := os.Lstat(rcPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, &RCFileError{
			Path:    rcPath,
			Message: "failed to stat file",
			Cause:   err,
		}
	}

	if info.Mode()&fs.ModeSymlink != 0 {
		return false, &RCFileError{
			Path:    rcPath,
			Message: "rc file is a symlink",
		}
	}

	// Check if it's a regular file
	if !info.Mode().IsRegular() {
		return false, &RCFileError{
			Path:    rcPath,
			Message: "not a regular file",
		}
	}

	return true, nil
}

// CreateRCFile creates a new RC file with appropriate directory structure
func CreateRCFile(rcPath string) error {
	if err := validateRCPath(rcPath); err != nil {
		return err
	}

	// Create parent directory if needed
	dir := filepath.Dir(rcPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return &RCFileError{
			Path:    rcPath,
			Message: "failed to create parent directory",
			Cause:   err,
		}
	}

	file, err := os.OpenFile(rcPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return &RCFileError{
			Path:    rcPath,
			Message: "failed to create file",
			Cause:   err,
		}
	}
	defer file.Close()

	// Write a basic header
	if _, err := file.WriteString("# Shell configuration\n"); err != nil {
		return &RCFileError{
			Path:    rcPath,
			Message: "failed to write header",
			Cause:   err,
		}
	}

	return nil
}

// HasActivationLine checks if the RC file already loads the venvctl hook
func HasActivationLine(rcPath string) (bool, error) {
	file, err := os.Open(rcPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, &RCFileError{
			Path:    rcPath,
			Message: "failed to open file",
			Cause:   err,
		}
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ActivationMarker) {
			return true, nil
		}
	}

	if err := scanner.Err(); err != nil {
		return false, &RCFileError{
			Path:    rcPath,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	return false, nil
}

// BackupRCFile creates a backup of the RC file
func BackupRCFile(rcPath string) (string, error) {
	content, err := os.ReadFile(rcPath)
	if err != nil {
		return "", &RCFileError{
			Path:    rcPath,
			Message: "failed to read file for backup",
			Cause:   err,
		}
	}

	backupPath := rcPath + BackupSuffix
	if err := os.WriteFile(backupPath, content, 0o644); err != nil {
		return "", &RCFileError{
			Path:    backupPath,
			Message: "failed to write backup file",
			Cause:   err,
		}
	}

	return backupPath, nil
}

// AddActivationLine appends the hook line to the RC file.
// This is an atomic operation using a temporary file
func AddActivationLine(rcPath string, activationCommand string) error {
	if !strings.Contains(activationCommand, ActivationMarker) {
		return &RCFileError{
			Path:    rcPath,
			Message: fmt.Sprintf("invalid activation command format: must contain %q", ActivationMarker),
		}
	}
	if err := validateRCPath(rcPath); err != nil {
		return err
	}

	var existingContent []byte
	var perm fs.FileMode = 0o644

	info, err := os.Lstat(rcPath)
	switch {
	case err == nil:
		if info.Mode()&fs.ModeSymlink != 0 {
			return &RCFileError{Path: rcPath, Message: "refusing to modify symlink"}
		}
		if !info.Mode().IsRegular() {
			return &RCFileError{Path: rcPath, Message: "not a regular file"}
		}
		perm = info.Mode().Perm()
		existingContent, err = os.ReadFile(rcPath)
		if err != nil {
			return &RCFileError{
				Path:    rcPath,
				Message: "failed to read existing file",
				Cause:   err,
			}
		}
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(rcPath), 0o700); err != nil {
			return &RCFileError{
				Path:    rcPath,
				Message: "failed to create parent directory",
				Cause:   err,
			}
		}
	default:
		return &RCFileError{Path: rcPath, Message: "failed to stat file", Cause: err}
	}

	// Create temporary file in the same directory (for atomic rename)
	dir := filepath.Dir(rcPath)
	tmpFile, err := os.CreateTemp(dir, ".venvctl-tmp-*")
	if err != nil {
		return &RCFileError{
			Path:    rcPath,
			Message: "failed to create temporary file",
			Cause:   err,
		}
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath) // Clean up on error

	var b strings.Builder
	b.Write(existingContent)
	if len(existingContent) > 0 && !strings.HasSuffix(string(existingContent), "\n") {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n# venvctl - virtual environment activation\n%s\n", activationCommand)

	if _, err := tmpFile.WriteString(b.String()); err != nil {
		tmpFile.Close()
		return &RCFileError{
			Path:    rcPath,
			Message: "failed to write activation line",
			Cause:   err,
		}
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return &RCFileError{
			Path:    rcPath,
			Message: "failed to sync file",
			Cause:   err,
		}
	}

	if err := tmpFile.Close(); err != nil {
		return &RCFileError{
			Path:    rcPath,
			Message: "failed to close temporary file",
			Cause:   err,
		}
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return &RCFileError{
			Path:    rcPath,
			Message: "failed to set permissions",
			Cause:   err,
		}
	}

	// Atomic rename
	if err := os.Rename(tmpPath, rcPath); err != nil {
		return &RCFileError{
			Path:    rcPath,
			Message: "failed to rename temp file",
			Cause:   err,
		}
	}

	return nil
}
