package shell

import (
	"context"
	"fmt"
)

// Manager orchestrates shell integration setup
type Manager struct {
	command string
}

// NewManager creates a new shell manager
func NewManager(config Config) (*Manager, error) {
	if config.Command == "" {
		return nil, fmt.Errorf("Command is required")
	}

	return &Manager{
		command: config.Command,
	}, nil
}

// SetupIntegration adds the hook line to the shell's rc file
func (m *Manager) SetupIntegration(shell ShellType, opts SetupOptions) (*SetupResult, error) {
	if err := ValidateShell(shell); err != nil {
		return nil, err
	}

	rcPath, err := GetRCFilePath(shell)
	if err != nil {
		return nil, fmt.Errorf("get RC file path: %w", err)
	}

	activationCmd, err := GenerateActivationCommand(shell, m.command)
	if err != nil {
		return nil, fmt.Errorf("generate activation command: %w", err)
	}

	hasActivation, err := HasActivationLine(rcPath)
	if err != nil {
		return nil, fmt.Errorf("check activation line: %w", err)
	}

	// If already present and not forcing, return early
	if hasActivation && !opts.Force {
		return &SetupResult{
			Shell:             shell,
			RCFile:            rcPath,
			AlreadyPresent:    true,
			ActivationCommand: activationCmd,
		}, nil
	}

	if opts.DryRun {
		return &SetupResult{
			Shell:             shell,
			RCFile:            rcPath,
			AlreadyPresent:    hasActivation,
			ActivationCommand: activationCmd,
		}, nil
	}

	lock, err := acquireRCLock(rcPath)
	if err != nil {
		return nil, fmt.Errorf("lock RC file: %w", err)
	}
	defer lock.release()

	exists, err := RCFileExists(rcPath)
	if err != nil {
		return nil, fmt.Errorf("check RC file: %w", err)
	}
	if !exists {
		if err := CreateRCFile(rcPath); err != nil {
			return nil, fmt.Errorf("create RC file: %w", err)
		}
	}

	var backupPath string
	if opts.Backup && exists {
		backupPath, err = BackupRCFile(rcPath)
		if err != nil {
			return nil, fmt.Errorf("backup RC file: %w", err)
		}
	}

	if err := AddActivationLine(rcPath, activationCmd); err != nil {
		return nil, fmt.Errorf("add activation line: %w", err)
	}

	return &SetupResult{
		Shell:             shell,
		RCFile:            rcPath,
		Added:             true,
		AlreadyPresent:    hasActivation,
		BackupPath:        backupPath,
		ActivationCommand: activationCmd,
	}, nil
}

// DetectAndSetup detects the user's shell and sets up integration
func (m *Manager) DetectAndSetup(ctx context.Context, opts SetupOptions) (*SetupResult, error) {
	detection, err := DetectShell(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect shell: %w", err)
	}

	if !detection.Shell.IsValid() {
		return nil, &UnsupportedShellError{Shell: detection.ShellPath}
	}

	return m.SetupIntegration(detection.Shell, opts)
}
