package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/ZebulonRouseFrantzich/venvctl/internal/shell"
)

// runSetup handles `venvctl setup`, which adds the hook line to the
// shell's rc file
func runSetup(args []string) error {
	var (
		shellName string
		opts      shell.SetupOptions
	)
	flagSet := pflag.NewFlagSet("setup", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&shellName, "shell", "", "shell to configure (default: detected)")
	flagSet.BoolVar(&opts.Backup, "backup", false, "back up the rc file before modifying it")
	flagSet.BoolVar(&opts.DryRun, "dry-run", false, "show what would be done without changing anything")
	flagSet.BoolVar(&opts.Force, "force", false, "add the hook line even if one is present")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, err := newSession()
	if err != nil {
		return err
	}
	shellType, err := s.resolveShell(ctx, shellName)
	if err != nil {
		return err
	}

	mgr, err := shell.NewManager(shell.Config{Command: shell.DefaultCommand})
	if err != nil {
		return err
	}
	result, err := mgr.SetupIntegration(shellType, opts)
	if err != nil {
		return fmt.Errorf("setup shell integration: %w", err)
	}
	s.logger.Debug("shell integration", "shell", result.Shell, "rc_file", result.RCFile, "added", result.Added)

	switch {
	case opts.DryRun && result.AlreadyPresent && !opts.Force:
		fmt.Fprintf(stdout, "Already configured in %s\n", result.RCFile)
	case opts.DryRun:
		fmt.Fprintf(stdout, "Would add to %s:\n  %s\n", result.RCFile, result.ActivationCommand)
	case result.AlreadyPresent && !result.Added:
		fmt.Fprintf(stdout, "Already configured in %s\n", result.RCFile)
	default:
		fmt.Fprintf(stdout, "✓ Added to %s:\n  %s\n", result.RCFile, result.ActivationCommand)
		if result.BackupPath != "" {
			fmt.Fprintf(stdout, "  Backup: %s\n", result.BackupPath)
		}
		fmt.Fprintln(stdout, "Restart your shell or source the file to use venv_activate.")
	}
	return nil
}
