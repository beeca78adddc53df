package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// runDeactivate handles `venvctl deactivate`. Nothing active is not an
// error: the output is then empty.
func runDeactivate(args []string) error {
	var (
		shellName      string
		nonDestructive bool
	)
	flagSet := pflag.NewFlagSet("deactivate", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&shellName, "shell", "", "shell dialect: bash, zsh, fish, powershell")
	flagSet.BoolVar(&nonDestructive, "non-destructive", false, "keep the deactivate function defined")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if len(flagSet.Args()) > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Args()[0])
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

	ctrl, err := s.controller()
	if err != nil {
		return err
	}
	if !ctrl.Attach() {
		s.logger.Debug("no active environment")
		return nil
	}
	ctrl.Deactivate(nonDestructive)

	return s.emit(shellType)
}
