package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/ZebulonRouseFrantzich/venvctl/internal/activation"
)

// runActivate handles `venvctl activate`. It prints shell code for the
// caller to evaluate.
func runActivate(args []string) error {
	var (
		venvDir   string
		label     string
		shellName string
	)
	flagSet := pflag.NewFlagSet("activate", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&venvDir, "venv-dir", "", "environment root (default: derived from the venvctl location)")
	flagSet.StringVar(&label, "prompt", "", "prompt label (default: pyvenv.cfg prompt, then the directory name)")
	flagSet.StringVar(&shellName, "shell", "", "shell dialect: bash, zsh, fish, powershell")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	switch rest := flagSet.Args(); {
	case len(rest) > 1:
		return fmt.Errorf("usage: venvctl activate [--venv-dir DIR] [--prompt TEXT] [--shell SHELL] [DIR]")
	case len(rest) == 1 && venvDir == "":
		venvDir = rest[0]
	case len(rest) == 1:
		return fmt.Errorf("environment given twice: --venv-dir %s and %s", venvDir, rest[0])
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
	state, err := ctrl.Activate(activation.Options{
		VenvDir:       venvDir,
		Prompt:        label,
		DisablePrompt: s.settings.DisablePrompt,
	})
	if err != nil {
		return err
	}
	s.logger.Debug("activated", "root", state.Root, "prompt", state.Prompt, "shell", shellType)

	return s.emit(shellType)
}
