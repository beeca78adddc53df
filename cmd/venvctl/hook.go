package main

import (
	"fmt"
	"io"

	"github.com/ZebulonRouseFrantzich/venvctl/internal/shell"
)

// runHook handles `venvctl hook <shell>`
func runHook(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: venvctl hook <shell>\nSupported shells: bash, zsh, fish, powershell")
	}

	shellType, err := shell.ParseShellType(args[0])
	if err != nil {
		return err
	}

	exe, err := executable()
	if err != nil {
		exe = shell.DefaultCommand
	}

	snippet, err := shell.HookSnippet(shellType, exe)
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdout, snippet)
	return err
}
