package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	if len(os.Args) > 1 {
		var run func([]string) error
		switch os.Args[1] {
		case "--version", "version":
			fmt.Fprintf(stdout, "venvctl %s\n", Version)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "activate":
			run = runActivate
		case "deactivate":
			run = runDeactivate
		case "prompt":
			run = runPrompt
		case "hook":
			run = runHook
		case "setup":
			run = runSetup
		default:
			fmt.Fprintf(stderr, "Error: unknown command: %s\n", os.Args[1])
			fmt.Fprintln(stderr, "Run 'venvctl --help' for usage.")
			os.Exit(1)
		}

		if err := run(os.Args[2:]); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				return
			}
			fmt.Fprintf(stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Default: show help
	printHelp()
}

func printHelp() {
	fmt.Fprint(stdout, `venvctl - virtual environment activation for interactive shells

Usage:
  venvctl activate [--venv-dir DIR] [--prompt TEXT] [--shell SHELL] [DIR]
                              Print shell code that activates an environment
  venvctl deactivate [--shell SHELL] [--non-destructive]
                              Print shell code that reverts the activation
  venvctl prompt              Print the prompt for the current session
  venvctl hook <shell>        Print the venv_activate shell function
  venvctl setup [options]     Add the hook to your shell's rc file
  venvctl --version           Show version information

Quick start (bash):
  eval "$(venvctl hook bash)"
  venv_activate ./.venv
  deactivate

Supported shells: bash, zsh, fish, powershell
`)
}
