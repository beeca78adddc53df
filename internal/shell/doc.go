// Package shell connects venvctl to interactive shells.
//
// venvctl cannot change its parent shell's environment, so every
// subcommand prints shell code for the caller to evaluate:
//
//	eval "$(venvctl activate --shell bash --venv-dir .venv)"
//
// # Script
//
// Script stands in for the caller's shell while the activation controller
// runs. It starts from a snapshot of the caller's environment and records
// every variable change, prompt change, and deactivate-function change. Render
// turns the record into code for one dialect:
//
//   - bash, zsh: export/unset, PS1, a deactivate shell function
//   - fish: set -gx/set -e, fish_prompt, a deactivate function
//   - powershell: $env:, the prompt function, a global:deactivate function
//
// Variable changes are compacted: only the final value of each variable is
// emitted, and variables that end up unchanged are dropped.
//
// # Hook and rc files
//
// HookSnippet defines a venv_activate function wrapping "venvctl activate".
// Manager.SetupIntegration appends the line that loads the hook to the
// user's rc file. All modifications are:
//   - Idempotent (skipped when already present)
//   - Optionally backed up
//   - Atomic (temp file + rename)
//
// # Shell detection
//
// DetectShell tries $SHELL first, then walks up the parent processes with
// gopsutil looking for a known shell.
package shell
