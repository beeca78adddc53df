package shell

import "fmt"

// GenerateActivationCommand generates the line users add to their rc files
// to load the venvctl hook
func GenerateActivationCommand(shell ShellType, command string) (string, error) {
	if err := ValidateShell(shell); err != nil {
		return "", err
	}

	switch shell {
	case ShellBash, ShellZsh:
		// For bash and zsh, use eval with command substitution
		return fmt.Sprintf(`eval "$(%s hook %s)"`, command, shell), nil
	case ShellFish:
		// Fish uses pipe to source
		return fmt.Sprintf("%s hook %s | source", command, shell), nil
	case ShellPowerShell:
		return fmt.Sprintf("%s hook %s | Out-String | Invoke-Expression", command, shell), nil
	default:
		return "", &UnsupportedShellError{Shell: shell.String()}
	}
}

// HookSnippet returns the shell code printed by "venvctl hook". It defines
// venv_activate, which forwards its arguments to "venvctl activate" and
// evaluates the result in the current shell.
func HookSnippet(shell ShellType, executable string) (string, error) {
	if err := ValidateShell(shell); err != nil {
		return "", err
	}

	cmd := quote(shell, executable)
	switch shell {
	case ShellBash, ShellZsh:
		return fmt.Sprintf(`# venvctl shell integration (%[3]s)
%[1]s () {
    eval "$(%[2]s activate --shell %[3]s "$@")"
}
`, ActivateFunc, cmd, shell), nil
	case ShellFish:
		return fmt.Sprintf(`# venvctl shell integration (fish)
function %s
    %s activate --shell fish $argv | source
end
`, ActivateFunc, cmd), nil
	case ShellPowerShell:
		return fmt.Sprintf(`# venvctl shell integration (powershell)
function global:%s {
    & %s activate --shell powershell @args | Out-String | Invoke-Expression
}
`, ActivateFunc, cmd), nil
	default:
		return "", &UnsupportedShellError{Shell: shell.String()}
	}
}
