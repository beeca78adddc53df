package shell

import "strings"

// quote returns value as a single literal word in the given dialect.
func quote(shell ShellType, value string) string {
	switch shell {
	case ShellFish:
		r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
		return "'" + r.Replace(value) + "'"
	case ShellPowerShell:
		return "'" + strings.ReplaceAll(value, "'", "''") + "'"
	default:
		return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
	}
}
