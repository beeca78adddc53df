package shell

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// maxAncestors bounds the parent process walk.
const maxAncestors = 4

// parentProcesses returns (name, exe) pairs for the ancestors of the
// current process, nearest first. Replaced in tests.
var parentProcesses = processAncestors

// DetectShell detects the user's shell using multiple methods
func DetectShell(ctx context.Context) (*DetectionResult, error) {
	// Method 1: Try $SHELL environment variable (most reliable)
	if shell := os.Getenv("SHELL"); shell != "" {
		shellType := parseShellFromPath(shell)
		if shellType.IsValid() {
			return &DetectionResult{
				Shell:      shellType,
				Method:     "$SHELL environment variable",
				ShellPath:  shell,
				Confidence: "high",
			}, nil
		}
	}

	// Method 2: Walk the parent processes (fallback)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if shellType, shellPath := detectFromParentProcess(ctx); shellType.IsValid() {
		return &DetectionResult{
			Shell:      shellType,
			Method:     "parent process",
			ShellPath:  shellPath,
			Confidence: "medium",
		}, nil
	}

	// Method 3: Could not detect shell
	return &DetectionResult{
		Shell:      ShellUnknown,
		Method:     "detection failed",
		ShellPath:  "",
		Confidence: "none",
	}, nil
}

// parseShellFromPath extracts the shell type from a shell binary path or
// process name
// Examples:
//   - /bin/bash -> bash
//   - -zsh (login shell) -> zsh
//   - C:\Program Files\PowerShell\7\pwsh.exe -> powershell
func parseShellFromPath(shellPath string) ShellType {
	baseName := filepath.Base(strings.ReplaceAll(shellPath, `\`, "/"))
	baseName = strings.ToLower(baseName)
	baseName = strings.TrimPrefix(baseName, "-")
	baseName = strings.TrimSuffix(baseName, ".exe")

	switch baseName {
	case "bash":
		return ShellBash
	case "zsh":
		return ShellZsh
	case "fish":
		return ShellFish
	case "pwsh", "powershell":
		return ShellPowerShell
	default:
		return ShellUnknown
	}
}

// detectFromParentProcess returns the nearest ancestor that is a known shell.
func detectFromParentProcess(ctx context.Context) (ShellType, string) {
	for _, p := range parentProcesses(ctx) {
		if shellType := parseShellFromPath(p.name); shellType.IsValid() {
			if p.exe != "" {
				return shellType, p.exe
			}
			return shellType, p.name
		}
	}
	return ShellUnknown, ""
}

type ancestor struct {
	name string
	exe  string
}

// processAncestors collects up to maxAncestors parents using gopsutil.
// Errors end the walk early.
func processAncestors(ctx context.Context) []ancestor {
	var out []ancestor
	pid := int32(os.Getppid()) //nolint:gosec // G115: pids fit in int32 on every supported platform

	for i := 0; i < maxAncestors && pid > 0; i++ {
		p, err := process.NewProcessWithContext(ctx, pid)
		if err != nil {
			break
		}
		name, err := p.NameWithContext(ctx)
		if err != nil {
			break
		}
		exe, _ := p.ExeWithContext(ctx)
		out = append(out, ancestor{name: name, exe: exe})

		pid, err = p.PpidWithContext(ctx)
		if err != nil {
			break
		}
	}
	return out
}

// ValidateShell validates that a shell type is supported
func ValidateShell(shell ShellType) error {
	if !shell.IsValid() {
		return &UnsupportedShellError{Shell: shell.String()}
	}
	return nil
}

// GetSupportedShells returns a list of supported shells
func GetSupportedShells() []ShellType {
	return []ShellType{ShellBash, ShellZsh, ShellFish, ShellPowerShell}
}
