package activation

import (
	"fmt"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/venvctl/internal/config"
)

// ResolveRoot returns the environment root: explicit when given, otherwise
// the parent of the directory holding the running executable
// (<root>/bin/venvctl gives <root>). The result is absolute.
func ResolveRoot(explicit string, executable func() (string, error)) (string, error) {
	if explicit != "" {
		root, err := filepath.Abs(explicit)
		if err != nil {
			return "", fmt.Errorf("absolute path of %s: %w", explicit, err)
		}
		return root, nil
	}

	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	exe, err = filepath.Abs(exe)
	if err != nil {
		return "", fmt.Errorf("absolute path of %s: %w", exe, err)
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}

// ResolvePrompt picks the prompt label: explicit, then the config's prompt
// key, then the leaf name of root.
func ResolvePrompt(explicit string, cfg config.VenvConfig, root string) string {
	if explicit != "" {
		return explicit
	}
	if p := cfg.Prompt(); p != "" {
		return p
	}
	return filepath.Base(root)
}
