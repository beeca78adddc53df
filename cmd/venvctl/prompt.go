package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/venvctl/internal/environ"
	"github.com/ZebulonRouseFrantzich/venvctl/internal/prompt"
)

// luaVars are the variables passed to a Lua prompt script.
var luaVars = []string{
	"USER",
	"HOME",
	"PWD",
	"HOSTNAME",
	environ.EnvVirtualEnv,
	environ.EnvVirtualEnvPrompt,
}

// runPrompt handles `venvctl prompt`. It prints the prompt for the current
// session without a trailing newline, for use in PS1 command substitution.
func runPrompt(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("usage: venvctl prompt")
	}

	s, err := newSession()
	if err != nil {
		return err
	}

	var base prompt.Renderer = prompt.Static(s.env["PS1"])
	if s.settings.PromptScript != "" {
		vars := make(map[string]string, len(luaVars))
		for _, k := range luaVars {
			vars[k] = s.env[k]
		}
		lr, err := prompt.LoadLuaRenderer(s.settings.PromptScript, vars)
		if err != nil {
			s.logger.Warn("prompt script not loaded", "path", s.settings.PromptScript, "error", err)
		} else {
			defer lr.Close()
			base = lr
		}
	}

	mgr := prompt.NewManager(prompt.NewHolder(base), s.logger)
	if root := s.env[environ.EnvVirtualEnv]; root != "" && !s.promptDisabled() {
		label := s.env[environ.EnvVirtualEnvPrompt]
		if label == "" {
			label = filepath.Base(root)
		}
		if err := mgr.Install(label); err != nil {
			s.logger.Warn("prompt prefix not installed", "error", err)
		}
	}

	_, err = io.WriteString(stdout, mgr.Render())
	return err
}

func (s *session) promptDisabled() bool {
	return s.settings.DisablePrompt || s.env[environ.EnvDisablePrompt] != ""
}
