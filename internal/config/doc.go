// Package config reads the two configuration sources venvctl consults.
//
// # Environment config
//
// Every virtual environment carries a pyvenv.cfg file at its root. The file
// is a flat list of "key = value" lines:
//
//	home = /usr/bin
//	include-system-site-packages = false
//	version = 3.12.1
//	prompt = 'myproj'
//
// Parse turns it into a VenvConfig. Only the prompt key is consumed by
// activation; the rest is carried along untouched. Parsing never fails the
// caller: a missing file is an empty config, malformed lines are skipped,
// and read failures return whatever was parsed together with a *ReadError
// for the caller to log.
//
// # User settings
//
// LoadSettings reads ~/.config/venvctl/config.toml (or $VENVCTL_CONFIG) and
// then applies VENVCTL_* environment overrides:
//
//	shell = "zsh"
//	config_name = "pyvenv.cfg"
//	prompt_script = "~/.config/venvctl/prompt.lua"
//	disable_prompt = false
package config
