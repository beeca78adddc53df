package shell

import (
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/venvctl/internal/environ"
	"github.com/ZebulonRouseFrantzich/venvctl/internal/prompt"
)

type opKind int

const (
	opPromptInstall opKind = iota
	opPromptRestore
	opHandleInstall
	opHandleRemove
)

type op struct {
	kind  opKind
	label string
}

// ScriptOptions configures a Script.
type ScriptOptions struct {
	// Executable is the venvctl path the deactivate function calls.
	Executable string

	// FoldCase treats variable names case-insensitively, as Windows does.
	FoldCase bool
}

// Script records the changes an activation makes to a shell session and
// renders them as shell code. It implements environ.Environment,
// prompt.Slot and activation.Handle.
type Script struct {
	opts ScriptOptions

	orig    environ.Map
	env     environ.Map
	touched []string

	prompt    prompt.Renderer
	promptSet bool

	ops []op
}

// NewScript starts a script from the caller's environment in "KEY=value"
// form, typically os.Environ().
func NewScript(environment []string, opts ScriptOptions) *Script {
	env := environ.Map{}
	for k, v := range environ.FromList(environment) {
		env[foldKey(k, opts.FoldCase)] = v
	}
	return &Script{opts: opts, orig: env.Clone(), env: env}
}

func foldKey(key string, fold bool) string {
	if fold {
		return strings.ToUpper(key)
	}
	return key
}

func (s *Script) key(k string) string {
	return foldKey(k, s.opts.FoldCase)
}

func (s *Script) touch(k string) {
	for _, t := range s.touched {
		if t == k {
			return
		}
	}
	s.touched = append(s.touched, k)
}

// Get returns the variable as the caller's shell would see it after the
// changes recorded so far.
func (s *Script) Get(key string) (string, bool) {
	return s.env.Get(s.key(key))
}

func (s *Script) Set(key, value string) {
	k := s.key(key)
	s.env.Set(k, value)
	s.touch(k)
}

func (s *Script) Unset(key string) {
	k := s.key(key)
	if _, ok := s.env[k]; !ok {
		return
	}
	s.env.Unset(k)
	s.touch(k)
}

// shellPrompt stands for the prompt the shell itself renders. Its text is
// only known when the shell exports PS1.
type shellPrompt struct {
	value string
}

func (p shellPrompt) Render() (string, error) {
	return p.value, nil
}

// Current returns the session's prompt renderer. A prefix installed by an
// earlier activation is reported as *prompt.Prefixed so it can be adopted.
func (s *Script) Current() prompt.Renderer {
	if s.promptSet {
		return s.prompt
	}

	label := s.orig[s.key(environ.EnvVirtualEnvPrompt)]
	if saved, ok := s.orig[s.key(EnvPromptMarkerPOSIX)]; ok {
		return &prompt.Prefixed{Prefix: label, Delegate: shellPrompt{value: saved}}
	}
	base := shellPrompt{value: s.orig[s.key("PS1")]}
	for _, marker := range []string{EnvPromptMarkerFish, EnvPromptMarkerPowerShell} {
		if _, ok := s.orig[s.key(marker)]; ok {
			return &prompt.Prefixed{Prefix: label, Delegate: base}
		}
	}
	return base
}

// Replace records a prompt change. A *prompt.Prefixed renderer installs
// its prefix; anything else restores the shell's own prompt.
func (s *Script) Replace(r prompt.Renderer) error {
	if p, ok := r.(*prompt.Prefixed); ok {
		s.ops = append(s.ops, op{kind: opPromptInstall, label: p.Label()})
	} else {
		s.ops = append(s.ops, op{kind: opPromptRestore})
	}
	s.prompt, s.promptSet = r, true
	return nil
}

func (s *Script) InstallDeactivate() {
	s.ops = append(s.ops, op{kind: opHandleInstall})
}

func (s *Script) RemoveDeactivate() {
	s.ops = append(s.ops, op{kind: opHandleRemove})
}

// Empty reports whether rendering would produce no code.
func (s *Script) Empty() bool {
	return len(s.ops) == 0 && len(s.envChanges()) == 0
}

type envChange struct {
	key   string
	value string
	unset bool
}

// envChanges returns the net change per variable in first-touch order.
func (s *Script) envChanges() []envChange {
	var out []envChange
	for _, k := range s.touched {
		cur, curOK := s.env[k]
		old, oldOK := s.orig[k]
		if curOK == oldOK && cur == old {
			continue
		}
		out = append(out, envChange{key: k, value: cur, unset: !curOK})
	}
	return out
}

// Render returns the recorded changes as code for shell.
func (s *Script) Render(shell ShellType) (string, error) {
	if err := ValidateShell(shell); err != nil {
		return "", err
	}

	var b strings.Builder
	pathChanged := false
	for _, c := range s.envChanges() {
		if strings.EqualFold(c.key, environ.EnvPath) {
			pathChanged = true
		}
		if c.unset {
			writeUnset(&b, shell, c.key)
		} else {
			writeSet(&b, shell, c.key, c.value)
		}
	}
	if pathChanged && shell.IsPOSIX() {
		b.WriteString("hash -r 2>/dev/null || true\n")
	}

	for _, o := range s.ops {
		switch o.kind {
		case opPromptInstall:
			writePromptInstall(&b, shell, o.label)
		case opPromptRestore:
			writePromptRestore(&b, shell)
		case opHandleInstall:
			writeHandleInstall(&b, shell, s.opts.Executable)
		case opHandleRemove:
			writeHandleRemove(&b, shell)
		}
	}
	return b.String(), nil
}

func writeSet(b *strings.Builder, shell ShellType, key, value string) {
	switch shell {
	case ShellFish:
		// fish keeps *PATH variables as lists.
		if strings.HasSuffix(key, "PATH") {
			fmt.Fprintf(b, "set -gx %s", key)
			for _, part := range strings.Split(value, ":") {
				fmt.Fprintf(b, " %s", quote(shell, part))
			}
			b.WriteString("\n")
			return
		}
		fmt.Fprintf(b, "set -gx %s %s\n", key, quote(shell, value))
	case ShellPowerShell:
		fmt.Fprintf(b, "$env:%s = %s\n", key, quote(shell, value))
	default:
		fmt.Fprintf(b, "export %s=%s\n", key, quote(shell, value))
	}
}

func writeUnset(b *strings.Builder, shell ShellType, key string) {
	switch shell {
	case ShellFish:
		fmt.Fprintf(b, "set -e %s\n", key)
	case ShellPowerShell:
		fmt.Fprintf(b, "Remove-Item -Path env:%s -ErrorAction SilentlyContinue\n", key)
	default:
		fmt.Fprintf(b, "unset %s\n", key)
	}
}

func writePromptInstall(b *strings.Builder, shell ShellType, label string) {
	prefix := quote(shell, "("+label+") ")
	switch shell {
	case ShellFish:
		fmt.Fprintf(b, `if not set -q %[1]s
    functions -c fish_prompt _old_fish_prompt
    set -gx %[1]s 1
end
function fish_prompt
    set -l old_status $status
    printf '%%s' %[2]s
    echo "exit $old_status" | .
    _old_fish_prompt
end
`, EnvPromptMarkerFish, prefix)
	case ShellPowerShell:
		fmt.Fprintf(b, `if (-not (Test-Path -Path env:%[1]s)) {
    Copy-Item -Path function:prompt -Destination function:_OLD_VIRTUAL_PROMPT
    $env:%[1]s = '1'
}
function global:prompt {
    Write-Host -NoNewline %[2]s
    _OLD_VIRTUAL_PROMPT
}
`, EnvPromptMarkerPowerShell, prefix)
	default:
		fmt.Fprintf(b, `if [ -z "${%[1]s+x}" ]; then
    export %[1]s="${PS1-}"
fi
PS1=%[2]s"${%[1]s}"
`, EnvPromptMarkerPOSIX, prefix)
	}
}

func writePromptRestore(b *strings.Builder, shell ShellType) {
	switch shell {
	case ShellFish:
		fmt.Fprintf(b, `if set -q %[1]s
    functions -e fish_prompt
    functions -c _old_fish_prompt fish_prompt
    functions -e _old_fish_prompt
    set -e %[1]s
end
`, EnvPromptMarkerFish)
	case ShellPowerShell:
		fmt.Fprintf(b, `if (Test-Path -Path function:_OLD_VIRTUAL_PROMPT) {
    Copy-Item -Path function:_OLD_VIRTUAL_PROMPT -Destination function:global:prompt
    Remove-Item -Path function:_OLD_VIRTUAL_PROMPT
}
Remove-Item -Path env:%[1]s -ErrorAction SilentlyContinue
`, EnvPromptMarkerPowerShell)
	default:
		fmt.Fprintf(b, `if [ -n "${%[1]s+x}" ]; then
    PS1="${%[1]s}"
    unset %[1]s
fi
`, EnvPromptMarkerPOSIX)
	}
}

func writeHandleInstall(b *strings.Builder, shell ShellType, exe string) {
	cmd := quote(shell, exe)
	switch shell {
	case ShellFish:
		fmt.Fprintf(b, `function %s
    %s deactivate --shell fish $argv | source
end
`, DeactivateFunc, cmd)
	case ShellPowerShell:
		fmt.Fprintf(b, `function global:%s {
    & %s deactivate --shell powershell @args | Out-String | Invoke-Expression
}
`, DeactivateFunc, cmd)
	default:
		fmt.Fprintf(b, `%s () {
    eval "$(%s deactivate --shell %s "$@")"
}
`, DeactivateFunc, cmd, shell)
	}
}

func writeHandleRemove(b *strings.Builder, shell ShellType) {
	switch shell {
	case ShellFish:
		fmt.Fprintf(b, "functions -e %s\n", DeactivateFunc)
	case ShellPowerShell:
		fmt.Fprintf(b, "Remove-Item -Path function:%s -ErrorAction SilentlyContinue\n", DeactivateFunc)
	default:
		fmt.Fprintf(b, "unset -f %s\n", DeactivateFunc)
	}
}
