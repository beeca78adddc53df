package shell

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/venvctl/internal/activation"
	"github.com/ZebulonRouseFrantzich/venvctl/internal/environ"
	"github.com/ZebulonRouseFrantzich/venvctl/internal/platform"
	"github.com/ZebulonRouseFrantzich/venvctl/internal/prompt"
)

const testExe = "/opt/venvctl/bin/venvctl"

func newTestController(t *testing.T, s *Script) *activation.Controller {
	t.Helper()
	layout := platform.ForOS("linux")
	c, err := activation.New(activation.Config{
		Env:    s,
		Layout: &layout,
		Prompt: s,
		Handle: s,
	})
	if err != nil {
		t.Fatalf("activation.New() error = %v", err)
	}
	return c
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q\noutput:\n%s", w, out)
		}
	}
}

func assertNotContains(t *testing.T, out string, unwanted ...string) {
	t.Helper()
	for _, w := range unwanted {
		if strings.Contains(out, w) {
			t.Errorf("output should not contain %q\noutput:\n%s", w, out)
		}
	}
}

func TestScript_GetSetUnset(t *testing.T) {
	s := NewScript([]string{"PATH=/usr/bin", "HOME=/home/u"}, ScriptOptions{})

	if v, ok := s.Get("PATH"); !ok || v != "/usr/bin" {
		t.Errorf("Get(PATH) = %q, %v", v, ok)
	}

	s.Set("VIRTUAL_ENV", "/venv")
	s.Unset("HOME")
	s.Unset("NOT_SET")

	if v, _ := s.Get("VIRTUAL_ENV"); v != "/venv" {
		t.Errorf("Get(VIRTUAL_ENV) = %q, want /venv", v)
	}
	if _, ok := s.Get("HOME"); ok {
		t.Error("HOME should be unset")
	}

	out, err := s.Render(ShellBash)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := "export VIRTUAL_ENV='/venv'\nunset HOME\n"
	if out != want {
		t.Errorf("Render() = %q, want %q", out, want)
	}
}

func TestScript_NetChangesOnly(t *testing.T) {
	s := NewScript([]string{"PATH=/usr/bin"}, ScriptOptions{})
	if !s.Empty() {
		t.Fatal("fresh script should be empty")
	}

	s.Set("PATH", "/venv/bin:/usr/bin")
	s.Set("PATH", "/usr/bin")
	s.Set("TMP_VAR", "x")
	s.Unset("TMP_VAR")

	if !s.Empty() {
		out, _ := s.Render(ShellBash)
		t.Errorf("changes that cancel out should render nothing, got:\n%s", out)
	}
}

func TestScript_FoldCase(t *testing.T) {
	s := NewScript([]string{`Path=C:\Windows`}, ScriptOptions{FoldCase: true})

	if v, ok := s.Get("PATH"); !ok || v != `C:\Windows` {
		t.Errorf("Get(PATH) = %q, %v", v, ok)
	}
	s.Set("Path", `C:\venv\Scripts;C:\Windows`)

	out, err := s.Render(ShellPowerShell)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	assertContains(t, out, `$env:PATH = 'C:\venv\Scripts;C:\Windows'`)
}

func TestScript_RenderUnsupportedShell(t *testing.T) {
	s := NewScript(nil, ScriptOptions{})
	if _, err := s.Render(ShellUnknown); err == nil {
		t.Error("Render(unknown) should fail")
	}
}

func TestScript_Current(t *testing.T) {
	t.Run("no activation", func(t *testing.T) {
		s := NewScript([]string{"PS1=$ "}, ScriptOptions{})
		if _, ok := s.Current().(*prompt.Prefixed); ok {
			t.Error("Current() should not be prefixed without a marker")
		}
	})

	t.Run("posix marker", func(t *testing.T) {
		s := NewScript([]string{
			"_OLD_VIRTUAL_PS1=$ ",
			"VIRTUAL_ENV_PROMPT=proj",
		}, ScriptOptions{})

		p, ok := s.Current().(*prompt.Prefixed)
		if !ok {
			t.Fatalf("Current() = %T, want *prompt.Prefixed", s.Current())
		}
		if p.Label() != "proj" {
			t.Errorf("Label() = %q, want proj", p.Label())
		}
		if got, _ := p.Render(); got != "(proj) $ " {
			t.Errorf("Render() = %q, want %q", got, "(proj) $ ")
		}
	})

	t.Run("fish marker", func(t *testing.T) {
		s := NewScript([]string{
			"_OLD_FISH_PROMPT_OVERRIDE=1",
			"VIRTUAL_ENV_PROMPT=proj",
		}, ScriptOptions{})
		if _, ok := s.Current().(*prompt.Prefixed); !ok {
			t.Errorf("Current() = %T, want *prompt.Prefixed", s.Current())
		}
	})

	t.Run("replaced renderer wins", func(t *testing.T) {
		s := NewScript([]string{"_OLD_VIRTUAL_PS1=$ "}, ScriptOptions{})
		if err := s.Replace(prompt.Static("x")); err != nil {
			t.Fatal(err)
		}
		if got, _ := s.Current().Render(); got != "x" {
			t.Errorf("Current().Render() = %q, want x", got)
		}
	})
}

func TestScript_ActivateRender(t *testing.T) {
	root := filepath.Join(t.TempDir(), "proj")

	tests := []struct {
		shell ShellType
		want  []string
	}{
		{
			shell: ShellBash,
			want: []string{
				"export _OLD_VIRTUAL_PATH='/usr/bin:/bin'\n",
				"export PATH='" + root + "/bin:/usr/bin:/bin'\n",
				"export _OLD_VIRTUAL_PYTHONHOME='/opt/python'\n",
				"unset PYTHONHOME\n",
				"export VIRTUAL_ENV='" + root + "'\n",
				"export VIRTUAL_ENV_PROMPT='demo'\n",
				"hash -r 2>/dev/null || true\n",
				`export _OLD_VIRTUAL_PS1="${PS1-}"`,
				`PS1='(demo) '"${_OLD_VIRTUAL_PS1}"`,
				"deactivate () {",
				`eval "$('` + testExe + `' deactivate --shell bash "$@")"`,
			},
		},
		{
			shell: ShellZsh,
			want: []string{
				"export PATH='" + root + "/bin:/usr/bin:/bin'\n",
				"deactivate --shell zsh",
			},
		},
		{
			shell: ShellFish,
			want: []string{
				"set -gx _OLD_VIRTUAL_PATH '/usr/bin' '/bin'\n",
				"set -gx PATH '" + root + "/bin' '/usr/bin' '/bin'\n",
				"set -e PYTHONHOME\n",
				"set -gx VIRTUAL_ENV '" + root + "'\n",
				"functions -c fish_prompt _old_fish_prompt",
				"printf '%s' '(demo) '",
				"function deactivate",
				"deactivate --shell fish $argv | source",
			},
		},
		{
			shell: ShellPowerShell,
			want: []string{
				"$env:PATH = '" + root + "/bin:/usr/bin:/bin'\n",
				"Remove-Item -Path env:PYTHONHOME -ErrorAction SilentlyContinue\n",
				"Copy-Item -Path function:prompt -Destination function:_OLD_VIRTUAL_PROMPT",
				"Write-Host -NoNewline '(demo) '",
				"function global:deactivate {",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.shell.String(), func(t *testing.T) {
			s := NewScript([]string{
				"PATH=/usr/bin:/bin",
				"PYTHONHOME=/opt/python",
				"PS1=$ ",
			}, ScriptOptions{Executable: testExe})
			c := newTestController(t, s)

			if _, err := c.Activate(activation.Options{VenvDir: root, Prompt: "demo"}); err != nil {
				t.Fatalf("Activate() error = %v", err)
			}

			out, err := s.Render(tt.shell)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			assertContains(t, out, tt.want...)
		})
	}
}

func TestScript_ActivateDisabledPrompt(t *testing.T) {
	s := NewScript([]string{
		"PATH=/usr/bin",
		"VIRTUAL_ENV_DISABLE_PROMPT=1",
	}, ScriptOptions{Executable: testExe})
	c := newTestController(t, s)

	if _, err := c.Activate(activation.Options{VenvDir: t.TempDir()}); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}

	out, _ := s.Render(ShellBash)
	assertNotContains(t, out, "PS1")
	assertContains(t, out, "deactivate () {")
}

// applied returns the environment a shell would hold after evaluating the
// rendered POSIX script, including the exported prompt marker.
func applied(s *Script) []string {
	env := s.env.Clone()
	for _, o := range s.ops {
		switch o.kind {
		case opPromptInstall:
			if _, ok := env[EnvPromptMarkerPOSIX]; !ok {
				env[EnvPromptMarkerPOSIX] = s.orig["PS1"]
			}
		case opPromptRestore:
			delete(env, EnvPromptMarkerPOSIX)
		}
	}
	return env.List()
}

func TestScript_DeactivateInLaterProcess(t *testing.T) {
	root := t.TempDir()
	original := []string{"PATH=/usr/bin", "PYTHONHOME=/opt/python", "PS1=$ "}

	first := NewScript(original, ScriptOptions{Executable: testExe})
	if _, err := newTestController(t, first).Activate(activation.Options{VenvDir: root, Prompt: "demo"}); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}

	second := NewScript(applied(first), ScriptOptions{Executable: testExe})
	c := newTestController(t, second)
	if !c.Attach() {
		t.Fatal("Attach() should find the earlier activation")
	}
	c.Deactivate(false)

	out, err := second.Render(ShellBash)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	assertContains(t, out,
		"export PATH='/usr/bin'\n",
		"export PYTHONHOME='/opt/python'\n",
		"unset _OLD_VIRTUAL_PATH\n",
		"unset _OLD_VIRTUAL_PYTHONHOME\n",
		"unset VIRTUAL_ENV\n",
		"unset VIRTUAL_ENV_PROMPT\n",
		`PS1="${_OLD_VIRTUAL_PS1}"`,
		"unset -f deactivate\n",
	)

	// The environment the shell ends with equals the original one
	final := environ.FromList(applied(second))
	want := environ.FromList(original)
	if len(final) != len(want) {
		t.Errorf("final environment = %v, want %v", final, want)
	}
	for k, v := range want {
		if final[k] != v {
			t.Errorf("%s = %q, want %q", k, final[k], v)
		}
	}
}

func TestScript_NonDestructiveDeactivateKeepsFunction(t *testing.T) {
	s := NewScript([]string{
		"PATH=/venv/bin:/usr/bin",
		"_OLD_VIRTUAL_PATH=/usr/bin",
		"VIRTUAL_ENV=/venv",
		"VIRTUAL_ENV_PROMPT=venv",
	}, ScriptOptions{Executable: testExe})
	c := newTestController(t, s)
	c.Attach()
	c.Deactivate(true)

	out, _ := s.Render(ShellBash)
	assertContains(t, out, "export PATH='/usr/bin'\n", "unset VIRTUAL_ENV\n")
	assertNotContains(t, out, "unset -f deactivate")
}

func TestScript_ReactivateInLaterProcess(t *testing.T) {
	first := NewScript([]string{"PATH=/usr/bin", "PS1=$ "}, ScriptOptions{Executable: testExe})
	if _, err := newTestController(t, first).Activate(activation.Options{VenvDir: "/envs/a", Prompt: "a"}); err != nil {
		t.Fatal(err)
	}

	second := NewScript(applied(first), ScriptOptions{Executable: testExe})
	if _, err := newTestController(t, second).Activate(activation.Options{VenvDir: "/envs/b", Prompt: "b"}); err != nil {
		t.Fatal(err)
	}

	out, _ := second.Render(ShellBash)
	assertContains(t, out,
		"export PATH='/envs/b/bin:/usr/bin'\n",
		"export VIRTUAL_ENV='/envs/b'\n",
		`PS1='(b) '"${_OLD_VIRTUAL_PS1}"`,
	)
	// Bookkeeping is unchanged and the handle is already installed
	assertNotContains(t, out, "_OLD_VIRTUAL_PATH=", "deactivate () {", "/envs/a/bin")
}
