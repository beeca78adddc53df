package prompt

import (
	"context"
	"fmt"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"
)

const (
	// luaPromptFunc is the global a prompt script must define.
	luaPromptFunc = "prompt"

	// DefaultLuaTimeout bounds a single call to the prompt function.
	DefaultLuaTimeout = 500 * time.Millisecond

	maxScriptSize = 1 << 20
)

// ScriptError reports a prompt script that cannot be loaded or run.
type ScriptError struct {
	Message string // User-friendly message
	Detail  string // Raw Lua error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// LuaRenderer renders the prompt by calling prompt(vars) in a sandboxed Lua
// script. vars is a table built from Vars on every call.
//
//	function prompt(vars)
//	  return vars.USER .. "$ "
//	end
//
// A LuaRenderer is not safe for concurrent use.
type LuaRenderer struct {
	L       *lua.LState
	fn      *lua.LFunction
	Vars    map[string]string
	Timeout time.Duration
}

// LoadLuaRenderer loads a prompt script from path.
func LoadLuaRenderer(path string, vars map[string]string) (*LuaRenderer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat prompt script: %w", err)
	}
	if info.Size() > maxScriptSize {
		return nil, &ScriptError{
			Message: "prompt script too large",
			Detail:  fmt.Sprintf("%s is %d bytes, limit %d", path, info.Size(), maxScriptSize),
		}
	}

	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt script: %w", err)
	}
	return NewLuaRenderer(string(code), vars)
}

// NewLuaRenderer compiles code and checks that it defines prompt().
// Call Close when done.
func NewLuaRenderer(code string, vars map[string]string) (*LuaRenderer, error) {
	L := newSandboxedVM()

	// The top level runs under the same bound as a prompt call.
	ctx, cancel := context.WithTimeout(context.Background(), DefaultLuaTimeout)
	defer cancel()
	L.SetContext(ctx)
	err := L.DoString(code)
	L.RemoveContext()
	if err != nil {
		L.Close()
		if ctx.Err() != nil {
			return nil, &ScriptError{Message: "Lua script timed out while loading", Detail: err.Error()}
		}
		return nil, &ScriptError{Message: "Lua syntax error", Detail: err.Error()}
	}

	fn, ok := L.GetGlobal(luaPromptFunc).(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, &ScriptError{
			Message: "missing prompt function",
			Detail:  fmt.Sprintf("expected global function %q", luaPromptFunc),
		}
	}

	return &LuaRenderer{L: L, fn: fn, Vars: vars, Timeout: DefaultLuaTimeout}, nil
}

// Render calls prompt(vars) and returns its string result.
func (r *LuaRenderer) Render() (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultLuaTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	vars := r.L.NewTable()
	for k, v := range r.Vars {
		vars.RawSetString(k, lua.LString(v))
	}

	if err := r.L.CallByParam(lua.P{Fn: r.fn, NRet: 1, Protect: true}, vars); err != nil {
		return "", &ScriptError{Message: "prompt function failed", Detail: err.Error()}
	}
	ret := r.L.Get(-1)
	r.L.Pop(1)

	s, ok := ret.(lua.LString)
	if !ok {
		return "", &ScriptError{
			Message: "prompt function returned a non-string",
			Detail:  fmt.Sprintf("got %s", ret.Type()),
		}
	}
	return string(s), nil
}

// Close releases the Lua VM.
func (r *LuaRenderer) Close() {
	r.L.Close()
}
