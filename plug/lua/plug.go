package lua

import (
	"fmt"

	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/plughook/plug"
)

// Scriptable is implemented by host values that can cross the Lua
// bridge.
type Scriptable interface {
	plug.Value

	// ToLua renders the value for a scripted hook.
	ToLua(L *lua.LState) lua.LValue

	// FromLua applies a hook's returned representation back onto the
	// value.
	FromLua(lv lua.LValue) error
}

// Plug is an attachment whose hooks are Lua functions. Each instance
// owns its own Lua state; the script is loaded once at construction.
type Plug struct {
	id       string
	manifest *Manifest
	state    *State
	hooks    *plug.Registry
}

// New loads the manifest's script into the state and builds the hook
// registry from its declarations. Every declared function must exist
// as a Lua global after the script runs.
func New(manifest *Manifest, state *State) (*Plug, error) {
	p := &Plug{
		id:       uuid.New().String(),
		manifest: manifest,
		state:    state,
		hooks:    plug.NewRegistry(),
	}

	if err := state.DoFile(manifest.ScriptPath()); err != nil {
		return nil, fmt.Errorf("loading plug %q: %w", manifest.Name, err)
	}

	for _, decl := range manifest.Hooks {
		if !state.HasFunction(decl.Fn) {
			return nil, fmt.Errorf("%w: %s (plug %q)", ErrNoFunction, decl.Fn, manifest.Name)
		}
		h := p.hook(decl)
		if decl.Phase == PhasePre {
			p.hooks.RegisterPre(decl.Op, h)
		} else {
			p.hooks.RegisterPost(decl.Op, h)
		}
	}
	return p, nil
}

// ID returns the unique instance identifier.
func (p *Plug) ID() string {
	return p.id
}

// Name returns the manifest name.
func (p *Plug) Name() string {
	return p.manifest.Name
}

// Manifest returns the plug's manifest.
func (p *Plug) Manifest() *Manifest {
	return p.manifest
}

// Hooks implements plug.Attachment.
func (p *Plug) Hooks() *plug.Registry {
	return p.hooks
}

// Close releases the plug's Lua state.
func (p *Plug) Close() {
	p.state.Close()
}

// hook wraps a declared Lua global as a plug.Hook. The working value
// crosses the bridge in, followed by the call's positional arguments;
// a non-nil return crosses back onto the value, a nil return keeps
// the value as passed.
func (p *Plug) hook(decl HookDecl) plug.Hook {
	return func(v plug.Value, call *plug.Call) (plug.Value, error) {
		sv, ok := v.(Scriptable)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrNotScriptable, v)
		}

		err := p.state.Do(func(L *lua.LState) error {
			b := NewBridge(L)
			args := make([]lua.LValue, 0, len(call.Args)+1)
			args = append(args, sv.ToLua(L))
			for _, a := range call.Args {
				args = append(args, b.ToLuaValue(a))
			}

			ret, err := callGlobal(L, decl.Fn, args...)
			if err != nil {
				return err
			}
			if ret == lua.LNil {
				return nil
			}
			return sv.FromLua(ret)
		})
		if err != nil {
			return nil, fmt.Errorf("plug %q hook %s: %w", p.manifest.Name, decl.Fn, err)
		}
		return sv, nil
	}
}
