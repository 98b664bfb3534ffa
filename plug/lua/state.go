package lua

import (
	"context"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds a single hook execution (best-effort;
// Lua code that never yields to the VM loop cannot be interrupted
// mid-instruction).
const DefaultExecutionTimeout = 5 * time.Second

// State wraps a gopher-lua LState for scripted hook execution.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes
// access from Go code; hook execution itself is single-threaded by the
// framework's concurrency model.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	timeout time.Duration
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithTimeout sets the per-execution timeout. Zero disables it.
func WithTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// NewState creates a Lua state with the standard libraries opened.
func NewState(opts ...StateOption) *State {
	s := &State{timeout: DefaultExecutionTimeout}
	for _, opt := range opts {
		opt(s)
	}
	s.L = lua.NewState()
	return s
}

// Do runs fn with exclusive access to the Lua state, applying the
// configured execution timeout.
func (s *State) Do(fn func(L *lua.LState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	if s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()
	}

	return fn(s.L)
}

// DoFile executes a Lua file on the state.
func (s *State) DoFile(path string) error {
	return s.Do(func(L *lua.LState) error {
		return L.DoFile(path)
	})
}

// HasFunction reports whether a global of the given name is a
// function.
func (s *State) HasFunction(name string) bool {
	has := false
	_ = s.Do(func(L *lua.LState) error {
		has = L.GetGlobal(name).Type() == lua.LTFunction
		return nil
	})
	return has
}

// Close releases the Lua state. Safe to call more than once.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}

// callGlobal invokes a global function with the given arguments and
// returns its first result. The caller must hold the state (see Do).
func callGlobal(L *lua.LState, name string, args ...lua.LValue) (lua.LValue, error) {
	fn := L.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return lua.LNil, fmt.Errorf("%w: %s", ErrNoFunction, name)
	}

	L.Push(fn)
	for _, a := range args {
		L.Push(a)
	}
	if err := L.PCall(len(args), 1, nil); err != nil {
		return lua.LNil, err
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}
