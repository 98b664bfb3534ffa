package lua

import "errors"

// Scripted plug errors.
var (
	// ErrNoManifest is returned when a plug directory has no
	// manifest.json.
	ErrNoManifest = errors.New("plug directory has no manifest.json")

	// ErrInvalidManifest is returned when a manifest fails validation.
	ErrInvalidManifest = errors.New("invalid plug manifest")

	// ErrNoFunction is returned when a declared hook names a Lua
	// global that is not a function.
	ErrNoFunction = errors.New("lua function not defined")

	// ErrStateClosed is returned when using a closed Lua state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNotScriptable is returned when a working value cannot cross
	// the Lua bridge.
	ErrNotScriptable = errors.New("value cannot cross the lua bridge")
)
