// Package lua provides Lua-scripted attachments for the plug
// framework.
//
// A scripted plug lives in its own directory holding a manifest.json
// and the Lua script it names. The manifest declares which operations
// the plug hooks and which Lua globals implement them:
//
//	{
//	  "name": "anchors",
//	  "version": "0.1.0",
//	  "main": "init.lua",
//	  "hooks": [
//	    {"op": "scale", "phase": "pre", "fn": "before_scale"}
//	  ]
//	}
//
// A hook function receives the bridged working value followed by the
// call's positional arguments, and returns the value to thread onward
// (or nil to keep it unchanged):
//
//	function before_scale(value, factor)
//	    for i = 1, #value do
//	        value[i] = value[i] + 1
//	    end
//	    return value
//	end
//
// Host values cross the bridge through the Scriptable interface. The
// Loader discovers and loads plug directories; the Watcher reloads
// changed plugs into a live attachment set on Sync.
package lua
