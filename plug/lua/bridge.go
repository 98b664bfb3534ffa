package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// Bridge provides Go-Lua value conversion for hook arguments and
// results.
type Bridge struct {
	L *lua.LState
}

// NewBridge creates a Bridge for the given Lua state.
func NewBridge(L *lua.LState) *Bridge {
	return &Bridge{L: L}
}

// ToLuaValue converts a Go value to a Lua value. Unconvertible types
// become nil.
func (b *Bridge) ToLuaValue(v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(x)
	case int:
		return lua.LNumber(x)
	case int64:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	case string:
		return lua.LString(x)
	case []float64:
		t := b.L.NewTable()
		for _, f := range x {
			t.Append(lua.LNumber(f))
		}
		return t
	case []any:
		t := b.L.NewTable()
		for _, e := range x {
			t.Append(b.ToLuaValue(e))
		}
		return t
	case map[string]any:
		t := b.L.NewTable()
		for k, e := range x {
			t.RawSetString(k, b.ToLuaValue(e))
		}
		return t
	case lua.LValue:
		return x
	default:
		return lua.LNil
	}
}

// ToGoValue converts a Lua value to a Go value. Tables become
// []float64 (all-number arrays), []any (other arrays) or
// map[string]any; circular references convert to nil.
func (b *Bridge) ToGoValue(lv lua.LValue) any {
	return b.toGoValue(lv, make(map[*lua.LTable]bool))
}

func (b *Bridge) toGoValue(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return b.tableToGo(v, visited)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}

// tableToGo converts a table, preferring the array view when keys are
// the contiguous integers 1..n.
func (b *Bridge) tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	n := t.Len()
	count := 0
	isArray := true
	t.ForEach(func(k, _ lua.LValue) {
		count++
		kn, ok := k.(lua.LNumber)
		if !ok || float64(kn) != float64(int(kn)) || int(kn) < 1 || int(kn) > n {
			isArray = false
		}
	})

	if isArray && count == n && n > 0 {
		floats := make([]float64, 0, n)
		allNumbers := true
		for i := 1; i <= n; i++ {
			if f, ok := t.RawGetInt(i).(lua.LNumber); ok {
				floats = append(floats, float64(f))
			} else {
				allNumbers = false
				break
			}
		}
		if allNumbers {
			return floats
		}
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = b.toGoValue(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = b.toGoValue(v, visited)
	})
	return m
}
