package plug

// Value is a mutable host value threaded through hook chains.
type Value interface {
	// Copy returns an independent copy of the value. The copy must
	// share no mutable state with the receiver; mutation of one must
	// never be observable through the other.
	Copy() Value
}

// OpFunc is the common shape of host operations and hooks: it receives
// the working value and the call it was invoked with, and returns the
// (possibly mutated, possibly replaced) value.
type OpFunc func(recv Value, call *Call) (Value, error)

// Operation describes a named operation a host provides.
//
// SupportsInPlace is a static capability marker: operations that honor
// the call's in-place flag declare it here at registration time, so
// the dispatcher never has to inspect the function itself.
type Operation struct {
	Name            string
	SupportsInPlace bool
	Func            OpFunc
}

// Call carries the arguments of a single operation invocation.
//
// Every hook in a chain receives the same Call the outer caller
// supplied. Hooks must not modify Args or KWArgs; the framework does
// not enforce this.
type Call struct {
	Args   []any
	KWArgs map[string]any

	inPlace    bool
	inPlaceSet bool
}

// NewCall creates a Call with the given positional arguments.
func NewCall(args ...any) *Call {
	return &Call{Args: args}
}

// SetInPlace sets the in-place flag explicitly.
func (c *Call) SetInPlace(v bool) {
	c.inPlace = v
	c.inPlaceSet = true
}

// InPlace reports the in-place flag and whether it has been set at
// all. An unset flag means the dispatcher decides per the operation's
// capability.
func (c *Call) InPlace() (value, ok bool) {
	return c.inPlace, c.inPlaceSet
}

// KW returns a keyword argument by name.
func (c *Call) KW(name string) (any, bool) {
	v, ok := c.KWArgs[name]
	return v, ok
}

// SetKW sets a keyword argument, allocating the map on first use.
func (c *Call) SetKW(name string, v any) {
	if c.KWArgs == nil {
		c.KWArgs = make(map[string]any)
	}
	c.KWArgs[name] = v
}

// resolveInPlace decides whether the invocation mutates the receiver.
//
// An explicit flag on the call wins. Otherwise, if the operation
// supports in-place execution the flag is synthesized as true so the
// operation performs its own mutation instead of taking a redundant
// copy. Operations without the capability are always copy-mode; that
// is not an error.
func resolveInPlace(op Operation, call *Call) bool {
	if v, ok := call.InPlace(); ok {
		return v
	}
	if op.SupportsInPlace {
		call.SetInPlace(true)
		return true
	}
	return false
}
