package plug

import "fmt"

// Host is a mutable value that carries attachments.
type Host interface {
	Value

	// Plugs returns the host's attachment set.
	Plugs() *Set
}

// FieldAccessor is implemented by hosts with dynamic named fields,
// letting generic attribute-style access compose with attachment
// lookup. Mixin provides an implementation.
type FieldAccessor interface {
	// Attr returns the field or attachment bound to a name.
	Attr(name string) (any, error)
}

// Mixin provides attachment storage and guarded dynamic fields for
// host values. Embed it in a concrete host type:
//
//	type Grid struct {
//		plug.Mixin
//		cells []float64
//	}
//
// The zero value is ready to use.
type Mixin struct {
	plugs  *Set
	fields map[string]any
}

// Plugs returns the attachment set, creating it on first use.
func (m *Mixin) Plugs() *Set {
	if m.plugs == nil {
		m.plugs = NewSet()
	}
	return m.plugs
}

// SetField binds a plain value to a name. A name already owned by an
// attachment cannot be rebound: the write is rejected with
// ErrImmutableName and the attachment is left untouched.
func (m *Mixin) SetField(name string, v any) error {
	if m.plugs != nil && m.plugs.Has(name) {
		return fmt.Errorf("%w: %q", ErrImmutableName, name)
	}
	if m.fields == nil {
		m.fields = make(map[string]any)
	}
	m.fields[name] = v
	return nil
}

// Field returns a plain field by name.
func (m *Mixin) Field(name string) (any, bool) {
	v, ok := m.fields[name]
	return v, ok
}

// Attr returns the field bound to a name, falling back to the
// attachment of that name. A name bound to neither surfaces as the
// standard not-found condition.
func (m *Mixin) Attr(name string) (any, error) {
	if v, ok := m.fields[name]; ok {
		return v, nil
	}
	return m.Plugs().Get(name)
}
