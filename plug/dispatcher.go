package plug

import "fmt"

// BoundOp is a resolved operation ready to invoke. Its signature is
// identical whether or not hooks were composed around the original;
// callers cannot distinguish a hooked call from an unhooked one except
// by effect.
type BoundOp func(recv Value, call *Call) (Value, error)

// Dispatcher resolves operations on a host, composing the hooks of
// every attachment around the real operation. It is the explicit proxy
// through which observed member access goes.
type Dispatcher struct {
	host Host
	ops  map[string]Operation
}

// NewDispatcher creates a dispatcher for a host.
func NewDispatcher(host Host) *Dispatcher {
	return &Dispatcher{
		host: host,
		ops:  make(map[string]Operation),
	}
}

// RegisterOp registers an operation by its declared name, replacing
// any existing operation of that name.
func (d *Dispatcher) RegisterOp(op Operation) {
	d.ops[op.Name] = op
}

// Host returns the wrapped host.
func (d *Dispatcher) Host() Host {
	return d.host
}

// Resolve returns an invocable for the named operation.
//
// Hook chains are recomputed on every resolve because attachments may
// change between calls. When no attachment hooks the name, the
// original operation is returned bound directly, with no wrapping.
//
// The wrapped form runs, on invocation:
//
//  1. in-place resolution (synthesis only when the operation declares
//     support and the caller left the flag unset);
//  2. a receiver copy when the effective flag is false;
//  3. pre-hooks in set order, the operation, post-hooks in reverse
//     set order, threading one working value throughout.
//
// Errors from hooks or the operation propagate unmodified; mutations
// already applied by earlier pre-hooks are not rolled back.
func (d *Dispatcher) Resolve(name string) (BoundOp, error) {
	op, ok := d.ops[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}

	pre, post := d.chains(name)
	if len(pre) == 0 && len(post) == 0 {
		return BoundOp(op.Func), nil
	}

	return func(recv Value, call *Call) (Value, error) {
		if call == nil {
			call = NewCall()
		}

		v := recv
		if !resolveInPlace(op, call) {
			v = recv.Copy()
		}

		var err error
		for _, h := range pre {
			if v, err = h(v, call); err != nil {
				return nil, err
			}
		}
		if v, err = op.Func(v, call); err != nil {
			return nil, err
		}
		for i := len(post) - 1; i >= 0; i-- {
			if v, err = post[i](v, call); err != nil {
				return nil, err
			}
		}
		return v, nil
	}, nil
}

// Call resolves an operation and invokes it with the host itself as
// the receiver.
func (d *Dispatcher) Call(name string, call *Call) (Value, error) {
	bound, err := d.Resolve(name)
	if err != nil {
		return nil, err
	}
	return bound(d.host, call)
}

// Attr resolves a member by name: operations resolve to a BoundOp,
// anything else passes through to the host's fields and attachments
// unchanged.
func (d *Dispatcher) Attr(name string) (any, error) {
	if _, ok := d.ops[name]; ok {
		return d.Resolve(name)
	}
	if fa, ok := d.host.(FieldAccessor); ok {
		return fa.Attr(name)
	}
	return d.host.Plugs().Get(name)
}

// chains collects the pre- and post-hooks matching an operation name
// from every attachment, in set iteration order. Attachments without
// a hook for the name contribute nothing.
func (d *Dispatcher) chains(name string) (pre, post []Hook) {
	set := d.host.Plugs()
	for _, pn := range set.Names() {
		a, err := set.Get(pn)
		if err != nil {
			continue
		}
		hooks := a.Hooks()
		if hooks == nil {
			continue
		}
		if h, ok := hooks.Pre(name); ok {
			pre = append(pre, h)
		}
		if h, ok := hooks.Post(name); ok {
			post = append(post, h)
		}
	}
	return pre, post
}
