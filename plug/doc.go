// Package plug implements a mutation-observer framework for mutable
// host values.
//
// A host value carries a Set of named attachments ("plugs"). Each
// attachment registers pre- and post-hooks keyed by operation name.
// Resolving an operation through a Dispatcher composes the matching
// hooks from every attachment around the real operation, threading a
// single working value through the chain:
//
//	pre-hooks (set order) -> operation -> post-hooks (reverse order)
//
// Whether an invocation mutates the receiver in place or works on a
// copy follows the operation's own convention: an explicit in-place
// flag on the Call wins; otherwise the flag is synthesized as true for
// operations that declare in-place support, and the dispatcher copies
// the receiver for everything else.
//
// Example:
//
//	d := plug.NewDispatcher(host)
//	d.RegisterOp(scaleOp)
//	host.Plugs().Add("anchors", anchors)
//
//	scale, err := d.Resolve("scale")
//	if err != nil { ... }
//	out, err := scale(host, plug.NewCall(2.0))
//
// None of the types in this package are safe for concurrent use.
// Concurrent mutation of a Set, or concurrent hooked calls on the same
// host, must be serialized by the caller.
package plug
