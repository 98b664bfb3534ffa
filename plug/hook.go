package plug

// Hook transforms the working value before (pre) or after (post) the
// real operation runs. A hook receives the same Call as the outer
// invocation and must return the value to thread onward.
type Hook func(v Value, call *Call) (Value, error)

// Registry holds the named hooks of a single attachment, keyed by the
// exact operation name they intercept. Each name maps to at most one
// pre-hook and one post-hook; there is no pattern matching.
type Registry struct {
	pre  map[string]Hook
	post map[string]Hook
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{
		pre:  make(map[string]Hook),
		post: make(map[string]Hook),
	}
}

// RegisterPre sets the pre-hook for an operation name, replacing any
// existing one.
func (r *Registry) RegisterPre(op string, h Hook) {
	r.pre[op] = h
}

// RegisterPost sets the post-hook for an operation name, replacing any
// existing one.
func (r *Registry) RegisterPost(op string, h Hook) {
	r.post[op] = h
}

// UnregisterPre removes the pre-hook for an operation name.
func (r *Registry) UnregisterPre(op string) bool {
	_, ok := r.pre[op]
	delete(r.pre, op)
	return ok
}

// UnregisterPost removes the post-hook for an operation name.
func (r *Registry) UnregisterPost(op string) bool {
	_, ok := r.post[op]
	delete(r.post, op)
	return ok
}

// Pre returns the pre-hook registered for an operation name.
func (r *Registry) Pre(op string) (Hook, bool) {
	h, ok := r.pre[op]
	return h, ok
}

// Post returns the post-hook registered for an operation name.
func (r *Registry) Post(op string) (Hook, bool) {
	h, ok := r.post[op]
	return h, ok
}

// Len returns the total number of registered hooks.
func (r *Registry) Len() int {
	return len(r.pre) + len(r.post)
}
