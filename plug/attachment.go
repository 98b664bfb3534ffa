package plug

import "fmt"

// Attachment is auxiliary data bound to a host by name. An attachment
// exposes its hooks through a Registry; it observes the host's
// operations but must never mutate another attachment.
type Attachment interface {
	// Hooks returns the attachment's hook registry.
	Hooks() *Registry
}

// Set is the insertion-ordered collection of attachments held by a
// host. Iteration order is the order attachments were first added and
// is authoritative for hook composition: pre-hooks run in set order,
// post-hooks in reverse.
//
// Attachments are permanent once added; the framework never prunes an
// attachment just because it registers no hooks.
type Set struct {
	names  []string
	byName map[string]Attachment
}

// NewSet creates an empty attachment set.
func NewSet() *Set {
	return &Set{byName: make(map[string]Attachment)}
}

// Add binds an attachment to a name. Re-adding an existing name
// replaces the attachment but keeps its original position in the
// iteration order.
func (s *Set) Add(name string, a Attachment) {
	if _, ok := s.byName[name]; !ok {
		s.names = append(s.names, name)
	}
	s.byName[name] = a
}

// Remove unbinds an attachment by name.
func (s *Set) Remove(name string) bool {
	if _, ok := s.byName[name]; !ok {
		return false
	}
	delete(s.byName, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the attachment bound to a name.
func (s *Set) Get(name string) (Attachment, error) {
	a, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAttachmentNotFound, name)
	}
	return a, nil
}

// Has reports whether a name is bound to an attachment.
func (s *Set) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Len returns the number of attachments.
func (s *Set) Len() int {
	return len(s.names)
}

// Names returns the attachment names in iteration order.
func (s *Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}
