package plug_test

import (
	"errors"
	"testing"

	"github.com/dshills/plughook/plug"
)

type noopAttachment struct {
	hooks *plug.Registry
}

func (a *noopAttachment) Hooks() *plug.Registry { return a.hooks }

func newNoop() *noopAttachment {
	return &noopAttachment{hooks: plug.NewRegistry()}
}

// TestSetInsertionOrder verifies Names reflects the order attachments
// were first added.
func TestSetInsertionOrder(t *testing.T) {
	s := plug.NewSet()
	s.Add("c", newNoop())
	s.Add("a", newNoop())
	s.Add("b", newNoop())

	names := s.Names()
	want := []string{"c", "a", "b"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, names)
		}
	}
}

// TestSetReAddKeepsPosition verifies replacing an attachment keeps its
// slot in the iteration order.
func TestSetReAddKeepsPosition(t *testing.T) {
	s := plug.NewSet()
	s.Add("a", newNoop())
	s.Add("b", newNoop())

	replacement := newNoop()
	s.Add("a", replacement)

	if s.Len() != 2 {
		t.Fatalf("expected 2 attachments, got %d", s.Len())
	}
	if names := s.Names(); names[0] != "a" || names[1] != "b" {
		t.Errorf("expected re-add to keep position, got %v", names)
	}
	got, err := s.Get("a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.(*noopAttachment) != replacement {
		t.Error("expected the replacement attachment")
	}
}

// TestSetGetNotFound verifies missing names surface the not-found
// condition.
func TestSetGetNotFound(t *testing.T) {
	s := plug.NewSet()
	if _, err := s.Get("ghost"); !errors.Is(err, plug.ErrAttachmentNotFound) {
		t.Errorf("expected ErrAttachmentNotFound, got %v", err)
	}
}

// TestSetRemove verifies removal updates order and lookup together.
func TestSetRemove(t *testing.T) {
	s := plug.NewSet()
	s.Add("a", newNoop())
	s.Add("b", newNoop())

	if !s.Remove("a") {
		t.Fatal("expected Remove to report success")
	}
	if s.Remove("a") {
		t.Error("expected second Remove to report failure")
	}
	if s.Len() != 1 || s.Names()[0] != "b" {
		t.Errorf("unexpected set state after remove: %v", s.Names())
	}
}

// TestRegistryLookup verifies exact-name hook lookup and replacement.
func TestRegistryLookup(t *testing.T) {
	r := plug.NewRegistry()

	if _, ok := r.Pre("scale"); ok {
		t.Error("expected no pre-hook on empty registry")
	}

	ran := ""
	r.RegisterPre("scale", func(v plug.Value, call *plug.Call) (plug.Value, error) {
		ran = "first"
		return v, nil
	})
	r.RegisterPre("scale", func(v plug.Value, call *plug.Call) (plug.Value, error) {
		ran = "second"
		return v, nil
	})
	r.RegisterPost("scale", func(v plug.Value, call *plug.Call) (plug.Value, error) {
		return v, nil
	})

	h, ok := r.Pre("scale")
	if !ok {
		t.Fatal("expected pre-hook for scale")
	}
	if _, err := h(nil, plug.NewCall()); err != nil {
		t.Fatalf("hook: %v", err)
	}
	if ran != "second" {
		t.Errorf("expected re-registration to replace, got %q", ran)
	}
	if r.Len() != 2 {
		t.Errorf("expected 2 hooks, got %d", r.Len())
	}
	if !r.UnregisterPost("scale") || r.Len() != 1 {
		t.Error("expected post-hook unregistered")
	}
	if _, ok := r.Pre("translate"); ok {
		t.Error("expected no hook for unrelated name")
	}
}

// TestMixinImmutableName verifies a field write over an attachment
// name is rejected and the attachment survives.
func TestMixinImmutableName(t *testing.T) {
	g := newGrid(1)
	a := newNoop()
	g.Plugs().Add("anchors", a)

	err := g.SetField("anchors", 42)
	if !errors.Is(err, plug.ErrImmutableName) {
		t.Fatalf("expected ErrImmutableName, got %v", err)
	}

	got, err := g.Plugs().Get("anchors")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.(*noopAttachment) != a {
		t.Error("attachment changed by rejected write")
	}
	if _, ok := g.Field("anchors"); ok {
		t.Error("rejected write left a field behind")
	}
}

// TestMixinFieldBeforeAttachment verifies a name bound as a field
// first stays writable and shadows nothing.
func TestMixinFieldBeforeAttachment(t *testing.T) {
	g := newGrid(1)
	if err := g.SetField("label", "bulk"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if err := g.SetField("label", "edge"); err != nil {
		t.Fatalf("SetField rewrite: %v", err)
	}
	v, err := g.Attr("label")
	if err != nil || v != "edge" {
		t.Errorf("expected field value, got %v, %v", v, err)
	}
}
