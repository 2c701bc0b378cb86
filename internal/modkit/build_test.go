package modkit

import (
	"net/http"
	"reflect"
	"testing"

	"gatehouse/internal/modkit/httpkit"
	"gatehouse/internal/modkit/module"
)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()

	if b.Name != "" {
		t.Fatalf("default Name = %q, want empty", b.Name)
	}
	if b.Prefix != "" {
		t.Fatalf("default Prefix = %q, want empty", b.Prefix)
	}
	if b.Ports != nil {
		t.Fatalf("default Ports non-nil")
	}
	if len(b.Mw) != 0 {
		t.Fatalf("default Mw length = %d, want 0", len(b.Mw))
	}

	// Subrouter default is identity; should return what it was given
	var r httpkit.Router
	if r2 := b.Subrouter(r); r2 != r {
		t.Fatalf("default Subrouter should be identity")
	}

	// Register default is no-op; ensure it doesn't panic
	defer func() {
		if v := recover(); v != nil {
			t.Fatalf("default Register panicked: %v", v)
		}
	}()
	b.Register(r)
}

func TestBuild_WithOptionsAndCopySemantics(t *testing.T) {
	t.Parallel()

	// helpers to compare funcs by pointer (program counter)
	fnPtr := func(f func(http.Handler) http.Handler) uintptr {
		return reflect.ValueOf(f).Pointer()
	}

	// identifiable middlewares
	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }
	mid := []func(http.Handler) http.Handler{mwA, mwB}

	// track that our hooks were invoked
	subCalled := 0
	regCalled := 0

	sub := func(in httpkit.Router) httpkit.Router {
		subCalled++
		return in
	}
	reg := func(in httpkit.Router) {
		regCalled++
	}

	type ports struct {
		X int
		Y string
	}
	p := ports{X: 7, Y: "ok"}

	b := Build(
		WithName("webhook"),
		WithPrefix("/webhook"),
		WithMiddlewares(mid...),
		WithPorts[ports](p),
		WithSubrouter(sub),
		WithRegister(reg),
	)

	// name/prefix/ports
	if b.Name != "webhook" {
		t.Fatalf("Name = %q, want %q", b.Name, "webhook")
	}
	if b.Prefix != "/webhook" {
		t.Fatalf("Prefix = %q, want %q", b.Prefix, "/webhook")
	}
	if got, ok := b.Ports.(ports); !ok || got != p {
		t.Fatalf("Ports mismatch after Build")
	}

	// middleware slice should be copied and ordered
	if len(b.Mw) != 2 {
		t.Fatalf("Mw length = %d, want 2", len(b.Mw))
	}
	if fnPtr(b.Mw[0]) != fnPtr(mwA) || fnPtr(b.Mw[1]) != fnPtr(mwB) {
		t.Fatalf("Mw contents not preserved")
	}

	// mutate the original slice after Build; Built.Mw must not change
	mwC := func(next http.Handler) http.Handler { return next }
	mid[0] = mwC

	if fnPtr(b.Mw[0]) != fnPtr(mwA) {
		t.Fatalf("Built.Mw changed after source slice mutation (index 0)")
	}
	if fnPtr(b.Mw[1]) != fnPtr(mwB) {
		t.Fatalf("Built.Mw changed after source slice mutation (index 1)")
	}

	// hooks are plumbed through
	var r httpkit.Router
	if out := b.Subrouter(r); out != r {
		t.Fatalf("Subrouter did not return input Router as expected")
	}
	if subCalled != 1 {
		t.Fatalf("Subrouter not invoked the expected number of times: %d", subCalled)
	}

	b.Register(r)
	if regCalled != 1 {
		t.Fatalf("Register not invoked the expected number of times: %d", regCalled)
	}
}

type noopModule struct{ name string }

func (n noopModule) MountRoutes(httpkit.Router) {}
func (n noopModule) Ports() any                 { return nil }
func (n noopModule) Name() string               { return n.name }

func TestModuleContractSharedWithRegistry(t *testing.T) {
	t.Parallel()

	// constructors shaped like New(deps, opts...) satisfy Builder
	var build Builder = func(Deps, ...Option) Module { return noopModule{name: "demo"} }

	m := build(Deps{})
	if m.Name() != "demo" {
		t.Fatalf("Name = %q, want %q", m.Name(), "demo")
	}

	// the root Module type and the registry's sibling contract are one and the same
	var sibling module.Module = m
	if sibling.Name() != m.Name() {
		t.Fatalf("alias and sibling contract disagree")
	}
}
