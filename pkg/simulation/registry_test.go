package simulation

import (
	"context"
	"testing"
)

type fakeSim struct{ name string }

func (f *fakeSim) Name() string        { return f.name }
func (f *fakeSim) Description() string { return "fake" }

func (f *fakeSim) Configure(params map[string]interface{}) error { return nil }
func (f *fakeSim) Run(ctx context.Context) error                 { return nil }
func (f *fakeSim) Stop() error                                   { return nil }

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("alpha", func() Simulation { return &fakeSim{name: "alpha"} }); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	sim, err := r.Get("alpha")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if sim.Name() != "alpha" {
		t.Errorf("Expected simulation name 'alpha', got '%s'", sim.Name())
	}

	if _, err := r.Get("missing"); err == nil {
		t.Error("Expected error for unknown simulation")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	factory := func() Simulation { return &fakeSim{name: "alpha"} }

	if err := r.Register("alpha", factory); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register("alpha", factory); err == nil {
		t.Error("Expected error registering duplicate name")
	}
}

func TestRegistryListSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		n := name
		if err := r.Register(n, func() Simulation { return &fakeSim{name: n} }); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	names := r.List()
	expected := []string{"alpha", "bravo", "charlie"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %d names, got %d", len(expected), len(names))
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("Expected names[%d]=%s, got %s", i, name, names[i])
		}
	}
}
