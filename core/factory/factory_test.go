package factory

import "testing"

type sample struct{ A int }

type sampleConf struct {
	A int `json:"a"`
}

// Test registry registration and instantiation using Decode.
func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*sample]()
	if err := reg.Register("s", func(conf map[string]any) (*sample, error) {
		var c sampleConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sample{A: c.A}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := reg.Create(ModuleConfig{Type: "s", Conf: map[string]any{"a": 3}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.A != 3 {
		t.Fatalf("expected 3 got %d", inst.A)
	}
}

// Test duplicate registration and unknown type errors.
func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", nil); err == nil {
		t.Fatal("expected duplicate error")
	}
	if _, err := reg.Create(ModuleConfig{Type: "y"}); err == nil {
		t.Fatal("expected unknown type error")
	}
	if err := reg.Alias("z", "missing"); err == nil {
		t.Fatal("expected alias to unknown type to fail")
	}
	if err := reg.Alias("x", "x"); err == nil {
		t.Fatal("expected alias shadowing a type to fail")
	}
}

func TestRegistry_AliasAndNames(t *testing.T) {
	reg := NewRegistry[string]()
	for _, n := range []string{"beta", "alpha"} {
		name := n
		if err := reg.Register(name, func(map[string]any) (string, error) { return name, nil }); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	if err := reg.Alias("A", "alpha"); err != nil {
		t.Fatalf("alias: %v", err)
	}
	got, err := reg.Create(ModuleConfig{Type: "A"})
	if err != nil || got != "alpha" {
		t.Fatalf("expected alpha via alias, got %q (%v)", got, err)
	}
	names := reg.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Fatalf("unexpected names %v", names)
	}
	if _, ok := reg.Resolve("A"); !ok {
		t.Fatal("alias should resolve")
	}
}
