package mapper

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	r := New()
	if r == nil {
		t.Fatal("New() returned nil")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
	if err := r.Compile(); err != nil {
		t.Errorf("Compile() on empty registry error: %v", err)
	}
}

func TestRegistry_Duplicate(t *testing.T) {
	r := New()
	if _, err := CreateMap[source, dest](r); err != nil {
		t.Fatalf("CreateMap() error: %v", err)
	}

	m, err := CreateMap[source, dest](r)
	if !errors.Is(err, ErrDuplicateMap) {
		t.Errorf("second CreateMap() error = %v, want ErrDuplicateMap", err)
	}
	if m != nil {
		t.Error("failed CreateMap() should return a nil map")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistry_ReplaceDuplicates(t *testing.T) {
	r := New(WithReplaceDuplicates())

	first := MustCreateMap[source, dest](r)
	first.MapProperty(func(d *dest) any { return &d.Extra }, func(*source) any { return "first" })

	second, err := CreateMap[source, dest](r)
	if err != nil {
		t.Fatalf("second CreateMap() error: %v", err)
	}
	if second == first {
		t.Fatal("replacement should be a new map")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}

	if err := r.Compile(); err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	out, err := To[dest](r, source{})
	if err != nil {
		t.Fatalf("To() error: %v", err)
	}
	if out.Extra != "" {
		t.Errorf("replaced map rules should not run, Extra = %q", out.Extra)
	}
}

func TestRegistry_NameMatcher(t *testing.T) {
	type lower struct{ Name string }
	type upper struct{ NAME string }

	_, err := CreateMap[lower, upper](New())
	if err != nil {
		t.Fatalf("CreateMap() error: %v", err)
	}

	r := New(WithNameMatcher(strings.EqualFold))
	m, err := CreateMap[lower, upper](r)
	if err != nil {
		t.Fatalf("CreateMap() error: %v", err)
	}
	rules := m.Rules()
	if len(rules) != 1 || rules[0] != (Rule{Source: "Name", Destination: "NAME", Kind: RuleCopy}) {
		t.Errorf("Rules() = %+v, want Name -> NAME copy", rules)
	}

	if err := r.Compile(); err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	out, err := To[upper](r, &lower{Name: "x"})
	if err != nil {
		t.Fatalf("To() error: %v", err)
	}
	if out.NAME != "x" {
		t.Errorf("NAME = %q, want x", out.NAME)
	}
}

func TestMustCreateMap_Panics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustCreateMap() should panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrIncompatibleTypes) {
			t.Errorf("panic value = %v, want ErrIncompatibleTypes", r)
		}
	}()
	MustCreateMap[incompatibleSource, incompatibleDest](New())
}

func TestRegistry_As(t *testing.T) {
	r := New()
	MustCreateMap[source, dest](r)
	if err := r.Compile(); err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	t.Run("pointer source", func(t *testing.T) {
		var out dest
		if err := r.As(&source{ID: 1}, &out); err != nil {
			t.Fatalf("As() error: %v", err)
		}
		if out.ID != 1 {
			t.Errorf("ID = %d, want 1", out.ID)
		}
	})

	t.Run("value source", func(t *testing.T) {
		var out dest
		if err := r.As(source{ID: 2}, &out); err != nil {
			t.Fatalf("As() error: %v", err)
		}
		if out.ID != 2 {
			t.Errorf("ID = %d, want 2", out.ID)
		}
	})

	t.Run("context", func(t *testing.T) {
		var out dest
		if err := r.AsContext(context.Background(), source{Name: "c"}, &out); err != nil {
			t.Fatalf("AsContext() error: %v", err)
		}
		if out.Name != "c" {
			t.Errorf("Name = %q, want c", out.Name)
		}
	})
}

func TestRegistry_AsInvalidArguments(t *testing.T) {
	r := New()
	MustCreateMap[source, dest](r)
	if err := r.Compile(); err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	var out dest
	tests := []struct {
		name string
		src  any
		dst  any
	}{
		{"nil source", nil, &out},
		{"typed nil source", (*source)(nil), &out},
		{"nil destination", source{}, nil},
		{"typed nil destination", source{}, (*dest)(nil)},
		{"destination not a pointer", source{}, out},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.As(tt.src, tt.dst); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("As() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestRegistry_AsNotFound(t *testing.T) {
	r := New()
	MustCreateMap[source, dest](r)

	var out source
	err := r.As(dest{}, &out)
	if !errors.Is(err, ErrMapNotFound) {
		t.Fatalf("As() error = %v, want ErrMapNotFound", err)
	}

	var mapErr *MapError
	if !errors.As(err, &mapErr) {
		t.Fatalf("As() error should be *MapError, got %T", err)
	}
	if mapErr.Map != "mapper.dest||mapper.source" {
		t.Errorf("MapError.Map = %q", mapErr.Map)
	}
}

func TestRegistry_AsNotCompiled(t *testing.T) {
	r := New()
	MustCreateMap[source, dest](r)

	var out dest
	if err := r.As(source{}, &out); !errors.Is(err, ErrNotCompiled) {
		t.Errorf("As() error = %v, want ErrNotCompiled", err)
	}
}

func TestTo(t *testing.T) {
	r := New()
	MustCreateMap[source, dest](r)
	if err := r.Compile(); err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	out, err := To[dest](r, &source{ID: 7, Name: "n"})
	if err != nil {
		t.Fatalf("To() error: %v", err)
	}
	if out.ID != 7 || out.Name != "n" {
		t.Errorf("To() = %+v", out)
	}

	if _, err := To[card](r, &source{}); !errors.Is(err, ErrMapNotFound) {
		t.Errorf("To[card]() error = %v, want ErrMapNotFound", err)
	}

	partial, err := ToContext[dest](context.Background(), r, &source{Count: 1 << 40, ID: 3})
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("ToContext() error = %v, want ErrOverflow", err)
	}
	if partial != (dest{}) {
		t.Errorf("failed To should return the zero value, got %+v", partial)
	}
}

func TestRegistry_CompileJoinsErrors(t *testing.T) {
	r := New()
	a := MustCreateMap[source, dest](r)
	b := a.ReverseMap()

	a.MapProperty(func(d *dest) any { return d.ID }, func(*source) any { return 1 })
	b.MapProperty(func(s *source) any { return s }, func(*dest) any { return nil })

	err := r.Compile()
	if err == nil {
		t.Fatal("Compile() should fail")
	}
	if !errors.Is(err, ErrUnresolvedMember) {
		t.Errorf("Compile() error = %v, want ErrUnresolvedMember", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "mapper.source||mapper.dest") || !strings.Contains(msg, "mapper.dest||mapper.source") {
		t.Errorf("Compile() error should name both maps, got %q", msg)
	}
}

func TestRegistry_CompileContinuesPastFailure(t *testing.T) {
	r := New()
	MustCreateMap[person, card](r).
		MapProperty(func(c *card) any { return c }, func(*person) any { return nil })
	MustCreateMap[source, dest](r)

	if err := r.Compile(); err == nil {
		t.Fatal("Compile() should fail")
	}

	out, err := To[dest](r, source{ID: 9})
	if err != nil {
		t.Fatalf("healthy map should still compile, To() error: %v", err)
	}
	if out.ID != 9 {
		t.Errorf("ID = %d, want 9", out.ID)
	}
}

func TestRegistry_Plans(t *testing.T) {
	r := New()
	MustCreateMap[source, dest](r).ReverseMap()
	MustCreateMap[person, card](r)

	plans := r.Plans()
	if len(plans) != 3 {
		t.Fatalf("Plans() len = %d, want 3", len(plans))
	}
	want := []string{"mapper.dest||mapper.source", "mapper.person||mapper.card", "mapper.source||mapper.dest"}
	for i, p := range plans {
		if p.Identifier != want[i] {
			t.Errorf("Plans()[%d].Identifier = %q, want %q", i, p.Identifier, want[i])
		}
	}

	manifest := r.Manifest()
	if len(manifest.Maps) != 3 {
		t.Errorf("Manifest().Maps len = %d, want 3", len(manifest.Maps))
	}
}

func TestPairKey_String(t *testing.T) {
	r := New()
	m := MustCreateMap[source, dest](r)
	if m.key.String() != "mapper.source||mapper.dest" {
		t.Errorf("pairKey.String() = %q", m.key.String())
	}
}
