package store

import (
	"errors"
	"testing"

	"github.com/dshills/stratum/internal/config/value"
)

func mustStore(t *testing.T, source, text string) Store {
	t.Helper()
	s, err := FromString(source, text)
	if err != nil {
		t.Fatalf("FromString(%s) failed: %v", source, err)
	}
	return s
}

func TestFromStringValid(t *testing.T) {
	s := mustStore(t, "test.toml", `
[server]
port = 8080

[client]
retries = 3
`)

	want := []string{"client", "server"} // TOML decodes through a map; scopes are sorted
	got := s.ScopeNames()
	if len(got) != 2 {
		t.Fatalf("ScopeNames() = %v, want two scopes", got)
	}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("ScopeNames()[%d] = %q, want %q", i, got[i], name)
		}
	}
}

func TestFromValueRejectsNonTableRoot(t *testing.T) {
	tests := []struct {
		name string
		root value.Value
	}{
		{"array root", value.Strings("a", "b")},
		{"string root", value.Str("nope")},
		{"int root", value.Int(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromValue("bad.toml", tt.root)
			var serr *ShapeError
			if !errors.As(err, &serr) {
				t.Fatalf("error is %T, want *ShapeError", err)
			}
			if serr.Scope != "" {
				t.Errorf("ShapeError.Scope = %q, want empty", serr.Scope)
			}
			if !errors.Is(err, ErrInvalidShape) {
				t.Error("errors.Is(err, ErrInvalidShape) = false")
			}
		})
	}
}

func TestFromStringRejectsNonTableScope(t *testing.T) {
	_, err := FromString("bad.toml", `scope = "not a table"`)
	var serr *ShapeError
	if !errors.As(err, &serr) {
		t.Fatalf("error is %T, want *ShapeError", err)
	}
	if serr.Scope != "scope" {
		t.Errorf("ShapeError.Scope = %q, want %q", serr.Scope, "scope")
	}
	if serr.Source != "bad.toml" {
		t.Errorf("ShapeError.Source = %q, want %q", serr.Source, "bad.toml")
	}
}

func TestFromStringParseError(t *testing.T) {
	_, err := FromString("bad.toml", "[unclosed")
	if err == nil {
		t.Fatal("FromString of invalid TOML succeeded")
	}
	var serr *ShapeError
	if errors.As(err, &serr) {
		t.Fatal("got ShapeError for a syntax problem, want parse error")
	}
}

func TestMergeIdentity(t *testing.T) {
	text := `
[server]
port = 8080
tags = ["a"]
`
	left := Merge(Empty(), mustStore(t, "s.toml", text))
	if !left.Equal(mustStore(t, "s.toml", text)) {
		t.Error("Merge(Empty, S) != S")
	}

	right := Merge(mustStore(t, "s.toml", text), Empty())
	if !right.Equal(mustStore(t, "s.toml", text)) {
		t.Error("Merge(S, Empty) != S")
	}
}

func TestMergePrecedence(t *testing.T) {
	a := mustStore(t, "a.toml", `
[server]
port = 1111
host = "a"
`)
	b := mustStore(t, "b.toml", `
[server]
port = 2222
`)

	merged := Merge(a, b)
	want := mustStore(t, "want.toml", `
[server]
port = 2222
host = "a"
`)
	if !merged.Equal(want) {
		t.Errorf("merged store differs from expected")
	}
}

func TestMergeAdditivity(t *testing.T) {
	a := mustStore(t, "a.toml", `
[shared]
only_a = 1
`)
	b := mustStore(t, "b.toml", `
[shared]
only_b = 2

[extra]
x = true
`)

	merged := Merge(a, b)
	want := mustStore(t, "want.toml", `
[shared]
only_a = 1
only_b = 2

[extra]
x = true
`)
	if !merged.Equal(want) {
		t.Error("merged store differs from expected")
	}

	// Scope order: a's scopes first, then b's remaining scopes.
	names := merged.ScopeNames()
	if len(names) != 2 || names[0] != "shared" || names[1] != "extra" {
		t.Errorf("ScopeNames() = %v, want [shared extra]", names)
	}
}

func TestMergeReplacesOptionWhole(t *testing.T) {
	// A later layer's value replaces the earlier one's entirely, even
	// for structured values. A bare replacement list silently discards
	// an earlier layer's add/remove table; that asymmetry is part of
	// the contract.
	a := mustStore(t, "a.toml", `
[scope]
plugins = { add = ["x"] }
`)
	b := mustStore(t, "b.toml", `
[scope]
plugins = ["y"]
`)

	merged := Merge(a, b)
	want := mustStore(t, "want.toml", `
[scope]
plugins = ["y"]
`)
	if !merged.Equal(want) {
		t.Error("merged store differs from expected")
	}
}

func TestMergeAll(t *testing.T) {
	s1 := mustStore(t, "1.toml", `
[s]
v = 1
`)
	s2 := mustStore(t, "2.toml", `
[s]
v = 2
`)
	s3 := mustStore(t, "3.toml", `
[s]
v = 3
`)

	merged := MergeAll(s1, s2, s3)
	want := mustStore(t, "want.toml", `
[s]
v = 3
`)
	if !merged.Equal(want) {
		t.Error("MergeAll did not give the last store precedence")
	}

	if !MergeAll().Equal(Empty()) {
		t.Error("MergeAll() != Empty()")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	original := mustStore(t, "o.toml", `
[s]
v = 1
`)
	clone := original.Clone()

	// Merging the clone must not corrupt the original.
	overlay := mustStore(t, "x.toml", `
[s]
v = 2
`)
	_ = Merge(clone, overlay)

	want := mustStore(t, "o.toml", `
[s]
v = 1
`)
	if !original.Equal(want) {
		t.Error("original store mutated by merging its clone")
	}
}
