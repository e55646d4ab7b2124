// Package store implements the configuration layer store.
//
// A Store holds one configuration layer as a two-level mapping of scope
// name to option table. Stores are built from parsed value trees with
// strict shape validation, merged with per-option precedence, and read
// through the typed accessor protocol in option.Source.
//
// A Store is immutable once constructed. Merge consumes its inputs and
// returns a new store; accessors are pure reads. A merged store can be
// shared by any number of concurrent readers without coordination.
package store

import (
	"strings"

	"github.com/dshills/stratum/internal/config/loader"
	"github.com/dshills/stratum/internal/config/value"
	"github.com/dshills/stratum/internal/log"
)

// Store is one configuration layer: scope name -> option table.
type Store struct {
	source string
	scopes *value.Table
}

// Empty returns a store with no scopes. It is the identity element for
// Merge.
func Empty() Store {
	return Store{scopes: value.NewTable()}
}

// FromValue validates a parsed tree and wraps it as a store. The source
// names the input (usually a file path) in shape diagnostics.
//
// The root must be a table, and every top-level entry must itself be a
// table: scopes are always tables, never scalars or arrays.
func FromValue(source string, root value.Value) (Store, error) {
	scopes, ok := root.AsTable()
	if !ok {
		return Store{}, &ShapeError{
			Source:   source,
			Expected: "a table",
			Actual:   root.Kind().String(),
			Value:    root.String(),
		}
	}

	for _, scope := range scopes.Keys() {
		sv, _ := scopes.Get(scope)
		if !sv.IsTable() {
			return Store{}, &ShapeError{
				Source:   source,
				Scope:    scope,
				Expected: "a table",
				Actual:   sv.Kind().String(),
				Value:    sv.String(),
			}
		}
	}

	log.Debugf("built store from %s (%d scopes)", source, scopes.Len())
	return Store{source: source, scopes: scopes}, nil
}

// FromString parses TOML text and wraps it as a store.
func FromString(source, text string) (Store, error) {
	root, err := loader.ParseTOML(source, []byte(text))
	if err != nil {
		return Store{}, err
	}
	return FromValue(source, root)
}

// FromFile reads and parses one layer file, choosing the format by
// extension, and wraps it as a store.
func FromFile(fsys loader.FileSystem, path string) (Store, error) {
	root, err := loader.ForPath(fsys, path).LoadFrom(path)
	if err != nil {
		return Store{}, err
	}
	return FromValue(path, root)
}

// Source returns the source name the store was built from. Merged
// stores carry the joined names of their inputs.
func (s Store) Source() string {
	return s.source
}

// Root returns a copy of the store's contents as a value tree, for
// rendering or re-serialization.
func (s Store) Root() value.Value {
	return value.TableValue(s.scopes.Clone())
}

// ScopeNames returns the scope names in store order.
func (s Store) ScopeNames() []string {
	return s.scopes.Keys()
}

// Clone returns a deep copy. Merge consumes its inputs, so holders that
// need a store afterwards merge a clone instead.
func (s Store) Clone() Store {
	return Store{source: s.source, scopes: s.scopes.Clone()}
}

// Equal reports whether both stores hold the same scopes and options.
func (s Store) Equal(other Store) bool {
	return s.scopes.Equal(other.scopes)
}

// Merge combines two layers where a is lower precedence and b higher.
// Scopes are unioned: for scopes present in both, b's options extend
// a's table and win per option name; the option's raw value is replaced
// whole, never deep-merged. Scopes only in b are appended after a's
// scopes, in b's order.
//
// Merge consumes both inputs; neither may be used afterwards.
func Merge(a, b Store) Store {
	merged := value.NewTable()

	// Extend overlapping scopes, a's order first.
	for _, scope := range a.scopes.Keys() {
		av, _ := a.scopes.Get(scope)
		at, _ := av.AsTable()

		if bv, ok := b.scopes.Get(scope); ok {
			bt, _ := bv.AsTable()
			for _, name := range bt.Keys() {
				ov, _ := bt.Get(name)
				at.Set(name, ov)
			}
			b.scopes.Delete(scope)
		}
		merged.Set(scope, value.TableValue(at))
	}

	// Then append scopes present only in b.
	for _, scope := range b.scopes.Keys() {
		bv, _ := b.scopes.Get(scope)
		merged.Set(scope, bv)
	}

	return Store{source: joinSources(a.source, b.source), scopes: merged}
}

// MergeAll folds the stores left to right starting from Empty, so the
// last store has the highest precedence.
func MergeAll(stores ...Store) Store {
	acc := Empty()
	for _, s := range stores {
		acc = Merge(acc, s)
	}
	return acc
}

func joinSources(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return strings.Join([]string{a, b}, ", ")
	}
}
