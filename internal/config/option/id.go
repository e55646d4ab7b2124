// Package option defines option identities, list edits, string dicts,
// and the accessor protocol every option source implements.
package option

import "strings"

// NameTransform controls how an option's name components are cased when
// rendered for a particular source.
type NameTransform uint8

const (
	// TransformNone joins the components as-is.
	TransformNone NameTransform = iota
	// TransformToLower lowercases each component.
	TransformToLower
	// TransformToUpper uppercases each component.
	TransformToUpper
)

// Id addresses a single option: a scope name plus one or more name
// components. Sources decide how the components are joined and cased
// for their own lookup keys.
type Id struct {
	scope string
	parts []string
}

// NewId creates an option identity. The scope names the option table the
// option lives in; parts are the words of the option name.
func NewId(scope string, parts ...string) Id {
	return Id{scope: scope, parts: parts}
}

// Scope returns the scope name.
func (id Id) Scope() string {
	return id.scope
}

// Name joins the name components with sep after applying the transform.
func (id Id) Name(sep string, transform NameTransform) string {
	parts := id.parts
	switch transform {
	case TransformToLower:
		lowered := make([]string, len(parts))
		for i, p := range parts {
			lowered[i] = strings.ToLower(p)
		}
		parts = lowered
	case TransformToUpper:
		raised := make([]string, len(parts))
		for i, p := range parts {
			raised[i] = strings.ToUpper(p)
		}
		parts = raised
	}
	return strings.Join(parts, sep)
}

// String returns the display form used in user-facing diagnostics,
// e.g. "[server] listen_address".
func (id Id) String() string {
	return "[" + id.scope + "] " + id.Name("_", TransformNone)
}
