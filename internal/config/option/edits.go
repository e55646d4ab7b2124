package option

import "github.com/dshills/stratum/internal/config/value"

// ListEditAction describes how a layer wants to modify an accumulated
// list-valued option.
type ListEditAction uint8

const (
	// ListEditAdd appends items to the accumulated list.
	ListEditAdd ListEditAction = iota
	// ListEditRemove removes items from the accumulated list.
	ListEditRemove
	// ListEditReplace discards the accumulated list and starts over.
	ListEditReplace
)

// String returns the action name.
func (a ListEditAction) String() string {
	switch a {
	case ListEditAdd:
		return "add"
	case ListEditRemove:
		return "remove"
	case ListEditReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// ListEdit is one instruction in a layer's edit sequence for a
// list-valued option. The fold against lower-precedence layers happens
// outside this package; a source only produces the ordered edits for
// its own layer.
type ListEdit struct {
	Action ListEditAction
	Items  []string
}

// Add is shorthand for an add edit.
func Add(items ...string) ListEdit {
	return ListEdit{Action: ListEditAdd, Items: items}
}

// Remove is shorthand for a remove edit.
func Remove(items ...string) ListEdit {
	return ListEdit{Action: ListEditRemove, Items: items}
}

// Replace is shorthand for a replace edit.
func Replace(items ...string) ListEdit {
	return ListEdit{Action: ListEditReplace, Items: items}
}

// StringDict is the resolved form of a dict-valued option: either a
// literal string whose parsing is deferred to a secondary parser, or a
// native table reconstructed from the configuration tree with each
// entry's generic value preserved as-is.
type StringDict struct {
	literal  string
	native   *value.Table
	isNative bool
}

// LiteralDict wraps an unparsed string dict value.
func LiteralDict(s string) StringDict {
	return StringDict{literal: s}
}

// NativeDict wraps a table dict value.
func NativeDict(t *value.Table) StringDict {
	if t == nil {
		t = value.NewTable()
	}
	return StringDict{native: t, isNative: true}
}

// Literal returns the unparsed string form. The second result is false
// for native dicts.
func (d StringDict) Literal() (string, bool) {
	if d.isNative {
		return "", false
	}
	return d.literal, true
}

// Native returns the table form. The second result is false for
// literal dicts.
func (d StringDict) Native() (*value.Table, bool) {
	if !d.isNative {
		return nil, false
	}
	return d.native, true
}
