package store

import (
	"fmt"

	"github.com/dshills/stratum/internal/config/option"
	"github.com/dshills/stratum/internal/config/value"
)

// Store implements option.Source. Config files address options by the
// underscore-joined name with no case transform.
var _ option.Source = Store{}

// optionName returns the config-file lookup key for an option.
func optionName(id option.Id) string {
	return id.Name("_", option.TransformNone)
}

// lookup returns the raw value for an option, or false when the scope
// or the option is absent.
func (s Store) lookup(id option.Id) (value.Value, bool) {
	sv, ok := s.scopes.Get(id.Scope())
	if !ok {
		return value.Value{}, false
	}
	st, ok := sv.AsTable()
	if !ok {
		// Construction guarantees scope values are tables.
		return value.Value{}, false
	}
	return st.Get(optionName(id))
}

// Display renders the option identity for diagnostics.
func (s Store) Display(id option.Id) string {
	return id.String()
}

// GetString returns the option's string value, nil when absent.
func (s Store) GetString(id option.Id) (*string, error) {
	v, ok := s.lookup(id)
	if !ok {
		return nil, nil
	}
	str, ok := v.AsString()
	if !ok {
		return nil, s.mismatch(id, "a string", v)
	}
	return &str, nil
}

// GetBool returns the option's bool value, nil when absent.
func (s Store) GetBool(id option.Id) (*bool, error) {
	v, ok := s.lookup(id)
	if !ok {
		return nil, nil
	}
	b, ok := v.AsBool()
	if !ok {
		return nil, s.mismatch(id, "a bool", v)
	}
	return &b, nil
}

// GetInt returns the option's integer value, nil when absent. A float
// value is a mismatch even when it is integral.
func (s Store) GetInt(id option.Id) (*int64, error) {
	v, ok := s.lookup(id)
	if !ok {
		return nil, nil
	}
	i, ok := v.AsInt()
	if !ok {
		return nil, s.mismatch(id, "an int", v)
	}
	return &i, nil
}

// GetFloat returns the option's float value, nil when absent. An int
// value is a mismatch; no numeric coercion happens here.
func (s Store) GetFloat(id option.Id) (*float64, error) {
	v, ok := s.lookup(id)
	if !ok {
		return nil, nil
	}
	f, ok := v.AsFloat()
	if !ok {
		return nil, s.mismatch(id, "a float", v)
	}
	return &f, nil
}

// GetStringList returns this layer's list edits for the option, nil
// when the scope or option is absent. The raw value's shape picks the
// interpretation:
//
//   - a table may hold only "add" and/or "remove" string arrays and
//     yields those edits in add-then-remove order;
//   - a string is parsed with the compact list-edit syntax;
//   - anything else is extracted as a string array and yields a single
//     replace edit.
func (s Store) GetStringList(id option.Id) ([]option.ListEdit, error) {
	sv, ok := s.scopes.Get(id.Scope())
	if !ok {
		return nil, nil
	}
	scopeTable, ok := sv.AsTable()
	if !ok {
		return nil, nil
	}

	name := optionName(id)
	v, ok := scopeTable.Get(name)
	if !ok {
		return nil, nil
	}

	var edits []option.ListEdit
	switch v.Kind() {
	case value.KindTable:
		tab, _ := v.AsTable()
		if err := checkEditKeys(name, tab, v); err != nil {
			return nil, err
		}
		if add, ok := tab.Get("add"); ok {
			items, err := stringItems(name+".add", add)
			if err != nil {
				return nil, err
			}
			edits = append(edits, option.ListEdit{Action: option.ListEditAdd, Items: items})
		}
		if remove, ok := tab.Get("remove"); ok {
			items, err := stringItems(name+".remove", remove)
			if err != nil {
				return nil, err
			}
			edits = append(edits, option.ListEdit{Action: option.ListEditRemove, Items: items})
		}
	case value.KindString:
		str, _ := v.AsString()
		parsed, perr := option.ParseStringList(str)
		if perr != nil {
			return nil, &ListSyntaxError{Option: s.Display(id), Err: perr}
		}
		edits = append(edits, parsed...)
	default:
		items, err := stringItems(name, v)
		if err != nil {
			return nil, err
		}
		edits = append(edits, option.ListEdit{Action: option.ListEditReplace, Items: items})
	}

	if len(edits) == 0 {
		return nil, nil
	}
	return edits, nil
}

// GetStringDict returns the option's dict value, nil when absent. A
// string defers parsing to the caller as a literal; a table becomes a
// native dict with each entry's generic value preserved as-is.
func (s Store) GetStringDict(id option.Id) (*option.StringDict, error) {
	sv, ok := s.scopes.Get(id.Scope())
	if !ok {
		return nil, nil
	}
	scopeTable, ok := sv.AsTable()
	if !ok {
		return nil, nil
	}

	v, ok := scopeTable.Get(optionName(id))
	if !ok {
		return nil, nil
	}

	switch v.Kind() {
	case value.KindString:
		str, _ := v.AsString()
		d := option.LiteralDict(str)
		return &d, nil
	case value.KindTable:
		tab, _ := v.AsTable()
		d := option.NativeDict(tab.Clone())
		return &d, nil
	default:
		return nil, &TypeMismatchError{
			Option:   s.Display(id),
			Expected: "a string or a table",
			Actual:   fmt.Sprintf("a %s: %s", v.Kind(), v),
		}
	}
}

// mismatch builds the standard scalar mismatch error.
func (s Store) mismatch(id option.Id, expected string, v value.Value) error {
	return &TypeMismatchError{
		Option:   s.Display(id),
		Expected: expected,
		Actual:   v.String(),
	}
}

// checkEditKeys enforces that a table-shaped list option holds an
// "add" entry, a "remove" entry, or both, and nothing else.
func checkEditKeys(name string, tab *value.Table, raw value.Value) error {
	ok := tab.Len() > 0
	for _, key := range tab.Keys() {
		if key != "add" && key != "remove" {
			ok = false
			break
		}
	}
	if !ok {
		return &TypeMismatchError{
			Option:   name,
			Expected: "a table with an 'add' entry, a 'remove' entry, or both",
			Actual:   raw.String(),
		}
	}
	return nil
}

// stringItems extracts an array of strings, naming the (possibly
// qualified) option in any mismatch.
func stringItems(name string, v value.Value) ([]string, error) {
	arr, ok := v.AsArray()
	if !ok {
		return nil, &TypeMismatchError{
			Option:   name,
			Expected: "an array of strings",
			Actual:   v.String(),
		}
	}

	items := make([]string, 0, len(arr))
	for _, item := range arr {
		str, ok := item.AsString()
		if !ok {
			return nil, &TypeMismatchError{
				Option:   name,
				Expected: "an array of strings",
				Actual:   fmt.Sprintf("%s containing non-string item %s", v, item),
			}
		}
		items = append(items, str)
	}
	return items, nil
}
