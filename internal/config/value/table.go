package value

// Table is a string-keyed mapping that preserves insertion order.
// Scope and option ordering in diagnostics and merged output follows
// the order entries were first set.
type Table struct {
	keys  []string
	items map[string]Value
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{items: make(map[string]Value)}
}

// Set stores v under key, appending the key if it is new and keeping
// its original position if it already exists.
func (t *Table) Set(key string, v Value) {
	if _, exists := t.items[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.items[key] = v
}

// Get returns the value stored under key.
func (t *Table) Get(key string) (Value, bool) {
	if t == nil {
		return Value{}, false
	}
	v, ok := t.items[key]
	return v, ok
}

// Has reports whether key is present.
func (t *Table) Has(key string) bool {
	if t == nil {
		return false
	}
	_, ok := t.items[key]
	return ok
}

// Delete removes key. Returns true if the key was present.
func (t *Table) Delete(key string) bool {
	if t == nil {
		return false
	}
	if _, ok := t.items[key]; !ok {
		return false
	}
	delete(t.items, key)
	for i, k := range t.keys {
		if k == key {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the keys in insertion order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	if t == nil {
		return NewTable()
	}
	clone := &Table{
		keys:  make([]string, len(t.keys)),
		items: make(map[string]Value, len(t.items)),
	}
	copy(clone.keys, t.keys)
	for key, v := range t.items {
		clone.items[key] = v.Clone()
	}
	return clone
}

// Equal reports whether both tables hold the same keys with equal
// values. Insertion order is not significant.
func (t *Table) Equal(other *Table) bool {
	if t.Len() != other.Len() {
		return false
	}
	if t == nil {
		return true
	}
	for key, v := range t.items {
		ov, ok := other.items[key]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
