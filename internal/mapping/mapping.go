package mapping

import (
	"sort"
)

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value any
}

// E is a shorthand for Entry for ergonomic construction.
// Example: New(E("name", "Lou%"), E("age.gt", 18))
func E(key string, value any) Entry {
	return Entry{Key: key, Value: value}
}

// Mapping is an insertion-ordered map with unique string keys.
//
// Filter input is order-sensitive (entry order fixes clause and parameter
// order), which Go maps cannot express. Values are scalars, lists ([]any)
// or nested *Mapping or map[string]any values.
//
// The zero value is an empty mapping ready to use. A nil *Mapping reads as
// empty.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

// New creates a Mapping from entries. A repeated key overwrites the earlier
// value in place.
func New(entries ...Entry) *Mapping {
	m := &Mapping{}
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// Set stores value under key. An existing key keeps its position and gets
// the new value; a new key is appended.
func (m *Mapping) Set(key string, value any) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = value
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (any, bool) {
	if m == nil || m.index == nil {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// At returns the i-th entry in insertion order.
func (m *Mapping) At(i int) Entry {
	return m.entries[i]
}

// Entries returns a copy of the entries in insertion order.
func (m *Mapping) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// FromMap converts the top level of a plain Go map.
//
// Go maps are unordered, so entries are taken in sorted key order to keep
// the result deterministic. Values are stored as given: a nested
// map[string]any stays a Go map and is converted by whoever walks into it,
// one level at a time, so a map that contains itself is never expanded
// here.
func FromMap(src map[string]any) *Mapping {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := &Mapping{}
	for _, k := range keys {
		m.Set(k, src[k])
	}
	return m
}
