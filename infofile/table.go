// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package infofile implements a streaming, arena-backed key/value parser
// for the vehicle-dynamics sidecar metadata format (spec.md §4.4, §6).
//
// A Table is an ordered, append-only sequence of Entries with a by-key
// Lookup; insertion order is preserved and is the iteration order.
package infofile

import "github.com/yeonsoo-p/liberg/arena"

// Entry is a single key/value pair. Both Key and Value are immutable
// slices borrowed from the Table's arenas; they remain valid until the
// Table's underlying DualArena is Reset or Freed.
type Entry struct {
	Key   []byte
	Value []byte
}

// Table is an ordered key/value table backed by a DualArena: keys in the
// hot arena walked on every Lookup, values in the cold arena touched only
// on a hit.
type Table struct {
	entries []Entry
	arenas  *arena.DualArena
}

// newTable creates an empty Table backed by the given arenas, pre-sizing
// the entry slice to hold entryCapacity entries before it must grow.
func newTable(arenas *arena.DualArena, entryCapacity int) *Table {
	if entryCapacity < 0 {
		entryCapacity = 0
	}
	return &Table{
		entries: make([]Entry, 0, entryCapacity),
		arenas:  arenas,
	}
}

// append copies key and value into the Table's arenas and appends a new
// Entry. The entry slice grows geometrically when full, by Go's append:
// doubling for small slices, by a smaller factor for large ones.
func (t *Table) append(key, value []byte) {
	k := t.arenas.Keys.Strndup(key, len(key))
	v := t.arenas.Values.Strndup(value, len(value))
	t.entries = append(t.entries, Entry{Key: k, Value: v})
}

// Len returns the number of entries in the table.
func (t *Table) Len() int { return len(t.entries) }

// At returns the i'th entry in insertion order.
func (t *Table) At(i int) Entry { return t.entries[i] }

// Entries returns the table's entries in insertion order. The returned
// slice must not be modified or retained past the Table's lifetime.
func (t *Table) Entries() []Entry { return t.entries }

// Lookup performs a case-sensitive linear scan for key, returning the
// value of its first occurrence. Duplicate keys are tolerated by Parse;
// Lookup always returns the first insertion.
func (t *Table) Lookup(key []byte) ([]byte, bool) {
	for _, e := range t.entries {
		if len(e.Key) == len(key) && bytesEqual(e.Key, key) {
			return e.Value, true
		}
	}
	return nil, false
}

// LookupString is a convenience wrapper around Lookup for string keys.
func (t *Table) LookupString(key string) (string, bool) {
	v, ok := t.Lookup([]byte(key))
	if !ok {
		return "", false
	}
	return string(v), true
}

// Arenas returns the DualArena backing this table's entries.
func (t *Table) Arenas() *arena.DualArena { return t.arenas }

func bytesEqual(a, b []byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
