package rdx

import "sync/atomic"

// mapData is the shared, refcounted payload behind an ArgMap handle. Once
// its refcount exceeds one, any mutator must clone it before writing
// (spec.md §4.3 "Copy-on-write invariant").
type mapData struct {
	fields   map[FieldId]GenericValue
	refCount atomic.Int32
}

func newMapData() *mapData {
	d := &mapData{fields: make(map[FieldId]GenericValue)}
	d.refCount.Store(1)
	return d
}

func (d *mapData) clone() *mapData {
	cp := make(map[FieldId]GenericValue, len(d.fields))
	for k, v := range d.fields {
		cp[k] = v
	}
	nd := &mapData{fields: cp}
	nd.refCount.Store(1)
	return nd
}

// ArgMap is a FieldId -> GenericValue mapping shared, via a refcounted
// handle, between a Command and any CommandRecord or replica that
// captured it (spec.md §3 ArgumentMap / ResultMap). A fresh ArgMap is
// mutable; Share promotes a handle to shared status, after which any
// further mutation through that handle (or a sibling handle sharing the
// same underlying data) triggers a private copy-on-write clone.
type ArgMap struct {
	data *mapData
}

// NewArgMap constructs an empty, mutable ArgMap.
func NewArgMap() *ArgMap {
	return &ArgMap{data: newMapData()}
}

// Share returns a new handle over the same underlying data, incrementing
// its refcount. Both the original and the returned handle observe writes
// made before either performs a copy-on-write clone; once either handle
// mutates, it clones privately and the other is unaffected.
func (m *ArgMap) Share() *ArgMap {
	m.data.refCount.Add(1)
	return &ArgMap{data: m.data}
}

// ensureUnshared clones the underlying data if more than one handle
// currently references it, rebinding m to the clone (spec.md §4.3).
func (m *ArgMap) ensureUnshared() {
	if m.data.refCount.Load() > 1 {
		m.data.refCount.Add(-1)
		m.data = m.data.clone()
	}
}

// Get returns the value stored at key, or Unset() if absent.
func (m *ArgMap) Get(key FieldId) GenericValue {
	v, ok := m.data.fields[key]
	if !ok {
		return Unset()
	}
	return v
}

// Has reports whether key is present with a non-unset value.
func (m *ArgMap) Has(key FieldId) bool {
	v, ok := m.data.fields[key]
	return ok && v.kind != KindUnset
}

// Set writes value at key, cloning the underlying data first if it is
// currently shared by more than one handle.
func (m *ArgMap) Set(key FieldId, value GenericValue) {
	m.ensureUnshared()
	m.data.fields[key] = value
}

// Delete removes key, cloning first if shared.
func (m *ArgMap) Delete(key FieldId) {
	m.ensureUnshared()
	delete(m.data.fields, key)
}

// Len reports the number of present keys.
func (m *ArgMap) Len() int { return len(m.data.fields) }

// Range calls f for each key/value pair. Iteration order is unspecified
// (spec.md §4.2).
func (m *ArgMap) Range(f func(key FieldId, value GenericValue) bool) {
	for k, v := range m.data.fields {
		if !f(k, v) {
			return
		}
	}
}

// Clone returns an independent, mutable copy regardless of current
// sharing status.
func (m *ArgMap) Clone() *ArgMap {
	return &ArgMap{data: m.data.clone()}
}
