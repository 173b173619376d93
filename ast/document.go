package ast

import "strings"

// CanonicalName returns name wrapped in angle brackets. Names that are
// already wrapped are returned unchanged, so "x" and "<x>" address the
// same slot.
func CanonicalName(name string) string {
	if !strings.HasPrefix(name, "<") {
		name = "<" + name
	}
	if !strings.HasSuffix(name, ">") {
		name += ">"
	}
	return name
}

// BareName strips the angle brackets from a canonical name.
func BareName(name string) string {
	name = CanonicalName(name)
	return name[1 : len(name)-1]
}

// Entry is a single name/value pair of a Document.
type Entry struct {
	Name  string
	Value Value
}

// Document is the root node of an FLG document: an ordered mapping from
// canonical names to values plus a document-wide override flag.
//
// A Document is not safe for concurrent mutation.
type Document struct {
	entries  []Entry
	index    map[string]int
	override bool
}

// New returns an empty document.
func New() *Document {
	return &Document{index: make(map[string]int)}
}

// Set stores v under name. An existing entry keeps its position.
// A nil v is stored as Null.
func (d *Document) Set(name string, v Value) *Document {
	if v == nil {
		v = Null{}
	}
	name = CanonicalName(name)
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[name]; ok {
		d.entries[i].Value = v
		return d
	}
	d.index[name] = len(d.entries)
	d.entries = append(d.entries, Entry{Name: name, Value: v})
	return d
}

// SetArray stores the given elements as an Array under name.
func (d *Document) SetArray(name string, elems ...Value) *Document {
	arr := make(Array, len(elems))
	copy(arr, elems)
	return d.Set(name, arr)
}

// SetLambda stores code as a Lambda under name.
func (d *Document) SetLambda(name, code string) *Document {
	return d.Set(name, Lambda{Code: code})
}

// Get returns the value stored under name and whether it was present.
func (d *Document) Get(name string) (Value, bool) {
	i, ok := d.index[CanonicalName(name)]
	if !ok {
		return nil, false
	}
	return d.entries[i].Value, true
}

// Has reports whether name is present.
func (d *Document) Has(name string) bool {
	_, ok := d.index[CanonicalName(name)]
	return ok
}

// Delete removes name. Deleting an absent name is a no-op.
func (d *Document) Delete(name string) *Document {
	name = CanonicalName(name)
	i, ok := d.index[name]
	if !ok {
		return d
	}
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	delete(d.index, name)
	for j := i; j < len(d.entries); j++ {
		d.index[d.entries[j].Name] = j
	}
	return d
}

// Clear removes every entry. The override flag is left untouched.
func (d *Document) Clear() *Document {
	d.entries = nil
	d.index = make(map[string]int)
	return d
}

// Keys returns the canonical names in insertion order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Name
	}
	return keys
}

// Entries returns a copy of the entries in insertion order.
func (d *Document) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Len returns the number of entries.
func (d *Document) Len() int { return len(d.entries) }

// SetOverride sets the document-wide override flag.
func (d *Document) SetOverride(ov bool) *Document {
	d.override = ov
	return d
}

// Overridden reports the document-wide override flag.
func (d *Document) Overridden() bool { return d.override }

// Clone returns a deep copy of d. Arrays are copied so that the clone
// can be mutated independently.
func (d *Document) Clone() *Document {
	c := New().SetOverride(d.override)
	for _, e := range d.entries {
		if arr, ok := e.Value.(Array); ok {
			e.Value = append(Array{}, arr...)
		}
		c.Set(e.Name, e.Value)
	}
	return c
}

// Equal reports whether both documents hold equal entries in the same
// order and share the same override flag.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.override != o.override || len(d.entries) != len(o.entries) {
		return false
	}
	for i, e := range d.entries {
		if e.Name != o.entries[i].Name || !Equal(e.Value, o.entries[i].Value) {
			return false
		}
	}
	return true
}

// String returns a compact one-line rendering, mainly for debugging.
func (d *Document) String() string {
	var sb strings.Builder
	if d.override {
		sb.WriteString("@Override ")
	}
	for i, e := range d.entries {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(e.Name)
		sb.WriteString("=")
		if s, ok := e.Value.(String); ok {
			sb.WriteString(`"` + string(s) + `"`)
		} else {
			sb.WriteString(e.Value.String())
		}
	}
	return sb.String()
}
