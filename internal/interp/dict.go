package interp

import "github.com/cwbudde/go-joy/internal/value"

// Entry is a user definition in the dictionary. Primitives are not
// stored as entries; symbol dispatch falls through to the primitive
// table when no user entry shadows the name.
type Entry struct {
	Name   string
	Module string
	Body   []value.Value
}

// Dictionary is an order-preserving mapping from word names to user
// definition bodies. A later definition of the same name shadows the
// earlier one; Unassign removes a binding entirely.
type Dictionary struct {
	index map[string]*Entry
	names []string
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{index: make(map[string]*Entry)}
}

// Define installs or replaces a user definition.
func (d *Dictionary) Define(name, module string, body []value.Value) {
	if _, exists := d.index[name]; !exists {
		d.names = append(d.names, name)
	}
	d.index[name] = &Entry{Name: name, Module: module, Body: body}
}

// Lookup returns the current user definition for name, if any.
func (d *Dictionary) Lookup(name string) (*Entry, bool) {
	e, ok := d.index[name]
	return e, ok
}

// Unassign removes the binding for name. Removing an absent name is
// not an error.
func (d *Dictionary) Unassign(name string) {
	if _, ok := d.index[name]; !ok {
		return
	}
	delete(d.index, name)
	for i, n := range d.names {
		if n == name {
			d.names = append(d.names[:i], d.names[i+1:]...)
			break
		}
	}
}

// Names returns the currently defined names in first-definition order.
func (d *Dictionary) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}
