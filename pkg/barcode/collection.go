package barcode

import (
	"fmt"
	"slices"
)

// FieldCollection is an ordered set of fields keyed by identifier. The set
// of fields is fixed at construction; only field values change.
type FieldCollection struct {
	order  []string
	fields map[string]FieldValue
}

// NewFieldCollection keeps the insertion order of fields. It panics on a
// duplicate identifier since field tables are static.
func NewFieldCollection(fields ...FieldValue) *FieldCollection {
	c := &FieldCollection{fields: make(map[string]FieldValue, len(fields))}
	for _, f := range fields {
		id := f.Identifier()
		if _, dup := c.fields[id]; dup {
			panic(fmt.Sprintf("barcode: duplicate field identifier %q", id))
		}
		c.order = append(c.order, id)
		c.fields[id] = f
	}
	return c
}

// Len returns the number of fields.
func (c *FieldCollection) Len() int { return len(c.order) }

// Get returns the field with identifier id.
func (c *FieldCollection) Get(id string) (FieldValue, bool) {
	f, ok := c.fields[id]
	return f, ok
}

// Contains reports whether id is part of the collection.
func (c *FieldCollection) Contains(id string) bool {
	_, ok := c.fields[id]
	return ok
}

// Identifiers returns the field identifiers in insertion order.
func (c *FieldCollection) Identifiers() []string {
	return slices.Clone(c.order)
}

// All returns the fields in insertion order.
func (c *FieldCollection) All() []FieldValue {
	out := make([]FieldValue, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.fields[id])
	}
	return out
}

// Sorted returns the fields in ascending identifier order.
func (c *FieldCollection) Sorted() []FieldValue {
	ids := slices.Clone(c.order)
	slices.Sort(ids)
	out := make([]FieldValue, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.fields[id])
	}
	return out
}

// Value returns the value of field id, or nil when the field is unset or
// unknown.
func (c *FieldCollection) Value(id string) any {
	if f, ok := c.fields[id]; ok {
		return f.Value()
	}
	return nil
}

// Set assigns a typed value to field id.
func (c *FieldCollection) Set(id string, v any) error {
	f, ok := c.fields[id]
	if !ok {
		return fmt.Errorf("%w '%s'", ErrUnknownField, id)
	}
	return f.SetValue(v)
}

// Parse parses raw into field id.
func (c *FieldCollection) Parse(id string, raw string) error {
	f, ok := c.fields[id]
	if !ok {
		return fmt.Errorf("%w '%s'", ErrUnknownField, id)
	}
	return f.Parse(raw)
}

// Clear unsets every field.
func (c *FieldCollection) Clear() {
	for _, f := range c.fields {
		f.Clear()
	}
}

// Lookup returns field id with its concrete value type.
func Lookup[T any](c *FieldCollection, id string) (*Field[T], bool) {
	f, ok := c.fields[id]
	if !ok {
		return nil, false
	}
	tf, ok := f.(*Field[T])
	return tf, ok
}

// Get returns the typed value of field id. ok is false when the field is
// unknown, of another type or unset.
func Get[T any](c *FieldCollection, id string) (T, bool) {
	if f, ok := Lookup[T](c, id); ok {
		return f.Get()
	}
	var zero T
	return zero, false
}
