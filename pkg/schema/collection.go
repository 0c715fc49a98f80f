package schema

import "sort"

// ListOf implements Object for ordered homogeneous collections. Concrete
// list types embed it and bind an item constructor at construction, the
// same way Standard types bind a Spec.
type ListOf struct {
	name    string
	newItem func() Object
	items   []Object
}

// Init binds the collection's type name and item constructor.
func (l *ListOf) Init(name string, newItem func() Object) {
	l.name = name
	l.newItem = newItem
	l.items = nil
}

// List exposes the embedded ListOf for merge compatibility checks.
func (l *ListOf) List() *ListOf { return l }

// SchemaName returns the collection's type name.
func (l *ListOf) SchemaName() string { return l.name }

// Validate accepts sequences only.
func (l *ListOf) Validate(prim any) bool {
	_, ok := prim.([]any)
	return ok
}

// Default resets the collection to empty.
func (l *ListOf) Default() {
	l.items = nil
}

// FromPrimitive converts each non-null entry of a sequence document through
// the item type, preserving source order. Null entries are dropped silently.
func (l *ListOf) FromPrimitive(prim any) error {
	if !l.Validate(prim) {
		return &ValidationError{Type: l.name, Want: KindSequence, Got: prim}
	}
	l.items = nil
	for _, entry := range prim.([]any) {
		if entry == nil {
			continue
		}
		item := l.newItem()
		if err := item.FromPrimitive(entry); err != nil {
			return err
		}
		l.items = append(l.items, item)
	}
	return nil
}

// Merge appends copies of the overlay's items after the receiver's own, in
// the overlay's order. No deduplication, no per-item merging.
func (l *ListOf) Merge(overlay Object) error {
	o, ok := overlay.(interface{ List() *ListOf })
	if !ok || o.List().name != l.name {
		return &TypeMismatchError{Receiver: l.name, Overlay: schemaName(overlay)}
	}
	for _, item := range o.List().items {
		l.items = append(l.items, item.Clone())
	}
	return nil
}

// Len returns the number of items.
func (l *ListOf) Len() int { return len(l.items) }

// At returns the item at index i.
func (l *ListOf) At(i int) Object { return l.items[i] }

// Items returns the items in order. The slice is a copy; the items are not.
func (l *ListOf) Items() []Object {
	return append([]Object(nil), l.items...)
}

// Primitive projects the collection to a sequence document.
func (l *ListOf) Primitive() any {
	out := make([]any, len(l.items))
	for i, item := range l.items {
		out[i] = item.Primitive()
	}
	return out
}

// Clone returns a deep copy with cloned items.
func (l *ListOf) Clone() Object {
	c := &ListOf{name: l.name, newItem: l.newItem}
	for _, item := range l.items {
		c.items = append(c.items, item.Clone())
	}
	return c
}

// DictOf implements Object for string-keyed homogeneous collections.
// Key order carries no meaning; Keys sorts for reproducibility.
type DictOf struct {
	name     string
	newValue func() Object
	entries  map[string]Object
}

// Init binds the collection's type name and value constructor.
func (d *DictOf) Init(name string, newValue func() Object) {
	d.name = name
	d.newValue = newValue
	d.entries = nil
}

// Dict exposes the embedded DictOf for merge compatibility checks.
func (d *DictOf) Dict() *DictOf { return d }

// SchemaName returns the collection's type name.
func (d *DictOf) SchemaName() string { return d.name }

// Validate accepts string-keyed mappings only.
func (d *DictOf) Validate(prim any) bool {
	_, ok := prim.(map[string]any)
	return ok
}

// Default resets the collection to empty.
func (d *DictOf) Default() {
	d.entries = make(map[string]Object)
}

// FromPrimitive converts each non-null value of a mapping document through
// the value type. Null-valued entries are dropped silently.
func (d *DictOf) FromPrimitive(prim any) error {
	if !d.Validate(prim) {
		return &ValidationError{Type: d.name, Want: KindMapping, Got: prim}
	}
	d.entries = make(map[string]Object)
	for key, val := range prim.(map[string]any) {
		if val == nil {
			continue
		}
		obj := d.newValue()
		if err := obj.FromPrimitive(val); err != nil {
			return err
		}
		d.entries[key] = obj
	}
	return nil
}

// Merge folds each overlay entry into the receiver's entry at the same key.
// A key present only in the overlay gets a fresh default of the value type
// to merge into.
func (d *DictOf) Merge(overlay Object) error {
	o, ok := overlay.(interface{ Dict() *DictOf })
	if !ok || o.Dict().name != d.name {
		return &TypeMismatchError{Receiver: d.name, Overlay: schemaName(overlay)}
	}
	if d.entries == nil {
		d.entries = make(map[string]Object)
	}
	for _, key := range o.Dict().Keys() {
		cur, ok := d.entries[key]
		if !ok {
			cur = d.newValue()
			cur.Default()
			d.entries[key] = cur
		}
		if err := cur.Merge(o.Dict().entries[key]); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of entries.
func (d *DictOf) Len() int { return len(d.entries) }

// Get returns the entry for the key.
func (d *DictOf) Get(key string) (Object, bool) {
	obj, ok := d.entries[key]
	return obj, ok
}

// Keys returns the entry keys in sorted order.
func (d *DictOf) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for key := range d.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Primitive projects the collection to a mapping document.
func (d *DictOf) Primitive() any {
	out := make(map[string]any, len(d.entries))
	for key, obj := range d.entries {
		out[key] = obj.Primitive()
	}
	return out
}

// Clone returns a deep copy with cloned entries.
func (d *DictOf) Clone() Object {
	c := &DictOf{name: d.name, newValue: d.newValue}
	if d.entries != nil {
		c.entries = make(map[string]Object, len(d.entries))
		for key, obj := range d.entries {
			c.entries[key] = obj.Clone()
		}
	}
	return c
}
