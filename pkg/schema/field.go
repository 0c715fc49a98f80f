package schema

// Attr is one resolved attribute of a schema object instance: either a
// primitive Value or a nested Object, never both.
type Attr struct {
	// Value is the resolved primitive for scalar-shaped fields.
	Value Value

	// Obj is the resolved instance for object-shaped fields; nil otherwise.
	Obj Object
}

// IsObject reports whether the attribute holds a nested schema object.
func (a Attr) IsObject() bool { return a.Obj != nil }

// Primitive projects the attribute back to an untyped document node.
func (a Attr) Primitive() any {
	if a.Obj != nil {
		return a.Obj.Primitive()
	}
	return a.Value.Primitive()
}

// Clone returns a deep copy sharing no state with the receiver.
func (a Attr) Clone() Attr {
	if a.Obj != nil {
		return Attr{Obj: a.Obj.Clone()}
	}
	return Attr{Value: a.Value.Clone()}
}

// Descriptor declares how one named field of a schema object is defaulted
// and how untyped input converts into its resolved value. Descriptors are
// declarative metadata placed in a type's Spec once; they carry no
// per-instance state and are shared read-only by every instance.
type Descriptor interface {
	// DefaultValue returns the declared default. Object defaults are
	// constructed fresh on every call; no state is shared between calls.
	DefaultValue() Attr

	// ValueFromPrimitive converts one untyped document node into the
	// field's resolved value.
	ValueFromPrimitive(prim any) (Attr, error)
}

// PrimitiveField passes scalars, sequences, and mappings through unchanged,
// falling back to the declared default on null input.
type PrimitiveField struct {
	// Default is the value used when the input is absent or null.
	Default Value
}

// DefaultValue returns a copy of the declared default.
func (f *PrimitiveField) DefaultValue() Attr {
	return Attr{Value: f.Default.Clone()}
}

// ValueFromPrimitive returns the input unchanged if non-null, else the
// declared default.
func (f *PrimitiveField) ValueFromPrimitive(prim any) (Attr, error) {
	if prim == nil {
		return f.DefaultValue(), nil
	}
	return Attr{Value: Classify(prim)}, nil
}

// ObjectField references another schema object type and delegates
// defaulting and conversion to it. An Embedded field converts from the
// whole parent document and has its fields hoisted onto the parent.
type ObjectField struct {
	// New constructs a fresh, unresolved instance of the referenced type.
	New func() Object

	// Embedded marks the field for hoisting onto the declaring object.
	Embedded bool
}

// DefaultValue returns a freshly default-constructed instance of the
// referenced type.
func (f *ObjectField) DefaultValue() Attr {
	obj := f.New()
	obj.Default()
	return Attr{Obj: obj}
}

// ValueFromPrimitive converts the input through the referenced type.
// Null input yields a default-constructed instance instead of a shape
// validation failure.
func (f *ObjectField) ValueFromPrimitive(prim any) (Attr, error) {
	obj := f.New()
	if prim == nil {
		obj.Default()
		return Attr{Obj: obj}, nil
	}
	if err := obj.FromPrimitive(prim); err != nil {
		return Attr{}, err
	}
	return Attr{Obj: obj}, nil
}
