package schema

import "fmt"

// Object is the contract shared by schema objects and their collections.
type Object interface {
	// SchemaName identifies the concrete schema type.
	SchemaName() string

	// Validate reports whether prim has the shape this type converts from.
	// It returns false rather than an error; callers decide how to react.
	Validate(prim any) bool

	// Default resolves every declared field to its declared default.
	Default()

	// FromPrimitive builds the typed tree from an untyped document. On
	// error the instance is left partially populated and must be discarded.
	FromPrimitive(prim any) error

	// Merge folds an overlay of the same concrete type into the receiver.
	// The merge is destructive on the receiver; the overlay is untouched.
	Merge(overlay Object) error

	// Primitive projects the instance back to an untyped document.
	Primitive() any

	// Clone returns a deep copy sharing no state with the receiver.
	Clone() Object
}

// Field pairs a declared name with its descriptor.
type Field struct {
	Name string
	Desc Descriptor
}

// PrimField declares a primitive field with the given default.
func PrimField(name string, def Value) Field {
	return Field{Name: name, Desc: &PrimitiveField{Default: def}}
}

// ObjField declares a nested object field of the referenced type.
func ObjField(name string, newFn func() Object) Field {
	return Field{Name: name, Desc: &ObjectField{New: newFn}}
}

// EmbeddedField declares a nested object field whose own fields are
// hoisted onto the declaring object.
func EmbeddedField(name string, newFn func() Object) Field {
	return Field{Name: name, Desc: &ObjectField{New: newFn, Embedded: true}}
}

// Spec is the immutable per-type field table: an ordered list of named
// descriptors declared once per concrete schema type. Spec identity is
// type identity for merge compatibility checks. Specs are read-only after
// declaration and safe for unsynchronized concurrent reads.
type Spec struct {
	name     string
	fields   []Field
	declared map[string]struct{}
}

// NewSpec declares a schema type. Duplicate field names are a declaration
// bug and panic at package init.
func NewSpec(name string, fields ...Field) *Spec {
	s := &Spec{
		name:     name,
		fields:   fields,
		declared: make(map[string]struct{}, len(fields)),
	}
	for _, f := range fields {
		if _, dup := s.declared[f.Name]; dup {
			panic(fmt.Sprintf("schema %s: duplicate field %q", name, f.Name))
		}
		s.declared[f.Name] = struct{}{}
	}
	return s
}

// Name returns the declared type name.
func (s *Spec) Name() string { return s.name }

// Fields returns the declared field table in declaration order.
func (s *Spec) Fields() []Field { return s.fields }

// Declares reports whether the type declares the named field.
func (s *Spec) Declares(name string) bool {
	_, ok := s.declared[name]
	return ok
}

// Standard implements Object for mapping-shaped schema types. Concrete
// types embed it and bind their Spec at construction:
//
//	type Container struct{ schema.Standard }
//
//	func NewContainer() *Container {
//		c := &Container{}
//		c.Init(containerSpec)
//		return c
//	}
//
// Per instance it holds the resolved attribute for every declared field,
// plus any attributes hoisted from embedded children.
type Standard struct {
	spec  *Spec
	attrs map[string]Attr
	order []string
}

// Init binds the type's Spec. It must be called before any other operation.
func (s *Standard) Init(spec *Spec) {
	s.spec = spec
	s.attrs = make(map[string]Attr, len(spec.fields))
	s.order = nil
}

// Std exposes the embedded Standard. It is promoted through embedding, so
// every concrete type satisfies the interface Merge uses to recognize its
// own kind.
func (s *Standard) Std() *Standard { return s }

// SchemaName returns the bound Spec's type name.
func (s *Standard) SchemaName() string { return s.spec.name }

// Validate accepts string-keyed mappings only.
func (s *Standard) Validate(prim any) bool {
	_, ok := prim.(map[string]any)
	return ok
}

// Default resolves every declared field to its declared default and applies
// embedding for embedded object fields.
func (s *Standard) Default() {
	s.reset()
	for _, f := range s.spec.fields {
		attr := f.Desc.DefaultValue()
		s.set(f.Name, attr)
		if of, ok := f.Desc.(*ObjectField); ok && of.Embedded {
			s.embed(attr.Obj)
		}
	}
}

// FromPrimitive builds the instance from a mapping document. Embedded
// fields convert from the whole document; every other field converts from
// its sub-key, defaulting when the sub-key is absent or null.
func (s *Standard) FromPrimitive(prim any) error {
	if !s.Validate(prim) {
		return &ValidationError{Type: s.spec.name, Want: KindMapping, Got: prim}
	}
	doc := prim.(map[string]any)
	s.reset()
	for _, f := range s.spec.fields {
		if of, ok := f.Desc.(*ObjectField); ok && of.Embedded {
			attr, err := f.Desc.ValueFromPrimitive(prim)
			if err != nil {
				return err
			}
			s.set(f.Name, attr)
			s.embed(attr.Obj)
			continue
		}
		sub, ok := doc[f.Name]
		if !ok || sub == nil {
			s.set(f.Name, f.Desc.DefaultValue())
			continue
		}
		attr, err := f.Desc.ValueFromPrimitive(sub)
		if err != nil {
			return err
		}
		s.set(f.Name, attr)
	}
	return nil
}

// Merge folds the overlay into the receiver field by field. Nested objects
// merge recursively; primitive attributes merge by variant (see Value.Merge).
// Hoisted attributes are not re-merged; they were resolved when the embedded
// field was.
func (s *Standard) Merge(overlay Object) error {
	o, err := s.sameType(overlay)
	if err != nil {
		return err
	}
	for _, f := range s.spec.fields {
		cur := s.attrs[f.Name]
		ov := o.attrs[f.Name]
		if cur.IsObject() {
			if ov.Obj == nil {
				continue
			}
			if err := cur.Obj.Merge(ov.Obj); err != nil {
				return err
			}
			continue
		}
		s.attrs[f.Name] = Attr{Value: cur.Value.Merge(ov.Value)}
	}
	return nil
}

// Primitive projects the instance to a mapping document. Embedded children
// flatten into the document first; the receiver's own declared fields win
// on name collision.
func (s *Standard) Primitive() any {
	doc := make(map[string]any)
	for _, f := range s.spec.fields {
		if of, ok := f.Desc.(*ObjectField); ok && of.Embedded {
			if attr, ok := s.attrs[f.Name]; ok && attr.Obj != nil {
				flat, _ := attr.Obj.Primitive().(map[string]any)
				for key, val := range flat {
					doc[key] = val
				}
			}
		}
	}
	for _, f := range s.spec.fields {
		if of, ok := f.Desc.(*ObjectField); ok && of.Embedded {
			continue
		}
		if attr, ok := s.attrs[f.Name]; ok {
			doc[f.Name] = attr.Primitive()
		}
	}
	return doc
}

// Clone returns a deep copy bound to the same Spec.
func (s *Standard) Clone() Object {
	c := &Standard{
		spec:  s.spec,
		attrs: make(map[string]Attr, len(s.attrs)),
		order: append([]string(nil), s.order...),
	}
	for name, attr := range s.attrs {
		c.attrs[name] = attr.Clone()
	}
	return c
}

// Attr returns the resolved attribute for a declared or hoisted name.
func (s *Standard) Attr(name string) (Attr, bool) {
	attr, ok := s.attrs[name]
	return attr, ok
}

// Val returns the primitive attribute for the name, or Null.
func (s *Standard) Val(name string) Value {
	return s.attrs[name].Value
}

// Text returns the string scalar attribute for the name, or "".
func (s *Standard) Text(name string) string {
	return s.attrs[name].Value.Text()
}

// Object returns the nested object attribute for the name, or nil.
func (s *Standard) Object(name string) Object {
	return s.attrs[name].Obj
}

// Names returns declared plus hoisted attribute names, declared first, in
// declaration order.
func (s *Standard) Names() []string {
	return append([]string(nil), s.order...)
}

func (s *Standard) reset() {
	s.attrs = make(map[string]Attr, len(s.spec.fields))
	s.order = s.order[:0]
}

func (s *Standard) set(name string, attr Attr) {
	if _, seen := s.attrs[name]; !seen {
		s.order = append(s.order, name)
	}
	s.attrs[name] = attr
}

// embed hoists the child's declared fields onto the receiver. Names the
// receiver declares itself always keep the receiver's value. Attributes
// the child hoisted from its own embedded fields are not carried; the
// relation is one level deep and non-transitive. Copies values, not
// references.
func (s *Standard) embed(child Object) {
	cs, ok := child.(interface{ Std() *Standard })
	if !ok {
		return
	}
	c := cs.Std()
	for _, f := range c.spec.fields {
		if s.spec.Declares(f.Name) {
			continue
		}
		if attr, ok := c.attrs[f.Name]; ok {
			s.set(f.Name, attr.Clone())
		}
	}
}

func (s *Standard) sameType(overlay Object) (*Standard, error) {
	os, ok := overlay.(interface{ Std() *Standard })
	if !ok || os.Std().spec != s.spec {
		return nil, &TypeMismatchError{Receiver: s.spec.name, Overlay: schemaName(overlay)}
	}
	return os.Std(), nil
}

func schemaName(obj Object) string {
	if obj == nil {
		return "<nil>"
	}
	return obj.SchemaName()
}
