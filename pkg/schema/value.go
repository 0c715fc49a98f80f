package schema

// Kind classifies the primitive shape a Value carries.
type Kind uint8

const (
	// KindNull is the absent value.
	KindNull Kind = iota

	// KindScalar is a leaf value: string, number, or boolean.
	KindScalar

	// KindSequence is an ordered list of primitives.
	KindSequence

	// KindMapping is a string-keyed map of primitives.
	KindMapping
)

// String returns the kind name for error messages.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "null"
	}
}

// Value is a closed variant over the shapes a configuration document can
// carry: null, scalar, sequence, or mapping. The merge strategy is selected
// by variant, not by runtime inspection of arbitrary values.
type Value struct {
	kind    Kind
	scalar  any
	seq     []any
	mapping map[string]any
}

// Null returns the absent value.
func Null() Value {
	return Value{kind: KindNull}
}

// ScalarOf wraps a leaf value.
func ScalarOf(v any) Value {
	if v == nil {
		return Null()
	}
	return Value{kind: KindScalar, scalar: v}
}

// SeqOf wraps a sequence.
func SeqOf(items ...any) Value {
	return Value{kind: KindSequence, seq: items}
}

// MapOf wraps a mapping.
func MapOf(m map[string]any) Value {
	if m == nil {
		m = map[string]any{}
	}
	return Value{kind: KindMapping, mapping: m}
}

// Classify converts one node of a deserialized document into a Value.
// The result owns its data: sequences and mappings are detached from the
// caller's document.
func Classify(prim any) Value {
	switch p := prim.(type) {
	case nil:
		return Null()
	case []any:
		return Value{kind: KindSequence, seq: cloneSeq(p)}
	case map[string]any:
		return Value{kind: KindMapping, mapping: cloneMap(p)}
	default:
		return Value{kind: KindScalar, scalar: prim}
	}
}

// Kind returns the variant of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsScalar returns the leaf value, or nil for non-scalars.
func (v Value) AsScalar() any {
	if v.kind != KindScalar {
		return nil
	}
	return v.scalar
}

// Text returns the value as a string if it is a string scalar, else "".
func (v Value) Text() string {
	s, _ := v.scalar.(string)
	return s
}

// AsSeq returns the underlying sequence, or nil for non-sequences.
func (v Value) AsSeq() []any {
	if v.kind != KindSequence {
		return nil
	}
	return v.seq
}

// AsMap returns the underlying mapping, or nil for non-mappings.
func (v Value) AsMap() map[string]any {
	if v.kind != KindMapping {
		return nil
	}
	return v.mapping
}

// Merge combines the overlay into the receiver and returns the result.
// Overlay sequences concatenate after the receiver's entries (a non-sequence
// receiver is treated as empty). Overlay mappings merge key by key, recursing
// where both sides hold mappings. Non-null overlay scalars replace the
// receiver's value. A null overlay leaves the receiver unchanged. The overlay
// is never modified.
func (v Value) Merge(overlay Value) Value {
	switch overlay.kind {
	case KindNull:
		return v
	case KindSequence:
		merged := make([]any, 0, len(v.seq)+len(overlay.seq))
		if v.kind == KindSequence {
			merged = append(merged, v.seq...)
		}
		for _, item := range overlay.seq {
			merged = append(merged, clonePrim(item))
		}
		return Value{kind: KindSequence, seq: merged}
	case KindMapping:
		base := v.mapping
		if v.kind != KindMapping || base == nil {
			base = make(map[string]any, len(overlay.mapping))
		}
		return Value{kind: KindMapping, mapping: mergeMapping(base, overlay.mapping)}
	default:
		return Value{kind: KindScalar, scalar: overlay.scalar}
	}
}

// mergeMapping folds overlay into base in place. Keys holding mappings on
// both sides merge recursively; every other overlay value replaces the entry.
func mergeMapping(base, overlay map[string]any) map[string]any {
	for key, ov := range overlay {
		if om, ok := ov.(map[string]any); ok {
			if bm, ok := base[key].(map[string]any); ok {
				base[key] = mergeMapping(bm, om)
				continue
			}
			base[key] = cloneMap(om)
			continue
		}
		base[key] = clonePrim(ov)
	}
	return base
}

// Primitive projects the value back to an untyped document node.
func (v Value) Primitive() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindSequence:
		return cloneSeq(v.seq)
	case KindMapping:
		return cloneMap(v.mapping)
	default:
		return nil
	}
}

// Clone returns a deep copy sharing no data with the receiver.
func (v Value) Clone() Value {
	switch v.kind {
	case KindSequence:
		return Value{kind: KindSequence, seq: cloneSeq(v.seq)}
	case KindMapping:
		return Value{kind: KindMapping, mapping: cloneMap(v.mapping)}
	default:
		return v
	}
}

func clonePrim(prim any) any {
	switch p := prim.(type) {
	case []any:
		return cloneSeq(p)
	case map[string]any:
		return cloneMap(p)
	default:
		return prim
	}
}

func cloneSeq(src []any) []any {
	out := make([]any, len(src))
	for i, item := range src {
		out[i] = clonePrim(item)
	}
	return out
}

func cloneMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for key, val := range src {
		out[key] = clonePrim(val)
	}
	return out
}
