package schema

import (
	"reflect"
	"testing"
)

// Test fixture types, declared the way production schema types are.

var childSpec = NewSpec("child",
	PrimField("x", ScalarOf("child-x")),
	PrimField("y", ScalarOf("child-y")),
)

type childObj struct{ Standard }

func newChild() *childObj {
	c := &childObj{}
	c.Init(childSpec)
	return c
}

var parentSpec = NewSpec("parent",
	PrimField("x", ScalarOf("parent-x")),
	EmbeddedField("meta", func() Object { return newChild() }),
)

type parentObj struct{ Standard }

func newParent() *parentObj {
	p := &parentObj{}
	p.Init(parentSpec)
	return p
}

var docSpec = NewSpec("doc",
	PrimField("name", Null()),
	PrimField("params", MapOf(map[string]any{})),
	PrimField("tags", SeqOf()),
)

type docObj struct{ Standard }

func newDoc() *docObj {
	d := &docObj{}
	d.Init(docSpec)
	return d
}

var holderSpec = NewSpec("holder",
	PrimField("label", Null()),
	ObjField("inner", func() Object { return newDoc() }),
)

type holderObj struct{ Standard }

func newHolder() *holderObj {
	h := &holderObj{}
	h.Init(holderSpec)
	return h
}

func TestStandardDefaultResolvesEveryField(t *testing.T) {
	d := newDoc()
	d.Default()

	for _, f := range docSpec.Fields() {
		if _, ok := d.Attr(f.Name); !ok {
			t.Errorf("field %q unresolved after Default", f.Name)
		}
	}
}

func TestStandardValidate(t *testing.T) {
	tests := []struct {
		name string
		prim any
		want bool
	}{
		{"mapping", map[string]any{}, true},
		{"sequence", []any{}, false},
		{"scalar", "nope", false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newDoc().Validate(tt.prim); got != tt.want {
				t.Errorf("Validate(%v) = %v, want %v", tt.prim, got, tt.want)
			}
		})
	}
}

func TestStandardFromPrimitiveRejectsNonMapping(t *testing.T) {
	err := newDoc().FromPrimitive([]any{"not", "a", "mapping"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !IsValidation(err) {
		t.Errorf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestStandardFromPrimitive(t *testing.T) {
	d := newDoc()
	err := d.FromPrimitive(map[string]any{
		"name": "demo",
		"tags": nil, // null sub-value falls back to the default
	})
	if err != nil {
		t.Fatalf("FromPrimitive failed: %v", err)
	}

	if got := d.Text("name"); got != "demo" {
		t.Errorf("name = %q, want %q", got, "demo")
	}
	if got := d.Val("tags").Kind(); got != KindSequence {
		t.Errorf("tags kind = %v, want sequence default", got)
	}
	if got := d.Val("params").Kind(); got != KindMapping {
		t.Errorf("params kind = %v, want mapping default", got)
	}
}

func TestEmbeddingPrecedence(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		p := newParent()
		p.Default()

		if got := p.Text("x"); got != "parent-x" {
			t.Errorf("x = %q, want parent's own default", got)
		}
		if got := p.Text("y"); got != "child-y" {
			t.Errorf("y = %q, want value hoisted from the child", got)
		}
	})

	t.Run("from primitive", func(t *testing.T) {
		p := newParent()
		err := p.FromPrimitive(map[string]any{"x": "top", "y": "hoisted"})
		if err != nil {
			t.Fatalf("FromPrimitive failed: %v", err)
		}

		if got := p.Text("x"); got != "top" {
			t.Errorf("x = %q, want parent's resolution of the document", got)
		}
		if got := p.Text("y"); got != "hoisted" {
			t.Errorf("y = %q, want value hoisted from the child", got)
		}
	})
}

func TestEmbeddingCopiesValues(t *testing.T) {
	p := newParent()
	if err := p.FromPrimitive(map[string]any{"y": "before"}); err != nil {
		t.Fatalf("FromPrimitive failed: %v", err)
	}

	// Mutating the embedded child must not be visible through the hoisted copy.
	child := p.Object("meta").(interface{ Std() *Standard }).Std()
	child.set("y", Attr{Value: ScalarOf("after")})

	if got := p.Text("y"); got != "before" {
		t.Errorf("hoisted attribute follows the child: got %q", got)
	}
}

func TestObjectFieldNullInputDefaults(t *testing.T) {
	f := &ObjectField{New: func() Object { return newDoc() }}

	attr, err := f.ValueFromPrimitive(nil)
	if err != nil {
		t.Fatalf("null input should default, got error: %v", err)
	}
	if attr.Obj == nil {
		t.Fatal("expected a default-constructed instance")
	}
	if got := attr.Obj.(*docObj).Val("params").Kind(); got != KindMapping {
		t.Errorf("defaulted instance incomplete: params kind = %v", got)
	}
}

func TestMergeTypeMismatch(t *testing.T) {
	d := newDoc()
	d.Default()

	err := d.Merge(newParent())
	if err == nil {
		t.Fatal("expected type mismatch error")
	}
	if !IsTypeMismatch(err) {
		t.Errorf("expected TypeMismatchError, got %T: %v", err, err)
	}
}

func TestMergeSequenceField(t *testing.T) {
	base := newDoc()
	if err := base.FromPrimitive(map[string]any{"tags": []any{"a", "b"}}); err != nil {
		t.Fatalf("base: %v", err)
	}
	overlay := newDoc()
	if err := overlay.FromPrimitive(map[string]any{"tags": []any{"c", "d"}}); err != nil {
		t.Fatalf("overlay: %v", err)
	}

	if err := base.Merge(overlay); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	want := []any{"a", "b", "c", "d"}
	if !reflect.DeepEqual(base.Val("tags").AsSeq(), want) {
		t.Errorf("tags = %v, want %v", base.Val("tags").AsSeq(), want)
	}
}

func TestMergeNullOverlayKeepsBase(t *testing.T) {
	base := newDoc()
	if err := base.FromPrimitive(map[string]any{"name": "demo"}); err != nil {
		t.Fatalf("base: %v", err)
	}
	overlay := newDoc()
	overlay.Default() // name defaults to null

	if err := base.Merge(overlay); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	if got := base.Text("name"); got != "demo" {
		t.Errorf("name = %q, want base value preserved", got)
	}
}

func TestMergeNestedObjectRecurses(t *testing.T) {
	base := newHolder()
	if err := base.FromPrimitive(map[string]any{
		"label": "base",
		"inner": map[string]any{"name": "inner", "params": map[string]any{"a": 1}},
	}); err != nil {
		t.Fatalf("base: %v", err)
	}
	overlay := newHolder()
	if err := overlay.FromPrimitive(map[string]any{
		"inner": map[string]any{"params": map[string]any{"b": 2}},
	}); err != nil {
		t.Fatalf("overlay: %v", err)
	}

	if err := base.Merge(overlay); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	inner := base.Object("inner").(*docObj)
	want := map[string]any{"a": 1, "b": 2}
	if !reflect.DeepEqual(inner.Val("params").AsMap(), want) {
		t.Errorf("inner params = %v, want %v", inner.Val("params").AsMap(), want)
	}
	if got := inner.Text("name"); got != "inner" {
		t.Errorf("inner name = %q, want base value preserved", got)
	}
}

func TestMergeEndToEnd(t *testing.T) {
	base := newDoc()
	if err := base.FromPrimitive(map[string]any{
		"name":   "demo",
		"params": map[string]any{"a": 1},
	}); err != nil {
		t.Fatalf("base: %v", err)
	}
	overlay := newDoc()
	if err := overlay.FromPrimitive(map[string]any{
		"params": map[string]any{"b": 2},
		"tags":   []any{"x"},
	}); err != nil {
		t.Fatalf("overlay: %v", err)
	}

	if err := base.Merge(overlay); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	want := map[string]any{
		"name":   "demo",
		"params": map[string]any{"a": 1, "b": 2},
		"tags":   []any{"x"},
	}
	if !reflect.DeepEqual(base.Primitive(), want) {
		t.Errorf("effective config = %v, want %v", base.Primitive(), want)
	}
}

func TestPrimitiveRoundTrip(t *testing.T) {
	orig := newParent()
	orig.Default()

	reparsed := newParent()
	if err := reparsed.FromPrimitive(orig.Primitive()); err != nil {
		t.Fatalf("re-conversion failed: %v", err)
	}

	if !reflect.DeepEqual(reparsed.Primitive(), orig.Primitive()) {
		t.Errorf("round trip diverged:\n got %v\nwant %v", reparsed.Primitive(), orig.Primitive())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := newHolder()
	if err := orig.FromPrimitive(map[string]any{
		"inner": map[string]any{"params": map[string]any{"a": 1}},
	}); err != nil {
		t.Fatalf("FromPrimitive failed: %v", err)
	}

	clone := orig.Clone().(interface{ Std() *Standard }).Std()
	clone.Object("inner").(interface{ Std() *Standard }).Std().set("name", Attr{Value: ScalarOf("changed")})

	inner := orig.Object("inner").(*docObj)
	if got := inner.Text("name"); got != "" {
		t.Errorf("clone shares nested state with the original: name = %q", got)
	}
}
