package schema

import (
	"reflect"
	"testing"
)

var entrySpec = NewSpec("entry",
	PrimField("v", Null()),
)

type entryObj struct{ Standard }

func newEntry() *entryObj {
	e := &entryObj{}
	e.Init(entrySpec)
	return e
}

type entryList struct{ ListOf }

func newEntryList() *entryList {
	l := &entryList{}
	l.Init("entry-list", func() Object { return newEntry() })
	return l
}

type entryDict struct{ DictOf }

func newEntryDict() *entryDict {
	d := &entryDict{}
	d.Init("entry-dict", func() Object { return newEntry() })
	return d
}

func TestListValidate(t *testing.T) {
	l := newEntryList()

	if l.Validate(map[string]any{}) {
		t.Error("list accepted a mapping")
	}
	if !l.Validate([]any{}) {
		t.Error("list rejected a sequence")
	}
}

func TestListFromPrimitive(t *testing.T) {
	l := newEntryList()
	err := l.FromPrimitive([]any{
		map[string]any{"v": 1},
		nil, // dropped silently
		map[string]any{"v": 2},
	})
	if err != nil {
		t.Fatalf("FromPrimitive failed: %v", err)
	}

	if l.Len() != 2 {
		t.Fatalf("len = %d, want 2 (null entry dropped)", l.Len())
	}
	first := l.At(0).(*entryObj)
	second := l.At(1).(*entryObj)
	if first.Val("v").AsScalar() != 1 || second.Val("v").AsScalar() != 2 {
		t.Errorf("source order not preserved: %v, %v",
			first.Val("v").AsScalar(), second.Val("v").AsScalar())
	}
}

func TestListFromPrimitiveRejectsNonSequence(t *testing.T) {
	err := newEntryList().FromPrimitive(map[string]any{})
	if !IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestListMergeConcat(t *testing.T) {
	base := newEntryList()
	if err := base.FromPrimitive([]any{map[string]any{"v": 1}, map[string]any{"v": 2}}); err != nil {
		t.Fatalf("base: %v", err)
	}
	overlay := newEntryList()
	if err := overlay.FromPrimitive([]any{map[string]any{"v": 3}}); err != nil {
		t.Fatalf("overlay: %v", err)
	}

	if err := base.Merge(overlay); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	if base.Len() != 3 {
		t.Fatalf("len = %d, want 3", base.Len())
	}
	got := make([]any, base.Len())
	for i := range got {
		got[i] = base.At(i).Primitive().(map[string]any)["v"]
	}
	if !reflect.DeepEqual(got, []any{1, 2, 3}) {
		t.Errorf("merged order = %v, want base entries first", got)
	}
}

func TestListMergeTypeMismatch(t *testing.T) {
	base := newEntryList()
	base.Default()

	if err := base.Merge(newEntryDict()); !IsTypeMismatch(err) {
		t.Errorf("expected TypeMismatchError, got %v", err)
	}
}

func TestDictValidate(t *testing.T) {
	d := newEntryDict()

	if d.Validate([]any{}) {
		t.Error("dict accepted a sequence")
	}
	if !d.Validate(map[string]any{}) {
		t.Error("dict rejected a mapping")
	}
}

func TestDictFromPrimitiveDropsNullEntries(t *testing.T) {
	d := newEntryDict()
	err := d.FromPrimitive(map[string]any{
		"keep": map[string]any{"v": 1},
		"drop": nil,
	})
	if err != nil {
		t.Fatalf("FromPrimitive failed: %v", err)
	}

	if d.Len() != 1 {
		t.Fatalf("len = %d, want 1", d.Len())
	}
	if _, ok := d.Get("drop"); ok {
		t.Error("null-valued entry survived conversion")
	}
}

func TestDictMerge(t *testing.T) {
	base := newEntryDict()
	if err := base.FromPrimitive(map[string]any{
		"k1": map[string]any{"v": 1},
	}); err != nil {
		t.Fatalf("base: %v", err)
	}
	overlay := newEntryDict()
	if err := overlay.FromPrimitive(map[string]any{
		"k1": map[string]any{"v": 2},
		"k2": map[string]any{"v": 3},
	}); err != nil {
		t.Fatalf("overlay: %v", err)
	}

	if err := base.Merge(overlay); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	want := map[string]any{
		"k1": map[string]any{"v": 2},
		"k2": map[string]any{"v": 3},
	}
	if !reflect.DeepEqual(base.Primitive(), want) {
		t.Errorf("merged dict = %v, want %v", base.Primitive(), want)
	}
}

func TestDictMergeIntoUnresolved(t *testing.T) {
	base := newEntryDict() // no Default, no FromPrimitive
	overlay := newEntryDict()
	if err := overlay.FromPrimitive(map[string]any{"k": map[string]any{"v": 1}}); err != nil {
		t.Fatalf("overlay: %v", err)
	}

	if err := base.Merge(overlay); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if base.Len() != 1 {
		t.Errorf("len = %d, want 1", base.Len())
	}
}

func TestDictMergeLeavesOverlayUntouched(t *testing.T) {
	base := newEntryDict()
	base.Default()
	overlay := newEntryDict()
	if err := overlay.FromPrimitive(map[string]any{"k": map[string]any{"v": 1}}); err != nil {
		t.Fatalf("overlay: %v", err)
	}

	if err := base.Merge(overlay); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	merged, _ := base.Get("k")
	merged.(*entryObj).set("v", Attr{Value: ScalarOf(99)})

	ov, _ := overlay.Get("k")
	if got := ov.(*entryObj).Val("v").AsScalar(); got != 1 {
		t.Errorf("merge shares entries with the overlay: got %v", got)
	}
}
