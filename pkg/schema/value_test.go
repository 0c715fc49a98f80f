package schema

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		prim any
		want Kind
	}{
		{"nil", nil, KindNull},
		{"string", "hello", KindScalar},
		{"int", 42, KindScalar},
		{"bool", true, KindScalar},
		{"sequence", []any{1, 2}, KindSequence},
		{"mapping", map[string]any{"a": 1}, KindMapping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.prim).Kind(); got != tt.want {
				t.Errorf("Classify(%v).Kind() = %v, want %v", tt.prim, got, tt.want)
			}
		})
	}
}

func TestClassifyDetachesFromSource(t *testing.T) {
	src := map[string]any{"nested": map[string]any{"a": 1}}
	v := Classify(src)

	src["nested"].(map[string]any)["a"] = 99

	got := v.AsMap()["nested"].(map[string]any)["a"]
	if got != 1 {
		t.Errorf("value shares data with the source document: got %v", got)
	}
}

func TestValueMergeSequenceConcat(t *testing.T) {
	base := Classify([]any{"a", "b"})
	overlay := Classify([]any{"c"})

	merged := base.Merge(overlay)

	want := []any{"a", "b", "c"}
	if !reflect.DeepEqual(merged.AsSeq(), want) {
		t.Errorf("merged sequence = %v, want %v", merged.AsSeq(), want)
	}
}

func TestValueMergeSequenceOntoNull(t *testing.T) {
	merged := Null().Merge(Classify([]any{"x"}))

	if !reflect.DeepEqual(merged.AsSeq(), []any{"x"}) {
		t.Errorf("merged sequence = %v, want [x]", merged.AsSeq())
	}
}

func TestValueMergeMapping(t *testing.T) {
	base := Classify(map[string]any{
		"shared": map[string]any{"a": 1},
		"keep":   "base",
	})
	overlay := Classify(map[string]any{
		"shared": map[string]any{"b": 2},
		"extra":  "overlay",
	})

	merged := base.Merge(overlay).AsMap()

	want := map[string]any{
		"shared": map[string]any{"a": 1, "b": 2},
		"keep":   "base",
		"extra":  "overlay",
	}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("merged mapping = %v, want %v", merged, want)
	}
}

func TestValueMergeScalarReplaces(t *testing.T) {
	merged := ScalarOf("old").Merge(ScalarOf("new"))

	if merged.Text() != "new" {
		t.Errorf("merged scalar = %q, want %q", merged.Text(), "new")
	}
}

func TestValueMergeNullKeepsBase(t *testing.T) {
	base := Classify(map[string]any{"a": 1})

	merged := base.Merge(Null())

	if !reflect.DeepEqual(merged.AsMap(), map[string]any{"a": 1}) {
		t.Errorf("null overlay changed base: %v", merged.AsMap())
	}
}

func TestValueMergeLeavesOverlayUntouched(t *testing.T) {
	overlay := Classify(map[string]any{"nested": map[string]any{"b": 2}})
	base := Classify(map[string]any{"nested": map[string]any{"a": 1}})

	merged := base.Merge(overlay)
	merged.AsMap()["nested"].(map[string]any)["b"] = 99

	if got := overlay.AsMap()["nested"].(map[string]any)["b"]; got != 2 {
		t.Errorf("merge mutated the overlay: got %v", got)
	}
}

func TestValueClone(t *testing.T) {
	orig := Classify([]any{map[string]any{"a": 1}})

	clone := orig.Clone()
	clone.AsSeq()[0].(map[string]any)["a"] = 99

	if got := orig.AsSeq()[0].(map[string]any)["a"]; got != 1 {
		t.Errorf("clone shares data with the original: got %v", got)
	}
}
