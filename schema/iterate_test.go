package schema

import (
	"testing"
)

func collect(seq func(func(Field) bool)) []Field {
	var out []Field
	seq(func(f Field) bool {
		out = append(out, f)
		return true
	})
	return out
}

func TestFieldsOffsets(t *testing.T) {
	inner := mustStruct(t, []Member{
		{"X", MustPrimitive(KindU8)},
		{"Y", MustPrimitive(KindU16)},
	})
	root := mustStruct(t, []Member{
		{"Id", MustPrimitive(KindU32)},
		{"Point", inner},
		{"Name", NewString(9)},
		{"Samples", mustArray(t, MustPrimitive(KindS16), []int{4})},
	})

	got := collect(Fields(root))
	want := []struct {
		name   string
		offset int
		kind   Kind
	}{
		{"Id", 0, KindU32},
		{"Point.X", 4, KindU8},
		{"Point.Y", 5, KindU16},
		{"Name", 7, KindString},
		{"Samples", 17, KindArray},
	}

	if len(got) != len(want) {
		t.Fatalf("field count: got %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Name != w.name || got[i].Offset != w.offset || got[i].Type.Kind() != w.kind {
			t.Errorf("field %d: got {%s %d %s}, want {%s %d %s}",
				i, got[i].Name, got[i].Offset, got[i].Type.Kind(), w.name, w.offset, w.kind)
		}
	}
}

func TestFieldsDoesNotExpandArrays(t *testing.T) {
	root := mustStruct(t, []Member{
		{"Data", mustArray(t, MustPrimitive(KindU8), []int{100})},
	})
	got := collect(Fields(root))
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0].Type.Kind() != KindArray {
		t.Errorf("got kind %s, want array", got[0].Type.Kind())
	}
}

func TestElementsExpandsArrays(t *testing.T) {
	root := mustStruct(t, []Member{
		{"Head", MustPrimitive(KindU8)},
		{"Grid", mustArray(t, MustPrimitive(KindU16), []int{2, 2})},
	})

	got := collect(Elements(root))
	want := []struct {
		name   string
		offset int
	}{
		{"Head", 0},
		{"Grid[0][0]", 1},
		{"Grid[0][1]", 3},
		{"Grid[1][0]", 5},
		{"Grid[1][1]", 7},
	}

	if len(got) != len(want) {
		t.Fatalf("entry count: got %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Name != w.name || got[i].Offset != w.offset {
			t.Errorf("entry %d: got {%s %d}, want {%s %d}", i, got[i].Name, got[i].Offset, w.name, w.offset)
		}
	}
}

func TestElementsExpandsStructElements(t *testing.T) {
	point := mustStruct(t, []Member{
		{"X", MustPrimitive(KindU8)},
		{"Y", MustPrimitive(KindU8)},
	})
	root := mustStruct(t, []Member{
		{"Points", mustArray(t, point, []int{2})},
	})

	got := collect(Elements(root))
	want := []struct {
		name   string
		offset int
	}{
		{"Points[0].X", 0},
		{"Points[0].Y", 1},
		{"Points[1].X", 2},
		{"Points[1].Y", 3},
	}

	if len(got) != len(want) {
		t.Fatalf("entry count: got %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Name != w.name || got[i].Offset != w.offset {
			t.Errorf("entry %d: got {%s %d}, want {%s %d}", i, got[i].Name, got[i].Offset, w.name, w.offset)
		}
	}
}

func TestUnionFieldsShareOffset(t *testing.T) {
	u := mustUnion(t, []Member{
		{"AsWord", MustPrimitive(KindU16)},
		{"AsByte", MustPrimitive(KindU8)},
	})
	root := mustStruct(t, []Member{
		{"Pad", MustPrimitive(KindU32)},
		{"Value", u},
	})

	got := collect(Fields(root))
	if len(got) != 3 {
		t.Fatalf("field count: got %d, want 3", len(got))
	}
	if got[1].Name != "Value.AsWord" || got[1].Offset != 4 {
		t.Errorf("first union member: got {%s %d}", got[1].Name, got[1].Offset)
	}
	if got[2].Name != "Value.AsByte" || got[2].Offset != 4 {
		t.Errorf("second union member: got {%s %d}", got[2].Name, got[2].Offset)
	}
}

func TestIterationIsRestartable(t *testing.T) {
	root := mustStruct(t, []Member{
		{"A", MustPrimitive(KindU8)},
		{"B", MustPrimitive(KindU8)},
	})
	seq := Fields(root)
	first := collect(seq)
	second := collect(seq)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("restart: got %d then %d entries", len(first), len(second))
	}
}

func TestIterationEarlyStop(t *testing.T) {
	root := mustStruct(t, []Member{
		{"A", MustPrimitive(KindU8)},
		{"B", MustPrimitive(KindU8)},
		{"C", MustPrimitive(KindU8)},
	})
	count := 0
	for f := range Fields(root) {
		_ = f
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("early stop: visited %d fields", count)
	}
}
