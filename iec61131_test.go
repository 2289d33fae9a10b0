package iec61131

import (
	"testing"

	"github.com/jisotalo/iec-61131-3/schema"
)

const exampleDecls = `
TYPE ST_Example :
STRUCT
	Text : STRING(50);
	Decimal : REAL;
	ArrayData : ARRAY[0..9] OF INT;
	StructData : ST_Example2;
END_STRUCT
END_TYPE

TYPE ST_Example2 :
STRUCT
	Text : STRING(50);
END_STRUCT
END_TYPE`

func resolveExample(t *testing.T) DataType {
	t.Helper()
	dt, err := ResolveTypes(exampleDecls, WithTopLevel("ST_Example"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	return dt
}

func TestRoundTrip(t *testing.T) {
	dt := resolveExample(t)
	if dt.ByteLength() != 126 {
		t.Fatalf("byte length: got %d, want 126", dt.ByteLength())
	}

	value := map[string]any{
		"Text":    "Hello iec-61131-3!",
		"Decimal": 3.14,
		"ArrayData": []any{
			0, 1, 2, 3, 4, 5, 6, 7, 8, 9,
		},
		"StructData": map[string]any{
			"Text": "Nested!",
		},
	}

	data, err := EncodeToBytes(dt, value)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(data) != 126 {
		t.Fatalf("encoded length: got %d, want 126", len(data))
	}

	decoded, err := DecodeFromBytes(dt, data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	m, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded: got %T, want map", decoded)
	}
	if m["Text"] != "Hello iec-61131-3!" {
		t.Errorf("Text: got %v", m["Text"])
	}
	if m["Decimal"] != float32(3.14) {
		t.Errorf("Decimal: got %v", m["Decimal"])
	}
	arr, ok := m["ArrayData"].([]any)
	if !ok || len(arr) != 10 {
		t.Fatalf("ArrayData: got %T len %d", m["ArrayData"], len(arr))
	}
	if arr[5] != int16(5) {
		t.Errorf("ArrayData[5]: got %v", arr[5])
	}
	nested, ok := m["StructData"].(map[string]any)
	if !ok || nested["Text"] != "Nested!" {
		t.Errorf("StructData: got %v", m["StructData"])
	}
}

func TestModifySingleElement(t *testing.T) {
	dt := resolveExample(t)

	data, err := EncodeToBytes(dt, nil)
	if err != nil {
		t.Fatalf("encode default: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("nil value: got %d bytes, want empty", len(data))
	}

	data, err = EncodeToBytes(dt, dt.Default())
	if err != nil {
		t.Fatalf("encode default tree: %v", err)
	}

	decoded, _ := DecodeFromBytes(dt, data)
	m := decoded.(map[string]any)
	m["ArrayData"].([]any)[5] = 123

	data, err = EncodeToBytes(dt, m)
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	decoded, err = DecodeFromBytes(dt, data)
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	arr := decoded.(map[string]any)["ArrayData"].([]any)
	if arr[5] != int16(123) {
		t.Errorf("ArrayData[5]: got %v, want 123", arr[5])
	}
	if arr[4] != int16(0) {
		t.Errorf("ArrayData[4]: got %v, want 0", arr[4])
	}
}

func TestEnumThroughFacade(t *testing.T) {
	dt, err := ResolveTypes(`TYPE E_Mode : (Stopped, Starting, Running, Fault := 100); END_TYPE`)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	data, err := EncodeToBytes(dt, "Running")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(data) != 2 || data[0] != 2 || data[1] != 0 {
		t.Fatalf("encoded: got %v", data)
	}

	decoded, err := DecodeFromBytes(dt, data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	ev, ok := decoded.(schema.EnumValue)
	if !ok || ev.Name != "Running" || ev.Value != 2 {
		t.Errorf("decoded: got %+v", decoded)
	}
}

func TestFieldsThroughFacade(t *testing.T) {
	dt := resolveExample(t)

	want := map[string]int{
		"Text":            0,
		"Decimal":         51,
		"ArrayData":       55,
		"StructData.Text": 75,
	}
	got := map[string]int{}
	for f := range Fields(dt) {
		got[f.Name] = f.Offset
	}
	if len(got) != len(want) {
		t.Fatalf("field count: got %d, want %d", len(got), len(want))
	}
	for name, off := range want {
		if got[name] != off {
			t.Errorf("%s: offset got %d, want %d", name, got[name], off)
		}
	}
}

func TestElementsThroughFacade(t *testing.T) {
	dt, err := ResolveTypes(`TYPE ST_Grid : STRUCT Cells : ARRAY[0..1, 0..2] OF INT; END_STRUCT END_TYPE`)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	var names []string
	var offsets []int
	for f := range Elements(dt) {
		names = append(names, f.Name)
		offsets = append(offsets, f.Offset)
	}
	wantNames := []string{
		"Cells[0][0]", "Cells[0][1]", "Cells[0][2]",
		"Cells[1][0]", "Cells[1][1]", "Cells[1][2]",
	}
	if len(names) != len(wantNames) {
		t.Fatalf("element count: got %d, want %d", len(names), len(wantNames))
	}
	for i := range wantNames {
		if names[i] != wantNames[i] || offsets[i] != i*2 {
			t.Errorf("element %d: got %s@%d, want %s@%d", i, names[i], offsets[i], wantNames[i], i*2)
		}
	}
}
