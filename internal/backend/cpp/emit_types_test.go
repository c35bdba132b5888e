package cpp

import (
	"bytes"
	"strings"
	"testing"

	"ridge/internal/ir"
)

func emitTypeString(t *testing.T, typ *ir.Type) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	e := newEmitter(&buf, false)
	err := e.emitType(ir.NewOp(ir.OpModule), typ)
	return buf.String(), err
}

func TestEmitTypeIntegerWidths(t *testing.T) {
	cases := []struct {
		typ  *ir.Type
		want string
	}{
		{ir.BoolType(), "bool"},
		{ir.IntType(8, ir.Signless), "int8_t"},
		{ir.IntType(16, ir.Signed), "int16_t"},
		{ir.IntType(32, ir.Signless), "int32_t"},
		{ir.IntType(64, ir.Signed), "int64_t"},
		{ir.IntType(8, ir.Unsigned), "uint8_t"},
		{ir.IntType(16, ir.Unsigned), "uint16_t"},
		{ir.IntType(32, ir.Unsigned), "uint32_t"},
		{ir.IntType(64, ir.Unsigned), "uint64_t"},
	}
	for _, tc := range cases {
		got, err := emitTypeString(t, tc.typ)
		if err != nil {
			t.Fatalf("emitType(%s) failed: %v", tc.typ, err)
		}
		if got != tc.want {
			t.Errorf("emitType(%s) = %q, want %q", tc.typ, got, tc.want)
		}
	}

	for _, width := range []uint32{2, 7, 24, 128} {
		if _, err := emitTypeString(t, ir.IntType(width, ir.Signless)); err == nil {
			t.Errorf("expected failure for integer width %d", width)
		}
	}
}

func TestEmitTypeFloatAndIndex(t *testing.T) {
	if got, err := emitTypeString(t, ir.FloatType(32)); err != nil || got != "float" {
		t.Fatalf("f32 = %q, %v", got, err)
	}
	if got, err := emitTypeString(t, ir.FloatType(64)); err != nil || got != "double" {
		t.Fatalf("f64 = %q, %v", got, err)
	}
	if _, err := emitTypeString(t, ir.FloatType(16)); err == nil {
		t.Fatal("expected failure for f16")
	}
	if got, err := emitTypeString(t, ir.IndexType()); err != nil || got != "size_t" {
		t.Fatalf("index = %q, %v", got, err)
	}
}

func TestEmitTypeTensor(t *testing.T) {
	got, err := emitTypeString(t, ir.TensorType(ir.IntType(32, ir.Signless), 2, 3))
	if err != nil {
		t.Fatalf("tensor emission failed: %v", err)
	}
	if got != "Tensor<int32_t, 2, 3>" {
		t.Fatalf("tensor = %q", got)
	}

	if _, err := emitTypeString(t, ir.UnrankedTensorType(ir.IntType(32, ir.Signless))); err == nil {
		t.Fatal("expected failure for unranked tensor")
	}
	dynamic := ir.TensorType(ir.IntType(32, ir.Signless), 2, ir.DynamicDim)
	if _, err := emitTypeString(t, dynamic); err == nil {
		t.Fatal("expected failure for dynamically shaped tensor")
	}
}

func TestEmitTypePointerAndOpaque(t *testing.T) {
	got, err := emitTypeString(t, ir.PointerType(ir.FloatType(64)))
	if err != nil || got != "double*" {
		t.Fatalf("pointer = %q, %v", got, err)
	}
	got, err = emitTypeString(t, ir.OpaqueType("std::vector<int>"))
	if err != nil || got != "std::vector<int>" {
		t.Fatalf("opaque = %q, %v", got, err)
	}
}

func TestEmitTypesZeroOneMany(t *testing.T) {
	emit := func(types ...*ir.Type) string {
		var buf bytes.Buffer
		e := newEmitter(&buf, false)
		if err := e.emitTypes(ir.NewOp(ir.OpModule), types); err != nil {
			t.Fatalf("emitTypes failed: %v", err)
		}
		return buf.String()
	}

	if got := emit(); got != "void" {
		t.Fatalf("empty list = %q, want void", got)
	}
	if got := emit(ir.IntType(32, ir.Signless)); got != "int32_t" {
		t.Fatalf("singleton = %q, want bare type", got)
	}
	got := emit(ir.IntType(32, ir.Signless), ir.FloatType(64))
	if got != "std::tuple<int32_t, double>" {
		t.Fatalf("pair = %q", got)
	}
}

func TestEmitTypeErrorNamesType(t *testing.T) {
	_, err := emitTypeString(t, ir.IntType(24, ir.Signless))
	if err == nil || !strings.Contains(err.Error(), "i24") {
		t.Fatalf("error should identify the offending type: %v", err)
	}
}
