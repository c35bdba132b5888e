package cpp

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"ridge/internal/ir"
)

func translateToString(t *testing.T, root *ir.Op, declareVariablesAtTop bool) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Translate(root, &buf, declareVariablesAtTop); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	return buf.String()
}

func i32() *ir.Type { return ir.IntType(32, ir.Signless) }

func TestConstantAndReturnInline(t *testing.T) {
	mod := ir.Module()
	fn := ir.Func("foo", i32())
	entry := fn.Regions[0].AddBlock()
	c := ir.Constant(i32(), ir.IntAttr(i32(), 42))
	entry.Append(c, ir.Return(c.Results[0]))
	mod.Body().Append(fn)

	got := translateToString(t, mod, false)
	want := "int32_t foo() {\n" +
		"  int32_t v1 = 42;\n" +
		"  return v1;\n" +
		"}\n"
	if !strings.Contains(got, want) {
		t.Fatalf("inline constant+return mismatch:\ngot:\n%s\nwant body:\n%s", got, want)
	}
}

func TestBranchAssignsBlockArgumentAndLabels(t *testing.T) {
	mod := ir.Module()
	fn := ir.Func("f", i32())
	body := fn.Regions[0]
	entry := body.AddBlock()
	second := body.AddBlock()
	arg := second.AddArg(i32())

	c := ir.Constant(i32(), ir.IntAttr(i32(), 7))
	entry.Append(c, ir.Branch(second, c.Results[0]))
	second.Append(ir.Return(arg))
	mod.Body().Append(fn)

	got := translateToString(t, mod, true)
	want := "int32_t f() {\n" +
		"  int32_t v1;\n" +
		"  int32_t v2;\n" +
		"  v1 = 7;\n" +
		"  v2 = v1;\n" +
		"  goto label2;\n" +
		"label2:\n" +
		"  return v2;\n" +
		"}\n"
	if !strings.Contains(got, want) {
		t.Fatalf("branch lowering mismatch:\ngot:\n%s\nwant body:\n%s", got, want)
	}
}

func TestCallWithOperands(t *testing.T) {
	mod := ir.Module()
	fn := ir.Func("caller", i32())
	entry := fn.Regions[0].AddBlock()
	a := ir.Constant(i32(), ir.IntAttr(i32(), 1))
	b := ir.Constant(i32(), ir.IntAttr(i32(), 2))
	call := ir.Call("bar", []*ir.Type{i32()}, a.Results[0], b.Results[0])
	entry.Append(a, b, call, ir.Return(call.Results[0]))
	mod.Body().Append(fn)

	got := translateToString(t, mod, false)
	if !strings.Contains(got, "int32_t v3 = bar(v1, v2);\n") {
		t.Fatalf("call emission mismatch:\n%s", got)
	}
}

func TestIfWithEmptyBranches(t *testing.T) {
	mod := ir.Module()
	fn := ir.Func("g")
	entry := fn.Regions[0].AddBlock()
	cond := ir.Constant(ir.BoolType(), ir.BoolAttr(true))
	ifOp := ir.If(cond.Results[0], true)
	ifOp.ThenBlock().Append(ir.Yield())
	ifOp.ElseBlock().Append(ir.Yield())
	entry.Append(cond, ifOp, ir.Return())
	mod.Body().Append(fn)

	got := translateToString(t, mod, false)
	want := "  if (v1) {\n" +
		"  } else {\n" +
		"  }\n"
	if !strings.Contains(got, want) {
		t.Fatalf("if emission mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
	if strings.Contains(got, "};") {
		t.Fatalf("unexpected terminator after closing brace:\n%s", got)
	}
}

func TestNaNRendersAsNamedConstant(t *testing.T) {
	mod := ir.Module()
	fn := ir.Func("h", ir.FloatType(32))
	entry := fn.Regions[0].AddBlock()
	c := ir.Constant(ir.FloatType(32), ir.FloatAttr(ir.FloatType(32), math.NaN()))
	entry.Append(c, ir.Return(c.Results[0]))
	mod.Body().Append(fn)

	got := translateToString(t, mod, false)
	if !strings.Contains(got, "float v1 = NAN;\n") {
		t.Fatalf("NaN emission mismatch:\n%s", got)
	}
}

func TestMultiBlockRejectedInlineBeforeOutput(t *testing.T) {
	mod := ir.Module()
	fn := ir.Func("bad")
	body := fn.Regions[0]
	entry := body.AddBlock()
	second := body.AddBlock()
	entry.Append(ir.Branch(second))
	second.Append(ir.Return())
	mod.Body().Append(fn)

	var buf bytes.Buffer
	err := Translate(mod, &buf, false)
	if err == nil {
		t.Fatal("expected multi-block function to be rejected in inline mode")
	}
	if !strings.Contains(err.Error(), "multiple blocks") {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("output emitted before rejection: %q", buf.String())
	}
}

func TestMissingLabelForSuccessor(t *testing.T) {
	dangling := &ir.Block{}
	br := ir.Branch(dangling)

	var buf bytes.Buffer
	err := Translate(br, &buf, true)
	if err == nil {
		t.Fatal("expected missing-label error")
	}
	if !strings.Contains(err.Error(), "unable to find label for successor block") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReturnArity(t *testing.T) {
	build := func(n int) *ir.Op {
		mod := ir.Module()
		types := make([]*ir.Type, n)
		for i := range types {
			types[i] = i32()
		}
		var retType []*ir.Type
		switch n {
		case 0:
		case 1:
			retType = []*ir.Type{i32()}
		default:
			retType = []*ir.Type{ir.TupleType(types...)}
		}
		fn := ir.Func("r", retType...)
		entry := fn.Regions[0].AddBlock()
		vals := make([]*ir.Value, n)
		for i := range vals {
			c := ir.Constant(i32(), ir.IntAttr(i32(), int64(i)))
			entry.Append(c)
			vals[i] = c.Results[0]
		}
		entry.Append(ir.Return(vals...))
		mod.Body().Append(fn)
		return mod
	}

	got := translateToString(t, build(0), false)
	if !strings.Contains(got, "  return;\n") {
		t.Fatalf("bare return mismatch:\n%s", got)
	}
	got = translateToString(t, build(1), false)
	if !strings.Contains(got, "  return v1;\n") {
		t.Fatalf("single return mismatch:\n%s", got)
	}
	got = translateToString(t, build(2), false)
	if !strings.Contains(got, "  return std::make_tuple(v1, v2);\n") {
		t.Fatalf("aggregate return mismatch:\n%s", got)
	}
}

func TestReturnOutOfScopeOperandFails(t *testing.T) {
	mod := ir.Module()
	fn := ir.Func("r", i32())
	entry := fn.Regions[0].AddBlock()
	orphan := ir.Constant(i32(), ir.IntAttr(i32(), 1))
	// The constant never appears in the body, so its result has no name.
	entry.Append(ir.Return(orphan.Results[0]))
	mod.Body().Append(fn)

	var buf bytes.Buffer
	err := Translate(mod, &buf, false)
	if err == nil {
		t.Fatal("expected out-of-scope operand error")
	}
	if !strings.Contains(err.Error(), "operand value not in scope") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSiblingFunctionsReuseNames(t *testing.T) {
	mod := ir.Module()
	for _, name := range []string{"first", "second"} {
		fn := ir.Func(name, i32())
		entry := fn.Regions[0].AddBlock()
		c := ir.Constant(i32(), ir.IntAttr(i32(), 5))
		entry.Append(c, ir.Return(c.Results[0]))
		mod.Body().Append(fn)
	}

	got := translateToString(t, mod, false)
	if strings.Count(got, "int32_t v1 = 5;") != 2 {
		t.Fatalf("sibling scopes should reuse numbering:\n%s", got)
	}
}

func TestNameStability(t *testing.T) {
	e := newEmitter(&bytes.Buffer{}, false)
	e.pushScope()
	c := ir.Constant(i32(), ir.IntAttr(i32(), 0))
	d := ir.Constant(i32(), ir.IntAttr(i32(), 0))
	first := e.valueName(c.Results[0])
	if again := e.valueName(c.Results[0]); again != first {
		t.Fatalf("name not stable: %q then %q", first, again)
	}
	if other := e.valueName(d.Results[0]); other == first {
		t.Fatalf("distinct values collided on %q", first)
	}
}

func TestScopeRestorationFreesNumbers(t *testing.T) {
	e := newEmitter(&bytes.Buffer{}, false)
	e.pushScope()

	e.pushScope()
	inner := ir.Constant(i32(), ir.IntAttr(i32(), 0))
	got := e.valueName(inner.Results[0])
	e.popScope()

	e.pushScope()
	sibling := ir.Constant(i32(), ir.IntAttr(i32(), 0))
	if reused := e.valueName(sibling.Results[0]); reused != got {
		t.Fatalf("sibling scope did not reuse freed number: %q vs %q", reused, got)
	}
	e.popScope()
}

func TestLiteralInlinedNeverDeclared(t *testing.T) {
	mod := ir.Module()
	fn := ir.Func("lit", i32())
	entry := fn.Regions[0].AddBlock()
	lit := ir.Literal(i32(), "FOO")
	c := ir.Binary(ir.OpAdd, i32(), lit.Results[0], lit.Results[0])
	entry.Append(lit, c, ir.Return(c.Results[0]))
	mod.Body().Append(fn)

	got := translateToString(t, mod, true)
	if !strings.Contains(got, "v1 = FOO + FOO;\n") {
		t.Fatalf("literal not inlined:\n%s", got)
	}
	if strings.Contains(got, "int32_t FOO") {
		t.Fatalf("literal pseudo-value was declared:\n%s", got)
	}
}

func TestUnrecognizedKindFails(t *testing.T) {
	op := ir.NewOp(ir.OpKind(200))
	var buf bytes.Buffer
	err := Translate(op, &buf, false)
	if err == nil {
		t.Fatal("expected failure for unrecognized operation kind")
	}
	if !strings.Contains(err.Error(), "no emission rule") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestYieldOutsideStructuredRegionFails(t *testing.T) {
	var buf bytes.Buffer
	if err := Translate(ir.Yield(), &buf, false); err == nil {
		t.Fatal("expected failure for a directly emitted yield")
	}
}
