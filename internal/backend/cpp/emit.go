// Package cpp translates an ir operation tree into C++ source text.
//
// The translation is a single-threaded recursive descent over the tree; the
// first failure aborts it. Output already flushed to the sink is not
// retracted on failure, so callers that need atomicity must buffer
// themselves. A fresh emitter is used per translation.
package cpp

import (
	"fmt"
	"io"

	"ridge/internal/ir"
)

// OpError is a structured emission failure naming the offending operation.
type OpError struct {
	Op  *ir.Op
	Msg string
}

func (e *OpError) Error() string {
	return fmt.Sprintf("op %s: %s", e.Op.Kind, e.Msg)
}

func opErrorf(op *ir.Op, format string, args ...any) error {
	return &OpError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// scope is one lexical nesting level of the name allocator. The counters are
// copied from the enclosing scope on entry and discarded with the scope, so
// names stay unique along a scope chain while sibling scopes may reuse
// numeric suffixes freed by an exited scope.
type scope struct {
	values     map[*ir.Value]string
	labels     map[*ir.Block]string
	valueCount int
	labelCount int
}

type emitter struct {
	os *writer

	// declareVariablesAtTop forces every variable for op results and block
	// arguments, including those from nested regions, to be declared at the
	// beginning of the enclosing function.
	declareVariablesAtTop bool

	scopes []*scope
}

func newEmitter(w io.Writer, declareVariablesAtTop bool) *emitter {
	e := &emitter{os: newWriter(w), declareVariablesAtTop: declareVariablesAtTop}
	e.pushScope()
	return e
}

func (e *emitter) pushScope() {
	s := &scope{
		values: make(map[*ir.Value]string),
		labels: make(map[*ir.Block]string),
	}
	if n := len(e.scopes); n > 0 {
		s.valueCount = e.scopes[n-1].valueCount
		s.labelCount = e.scopes[n-1].labelCount
	}
	e.scopes = append(e.scopes, s)
}

func (e *emitter) popScope() {
	e.scopes = e.scopes[:len(e.scopes)-1]
}

func (e *emitter) top() *scope {
	return e.scopes[len(e.scopes)-1]
}

// valueName returns the existing or a new name for a value. Literal
// pseudo-values bypass the tables and render as their stored text.
func (e *emitter) valueName(v *ir.Value) string {
	if v.IsLiteral() {
		return v.LiteralText()
	}
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if name, ok := e.scopes[i].values[v]; ok {
			return name
		}
	}
	top := e.top()
	top.valueCount++
	name := fmt.Sprintf("v%d", top.valueCount)
	top.values[v] = name
	return name
}

// blockLabel returns the existing or a new label for a block.
func (e *emitter) blockLabel(b *ir.Block) string {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if label, ok := e.scopes[i].labels[b]; ok {
			return label
		}
	}
	top := e.top()
	top.labelCount++
	label := fmt.Sprintf("label%d", top.labelCount)
	top.labels[b] = label
	return label
}

// hasValueInScope reports whether the value already has a name, without
// allocating one. Literal pseudo-values are never in a table.
func (e *emitter) hasValueInScope(v *ir.Value) bool {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if _, ok := e.scopes[i].values[v]; ok {
			return true
		}
	}
	return false
}

// hasBlockLabel reports whether the block already has a label, without
// allocating one.
func (e *emitter) hasBlockLabel(b *ir.Block) bool {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if _, ok := e.scopes[i].labels[b]; ok {
			return true
		}
	}
	return false
}

// Translate renders the operation tree rooted at root as C++ source text on
// w. When declareVariablesAtTop is set, every function declares all its
// variables up front; otherwise declarations are inlined and multi-block
// functions are rejected.
func Translate(root *ir.Op, w io.Writer, declareVariablesAtTop bool) error {
	e := newEmitter(w, declareVariablesAtTop)
	if err := e.emitOperation(root, false); err != nil {
		return err
	}
	return e.os.err
}

// emitOperation dispatches over the closed kind set. Structured conditionals,
// loops and conditional branches supply their own closing brace, so their
// callers request no trailing semicolon.
func (e *emitter) emitOperation(op *ir.Op, trailingSemicolon bool) error {
	var err error
	switch op.Kind {
	case ir.OpModule:
		err = e.emitModule(op)
	case ir.OpFunc:
		err = e.emitFunc(op)
	case ir.OpConstant, ir.OpVariable:
		err = e.emitConstantLike(op)
	case ir.OpAssign:
		err = e.emitAssign(op)
	case ir.OpAdd:
		err = e.emitBinary(op, "+")
	case ir.OpSub:
		err = e.emitBinary(op, "-")
	case ir.OpMul:
		err = e.emitBinary(op, "*")
	case ir.OpDiv:
		err = e.emitBinary(op, "/")
	case ir.OpRem:
		err = e.emitBinary(op, "%")
	case ir.OpCmp:
		err = e.emitCmp(op)
	case ir.OpApply:
		err = e.emitApply(op)
	case ir.OpCast:
		err = e.emitCast(op)
	case ir.OpCall:
		err = e.emitCall(op)
	case ir.OpInclude:
		err = e.emitInclude(op)
	case ir.OpFor:
		err = e.emitFor(op)
	case ir.OpIf:
		err = e.emitIf(op)
	case ir.OpBranch:
		err = e.emitBranch(op)
	case ir.OpCondBranch:
		err = e.emitCondBranch(op)
	case ir.OpReturn:
		err = e.emitReturn(op)
	case ir.OpLiteral:
		// Inlined at every use; produces no statement.
		return nil
	default:
		err = opErrorf(op, "no emission rule for operation kind %q", op.Kind)
	}
	if err != nil {
		return err
	}
	if trailingSemicolon {
		e.os.ws(";\n")
	} else {
		e.os.ws("\n")
	}
	return nil
}

// interleaveComma emits each item with ", " between them, stopping at the
// first failure.
func interleaveComma[T any](os *writer, items []T, each func(T) error) error {
	for i, item := range items {
		if i > 0 {
			os.ws(", ")
		}
		if err := each(item); err != nil {
			return err
		}
	}
	return nil
}
