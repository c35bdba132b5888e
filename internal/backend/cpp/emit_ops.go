package cpp

import (
	"fortio.org/safecast"

	"ridge/internal/ir"
)

// emitConstantLike handles OpConstant and OpVariable. An opaque value with
// an empty payload legally skips the value text: under hoisted declarations
// the whole statement is omitted, otherwise the variable declaration alone
// is emitted.
func (e *emitter) emitConstantLike(op *ir.Op) error {
	result := op.Results[0]
	value := op.Value

	// The variable was already declared when printing the enclosing
	// function, so only an assignment remains.
	if e.declareVariablesAtTop {
		if value.Kind == ir.AttrOpaque && value.Text == "" {
			return nil
		}
		if err := e.emitVariableAssignment(result); err != nil {
			return err
		}
		return e.emitAttribute(op, value)
	}

	if value.Kind == ir.AttrOpaque && value.Text == "" {
		// The semicolon is appended by emitOperation.
		return e.emitVariableDeclaration(result, false)
	}

	if err := e.emitAssignPrefix(op); err != nil {
		return err
	}
	return e.emitAttribute(op, value)
}

// emitAssign writes a store into a previously declared variable; it never
// re-declares.
func (e *emitter) emitAssign(op *ir.Op) error {
	variable := op.Operands[0]
	if variable.Def == nil || variable.Def.Kind != ir.OpVariable {
		return opErrorf(op, "assign target is not a variable result")
	}
	if err := e.emitVariableAssignment(variable.Def.Results[0]); err != nil {
		return err
	}
	e.os.ws(e.valueName(op.Operands[1]))
	return nil
}

func (e *emitter) emitBinary(op *ir.Op, binaryOperator string) error {
	if err := e.emitAssignPrefix(op); err != nil {
		return err
	}
	e.os.ws(e.valueName(op.Operands[0]))
	e.os.ws(" " + binaryOperator)
	e.os.ws(" " + e.valueName(op.Operands[1]))
	return nil
}

func (e *emitter) emitCmp(op *ir.Op) error {
	var binaryOperator string
	switch op.Predicate {
	case ir.CmpEq:
		binaryOperator = "=="
	case ir.CmpNe:
		binaryOperator = "!="
	case ir.CmpLt:
		binaryOperator = "<"
	case ir.CmpLe:
		binaryOperator = "<="
	case ir.CmpGt:
		binaryOperator = ">"
	case ir.CmpGe:
		binaryOperator = ">="
	case ir.CmpThreeWay:
		binaryOperator = "<=>"
	default:
		return opErrorf(op, "unsupported comparison predicate %d", op.Predicate)
	}
	return e.emitBinary(op, binaryOperator)
}

// emitApply writes the stored prefix operator immediately followed by the
// operand, no space in between.
func (e *emitter) emitApply(op *ir.Op) error {
	if err := e.emitAssignPrefix(op); err != nil {
		return err
	}
	e.os.ws(op.Operator)
	e.os.ws(e.valueName(op.Operands[0]))
	return nil
}

func (e *emitter) emitCast(op *ir.Op) error {
	if err := e.emitAssignPrefix(op); err != nil {
		return err
	}
	e.os.ws("(")
	if err := e.emitType(op, op.Results[0].Type); err != nil {
		return err
	}
	e.os.ws(") ")
	e.os.ws(e.valueName(op.Operands[0]))
	return nil
}

// emitCall writes a callee, an optional template argument list and an
// argument list. With an explicit argument attribute list, an index-typed
// integer attribute substitutes the operand at that index; any other
// attribute renders as its literal text. Without one, the operands are the
// arguments.
func (e *emitter) emitCall(op *ir.Op) error {
	if err := e.emitAssignPrefix(op); err != nil {
		return err
	}
	e.os.ws(op.Callee)

	emitArg := func(attr ir.Attr) error {
		if attr.IsOperandIndex() {
			idx, err := safecast.Conv[int](attr.Int)
			if err != nil || idx < 0 || idx >= len(op.Operands) {
				return opErrorf(op, "invalid operand index")
			}
			if !e.hasValueInScope(op.Operands[idx]) {
				return opErrorf(op, "operand %d's value not defined in scope", idx)
			}
			e.os.ws(e.valueName(op.Operands[idx]))
			return nil
		}
		return e.emitAttribute(op, attr)
	}

	if op.HasTemplateArgs {
		e.os.ws("<")
		if err := interleaveComma(e.os, op.TemplateArgs, emitArg); err != nil {
			return err
		}
		e.os.ws(">")
	}

	e.os.ws("(")
	if op.HasArgs {
		if err := interleaveComma(e.os, op.Args, emitArg); err != nil {
			return err
		}
	} else {
		if err := e.emitOperands(op); err != nil {
			return err
		}
	}
	e.os.ws(")")
	return nil
}

func (e *emitter) emitInclude(op *ir.Op) error {
	e.os.ws("#include ")
	if op.IsStandard {
		e.os.ws("<" + op.Include + ">")
	} else {
		e.os.ws("\"" + op.Include + "\"")
	}
	return nil
}
