package cpp

import "ridge/internal/ir"

// emitFor writes a C-style three-clause loop. The loop body is the region's
// operations except the trailing yield, each with a trailing semicolon.
func (e *emitter) emitFor(op *ir.Op) error {
	indVar := op.InductionVar()

	e.os.ws("for (")
	if err := e.emitType(op, indVar.Type); err != nil {
		return err
	}
	e.os.ws(" ")
	e.os.ws(e.valueName(indVar))
	e.os.ws(" = ")
	e.os.ws(e.valueName(op.Operands[0]))
	e.os.ws("; ")
	e.os.ws(e.valueName(indVar))
	e.os.ws(" < ")
	e.os.ws(e.valueName(op.Operands[1]))
	e.os.ws("; ")
	e.os.ws(e.valueName(indVar))
	e.os.ws(" += ")
	e.os.ws(e.valueName(op.Operands[2]))
	e.os.ws(") {\n")
	e.os.Indent()

	if err := e.emitRegionBody(op.Regions[0]); err != nil {
		return err
	}

	e.os.Unindent()
	e.os.ws("}")
	return nil
}

// emitIf writes the then branch and, only when the alternative region is
// present and non-empty, an else branch.
func (e *emitter) emitIf(op *ir.Op) error {
	e.os.ws("if (")
	if err := e.emitOperands(op); err != nil {
		return err
	}
	e.os.ws(") {\n")
	e.os.Indent()
	if err := e.emitRegionBody(op.Regions[0]); err != nil {
		return err
	}
	e.os.Unindent()
	e.os.ws("}")

	elseRegion := op.Regions[1]
	if !elseRegion.Empty() {
		e.os.ws(" else {\n")
		e.os.Indent()
		if err := e.emitRegionBody(elseRegion); err != nil {
			return err
		}
		e.os.Unindent()
		e.os.ws("}")
	}
	return nil
}

// emitRegionBody emits every operation of a structured region except the
// final implicit terminator, each with a trailing semicolon.
func (e *emitter) emitRegionBody(region *ir.Region) error {
	ops := region.Ops()
	for i := 0; i+1 < len(ops); i++ {
		if err := e.emitOperation(ops[i], true); err != nil {
			return err
		}
	}
	return nil
}

// emitBranch assigns the successor's block arguments from the branch
// operands, then jumps to its label.
func (e *emitter) emitBranch(op *ir.Op) error {
	successor := op.Successors[0]

	for i, operand := range op.Operands {
		argument := successor.Args[i]
		e.os.ws(e.valueName(argument))
		e.os.ws(" = ")
		e.os.ws(e.valueName(operand))
		e.os.ws(";\n")
	}

	e.os.ws("goto ")
	if !e.hasBlockLabel(successor) {
		return opErrorf(op, "unable to find label for successor block")
	}
	e.os.ws(e.blockLabel(successor))
	return nil
}

// emitCondBranch lowers a two-way branch to an if/else of block-argument
// assignments and gotos.
func (e *emitter) emitCondBranch(op *ir.Op) error {
	trueSuccessor := op.Successors[0]
	falseSuccessor := op.Successors[1]

	e.os.ws("if (")
	e.os.ws(e.valueName(op.Operands[0]))
	e.os.ws(") {\n")
	e.os.Indent()

	for i, operand := range op.TrueOperands() {
		argument := trueSuccessor.Args[i]
		e.os.ws(e.valueName(argument))
		e.os.ws(" = ")
		e.os.ws(e.valueName(operand))
		e.os.ws(";\n")
	}

	e.os.ws("goto ")
	if !e.hasBlockLabel(trueSuccessor) {
		return opErrorf(op, "unable to find label for successor block")
	}
	e.os.ws(e.blockLabel(trueSuccessor))
	e.os.ws(";\n")
	e.os.Unindent()
	e.os.ws("} else {\n")
	e.os.Indent()

	for i, operand := range op.FalseOperands() {
		argument := falseSuccessor.Args[i]
		e.os.ws(e.valueName(argument))
		e.os.ws(" = ")
		e.os.ws(e.valueName(operand))
		e.os.ws(";\n")
	}

	e.os.ws("goto ")
	if !e.hasBlockLabel(falseSuccessor) {
		return opErrorf(op, "unable to find label for successor block")
	}
	e.os.ws(e.blockLabel(falseSuccessor))
	e.os.ws(";\n")
	e.os.Unindent()
	e.os.ws("}")
	return nil
}

// emitReturn writes a bare return for zero operands, a plain return for one
// and a std::make_tuple construction otherwise.
func (e *emitter) emitReturn(op *ir.Op) error {
	e.os.ws("return")
	switch len(op.Operands) {
	case 0:
		return nil
	case 1:
		operand := op.Operands[0]
		if !operand.IsLiteral() && !e.hasValueInScope(operand) {
			return opErrorf(op, "operand value not in scope")
		}
		e.os.ws(" ")
		e.os.ws(e.valueName(operand))
		return nil
	default:
		e.os.ws(" std::make_tuple(")
		if err := e.emitOperandsAndAttributes(op, nil); err != nil {
			return err
		}
		e.os.ws(")")
		return nil
	}
}
