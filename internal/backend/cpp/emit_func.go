package cpp

import (
	"sort"

	"ridge/internal/ir"
)

// emitModule establishes the outermost scope and emits each child in order.
func (e *emitter) emitModule(op *ir.Op) error {
	e.pushScope()
	defer e.popScope()

	for _, nested := range op.Body().Ops {
		if err := e.emitOperation(nested, false); err != nil {
			return err
		}
	}
	return nil
}

// emitFunc writes a typed signature and the function body. A multi-block
// body requires hoisted declarations and is rejected, before any output,
// otherwise.
func (e *emitter) emitFunc(op *ir.Op) error {
	body := op.Regions[0]
	if !e.declareVariablesAtTop && len(body.Blocks) > 1 {
		return opErrorf(op, "with multiple blocks needs variables declared at top")
	}

	e.pushScope()
	defer e.popScope()

	if err := e.emitTypes(op, op.ResultTypes); err != nil {
		return err
	}
	e.os.ws(" " + op.Name)

	e.os.ws("(")
	var params []*ir.Value
	if !body.Empty() {
		params = body.Blocks[0].Args
	}
	if err := interleaveComma(e.os, params, func(arg *ir.Value) error {
		if err := e.emitType(op, arg.Type); err != nil {
			return err
		}
		e.os.ws(" " + e.valueName(arg))
		return nil
	}); err != nil {
		return err
	}
	e.os.ws(") {\n")
	e.os.Indent()

	if e.declareVariablesAtTop {
		// Declare all variables that hold op results, including those from
		// nested regions.
		var walkErr error
		for _, block := range body.Blocks {
			for _, nested := range block.Ops {
				ir.Walk(nested, func(o *ir.Op) bool {
					if o.Kind == ir.OpLiteral {
						return true
					}
					for _, result := range o.Results {
						if err := e.emitVariableDeclaration(result, true); err != nil {
							walkErr = err
							return false
						}
					}
					return true
				})
				if walkErr != nil {
					return walkErr
				}
			}
		}
	}

	// Create label names for basic blocks.
	for _, block := range body.Blocks {
		e.blockLabel(block)
	}

	// Declare variables for basic block arguments.
	for _, block := range nonEntryBlocks(body) {
		for _, arg := range block.Args {
			if e.hasValueInScope(arg) {
				return opErrorf(op, "block argument #%d is out of scope", arg.Index)
			}
			if err := e.emitType(op, arg.Type); err != nil {
				return err
			}
			e.os.ws(" " + e.valueName(arg) + ";\n")
		}
	}

	for _, block := range body.Blocks {
		// Only print a label if the block has predecessors.
		if body.HasPredecessors(block) {
			if err := e.emitLabel(block); err != nil {
				return err
			}
		}
		for _, nested := range block.Ops {
			// Conditionals, loops and conditional branches close their own
			// brace; no semicolon follows it. Literals emit nothing.
			trailingSemicolon := needsTrailingSemicolon(nested.Kind)
			if err := e.emitOperation(nested, trailingSemicolon); err != nil {
				return err
			}
		}
	}
	e.os.Unindent()
	e.os.ws("}\n")
	return nil
}

func nonEntryBlocks(region *ir.Region) []*ir.Block {
	if region.Empty() {
		return nil
	}
	return region.Blocks[1:]
}

func needsTrailingSemicolon(kind ir.OpKind) bool {
	switch kind {
	case ir.OpCondBranch, ir.OpFor, ir.OpIf, ir.OpLiteral:
		return false
	}
	return true
}

// emitLabel writes the block's label at column zero.
func (e *emitter) emitLabel(block *ir.Block) error {
	if !e.hasBlockLabel(block) {
		return opErrorf(block.Region.Parent, "label for block not found")
	}
	e.os.wsNoIndent(e.blockLabel(block) + ":\n")
	return nil
}

// emitVariableAssignment writes `name = ` for an already-declared result.
func (e *emitter) emitVariableAssignment(result *ir.Value) error {
	if !e.hasValueInScope(result) {
		return opErrorf(result.Def, "result variable for the operation has not been declared")
	}
	e.os.ws(e.valueName(result) + " = ")
	return nil
}

// emitVariableDeclaration writes a typed declaration for an operation
// result, failing if the result already has a variable.
func (e *emitter) emitVariableDeclaration(result *ir.Value, trailingSemicolon bool) error {
	if e.hasValueInScope(result) {
		return opErrorf(result.Def, "result variable for the operation already declared")
	}
	if err := e.emitType(result.Def, result.Type); err != nil {
		return err
	}
	e.os.ws(" " + e.valueName(result))
	if trailingSemicolon {
		e.os.ws(";\n")
	}
	return nil
}

// emitAssignPrefix writes the declaration/assignment prefix for an
// operation's results: nothing for zero results, `Type name = ` or `name = `
// for one (by declaration mode), a std::tie of all names otherwise, with
// inline mode declaring each variable first.
func (e *emitter) emitAssignPrefix(op *ir.Op) error {
	switch len(op.Results) {
	case 0:
	case 1:
		result := op.Results[0]
		if e.declareVariablesAtTop {
			if err := e.emitVariableAssignment(result); err != nil {
				return err
			}
		} else {
			if err := e.emitVariableDeclaration(result, false); err != nil {
				return err
			}
			e.os.ws(" = ")
		}
	default:
		if !e.declareVariablesAtTop {
			for _, result := range op.Results {
				if err := e.emitVariableDeclaration(result, true); err != nil {
					return err
				}
			}
		}
		e.os.ws("std::tie(")
		for i, result := range op.Results {
			if i > 0 {
				e.os.ws(", ")
			}
			e.os.ws(e.valueName(result))
		}
		e.os.ws(") = ")
	}
	return nil
}

// emitOperands writes the operand names in order. An operand must already be
// in scope or be a literal pseudo-value.
func (e *emitter) emitOperands(op *ir.Op) error {
	return interleaveComma(e.os, op.Operands, func(operand *ir.Value) error {
		if !operand.IsLiteral() && !e.hasValueInScope(operand) {
			return opErrorf(op, "operand value not in scope")
		}
		e.os.ws(e.valueName(operand))
		return nil
	})
}

// emitOperandsAndAttributes writes all operands, then all attributes not in
// exclude in lexicographic order, each attribute preceded by a name comment.
func (e *emitter) emitOperandsAndAttributes(op *ir.Op, exclude []string) error {
	if err := e.emitOperands(op); err != nil {
		return err
	}

	names := make([]string, 0, len(op.Attrs))
	for name := range op.Attrs {
		if !contains(exclude, name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if len(op.Operands) > 0 && len(names) > 0 {
		e.os.ws(", ")
	}
	return interleaveComma(e.os, names, func(name string) error {
		e.os.ws("/* " + name + " */")
		return e.emitAttribute(op, op.Attrs[name])
	})
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
