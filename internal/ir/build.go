package ir

// Constructors for each operation kind. The decoder and tests build IR
// through these so the per-kind shape invariants stay in one place.

// Module builds the top-level container with one region and one block.
func Module() *Op {
	op := NewOp(OpModule)
	op.AddRegion().AddBlock()
	return op
}

// Body returns the single block of a module container.
func (o *Op) Body() *Block {
	return o.Regions[0].Blocks[0]
}

// Func builds a function definition with an empty body region.
func Func(name string, resultTypes ...*Type) *Op {
	op := NewOp(OpFunc)
	op.Name = name
	op.ResultTypes = resultTypes
	op.AddRegion()
	return op
}

// Constant builds a constant producing one result of type t from value v.
func Constant(t *Type, v Attr) *Op {
	op := NewOp(OpConstant)
	op.Value = v
	op.AddResult(t)
	return op
}

// Variable builds a memory-cell declaration with an initial value attribute.
func Variable(t *Type, v Attr) *Op {
	op := NewOp(OpVariable)
	op.Value = v
	op.AddResult(t)
	return op
}

// Assign builds a store of src into the variable result dst.
func Assign(dst, src *Value) *Op {
	return NewOp(OpAssign).AddOperands(dst, src)
}

// Binary builds a binary arithmetic operation of the given kind.
func Binary(kind OpKind, t *Type, lhs, rhs *Value) *Op {
	op := NewOp(kind).AddOperands(lhs, rhs)
	op.AddResult(t)
	return op
}

// Cmp builds a comparison of lhs and rhs under pred, producing a bool.
func Cmp(pred CmpPredicate, lhs, rhs *Value) *Op {
	op := NewOp(OpCmp).AddOperands(lhs, rhs)
	op.Predicate = pred
	op.AddResult(BoolType())
	return op
}

// Apply builds a prefix-operator application producing one result of type t.
func Apply(operator string, t *Type, operand *Value) *Op {
	op := NewOp(OpApply).AddOperands(operand)
	op.Operator = operator
	op.AddResult(t)
	return op
}

// Cast builds an explicit conversion of operand to type t.
func Cast(t *Type, operand *Value) *Op {
	op := NewOp(OpCast).AddOperands(operand)
	op.AddResult(t)
	return op
}

// Call builds a call to a named callee. Arguments default to the operands in
// order; SetArgs installs an explicit argument attribute list instead.
func Call(callee string, resultTypes []*Type, operands ...*Value) *Op {
	op := NewOp(OpCall).AddOperands(operands...)
	op.Callee = callee
	for _, t := range resultTypes {
		op.AddResult(t)
	}
	return op
}

// SetArgs installs an explicit argument attribute list on a call.
func (o *Op) SetArgs(args ...Attr) *Op {
	o.Args = args
	o.HasArgs = true
	return o
}

// SetTemplateArgs installs a template argument attribute list on a call.
func (o *Op) SetTemplateArgs(args ...Attr) *Op {
	o.TemplateArgs = args
	o.HasTemplateArgs = true
	return o
}

// Include builds an include directive.
func Include(path string, standard bool) *Op {
	op := NewOp(OpInclude)
	op.Include = path
	op.IsStandard = standard
	return op
}

// For builds a structured counted loop over [lb, ub) stepping by step.
// The body entry block carries the induction variable as its sole argument;
// the caller fills the body and must end it with Yield.
func For(indVarType *Type, lb, ub, step *Value) *Op {
	op := NewOp(OpFor).AddOperands(lb, ub, step)
	op.AddRegion().AddBlock().AddArg(indVarType)
	return op
}

// InductionVar returns the induction variable of an OpFor.
func (o *Op) InductionVar() *Value {
	return o.Regions[0].Blocks[0].Args[0]
}

// If builds a structured conditional. The then region gets one block; the
// else region gets one only when withElse is set. Both filled blocks must
// end with Yield.
func If(cond *Value, withElse bool) *Op {
	op := NewOp(OpIf).AddOperands(cond)
	op.AddRegion().AddBlock()
	elseRegion := op.AddRegion()
	if withElse {
		elseRegion.AddBlock()
	}
	return op
}

// ThenBlock returns the then-region block of an OpIf.
func (o *Op) ThenBlock() *Block {
	return o.Regions[0].Blocks[0]
}

// ElseBlock returns the else-region block of an OpIf, or nil.
func (o *Op) ElseBlock() *Block {
	if o.Regions[1].Empty() {
		return nil
	}
	return o.Regions[1].Blocks[0]
}

// Yield builds the implicit terminator of a structured region.
func Yield() *Op {
	return NewOp(OpYield)
}

// Branch builds an unconditional branch to target, feeding its arguments.
func Branch(target *Block, operands ...*Value) *Op {
	op := NewOp(OpBranch).AddOperands(operands...)
	op.Successors = []*Block{target}
	return op
}

// CondBranch builds a conditional branch. trueOps feed trueDest's arguments,
// falseOps feed falseDest's.
func CondBranch(cond *Value, trueDest *Block, trueOps []*Value, falseDest *Block, falseOps []*Value) *Op {
	op := NewOp(OpCondBranch)
	op.AddOperands(cond)
	op.AddOperands(trueOps...)
	op.AddOperands(falseOps...)
	op.NumTrueOperands = len(trueOps)
	op.Successors = []*Block{trueDest, falseDest}
	return op
}

// Return builds a function return of the given operands.
func Return(operands ...*Value) *Op {
	return NewOp(OpReturn).AddOperands(operands...)
}

// Literal builds a literal pseudo-value producer. The result is inlined as
// text at every use and never declared.
func Literal(t *Type, text string) *Op {
	op := NewOp(OpLiteral)
	op.Text = text
	op.AddResult(t)
	return op
}
