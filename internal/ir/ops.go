package ir

// OpKind enumerates the closed set of operation kinds the toolchain
// recognizes. The C++ backend rejects anything outside this set.
type OpKind uint8

const (
	// OpModule is the top-level container; one region, one block.
	OpModule OpKind = iota
	// OpFunc is a function definition; one body region.
	OpFunc
	// OpConstant produces one result from a constant attribute.
	OpConstant
	// OpVariable declares a memory cell with an initial value attribute.
	OpVariable
	// OpAssign stores operand 1 into the variable result referenced by operand 0.
	OpAssign
	// OpAdd is binary addition.
	OpAdd
	// OpSub is binary subtraction.
	OpSub
	// OpMul is binary multiplication.
	OpMul
	// OpDiv is binary division.
	OpDiv
	// OpRem is binary remainder.
	OpRem
	// OpCmp compares two operands under a predicate.
	OpCmp
	// OpApply applies a stored prefix operator to one operand.
	OpApply
	// OpCast converts its operand to the result type.
	OpCast
	// OpCall invokes a named callee.
	OpCall
	// OpInclude emits an include directive.
	OpInclude
	// OpFor is a structured counted loop; one body region.
	OpFor
	// OpIf is a structured conditional; then region plus optional else region.
	OpIf
	// OpYield terminates a structured region; never rendered.
	OpYield
	// OpBranch jumps unconditionally to its successor block.
	OpBranch
	// OpCondBranch jumps to one of two successor blocks on a condition.
	OpCondBranch
	// OpReturn returns from the enclosing function.
	OpReturn
	// OpLiteral produces a pseudo-value whose text is inlined at every use.
	OpLiteral
)

var opKindNames = [...]string{
	OpModule:     "module",
	OpFunc:       "func",
	OpConstant:   "constant",
	OpVariable:   "variable",
	OpAssign:     "assign",
	OpAdd:        "add",
	OpSub:        "sub",
	OpMul:        "mul",
	OpDiv:        "div",
	OpRem:        "rem",
	OpCmp:        "cmp",
	OpApply:      "apply",
	OpCast:       "cast",
	OpCall:       "call",
	OpInclude:    "include",
	OpFor:        "for",
	OpIf:         "if",
	OpYield:      "yield",
	OpBranch:     "br",
	OpCondBranch: "cond_br",
	OpReturn:     "return",
	OpLiteral:    "literal",
}

func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return "unknown"
}

// CmpPredicate selects the comparison an OpCmp performs.
type CmpPredicate uint8

const (
	// CmpEq is equality.
	CmpEq CmpPredicate = iota
	// CmpNe is inequality.
	CmpNe
	// CmpLt is less-than.
	CmpLt
	// CmpLe is less-or-equal.
	CmpLe
	// CmpGt is greater-than.
	CmpGt
	// CmpGe is greater-or-equal.
	CmpGe
	// CmpThreeWay is the three-way comparison.
	CmpThreeWay
)

// Op is one operation node. Results, Operands, Attrs, Regions and Successors
// are the generic structure; the remaining fields are per-kind payloads and
// stay zero for kinds that do not use them.
type Op struct {
	Kind OpKind

	Results    []*Value
	Operands   []*Value
	Attrs      map[string]Attr
	Regions    []*Region
	Successors []*Block

	// OpConstant, OpVariable
	Value Attr

	// OpCall
	Callee          string
	Args            []Attr
	HasArgs         bool
	TemplateArgs    []Attr
	HasTemplateArgs bool

	// OpCmp
	Predicate CmpPredicate

	// OpApply
	Operator string

	// OpInclude
	Include    string
	IsStandard bool

	// OpFunc
	Name        string
	ResultTypes []*Type

	// OpLiteral
	Text string

	// OpCondBranch: Operands[0] is the condition, the next NumTrueOperands
	// feed the true successor's arguments, the rest feed the false successor's.
	NumTrueOperands int
}

// NewOp allocates an operation of the given kind.
func NewOp(kind OpKind) *Op {
	return &Op{Kind: kind}
}

// AddResult appends a result value of the given type and returns it.
func (o *Op) AddResult(t *Type) *Value {
	v := &Value{Type: t, Def: o, Index: len(o.Results)}
	o.Results = append(o.Results, v)
	return v
}

// AddOperands appends operand references in order.
func (o *Op) AddOperands(vals ...*Value) *Op {
	o.Operands = append(o.Operands, vals...)
	return o
}

// SetAttr records a named attribute.
func (o *Op) SetAttr(name string, a Attr) *Op {
	if o.Attrs == nil {
		o.Attrs = make(map[string]Attr)
	}
	o.Attrs[name] = a
	return o
}

// AddRegion appends an owned region and returns it.
func (o *Op) AddRegion() *Region {
	r := &Region{Parent: o}
	o.Regions = append(o.Regions, r)
	return r
}

// TrueOperands returns the condition-true argument feed of an OpCondBranch.
func (o *Op) TrueOperands() []*Value {
	return o.Operands[1 : 1+o.NumTrueOperands]
}

// FalseOperands returns the condition-false argument feed of an OpCondBranch.
func (o *Op) FalseOperands() []*Value {
	return o.Operands[1+o.NumTrueOperands:]
}
