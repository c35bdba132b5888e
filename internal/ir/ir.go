// Package ir holds the in-memory program representation the C++ backend
// consumes: operations carrying typed values and constant attributes,
// organized into nested regions of basic blocks.
package ir

// Value is a single-definition unit of data, produced by exactly one
// operation result or one block argument and consumed any number of times.
// Identity is pointer identity.
type Value struct {
	Type  *Type
	Def   *Op    // defining operation; nil for block arguments
	Owner *Block // owning block for block arguments; nil for results
	Index int    // result index or argument index
}

// IsLiteral reports whether the value is a literal pseudo-value, whose
// stored text is substituted at every use and which is never named.
func (v *Value) IsLiteral() bool {
	return v.Def != nil && v.Def.Kind == OpLiteral
}

// LiteralText returns the pre-rendered text of a literal pseudo-value.
func (v *Value) LiteralText() string {
	return v.Def.Text
}

// Block is an ordered operation list plus argument slots, the target of zero
// or more unstructured branches.
type Block struct {
	Args   []*Value
	Ops    []*Op
	Region *Region
}

// AddArg appends a block argument of the given type and returns it.
func (b *Block) AddArg(t *Type) *Value {
	v := &Value{Type: t, Owner: b, Index: len(b.Args)}
	b.Args = append(b.Args, v)
	return v
}

// Append adds operations to the end of the block.
func (b *Block) Append(ops ...*Op) *Block {
	b.Ops = append(b.Ops, ops...)
	return b
}

// Region is an ordered list of blocks owned by one operation; the first
// block is the entry block.
type Region struct {
	Blocks []*Block
	Parent *Op
}

// AddBlock appends a block and returns it.
func (r *Region) AddBlock() *Block {
	b := &Block{Region: r}
	r.Blocks = append(r.Blocks, b)
	return b
}

// Empty reports whether the region holds no blocks.
func (r *Region) Empty() bool {
	return r == nil || len(r.Blocks) == 0
}

// Ops returns the operations of the entry block. Single-block structured
// regions keep their whole body there.
func (r *Region) Ops() []*Op {
	if r.Empty() {
		return nil
	}
	return r.Blocks[0].Ops
}

// HasPredecessors reports whether any branch inside the region targets b.
// A block that no branch targets never receives a label.
func (r *Region) HasPredecessors(b *Block) bool {
	for _, blk := range r.Blocks {
		for _, op := range blk.Ops {
			for _, succ := range op.Successors {
				if succ == b {
					return true
				}
			}
		}
	}
	return false
}

// Walk visits op and every operation nested in its regions in pre-order.
// Returning false from fn stops the walk.
func Walk(op *Op, fn func(*Op) bool) bool {
	if !fn(op) {
		return false
	}
	for _, region := range op.Regions {
		for _, block := range region.Blocks {
			for _, nested := range block.Ops {
				if !Walk(nested, fn) {
					return false
				}
			}
		}
	}
	return true
}
