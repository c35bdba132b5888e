// Package irenc serializes ir operation trees with msgpack so producers can
// hand modules to the translator as files.
//
// The pointer graph is flattened deterministically: values are numbered by a
// pre-order traversal (op results first, then per region all block arguments
// in block order, then the block operations), and operands encode as those
// numbers. Branch successors encode as block indices within their region.
// The decoder replays the same traversal, so identifiers never appear on the
// wire for definitions, only for uses.
package irenc

import (
	"fmt"
	"io"
	"os"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"ridge/internal/ir"
)

// Schema is the wire format version; increment on incompatible change.
const Schema uint16 = 1

type wireType struct {
	Kind   uint8
	Width  uint32
	Sign   uint8
	Elem   *wireType
	Dims   []int64
	Ranked bool
	Elems  []*wireType
	Text   string
}

type wireAttr struct {
	Kind   uint8
	Type   *wireType
	Int    int64
	Float  float64
	Ints   []int64
	Floats []float64
	Text   string
	Root   string
	Nested []string
	Inner  *wireType
}

type wireBlock struct {
	ArgTypes []*wireType
	Ops      []wireOp
}

type wireRegion struct {
	Blocks []wireBlock
}

type wireOp struct {
	Kind        uint8
	ResultTypes []*wireType
	Operands    []uint32
	Attrs       map[string]wireAttr
	Regions     []wireRegion
	Successors  []uint32

	Value           *wireAttr
	Callee          string
	Args            []wireAttr
	HasArgs         bool
	TemplateArgs    []wireAttr
	HasTemplateArgs bool
	Predicate       uint8
	Operator        string
	Include         string
	IsStandard      bool
	Name            string
	FuncResults     []*wireType
	Text            string
	NumTrueOperands uint32
}

type wireModule struct {
	Schema uint16
	Root   wireOp
}

// Encode writes the operation tree rooted at root to w.
func Encode(w io.Writer, root *ir.Op) error {
	enc := &encoder{
		valueIDs: make(map[*ir.Value]uint32),
		blockIdx: make(map[*ir.Block]uint32),
	}
	wireRoot, err := enc.op(root)
	if err != nil {
		return err
	}
	return msgpack.NewEncoder(w).Encode(&wireModule{Schema: Schema, Root: wireRoot})
}

// Decode reads one operation tree from r.
func Decode(r io.Reader) (*ir.Op, error) {
	var m wireModule
	if err := msgpack.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	if m.Schema != Schema {
		return nil, fmt.Errorf("unsupported module schema %d, want %d", m.Schema, Schema)
	}
	dec := &decoder{}
	return dec.op(&m.Root, nil)
}

// WriteFile encodes root into path, replacing any existing file.
func WriteFile(path string, root *ir.Op) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, root); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile decodes one operation tree from path.
func ReadFile(path string) (*ir.Op, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	root, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

type encoder struct {
	valueIDs map[*ir.Value]uint32
	nextID   uint32
	blockIdx map[*ir.Block]uint32
}

func (c *encoder) define(v *ir.Value) {
	c.valueIDs[v] = c.nextID
	c.nextID++
}

func (c *encoder) use(op *ir.Op, v *ir.Value) (uint32, error) {
	id, ok := c.valueIDs[v]
	if !ok {
		return 0, fmt.Errorf("op %s: operand used before definition", op.Kind)
	}
	return id, nil
}

func (c *encoder) op(op *ir.Op) (wireOp, error) {
	w := wireOp{
		Kind:            uint8(op.Kind),
		Value:           encodeAttrPtr(op.Value),
		Callee:          op.Callee,
		HasArgs:         op.HasArgs,
		HasTemplateArgs: op.HasTemplateArgs,
		Predicate:       uint8(op.Predicate),
		Operator:        op.Operator,
		Include:         op.Include,
		IsStandard:      op.IsStandard,
		Name:            op.Name,
		Text:            op.Text,
	}
	var err error
	if w.NumTrueOperands, err = safecast.Conv[uint32](op.NumTrueOperands); err != nil {
		return w, err
	}

	for _, result := range op.Results {
		w.ResultTypes = append(w.ResultTypes, encodeType(result.Type))
		c.define(result)
	}
	for _, operand := range op.Operands {
		id, err := c.use(op, operand)
		if err != nil {
			return w, err
		}
		w.Operands = append(w.Operands, id)
	}
	if len(op.Attrs) > 0 {
		w.Attrs = make(map[string]wireAttr, len(op.Attrs))
		for name, attr := range op.Attrs {
			w.Attrs[name] = encodeAttr(attr)
		}
	}
	for _, attr := range op.Args {
		w.Args = append(w.Args, encodeAttr(attr))
	}
	for _, attr := range op.TemplateArgs {
		w.TemplateArgs = append(w.TemplateArgs, encodeAttr(attr))
	}
	for _, t := range op.ResultTypes {
		w.FuncResults = append(w.FuncResults, encodeType(t))
	}
	for _, succ := range op.Successors {
		idx, ok := c.blockIdx[succ]
		if !ok {
			return w, fmt.Errorf("op %s: successor block outside its region", op.Kind)
		}
		w.Successors = append(w.Successors, idx)
	}

	for _, region := range op.Regions {
		wr := wireRegion{}
		for i, block := range region.Blocks {
			idx, convErr := safecast.Conv[uint32](i)
			if convErr != nil {
				return w, convErr
			}
			c.blockIdx[block] = idx
			wb := wireBlock{}
			for _, arg := range block.Args {
				wb.ArgTypes = append(wb.ArgTypes, encodeType(arg.Type))
				c.define(arg)
			}
			wr.Blocks = append(wr.Blocks, wb)
		}
		for i, block := range region.Blocks {
			for _, nested := range block.Ops {
				wo, opErr := c.op(nested)
				if opErr != nil {
					return w, opErr
				}
				wr.Blocks[i].Ops = append(wr.Blocks[i].Ops, wo)
			}
		}
		w.Regions = append(w.Regions, wr)
	}
	return w, nil
}

type decoder struct {
	values []*ir.Value
}

func (d *decoder) op(w *wireOp, enclosing []*ir.Block) (*ir.Op, error) {
	op := ir.NewOp(ir.OpKind(w.Kind))
	op.Value = decodeAttrPtr(w.Value)
	op.Callee = w.Callee
	op.HasArgs = w.HasArgs
	op.HasTemplateArgs = w.HasTemplateArgs
	op.Predicate = ir.CmpPredicate(w.Predicate)
	op.Operator = w.Operator
	op.Include = w.Include
	op.IsStandard = w.IsStandard
	op.Name = w.Name
	op.Text = w.Text
	var err error
	if op.NumTrueOperands, err = safecast.Conv[int](w.NumTrueOperands); err != nil {
		return nil, err
	}

	for _, t := range w.ResultTypes {
		result := op.AddResult(decodeType(t))
		d.values = append(d.values, result)
	}
	for _, id := range w.Operands {
		idx, convErr := safecast.Conv[int](id)
		if convErr != nil || idx >= len(d.values) {
			return nil, fmt.Errorf("op %s: operand id %d out of range", op.Kind, id)
		}
		op.Operands = append(op.Operands, d.values[idx])
	}
	for name, attr := range w.Attrs {
		op.SetAttr(name, decodeAttr(attr))
	}
	for _, attr := range w.Args {
		op.Args = append(op.Args, decodeAttr(attr))
	}
	for _, attr := range w.TemplateArgs {
		op.TemplateArgs = append(op.TemplateArgs, decodeAttr(attr))
	}
	for _, t := range w.FuncResults {
		op.ResultTypes = append(op.ResultTypes, decodeType(t))
	}
	for _, idx := range w.Successors {
		i, convErr := safecast.Conv[int](idx)
		if convErr != nil || i >= len(enclosing) {
			return nil, fmt.Errorf("op %s: successor index %d out of range", op.Kind, idx)
		}
		op.Successors = append(op.Successors, enclosing[i])
	}

	for ri := range w.Regions {
		wr := &w.Regions[ri]
		region := op.AddRegion()
		for bi := range wr.Blocks {
			block := region.AddBlock()
			for _, t := range wr.Blocks[bi].ArgTypes {
				arg := block.AddArg(decodeType(t))
				d.values = append(d.values, arg)
			}
		}
		for bi := range wr.Blocks {
			for oi := range wr.Blocks[bi].Ops {
				nested, opErr := d.op(&wr.Blocks[bi].Ops[oi], region.Blocks)
				if opErr != nil {
					return nil, opErr
				}
				region.Blocks[bi].Append(nested)
			}
		}
	}
	return op, nil
}

func encodeType(t *ir.Type) *wireType {
	if t == nil {
		return nil
	}
	w := &wireType{
		Kind:   uint8(t.Kind),
		Width:  t.Width,
		Sign:   uint8(t.Sign),
		Elem:   encodeType(t.Elem),
		Dims:   t.Dims,
		Ranked: t.Ranked,
		Text:   t.Text,
	}
	for _, e := range t.Elems {
		w.Elems = append(w.Elems, encodeType(e))
	}
	return w
}

func decodeType(w *wireType) *ir.Type {
	if w == nil {
		return nil
	}
	t := &ir.Type{
		Kind:   ir.TypeKind(w.Kind),
		Width:  w.Width,
		Sign:   ir.Signedness(w.Sign),
		Elem:   decodeType(w.Elem),
		Dims:   w.Dims,
		Ranked: w.Ranked,
		Text:   w.Text,
	}
	for _, e := range w.Elems {
		t.Elems = append(t.Elems, decodeType(e))
	}
	return t
}

func encodeAttr(a ir.Attr) wireAttr {
	return wireAttr{
		Kind:   uint8(a.Kind),
		Type:   encodeType(a.Type),
		Int:    a.Int,
		Float:  a.Float,
		Ints:   a.Ints,
		Floats: a.Floats,
		Text:   a.Text,
		Root:   a.Root,
		Nested: a.Nested,
		Inner:  encodeType(a.Inner),
	}
}

func decodeAttr(w wireAttr) ir.Attr {
	return ir.Attr{
		Kind:   ir.AttrKind(w.Kind),
		Type:   decodeType(w.Type),
		Int:    w.Int,
		Float:  w.Float,
		Ints:   w.Ints,
		Floats: w.Floats,
		Text:   w.Text,
		Root:   w.Root,
		Nested: w.Nested,
		Inner:  decodeType(w.Inner),
	}
}

func encodeAttrPtr(a ir.Attr) *wireAttr {
	if a.Kind == ir.AttrNone {
		return nil
	}
	w := encodeAttr(a)
	return &w
}

func decodeAttrPtr(w *wireAttr) ir.Attr {
	if w == nil {
		return ir.Attr{}
	}
	return decodeAttr(*w)
}
