package ir

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// DumpModule writes a human-readable representation of an operation tree.
// The notation is for debugging only and is not parsed back.
func DumpModule(w io.Writer, root *Op) error {
	if w == nil || root == nil {
		return nil
	}
	d := &dumper{w: w, values: make(map[*Value]int), blocks: make(map[*Block]int)}
	d.dumpOp(root, 0)
	return d.err
}

type dumper struct {
	w      io.Writer
	err    error
	values map[*Value]int
	blocks map[*Block]int
	nextV  int
	nextB  int
}

func (d *dumper) printf(format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

func (d *dumper) valueName(v *Value) string {
	if v.IsLiteral() {
		return fmt.Sprintf("lit(%s)", v.LiteralText())
	}
	n, ok := d.values[v]
	if !ok {
		n = d.nextV
		d.nextV++
		d.values[v] = n
	}
	return fmt.Sprintf("%%%d", n)
}

func (d *dumper) blockName(b *Block) string {
	n, ok := d.blocks[b]
	if !ok {
		n = d.nextB
		d.nextB++
		d.blocks[b] = n
	}
	return fmt.Sprintf("^bb%d", n)
}

func (d *dumper) dumpOp(op *Op, depth int) {
	pad := strings.Repeat("  ", depth)
	d.printf("%s", pad)

	if len(op.Results) > 0 {
		names := make([]string, 0, len(op.Results))
		for _, r := range op.Results {
			names = append(names, d.valueName(r))
		}
		d.printf("%s = ", strings.Join(names, ", "))
	}
	d.printf("%s", op.Kind)

	switch op.Kind {
	case OpFunc:
		d.printf(" @%s", op.Name)
	case OpCall:
		d.printf(" @%s", op.Callee)
	case OpConstant, OpVariable:
		d.printf(" %s", op.Value)
	case OpInclude:
		d.printf(" %q standard=%t", op.Include, op.IsStandard)
	case OpLiteral:
		d.printf(" %q", op.Text)
	case OpApply:
		d.printf(" %q", op.Operator)
	}

	if len(op.Operands) > 0 {
		names := make([]string, 0, len(op.Operands))
		for _, v := range op.Operands {
			names = append(names, d.valueName(v))
		}
		d.printf("(%s)", strings.Join(names, ", "))
	}
	if len(op.Attrs) > 0 {
		names := make([]string, 0, len(op.Attrs))
		for name := range op.Attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		pairs := make([]string, 0, len(names))
		for _, name := range names {
			pairs = append(pairs, fmt.Sprintf("%s = %s", name, op.Attrs[name]))
		}
		d.printf(" {%s}", strings.Join(pairs, ", "))
	}
	if len(op.Successors) > 0 {
		names := make([]string, 0, len(op.Successors))
		for _, b := range op.Successors {
			names = append(names, d.blockName(b))
		}
		d.printf(" -> [%s]", strings.Join(names, ", "))
	}

	if hasBlocks(op) {
		d.printf(" {\n")
		for _, region := range op.Regions {
			for bi, block := range region.Blocks {
				if bi > 0 || len(block.Args) > 0 || len(region.Blocks) > 1 {
					d.printf("%s%s", pad, d.blockName(block))
					if len(block.Args) > 0 {
						args := make([]string, 0, len(block.Args))
						for _, a := range block.Args {
							args = append(args, fmt.Sprintf("%s: %s", d.valueName(a), a.Type))
						}
						d.printf("(%s)", strings.Join(args, ", "))
					}
					d.printf(":\n")
				}
				for _, nested := range block.Ops {
					d.dumpOp(nested, depth+1)
				}
			}
		}
		d.printf("%s}\n", pad)
		return
	}
	d.printf("\n")
}

func hasBlocks(op *Op) bool {
	for _, region := range op.Regions {
		if len(region.Blocks) > 0 {
			return true
		}
	}
	return false
}
