package cpp

import (
	"math"
	"strconv"
	"strings"

	"ridge/internal/ir"
)

// emitAttribute writes the C++ literal expression for a constant attribute,
// or fails naming the attribute.
func (e *emitter) emitAttribute(op *ir.Op, attr ir.Attr) error {
	switch attr.Kind {
	case ir.AttrFloat:
		e.printFloat(attr.Float, floatWidth(attr.Type))
		return nil
	case ir.AttrDenseFloat:
		width, ok := denseFloatElemWidth(attr.Type)
		if !ok {
			return opErrorf(op, "cannot emit attribute: %s", attr)
		}
		e.os.ws("{")
		for i, v := range attr.Floats {
			if i > 0 {
				e.os.ws(", ")
			}
			e.printFloat(v, width)
		}
		e.os.ws("}")
		return nil
	case ir.AttrInt:
		elem := attr.Type
		if elem == nil {
			return opErrorf(op, "cannot emit attribute: %s", attr)
		}
		switch elem.Kind {
		case ir.TypeInt:
			e.printInt(attr.Int, elem.Width, shouldMapToUnsigned(elem.Sign))
			return nil
		case ir.TypeIndex:
			e.printInt(attr.Int, 0, false)
			return nil
		}
		return opErrorf(op, "cannot emit attribute: %s", attr)
	case ir.AttrDenseInt:
		width, unsigned, ok := denseIntElemInfo(attr.Type)
		if !ok {
			return opErrorf(op, "cannot emit attribute: %s", attr)
		}
		e.os.ws("{")
		for i, v := range attr.Ints {
			if i > 0 {
				e.os.ws(", ")
			}
			e.printInt(v, width, unsigned)
		}
		e.os.ws("}")
		return nil
	case ir.AttrOpaque:
		e.os.ws(attr.Text)
		return nil
	case ir.AttrSymbolRef:
		if len(attr.Nested) > 1 {
			return opErrorf(op, "attribute has more than 1 nested reference")
		}
		e.os.ws(attr.Root)
		return nil
	case ir.AttrType:
		return e.emitType(op, attr.Inner)
	default:
		return opErrorf(op, "cannot emit attribute: %s", attr)
	}
}

// printInt writes an integer literal. The 1-bit width renders as a boolean
// keyword, never as a numeral.
func (e *emitter) printInt(v int64, width uint32, unsigned bool) {
	if width == 1 {
		if v != 0 {
			e.os.ws("true")
		} else {
			e.os.ws("false")
		}
		return
	}
	if unsigned {
		e.os.ws(strconv.FormatUint(uint64(v), 10))
		return
	}
	e.os.ws(strconv.FormatInt(v, 10))
}

// printFloat writes a floating literal. Finite values carry an explicit
// narrowing cast for the single and double widths so the C++ default literal
// type does not widen them; NaN and infinity use the named constants.
func (e *emitter) printFloat(v float64, width uint32) {
	switch {
	case math.IsNaN(v):
		e.os.ws("NAN")
	case math.IsInf(v, 0):
		if math.Signbit(v) {
			e.os.ws("-")
		}
		e.os.ws("INFINITY")
	default:
		switch width {
		case 32:
			e.os.ws("(float)")
		case 64:
			e.os.ws("(double)")
		}
		e.os.ws(formatFloat(v, width))
	}
}

// formatFloat renders the shortest decimal text that round-trips at the
// given width, keeping a decimal point on whole values.
func formatFloat(v float64, width uint32) string {
	bitSize := 64
	if width == 32 {
		bitSize = 32
	}
	s := strconv.FormatFloat(v, 'g', -1, bitSize)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func floatWidth(t *ir.Type) uint32 {
	if t != nil && t.Kind == ir.TypeFloat {
		return t.Width
	}
	return 0
}

// denseFloatElemWidth extracts the element width of a dense float
// collection's tensor type.
func denseFloatElemWidth(t *ir.Type) (uint32, bool) {
	if t == nil || t.Kind != ir.TypeTensor || t.Elem == nil {
		return 0, false
	}
	if t.Elem.Kind != ir.TypeFloat {
		return 0, false
	}
	return t.Elem.Width, true
}

// denseIntElemInfo extracts the element width and signedness of a dense
// integer collection's tensor type. Index elements print as signed.
func denseIntElemInfo(t *ir.Type) (uint32, bool, bool) {
	if t == nil || t.Kind != ir.TypeTensor || t.Elem == nil {
		return 0, false, false
	}
	switch t.Elem.Kind {
	case ir.TypeInt:
		return t.Elem.Width, shouldMapToUnsigned(t.Elem.Sign), true
	case ir.TypeIndex:
		return 0, false, true
	default:
		return 0, false, false
	}
}
