package cpp

import "ridge/internal/ir"

// emitType writes the C++ spelling of t, or fails naming the type. The op is
// error context only.
func (e *emitter) emitType(op *ir.Op, t *ir.Type) error {
	if t == nil {
		return opErrorf(op, "cannot emit nil type")
	}
	switch t.Kind {
	case ir.TypeInt:
		switch t.Width {
		case 1:
			e.os.ws("bool")
			return nil
		case 8, 16, 32, 64:
			if shouldMapToUnsigned(t.Sign) {
				e.os.printf("uint%d_t", t.Width)
			} else {
				e.os.printf("int%d_t", t.Width)
			}
			return nil
		default:
			return opErrorf(op, "cannot emit integer type %s", t)
		}
	case ir.TypeFloat:
		switch t.Width {
		case 32:
			e.os.ws("float")
			return nil
		case 64:
			e.os.ws("double")
			return nil
		default:
			return opErrorf(op, "cannot emit float type %s", t)
		}
	case ir.TypeIndex:
		e.os.ws("size_t")
		return nil
	case ir.TypeTensor:
		if !t.Ranked {
			return opErrorf(op, "cannot emit unranked tensor type")
		}
		if !t.HasStaticShape() {
			return opErrorf(op, "cannot emit tensor type with non static shape")
		}
		e.os.ws("Tensor<")
		if err := e.emitType(op, t.Elem); err != nil {
			return err
		}
		for _, dim := range t.Dims {
			e.os.printf(", %d", dim)
		}
		e.os.ws(">")
		return nil
	case ir.TypeTuple:
		return e.emitTupleType(op, t.Elems)
	case ir.TypeOpaque:
		e.os.ws(t.Text)
		return nil
	case ir.TypePointer:
		if err := e.emitType(op, t.Elem); err != nil {
			return err
		}
		e.os.ws("*")
		return nil
	default:
		return opErrorf(op, "cannot emit type %s", t)
	}
}

// emitTypes writes a type list under the 0/1/N rule: void for an empty list,
// the bare type for a singleton, a std::tuple otherwise.
func (e *emitter) emitTypes(op *ir.Op, types []*ir.Type) error {
	switch len(types) {
	case 0:
		e.os.ws("void")
		return nil
	case 1:
		return e.emitType(op, types[0])
	default:
		return e.emitTupleType(op, types)
	}
}

// emitTupleType writes a std::tuple of the types regardless of list size.
func (e *emitter) emitTupleType(op *ir.Op, types []*ir.Type) error {
	e.os.ws("std::tuple<")
	if err := interleaveComma(e.os, types, func(t *ir.Type) error {
		return e.emitType(op, t)
	}); err != nil {
		return err
	}
	e.os.ws(">")
	return nil
}

// shouldMapToUnsigned reports whether an integer signedness picks the
// unsigned C++ spelling. Signless maps to signed.
func shouldMapToUnsigned(s ir.Signedness) bool {
	return s == ir.Unsigned
}
