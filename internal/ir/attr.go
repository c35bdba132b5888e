package ir

import "fmt"

// AttrKind enumerates constant attribute kinds.
type AttrKind uint8

const (
	// AttrNone is the zero attribute; it never renders.
	AttrNone AttrKind = iota
	// AttrInt is an integer constant with a declared integer or index type.
	AttrInt
	// AttrFloat is a floating-point constant with a declared float type.
	AttrFloat
	// AttrDenseInt is a homogeneous integer element collection.
	AttrDenseInt
	// AttrDenseFloat is a homogeneous floating-point element collection.
	AttrDenseFloat
	// AttrOpaque carries literal target-language expression text.
	AttrOpaque
	// AttrSymbolRef names a symbol, optionally with nested qualifiers.
	AttrSymbolRef
	// AttrType wraps a type as a constant.
	AttrType
)

// Attr is a constant attribute value. Which fields are meaningful depends on
// Kind. Integer attrs whose Type is the index type double as operand-index
// markers in call argument lists.
type Attr struct {
	Kind   AttrKind
	Type   *Type     // AttrInt, AttrFloat: declared type; AttrDense*: tensor type
	Int    int64     // AttrInt
	Float  float64   // AttrFloat
	Ints   []int64   // AttrDenseInt
	Floats []float64 // AttrDenseFloat
	Text   string    // AttrOpaque
	Root   string    // AttrSymbolRef root identifier
	Nested []string  // AttrSymbolRef nested qualifiers
	Inner  *Type     // AttrType payload
}

// IntAttr builds an integer attribute of the given type.
func IntAttr(t *Type, v int64) Attr {
	return Attr{Kind: AttrInt, Type: t, Int: v}
}

// IndexAttr builds an index-typed integer attribute.
func IndexAttr(v int64) Attr {
	return Attr{Kind: AttrInt, Type: IndexType(), Int: v}
}

// BoolAttr builds a 1-bit integer attribute.
func BoolAttr(v bool) Attr {
	n := int64(0)
	if v {
		n = 1
	}
	return Attr{Kind: AttrInt, Type: BoolType(), Int: n}
}

// FloatAttr builds a floating-point attribute of the given type.
func FloatAttr(t *Type, v float64) Attr {
	return Attr{Kind: AttrFloat, Type: t, Float: v}
}

// DenseIntAttr builds a dense integer collection typed by a tensor type.
func DenseIntAttr(t *Type, vals ...int64) Attr {
	return Attr{Kind: AttrDenseInt, Type: t, Ints: vals}
}

// DenseFloatAttr builds a dense floating-point collection typed by a tensor type.
func DenseFloatAttr(t *Type, vals ...float64) Attr {
	return Attr{Kind: AttrDenseFloat, Type: t, Floats: vals}
}

// OpaqueAttr builds an attribute rendered verbatim from stored text.
func OpaqueAttr(text string) Attr {
	return Attr{Kind: AttrOpaque, Text: text}
}

// SymbolRefAttr builds a symbol reference attribute.
func SymbolRefAttr(root string, nested ...string) Attr {
	return Attr{Kind: AttrSymbolRef, Root: root, Nested: nested}
}

// TypeAttr wraps a type as an attribute.
func TypeAttr(t *Type) Attr {
	return Attr{Kind: AttrType, Inner: t}
}

// IsOperandIndex reports whether the attribute is an index-typed integer,
// the marker for "substitute the operand at this position".
func (a Attr) IsOperandIndex() bool {
	return a.Kind == AttrInt && a.Type != nil && a.Type.Kind == TypeIndex
}

// String renders a compact notation for error messages.
func (a Attr) String() string {
	switch a.Kind {
	case AttrInt:
		return fmt.Sprintf("%d : %s", a.Int, a.Type)
	case AttrFloat:
		return fmt.Sprintf("%g : %s", a.Float, a.Type)
	case AttrDenseInt:
		return fmt.Sprintf("dense<%v> : %s", a.Ints, a.Type)
	case AttrDenseFloat:
		return fmt.Sprintf("dense<%v> : %s", a.Floats, a.Type)
	case AttrOpaque:
		return fmt.Sprintf("opaque<%q>", a.Text)
	case AttrSymbolRef:
		s := "@" + a.Root
		for _, n := range a.Nested {
			s += "::@" + n
		}
		return s
	case AttrType:
		return a.Inner.String()
	default:
		return "<none>"
	}
}
