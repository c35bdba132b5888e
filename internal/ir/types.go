package ir

import (
	"fmt"
	"strings"
)

// TypeKind enumerates the structural type kinds the IR can carry.
type TypeKind uint8

const (
	// TypeInt is a fixed-width integer type.
	TypeInt TypeKind = iota
	// TypeFloat is a fixed-width floating-point type.
	TypeFloat
	// TypeIndex is the platform-width size type.
	TypeIndex
	// TypeTensor is a multi-dimensional array type.
	TypeTensor
	// TypeTuple is an aggregate of element types.
	TypeTuple
	// TypeOpaque carries literal target-language type text.
	TypeOpaque
	// TypePointer is a pointer to an element type.
	TypePointer
)

// Signedness distinguishes how an integer type interprets its bits.
type Signedness uint8

const (
	// Signless integers carry no explicit sign; consumers treat them as signed.
	Signless Signedness = iota
	// Signed integers are explicitly signed.
	Signed
	// Unsigned integers are explicitly unsigned.
	Unsigned
)

// DynamicDim marks a tensor dimension of unknown static extent.
const DynamicDim int64 = -1

// Type is a structural type descriptor. Which fields are meaningful depends
// on Kind; unused fields stay zero.
type Type struct {
	Kind   TypeKind
	Width  uint32     // TypeInt, TypeFloat
	Sign   Signedness // TypeInt
	Elem   *Type      // TypeTensor element, TypePointer pointee
	Dims   []int64    // TypeTensor shape; DynamicDim entries are dynamic
	Ranked bool       // TypeTensor
	Elems  []*Type    // TypeTuple
	Text   string     // TypeOpaque
}

// IntType describes an integer of the given width and signedness.
func IntType(width uint32, sign Signedness) *Type {
	return &Type{Kind: TypeInt, Width: width, Sign: sign}
}

// BoolType describes the 1-bit integer type.
func BoolType() *Type {
	return IntType(1, Signless)
}

// FloatType describes a floating-point type of the given width.
func FloatType(width uint32) *Type {
	return &Type{Kind: TypeFloat, Width: width}
}

// IndexType describes the platform-width size type.
func IndexType() *Type {
	return &Type{Kind: TypeIndex}
}

// TensorType describes a ranked tensor with the given element type and shape.
func TensorType(elem *Type, dims ...int64) *Type {
	return &Type{Kind: TypeTensor, Elem: elem, Dims: dims, Ranked: true}
}

// UnrankedTensorType describes a tensor of unknown rank.
func UnrankedTensorType(elem *Type) *Type {
	return &Type{Kind: TypeTensor, Elem: elem}
}

// TupleType describes an aggregate of the given element types.
func TupleType(elems ...*Type) *Type {
	return &Type{Kind: TypeTuple, Elems: elems}
}

// OpaqueType describes a type rendered verbatim from stored text.
func OpaqueType(text string) *Type {
	return &Type{Kind: TypeOpaque, Text: text}
}

// PointerType describes a pointer to the given pointee.
func PointerType(pointee *Type) *Type {
	return &Type{Kind: TypePointer, Elem: pointee}
}

// HasStaticShape reports whether every tensor dimension is statically known.
func (t *Type) HasStaticShape() bool {
	for _, d := range t.Dims {
		if d < 0 {
			return false
		}
	}
	return true
}

// String renders a compact notation for error messages; this is not the
// target-language spelling.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case TypeInt:
		switch t.Sign {
		case Unsigned:
			return fmt.Sprintf("ui%d", t.Width)
		case Signed:
			return fmt.Sprintf("si%d", t.Width)
		default:
			return fmt.Sprintf("i%d", t.Width)
		}
	case TypeFloat:
		return fmt.Sprintf("f%d", t.Width)
	case TypeIndex:
		return "index"
	case TypeTensor:
		if !t.Ranked {
			return fmt.Sprintf("tensor<*x%s>", t.Elem)
		}
		var sb strings.Builder
		sb.WriteString("tensor<")
		for _, d := range t.Dims {
			if d < 0 {
				sb.WriteString("?x")
			} else {
				fmt.Fprintf(&sb, "%dx", d)
			}
		}
		sb.WriteString(t.Elem.String())
		sb.WriteString(">")
		return sb.String()
	case TypeTuple:
		parts := make([]string, 0, len(t.Elems))
		for _, e := range t.Elems {
			parts = append(parts, e.String())
		}
		return "tuple<" + strings.Join(parts, ", ") + ">"
	case TypeOpaque:
		return fmt.Sprintf("opaque<%q>", t.Text)
	case TypePointer:
		return t.Elem.String() + "*"
	default:
		return fmt.Sprintf("type(kind=%d)", t.Kind)
	}
}
