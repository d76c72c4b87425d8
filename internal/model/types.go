// Package model defines the data structures for evolutionary test generation:
// typed statements, variable references, test cases and coverage goals.
package model

// TypeName identifies a type in the unit under test's type universe.
type TypeName string

// TypeObject is the root object type. Variables of this raw type are too
// unspecific to be useful as mutation callees.
const TypeObject TypeName = "Object"

// TypeKind partitions the type universe.
type TypeKind int

const (
	// KindObject represents reference types.
	KindObject TypeKind = iota
	// KindPrimitive represents value types such as int or bool.
	KindPrimitive
	// KindWrapper represents boxed primitives.
	KindWrapper
	// KindArray represents array types.
	KindArray
	// KindVoid represents the absence of a value.
	KindVoid
)

// Type is a nominal type descriptor.
type Type struct {
	Name TypeName
	Kind TypeKind
	Elem TypeName // element type for arrays
}

// Void is the type of statements that produce no usable value.
var Void = Type{Name: "void", Kind: KindVoid}

// IsPrimitive reports whether the type is a value type.
func (t Type) IsPrimitive() bool { return t.Kind == KindPrimitive }

// IsWrapper reports whether the type is a boxed primitive.
func (t Type) IsWrapper() bool { return t.Kind == KindWrapper }

// IsArray reports whether the type is an array type.
func (t Type) IsArray() bool { return t.Kind == KindArray }

// IsVoid reports whether the type carries no value.
func (t Type) IsVoid() bool { return t.Kind == KindVoid }
