package model

import (
	"fmt"
	"strings"
)

// ExecKind distinguishes the callable kinds a catalog can expose.
type ExecKind int

const (
	// ExecMethod is an instance or static method.
	ExecMethod ExecKind = iota
	// ExecConstructor is a constructor.
	ExecConstructor
	// ExecField is a field accessor.
	ExecField
)

// Executable describes a callable entry of the executable catalog: a
// constructor, method or field accessor with typed parameters. Entries are
// immutable once loaded; engines share them by pointer.
type Executable struct {
	Owner  TypeName
	Name   string // method name + descriptor, e.g. "deposit(I)V"
	Kind   ExecKind
	Static bool
	Final  bool // field finality; irrelevant for methods and constructors
	Params []Type
	Return Type

	// Environment marks calls on external resources (files, sockets).
	Environment bool
	// BoundsCallee declares that invoking this executable fixes its callee:
	// no statement may be inserted or deleted between the callee's creation
	// and this call.
	BoundsCallee bool
	// PairedWith names an executable that must be deleted together with
	// this one when both act on the same callee (e.g. open/close pairs).
	PairedWith string
	// AssertionOnly marks helper methods that are only legal inside
	// assertions and must never be inserted into the executable prefix.
	AssertionOnly bool
	// Mock marks generators that produce mock objects.
	Mock bool
	// Distance is the structural distance of the owner type from the unit
	// under test, used for rank-biased candidate ordering.
	Distance int
	// Generic marks executables whose return type is only fixed once
	// instantiated against a concrete target type.
	Generic bool
}

// Key identifies the executable within its owner.
func (e *Executable) Key() string {
	return string(e.Owner) + "." + e.Name
}

// IsMethod reports whether the executable is a method.
func (e *Executable) IsMethod() bool { return e.Kind == ExecMethod }

// IsConstructor reports whether the executable is a constructor.
func (e *Executable) IsConstructor() bool { return e.Kind == ExecConstructor }

// IsField reports whether the executable is a field accessor.
func (e *Executable) IsField() bool { return e.Kind == ExecField }

// NumParameters returns the number of declared parameters.
func (e *Executable) NumParameters() int { return len(e.Params) }

// Instantiate resolves a generic executable against a concrete target type.
// Non-generic executables are returned unchanged. Instantiation fails when
// the target type is void.
func (e *Executable) Instantiate(target Type) (*Executable, error) {
	if !e.Generic {
		return e, nil
	}
	if target.IsVoid() {
		return nil, fmt.Errorf("cannot instantiate %s against void", e.Key())
	}
	inst := *e
	inst.Return = target
	inst.Generic = false
	return &inst, nil
}

// ValidDescriptor reports whether a method name + descriptor is well formed.
// Constructors use the name "<init>" followed by their descriptor. A
// malformed descriptor must be rejected at catalog-build time and never
// reach the engines.
func ValidDescriptor(name string) bool {
	i := strings.IndexByte(name, '(')
	return i >= 1 && strings.IndexByte(name[i:], ')') > 0
}
