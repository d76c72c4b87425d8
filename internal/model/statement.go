package model

// NoVar marks the absence of a variable reference in a statement slot.
const NoVar = -1

// StatementKind is the closed set of statement variants. Mutation engines
// switch exhaustively over this enum; adding a kind must update every
// consumer.
type StatementKind int

const (
	// StmtPrimitive produces a primitive literal value.
	StmtPrimitive StatementKind = iota
	// StmtNull produces a typed null reference.
	StmtNull
	// StmtFieldAccess reads a field off an owner object (or statically).
	StmtFieldAccess
	// StmtConstructorCall invokes a constructor.
	StmtConstructorCall
	// StmtMethodCall invokes a method on a callee (or statically).
	StmtMethodCall
	// StmtArrayCreation allocates an array of a fixed length.
	StmtArrayCreation
	// StmtAssignment copies a value between variables, optionally through
	// an array element on either side.
	StmtAssignment
)

// Statement is one executable step of a test case. Every statement produces
// exactly one return variable, addressed by the statement's position in the
// owning test case. Input variables are stored as producing positions.
type Statement struct {
	Kind StatementKind

	// Call is the invoked executable for field, constructor and method
	// statements; nil for the other kinds.
	Call *Executable
	// Callee is the producing position of the callee object (method calls)
	// or field owner (field accesses); NoVar for static access.
	Callee int
	// Args holds the producing positions of the call arguments.
	Args []int

	// Return is the type of the produced variable.
	Return Type
	// Value is the literal for primitive statements.
	Value string
	// ArrayLen is the allocated length for array creations.
	ArrayLen int

	// Assignment slots: Target receives the value of Source. When
	// TargetIndex (or SourceIndex) is >= 0 the respective side goes through
	// an array element.
	Target      int
	TargetIndex int
	Source      int
	SourceIndex int

	// Mock marks statements producing mock objects.
	Mock bool
	// Distance is the structural distance of the produced value from the
	// unit under test.
	Distance int
}

// NewPrimitiveStatement builds a primitive-value statement.
func NewPrimitiveStatement(t Type, value string) *Statement {
	return &Statement{Kind: StmtPrimitive, Return: t, Value: value, Callee: NoVar, Target: NoVar, TargetIndex: NoVar, Source: NoVar, SourceIndex: NoVar}
}

// NewNullStatement builds a typed null-value statement.
func NewNullStatement(t Type) *Statement {
	return &Statement{Kind: StmtNull, Return: t, Callee: NoVar, Target: NoVar, TargetIndex: NoVar, Source: NoVar, SourceIndex: NoVar}
}

// NewArrayStatement builds an array-creation statement.
func NewArrayStatement(t Type, length int) *Statement {
	return &Statement{Kind: StmtArrayCreation, Return: t, ArrayLen: length, Callee: NoVar, Target: NoVar, TargetIndex: NoVar, Source: NoVar, SourceIndex: NoVar}
}

// NewCallStatement builds a field, constructor or method statement for the
// given executable.
func NewCallStatement(call *Executable, callee int, args []int) *Statement {
	kind := StmtMethodCall
	switch call.Kind {
	case ExecConstructor:
		kind = StmtConstructorCall
	case ExecField:
		kind = StmtFieldAccess
	}
	return &Statement{
		Kind:   kind,
		Call:   call,
		Callee: callee,
		Args:   args,
		Return: call.Return,
		Mock:   call.Mock,
		Target: NoVar, TargetIndex: NoVar, Source: NoVar, SourceIndex: NoVar,
	}
}

// NewAssignmentStatement builds a plain or array-element assignment.
func NewAssignmentStatement(target, targetIndex, source, sourceIndex int, t Type) *Statement {
	return &Statement{
		Kind: StmtAssignment, Return: t,
		Callee: NoVar,
		Target: target, TargetIndex: targetIndex,
		Source: source, SourceIndex: sourceIndex,
	}
}

// References reports whether the statement reads the variable produced at
// the given position.
func (s *Statement) References(pos int) bool {
	if s.Callee == pos || s.Target == pos || s.Source == pos {
		return true
	}
	for _, a := range s.Args {
		if a == pos {
			return true
		}
	}
	return false
}

// InputPositions returns all positions the statement reads, in slot order.
func (s *Statement) InputPositions() []int {
	var in []int
	if s.Callee != NoVar {
		in = append(in, s.Callee)
	}
	in = append(in, s.Args...)
	if s.Target != NoVar {
		in = append(in, s.Target)
	}
	if s.Source != NoVar {
		in = append(in, s.Source)
	}
	return in
}

// Replace rewires every occurrence of oldPos to newPos.
func (s *Statement) Replace(oldPos, newPos int) {
	s.remap(func(p int) int {
		if p == oldPos {
			return newPos
		}
		return p
	})
}

// BoundsInput reports whether the variable at pos is bounded within this
// statement: a bounding call fixes its callee in place, so the callee slot
// must not be swapped for another variable.
func (s *Statement) BoundsInput(pos int) bool {
	return s.Call != nil && s.Call.BoundsCallee && s.Callee == pos
}

// IsAssignment reports whether the statement is an assignment.
func (s *Statement) IsAssignment() bool { return s.Kind == StmtAssignment }

// Clone returns a deep copy of the statement.
func (s *Statement) Clone() *Statement {
	c := *s
	if s.Args != nil {
		c.Args = append([]int(nil), s.Args...)
	}
	return &c
}

// remap applies f to every variable slot holding a real position.
func (s *Statement) remap(f func(int) int) {
	if s.Callee != NoVar {
		s.Callee = f(s.Callee)
	}
	for i, a := range s.Args {
		s.Args[i] = f(a)
	}
	if s.Target != NoVar {
		s.Target = f(s.Target)
	}
	if s.Source != NoVar {
		s.Source = f(s.Source)
	}
}
