package model

// Variable is a positional view onto the value produced by the statement at
// Position. Variables do not own statements; all fields are derived from the
// producing statement when the view is built, so renumbering statements
// automatically renumbers every reference.
type Variable struct {
	Position int
	Type     Type
	Distance int

	IsNull     bool
	IsVoid     bool
	IsWrapper  bool
	IsArrayRef bool
	// IsArrayIndex marks values produced through an array element.
	IsArrayIndex bool
	IsFieldRef   bool
	FinalField   bool

	// FromPrimitive reports that the producing statement is a
	// primitive-value statement.
	FromPrimitive bool
	// FromMock reports that the producing statement builds a mock object.
	FromMock bool

	// ArrayLen is the allocated length when the variable is an array.
	ArrayLen int
	// AdditionalVar back-references the structurally tied variable: the
	// array behind an array-index view, or the owner behind a field view.
	// NoVar when untied.
	AdditionalVar int
}

// IsPrimitive reports whether the variable holds a value type.
func (v Variable) IsPrimitive() bool { return v.Type.IsPrimitive() }

// variableAt derives the variable view for the statement at pos.
func variableAt(s *Statement, pos int) Variable {
	v := Variable{
		Position:      pos,
		Type:          s.Return,
		Distance:      s.Distance,
		IsVoid:        s.Return.IsVoid(),
		IsWrapper:     s.Return.IsWrapper(),
		IsArrayRef:    s.Return.IsArray(),
		FromMock:      s.Mock,
		AdditionalVar: NoVar,
	}
	switch s.Kind {
	case StmtPrimitive:
		v.FromPrimitive = true
	case StmtNull:
		v.IsNull = true
	case StmtFieldAccess:
		v.IsFieldRef = true
		v.FinalField = s.Call != nil && s.Call.Final
		v.AdditionalVar = s.Callee
	case StmtArrayCreation:
		v.ArrayLen = s.ArrayLen
	case StmtAssignment:
		if s.TargetIndex != NoVar {
			v.IsArrayIndex = true
			v.AdditionalVar = s.Target
		} else if s.SourceIndex != NoVar {
			v.IsArrayIndex = true
			v.AdditionalVar = s.Source
		}
	case StmtConstructorCall, StmtMethodCall:
		// nothing beyond the defaults
	}
	return v
}
