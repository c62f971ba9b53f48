package resolver

import (
	"fmt"

	"reed/interpreter-go/pkg/ast"
)

// Code distinguishes the diagnostic categories the resolver can report.
type Code string

const (
	UndefinedSymbol Code = "UndefinedSymbol"
	AlreadyDefined  Code = "AlreadyDefined"
)

// Diagnostic is a recoverable resolution error. Previous is only set for
// AlreadyDefined and points at the earlier declaration.
type Diagnostic struct {
	Code     Code
	Ident    string
	Pos      ast.Position
	Previous ast.Position
}

func (d Diagnostic) Message() string {
	switch d.Code {
	case UndefinedSymbol:
		return fmt.Sprintf("undefined symbol '%s' at %d:%d", d.Ident, d.Pos.Line, d.Pos.Column)
	case AlreadyDefined:
		return fmt.Sprintf("'%s' already defined at %d:%d (previous declaration at %d:%d)",
			d.Ident, d.Pos.Line, d.Pos.Column, d.Previous.Line, d.Previous.Column)
	default:
		return fmt.Sprintf("diagnostic %s for '%s'", d.Code, d.Ident)
	}
}
