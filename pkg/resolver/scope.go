package resolver

import "reed/interpreter-go/pkg/ast"

// Symbol is a resolution-time binding of an identifier to its definition.
type Symbol struct {
	Name string
	Kind ast.SymbolKind
	Def  ast.NodeID   // defining node; zero for builtins
	Pos  ast.Position // declaration position, for diagnostics
}

// Scope maps identifiers to symbols and chains to an optional parent.
// The parent link is established at creation and never mutated.
type Scope struct {
	symbols map[string]*Symbol
	parent  *Scope
}

func NewScope(parent *Scope) *Scope {
	return &Scope{
		symbols: make(map[string]*Symbol),
		parent:  parent,
	}
}

// Define inserts into the current scope, overwriting any prior local
// entry for the name. Callers check DefinedLocally first when
// redefinition must be rejected.
func (s *Scope) Define(sym *Symbol) {
	s.symbols[sym.Name] = sym
}

// DefinedLocally reports whether this scope's own mapping holds the
// name, ignoring ancestors.
func (s *Scope) DefinedLocally(name string) bool {
	_, ok := s.symbols[name]
	return ok
}

// Lookup returns the symbol from the nearest scope defining the name,
// or nil when no scope in the chain does.
func (s *Scope) Lookup(name string) *Symbol {
	if sym, ok := s.symbols[name]; ok {
		return sym
	}
	if s.parent != nil {
		return s.parent.Lookup(name)
	}
	return nil
}

// Local returns the symbol defined in this scope only, or nil.
func (s *Scope) Local(name string) *Symbol {
	return s.symbols[name]
}

// Child creates a nested scope.
func (s *Scope) Child() *Scope {
	return NewScope(s)
}
