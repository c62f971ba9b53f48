package runtime

import (
	"fmt"
	"sort"
)

// Environment provides lexical scoping for Reed runtime values. Each
// scope owns its local bindings and holds a non-owning reference to its
// parent; the parent link is fixed at creation, so the chain is acyclic.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define inserts a binding in the current scope, overwriting any prior
// local entry. Callers reject redefinition via DefinedLocally first.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// DefinedLocally reports whether this scope's own mapping holds the name,
// ignoring ancestors.
func (e *Environment) DefinedLocally(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Lookup retrieves a binding from the nearest scope that defines it.
func (e *Environment) Lookup(name string) (Value, bool) {
	if v, ok := e.values[name]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Lookup(name)
	}
	return nil, false
}

// Assign updates an existing binding in the first scope where it appears.
func (e *Environment) Assign(name string, value Value) error {
	if _, ok := e.values[name]; ok {
		e.values[name] = value
		return nil
	}
	if e.parent != nil {
		return e.parent.Assign(name, value)
	}
	return fmt.Errorf("undefined variable '%s'", name)
}

// Keys returns the local bindings in sorted order (useful for determinism
// in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extend creates a child scope of the current environment.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}
