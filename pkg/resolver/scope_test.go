package resolver

import (
	"testing"

	"reed/interpreter-go/pkg/ast"
)

func TestScopeLookupWalksChain(t *testing.T) {
	root := NewScope(nil)
	root.Define(&Symbol{Name: "x", Kind: ast.SymbolLetBinding, Def: 1})
	child := root.Child()

	sym := child.Lookup("x")
	if sym == nil || sym.Def != 1 {
		t.Fatalf("unexpected symbol %#v", sym)
	}
	if child.DefinedLocally("x") {
		t.Fatalf("DefinedLocally must ignore ancestors")
	}
	if child.Lookup("missing") != nil {
		t.Fatalf("expected nil for an undefined name")
	}
}

func TestScopeInnermostWins(t *testing.T) {
	root := NewScope(nil)
	root.Define(&Symbol{Name: "x", Kind: ast.SymbolLetBinding, Def: 1})
	child := root.Child()
	child.Define(&Symbol{Name: "x", Kind: ast.SymbolParameter, Def: 2})

	if sym := child.Lookup("x"); sym.Def != 2 {
		t.Fatalf("innermost definition must win, got %#v", sym)
	}
	if sym := root.Lookup("x"); sym.Def != 1 {
		t.Fatalf("root symbol must be untouched, got %#v", sym)
	}
}
