package resolver

import (
	"testing"

	"reed/interpreter-go/pkg/ast"
)

func resolve(t *testing.T, module *ast.Module) []Diagnostic {
	t.Helper()
	return New().ResolveModule(module)
}

func mustResolveClean(t *testing.T, module *ast.Module) {
	t.Helper()
	if diags := resolve(t, module); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %#v", diags)
	}
}

func TestIdentifierResolvesToLetBinding(t *testing.T) {
	let := ast.Let("a", ast.Int(5))
	use := ast.ID("a")
	module := ast.Mod(let, use)

	mustResolveClean(t, module)
	if !use.Resolved() {
		t.Fatalf("expected use to be resolved")
	}
	if use.Binding.Kind != ast.SymbolLetBinding {
		t.Fatalf("unexpected binding kind %s", use.Binding.Kind)
	}
	if use.Binding.Def != let.ID() {
		t.Fatalf("back-reference must point at the let statement")
	}
}

func TestShadowingResolvesToNearestDefinition(t *testing.T) {
	outerLet := ast.Let("x", ast.Int(1))
	outerUse := ast.ID("x")
	innerLet := ast.Let("x", ast.Int(2))
	innerUse := ast.ID("x")
	module := ast.Mod(
		outerLet,
		outerUse,
		ast.BlockR(innerUse, innerLet),
	)

	mustResolveClean(t, module)
	if outerUse.Binding.Def != outerLet.ID() {
		t.Fatalf("outer use must resolve to the outer let")
	}
	if innerUse.Binding.Def != innerLet.ID() {
		t.Fatalf("inner use must resolve to the shadowing let")
	}
}

func TestRedefinitionInSameScopeRejectedOnce(t *testing.T) {
	first := ast.Let("a", ast.Int(1))
	ast.SetPos(first.Name, ast.Position{Line: 1, Column: 5})
	second := ast.Let("a", ast.Int(2))
	ast.SetPos(second.Name, ast.Position{Line: 2, Column: 5})
	module := ast.Mod(first, second)

	diags := resolve(t, module)
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %#v", diags)
	}
	diag := diags[0]
	if diag.Code != AlreadyDefined || diag.Ident != "a" {
		t.Fatalf("unexpected diagnostic %#v", diag)
	}
	if diag.Previous != (ast.Position{Line: 1, Column: 5}) {
		t.Fatalf("diagnostic must reference the first declaration, got %#v", diag.Previous)
	}
	if diag.Pos != (ast.Position{Line: 2, Column: 5}) {
		t.Fatalf("diagnostic must locate the redefinition, got %#v", diag.Pos)
	}
}

func TestRedefinitionInChildScopeAccepted(t *testing.T) {
	module := ast.Mod(
		ast.Let("a", ast.Int(1)),
		ast.Block(ast.Let("a", ast.Int(2))),
	)
	mustResolveClean(t, module)
}

func TestLetInitializerCannotReferenceItself(t *testing.T) {
	module := ast.Mod(ast.Let("a", ast.ID("a")))
	diags := resolve(t, module)
	if len(diags) != 1 || diags[0].Code != UndefinedSymbol || diags[0].Ident != "a" {
		t.Fatalf("expected one UndefinedSymbol for 'a', got %#v", diags)
	}
}

func TestFunctionBodyMayReferenceItself(t *testing.T) {
	recursiveCall := ast.CallN("f", ast.Int(1))
	def := ast.Fn("f", []*ast.FunctionParameter{ast.Param("x")},
		ast.Block(ast.Return(recursiveCall)))
	module := ast.Mod(def)

	mustResolveClean(t, module)
	callee := recursiveCall.Callee.(*ast.Identifier)
	if callee.Binding == nil || callee.Binding.Kind != ast.SymbolFunction {
		t.Fatalf("recursive reference must resolve as a function, got %#v", callee.Binding)
	}
	if callee.Binding.Def != def.ID() {
		t.Fatalf("recursive reference must point at the definition")
	}
}

func TestParameterResolvesWithBackReference(t *testing.T) {
	param := ast.Param("x")
	use := ast.ID("x")
	def := ast.Fn("f", []*ast.FunctionParameter{param}, ast.BlockR(use))
	module := ast.Mod(def)

	mustResolveClean(t, module)
	if use.Binding.Kind != ast.SymbolParameter {
		t.Fatalf("unexpected binding kind %s", use.Binding.Kind)
	}
	if use.Binding.Def != param.ID() {
		t.Fatalf("parameter back-reference must point at the parameter record")
	}
}

func TestDuplicateParametersReportedPerDuplicate(t *testing.T) {
	def := ast.Fn("f",
		[]*ast.FunctionParameter{ast.Param("x"), ast.Param("x"), ast.Param("x")},
		ast.Block())
	module := ast.Mod(def)

	diags := resolve(t, module)
	if len(diags) != 2 {
		t.Fatalf("expected one diagnostic per duplicate parameter, got %#v", diags)
	}
	for _, diag := range diags {
		if diag.Code != AlreadyDefined || diag.Ident != "x" {
			t.Fatalf("unexpected diagnostic %#v", diag)
		}
	}
}

func TestBuiltinResolvesWithoutBackReference(t *testing.T) {
	module := ast.Mod(ast.CallN("println", ast.Str("hi")))
	call := module.Body[0].(*ast.CallExpression)
	mustResolveClean(t, module)
	callee := call.Callee.(*ast.Identifier)
	if callee.Binding.Kind != ast.SymbolBuiltin {
		t.Fatalf("unexpected binding kind %s", callee.Binding.Kind)
	}
	if callee.Binding.Def != 0 {
		t.Fatalf("builtins carry no defining node, got %d", callee.Binding.Def)
	}
}

func TestBlockScopeEndsAtBlockBoundary(t *testing.T) {
	module := ast.Mod(
		ast.Let("a", ast.Int(5)),
		ast.BlockR(ast.ID("a"), ast.Let("b", ast.Int(4))),
	)
	mustResolveClean(t, module)

	after := ast.Mod(
		ast.Let("a", ast.Int(5)),
		ast.BlockR(ast.ID("a"), ast.Let("b", ast.Int(4))),
		ast.ID("b"),
	)
	diags := resolve(t, after)
	if len(diags) != 1 || diags[0].Code != UndefinedSymbol || diags[0].Ident != "b" {
		t.Fatalf("expected UndefinedSymbol for 'b' outside its block, got %#v", diags)
	}
}

func TestResolverContinuesAfterErrors(t *testing.T) {
	module := ast.Mod(
		ast.ID("ghost"),
		ast.ID("phantom"),
	)
	diags := resolve(t, module)
	if len(diags) != 2 {
		t.Fatalf("expected both undefined symbols reported, got %#v", diags)
	}
	if diags[0].Ident != "ghost" || diags[1].Ident != "phantom" {
		t.Fatalf("diagnostics must come out in traversal order, got %#v", diags)
	}
}

func TestUnresolvedIdentifierLeftUnbound(t *testing.T) {
	use := ast.ID("ghost")
	module := ast.Mod(use)
	resolve(t, module)
	if use.Resolved() {
		t.Fatalf("unknown identifiers must stay unresolved")
	}
}

func TestErrorNodeIsIgnored(t *testing.T) {
	module := ast.Mod(ast.NewErrorNode("unparseable"))
	mustResolveClean(t, module)
}
