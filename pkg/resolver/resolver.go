package resolver

import (
	"reed/interpreter-go/pkg/ast"
	"reed/interpreter-go/pkg/runtime"
)

// Resolver walks the syntax graph once, rewriting every identifier use
// into a resolved symbol reference and accumulating diagnostics. The pass
// never aborts: a single error does not block discovery of others.
type Resolver struct {
	diagnostics []Diagnostic
}

func New() *Resolver {
	return &Resolver{}
}

// ResolveModule binds the module's identifiers in place and returns the
// accumulated diagnostics in traversal order. The root scope holds the
// builtins; top-level statements resolve against a child of it, mirroring
// the evaluator's runtime scope layout.
func (r *Resolver) ResolveModule(module *ast.Module) []Diagnostic {
	r.diagnostics = nil
	root := NewScope(nil)
	for _, name := range runtime.BuiltinNames() {
		root.Define(&Symbol{Name: name, Kind: ast.SymbolBuiltin})
	}
	scope := root.Child()
	for _, stmt := range module.Body {
		r.resolveStatement(stmt, scope)
	}
	return r.diagnostics
}

func (r *Resolver) report(diag Diagnostic) {
	r.diagnostics = append(r.diagnostics, diag)
}

func (r *Resolver) resolveStatement(node ast.Statement, scope *Scope) {
	switch n := node.(type) {
	case *ast.LetStatement:
		r.resolveLetStatement(n, scope)
	case *ast.FunctionDefinition:
		r.resolveFunctionDefinition(n, scope)
	case *ast.AssignmentStatement:
		// Syntactic order: target before value.
		r.resolveExpression(n.Target, scope)
		r.resolveExpression(n.Value, scope)
	case *ast.BreakStatement:
		if n.Value != nil {
			r.resolveExpression(n.Value, scope)
		}
	case *ast.ReturnStatement:
		if n.Value != nil {
			r.resolveExpression(n.Value, scope)
		}
	case ast.Expression:
		r.resolveExpression(n, scope)
	}
}

// resolveLetStatement resolves the initializer in the enclosing scope
// first, so the new name is not visible to its own initializer.
func (r *Resolver) resolveLetStatement(stmt *ast.LetStatement, scope *Scope) {
	r.resolveExpression(stmt.Value, scope)
	name := stmt.Name.Name
	if prev := scope.Local(name); prev != nil {
		r.report(Diagnostic{Code: AlreadyDefined, Ident: name, Pos: stmt.Name.Pos(), Previous: prev.Pos})
		return
	}
	scope.Define(&Symbol{Name: name, Kind: ast.SymbolLetBinding, Def: stmt.ID(), Pos: stmt.Name.Pos()})
}

// resolveFunctionDefinition defines the function name before resolving
// the body, which is what lets the body call the function recursively.
func (r *Resolver) resolveFunctionDefinition(def *ast.FunctionDefinition, scope *Scope) {
	name := def.Name.Name
	if prev := scope.Local(name); prev != nil {
		r.report(Diagnostic{Code: AlreadyDefined, Ident: name, Pos: def.Name.Pos(), Previous: prev.Pos})
	} else {
		scope.Define(&Symbol{Name: name, Kind: ast.SymbolFunction, Def: def.ID(), Pos: def.Name.Pos()})
	}

	fnScope := scope.Child()
	for _, param := range def.Params {
		pname := param.Name.Name
		if prev := fnScope.Local(pname); prev != nil {
			r.report(Diagnostic{Code: AlreadyDefined, Ident: pname, Pos: param.Name.Pos(), Previous: prev.Pos})
			continue
		}
		fnScope.Define(&Symbol{Name: pname, Kind: ast.SymbolParameter, Def: param.ID(), Pos: param.Name.Pos()})
	}
	r.resolveBlock(def.Body, fnScope)
}

// resolveExpression visits children in a fixed order; diagnostics come
// out in this order, and let visibility depends on it.
func (r *Resolver) resolveExpression(node ast.Expression, scope *Scope) {
	switch n := node.(type) {
	case *ast.Identifier:
		r.resolveIdentifier(n, scope)
	case *ast.UnaryExpression:
		r.resolveExpression(n.Operand, scope)
	case *ast.BinaryExpression:
		r.resolveExpression(n.Left, scope)
		r.resolveExpression(n.Right, scope)
	case *ast.CallExpression:
		r.resolveExpression(n.Callee, scope)
		for _, arg := range n.Args {
			r.resolveExpression(arg, scope)
		}
	case *ast.MemberAccessExpression:
		// Field names are not symbols; only the subject resolves.
		r.resolveExpression(n.Object, scope)
	case *ast.IndexExpression:
		r.resolveExpression(n.Object, scope)
		r.resolveExpression(n.Index, scope)
	case *ast.IfExpression:
		r.resolveExpression(n.Condition, scope)
		r.resolveBlock(n.Consequence, scope)
		if n.Alternative != nil {
			r.resolveBlock(n.Alternative, scope)
		}
	case *ast.LoopExpression:
		r.resolveBlock(n.Body, scope)
	case *ast.BlockExpression:
		r.resolveBlock(n, scope)
	case *ast.IntegerLiteral, *ast.StringLiteral, *ast.BooleanLiteral, *ast.NullLiteral, *ast.ErrorNode:
		// Leaves; error sentinels stay in the graph for the evaluator to reject.
	}
}

// resolveBlock runs the block's statements and trailing result against
// one fresh child scope.
func (r *Resolver) resolveBlock(block *ast.BlockExpression, scope *Scope) {
	inner := scope.Child()
	for _, stmt := range block.Body {
		r.resolveStatement(stmt, inner)
	}
	if block.Result != nil {
		r.resolveExpression(block.Result, inner)
	}
}

// resolveIdentifier rewrites the use node in place. An unknown name is
// reported and the node left unresolved; the evaluator treats an
// unresolved identifier as a fatal error.
func (r *Resolver) resolveIdentifier(ident *ast.Identifier, scope *Scope) {
	sym := scope.Lookup(ident.Name)
	if sym == nil {
		r.report(Diagnostic{Code: UndefinedSymbol, Ident: ident.Name, Pos: ident.Pos()})
		return
	}
	binding := &ast.Binding{Kind: sym.Kind}
	if sym.Kind.HasDef() {
		binding.Def = sym.Def
	}
	ident.Binding = binding
}
