package interpreter

import (
	"reed/interpreter-go/pkg/ast"
	"reed/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evalStatement(node ast.Statement, env *runtime.Environment) (Flow, error) {
	switch n := node.(type) {
	case *ast.LetStatement:
		return i.evalLetStatement(n, env)
	case *ast.AssignmentStatement:
		return i.evalAssignmentStatement(n, env)
	case *ast.BreakStatement:
		return i.evalSignalStatement(n.Value, breakFlow, env)
	case *ast.ReturnStatement:
		return i.evalSignalStatement(n.Value, returnFlow, env)
	case *ast.FunctionDefinition:
		return i.evalFunctionDefinition(n, env)
	case ast.Expression:
		// Expression statement: the caller discards a plain value.
		return i.evalExpression(n, env)
	default:
		return Flow{}, errAt(node.Pos(), "unsupported statement type %s", node.NodeType())
	}
}

// evalLetStatement re-enforces the resolver's redefinition policy:
// runtime scopes are rebuilt per call and block, so the check runs again
// here.
func (i *Interpreter) evalLetStatement(stmt *ast.LetStatement, env *runtime.Environment) (Flow, error) {
	name := stmt.Name.Name
	if env.DefinedLocally(name) {
		return Flow{}, errAt(stmt.Name.Pos(), "'%s' already defined in this scope", name)
	}
	flow, err := i.evalExpression(stmt.Value, env)
	if err != nil || flow.Kind != FlowValue {
		return flow, err
	}
	env.Define(name, flow.Value)
	return nullFlow(), nil
}

// evalSignalStatement wraps the optional operand (default null) as a
// break or return flow; a non-value flow from the operand itself
// propagates unchanged.
func (i *Interpreter) evalSignalStatement(operand ast.Expression, wrap func(runtime.Value) Flow, env *runtime.Environment) (Flow, error) {
	var val runtime.Value = runtime.NullValue{}
	if operand != nil {
		flow, err := i.evalExpression(operand, env)
		if err != nil || flow.Kind != FlowValue {
			return flow, err
		}
		val = flow.Value
	}
	return wrap(val), nil
}

// evalAssignmentStatement evaluates the right-hand value first, then
// resolves the target. Index writes follow the same dispatch as index
// reads, including the negative-index convention.
func (i *Interpreter) evalAssignmentStatement(stmt *ast.AssignmentStatement, env *runtime.Environment) (Flow, error) {
	flow, err := i.evalExpression(stmt.Value, env)
	if err != nil || flow.Kind != FlowValue {
		return flow, err
	}
	val := flow.Value

	switch target := stmt.Target.(type) {
	case *ast.Identifier:
		existing, ok := env.Lookup(target.Name)
		if !ok {
			return Flow{}, errAt(target.Pos(), "assignment to undefined variable '%s'", target.Name)
		}
		if existing.Kind() != val.Kind() {
			return Flow{}, errAt(target.Pos(), "cannot assign %s to '%s' of kind %s", val.Kind(), target.Name, existing.Kind())
		}
		if err := env.Assign(target.Name, val); err != nil {
			return Flow{}, errAt(target.Pos(), "%v", err)
		}
		return nullFlow(), nil
	case *ast.MemberAccessExpression:
		objFlow, err := i.evalExpression(target.Object, env)
		if err != nil || objFlow.Kind != FlowValue {
			return objFlow, err
		}
		structVal, ok := objFlow.Value.(*runtime.StructValue)
		if !ok {
			return Flow{}, errAt(target.Pos(), "field assignment '%s' requires a struct, got %s", target.Field, objFlow.Value.Kind())
		}
		structVal.Fields[target.Field] = val
		return nullFlow(), nil
	case *ast.IndexExpression:
		return i.evalIndexWrite(target, val, env)
	default:
		return Flow{}, errAt(stmt.Pos(), "invalid assignment target %s", target.NodeType())
	}
}

func (i *Interpreter) evalIndexWrite(target *ast.IndexExpression, val runtime.Value, env *runtime.Environment) (Flow, error) {
	objFlow, err := i.evalExpression(target.Object, env)
	if err != nil || objFlow.Kind != FlowValue {
		return objFlow, err
	}
	idxFlow, err := i.evalExpression(target.Index, env)
	if err != nil || idxFlow.Kind != FlowValue {
		return idxFlow, err
	}

	switch obj := objFlow.Value.(type) {
	case *runtime.StructValue:
		key, ok := idxFlow.Value.(runtime.StringValue)
		if !ok {
			return Flow{}, errAt(target.Pos(), "struct index must be a string, got %s", idxFlow.Value.Kind())
		}
		obj.Fields[key.Val] = val
		return nullFlow(), nil
	case *runtime.ArrayValue:
		idx, ok := idxFlow.Value.(runtime.IntValue)
		if !ok {
			return Flow{}, errAt(target.Pos(), "array index must be an int, got %s", idxFlow.Value.Kind())
		}
		offset, err := adjustIndex(idx.Val, len(obj.Elements), target.Pos())
		if err != nil {
			return Flow{}, err
		}
		obj.Elements[offset] = val
		return nullFlow(), nil
	default:
		return Flow{}, errAt(target.Pos(), "cannot assign into a %s by index", objFlow.Value.Kind())
	}
}

// evalFunctionDefinition registers the definition record once, then
// binds the name to a function value referencing it.
func (i *Interpreter) evalFunctionDefinition(def *ast.FunctionDefinition, env *runtime.Environment) (Flow, error) {
	id, ok := i.funcIDs[def.ID()]
	if !ok {
		i.nextFunc++
		id = i.nextFunc
		i.funcIDs[def.ID()] = id
		i.functions[id] = def
	}
	env.Define(def.Name.Name, runtime.FunctionValue{ID: id})
	return nullFlow(), nil
}
