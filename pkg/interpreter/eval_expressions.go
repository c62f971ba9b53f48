package interpreter

import (
	"reed/interpreter-go/pkg/ast"
	"reed/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evalExpression(node ast.Expression, env *runtime.Environment) (Flow, error) {
	switch n := node.(type) {
	case *ast.Identifier:
		return i.evalIdentifier(n, env)
	case *ast.IntegerLiteral:
		return valueFlow(runtime.IntValue{Val: n.Value}), nil
	case *ast.StringLiteral:
		return valueFlow(runtime.StringValue{Val: n.Value}), nil
	case *ast.BooleanLiteral:
		return valueFlow(runtime.BoolValue{Val: n.Value}), nil
	case *ast.NullLiteral:
		return nullFlow(), nil
	case *ast.UnaryExpression:
		return i.evalUnaryExpression(n, env)
	case *ast.BinaryExpression:
		return i.evalBinaryExpression(n, env)
	case *ast.CallExpression:
		return i.evalCallExpression(n, env)
	case *ast.MemberAccessExpression:
		return i.evalMemberAccess(n, env)
	case *ast.IndexExpression:
		return i.evalIndexRead(n, env)
	case *ast.IfExpression:
		return i.evalIfExpression(n, env)
	case *ast.LoopExpression:
		return i.evalLoopExpression(n, env)
	case *ast.BlockExpression:
		return i.evalBlock(n, env)
	case *ast.ErrorNode:
		return Flow{}, errAt(n.Pos(), "cannot evaluate unparsed construct: %s", n.Message)
	default:
		return Flow{}, errAt(node.Pos(), "unsupported expression type %s", node.NodeType())
	}
}

// evalIdentifier requires a resolved node: the resolver's recoverable
// diagnostic becomes a fatal error once evaluation starts.
func (i *Interpreter) evalIdentifier(ident *ast.Identifier, env *runtime.Environment) (Flow, error) {
	if !ident.Resolved() {
		return Flow{}, errAt(ident.Pos(), "unresolved identifier '%s'", ident.Name)
	}
	val, ok := env.Lookup(ident.Name)
	if !ok {
		return Flow{}, errAt(ident.Pos(), "identifier '%s' has no runtime binding", ident.Name)
	}
	return valueFlow(val), nil
}

func (i *Interpreter) evalUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (Flow, error) {
	flow, err := i.evalExpression(expr.Operand, env)
	if err != nil || flow.Kind != FlowValue {
		return flow, err
	}
	switch expr.Operator {
	case "-":
		if v, ok := flow.Value.(runtime.IntValue); ok {
			return valueFlow(runtime.IntValue{Val: -v.Val}), nil
		}
	case "!":
		if v, ok := flow.Value.(runtime.BoolValue); ok {
			return valueFlow(runtime.BoolValue{Val: !v.Val}), nil
		}
	}
	return Flow{}, errAt(expr.Pos(), "operator '%s' does not accept %s", expr.Operator, flow.Value.Kind())
}

func (i *Interpreter) evalBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (Flow, error) {
	left, err := i.evalExpression(expr.Left, env)
	if err != nil || left.Kind != FlowValue {
		return left, err
	}
	right, err := i.evalExpression(expr.Right, env)
	if err != nil || right.Kind != FlowValue {
		return right, err
	}
	val, err := applyBinaryOperator(expr.Operator, left.Value, right.Value, expr.Pos())
	if err != nil {
		return Flow{}, err
	}
	return valueFlow(val), nil
}

// applyBinaryOperator dispatches on a fixed per-operator table of
// allowed operand kinds. Anything outside the table is a fatal error
// naming both kinds and the operator.
func applyBinaryOperator(op string, left, right runtime.Value, pos ast.Position) (runtime.Value, error) {
	switch op {
	case "+":
		if l, ok := left.(runtime.IntValue); ok {
			if r, ok := right.(runtime.IntValue); ok {
				return runtime.IntValue{Val: l.Val + r.Val}, nil
			}
		}
		if l, ok := left.(runtime.StringValue); ok {
			if r, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: l.Val + r.Val}, nil
			}
		}
	case "-", "*", "/", "%":
		l, lok := left.(runtime.IntValue)
		r, rok := right.(runtime.IntValue)
		if lok && rok {
			switch op {
			case "-":
				return runtime.IntValue{Val: l.Val - r.Val}, nil
			case "*":
				return runtime.IntValue{Val: l.Val * r.Val}, nil
			case "/":
				if r.Val == 0 {
					return nil, errAt(pos, "division by zero")
				}
				return runtime.IntValue{Val: l.Val / r.Val}, nil
			case "%":
				if r.Val == 0 {
					return nil, errAt(pos, "division by zero")
				}
				return runtime.IntValue{Val: l.Val % r.Val}, nil
			}
		}
	case "<", "<=", ">", ">=":
		l, lok := left.(runtime.IntValue)
		r, rok := right.(runtime.IntValue)
		if lok && rok {
			switch op {
			case "<":
				return runtime.BoolValue{Val: l.Val < r.Val}, nil
			case "<=":
				return runtime.BoolValue{Val: l.Val <= r.Val}, nil
			case ">":
				return runtime.BoolValue{Val: l.Val > r.Val}, nil
			case ">=":
				return runtime.BoolValue{Val: l.Val >= r.Val}, nil
			}
		}
	case "==", "!=":
		eq, err := valuesEqual(left, right, op, pos)
		if err != nil {
			return nil, err
		}
		if op == "!=" {
			eq = !eq
		}
		return runtime.BoolValue{Val: eq}, nil
	}
	return nil, errAt(pos, "operator '%s' does not accept %s and %s", op, left.Kind(), right.Kind())
}

// valuesEqual: null equals only null; otherwise both operands must share
// a primitive kind.
func valuesEqual(left, right runtime.Value, op string, pos ast.Position) (bool, error) {
	if left.Kind() == runtime.KindNull || right.Kind() == runtime.KindNull {
		return left.Kind() == right.Kind(), nil
	}
	if left.Kind() != right.Kind() {
		return false, errAt(pos, "operator '%s' does not accept %s and %s", op, left.Kind(), right.Kind())
	}
	switch l := left.(type) {
	case runtime.IntValue:
		return l.Val == right.(runtime.IntValue).Val, nil
	case runtime.StringValue:
		return l.Val == right.(runtime.StringValue).Val, nil
	case runtime.BoolValue:
		return l.Val == right.(runtime.BoolValue).Val, nil
	default:
		return false, errAt(pos, "operator '%s' does not accept %s and %s", op, left.Kind(), right.Kind())
	}
}

// evalCallExpression evaluates the callee, then each argument left to
// right, propagating the first non-value flow. Calls are the only
// construct that consumes a return flow.
func (i *Interpreter) evalCallExpression(call *ast.CallExpression, env *runtime.Environment) (Flow, error) {
	calleeFlow, err := i.evalExpression(call.Callee, env)
	if err != nil || calleeFlow.Kind != FlowValue {
		return calleeFlow, err
	}
	args := make([]runtime.Value, 0, len(call.Args))
	for _, argExpr := range call.Args {
		argFlow, err := i.evalExpression(argExpr, env)
		if err != nil || argFlow.Kind != FlowValue {
			return argFlow, err
		}
		args = append(args, argFlow.Value)
	}

	switch callee := calleeFlow.Value.(type) {
	case runtime.BuiltinValue:
		return i.callBuiltin(callee.Name, args, call.Pos())
	case runtime.FunctionValue:
		return i.callFunction(callee, args, call.Pos())
	default:
		return Flow{}, errAt(call.Pos(), "cannot call a %s", calleeFlow.Value.Kind())
	}
}

// callFunction binds parameters in a fresh scope rooted at the global
// environment; Reed has no closures, so the caller's lexical scope is
// never captured.
func (i *Interpreter) callFunction(fn runtime.FunctionValue, args []runtime.Value, pos ast.Position) (Flow, error) {
	def, ok := i.functions[fn.ID]
	if !ok {
		return Flow{}, errAt(pos, "unknown function id %d", fn.ID)
	}
	if len(args) != len(def.Params) {
		return Flow{}, errAt(pos, "'%s' expects %d argument(s), got %d", def.Name.Name, len(def.Params), len(args))
	}
	frame := i.global.Extend()
	for idx, param := range def.Params {
		frame.Define(param.Name.Name, args[idx])
	}
	flow, err := i.evalBlock(def.Body, frame)
	if err != nil {
		return Flow{}, err
	}
	switch flow.Kind {
	case FlowReturn:
		return valueFlow(flow.Value), nil
	case FlowValue:
		return flow, nil
	default:
		return Flow{}, errAt(pos, "internal: %s signal escaped the body of '%s'", flow.Kind, def.Name.Name)
	}
}

func (i *Interpreter) evalMemberAccess(expr *ast.MemberAccessExpression, env *runtime.Environment) (Flow, error) {
	objFlow, err := i.evalExpression(expr.Object, env)
	if err != nil || objFlow.Kind != FlowValue {
		return objFlow, err
	}
	structVal, ok := objFlow.Value.(*runtime.StructValue)
	if !ok {
		return Flow{}, errAt(expr.Pos(), "field access '%s' requires a struct, got %s", expr.Field, objFlow.Value.Kind())
	}
	val, ok := structVal.Fields[expr.Field]
	if !ok {
		// Deliberate asymmetry with index reads: a missing field is fatal,
		// a missing string key through [] yields null.
		return Flow{}, errAt(expr.Pos(), "struct has no field '%s'", expr.Field)
	}
	return valueFlow(val), nil
}

func (i *Interpreter) evalIndexRead(expr *ast.IndexExpression, env *runtime.Environment) (Flow, error) {
	objFlow, err := i.evalExpression(expr.Object, env)
	if err != nil || objFlow.Kind != FlowValue {
		return objFlow, err
	}
	idxFlow, err := i.evalExpression(expr.Index, env)
	if err != nil || idxFlow.Kind != FlowValue {
		return idxFlow, err
	}

	switch obj := objFlow.Value.(type) {
	case *runtime.StructValue:
		key, ok := idxFlow.Value.(runtime.StringValue)
		if !ok {
			return Flow{}, errAt(expr.Pos(), "struct index must be a string, got %s", idxFlow.Value.Kind())
		}
		val, ok := obj.Fields[key.Val]
		if !ok {
			return nullFlow(), nil
		}
		return valueFlow(val), nil
	case *runtime.ArrayValue:
		idx, ok := idxFlow.Value.(runtime.IntValue)
		if !ok {
			return Flow{}, errAt(expr.Pos(), "array index must be an int, got %s", idxFlow.Value.Kind())
		}
		offset, err := adjustIndex(idx.Val, len(obj.Elements), expr.Pos())
		if err != nil {
			return Flow{}, err
		}
		return valueFlow(obj.Elements[offset]), nil
	default:
		if str, ok := objFlow.Value.(runtime.StringValue); ok {
			idx, ok := idxFlow.Value.(runtime.IntValue)
			if !ok {
				return Flow{}, errAt(expr.Pos(), "string index must be an int, got %s", idxFlow.Value.Kind())
			}
			runes := []rune(str.Val)
			offset, err := adjustIndex(idx.Val, len(runes), expr.Pos())
			if err != nil {
				return Flow{}, err
			}
			return valueFlow(runtime.StringValue{Val: string(runes[offset])}), nil
		}
		return Flow{}, errAt(expr.Pos(), "kind %s is not indexable", objFlow.Value.Kind())
	}
}

// adjustIndex applies the negative-index convention (-1 is the last
// element); any index out of range after adjustment is fatal.
func adjustIndex(idx int64, length int, pos ast.Position) (int, error) {
	adjusted := idx
	if adjusted < 0 {
		adjusted += int64(length)
	}
	if adjusted < 0 || adjusted >= int64(length) {
		return 0, errAt(pos, "index %d out of range for length %d", idx, length)
	}
	return int(adjusted), nil
}

func (i *Interpreter) evalIfExpression(expr *ast.IfExpression, env *runtime.Environment) (Flow, error) {
	condFlow, err := i.evalExpression(expr.Condition, env)
	if err != nil || condFlow.Kind != FlowValue {
		return condFlow, err
	}
	cond, ok := condFlow.Value.(runtime.BoolValue)
	if !ok {
		return Flow{}, errAt(expr.Pos(), "if condition must be a bool, got %s", condFlow.Value.Kind())
	}
	if cond.Val {
		return i.evalBlock(expr.Consequence, env)
	}
	if expr.Alternative != nil {
		return i.evalBlock(expr.Alternative, env)
	}
	return nullFlow(), nil
}

// evalLoopExpression repeats the body until a break flow terminates the
// loop and becomes its value. Loops are the only construct that consumes
// break; a return propagates past them.
func (i *Interpreter) evalLoopExpression(loop *ast.LoopExpression, env *runtime.Environment) (Flow, error) {
	for {
		flow, err := i.evalBlock(loop.Body, env)
		if err != nil {
			return Flow{}, err
		}
		switch flow.Kind {
		case FlowBreak:
			return valueFlow(flow.Value), nil
		case FlowReturn:
			return flow, nil
		}
		// Plain value: discard and loop again.
	}
}

// evalBlock runs statements in a fresh child scope, short-circuiting on
// the first non-value flow; the trailing result expression (if any)
// evaluates in the same scope and supplies the block's value.
func (i *Interpreter) evalBlock(block *ast.BlockExpression, env *runtime.Environment) (Flow, error) {
	scope := env.Extend()
	for _, stmt := range block.Body {
		flow, err := i.evalStatement(stmt, scope)
		if err != nil || flow.Kind != FlowValue {
			return flow, err
		}
	}
	if block.Result != nil {
		return i.evalExpression(block.Result, scope)
	}
	return nullFlow(), nil
}
