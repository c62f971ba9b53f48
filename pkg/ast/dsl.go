package ast

// Compact builders used by tests and embedders.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Null() *NullLiteral {
	return NewNullLiteral()
}

func Un(operator string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

func Bin(operator string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Call(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, args)
}

func CallN(name string, args ...Expression) *CallExpression {
	return NewCallExpression(ID(name), args)
}

func Member(object Expression, field string) *MemberAccessExpression {
	return NewMemberAccessExpression(object, field)
}

func Index(object, index Expression) *IndexExpression {
	return NewIndexExpression(object, index)
}

func If(condition Expression, consequence, alternative *BlockExpression) *IfExpression {
	return NewIfExpression(condition, consequence, alternative)
}

func Loop(body *BlockExpression) *LoopExpression {
	return NewLoopExpression(body)
}

// Block builds a block with no trailing result expression.
func Block(stmts ...Statement) *BlockExpression {
	return NewBlockExpression(stmts, nil)
}

// BlockR builds a block whose value is the trailing result expression.
func BlockR(result Expression, stmts ...Statement) *BlockExpression {
	return NewBlockExpression(stmts, result)
}

func Let(name string, value Expression) *LetStatement {
	return NewLetStatement(ID(name), value)
}

func Assign(target, value Expression) *AssignmentStatement {
	return NewAssignmentStatement(target, value)
}

func Break(value Expression) *BreakStatement {
	return NewBreakStatement(value)
}

func Return(value Expression) *ReturnStatement {
	return NewReturnStatement(value)
}

func Param(name string) *FunctionParameter {
	return NewFunctionParameter(ID(name))
}

func Fn(name string, params []*FunctionParameter, body *BlockExpression) *FunctionDefinition {
	return NewFunctionDefinition(ID(name), params, body)
}

func Mod(stmts ...Statement) *Module {
	return NewModule(stmts)
}
