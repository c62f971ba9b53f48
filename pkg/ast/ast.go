package ast

import "sync/atomic"

type NodeType string

const (
	NodeIdentifier             NodeType = "Identifier"
	NodeIntegerLiteral         NodeType = "IntegerLiteral"
	NodeStringLiteral          NodeType = "StringLiteral"
	NodeBooleanLiteral         NodeType = "BooleanLiteral"
	NodeNullLiteral            NodeType = "NullLiteral"
	NodeUnaryExpression        NodeType = "UnaryExpression"
	NodeBinaryExpression       NodeType = "BinaryExpression"
	NodeCallExpression         NodeType = "CallExpression"
	NodeMemberAccessExpression NodeType = "MemberAccessExpression"
	NodeIndexExpression        NodeType = "IndexExpression"
	NodeIfExpression           NodeType = "IfExpression"
	NodeLoopExpression         NodeType = "LoopExpression"
	NodeBlockExpression        NodeType = "BlockExpression"
	NodeErrorNode              NodeType = "ErrorNode"
	NodeLetStatement           NodeType = "LetStatement"
	NodeAssignmentStatement    NodeType = "AssignmentStatement"
	NodeBreakStatement         NodeType = "BreakStatement"
	NodeReturnStatement        NodeType = "ReturnStatement"
	NodeFunctionParameter      NodeType = "FunctionParameter"
	NodeFunctionDefinition     NodeType = "FunctionDefinition"
	NodeModule                 NodeType = "Module"
)

// Position locates a node in the original source text (1-based).
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// NodeID is a process-unique identifier assigned at construction time.
// Back-references introduced by resolution are expressed as NodeIDs rather
// than owning pointers, so the post-resolution graph stays cycle-safe.
type NodeID uint64

var nodeCounter atomic.Uint64

type Node interface {
	NodeType() NodeType
	ID() NodeID
	Pos() Position
	isNode()
}

type nodeImpl struct {
	typ NodeType
	id  NodeID
	pos Position
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{typ: kind, id: NodeID(nodeCounter.Add(1))}
}

func (n nodeImpl) NodeType() NodeType { return n.typ }
func (n nodeImpl) ID() NodeID         { return n.id }
func (n nodeImpl) Pos() Position      { return n.pos }
func (n *nodeImpl) setPos(pos Position) {
	n.pos = pos
}
func (nodeImpl) isNode() {}

// SetPos annotates the node with a source position.
func SetPos(node Node, pos Position) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setPos(Position) }); ok {
		setter.setPos(pos)
	}
}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Symbols

// SymbolKind classifies what a resolved identifier refers to.
type SymbolKind string

const (
	SymbolLetBinding SymbolKind = "let-binding"
	SymbolFunction   SymbolKind = "function"
	SymbolParameter  SymbolKind = "function-parameter"
	SymbolBuiltin    SymbolKind = "builtin"
)

// Binding is attached to an Identifier by the resolver. Def is the NodeID
// of the defining LetStatement, FunctionDefinition, or FunctionParameter;
// builtins have no defining node and leave Def zero.
type Binding struct {
	Kind SymbolKind
	Def  NodeID
}

// HasDef reports whether this symbol kind carries a defining node.
func (k SymbolKind) HasDef() bool {
	return k != SymbolBuiltin
}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name    string `json:"name"`
	Binding *Binding
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Resolved reports whether the resolver has rewritten this identifier.
func (n *Identifier) Resolved() bool { return n.Binding != nil }

// Literals

type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value int64 `json:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NullLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
}

func NewNullLiteral() *NullLiteral {
	return &NullLiteral{nodeImpl: newNodeImpl(NodeNullLiteral)}
}

// Composite expressions

type UnaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
}

func NewUnaryExpression(operator string, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type CallExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Callee Expression   `json:"callee"`
	Args   []Expression `json:"args"`
}

func NewCallExpression(callee Expression, args []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Args: args}
}

// MemberAccessExpression reads a named field from a struct value. The field
// name is plain text, not a symbol; the resolver only visits Object.
type MemberAccessExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Object Expression `json:"object"`
	Field  string     `json:"field"`
}

func NewMemberAccessExpression(object Expression, field string) *MemberAccessExpression {
	return &MemberAccessExpression{nodeImpl: newNodeImpl(NodeMemberAccessExpression), Object: object, Field: field}
}

type IndexExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Object Expression `json:"object"`
	Index  Expression `json:"index"`
}

func NewIndexExpression(object, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Object: object, Index: index}
}

type IfExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Condition   Expression       `json:"condition"`
	Consequence *BlockExpression `json:"consequence"`
	Alternative *BlockExpression `json:"alternative,omitempty"`
}

func NewIfExpression(condition Expression, consequence, alternative *BlockExpression) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIfExpression), Condition: condition, Consequence: consequence, Alternative: alternative}
}

type LoopExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Body *BlockExpression `json:"body"`
}

func NewLoopExpression(body *BlockExpression) *LoopExpression {
	return &LoopExpression{nodeImpl: newNodeImpl(NodeLoopExpression), Body: body}
}

// BlockExpression runs its statements in a child scope; the optional
// trailing Result expression, evaluated in the same scope, is the block's
// value.
type BlockExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Body   []Statement `json:"body"`
	Result Expression  `json:"result,omitempty"`
}

func NewBlockExpression(body []Statement, result Expression) *BlockExpression {
	return &BlockExpression{nodeImpl: newNodeImpl(NodeBlockExpression), Body: body, Result: result}
}

// ErrorNode stands in for a construct the front end could not parse, so
// resolution and evaluation never need a nil-node check.
type ErrorNode struct {
	nodeImpl
	expressionMarker
	statementMarker

	Message string `json:"message"`
}

func NewErrorNode(message string) *ErrorNode {
	return &ErrorNode{nodeImpl: newNodeImpl(NodeErrorNode), Message: message}
}

// Statements

type LetStatement struct {
	nodeImpl
	statementMarker

	Name  *Identifier `json:"name"`
	Value Expression  `json:"value"`
}

func NewLetStatement(name *Identifier, value Expression) *LetStatement {
	return &LetStatement{nodeImpl: newNodeImpl(NodeLetStatement), Name: name, Value: value}
}

// AssignmentStatement mutates an existing binding, struct field, or
// array/struct element. Target is an Identifier, MemberAccessExpression,
// or IndexExpression.
type AssignmentStatement struct {
	nodeImpl
	statementMarker

	Target Expression `json:"target"`
	Value  Expression `json:"value"`
}

func NewAssignmentStatement(target, value Expression) *AssignmentStatement {
	return &AssignmentStatement{nodeImpl: newNodeImpl(NodeAssignmentStatement), Target: target, Value: value}
}

type BreakStatement struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value,omitempty"`
}

func NewBreakStatement(value Expression) *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement), Value: value}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value,omitempty"`
}

func NewReturnStatement(value Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Value: value}
}

type FunctionParameter struct {
	nodeImpl

	Name *Identifier `json:"name"`
}

func NewFunctionParameter(name *Identifier) *FunctionParameter {
	return &FunctionParameter{nodeImpl: newNodeImpl(NodeFunctionParameter), Name: name}
}

type FunctionDefinition struct {
	nodeImpl
	statementMarker

	Name   *Identifier          `json:"name"`
	Params []*FunctionParameter `json:"params"`
	Body   *BlockExpression     `json:"body"`
}

func NewFunctionDefinition(name *Identifier, params []*FunctionParameter, body *BlockExpression) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), Name: name, Params: params, Body: body}
}

// Module

type Module struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewModule(body []Statement) *Module {
	return &Module{nodeImpl: newNodeImpl(NodeModule), Body: body}
}
