package ast

import (
	"encoding/json"
	"fmt"
)

// DecodeModule decodes the serialized syntax graph emitted by the front
// end. The wire format is a JSON tree of nodes, each tagged with "type"
// and an optional "pos" {line, column}.
func DecodeModule(data []byte) (*Module, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("syntax graph: %w", err)
	}
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	module, ok := node.(*Module)
	if !ok {
		return nil, fmt.Errorf("syntax graph: root must be Module, got %s", node.NodeType())
	}
	return module, nil
}

func decodeNode(node map[string]any) (Node, error) {
	typ, _ := node["type"].(string)
	var decoded Node
	switch NodeType(typ) {
	case NodeModule:
		stmts, stmtErr := decodeStatements(node["body"])
		if stmtErr != nil {
			return nil, stmtErr
		}
		decoded = NewModule(stmts)
	case NodeIdentifier:
		name, _ := node["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("syntax graph: identifier missing name")
		}
		decoded = NewIdentifier(name)
	case NodeIntegerLiteral:
		val, ok := node["value"].(float64)
		if !ok {
			return nil, fmt.Errorf("syntax graph: integer literal missing value")
		}
		decoded = NewIntegerLiteral(int64(val))
	case NodeStringLiteral:
		val, ok := node["value"].(string)
		if !ok {
			return nil, fmt.Errorf("syntax graph: string literal missing value")
		}
		decoded = NewStringLiteral(val)
	case NodeBooleanLiteral:
		val, ok := node["value"].(bool)
		if !ok {
			return nil, fmt.Errorf("syntax graph: boolean literal missing value")
		}
		decoded = NewBooleanLiteral(val)
	case NodeNullLiteral:
		decoded = NewNullLiteral()
	case NodeUnaryExpression:
		op, _ := node["operator"].(string)
		operand, opErr := decodeExpressionField(node, "operand")
		if opErr != nil {
			return nil, opErr
		}
		decoded = NewUnaryExpression(op, operand)
	case NodeBinaryExpression:
		op, _ := node["operator"].(string)
		left, leftErr := decodeExpressionField(node, "left")
		if leftErr != nil {
			return nil, leftErr
		}
		right, rightErr := decodeExpressionField(node, "right")
		if rightErr != nil {
			return nil, rightErr
		}
		decoded = NewBinaryExpression(op, left, right)
	case NodeCallExpression:
		callee, calleeErr := decodeExpressionField(node, "callee")
		if calleeErr != nil {
			return nil, calleeErr
		}
		argsRaw, _ := node["args"].([]any)
		args := make([]Expression, 0, len(argsRaw))
		for _, raw := range argsRaw {
			arg, argErr := decodeExpression(raw)
			if argErr != nil {
				return nil, argErr
			}
			args = append(args, arg)
		}
		decoded = NewCallExpression(callee, args)
	case NodeMemberAccessExpression:
		object, objErr := decodeExpressionField(node, "object")
		if objErr != nil {
			return nil, objErr
		}
		field, _ := node["field"].(string)
		if field == "" {
			return nil, fmt.Errorf("syntax graph: member access missing field")
		}
		decoded = NewMemberAccessExpression(object, field)
	case NodeIndexExpression:
		object, objErr := decodeExpressionField(node, "object")
		if objErr != nil {
			return nil, objErr
		}
		index, idxErr := decodeExpressionField(node, "index")
		if idxErr != nil {
			return nil, idxErr
		}
		decoded = NewIndexExpression(object, index)
	case NodeIfExpression:
		cond, condErr := decodeExpressionField(node, "condition")
		if condErr != nil {
			return nil, condErr
		}
		consequence, consErr := decodeBlockField(node, "consequence", true)
		if consErr != nil {
			return nil, consErr
		}
		alternative, altErr := decodeBlockField(node, "alternative", false)
		if altErr != nil {
			return nil, altErr
		}
		decoded = NewIfExpression(cond, consequence, alternative)
	case NodeLoopExpression:
		body, bodyErr := decodeBlockField(node, "body", true)
		if bodyErr != nil {
			return nil, bodyErr
		}
		decoded = NewLoopExpression(body)
	case NodeBlockExpression:
		block, blockErr := decodeBlock(node)
		if blockErr != nil {
			return nil, blockErr
		}
		decoded = block
	case NodeErrorNode:
		msg, _ := node["message"].(string)
		decoded = NewErrorNode(msg)
	case NodeLetStatement:
		name, nameErr := decodeIdentifierField(node, "name")
		if nameErr != nil {
			return nil, nameErr
		}
		value, valErr := decodeExpressionField(node, "value")
		if valErr != nil {
			return nil, valErr
		}
		decoded = NewLetStatement(name, value)
	case NodeAssignmentStatement:
		target, targetErr := decodeExpressionField(node, "target")
		if targetErr != nil {
			return nil, targetErr
		}
		value, valErr := decodeExpressionField(node, "value")
		if valErr != nil {
			return nil, valErr
		}
		decoded = NewAssignmentStatement(target, value)
	case NodeBreakStatement:
		value, valErr := decodeOptionalExpression(node, "value")
		if valErr != nil {
			return nil, valErr
		}
		decoded = NewBreakStatement(value)
	case NodeReturnStatement:
		value, valErr := decodeOptionalExpression(node, "value")
		if valErr != nil {
			return nil, valErr
		}
		decoded = NewReturnStatement(value)
	case NodeFunctionDefinition:
		name, nameErr := decodeIdentifierField(node, "name")
		if nameErr != nil {
			return nil, nameErr
		}
		paramsRaw, _ := node["params"].([]any)
		params := make([]*FunctionParameter, 0, len(paramsRaw))
		for _, raw := range paramsRaw {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("syntax graph: invalid function parameter %T", raw)
			}
			pname, pErr := decodeIdentifierField(child, "name")
			if pErr != nil {
				return nil, pErr
			}
			param := NewFunctionParameter(pname)
			applyPos(param, child)
			params = append(params, param)
		}
		body, bodyErr := decodeBlockField(node, "body", true)
		if bodyErr != nil {
			return nil, bodyErr
		}
		decoded = NewFunctionDefinition(name, params, body)
	default:
		return nil, fmt.Errorf("syntax graph: unknown node type %q", typ)
	}
	applyPos(decoded, node)
	return decoded, nil
}

func decodeStatements(raw any) ([]Statement, error) {
	entries, _ := raw.([]any)
	stmts := make([]Statement, 0, len(entries))
	for _, entry := range entries {
		child, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("syntax graph: invalid statement entry %T", entry)
		}
		node, err := decodeNode(child)
		if err != nil {
			return nil, err
		}
		stmt, ok := node.(Statement)
		if !ok {
			return nil, fmt.Errorf("syntax graph: %s is not a statement", node.NodeType())
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeBlock(node map[string]any) (*BlockExpression, error) {
	stmts, err := decodeStatements(node["body"])
	if err != nil {
		return nil, err
	}
	result, err := decodeOptionalExpression(node, "result")
	if err != nil {
		return nil, err
	}
	block := NewBlockExpression(stmts, result)
	applyPos(block, node)
	return block, nil
}

func decodeBlockField(node map[string]any, key string, required bool) (*BlockExpression, error) {
	raw, ok := node[key].(map[string]any)
	if !ok {
		if required {
			return nil, fmt.Errorf("syntax graph: missing block %q", key)
		}
		return nil, nil
	}
	return decodeBlock(raw)
}

func decodeExpression(raw any) (Expression, error) {
	child, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("syntax graph: invalid expression entry %T", raw)
	}
	node, err := decodeNode(child)
	if err != nil {
		return nil, err
	}
	expr, ok := node.(Expression)
	if !ok {
		return nil, fmt.Errorf("syntax graph: %s is not an expression", node.NodeType())
	}
	return expr, nil
}

func decodeExpressionField(node map[string]any, key string) (Expression, error) {
	raw, ok := node[key]
	if !ok {
		return nil, fmt.Errorf("syntax graph: missing expression %q", key)
	}
	return decodeExpression(raw)
}

func decodeOptionalExpression(node map[string]any, key string) (Expression, error) {
	raw, ok := node[key]
	if !ok || raw == nil {
		return nil, nil
	}
	return decodeExpression(raw)
}

func decodeIdentifierField(node map[string]any, key string) (*Identifier, error) {
	raw, ok := node[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("syntax graph: missing identifier %q", key)
	}
	child, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	ident, ok := child.(*Identifier)
	if !ok {
		return nil, fmt.Errorf("syntax graph: %q must be an identifier, got %s", key, child.NodeType())
	}
	return ident, nil
}

func applyPos(node Node, raw map[string]any) {
	posRaw, ok := raw["pos"].(map[string]any)
	if !ok {
		return
	}
	line, _ := posRaw["line"].(float64)
	column, _ := posRaw["column"].(float64)
	SetPos(node, Position{Line: int(line), Column: int(column)})
}
