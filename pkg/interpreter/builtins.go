package interpreter

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"reed/interpreter-go/pkg/ast"
	"reed/interpreter-go/pkg/runtime"
)

type builtinFunc func(i *Interpreter, args []runtime.Value, pos ast.Position) (runtime.Value, error)

func (i *Interpreter) callBuiltin(name string, args []runtime.Value, pos ast.Position) (Flow, error) {
	impl, ok := i.builtins[name]
	if !ok {
		return Flow{}, errAt(pos, "unknown builtin '%s'", name)
	}
	val, err := impl(i, args, pos)
	if err != nil {
		return Flow{}, err
	}
	return valueFlow(val), nil
}

func builtinTable() map[string]builtinFunc {
	return map[string]builtinFunc{
		"array":         builtinArray,
		"array_len":     builtinArrayLen,
		"array_push":    builtinArrayPush,
		"exit":          builtinExit,
		"println":       builtinPrintln,
		"string_concat": builtinStringConcat,
		"string_len":    builtinStringLen,
		"string_to_int": builtinStringToInt,
		"struct":        builtinStruct,
		"to_string":     builtinToString,
	}
}

func wantArity(name string, args []runtime.Value, arity int, pos ast.Position) error {
	if len(args) != arity {
		return errAt(pos, "%s expects %d argument(s), got %d", name, arity, len(args))
	}
	return nil
}

func builtinArray(_ *Interpreter, args []runtime.Value, pos ast.Position) (runtime.Value, error) {
	if err := wantArity("array", args, 0, pos); err != nil {
		return nil, err
	}
	return runtime.NewArray(), nil
}

func builtinStruct(_ *Interpreter, args []runtime.Value, pos ast.Position) (runtime.Value, error) {
	if err := wantArity("struct", args, 0, pos); err != nil {
		return nil, err
	}
	return runtime.NewStruct(), nil
}

func builtinArrayPush(_ *Interpreter, args []runtime.Value, pos ast.Position) (runtime.Value, error) {
	if err := wantArity("array_push", args, 2, pos); err != nil {
		return nil, err
	}
	arr, ok := args[0].(*runtime.ArrayValue)
	if !ok {
		return nil, errAt(pos, "array_push expects an array, got %s", args[0].Kind())
	}
	arr.Elements = append(arr.Elements, args[1])
	return runtime.NullValue{}, nil
}

func builtinArrayLen(_ *Interpreter, args []runtime.Value, pos ast.Position) (runtime.Value, error) {
	if err := wantArity("array_len", args, 1, pos); err != nil {
		return nil, err
	}
	arr, ok := args[0].(*runtime.ArrayValue)
	if !ok {
		return nil, errAt(pos, "array_len expects an array, got %s", args[0].Kind())
	}
	return runtime.IntValue{Val: int64(len(arr.Elements))}, nil
}

func builtinStringConcat(_ *Interpreter, args []runtime.Value, pos ast.Position) (runtime.Value, error) {
	if err := wantArity("string_concat", args, 2, pos); err != nil {
		return nil, err
	}
	parts := make([]string, 0, 2)
	for _, arg := range args {
		switch v := arg.(type) {
		case runtime.StringValue:
			parts = append(parts, v.Val)
		case runtime.IntValue:
			parts = append(parts, strconv.FormatInt(v.Val, 10))
		default:
			return nil, errAt(pos, "string_concat expects string or int, got %s", arg.Kind())
		}
	}
	return runtime.StringValue{Val: parts[0] + parts[1]}, nil
}

func builtinStringLen(_ *Interpreter, args []runtime.Value, pos ast.Position) (runtime.Value, error) {
	if err := wantArity("string_len", args, 1, pos); err != nil {
		return nil, err
	}
	str, ok := args[0].(runtime.StringValue)
	if !ok {
		return nil, errAt(pos, "string_len expects a string, got %s", args[0].Kind())
	}
	return runtime.IntValue{Val: int64(utf8.RuneCountInString(str.Val))}, nil
}

// builtinPrintln substitutes to_string of each argument for the literal
// {} placeholders in the format string; a count mismatch is fatal.
func builtinPrintln(i *Interpreter, args []runtime.Value, pos ast.Position) (runtime.Value, error) {
	if len(args) == 0 {
		return nil, errAt(pos, "println expects a format string")
	}
	format, ok := args[0].(runtime.StringValue)
	if !ok {
		return nil, errAt(pos, "println format must be a string, got %s", args[0].Kind())
	}
	placeholders := strings.Count(format.Val, "{}")
	rest := args[1:]
	if placeholders != len(rest) {
		return nil, errAt(pos, "println format has %d placeholder(s) but %d argument(s) were given", placeholders, len(rest))
	}
	var out strings.Builder
	remaining := format.Val
	for _, arg := range rest {
		idx := strings.Index(remaining, "{}")
		out.WriteString(remaining[:idx])
		out.WriteString(runtime.ToString(arg))
		remaining = remaining[idx+2:]
	}
	out.WriteString(remaining)
	fmt.Fprintln(i.Stdout, out.String())
	return runtime.NullValue{}, nil
}

func builtinExit(_ *Interpreter, args []runtime.Value, pos ast.Position) (runtime.Value, error) {
	if err := wantArity("exit", args, 1, pos); err != nil {
		return nil, err
	}
	status, ok := args[0].(runtime.IntValue)
	if !ok {
		return nil, errAt(pos, "exit expects an int, got %s", args[0].Kind())
	}
	return nil, exitSignal{status: int(status.Val)}
}

func builtinToString(_ *Interpreter, args []runtime.Value, pos ast.Position) (runtime.Value, error) {
	if err := wantArity("to_string", args, 1, pos); err != nil {
		return nil, err
	}
	return runtime.StringValue{Val: runtime.ToString(args[0])}, nil
}

func builtinStringToInt(_ *Interpreter, args []runtime.Value, pos ast.Position) (runtime.Value, error) {
	if err := wantArity("string_to_int", args, 1, pos); err != nil {
		return nil, err
	}
	str, ok := args[0].(runtime.StringValue)
	if !ok {
		return nil, errAt(pos, "string_to_int expects a string, got %s", args[0].Kind())
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(str.Val), 10, 64)
	if err != nil {
		return runtime.NullValue{}, nil
	}
	return runtime.IntValue{Val: parsed}, nil
}
