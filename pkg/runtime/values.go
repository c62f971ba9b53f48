package runtime

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindError Kind = iota
	KindNull
	KindInt
	KindString
	KindBool
	KindArray
	KindStruct
	KindFunction
	KindBuiltin
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	case KindFunction:
		return "function"
	case KindBuiltin:
		return "builtin"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

// ErrorValue is the sentinel produced for constructs the front end could
// not parse.
type ErrorValue struct{}

func (ErrorValue) Kind() Kind { return KindError }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

type IntValue struct {
	Val int64
}

func (v IntValue) Kind() Kind { return KindInt }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// ArrayValue aliases by reference: every copy of the value observes
// mutations of the shared element slice.
type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Kind() Kind { return KindArray }

// StructValue aliases by reference, like ArrayValue.
type StructValue struct {
	Fields map[string]Value
}

func (v *StructValue) Kind() Kind { return KindStruct }

func NewArray() *ArrayValue {
	return &ArrayValue{Elements: make([]Value, 0)}
}

func NewStruct() *StructValue {
	return &StructValue{Fields: make(map[string]Value)}
}

// FuncID names a function definition record in the interpreter's
// process-wide function table.
type FuncID uint64

// FunctionValue references a registered definition record by id; copies
// are cheap and never own the definition.
type FunctionValue struct {
	ID FuncID
}

func (v FunctionValue) Kind() Kind { return KindFunction }

// BuiltinValue references a host-implemented operation by name.
type BuiltinValue struct {
	Name string
}

func (v BuiltinValue) Kind() Kind { return KindBuiltin }

// ToString renders any value. It is total over the closed Kind union; a
// new kind must extend this switch.
func ToString(val Value) string {
	switch v := val.(type) {
	case ErrorValue:
		return "<error>"
	case NullValue:
		return "null"
	case IntValue:
		return strconv.FormatInt(v.Val, 10)
	case StringValue:
		return strconv.Quote(v.Val)
	case BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case *ArrayValue:
		parts := make([]string, 0, len(v.Elements))
		for _, el := range v.Elements {
			parts = append(parts, ToString(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *StructValue:
		keys := make([]string, 0, len(v.Fields))
		for k := range v.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+ToString(v.Fields[k]))
		}
		return "struct {" + strings.Join(parts, ", ") + "}"
	case FunctionValue:
		return fmt.Sprintf("<fn %d>", v.ID)
	case BuiltinValue:
		return "<builtin " + v.Name + ">"
	default:
		return fmt.Sprintf("<unknown %T>", val)
	}
}
