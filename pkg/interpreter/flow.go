package interpreter

import "reed/interpreter-go/pkg/runtime"

// FlowKind distinguishes the three ways an evaluation can complete.
type FlowKind int

const (
	FlowValue FlowKind = iota
	FlowBreak
	FlowReturn
)

func (k FlowKind) String() string {
	switch k {
	case FlowValue:
		return "value"
	case FlowBreak:
		return "break"
	case FlowReturn:
		return "return"
	default:
		return "unknown"
	}
}

// Flow is the result of evaluating a statement or expression: a produced
// value, a break-with-value, or a return-with-value. Non-value flows
// short-circuit the enclosing evaluation and propagate unchanged until
// the nearest loop (break) or call (return) consumes them.
type Flow struct {
	Kind  FlowKind
	Value runtime.Value
}

func valueFlow(val runtime.Value) Flow {
	return Flow{Kind: FlowValue, Value: val}
}

func breakFlow(val runtime.Value) Flow {
	return Flow{Kind: FlowBreak, Value: val}
}

func returnFlow(val runtime.Value) Flow {
	return Flow{Kind: FlowReturn, Value: val}
}

func nullFlow() Flow {
	return valueFlow(runtime.NullValue{})
}
