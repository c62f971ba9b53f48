package interpreter

import (
	"errors"
	"fmt"
	"io"
	"os"

	"reed/interpreter-go/pkg/ast"
	"reed/interpreter-go/pkg/runtime"
)

// Interpreter walks a resolved Reed syntax graph. The function table it
// owns is process-wide relative to the program: it outlives any single
// call frame and is referenced by id from function values.
type Interpreter struct {
	global    *runtime.Environment
	functions map[runtime.FuncID]*ast.FunctionDefinition
	funcIDs   map[ast.NodeID]runtime.FuncID
	nextFunc  runtime.FuncID
	builtins  map[string]builtinFunc

	// Stdout receives println output; tests swap in a buffer.
	Stdout io.Writer
}

// New returns an interpreter whose global environment is a child of the
// builtin scope. Top-level statements bind directly in the global
// environment, which is also where function call frames root; that is
// what makes top-level definitions (and recursion) visible from function
// bodies while caller locals stay invisible.
func New() *Interpreter {
	builtinEnv := runtime.NewEnvironment(nil)
	for _, name := range runtime.BuiltinNames() {
		builtinEnv.Define(name, runtime.BuiltinValue{Name: name})
	}
	return &Interpreter{
		global:    builtinEnv.Extend(),
		functions: make(map[runtime.FuncID]*ast.FunctionDefinition),
		funcIDs:   make(map[ast.NodeID]runtime.FuncID),
		builtins:  builtinTable(),
		Stdout:    os.Stdout,
	}
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// exitSignal unwinds the whole evaluation when the program calls exit.
// Unlike break/return it is not part of the Flow model: no construct may
// consume it except EvaluateModule itself.
type exitSignal struct {
	status int
}

func (e exitSignal) Error() string {
	return fmt.Sprintf("exit with status %d", e.status)
}

// EvaluateModule executes the module's statements in the global scope
// and returns the last produced value plus the process exit status. It
// requires a prior clean resolve pass; callers must not evaluate a
// module that produced resolver diagnostics.
func (i *Interpreter) EvaluateModule(module *ast.Module) (runtime.Value, int, error) {
	env := i.global
	var last runtime.Value = runtime.NullValue{}
	for _, stmt := range module.Body {
		flow, err := i.evalStatement(stmt, env)
		if err != nil {
			var exit exitSignal
			if errors.As(err, &exit) {
				return last, exit.status, nil
			}
			return nil, 1, err
		}
		if flow.Kind != FlowValue {
			// Resolver and evaluator scope break to loops and return to
			// calls; a signal surfacing here is a bug, not a user error.
			return nil, 1, fmt.Errorf("internal: %s signal escaped the top level", flow.Kind)
		}
		last = flow.Value
	}
	return last, 0, nil
}

func errAt(pos ast.Position, format string, args ...any) error {
	return fmt.Errorf("%s (at %d:%d)", fmt.Sprintf(format, args...), pos.Line, pos.Column)
}
