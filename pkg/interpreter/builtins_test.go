package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"reed/interpreter-go/pkg/ast"
	"reed/interpreter-go/pkg/runtime"
)

func TestArrayBuiltins(t *testing.T) {
	module := ast.Mod(
		ast.Let("arr", ast.CallN("array")),
		ast.CallN("array_push", ast.ID("arr"), ast.Int(10)),
		ast.CallN("array_push", ast.ID("arr"), ast.Int(20)),
		ast.CallN("array_len", ast.ID("arr")),
	)
	wantInt(t, evalModule(t, module), 2)
}

func TestArrayPushYieldsNull(t *testing.T) {
	module := ast.Mod(
		ast.Let("arr", ast.CallN("array")),
		ast.CallN("array_push", ast.ID("arr"), ast.Int(1)),
	)
	if _, ok := evalModule(t, module).(runtime.NullValue); !ok {
		t.Fatalf("array_push must yield null")
	}
}

func TestArrayPushRequiresArray(t *testing.T) {
	module := ast.Mod(ast.CallN("array_push", ast.Int(1), ast.Int(2)))
	err := evalModuleErr(t, module)
	if !strings.Contains(err.Error(), "array_push") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStringConcat(t *testing.T) {
	cases := []struct {
		left, right ast.Expression
		want        string
	}{
		{ast.Str("ab"), ast.Str("cd"), "abcd"},
		{ast.Str("n="), ast.Int(42), "n=42"},
		{ast.Int(1), ast.Int(2), "12"},
	}
	for _, tc := range cases {
		val := evalModule(t, ast.Mod(ast.CallN("string_concat", tc.left, tc.right)))
		sv, ok := val.(runtime.StringValue)
		if !ok || sv.Val != tc.want {
			t.Fatalf("unexpected value %#v, want %q", val, tc.want)
		}
	}
}

func TestStringConcatRejectsBool(t *testing.T) {
	err := evalModuleErr(t, ast.Mod(ast.CallN("string_concat", ast.Str("x"), ast.Bool(true))))
	if !strings.Contains(err.Error(), "string_concat") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStringLenCountsRunes(t *testing.T) {
	wantInt(t, evalModule(t, ast.Mod(ast.CallN("string_len", ast.Str("héllo")))), 5)
}

func TestPrintlnSubstitutesPlaceholders(t *testing.T) {
	module := ast.Mod(
		ast.CallN("println", ast.Str("x = {}, y = {}"), ast.Int(3), ast.Str("hi")),
	)
	mustResolve(t, module)

	interp := New()
	var out bytes.Buffer
	interp.Stdout = &out
	if _, _, err := interp.EvaluateModule(module); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); got != "x = 3, y = \"hi\"\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPrintlnWithoutPlaceholders(t *testing.T) {
	module := ast.Mod(ast.CallN("println", ast.Str("plain")))
	mustResolve(t, module)

	interp := New()
	var out bytes.Buffer
	interp.Stdout = &out
	if _, _, err := interp.EvaluateModule(module); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); got != "plain\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPrintlnPlaceholderCountMismatchIsFatal(t *testing.T) {
	module := ast.Mod(ast.CallN("println", ast.Str("{} and {}"), ast.Int(1)))
	err := evalModuleErr(t, module)
	if !strings.Contains(err.Error(), "2 placeholder(s)") || !strings.Contains(err.Error(), "1 argument(s)") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestToStringBuiltin(t *testing.T) {
	cases := []struct {
		arg  ast.Expression
		want string
	}{
		{ast.Int(7), "7"},
		{ast.Bool(true), "true"},
		{ast.Null(), "null"},
		{ast.Str("hi"), "\"hi\""},
	}
	for _, tc := range cases {
		val := evalModule(t, ast.Mod(ast.CallN("to_string", tc.arg)))
		sv, ok := val.(runtime.StringValue)
		if !ok || sv.Val != tc.want {
			t.Fatalf("unexpected value %#v, want %q", val, tc.want)
		}
	}
}

func TestStringToInt(t *testing.T) {
	wantInt(t, evalModule(t, ast.Mod(ast.CallN("string_to_int", ast.Str(" 42 ")))), 42)

	val := evalModule(t, ast.Mod(ast.CallN("string_to_int", ast.Str("nope"))))
	if _, ok := val.(runtime.NullValue); !ok {
		t.Fatalf("string_to_int must yield null on parse failure, got %#v", val)
	}
}

func TestExitStopsEvaluationWithStatus(t *testing.T) {
	module := ast.Mod(
		ast.Let("a", ast.Int(1)),
		ast.CallN("exit", ast.Int(3)),
		ast.Let("unreached", ast.CallN("array_len", ast.Int(0))),
	)
	mustResolve(t, module)
	_, status, err := New().EvaluateModule(module)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != 3 {
		t.Fatalf("unexpected exit status %d", status)
	}
}

func TestExitRequiresInt(t *testing.T) {
	err := evalModuleErr(t, ast.Mod(ast.CallN("exit", ast.Str("1"))))
	if !strings.Contains(err.Error(), "exit") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuiltinArityMismatchIsFatal(t *testing.T) {
	err := evalModuleErr(t, ast.Mod(ast.CallN("array_len")))
	if !strings.Contains(err.Error(), "array_len") || !strings.Contains(err.Error(), "got 0") {
		t.Fatalf("unexpected error: %v", err)
	}
}
