package runtime

import "testing"

func TestToStringScalars(t *testing.T) {
	cases := []struct {
		val  Value
		want string
	}{
		{ErrorValue{}, "<error>"},
		{NullValue{}, "null"},
		{IntValue{Val: -7}, "-7"},
		{StringValue{Val: "hi"}, `"hi"`},
		{BoolValue{Val: true}, "true"},
		{BoolValue{Val: false}, "false"},
		{BuiltinValue{Name: "println"}, "<builtin println>"},
	}
	for _, tc := range cases {
		if got := ToString(tc.val); got != tc.want {
			t.Fatalf("ToString(%#v) = %q, want %q", tc.val, got, tc.want)
		}
	}
}

func TestToStringArrayRecurses(t *testing.T) {
	arr := &ArrayValue{Elements: []Value{
		IntValue{Val: 1},
		StringValue{Val: "two"},
		&ArrayValue{Elements: []Value{NullValue{}}},
	}}
	want := `[1, "two", [null]]`
	if got := ToString(arr); got != want {
		t.Fatalf("ToString = %q, want %q", got, want)
	}
}

func TestToStringStructSortsKeys(t *testing.T) {
	s := NewStruct()
	s.Fields["b"] = IntValue{Val: 2}
	s.Fields["a"] = IntValue{Val: 1}
	want := "struct {a: 1, b: 2}"
	if got := ToString(s); got != want {
		t.Fatalf("ToString = %q, want %q", got, want)
	}
}

func TestArrayAliasesByReference(t *testing.T) {
	arr := NewArray()
	var other Value = arr
	arr.Elements = append(arr.Elements, IntValue{Val: 5})

	aliased := other.(*ArrayValue)
	if len(aliased.Elements) != 1 {
		t.Fatalf("expected aliased array to observe the push, got %#v", aliased.Elements)
	}
}

func TestBuiltinNamesSorted(t *testing.T) {
	names := BuiltinNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("builtin names must be sorted and unique, got %v", names)
		}
	}
}
