package runtime

// BuiltinNames lists the host operations every root scope exposes. The
// resolver pre-defines these as builtin symbols; the interpreter's
// dispatch table implements them under the same names.
func BuiltinNames() []string {
	return []string{
		"array",
		"array_len",
		"array_push",
		"exit",
		"println",
		"string_concat",
		"string_len",
		"string_to_int",
		"struct",
		"to_string",
	}
}
