package codegen

import (
	"fmt"
	"strings"
)

// primCNames maps the primitive spellings that are not valid C
// identifier suffixes to their runtime function suffixes. Everything
// else passes through unchanged; joy_primitives.c defines
// joy_prim_<suffix> for each.
var primCNames = map[string]string{
	"+":  "plus",
	"-":  "minus",
	"*":  "mul",
	"/":  "divide",
	"=":  "eq",
	"!=": "ne",
	"<":  "lt",
	"<=": "le",
	">":  "gt",
	">=": "ge",
	".":  "dot",

	// These collide with C keywords or library names as bare
	// suffixes.
	"float":      "float_p",
	"char":       "char_p",
	"string":     "string_p",
	"set":        "set_p",
	"file":       "file_p",
	"fputstring": "fputchars",
}

// primCName returns the joy_prim_* function name for a primitive.
func primCName(name string) string {
	if suffix, ok := primCNames[name]; ok {
		return "joy_prim_" + suffix
	}
	return "joy_prim_" + name
}

// mangleWord turns a Joy word name into a C identifier fragment:
// letters and underscores pass through, digits pass through except as
// the first byte, and everything else becomes _XX with the byte value
// in hex.
func mangleWord(name string) string {
	var sb strings.Builder
	for i := 0; i < len(name); i++ {
		b := name[i]
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b == '_':
			sb.WriteByte(b)
		case b >= '0' && b <= '9':
			if i == 0 {
				fmt.Fprintf(&sb, "_%02x", b)
			} else {
				sb.WriteByte(b)
			}
		default:
			fmt.Fprintf(&sb, "_%02x", b)
		}
	}
	return sb.String()
}
