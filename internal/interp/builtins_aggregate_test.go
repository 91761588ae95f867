package interp

import (
	"strings"
	"testing"
)

func TestAggregateBasics(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"[1 2 3] first .", "1\n"},
		{"[1 2 3] rest .", "[2 3]\n"},
		{`"abc" first .`, "'a\n"},
		{`"abc" rest .`, "\"bc\"\n"},
		{"{2 5 7} first .", "2\n"},
		{"{2 5 7} rest .", "{5 7}\n"},
		{"0 [1 2] cons .", "[0 1 2]\n"},
		{"[1 2] 0 swons .", "[0 1 2]\n"},
		{`'a "bc" cons .`, "\"abc\"\n"},
		{"3 {1 2} cons .", "{1 2 3}\n"},
		{"[1 2 3] uncons . .", "[2 3]\n1\n"},
		{"[1 2 3] unswons . .", "1\n[2 3]\n"},
		{"[1 2] [3 4] concat .", "[1 2 3 4]\n"},
		{`"ab" "cd" concat .`, "\"abcd\"\n"},
		{"{1 2} {2 3} concat .", "{1 2 3}\n"},
		{"[1 2] [3 4] swoncat .", "[3 4 1 2]\n"},
		{"0 [1 2] [3 4] enconcat .", "[1 2 0 3 4]\n"},
		{`'- "ab" "cd" enconcat .`, "\"ab-cd\"\n"},
		{"[4 5 6] size .", "3\n"},
		{`"hello" size .`, "5\n"},
		{"{1 3 5 7} size .", "4\n"},
		{"[10 20 30] 1 at .", "20\n"},
		{"1 [10 20 30] of .", "20\n"},
		{`"abc" 2 at .`, "'c\n"},
		{"{2 5 9} 1 at .", "5\n"},
		{"[1 2 3 4] 2 take .", "[1 2]\n"},
		{"[1 2 3 4] 2 drop .", "[3 4]\n"},
		{`"abcd" 3 take .`, "\"abc\"\n"},
		{`"abcd" 3 drop .`, "\"d\"\n"},
		{"{1 2 3 4} 2 take .", "{1 2}\n"},
		{"{1 2 3 4} 2 drop .", "{3 4}\n"},
		{"2 [1 2 3] in .", "true\n"},
		{"9 [1 2 3] in .", "false\n"},
		{"[1 2 3] 2 has .", "true\n"},
		{"{1 2} 2 has .", "true\n"},
		{"{1 2} 9 has .", "false\n"},
		{`"abc" 'b has .`, "true\n"},
		{"[1 2 3] reverse .", "[3 2 1]\n"},
		{`"abc" reverse .`, "\"cba\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if output := runJoy(t, tt.input); output != tt.expected {
				t.Errorf("output = %q, want %q", output, tt.expected)
			}
		})
	}
}

// Boundary behaviour of the empty aggregate: first/rest/uncons are
// errors, null is true, size is 0.
func TestEmptyAggregateBoundaries(t *testing.T) {
	for _, src := range []string{
		"[] first", "[] rest", "[] uncons",
		`"" first`, `"" rest`, "{} first", "{} rest",
	} {
		_, err := tryJoy(src)
		re, ok := err.(*RuntimeError)
		if !ok || re.Kind != ErrDomain {
			t.Errorf("%q: error = %v, want domain error", src, err)
		}
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"[] null .", "true\n"},
		{`"" null .`, "true\n"},
		{"{} null .", "true\n"},
		{"0 null .", "true\n"},
		{"0.0 null .", "true\n"},
		{"false null .", "true\n"},
		{"[] size .", "0\n"},
		{"[] small .", "true\n"},
		{"[1] small .", "true\n"},
		{"[1 2] small .", "false\n"},
		{"{} small .", "true\n"},
		{"[1 2 3] size null not [1 2 3] size 0 > = .", "true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if output := runJoy(t, tt.input); output != tt.expected {
				t.Errorf("output = %q, want %q", output, tt.expected)
			}
		})
	}
}

func TestSetConsDomainErrors(t *testing.T) {
	for _, src := range []string{"64 {1} cons", "-1 {1} cons", `"x" {1} cons`} {
		_, err := tryJoy(src)
		if err == nil {
			t.Errorf("%q: expected error", src)
		}
	}
}

func TestIndexOutOfBounds(t *testing.T) {
	for _, src := range []string{"[1 2] 5 at", "[1 2] -1 at", `"ab" 2 at`, "{1} 1 at"} {
		_, err := tryJoy(src)
		re, ok := err.(*RuntimeError)
		if !ok || re.Kind != ErrDomain {
			t.Errorf("%q: error = %v, want domain error", src, err)
		}
	}
}

func TestConcatKindMismatch(t *testing.T) {
	_, err := tryJoy(`[1] "a" concat`)
	re, ok := err.(*RuntimeError)
	if !ok || re.Kind != ErrDomain {
		t.Fatalf("error = %v, want domain error", err)
	}
	// A bracket literal parses to the QUOTATION variant.
	if !strings.Contains(re.Msg, "quotation") || !strings.Contains(re.Msg, "string") {
		t.Errorf("message %q does not name both kinds", re.Msg)
	}
}

func TestComparisonPrimitives(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 2 < .", "true\n"},
		{"2 2 <= .", "true\n"},
		{"3 2 > .", "true\n"},
		{"1 2 >= .", "false\n"},
		{"2 2.0 = .", "true\n"},
		{"1 2 != .", "true\n"},
		{"[1 2] [1 2] equal .", "true\n"},
		{"1 2 compare .", "-1\n"},
		{"2 2 compare .", "0\n"},
		{"3 2 compare .", "1\n"},
		{`"abc" "abd" compare .`, "-1\n"},
		{"'a 97 = .", "true\n"},
		{"{0 2} 5 = .", "true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if output := runJoy(t, tt.input); output != tt.expected {
				t.Errorf("output = %q, want %q", output, tt.expected)
			}
		})
	}
}

func TestLogicPrimitives(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"true false and .", "false\n"},
		{"true false or .", "true\n"},
		{"true true xor .", "false\n"},
		{"true not .", "false\n"},
		{"{1 2} {2 3} or .", "{1 2 3}\n"},
		{"{1 2} {2 3} xor .", "{1 3}\n"},
		{"{0} not {0} and .", "{}\n"},
		{"3 0 and .", "false\n"},
		{"3 1 and .", "true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if output := runJoy(t, tt.input); output != tt.expected {
				t.Errorf("output = %q, want %q", output, tt.expected)
			}
		})
	}
}

func TestTypePredicates(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"3 integer . pop", "true\n"},
		{"3.0 integer . pop", "false\n"},
		{"3.0 float . pop", "true\n"},
		{"'c char . pop", "true\n"},
		{"true logical . pop", "true\n"},
		{`"s" string . pop`, "true\n"},
		{"{1} set . pop", "true\n"},
		{"[1] list . pop", "true\n"},
		{"3 leaf . pop", "true\n"},
		{"[3] leaf . pop", "false\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if output := runJoy(t, tt.input); output != tt.expected {
				t.Errorf("output = %q, want %q", output, tt.expected)
			}
		})
	}
}
