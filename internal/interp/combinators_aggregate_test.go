package interp

import "testing"

func TestMap(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"[1 2 3] [dup *] map .", "[1 4 9]\n"},
		{"[] [dup *] map .", "[]\n"},
		{`"abc" [succ] map .`, "\"bcd\"\n"},
		{"{1 2 3} [1 +] map .", "{2 3 4}\n"},
		// Non-character results demote a string map to a list.
		{`"ab" [ord] map .`, "[97 98]\n"},
		// The underlying stack is visible to the quotation but
		// restored between elements.
		{"10 [1 2] [+] map . pop", "[11 12]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if output := runJoy(t, tt.input); output != tt.expected {
				t.Errorf("output = %q, want %q", output, tt.expected)
			}
		})
	}
}

func TestFilterAndSplit(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"[1 2 3 4 5] [2 rem 1 =] filter .", "[1 3 5]\n"},
		{`"test" ['t <] filter .`, "\"es\"\n"},
		{"{1 2 3 4} [2 >] filter .", "{3 4}\n"},
		{"[] [true] filter .", "[]\n"},
		{"[1 2 3 4] [2 >] split . .", "[1 2]\n[3 4]\n"},
		{`"abAB" ['a >=] split . .`, "\"AB\"\n\"ab\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if output := runJoy(t, tt.input); output != tt.expected {
				t.Errorf("output = %q, want %q", output, tt.expected)
			}
		})
	}
}

// step visits elements left to right, for lists and for strings.
func TestVisitOrder(t *testing.T) {
	if output := runJoy(t, "[1 2 3] [.] step"); output != "1\n2\n3\n" {
		t.Errorf("step order output = %q", output)
	}
	if output := runJoy(t, `"abc" [putch] step`); output != "abc" {
		t.Errorf("string step output = %q", output)
	}
}

func TestStepAndFold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0 [1 2 3] [+] step .", "6\n"},
		{"[1 2 3 4] 0 [+] fold .", "10\n"},
		{"[1 2 3 4] 1 [*] fold .", "24\n"},
		{"[] 7 [+] fold .", "7\n"},
		{`"abc" 0 [pop succ] fold .`, "3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if output := runJoy(t, tt.input); output != tt.expected {
				t.Errorf("output = %q, want %q", output, tt.expected)
			}
		})
	}
}

func TestSomeAndAll(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"[1 2 3] [2 >] some .", "true\n"},
		{"[1 2 3] [9 >] some .", "false\n"},
		{"[1 2 3] [0 >] all .", "true\n"},
		{"[1 2 3] [2 >] all .", "false\n"},
		{"[] [0 >] some .", "false\n"},
		{"[] [0 >] all .", "true\n"},
		{"{2 4} [even] all .", "true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if output := runJoy(t, tt.input); output != tt.expected {
				t.Errorf("output = %q, want %q", output, tt.expected)
			}
		})
	}
}

func TestTreeCombinators(t *testing.T) {
	if output := runJoy(t, "0 [1 [2 3] [[4]]] [+] treestep ."); output != "10\n" {
		t.Errorf("treestep output = %q, want %q", output, "10\n")
	}
	if output := runJoy(t, "[1 [2 3]] [.] treestep"); output != "1\n2\n3\n" {
		t.Errorf("treestep order output = %q", output)
	}
	// treerec doubles every leaf while keeping the shape.
	output := runJoy(t, "[1 [2 3]] [2 *] [map] treerec .")
	if output != "[2 [4 6]]\n" {
		t.Errorf("treerec output = %q, want %q", output, "[2 [4 6]]\n")
	}
}

func TestArityCombinators(t *testing.T) {
	wantStack(t, "2 3 [+] nullary", "2", "3", "5")
	wantStack(t, "2 3 [+] unary", "2", "5")
	wantStack(t, "2 3 [+] binary", "5")
	wantStack(t, "1 2 3 [+ +] ternary", "6")
	wantStack(t, "2 3 [dup *] unary2", "4", "9")
	wantStack(t, "2 3 4 [dup *] unary3", "4", "9", "16")
	wantStack(t, "2 3 4 5 [dup *] unary4", "4", "9", "16", "25")
	wantStack(t, "10 [2 +] [3 +] cleave", "12", "13")
	wantStack(t, "10 4 [+] [-] cleave", "10", "14", "6")
	wantStack(t, "2 3 [+] app11", "5")
	wantStack(t, "10 1 2 [+] app12", "11", "12")
	wantStack(t, "[1 2] [[+] [-] [*]] construct", "3", "-1", "2")
}

func TestTreerecMapIdiom(t *testing.T) {
	// At a branch, the reified quotation is mapped over the children.
	output := runJoy(t, "[[1] 2 [3 [4]]] [10 *] [map] treerec .")
	if output != "[[10] 20 [30 [40]]]\n" {
		t.Errorf("output = %q", output)
	}
}
