package interp

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConsoleOutput(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"42 put", "42"},
		{"42 putln", "42\n"},
		{"'x putch", "x"},
		{`"raw text" putchars`, "raw text"},
		{`"quoted" put`, `"quoted"`},
		{"1 2 . .", "2\n1\n"},
		// A dot on the empty stack is a no-op.
		{".", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if output := runJoy(t, tt.input); output != tt.expected {
				t.Errorf("output = %q, want %q", output, tt.expected)
			}
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	src := `"` + path + `" "w" fopen "hello\n" fputchars 'w fputch fclose`
	if output := runJoy(t, src); output != "" {
		t.Errorf("unexpected output %q", output)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(content) != "hello\nw" {
		t.Errorf("file content = %q, want %q", content, "hello\nw")
	}

	src = `"` + path + `" "r" fopen fgets swap fclose .`
	if output := runJoy(t, src); output != "\"hello\\n\"\n" {
		t.Errorf("fgets output = %q", output)
	}
}

func TestFopenFailurePushesFalse(t *testing.T) {
	output := runJoy(t, `"/nonexistent/dir/file" "r" fopen .`)
	if output != "false\n" {
		t.Errorf("output = %q, want %q", output, "false\n")
	}
}

func TestFgetchAndFeof(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(path, []byte("AB"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := `"` + path + `" "r" fopen fgetch . fgetch . fgetch . feof . fclose`
	output := runJoy(t, src)
	if output != "'A\n'B\n-1\ntrue\n" {
		t.Errorf("output = %q, want %q", output, "'A\n'B\n-1\ntrue\n")
	}
}

func TestFreadAndFwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bytes.bin")

	src := `"` + path + `" "w" fopen [65 66 67] fwrite fclose`
	runJoy(t, src)

	src = `"` + path + `" "r" fopen 2 fread swap fclose .`
	if output := runJoy(t, src); output != "[65 66]\n" {
		t.Errorf("fread output = %q, want %q", output, "[65 66]\n")
	}
}

func TestFremoveAndFrename(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := `"` + a + `" "` + b + `" frename .`
	if output := runJoy(t, src); output != "true\n" {
		t.Errorf("frename output = %q", output)
	}
	src = `"` + b + `" fremove .`
	if output := runJoy(t, src); output != "true\n" {
		t.Errorf("fremove output = %q", output)
	}
	src = `"` + b + `" fremove .`
	if output := runJoy(t, src); output != "false\n" {
		t.Errorf("second fremove output = %q", output)
	}
}

func TestInclude(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.joy")
	if err := os.WriteFile(lib, []byte("DEFINE ten == 10 ."), 0o644); err != nil {
		t.Fatal(err)
	}

	src := `"` + lib + `" include ten .`
	if output := runJoy(t, src); output != "10\n" {
		t.Errorf("include output = %q, want %q", output, "10\n")
	}
}

func TestIncludeCycleIsBroken(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.joy")
	b := filepath.Join(dir, "b.joy")
	os.WriteFile(a, []byte(`"`+b+`" include DEFINE va == 1 .`), 0o644)
	os.WriteFile(b, []byte(`"`+a+`" include DEFINE vb == 2 .`), 0o644)

	src := `"` + a + `" include va vb + .`
	if output := runJoy(t, src); output != "3\n" {
		t.Errorf("cyclic include output = %q, want %q", output, "3\n")
	}
}

func TestGetReadsTerm(t *testing.T) {
	var buf bytes.Buffer
	i := New(&buf, WithInput(strings.NewReader("41\n")))
	if err := i.LoadLibrary(); err != nil {
		t.Fatal(err)
	}
	prog, err := ParseSource("get succ .")
	if err != nil {
		t.Fatal(err)
	}
	if err := i.Run(prog); err != nil {
		t.Fatalf("evaluation error: %v", err)
	}
	if buf.String() != "42\n" {
		t.Errorf("output = %q, want %q", buf.String(), "42\n")
	}
}

func TestConversions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"65 chr .", "'A\n"},
		{"321 chr .", "'A\n"},
		{"'A ord .", "65\n"},
		{"65 chr ord .", "65\n"},
		{`"ff" 16 strtol .`, "255\n"},
		{`"-12" 10 strtol .`, "-12\n"},
		{`"0x10" 0 strtol .`, "16\n"},
		{`"2.5" strtod .`, "2.5\n"},
		{"255 'x 0 0 format .", "\"ff\"\n"},
		{"42 'd 6 0 format .", "\"    42\"\n"},
		{"3.14159 'f 0 2 formatf .", "\"3.14\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if output := runJoy(t, tt.input); output != tt.expected {
				t.Errorf("output = %q, want %q", output, tt.expected)
			}
		})
	}
}

func TestReflection(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"dup" intern name .`, "\"dup\"\n"},
		{"3 name .", "\"integer\"\n"},
		{`"abc" name .`, "\"string\"\n"},
		{"[1] first name .", "\"integer\"\n"},
		{`DEFINE sqr == dup * . "sqr" intern body .`, "[dup *]\n"},
		{`"dup" intern body .`, "[]\n"},
		{`DEFINE sqr == dup * . "sqr" intern user .`, "true\n"},
		{`"dup" intern user .`, "false\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if output := runJoy(t, tt.input); output != tt.expected {
				t.Errorf("output = %q, want %q", output, tt.expected)
			}
		})
	}
}

func TestFlags(t *testing.T) {
	if output := runJoy(t, "autoput ."); output != "1\n" {
		t.Errorf("autoput = %q, want 1", output)
	}
	if output := runJoy(t, "0 setautoput 1 2 3"); output != "" {
		t.Errorf("output with autoput off = %q, want empty", output)
	}
	if output := runJoy(t, "undeferror ."); output != "1\n" {
		t.Errorf("undeferror = %q, want 1", output)
	}
	if output := runJoy(t, "2 setecho echo ."); output != "2\n" {
		t.Errorf("echo = %q, want 2", output)
	}
}

func TestMathPrimitives(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0.0 sin .", "0\n"},
		{"0.0 cos .", "1\n"},
		{"0.0 exp .", "1\n"},
		{"9.0 sqrt .", "3\n"},
		{"2.0 10.0 pow .", "1024\n"},
		{"2.5 floor .", "2\n"},
		{"2.5 ceil .", "3\n"},
		{"2.9 trunc .", "2\n"},
		{"-3 abs .", "3\n"},
		{"-3 sign .", "-1\n"},
		{"2.5 neg .", "-2.5\n"},
		{"7 3 min .", "3\n"},
		{"7 3 max .", "7\n"},
		{"4 succ .", "5\n"},
		{"'a succ .", "'b\n"},
		{"4 pred .", "3\n"},
		{"7 2 div . .", "1\n3\n"},
		{"7 2 rem .", "1\n"},
		{"7 2 / .", "3\n"},
		{"7.0 2 / .", "3.5\n"},
		{"1 2.0 + .", "3\n"},
		{"0.5 frexp . .", "0\n0.5\n"},
		{"0.5 1 ldexp .", "1\n"},
		{"2.75 modf . .", "2\n0.75\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if output := runJoy(t, tt.input); output != tt.expected {
				t.Errorf("output = %q, want %q", output, tt.expected)
			}
		})
	}
}

func TestTimeBreakdownRoundTrip(t *testing.T) {
	// mktime inverts localtime up to the normalised fields.
	output := runJoy(t, "86400000 localtime mktime .")
	if output != "86400000\n" {
		t.Errorf("localtime/mktime round trip = %q, want %q", output, "86400000\n")
	}
	output = runJoy(t, "0 gmtime .")
	if output != "[0 0 0 1 1 1970 4 1 0]\n" {
		t.Errorf("gmtime epoch = %q", output)
	}
}

func TestSrandIsDeterministic(t *testing.T) {
	a := runJoy(t, "42 srand rand .")
	b := runJoy(t, "42 srand rand .")
	if a != b {
		t.Errorf("seeded rand differs: %q vs %q", a, b)
	}
}
