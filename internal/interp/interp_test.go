package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/go-joy/internal/value"
)

// runJoy executes a source string on a fresh evaluator with the
// standard library loaded and returns everything written to the
// output, including the autoput of a value left on top.
func runJoy(t *testing.T, source string) string {
	t.Helper()
	out, err := tryJoy(source)
	if err != nil {
		t.Fatalf("evaluation error: %v", err)
	}
	return out
}

func tryJoy(source string) (string, error) {
	var buf bytes.Buffer
	i := New(&buf, WithArgs([]string{"test"}), WithInput(strings.NewReader("")))
	if err := i.LoadLibrary(); err != nil {
		return "", err
	}
	prog, err := ParseSource(source)
	if err != nil {
		return "", err
	}
	if err := i.Run(prog); err != nil {
		return buf.String(), err
	}
	return buf.String(), nil
}

// stackAfter runs a source string without autoput and returns the
// final stack, bottom first.
func stackAfter(t *testing.T, source string) []value.Value {
	t.Helper()
	var buf bytes.Buffer
	i := New(&buf, WithArgs([]string{"test"}), WithInput(strings.NewReader("")))
	if err := i.LoadLibrary(); err != nil {
		t.Fatalf("standard library: %v", err)
	}
	prog, err := ParseSource(source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if err := i.RunTerms(prog); err != nil {
		t.Fatalf("evaluation error: %v", err)
	}
	return i.Stack()
}

func wantStack(t *testing.T, source string, want ...string) {
	t.Helper()
	stack := stackAfter(t, source)
	if len(stack) != len(want) {
		t.Fatalf("stack depth = %d, want %d (stack: %v)", len(stack), len(want), stack)
	}
	for k, w := range want {
		if stack[k].String() != w {
			t.Errorf("stack[%d] = %s, want %s", k, stack[k], w)
		}
	}
}

// The end-to-end scenarios: a fresh evaluator with autoput on.
func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"arithmetic", "2 3 + .", "5\n"},
		{"map over list", "[1 2 3] [dup *] map .", "[1 4 9]\n"},
		{"factorial via primrec", "5 [1] [*] primrec .", "120\n"},
		{"type-preserving filter", `"test" ['t <] filter .`, "\"es\"\n"},
		{"set intersection via and", "{0 2 4} {1 2 3} and .", "{2}\n"},
		{"sum via linrec", "[1 2 3 4] [null] [pop 0] [uncons] [+] linrec .", "10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := runJoy(t, tt.input)
			if output != tt.expected {
				t.Errorf("output mismatch:\ngot:  %q\nwant: %q", output, tt.expected)
			}
		})
	}
}

func TestAutoputPrintsLeftoverTop(t *testing.T) {
	output := runJoy(t, "2 3 +")
	if output != "5\n" {
		t.Errorf("autoput output = %q, want %q", output, "5\n")
	}
	if output := runJoy(t, "1 2 3 . pop pop"); output != "3\n" {
		t.Errorf("output = %q, want just the printed top", output)
	}
}

func TestDefinitionsInstallWhenReached(t *testing.T) {
	output := runJoy(t, `
DEFINE sqr == dup * .
3 sqr .
DEFINE sqr == dup + .
3 sqr .`)
	if output != "9\n6\n" {
		t.Errorf("output = %q, want %q (later definition must shadow)", output, "9\n6\n")
	}
}

func TestConstAndLibraInstall(t *testing.T) {
	output := runJoy(t, "CONST pi == 3.14 . LIBRA twopi == pi pi + . twopi .")
	if output != "6.28\n" {
		t.Errorf("output = %q, want %q", output, "6.28\n")
	}
}

func TestUndefinedWordIsFatalByDefault(t *testing.T) {
	_, err := tryJoy("nosuchword")
	if err == nil {
		t.Fatal("expected an undefined-word error")
	}
	re, ok := err.(*RuntimeError)
	if !ok || re.Kind != ErrUndefined {
		t.Fatalf("error = %v, want undefined-word RuntimeError", err)
	}
}

func TestUndeferrorOffSkipsAndRecords(t *testing.T) {
	output := runJoy(t, "0 setundeferror nosuchword 1 . undefs .")
	if output != "1\n[\"nosuchword\"]\n" {
		t.Errorf("output = %q", output)
	}
}

func TestUserDefShadowsPrimitiveAndUnassign(t *testing.T) {
	output := runJoy(t, `
DEFINE succ == 100 + .
1 succ .
[succ] unassign
1 succ .`)
	if output != "101\n2\n" {
		t.Errorf("output = %q, want %q", output, "101\n2\n")
	}
}

func TestFloatWordsDeferToDictionary(t *testing.T) {
	output := runJoy(t, "DEFINE inf == 42 . inf .")
	if output != "42\n" {
		t.Errorf("output = %q, want %q (user definition shadows inf)", output, "42\n")
	}
	output = runJoy(t, "inf 0.0 > .")
	if output != "true\n" {
		t.Errorf("output = %q, want %q", output, "true\n")
	}
}

func TestStackUnderflowReportsOp(t *testing.T) {
	_, err := tryJoy("1 +")
	if err == nil {
		t.Fatal("expected underflow error")
	}
	re, ok := err.(*RuntimeError)
	if !ok || re.Kind != ErrUnderflow || re.Op != "+" {
		t.Fatalf("error = %v, want underflow on +", err)
	}
}

func TestTypeErrorReportsKinds(t *testing.T) {
	_, err := tryJoy(`"s" 1 rem`)
	if err == nil {
		t.Fatal("expected type error")
	}
	re, ok := err.(*RuntimeError)
	if !ok || re.Kind != ErrType {
		t.Fatalf("error = %v, want type RuntimeError", err)
	}
	if !strings.Contains(re.Msg, "string") {
		t.Errorf("message %q does not name the offending kind", re.Msg)
	}
}

func TestDivisionByZero(t *testing.T) {
	for _, src := range []string{"1 0 /", "1 0 rem", "1 0 div"} {
		_, err := tryJoy(src)
		re, ok := err.(*RuntimeError)
		if !ok || re.Kind != ErrDomain {
			t.Errorf("%q: error = %v, want domain error", src, err)
		}
	}
}

func TestQuitAndAbort(t *testing.T) {
	_, err := tryJoy("quit")
	exit, ok := err.(*ExitError)
	if !ok || exit.Code != 0 {
		t.Fatalf("quit error = %v, want exit 0", err)
	}
	_, err = tryJoy("abort")
	exit, ok = err.(*ExitError)
	if !ok || exit.Code != 1 {
		t.Fatalf("abort error = %v, want exit 1", err)
	}
}

func TestArgcArgv(t *testing.T) {
	output := runJoy(t, "argc . argv .")
	if output != "1\n[\"test\"]\n" {
		t.Errorf("output = %q", output)
	}
}

func TestStandardLibraryWords(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"[1 2 3 4] sum .", "10\n"},
		{"[1 2 3 4] product .", "24\n"},
		{"[5 1 9 3] maxlist .", "9\n"},
		{"[5 1 9 3] minlist .", "1\n"},
		{"[[1 2] [3] [] [4 5]] flatten .", "[1 2 3 4 5]\n"},
		{"[1 2 3] reverselist .", "[3 2 1]\n"},
		{"[1 2 3] second .", "2\n"},
		{"[1 2 3] last .", "3\n"},
		{"4 even .", "true\n"},
		{"3 odd .", "true\n"},
		{"5 sqr .", "25\n"},
		{"7 unitlist .", "[7]\n"},
		{"1 2 pairlist .", "[1 2]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if output := runJoy(t, tt.input); output != tt.expected {
				t.Errorf("output = %q, want %q", output, tt.expected)
			}
		})
	}
}
