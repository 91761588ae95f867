package cmd

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cwbudde/go-joy/internal/codegen"
	"github.com/cwbudde/go-joy/internal/interp"
	"github.com/cwbudde/go-joy/internal/value"
	"github.com/spf13/cobra"
)

var (
	testPattern string
	testCompile bool
)

var testCmd = &cobra.Command{
	Use:   "test DIR",
	Short: "Run the .joy files under a directory and check expectations",
	Long: `Run every .joy file under DIR and compare its output against the
conventional expected comment:

  (* expected:
  5
  [1 4 9]
  *)

With --compile each file is additionally lowered to C, built and
executed; the binary's output must match the evaluator's output
byte for byte.

Exit status is non-zero if any file fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runTests,
}

func init() {
	rootCmd.AddCommand(testCmd)

	testCmd.Flags().StringVar(&testPattern, "pattern", "*.joy", "glob for test files")
	testCmd.Flags().BoolVar(&testCompile, "compile", false, "also compile each file and compare outputs")
}

func runTests(_ *cobra.Command, args []string) error {
	dir := args[0]
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, merr := filepath.Match(testPattern, d.Name())
		if merr != nil {
			return merr
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	sort.Strings(files)
	if len(files) == 0 {
		return fmt.Errorf("no files matching %q under %s", testPattern, dir)
	}

	failed := 0
	for _, path := range files {
		if err := runOneTest(path); err != nil {
			failed++
			fmt.Printf("FAIL %s\n", path)
			fmt.Printf("     %v\n", err)
		} else {
			fmt.Printf("ok   %s\n", path)
		}
	}
	fmt.Printf("%d/%d passed\n", len(files)-failed, len(files))
	if failed > 0 {
		return fmt.Errorf("%d test(s) failed", failed)
	}
	return nil
}

func runOneTest(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	source := string(content)
	expected, hasExpected := parseExpected(source)

	prog, perr := interp.ParseSource(source)
	if perr != nil {
		return perr
	}

	var out bytes.Buffer
	i := interp.New(&out, interp.WithArgs([]string{path}))
	if err := i.LoadLibrary(); err != nil {
		return err
	}
	if err := i.Run(prog); err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if hasExpected && out.String() != expected {
		return fmt.Errorf("output mismatch:\ngot:  %q\nwant: %q", out.String(), expected)
	}
	if verbose {
		fmt.Printf("     output: %q\n", out.String())
	}

	if testCompile {
		got, err := buildAndRunBinary(path, prog)
		if err != nil {
			return err
		}
		if !bytes.Equal(got, out.Bytes()) {
			return fmt.Errorf("compiled output differs from evaluator:\ngot:  %q\nwant: %q",
				got, out.String())
		}
	}
	return nil
}

// buildAndRunBinary lowers the program into a temporary directory,
// builds it with the system C compiler and returns the binary's
// stdout.
func buildAndRunBinary(path string, prog *value.Program) ([]byte, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	artifact, err := codegen.Generate(prog, name, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("code generation failed: %w", err)
	}
	tmp, err := os.MkdirTemp("", "joy-test-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)

	outDir, err := artifact.WriteTo(tmp)
	if err != nil {
		return nil, err
	}
	if err := buildArtifact(outDir, name); err != nil {
		return nil, err
	}

	var stdout bytes.Buffer
	run := exec.Command(filepath.Join(outDir, name))
	run.Stdout = &stdout
	run.Stderr = os.Stderr
	if err := run.Run(); err != nil {
		return nil, fmt.Errorf("compiled binary failed: %w", err)
	}
	return stdout.Bytes(), nil
}

// parseExpected extracts the expected-output block:
//
//	(* expected:
//	LINE
//	LINE
//	*)
//
// The lines between the marker and the closing comment are the
// expected stdout, each newline-terminated.
func parseExpected(source string) (string, bool) {
	idx := strings.Index(source, "expected:")
	if idx < 0 {
		return "", false
	}
	rest := source[idx+len("expected:"):]
	end := strings.Index(rest, "*)")
	if end < 0 {
		return "", false
	}
	block := strings.TrimPrefix(rest[:end], "\n")
	var sb strings.Builder
	for _, line := range strings.Split(block, "\n") {
		sb.WriteString(strings.TrimRight(line, " \t"))
		sb.WriteString("\n")
	}
	// The final split element is the remainder before *), which is
	// empty for well-formed blocks; drop its extra newline.
	out := strings.TrimSuffix(sb.String(), "\n")
	if out == "" {
		return "", false
	}
	return out, true
}
