package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cwbudde/go-joy/internal/codegen"
	joyerrors "github.com/cwbudde/go-joy/internal/errors"
	"github.com/cwbudde/go-joy/internal/lexer"
	"github.com/cwbudde/go-joy/internal/parser"
	"github.com/spf13/cobra"
)

var (
	outputDir   string
	outputName  string
	runBinary   bool
	noCompile   bool
)

var compileCmd = &cobra.Command{
	Use:   "compile FILE",
	Short: "Compile a Joy file to a native executable via C",
	Long: `Lower a Joy program to C, emit it next to the runtime library, and
build a standalone native executable with the system C compiler.

The output directory DIR/NAME/ holds the executable, the generated
translation unit NAME.c, the runtime sources (byte-identical across
compilations) and a Makefile.

Examples:
  # Compile fib.joy to ./fib/fib
  joy compile fib.joy

  # Choose output directory and executable name
  joy compile fib.joy -o build -n fibonacci

  # Emit C only, without invoking the C compiler
  joy compile fib.joy --no-compile

  # Compile and immediately execute
  joy compile fib.joy --run`,
	Args: cobra.ExactArgs(1),
	RunE: compileScript,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "output directory")
	compileCmd.Flags().StringVarP(&outputName, "name", "n", "", "executable name (default: source basename)")
	compileCmd.Flags().BoolVar(&runBinary, "run", false, "execute the produced binary after building")
	compileCmd.Flags().BoolVar(&noCompile, "no-compile", false, "emit C sources without invoking the C compiler")
}

func compileScript(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	l := lexer.New(source)
	p := parser.New(l)
	prog := p.ParseProgram()
	if diags := joyerrors.FromParser(p, source, filename); len(diags) > 0 {
		fmt.Fprint(os.Stderr, joyerrors.FormatAll(diags, true))
		return fmt.Errorf("parsing failed with %d error(s)", len(diags))
	}

	name := outputName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}

	artifact, err := codegen.Generate(prog, name, filepath.Dir(filename))
	if err != nil {
		return fmt.Errorf("code generation failed: %w", err)
	}
	outDir, err := artifact.WriteTo(outputDir)
	if err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", outDir)
	}

	if noCompile {
		return nil
	}

	binPath := filepath.Join(outDir, name)
	if err := buildArtifact(outDir, name); err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Built %s\n", binPath)
	}

	if runBinary {
		run := exec.Command(binPath)
		run.Stdin = os.Stdin
		run.Stdout = os.Stdout
		run.Stderr = os.Stderr
		if err := run.Run(); err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				os.Exit(exitErr.ExitCode())
			}
			return fmt.Errorf("failed to run %s: %w", binPath, err)
		}
	}
	return nil
}

// buildArtifact invokes the system C compiler the same way the
// emitted Makefile does.
func buildArtifact(dir, name string) error {
	cc := os.Getenv("CC")
	if cc == "" {
		cc = "cc"
	}
	cmd := exec.Command(cc, "-O2", "-std=c11", "-o", name,
		name+".c", "joy_runtime.c", "joy_primitives.c", "-lm")
	cmd.Dir = dir
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("C compilation failed: %w", err)
	}
	return nil
}
