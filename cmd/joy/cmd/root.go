package cmd

import (
	"errors"
	"fmt"
	"os"

	joyerrors "github.com/cwbudde/go-joy/internal/errors"
	"github.com/cwbudde/go-joy/internal/interp"
	"github.com/cwbudde/go-joy/internal/lexer"
	"github.com/cwbudde/go-joy/internal/parser"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose  bool
	evalExpr string
)

var rootCmd = &cobra.Command{
	Use:   "joy",
	Short: "Joy interpreter and compiler",
	Long: `go-joy is a Go implementation of Manfred von Thun's Joy, a purely
concatenative stack-based functional language.

Programs are sequences of operators and quotations transforming an
implicit data stack. The same parsed form drives two execution paths:
a tree-walking evaluator, and a C code generator producing standalone
native executables linked against a small runtime.`,
	Version: Version,
	Args:    cobra.ArbitraryArgs,
	RunE: func(_ *cobra.Command, args []string) error {
		if evalExpr != "" {
			return runSource(evalExpr, "<eval>", append([]string{"<eval>"}, args...))
		}
		if len(args) >= 1 {
			return runFile(args[0], args)
		}
		return fmt.Errorf("provide a file path, or use -e for an inline expression")
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "execute an inline expression string")
}

// runFile executes a Joy source file. The filename becomes argv[0]
// within the program.
func runFile(filename string, args []string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return runSource(string(content), filename, args)
}

// runSource is the shared parse-check-execute pipeline behind the
// root command and run subcommand.
func runSource(source, filename string, args []string) error {
	l := lexer.New(source)
	p := parser.New(l)
	prog := p.ParseProgram()

	if diags := joyerrors.FromParser(p, source, filename); len(diags) > 0 {
		fmt.Fprint(os.Stderr, joyerrors.FormatAll(diags, true))
		return fmt.Errorf("parsing failed with %d error(s)", len(diags))
	}

	i := interp.New(os.Stdout, interp.WithArgs(args))
	if err := i.LoadLibrary(); err != nil {
		return fmt.Errorf("standard library failed to load: %w", err)
	}
	if err := i.Run(prog); err != nil {
		var exit *interp.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
