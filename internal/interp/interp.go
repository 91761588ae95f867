// Package interp implements the Joy evaluator: the operand stack, the
// dictionary, symbol dispatch and the full primitive set, including
// the combinators and recursion schemes.
package interp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/cwbudde/go-joy/internal/value"
)

// Interp is the evaluator state: the operand stack, the dictionary,
// the process-wide flags and the program arguments. One Interp value
// is threaded through every primitive invocation; there are no
// package-level globals.
type Interp struct {
	stack     []value.Value
	dict      *Dictionary
	out       io.Writer
	errw      io.Writer
	in        *bufio.Reader
	args      []string
	undefs    []string
	rng       *rand.Rand
	included  map[string]bool
	startTime time.Time

	autoput    bool
	undeferror bool
	traceGC    bool
	echo       int64
}

// Option configures an Interp at construction time.
type Option func(*Interp)

// WithArgs sets the program arguments reachable via argc/argv.
// By convention args[0] is the script name.
func WithArgs(args []string) Option {
	return func(i *Interp) {
		i.args = append([]string(nil), args...)
	}
}

// WithInput sets the reader used by get, fgetch on stdin, and
// friends. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(i *Interp) {
		i.in = bufio.NewReader(r)
	}
}

// WithErrOutput sets the writer used for traces and warnings.
// Defaults to os.Stderr.
func WithErrOutput(w io.Writer) Option {
	return func(i *Interp) {
		i.errw = w
	}
}

// New creates a fresh evaluator writing program output to out.
// The standard library is NOT loaded; call LoadLibrary for the full
// startup dictionary.
func New(out io.Writer, opts ...Option) *Interp {
	i := &Interp{
		dict:       NewDictionary(),
		out:        out,
		errw:       os.Stderr,
		in:         bufio.NewReader(os.Stdin),
		rng:        rand.New(rand.NewSource(1)),
		included:   make(map[string]bool),
		startTime:  time.Now(),
		autoput:    true,
		undeferror: true,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Dict exposes the dictionary, used by the code generator to resolve
// user definitions.
func (i *Interp) Dict() *Dictionary {
	return i.dict
}

// Stack returns a copy of the operand stack, bottom first.
func (i *Interp) Stack() []value.Value {
	return append([]value.Value(nil), i.stack...)
}

// Run executes a parsed program: definition blocks install their
// clauses, every other term executes in order. With autoput on, a
// value left on top of the stack after the final term is printed and
// popped.
func (i *Interp) Run(prog *value.Program) error {
	if err := i.RunTerms(prog); err != nil {
		return err
	}
	if i.autoput && len(i.stack) > 0 {
		top := i.stack[len(i.stack)-1]
		i.stack = i.stack[:len(i.stack)-1]
		fmt.Fprintln(i.out, top.String())
	}
	return nil
}

// RunTerms executes a program without the trailing autoput. Used for
// include, the standard library and nested evaluation.
func (i *Interp) RunTerms(prog *value.Program) error {
	for _, t := range prog.Terms {
		if t.Def != nil {
			i.installDef(t.Def)
			continue
		}
		if err := i.executeTerm(t.Value); err != nil {
			return err
		}
	}
	return nil
}

// installDef installs all clauses of a definition block atomically,
// in clause order.
func (i *Interp) installDef(def *value.DefBlock) {
	for _, c := range def.Clauses {
		i.dict.Define(c.Name, def.Module, c.Body)
	}
}

// executeTerm executes a single term: symbols dispatch through the
// dictionary, everything else pushes itself.
func (i *Interp) executeTerm(v value.Value) error {
	if sym, ok := v.(*value.SymbolValue); ok {
		return i.executeSymbol(sym.Name)
	}
	i.push(v)
	return nil
}

// executeSymbol resolves and runs a word. Resolution order: user
// definitions, then primitives, then the float spellings inf/-inf/nan
// (which the scanner leaves as identifiers so user definitions can
// shadow them). Unknown words are fatal under undeferror, otherwise
// recorded and skipped.
func (i *Interp) executeSymbol(name string) error {
	if i.echo >= 2 {
		fmt.Fprintf(i.errw, "\t%s\n", name)
	}

	if entry, ok := i.dict.Lookup(name); ok {
		return i.executeSequence(entry.Body)
	}
	if prim, ok := primTable[name]; ok {
		return prim(i)
	}
	switch name {
	case "inf":
		i.push(&value.FloatValue{Value: math.Inf(1)})
		return nil
	case "-inf":
		i.push(&value.FloatValue{Value: math.Inf(-1)})
		return nil
	case "nan":
		i.push(&value.FloatValue{Value: math.NaN()})
		return nil
	}

	if i.undeferror {
		return undefinedErr(name)
	}
	i.undefs = append(i.undefs, name)
	return nil
}

// executeSequence runs a term sequence, the body of a user word or of
// a quotation invoked by a combinator.
func (i *Interp) executeSequence(terms []value.Value) error {
	for _, t := range terms {
		if err := i.executeTerm(t); err != nil {
			return err
		}
	}
	return nil
}
