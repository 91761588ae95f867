package interp

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/go-joy/internal/lexer"
	"github.com/cwbudde/go-joy/internal/parser"
	"github.com/cwbudde/go-joy/internal/value"
)

func init() {
	registerPrims(map[string]Primitive{
		"name":   primName,
		"intern": primIntern,
		"body":   primBody,
		"user":   primUser,

		"unassign": primUnassign,

		"autoput":       flagGet(func(i *Interp) int64 { return boolFlag(i.autoput) }),
		"undeferror":    flagGet(func(i *Interp) int64 { return boolFlag(i.undeferror) }),
		"echo":          flagGet(func(i *Interp) int64 { return i.echo }),
		"setautoput":    primSetautoput,
		"setundeferror": primSetundeferror,
		"setecho":       primSetecho,
		"undefs":        primUndefs,

		"include": primInclude,
		"get":     primGet,
	})
}

// primName: X -> S. For a symbol, its name; for any other value, the
// name of its kind.
func primName(i *Interp) error {
	v, err := i.pop("name")
	if err != nil {
		return err
	}
	if sym, ok := v.(*value.SymbolValue); ok {
		i.push(&value.StringValue{Value: sym.Name})
		return nil
	}
	i.push(&value.StringValue{Value: v.Kind().String()})
	return nil
}

// primIntern: S -> SYM.
func primIntern(i *Interp) error {
	s, err := i.popString("intern")
	if err != nil {
		return err
	}
	i.push(&value.SymbolValue{Name: s})
	return nil
}

// primBody: SYM -> Q. The body of a user-defined word; the empty
// quotation for primitives and unknown names.
func primBody(i *Interp) error {
	v, err := i.pop("body")
	if err != nil {
		return err
	}
	sym, ok := v.(*value.SymbolValue)
	if !ok {
		return typeErr("body", "symbol", v)
	}
	if entry, ok := i.dict.Lookup(sym.Name); ok {
		i.push(value.NewQuotation(entry.Body...))
		return nil
	}
	i.push(value.NewQuotation())
	return nil
}

// primUser: X -> B, whether X is a user-defined symbol.
func primUser(i *Interp) error {
	v, err := i.pop("user")
	if err != nil {
		return err
	}
	sym, ok := v.(*value.SymbolValue)
	if !ok {
		i.push(value.False)
		return nil
	}
	_, defined := i.dict.Lookup(sym.Name)
	i.push(value.Bool(defined))
	return nil
}

// primUnassign: [SYM] -> , removes the user binding for the quoted
// word.
func primUnassign(i *Interp) error {
	q, err := i.popQuote("unassign")
	if err != nil {
		return err
	}
	if len(q) != 1 {
		return domainErr("unassign", "expected a one-element quotation naming a word")
	}
	sym, ok := q[0].(*value.SymbolValue)
	if !ok {
		return typeErr("unassign", "symbol", q[0])
	}
	i.dict.Unassign(sym.Name)
	return nil
}

func boolFlag(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func flagGet(get func(i *Interp) int64) Primitive {
	return func(i *Interp) error {
		i.push(&value.IntegerValue{Value: get(i)})
		return nil
	}
}

func primSetautoput(i *Interp) error {
	n, err := i.popInt("setautoput")
	if err != nil {
		return err
	}
	i.autoput = n != 0
	return nil
}

func primSetundeferror(i *Interp) error {
	n, err := i.popInt("setundeferror")
	if err != nil {
		return err
	}
	i.undeferror = n != 0
	return nil
}

func primSetecho(i *Interp) error {
	n, err := i.popInt("setecho")
	if err != nil {
		return err
	}
	if n < 0 {
		n = 0
	}
	if n > 3 {
		n = 3
	}
	i.echo = n
	return nil
}

// primUndefs pushes the list of names that were skipped while
// undeferror was off.
func primUndefs(i *Interp) error {
	elements := make([]value.Value, len(i.undefs))
	for k, name := range i.undefs {
		elements[k] = &value.StringValue{Value: name}
	}
	i.push(value.NewList(elements...))
	return nil
}

// primInclude: "FILE" -> , parses and runs a source file in place.
// Re-including a file already seen in this run is a no-op, which
// breaks include cycles.
func primInclude(i *Interp) error {
	path, err := i.popString("include")
	if err != nil {
		return err
	}
	canon := canonicalPath(path)
	if i.included[canon] {
		return nil
	}
	i.included[canon] = true

	content, rerr := os.ReadFile(path)
	if rerr != nil {
		return domainErr("include", "cannot read %s: %v", path, rerr)
	}
	prog, perr := ParseSource(string(content))
	if perr != nil {
		return domainErr("include", "%s: %v", path, perr)
	}
	return i.RunTerms(prog)
}

// primGet reads one term from the input stream and pushes it
// unexecuted. Blank lines are skipped; a line that fails to parse is
// a domain error.
func primGet(i *Interp) error {
	for {
		line, rerr := i.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			prog, perr := ParseSource(line)
			if perr != nil {
				return domainErr("get", "bad input term: %v", perr)
			}
			for _, t := range prog.Terms {
				if t.Value != nil {
					i.push(t.Value)
					return nil
				}
			}
			return domainErr("get", "input held no term")
		}
		if rerr != nil {
			return domainErr("get", "end of input")
		}
	}
}

// ParseSource scans and parses a source string, returning an error
// summarising the first diagnostic on failure.
func ParseSource(source string) (*value.Program, error) {
	l := lexer.New(source)
	p := parser.New(l)
	prog := p.ParseProgram()
	if lexErrs := p.LexerErrors(); len(lexErrs) > 0 {
		return nil, fmt.Errorf("%d scan error(s), first at line %d: %s",
			len(lexErrs), lexErrs[0].Pos.Line, lexErrs[0].Message)
	}
	if parseErrs := p.Errors(); len(parseErrs) > 0 {
		return nil, fmt.Errorf("%d parse error(s), first at line %d: %s",
			len(parseErrs), parseErrs[0].Pos.Line, parseErrs[0].Message)
	}
	return prog, nil
}
