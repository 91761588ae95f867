// Package errors provides diagnostic formatting for the Joy
// frontend. It renders lex and parse errors with source context,
// file:line:column information and a caret pointing at the error
// location.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-joy/internal/lexer"
	"github.com/cwbudde/go-joy/internal/parser"
)

// Diagnostic is a single positioned error with enough context to
// render the offending source line.
type Diagnostic struct {
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

// New creates a Diagnostic.
func New(pos lexer.Position, message, source, file string) *Diagnostic {
	return &Diagnostic{
		Pos:     pos,
		Message: message,
		Source:  source,
		File:    file,
	}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return d.Format(false)
}

// Format renders the diagnostic with source context. If color is true,
// ANSI color codes are used for terminal output.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", d.File, d.Pos.Line, d.Pos.Column+1))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", d.Pos.Line, d.Pos.Column+1))
	}

	if line := d.sourceLine(d.Pos.Line); line != "" {
		lineNum := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(lineNum)
		sb.WriteString(line)
		sb.WriteString("\n")

		col := d.Pos.Column
		if col > len(line) {
			col = len(line)
		}
		sb.WriteString(strings.Repeat(" ", len(lineNum)+col))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

// sourceLine extracts a 1-indexed line from the source text.
func (d *Diagnostic) sourceLine(lineNum int) string {
	if d.Source == "" {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[lineNum-1], "\r")
}

// FromParser collects the lexer and parser errors of p as diagnostics
// in scan order (lex errors first).
func FromParser(p *parser.Parser, source, file string) []*Diagnostic {
	var out []*Diagnostic
	for _, e := range p.LexerErrors() {
		out = append(out, New(e.Pos, e.Message, source, file))
	}
	for _, e := range p.Errors() {
		out = append(out, New(e.Pos, e.Message, source, file))
	}
	return out
}

// FormatAll renders a list of diagnostics separated by blank lines.
func FormatAll(diags []*Diagnostic, color bool) string {
	var sb strings.Builder
	for i, d := range diags {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(d.Format(color))
	}
	sb.WriteString("\n")
	return sb.String()
}
