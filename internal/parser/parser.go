// Package parser builds the program form from the token stream.
//
// A Joy program is a flat sequence of terms, where each term is either
// a literal value or a symbol. Aggregate literals nest recursively.
// Definition blocks (DEFINE/LIBRA/CONST/MODULE…END) are collected into
// DefBlock terms and installed by the evaluator when execution reaches
// them, not at parse time.
package parser

import (
	"fmt"
	"strconv"

	"github.com/cwbudde/go-joy/internal/lexer"
	"github.com/cwbudde/go-joy/internal/value"
)

// ParserError is a positioned parse error.
type ParserError struct {
	Message string
	Pos     lexer.Position
}

func (e *ParserError) Error() string {
	return e.Message
}

// Parser assembles a value.Program from a token stream.
type Parser struct {
	l         *lexer.Lexer
	errors    []*ParserError
	curToken  lexer.Token
	peekToken lexer.Token
}

// New creates a new Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns all parse errors encountered so far.
func (p *Parser) Errors() []*ParserError {
	return p.errors
}

// LexerErrors returns the scan errors from the underlying lexer.
func (p *Parser) LexerErrors() []lexer.LexerError {
	return p.l.Errors()
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) addError(format string, args ...any) {
	p.errors = append(p.errors, &ParserError{
		Message: fmt.Sprintf(format, args...),
		Pos:     p.curToken.Pos,
	})
}

// ParseProgram parses the whole input and returns the program.
// Parsing continues past errors so that all diagnostics are reported
// in one pass; callers must check Errors() before executing.
func (p *Parser) ParseProgram() *value.Program {
	prog := &value.Program{}
	for !p.curTokenIs(lexer.EOF) {
		p.parseTopLevelTerm(prog)
	}
	return prog
}

// parseTopLevelTerm parses one term in executable position and
// appends it (or the terms it lowers to) to prog.
func (p *Parser) parseTopLevelTerm(prog *value.Program) {
	switch p.curToken.Type {
	case lexer.DEFINE, lexer.LIBRA, lexer.CONST:
		if def := p.parseDefBlock(); def != nil {
			prog.AppendDef(def)
		}
	case lexer.MODULE:
		if def := p.parseModule(); def != nil {
			prog.AppendDef(def)
		}
	case lexer.PERIOD:
		// In executable position a dot is the print-TOS word.
		prog.Append(&value.SymbolValue{Name: "."})
		p.nextToken()
	case lexer.ESCAPE:
		// A $-line lowers to: "CMD" system pop.
		prog.Append(&value.StringValue{Value: p.curToken.Literal})
		prog.Append(&value.SymbolValue{Name: "system"})
		prog.Append(&value.SymbolValue{Name: "pop"})
		p.nextToken()
	case lexer.SEMI:
		p.addError("unexpected ';' outside a definition block")
		p.nextToken()
	case lexer.EQDEF:
		p.addError("unexpected '==' outside a definition block")
		p.nextToken()
	case lexer.END:
		p.addError("END without matching MODULE")
		p.nextToken()
	default:
		if v, ok := p.parseValueTerm(); ok {
			prog.Append(v)
		}
	}
}

// parseValueTerm parses a single literal or symbol term, consuming
// its tokens. On malformed input it records an error, skips one token
// and reports !ok.
func (p *Parser) parseValueTerm() (value.Value, bool) {
	switch p.curToken.Type {
	case lexer.INT:
		lit := p.curToken.Literal
		n, err := strconv.ParseInt(lit, 0, 64)
		if err != nil {
			// Out-of-range decimals degrade to float, matching
			// strtol-then-strtod numeric reading.
			if f, ferr := strconv.ParseFloat(lit, 64); ferr == nil {
				p.nextToken()
				return &value.FloatValue{Value: f}, true
			}
			p.addError("invalid integer literal %q", lit)
			p.nextToken()
			return nil, false
		}
		p.nextToken()
		return &value.IntegerValue{Value: n}, true

	case lexer.FLOAT:
		f, err := strconv.ParseFloat(p.curToken.Literal, 64)
		if err != nil {
			p.addError("invalid float literal %q", p.curToken.Literal)
			p.nextToken()
			return nil, false
		}
		p.nextToken()
		return &value.FloatValue{Value: f}, true

	case lexer.CHAR:
		b := byte(0)
		if len(p.curToken.Literal) > 0 {
			b = p.curToken.Literal[0]
		}
		p.nextToken()
		return &value.CharValue{Value: b}, true

	case lexer.STRING:
		s := p.curToken.Literal
		p.nextToken()
		return &value.StringValue{Value: s}, true

	case lexer.IDENT:
		name := p.curToken.Literal
		p.nextToken()
		switch name {
		case "true":
			return value.True, true
		case "false":
			return value.False, true
		}
		return &value.SymbolValue{Name: name}, true

	case lexer.LBRACK:
		return p.parseQuotation()

	case lexer.LBRACE:
		return p.parseSet()

	case lexer.ILLEGAL:
		p.addError("illegal token %q", p.curToken.Literal)
		p.nextToken()
		return nil, false

	default:
		p.addError("unexpected token %s", p.curToken.Type)
		p.nextToken()
		return nil, false
	}
}

// parseQuotation parses a bracketed term sequence. The result carries
// the QUOTATION tag; whether it is treated as code or data is decided
// by the operation that consumes it.
func (p *Parser) parseQuotation() (value.Value, bool) {
	open := p.curToken.Pos
	p.nextToken() // consume [

	var elements []value.Value
	for !p.curTokenIs(lexer.RBRACK) {
		switch p.curToken.Type {
		case lexer.EOF:
			p.errors = append(p.errors, &ParserError{
				Message: "unterminated quotation, missing ']'",
				Pos:     open,
			})
			return nil, false
		case lexer.PERIOD:
			// Inside a quotation a dot is the print word, never a
			// block terminator.
			elements = append(elements, &value.SymbolValue{Name: "."})
			p.nextToken()
		case lexer.DEFINE, lexer.LIBRA, lexer.CONST, lexer.MODULE, lexer.END,
			lexer.SEMI, lexer.EQDEF:
			p.addError("%s is not allowed inside a quotation", p.curToken.Type)
			p.nextToken()
		default:
			if v, ok := p.parseValueTerm(); ok {
				elements = append(elements, v)
			}
		}
	}
	p.nextToken() // consume ]
	return &value.ListValue{Elements: elements, Quoted: true}, true
}

// parseSet parses a brace-enclosed set literal. Members are integer
// or character literals in the range 0..63.
func (p *Parser) parseSet() (value.Value, bool) {
	open := p.curToken.Pos
	p.nextToken() // consume {

	var bits uint64
	for !p.curTokenIs(lexer.RBRACE) {
		switch p.curToken.Type {
		case lexer.EOF:
			p.errors = append(p.errors, &ParserError{
				Message: "unterminated set literal, missing '}'",
				Pos:     open,
			})
			return nil, false
		case lexer.INT:
			n, err := strconv.ParseInt(p.curToken.Literal, 0, 64)
			if err != nil || n < 0 || n > 63 {
				p.addError("set member %s out of range 0..63", p.curToken.Literal)
			} else {
				bits |= 1 << uint64(n)
			}
			p.nextToken()
		case lexer.CHAR:
			b := byte(0)
			if len(p.curToken.Literal) > 0 {
				b = p.curToken.Literal[0]
			}
			if b > 63 {
				p.addError("set member %q out of range 0..63", string(b))
			} else {
				bits |= 1 << uint64(b)
			}
			p.nextToken()
		default:
			p.addError("set members must be small integers, got %s", p.curToken.Type)
			p.nextToken()
		}
	}
	p.nextToken() // consume }
	return &value.SetValue{Bits: bits}, true
}

// parseDefBlock parses a DEFINE/LIBRA/CONST block:
//
//	DEFINE name == TERMS ; name == TERMS .
//
// The three keywords are synonyms. The closing '.' is required.
func (p *Parser) parseDefBlock() *value.DefBlock {
	keyword := p.curToken.Literal
	p.nextToken() // consume keyword

	def := &value.DefBlock{}
	for {
		clause, ok := p.parseClause(keyword)
		if ok {
			def.Clauses = append(def.Clauses, *clause)
		}
		switch p.curToken.Type {
		case lexer.SEMI:
			p.nextToken()
			continue
		case lexer.PERIOD:
			p.nextToken()
			return def
		case lexer.EOF:
			p.addError("%s block not terminated by '.'", keyword)
			return def
		default:
			if !ok {
				// parseClause already reported; skip a token to
				// make progress.
				p.nextToken()
				continue
			}
			p.addError("expected ';' or '.' after definition, got %s", p.curToken.Type)
			p.nextToken()
		}
	}
}

// parseModule parses MODULE name CLAUSES… END. Definition blocks
// nested inside the module are accumulated into the same DefBlock and
// installed together when execution reaches the module term.
func (p *Parser) parseModule() *value.DefBlock {
	p.nextToken() // consume MODULE

	def := &value.DefBlock{}
	if p.curTokenIs(lexer.IDENT) {
		def.Module = p.curToken.Literal
		p.nextToken()
	} else {
		p.addError("expected module name after MODULE")
	}

	for {
		switch p.curToken.Type {
		case lexer.END:
			p.nextToken()
			// An optional trailing '.' closes the module form.
			if p.curTokenIs(lexer.PERIOD) {
				p.nextToken()
			}
			return def
		case lexer.EOF:
			p.addError("MODULE %s not terminated by END", def.Module)
			return def
		case lexer.DEFINE, lexer.LIBRA, lexer.CONST:
			if nested := p.parseDefBlock(); nested != nil {
				def.Clauses = append(def.Clauses, nested.Clauses...)
			}
		case lexer.SEMI:
			p.nextToken()
		case lexer.IDENT:
			if clause, ok := p.parseClause("MODULE"); ok {
				def.Clauses = append(def.Clauses, *clause)
			} else {
				p.nextToken()
			}
		default:
			p.addError("unexpected token %s inside MODULE %s", p.curToken.Type, def.Module)
			p.nextToken()
		}
	}
}

// parseClause parses one `NAME == BODY` clause. The body runs until
// ';', '.', END or EOF.
func (p *Parser) parseClause(keyword string) (*value.Clause, bool) {
	if !p.curTokenIs(lexer.IDENT) {
		p.addError("expected definition name in %s block, got %s", keyword, p.curToken.Type)
		return nil, false
	}
	name := p.curToken.Literal
	p.nextToken()

	if !p.curTokenIs(lexer.EQDEF) {
		p.addError("definition of %s without '=='", name)
		return nil, false
	}
	p.nextToken()

	var body []value.Value
	for {
		switch p.curToken.Type {
		case lexer.SEMI, lexer.PERIOD, lexer.END, lexer.EOF:
			return &value.Clause{Name: name, Body: body}, true
		case lexer.DEFINE, lexer.LIBRA, lexer.CONST, lexer.MODULE, lexer.EQDEF:
			p.addError("%s is not allowed inside the body of %s", p.curToken.Type, name)
			p.nextToken()
		default:
			if v, ok := p.parseValueTerm(); ok {
				body = append(body, v)
			}
		}
	}
}
