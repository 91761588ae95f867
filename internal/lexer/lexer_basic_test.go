package lexer

import (
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `2 3 + .
[1 2 3] [dup *] map .`

	tests := []struct {
		expectedLiteral string
		expectedType    TokenType
	}{
		{"2", INT},
		{"3", INT},
		{"+", IDENT},
		{".", PERIOD},
		{"[", LBRACK},
		{"1", INT},
		{"2", INT},
		{"3", INT},
		{"]", RBRACK},
		{"[", LBRACK},
		{"dup", IDENT},
		{"*", IDENT},
		{"]", RBRACK},
		{"map", IDENT},
		{".", PERIOD},
		{"", EOF},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywordsAndPunctuation(t *testing.T) {
	input := `DEFINE sqr == dup * ; cube == dup dup * * .
MODULE m END
LIBRA x == 1 .
CONST y == 2 .
{0 2 4}`

	tests := []struct {
		expectedLiteral string
		expectedType    TokenType
	}{
		{"DEFINE", DEFINE},
		{"sqr", IDENT},
		{"==", EQDEF},
		{"dup", IDENT},
		{"*", IDENT},
		{";", SEMI},
		{"cube", IDENT},
		{"==", EQDEF},
		{"dup", IDENT},
		{"dup", IDENT},
		{"*", IDENT},
		{"*", IDENT},
		{".", PERIOD},
		{"MODULE", MODULE},
		{"m", IDENT},
		{"END", END},
		{"LIBRA", LIBRA},
		{"x", IDENT},
		{"==", EQDEF},
		{"1", INT},
		{".", PERIOD},
		{"CONST", CONST},
		{"y", IDENT},
		{"==", EQDEF},
		{"2", INT},
		{".", PERIOD},
		{"{", LBRACE},
		{"0", INT},
		{"2", INT},
		{"4", INT},
		{"}", RBRACE},
		{"", EOF},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperatorIdentifiers(t *testing.T) {
	input := `< <= > >= != = - -5 rem`

	tests := []struct {
		expectedLiteral string
		expectedType    TokenType
	}{
		{"<", IDENT},
		{"<=", IDENT},
		{">", IDENT},
		{">=", IDENT},
		{"!=", IDENT},
		{"=", IDENT},
		{"-", IDENT},
		{"-5", INT},
		{"rem", IDENT},
		{"", EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType || tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - got (%q, %q), want (%q, %q)",
				i, tok.Type, tok.Literal, tt.expectedType, tt.expectedLiteral)
		}
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := New("dup")
	l.NextToken()
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != EOF {
			t.Fatalf("expected EOF on read %d, got %q", i, tok.Type)
		}
	}
}

func TestTokenPositions(t *testing.T) {
	input := "dup\n  swap"
	l := New(input)

	tok := l.NextToken()
	if tok.Pos.Line != 1 || tok.Pos.Column != 0 {
		t.Errorf("dup position = %d:%d, want 1:0", tok.Pos.Line, tok.Pos.Column)
	}
	tok = l.NextToken()
	if tok.Pos.Line != 2 || tok.Pos.Column != 2 {
		t.Errorf("swap position = %d:%d, want 2:2", tok.Pos.Line, tok.Pos.Column)
	}
}
