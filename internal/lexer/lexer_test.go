package lexer

import (
	"testing"

	"github.com/minilang/minilang/internal/token"
)

func TestNextTokenCoversAllCategories(t *testing.T) {
	input := `let x = 1.5;
	if (x <= 2) { print("hi there"); } else { x = x + 1; }
	func add(a, b) { return a + b; }
	while (x != 0) { break; }
	for (let i = 0; i < 3; i = i + 1) { continue; }
	true false !x == y >= z`

	expected := []token.Type{
		token.LET, token.IDENT, token.ASSIGN, token.NUMBER, token.SEMICOLON,
		token.IF, token.LPAREN, token.IDENT, token.LE, token.NUMBER, token.RPAREN,
		token.LBRACE, token.IDENT, token.LPAREN, token.STRING, token.RPAREN, token.SEMICOLON, token.RBRACE,
		token.ELSE, token.LBRACE, token.IDENT, token.ASSIGN, token.IDENT, token.PLUS, token.NUMBER, token.SEMICOLON, token.RBRACE,
		token.FUNC, token.IDENT, token.LPAREN, token.IDENT, token.COMMA, token.IDENT, token.RPAREN,
		token.LBRACE, token.RETURN, token.IDENT, token.PLUS, token.IDENT, token.SEMICOLON, token.RBRACE,
		token.WHILE, token.LPAREN, token.IDENT, token.NOT_EQ, token.NUMBER, token.RPAREN, token.LBRACE, token.BREAK, token.SEMICOLON, token.RBRACE,
		token.FOR, token.LPAREN, token.LET, token.IDENT, token.ASSIGN, token.NUMBER, token.SEMICOLON,
		token.IDENT, token.LT, token.NUMBER, token.SEMICOLON,
		token.IDENT, token.ASSIGN, token.IDENT, token.PLUS, token.NUMBER, token.RPAREN,
		token.LBRACE, token.CONTINUE, token.SEMICOLON, token.RBRACE,
		token.TRUE, token.FALSE, token.BANG, token.IDENT, token.EQ, token.IDENT, token.GE, token.IDENT,
		token.EOF,
	}

	l := New(input)
	for i, want := range expected {
		got := l.NextToken()
		if got.Type != want {
			t.Fatalf("token %d: got %s, want %s (lexeme %q)", i, got.Type, want, got.Lexeme)
		}
	}
}

func TestStringLiteral(t *testing.T) {
	l := New(`"hello world"`)
	tok := l.NextToken()
	if tok.Type != token.STRING || tok.Lexeme != "hello world" {
		t.Fatalf("got %+v", tok)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"oops`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %+v", tok)
	}
}

func TestNumberWithFraction(t *testing.T) {
	l := New("3.14")
	tok := l.NextToken()
	if tok.Type != token.NUMBER || tok.Lexeme != "3.14" {
		t.Fatalf("got %+v", tok)
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := New("")
	first := l.NextToken()
	second := l.NextToken()
	if first.Type != token.EOF || second.Type != token.EOF {
		t.Fatalf("expected repeated EOF, got %+v then %+v", first, second)
	}
}
