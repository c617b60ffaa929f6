package parser

import (
	"github.com/minilang/minilang/internal/ast"
	"github.com/minilang/minilang/internal/token"
)

// Precedence chain, loosest to tightest:
// assignment -> equality -> comparison -> term -> factor -> unary -> call -> primary

func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expression {
	expr := p.parseEquality()

	if p.check(token.ASSIGN) {
		eq := p.advance()
		value := p.parseAssignment()

		ident, ok := expr.(*ast.Identifier)
		if !ok {
			p.fail("invalid assignment target")
		}
		return &ast.AssignExpr{Token: eq, Name: ident.Name, Value: value}
	}

	return expr
}

func (p *Parser) parseEquality() ast.Expression {
	expr := p.parseComparison()
	for p.check(token.EQ) || p.check(token.NOT_EQ) {
		op := p.advance()
		right := p.parseComparison()
		expr = &ast.BinaryExpr{Token: op, Left: expr, Op: op.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) parseComparison() ast.Expression {
	expr := p.parseTerm()
	for p.check(token.GT) || p.check(token.GE) || p.check(token.LT) || p.check(token.LE) {
		op := p.advance()
		right := p.parseTerm()
		expr = &ast.BinaryExpr{Token: op, Left: expr, Op: op.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) parseTerm() ast.Expression {
	expr := p.parseFactor()
	for p.check(token.PLUS) || p.check(token.MINUS) {
		op := p.advance()
		right := p.parseFactor()
		expr = &ast.BinaryExpr{Token: op, Left: expr, Op: op.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) parseFactor() ast.Expression {
	expr := p.parseUnary()
	for p.check(token.STAR) || p.check(token.SLASH) {
		op := p.advance()
		right := p.parseUnary()
		expr = &ast.BinaryExpr{Token: op, Left: expr, Op: op.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) parseUnary() ast.Expression {
	if p.check(token.BANG) || p.check(token.MINUS) {
		op := p.advance()
		right := p.parseUnary()
		return &ast.UnaryExpr{Token: op, Op: op.Lexeme, Right: right}
	}
	return p.parseCall()
}

func (p *Parser) parseCall() ast.Expression {
	expr := p.parsePrimary()

	for p.check(token.LPAREN) {
		if _, ok := expr.(*ast.Identifier); !ok {
			p.fail("function name must be an identifier to be called")
		}
		paren := p.advance() // consume '('
		expr = p.finishCall(expr, paren)
	}

	return expr
}

func (p *Parser) finishCall(callee ast.Expression, paren token.Token) ast.Expression {
	var args []ast.Expression
	if !p.check(token.RPAREN) {
		for {
			if len(args) >= maxArgs {
				p.fail("call arguments must not exceed %d", maxArgs)
			}
			args = append(args, p.parseExpression())
			if !p.check(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	p.consume(token.RPAREN, "expected ')' to close call arguments")
	return &ast.CallExpr{Token: paren, Callee: callee, Arguments: args}
}

func (p *Parser) parsePrimary() ast.Expression {
	switch {
	case p.check(token.NUMBER):
		t := p.advance()
		return &ast.NumberLiteral{Token: t, Value: parseNumber(t.Lexeme)}
	case p.check(token.STRING):
		t := p.advance()
		return &ast.StringLiteral{Token: t, Value: t.Lexeme}
	case p.check(token.IDENT):
		t := p.advance()
		return &ast.Identifier{Token: t, Name: t.Lexeme}
	case p.check(token.TRUE):
		t := p.advance()
		return &ast.BoolLiteral{Token: t, Value: true}
	case p.check(token.FALSE):
		t := p.advance()
		return &ast.BoolLiteral{Token: t, Value: false}
	case p.check(token.LPAREN):
		p.advance()
		expr := p.parseExpression()
		p.consume(token.RPAREN, "expected ')' to close grouped expression")
		return expr
	}

	p.fail("unexpected token %q while parsing expression", p.peek().Lexeme)
	panic("unreachable")
}
