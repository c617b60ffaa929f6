package parser

import (
	"github.com/minilang/minilang/internal/ast"
	"github.com/minilang/minilang/internal/token"
)

const maxParams = 255

func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.check(token.IF):
		return p.parseIfStatement()
	case p.check(token.FOR):
		return p.parseForStatement()
	case p.check(token.WHILE):
		return p.parseWhileStatement()
	case p.check(token.LET):
		return p.parseLetStatement()
	case p.check(token.FUNC):
		return p.parseFuncStatement()
	case p.check(token.RETURN):
		return p.parseReturnStatement()
	case p.check(token.BREAK):
		return p.parseBreakStatement()
	case p.check(token.CONTINUE):
		return p.parseContinueStatement()
	case p.check(token.LBRACE):
		return p.parseBlock()
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.advance() // if
	p.consume(token.LPAREN, "expected '(' after 'if'")
	cond := p.parseExpression()
	p.consume(token.RPAREN, "expected ')' to close if condition")

	thenBranch := p.parseBlock()
	var elseBranch *ast.Block

	if p.check(token.ELSE) {
		p.advance()
		if p.check(token.IF) {
			nested := p.parseIfStatement()
			elseBranch = &ast.Block{Token: nested.Tok(), Statements: []ast.Statement{nested}}
		} else {
			elseBranch = p.parseBlock()
		}
	}

	return &ast.IfStmt{Token: tok, Condition: cond, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

func (p *Parser) parseForStatement() ast.Statement {
	tok := p.advance() // for
	p.consume(token.LPAREN, "expected '(' after 'for'")

	var init ast.Statement
	switch {
	case p.check(token.LET):
		init = p.parseLetStatement()
	case p.check(token.SEMICOLON):
		p.advance()
	default:
		init = p.parseExpressionStatement()
	}

	var cond ast.Expression
	if !p.check(token.SEMICOLON) {
		cond = p.parseExpression()
	}
	p.consume(token.SEMICOLON, "expected ';' after for-loop condition")

	var incr ast.Expression
	if !p.check(token.RPAREN) {
		incr = p.parseExpression()
	}
	p.consume(token.RPAREN, "expected ')' to close for-loop header")

	body := p.parseBlock()
	return &ast.ForStmt{Token: tok, Initializer: init, Condition: cond, Increment: incr, Body: body}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.advance() // while
	p.consume(token.LPAREN, "expected '(' after 'while'")
	cond := p.parseExpression()
	p.consume(token.RPAREN, "expected ')' to close while condition")
	body := p.parseBlock()
	return &ast.WhileStmt{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseLetStatement() ast.Statement {
	tok := p.advance() // let
	name := p.consume(token.IDENT, "expected identifier after 'let'")

	var init ast.Expression
	if p.check(token.ASSIGN) {
		p.advance()
		init = p.parseExpression()
	}

	p.consume(token.SEMICOLON, "expected ';' after let statement")
	return &ast.LetStmt{Token: tok, Name: name.Lexeme, Initializer: init}
}

func (p *Parser) parseFuncStatement() ast.Statement {
	tok := p.advance() // func
	name := p.consume(token.IDENT, "expected identifier as function name")
	p.consume(token.LPAREN, "expected '(' after function name")

	var params []string
	if !p.check(token.RPAREN) {
		for {
			if len(params) >= maxParams {
				p.fail("function parameters must not exceed %d", maxParams)
			}
			param := p.consume(token.IDENT, "expected identifier as parameter name")
			params = append(params, param.Lexeme)
			if !p.check(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	p.consume(token.RPAREN, "expected ')' to close parameter list")

	body := p.parseBlock()
	return &ast.FuncStmt{Token: tok, Name: name.Lexeme, Params: params, Body: body}
}

// parseReturnStatement accepts a bare `return;` (writing Number(0.0) at
// compile time) in addition to `return expr;`.
func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.advance() // return
	var value ast.Expression
	if !p.check(token.SEMICOLON) {
		value = p.parseExpression()
	}
	p.consume(token.SEMICOLON, "expected ';' after return statement")
	return &ast.ReturnStmt{Token: tok, Value: value}
}

func (p *Parser) parseBreakStatement() ast.Statement {
	tok := p.advance() // break
	p.consume(token.SEMICOLON, "expected ';' after break")
	return &ast.BreakStmt{Token: tok}
}

func (p *Parser) parseContinueStatement() ast.Statement {
	tok := p.advance() // continue
	p.consume(token.SEMICOLON, "expected ';' after continue")
	return &ast.ContinueStmt{Token: tok}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	expr := p.parseExpression()
	p.consume(token.SEMICOLON, "expected ';' after expression")
	return &ast.ExprStmt{Token: expr.Tok(), Expr: expr}
}

func (p *Parser) parseBlock() *ast.Block {
	tok := p.consume(token.LBRACE, "expected '{' to start block")
	block := &ast.Block{Token: tok}
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		block.Statements = append(block.Statements, p.parseStatement())
	}
	p.consume(token.RBRACE, "expected '}' to close block")
	return block
}
