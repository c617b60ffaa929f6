package parser

import (
	"testing"

	"github.com/minilang/minilang/internal/ast"
)

func TestParseLetAndExprStatement(t *testing.T) {
	p := New(`let x = 1 + 2 * 3; x;`)
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	let, ok := prog.Statements[0].(*ast.LetStmt)
	if !ok {
		t.Fatalf("expected LetStmt, got %T", prog.Statements[0])
	}
	bin, ok := let.Initializer.(*ast.BinaryExpr)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected top-level +, got %+v", let.Initializer)
	}
	// precedence: 1 + (2 * 3)
	if _, ok := bin.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected right side to be 2*3, got %+v", bin.Right)
	}
}

func TestParseIfElseIfChain(t *testing.T) {
	p := New(`if (x < 1) { y = 1; } else if (x < 2) { y = 2; } else { y = 3; }`)
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ifs, ok := prog.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected IfStmt, got %T", prog.Statements[0])
	}
	if ifs.ElseBranch == nil || len(ifs.ElseBranch.Statements) != 1 {
		t.Fatalf("expected synthetic else block wrapping nested if")
	}
	if _, ok := ifs.ElseBranch.Statements[0].(*ast.IfStmt); !ok {
		t.Fatalf("expected nested IfStmt, got %T", ifs.ElseBranch.Statements[0])
	}
}

func TestParseFunctionAndCall(t *testing.T) {
	p := New(`func add(a, b) { return a + b; } print(add(1, 2));`)
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := prog.Statements[0].(*ast.FuncStmt); !ok {
		t.Fatalf("expected FuncStmt, got %T", prog.Statements[0])
	}
	exprStmt, ok := prog.Statements[1].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", prog.Statements[1])
	}
	call, ok := exprStmt.Expr.(*ast.CallExpr)
	if !ok || len(call.Arguments) != 1 {
		t.Fatalf("expected print(...) call, got %+v", exprStmt.Expr)
	}
}

func TestBareReturnAllowed(t *testing.T) {
	p := New(`func f() { return; }`)
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := prog.Statements[0].(*ast.FuncStmt)
	ret := fn.Body.Statements[0].(*ast.ReturnStmt)
	if ret.Value != nil {
		t.Fatalf("expected nil return value, got %+v", ret.Value)
	}
}

func TestInvalidAssignmentTargetIsParseError(t *testing.T) {
	p := New(`1 = 2;`)
	_, err := p.Parse()
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestMissingSemicolonIsParseError(t *testing.T) {
	p := New(`let x = 1`)
	_, err := p.Parse()
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestForLoopWithOmittedClauses(t *testing.T) {
	p := New(`for (;;) { break; }`)
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	forStmt, ok := prog.Statements[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected ForStmt, got %T", prog.Statements[0])
	}
	if forStmt.Initializer != nil || forStmt.Condition != nil || forStmt.Increment != nil {
		t.Fatalf("expected all clauses omitted, got %+v", forStmt)
	}
}
