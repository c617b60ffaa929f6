package compiler

import (
	"github.com/minilang/minilang/internal/ast"
	"github.com/minilang/minilang/internal/bytecode"
	"github.com/minilang/minilang/internal/diagnostics"
)

func (c *Compiler) compileStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.IfStmt:
		c.compileIfStmt(s)
	case *ast.WhileStmt:
		c.compileWhileStmt(s)
	case *ast.ForStmt:
		c.compileForStmt(s)
	case *ast.LetStmt:
		c.compileLetStmt(s)
	case *ast.ExprStmt:
		c.compileExpr(s.Expr)
	case *ast.BreakStmt:
		c.compileBreakStmt(s)
	case *ast.ContinueStmt:
		c.compileContinueStmt(s)
	case *ast.FuncStmt:
		c.compileFuncStmt(s)
	case *ast.ReturnStmt:
		c.compileReturnStmt(s)
	case *ast.Block:
		c.compileBlock(s)
	default:
		c.fail(stmt, "unknown statement kind %T", stmt)
	}
}

// compileBlock pushes a copy-on-push scope so bindings introduced with
// `let` inside the block only affect the copy, then restores the outer
// scope on exit. Assignments to names declared outside write the outer
// binding's register and stay visible after the block.
func (c *Compiler) compileBlock(block *ast.Block) {
	c.pushChildScope()
	for _, stmt := range block.Statements {
		c.compileStmt(stmt)
	}
	c.popScope()
}

func (c *Compiler) compileIfStmt(stmt *ast.IfStmt) {
	condReg := c.compileExpr(stmt.Condition)
	thenJump := c.chunk.Write(bytecode.JUMP_IF_FALSE, condReg, 0, 0)

	c.compileBlock(stmt.ThenBranch)

	elseJump := -1
	if stmt.ElseBranch != nil {
		elseJump = c.chunk.Write(bytecode.JUMP, 0, 0, 0)
	}

	c.chunk.Code[thenJump].Result = len(c.chunk.Code)

	if stmt.ElseBranch != nil {
		c.compileBlock(stmt.ElseBranch)
		c.chunk.Code[elseJump].Arg1 = len(c.chunk.Code)
	}
}

func (c *Compiler) compileLetStmt(stmt *ast.LetStmt) {
	var reg int
	if stmt.Initializer != nil {
		reg = c.compileExpr(stmt.Initializer)
	} else {
		idx := c.chunk.AddConstNumber(0.0)
		reg = c.nextReg()
		c.chunk.Write(bytecode.CONSTANT, idx, 0, reg)
	}
	dst := c.nextReg()
	c.chunk.Write(bytecode.REGISTER_LOCAL, reg, 0, dst)
	c.define(stmt.Name, dst)
}

func (c *Compiler) compileFuncStmt(stmt *ast.FuncStmt) {
	if _, exists := c.userFuncs[stmt.Name]; exists {
		c.fail(stmt, "function %q is already declared", stmt.Name)
	}
	if c.mode == FunctionMode {
		c.fail(stmt, "functions cannot be declared inside another function")
	}

	fnCompiler := newFunction(stmt.Params)
	if err := fnCompiler.Compile(stmt.Body.Statements); err != nil {
		panic(compileError{diag: err.(*diagnostics.Diagnostic)})
	}

	c.userFuncs[stmt.Name] = &Func{Name: stmt.Name, Params: stmt.Params, Chunk: fnCompiler.Chunk()}
}

func (c *Compiler) compileReturnStmt(stmt *ast.ReturnStmt) {
	if c.mode != FunctionMode {
		c.fail(stmt, "return outside of a function")
	}

	var reg int
	if stmt.Value != nil {
		reg = c.compileExpr(stmt.Value)
	} else {
		idx := c.chunk.AddConstNumber(0.0)
		reg = c.nextReg()
		c.chunk.Write(bytecode.CONSTANT, idx, 0, reg)
	}
	c.chunk.Write(bytecode.RETURN_VAL, reg, 0, 0)
}
