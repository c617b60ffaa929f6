package compiler

import (
	"github.com/minilang/minilang/internal/ast"
	"github.com/minilang/minilang/internal/bytecode"
)

func (c *Compiler) pushLoop(l *loopCtx) {
	c.loops = append(c.loops, l)
}

func (c *Compiler) popLoop() *loopCtx {
	l := c.loops[len(c.loops)-1]
	c.loops = c.loops[:len(c.loops)-1]
	return l
}

func (c *Compiler) currentLoop() *loopCtx {
	if len(c.loops) == 0 {
		return nil
	}
	return c.loops[len(c.loops)-1]
}

// compileLoopBody snapshots the temp counter before compiling body so
// registers used inside the body can be reused by code compiled after it;
// the high-water mark is preserved in maxRegCount so the chunk's final
// register count still accounts for everything the loop ever touched.
func (c *Compiler) compileLoopBody(body *ast.Block) {
	origin := c.tmpCounter
	c.compileBlock(body)
	c.maxRegCount = max(c.tmpCounter, c.maxRegCount)
	c.tmpCounter = origin
}

func (c *Compiler) compileWhileStmt(stmt *ast.WhileStmt) {
	loopStart := len(c.chunk.Code)

	condReg := c.compileExpr(stmt.Condition)
	exitJump := c.chunk.Write(bytecode.JUMP_IF_FALSE, condReg, 0, 0)

	c.pushLoop(&loopCtx{start: loopStart})
	c.compileLoopBody(stmt.Body)
	l := c.popLoop()

	c.chunk.Write(bytecode.JUMP, loopStart, 0, 0)

	afterLoop := len(c.chunk.Code)
	for _, pc := range l.breakJumps {
		c.chunk.Code[pc].Arg1 = afterLoop
	}
	c.chunk.Code[exitJump].Result = afterLoop
}

// compileForStmt uses the start == -1 loop-context marker: a continue
// inside a for-loop cannot jump straight to the loop header (that would
// skip the increment step), so continue sites are recorded and patched
// here, once the increment's position is known.
func (c *Compiler) compileForStmt(stmt *ast.ForStmt) {
	if stmt.Initializer != nil {
		c.compileStmt(stmt.Initializer)
	}

	loopStart := len(c.chunk.Code)

	var condReg int
	exitJump := -1
	if stmt.Condition != nil {
		condReg = c.compileExpr(stmt.Condition)
		exitJump = c.chunk.Write(bytecode.JUMP_IF_FALSE, condReg, 0, 0)
	}

	c.pushLoop(&loopCtx{start: -1})
	c.compileLoopBody(stmt.Body)

	afterBody := len(c.chunk.Code)
	if stmt.Increment != nil {
		c.compileExpr(stmt.Increment)
	}

	c.chunk.Write(bytecode.JUMP, loopStart, 0, 0)

	l := c.popLoop()
	for _, pc := range l.continueJumps {
		c.chunk.Code[pc].Arg1 = afterBody
	}

	afterLoop := len(c.chunk.Code)
	for _, pc := range l.breakJumps {
		c.chunk.Code[pc].Arg1 = afterLoop
	}
	if stmt.Condition != nil {
		c.chunk.Code[exitJump].Result = afterLoop
	}
}

func (c *Compiler) compileBreakStmt(stmt *ast.BreakStmt) {
	l := c.currentLoop()
	if l == nil {
		c.fail(stmt, "break outside of a loop")
	}
	l.breakJumps = append(l.breakJumps, c.chunk.Write(bytecode.JUMP, 0, 0, 0))
}

func (c *Compiler) compileContinueStmt(stmt *ast.ContinueStmt) {
	l := c.currentLoop()
	if l == nil {
		c.fail(stmt, "continue outside of a loop")
	}
	if l.start != -1 {
		c.chunk.Write(bytecode.JUMP, l.start, 0, 0)
		return
	}
	l.continueJumps = append(l.continueJumps, c.chunk.Write(bytecode.JUMP, 0, 0, 0))
}
