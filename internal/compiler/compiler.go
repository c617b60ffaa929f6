// Package compiler lowers a MiniLang AST into register-machine bytecode.
// Register allocation uses a monotonically increasing temporary counter —
// never reused via liveness analysis, so chunks can reserve more registers
// than strictly necessary, by design (a deliberate "space for simplicity"
// trade reproduced from the reference implementation).
package compiler

import (
	"github.com/minilang/minilang/internal/ast"
	"github.com/minilang/minilang/internal/bytecode"
	"github.com/minilang/minilang/internal/diagnostics"
)

// Mode distinguishes the top-level program compiler from a per-function
// sub-compiler; a few constructs (return, nested func) are mode-sensitive.
type Mode int

const (
	MainMode Mode = iota
	FunctionMode
)

// Func is a compiled user-defined function: its parameter list (bound to
// register slots 0..len(Params)-1 by the calling convention) and its own
// chunk.
type Func struct {
	Name   string
	Params []string
	Chunk  *bytecode.Chunk
}

// loopCtx tracks the jump-patch sites a break/continue inside the active
// loop needs to resolve once the loop finishes compiling. start == -1 means
// "continue must be deferred and patched once the loop's increment step is
// known" — the marker a for-loop uses, since continue there must jump to
// the increment, not the loop header.
type loopCtx struct {
	start         int
	breakJumps    []int
	continueJumps []int
}

// Compiler lowers one block (either the whole program or one function
// body) into a Chunk.
type Compiler struct {
	chunk       *bytecode.Chunk
	tmpCounter  int
	maxRegCount int

	scopes []map[string]int
	loops  []*loopCtx

	userFuncs map[string]*Func
	mode      Mode
}

// NewMain returns a compiler for the top-level program.
func NewMain() *Compiler {
	c := &Compiler{
		chunk:     bytecode.NewChunk(),
		userFuncs: make(map[string]*Func),
		mode:      MainMode,
	}
	c.pushScope(nil)
	return c
}

// newFunction returns a compiler for a function body; params occupy
// registers [0, len(params)) per the call ABI (spec §4.3 call protocol).
func newFunction(params []string) *Compiler {
	c := &Compiler{
		chunk: bytecode.NewChunk(),
		mode:  FunctionMode,
	}
	scope := make(map[string]int, len(params))
	for i, p := range params {
		scope[p] = i
	}
	c.scopes = append(c.scopes, scope)
	c.tmpCounter = len(params)
	c.maxRegCount = c.tmpCounter
	return c
}

type compileError struct{ diag *diagnostics.Diagnostic }

func (c *Compiler) fail(tok ast.Node, format string, args ...any) {
	t := tok.Tok()
	panic(compileError{diag: diagnostics.NewCompile(t.Line, t.Column, format, args...)})
}

// Compile lowers stmts (a program's or a function body's top-level
// statements, compiled directly in the base scope) to this compiler's
// chunk, returning the first compile error encountered, if any. Only the
// main compiler's Compile call emits a trailing HALT — a function chunk
// gets no implicit RETURN_VAL and ends with whatever its last statement
// emitted.
func (c *Compiler) Compile(stmts []ast.Statement) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(compileError); ok {
				err = ce.diag
				return
			}
			panic(r)
		}
	}()

	for _, stmt := range stmts {
		c.compileStmt(stmt)
	}

	c.chunk.RegCount = max(c.tmpCounter, c.maxRegCount)
	if c.mode == MainMode {
		c.chunk.Write(bytecode.HALT, 0, 0, 0)
	}
	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Chunk returns the compiled chunk.
func (c *Compiler) Chunk() *bytecode.Chunk { return c.chunk }

// UserFuncs returns the functions declared at top level. Only meaningful
// on the main compiler — functions cannot be declared inside a function,
// so a function sub-compiler's table is always empty and is never merged
// into the caller's.
func (c *Compiler) UserFuncs() map[string]*Func { return c.userFuncs }
