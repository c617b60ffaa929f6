// Package vm executes compiled MiniLang chunks on a register machine.
package vm

import (
	"bufio"
	"io"
	"os"

	"github.com/minilang/minilang/internal/bytecode"
	"github.com/minilang/minilang/internal/compiler"
	"github.com/minilang/minilang/internal/diagnostics"
	"github.com/minilang/minilang/internal/value"
)

// MaxCallDepth bounds the frame stack; exceeding it is a fatal runtime
// error (stack overflow), not a panic recovered elsewhere.
const MaxCallDepth = 64

// BuiltinFn is a built-in function's implementation. argRegs holds the
// indices of its arguments within the active register file; it is
// responsible for writing its result into regs[resultReg].
type BuiltinFn func(vm *VM, argRegs []int, resultReg int)

// Frame is one call activation: the function being run (nil for the
// implicit main frame), where to resume the caller, which chunk the
// caller was executing, and this activation's own register file.
type Frame struct {
	Fn          *compiler.Func
	ReturnPC    int
	CallerChunk *bytecode.Chunk
	Registers   []value.Value
	ReturnReg   int
}

// Tracer receives optional instruction-level and run-lifecycle
// notifications; a nil Tracer (the default) disables tracing entirely so
// the hot dispatch loop pays nothing for it.
type Tracer interface {
	OnRunStart(runID string, chunk *bytecode.Chunk)
	OnInstruction(runID string, pc int, instr bytecode.Instruction)
	OnRunEnd(runID string, err error)
}

// VM is a single execution context. State (register files, frame stack,
// constant pools via the active chunk) is private to the instance — there
// is no shared mutable state between concurrent VMs beyond stdin/stdout.
type VM struct {
	builtins  map[string]BuiltinFn
	userFuncs map[string]*compiler.Func

	frames  []*Frame
	regs    []value.Value
	chunk   *bytecode.Chunk
	pc      int

	stdin  *bufio.Reader
	stdout io.Writer

	tracer Tracer
	runID  string
}

// Option configures a VM at construction.
type Option func(*VM)

// WithStdin overrides the default os.Stdin source for the input builtin.
func WithStdin(r io.Reader) Option {
	return func(v *VM) { v.stdin = bufio.NewReader(r) }
}

// WithStdout overrides the default os.Stdout sink for the print builtin.
func WithStdout(w io.Writer) Option {
	return func(v *VM) { v.stdout = w }
}

// WithTracer attaches a Tracer for instruction-level logging.
func WithTracer(t Tracer) Option {
	return func(v *VM) { v.tracer = t }
}

// New constructs a VM with userFuncs as its callable user-defined
// functions and the three fixed built-ins registered by name.
func New(userFuncs map[string]*compiler.Func, opts ...Option) *VM {
	v := &VM{
		userFuncs: userFuncs,
		stdin:     bufio.NewReader(os.Stdin),
		stdout:    os.Stdout,
	}
	v.builtins = map[string]BuiltinFn{
		"print":   builtinPrint,
		"input":   builtinInput,
		"str2int": builtinStr2Int,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type vmError struct{ diag *diagnostics.Diagnostic }

func (v *VM) fail(format string, args ...any) {
	panic(vmError{diag: diagnostics.NewRuntime(format, args...)})
}

// currentFrame returns the active frame (the one on top of the stack).
func (v *VM) currentFrame() *Frame {
	return v.frames[len(v.frames)-1]
}
