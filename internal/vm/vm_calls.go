package vm

import (
	"github.com/minilang/minilang/internal/bytecode"
	"github.com/minilang/minilang/internal/value"
)

// execCall implements the CALL opcode's two-tier resolution: built-ins are
// checked by name first, then user-defined functions. The argument window
// [resultReg-argc, resultReg-1] is an ABI contract with the compiler —
// changing one side requires changing the other.
func (v *VM) execCall(instr bytecode.Instruction) {
	fnVal := v.regs[instr.Arg1]
	if !fnVal.IsString() {
		v.fail("callee register does not hold a function name")
	}
	fnName := fnVal.Str
	argc := instr.Arg2
	resultReg := instr.Result

	argRegs := make([]int, argc)
	for i := range argRegs {
		argRegs[i] = resultReg - argc + i
	}

	if builtin, ok := v.builtins[fnName]; ok {
		builtin(v, argRegs, resultReg)
		return
	}

	fn, ok := v.userFuncs[fnName]
	if !ok {
		v.fail("undefined function %q", fnName)
	}
	if len(fn.Params) != argc {
		v.fail("function %q expects %d argument(s), %d given", fnName, len(fn.Params), argc)
	}

	if len(v.frames) >= MaxCallDepth {
		v.fail("stack overflow: call depth exceeds %d", MaxCallDepth)
	}

	frame := &Frame{
		Fn:          fn,
		ReturnPC:    v.pc,
		CallerChunk: v.chunk,
		ReturnReg:   resultReg,
		Registers:   make([]value.Value, fn.Chunk.RegCount),
	}
	for i, reg := range argRegs {
		frame.Registers[i] = v.regs[reg]
	}

	v.currentFrame().Registers = v.regs

	v.frames = append(v.frames, frame)
	v.regs = frame.Registers
	v.chunk = fn.Chunk
	v.pc = 0
}

// execReturn pops the current frame and resumes the caller.
func (v *VM) execReturn(instr bytecode.Instruction) {
	retVal := v.regs[instr.Arg1]

	if len(v.frames) <= 1 {
		v.fail("return escaped the main program")
	}

	finishedFrame := v.currentFrame()
	v.frames = v.frames[:len(v.frames)-1]

	v.regs = v.currentFrame().Registers
	v.chunk = finishedFrame.CallerChunk
	v.pc = finishedFrame.ReturnPC
	v.regs[finishedFrame.ReturnReg] = retVal
}
