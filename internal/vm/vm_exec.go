package vm

import (
	"github.com/google/uuid"

	"github.com/minilang/minilang/internal/bytecode"
	"github.com/minilang/minilang/internal/value"
)

// Run executes mainChunk as the program's entry point. The VM maintains
// an implicit frame for the main program (Fn == nil) at the bottom of the
// frame stack for its whole lifetime.
func (v *VM) Run(mainChunk *bytecode.Chunk) (err error) {
	v.runID = uuid.NewString()
	if v.tracer != nil {
		v.tracer.OnRunStart(v.runID, mainChunk)
	}
	defer func() {
		if r := recover(); r != nil {
			ve, ok := r.(vmError)
			if !ok {
				panic(r)
			}
			err = ve.diag
		}
		if v.tracer != nil {
			v.tracer.OnRunEnd(v.runID, err)
		}
	}()

	mainFrame := &Frame{Registers: make([]value.Value, mainChunk.RegCount)}
	v.frames = []*Frame{mainFrame}
	v.regs = mainFrame.Registers
	v.chunk = mainChunk
	v.pc = 0

	for v.pc < len(v.chunk.Code) {
		instr := v.chunk.Code[v.pc]
		v.pc++

		if v.tracer != nil {
			v.tracer.OnInstruction(v.runID, v.pc-1, instr)
		}

		switch instr.Op {
		case bytecode.CONSTANT:
			v.execConstant(instr)
		case bytecode.GET_LOCAL, bytecode.SET_LOCAL, bytecode.REGISTER_LOCAL:
			v.regs[instr.Result] = v.regs[instr.Arg1]
		case bytecode.ADD, bytecode.SUB, bytecode.MUL, bytecode.DIV:
			v.execArith(instr)
		case bytecode.EQUAL:
			v.execEqual(instr)
		case bytecode.GREATER, bytecode.LESS, bytecode.GREATER_EQUAL, bytecode.LESS_EQUAL:
			v.execCompare(instr)
		case bytecode.NOT:
			v.execNot(instr)
		case bytecode.JUMP:
			v.pc = instr.Arg1
		case bytecode.JUMP_IF_FALSE:
			if !v.regs[instr.Arg1].Truthy() {
				v.pc = instr.Result
			}
		case bytecode.CALL:
			v.execCall(instr)
		case bytecode.RETURN_VAL:
			v.execReturn(instr)
		case bytecode.HALT:
			return nil
		default:
			v.fail("unknown opcode %v at pc %d", instr.Op, v.pc-1)
		}
	}

	return nil
}

func (v *VM) execConstant(instr bytecode.Instruction) {
	if !bytecode.IsStrRef(instr.Arg1) {
		v.regs[instr.Result] = value.NewNumber(v.chunk.ConstNum[instr.Arg1])
		return
	}
	idx := bytecode.DecodeStrRef(instr.Arg1)
	v.regs[instr.Result] = value.NewString(v.chunk.ConstStr[idx])
}
