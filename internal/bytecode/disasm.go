package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable dump of chunk's instruction stream,
// one line per instruction, prefixed with its offset.
func Disassemble(chunk *Chunk, name string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "== %s ==\n", name)
	for offset, instr := range chunk.Code {
		sb.WriteString(DisassembleInstruction(chunk, offset, instr))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DisassembleInstruction formats a single instruction at offset.
func DisassembleInstruction(chunk *Chunk, offset int, instr Instruction) string {
	switch instr.Op {
	case CONSTANT:
		if IsStrRef(instr.Arg1) {
			idx := DecodeStrRef(instr.Arg1)
			var val string
			if idx >= 0 && idx < len(chunk.ConstStr) {
				val = chunk.ConstStr[idx]
			}
			return fmt.Sprintf("%04d CONSTANT        str[%d] %q -> r%d", offset, idx, val, instr.Result)
		}
		var val float64
		if instr.Arg1 >= 0 && instr.Arg1 < len(chunk.ConstNum) {
			val = chunk.ConstNum[instr.Arg1]
		}
		return fmt.Sprintf("%04d CONSTANT        num[%d] %g -> r%d", offset, instr.Arg1, val, instr.Result)
	case GET_LOCAL, SET_LOCAL, REGISTER_LOCAL:
		return fmt.Sprintf("%04d %-15s r%d -> r%d", offset, instr.Op, instr.Arg1, instr.Result)
	case ADD, SUB, MUL, DIV, EQUAL, GREATER, LESS, GREATER_EQUAL, LESS_EQUAL:
		return fmt.Sprintf("%04d %-15s r%d, r%d -> r%d", offset, instr.Op, instr.Arg1, instr.Arg2, instr.Result)
	case NOT:
		return fmt.Sprintf("%04d %-15s r%d -> r%d", offset, instr.Op, instr.Arg1, instr.Result)
	case JUMP:
		return fmt.Sprintf("%04d %-15s -> %d", offset, instr.Op, instr.Arg1)
	case JUMP_IF_FALSE:
		return fmt.Sprintf("%04d %-15s r%d -> %d", offset, instr.Op, instr.Arg1, instr.Result)
	case CALL:
		return fmt.Sprintf("%04d %-15s r%d, argc=%d -> r%d", offset, instr.Op, instr.Arg1, instr.Arg2, instr.Result)
	case RETURN_VAL:
		return fmt.Sprintf("%04d %-15s r%d", offset, instr.Op, instr.Arg1)
	case HALT:
		return fmt.Sprintf("%04d %-15s", offset, instr.Op)
	default:
		return fmt.Sprintf("%04d UNKNOWN(%d)", offset, instr.Op)
	}
}
