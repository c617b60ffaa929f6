// Package bytecode defines the fixed-width instruction format the compiler
// emits and the VM executes: a register machine, not a stack machine, so
// each Instruction carries its operand registers directly rather than
// leaving them on an implicit stack.
package bytecode

// Op identifies a single VM instruction. This is the exact closed set from
// the register-machine design — note OP_DECL_FUNC from the reference
// instruction set is absent: user functions are recorded in the compiler's
// function table and never emitted as an instruction of their own.
type Op int

const (
	CONSTANT Op = iota
	GET_LOCAL
	SET_LOCAL
	REGISTER_LOCAL
	ADD
	SUB
	MUL
	DIV
	EQUAL
	GREATER
	LESS
	GREATER_EQUAL
	LESS_EQUAL
	NOT
	JUMP
	JUMP_IF_FALSE
	CALL
	RETURN_VAL
	HALT
)

var opNames = map[Op]string{
	CONSTANT:       "CONSTANT",
	GET_LOCAL:      "GET_LOCAL",
	SET_LOCAL:      "SET_LOCAL",
	REGISTER_LOCAL: "REGISTER_LOCAL",
	ADD:            "ADD",
	SUB:            "SUB",
	MUL:            "MUL",
	DIV:            "DIV",
	EQUAL:          "EQUAL",
	GREATER:        "GREATER",
	LESS:           "LESS",
	GREATER_EQUAL:  "GREATER_EQUAL",
	LESS_EQUAL:     "LESS_EQUAL",
	NOT:            "NOT",
	JUMP:           "JUMP",
	JUMP_IF_FALSE:  "JUMP_IF_FALSE",
	CALL:           "CALL",
	RETURN_VAL:     "RETURN_VAL",
	HALT:           "HALT",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "UNKNOWN"
}
