package bytecode

// Instruction is a fixed-width record: three signed integer slots whose
// meaning (register index, constant-pool index, code offset, argument
// count) is opcode-specific. Unlike a variable-length byte stream, every
// instruction occupies exactly one slice element — there is no operand
// decoding at dispatch time.
type Instruction struct {
	Op     Op
	Arg1   int
	Arg2   int
	Result int
}

// Chunk is a compiled code unit: its instruction stream plus the two
// constant pools a CONSTANT instruction addresses, and the register count
// needed to size a CallFrame's register file.
type Chunk struct {
	Code     []Instruction
	ConstNum []float64
	ConstStr []string
	RegCount int
}

// NewChunk returns an empty chunk ready for compilation.
func NewChunk() *Chunk {
	return &Chunk{
		Code:     make([]Instruction, 0, 64),
		ConstNum: make([]float64, 0, 8),
		ConstStr: make([]string, 0, 8),
	}
}

// Write appends an instruction and returns its index (used by the compiler
// to remember jump-patch sites).
func (c *Chunk) Write(op Op, arg1, arg2, result int) int {
	c.Code = append(c.Code, Instruction{Op: op, Arg1: arg1, Arg2: arg2, Result: result})
	return len(c.Code) - 1
}

// AddConstNumber appends to the number pool and returns its stable index.
func (c *Chunk) AddConstNumber(v float64) int {
	c.ConstNum = append(c.ConstNum, v)
	return len(c.ConstNum) - 1
}

// AddConstStr appends to the string pool and returns its stable index.
func (c *Chunk) AddConstStr(s string) int {
	c.ConstStr = append(c.ConstStr, s)
	return len(c.ConstStr) - 1
}

// EncodeStrRef one's-complements a string-pool index so a single CONSTANT
// opcode can address either pool from its Arg1 slot (negative => string).
func EncodeStrRef(idx int) int {
	return ^idx
}

// DecodeStrRef reverses EncodeStrRef.
func DecodeStrRef(arg1 int) int {
	return ^arg1
}

// IsStrRef reports whether arg1 addresses the string pool.
func IsStrRef(arg1 int) bool {
	return arg1 < 0
}
