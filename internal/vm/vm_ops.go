package vm

import (
	"github.com/minilang/minilang/internal/bytecode"
	"github.com/minilang/minilang/internal/value"
)

func (v *VM) execArith(instr bytecode.Instruction) {
	l := v.regs[instr.Arg1]
	r := v.regs[instr.Arg2]
	if !l.IsNumber() || !r.IsNumber() {
		v.fail("type mismatch in %s", instr.Op)
	}

	switch instr.Op {
	case bytecode.ADD:
		v.regs[instr.Result] = value.NewNumber(l.Num + r.Num)
	case bytecode.SUB:
		v.regs[instr.Result] = value.NewNumber(l.Num - r.Num)
	case bytecode.MUL:
		v.regs[instr.Result] = value.NewNumber(l.Num * r.Num)
	case bytecode.DIV:
		if r.Num == 0 {
			v.fail("division by zero")
		}
		v.regs[instr.Result] = value.NewNumber(l.Num / r.Num)
	}
}

func (v *VM) execEqual(instr bytecode.Instruction) {
	l := v.regs[instr.Arg1]
	r := v.regs[instr.Arg2]
	v.regs[instr.Result] = boolValue(l.Equal(r))
}

func (v *VM) execCompare(instr bytecode.Instruction) {
	l := v.regs[instr.Arg1]
	r := v.regs[instr.Arg2]
	if !l.IsNumber() || !r.IsNumber() {
		v.fail("type mismatch in %s", instr.Op)
	}

	var result bool
	switch instr.Op {
	case bytecode.GREATER:
		result = l.Num > r.Num
	case bytecode.LESS:
		result = l.Num < r.Num
	case bytecode.GREATER_EQUAL:
		result = l.Num >= r.Num
	case bytecode.LESS_EQUAL:
		result = l.Num <= r.Num
	}
	v.regs[instr.Result] = boolValue(result)
}

// execNot mirrors the asymmetric truthiness rule: NOT of a number is
// 1.0/0.0 by value, but NOT of a string is always 0.0 regardless of
// content — strings have no falsy form in this language.
func (v *VM) execNot(instr bytecode.Instruction) {
	operand := v.regs[instr.Arg1]
	if operand.IsNumber() {
		v.regs[instr.Result] = boolValue(operand.Num == 0)
		return
	}
	v.regs[instr.Result] = value.NewNumber(0.0)
}

func boolValue(b bool) value.Value {
	if b {
		return value.NewNumber(1.0)
	}
	return value.NewNumber(0.0)
}
