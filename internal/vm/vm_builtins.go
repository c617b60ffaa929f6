package vm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/minilang/minilang/internal/value"
)

// builtinPrint writes its single optional argument followed by a newline.
// Argument count is not enforced: print() with no arguments writes only
// the newline.
func builtinPrint(v *VM, argRegs []int, resultReg int) {
	if len(argRegs) > 0 {
		fmt.Fprint(v.stdout, v.regs[argRegs[0]].String())
	}
	fmt.Fprintln(v.stdout)
	v.regs[resultReg] = value.NewNumber(0.0)
}

// builtinInput writes its prompt (no trailing newline), flushes, and
// reads one line from stdin as the result String.
func builtinInput(v *VM, argRegs []int, resultReg int) {
	if len(argRegs) != 1 {
		v.fail("input() expects 1 argument, %d given", len(argRegs))
	}
	fmt.Fprint(v.stdout, v.regs[argRegs[0]].String())
	if f, ok := v.stdout.(interface{ Flush() error }); ok {
		f.Flush()
	}

	line, err := v.stdin.ReadString('\n')
	if err != nil {
		// Mirrors the reference implementation: any line read right up
		// against EOF (even a partial one) is discarded as empty.
		line = ""
	} else {
		line = strings.TrimRight(line, "\r\n")
	}
	v.regs[resultReg] = value.NewString(line)
}

// builtinStr2Int parses its String argument as a float64; the entire
// string must parse or this is a fatal runtime error.
func builtinStr2Int(v *VM, argRegs []int, resultReg int) {
	if len(argRegs) != 1 {
		v.fail("str2int() expects 1 argument, %d given", len(argRegs))
	}
	arg := v.regs[argRegs[0]]
	if !arg.IsString() {
		v.fail("str2int() argument must be a string")
	}
	// strtod-style: skip leading whitespace only, trailing garbage fails.
	trimmed := strings.TrimLeft(arg.Str, " \t\n\r\v\f")
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		v.fail("str2int() invalid number format: %q", arg.Str)
	}
	v.regs[resultReg] = value.NewNumber(n)
}
