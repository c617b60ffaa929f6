package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/minilang/minilang/internal/compiler"
	"github.com/minilang/minilang/internal/parser"
)

func runProgram(t *testing.T, src string) string {
	t.Helper()
	p := parser.New(src)
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	c := compiler.NewMain()
	if err := c.Compile(prog.Statements); err != nil {
		t.Fatalf("compile error: %v", err)
	}

	var out bytes.Buffer
	m := New(c.UserFuncs(), WithStdout(&out))
	if err := m.Run(c.Chunk()); err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	return out.String()
}

func TestAdditionAndPrint(t *testing.T) {
	got := runProgram(t, `let a = 1; let b = 2; print(a + b);`)
	if got != "3\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWhileLoop(t *testing.T) {
	got := runProgram(t, `let i = 0; while (i < 3) { print(i); i = i + 1; }`)
	if got != "0\n1\n2\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRecursiveFactorial(t *testing.T) {
	got := runProgram(t, `func fact(n) { if (n <= 1) { return 1; } return n * fact(n - 1); } print(fact(5));`)
	if strings.TrimSpace(got) != "120" {
		t.Fatalf("got %q", got)
	}
}

func TestForLoopBreak(t *testing.T) {
	got := runProgram(t, `for (let i = 0; i < 5; i = i + 1) { if (i == 3) { break; } print(i); }`)
	if got != "0\n1\n2\n" {
		t.Fatalf("got %q", got)
	}
}

func TestForLoopContinue(t *testing.T) {
	got := runProgram(t, `for (let i = 0; i < 4; i = i + 1) { if (i == 2) { continue; } print(i); }`)
	if got != "0\n1\n3\n" {
		t.Fatalf("got %q", got)
	}
}

func TestStringEquality(t *testing.T) {
	got := runProgram(t, `let s = "hi"; print(s == "hi"); print(s == "bye");`)
	if got != "1\n0\n" {
		t.Fatalf("got %q", got)
	}
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	p := parser.New(`print(1 / 0);`)
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	c := compiler.NewMain()
	if err := c.Compile(prog.Statements); err != nil {
		t.Fatalf("compile error: %v", err)
	}
	m := New(c.UserFuncs(), WithStdout(&bytes.Buffer{}))
	if err := m.Run(c.Chunk()); err == nil {
		t.Fatal("expected division-by-zero runtime error")
	}
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	p := parser.New(`func f(a) { return a; } print(f(1, 2));`)
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	c := compiler.NewMain()
	if err := c.Compile(prog.Statements); err != nil {
		t.Fatalf("compile error: %v", err)
	}
	m := New(c.UserFuncs(), WithStdout(&bytes.Buffer{}))
	if err := m.Run(c.Chunk()); err == nil {
		t.Fatal("expected arity-mismatch runtime error")
	}
}

func TestNotOnStringIsAlwaysFalse(t *testing.T) {
	got := runProgram(t, `print(!"anything");`)
	if strings.TrimSpace(got) != "0" {
		t.Fatalf("got %q", got)
	}
}

func TestStr2IntAndInput(t *testing.T) {
	p := parser.New(`let s = input("n? "); let n = str2int(s); print(n + 1);`)
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	c := compiler.NewMain()
	if err := c.Compile(prog.Statements); err != nil {
		t.Fatalf("compile error: %v", err)
	}
	var out bytes.Buffer
	m := New(c.UserFuncs(), WithStdout(&out), WithStdin(strings.NewReader("42\n")))
	if err := m.Run(c.Chunk()); err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	if out.String() != "n? 43\n" {
		t.Fatalf("got %q", out.String())
	}
}
