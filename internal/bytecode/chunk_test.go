package bytecode

import "testing"

func TestConstantPoolsAreStable(t *testing.T) {
	c := NewChunk()
	i0 := c.AddConstNumber(1.5)
	i1 := c.AddConstNumber(2.5)
	s0 := c.AddConstStr("hi")

	if i0 != 0 || i1 != 1 || s0 != 0 {
		t.Fatalf("got indices %d %d %d", i0, i1, s0)
	}
	if c.ConstNum[i0] != 1.5 || c.ConstNum[i1] != 2.5 || c.ConstStr[s0] != "hi" {
		t.Fatalf("pool contents changed: %+v", c)
	}
}

func TestStrRefEncoding(t *testing.T) {
	for _, idx := range []int{0, 1, 41} {
		enc := EncodeStrRef(idx)
		if !IsStrRef(enc) {
			t.Fatalf("encoded index %d not recognized as string ref", idx)
		}
		if DecodeStrRef(enc) != idx {
			t.Fatalf("round trip failed for %d: got %d", idx, DecodeStrRef(enc))
		}
	}
}

func TestWriteReturnsIndex(t *testing.T) {
	c := NewChunk()
	idx := c.Write(JUMP, 0, 0, 0)
	if idx != 0 {
		t.Fatalf("expected 0, got %d", idx)
	}
	idx2 := c.Write(HALT, 0, 0, 0)
	if idx2 != 1 {
		t.Fatalf("expected 1, got %d", idx2)
	}
}

func TestDisassembleDoesNotPanicOnEmptyChunk(t *testing.T) {
	c := NewChunk()
	out := Disassemble(c, "empty")
	if out == "" {
		t.Fatal("expected header even for empty chunk")
	}
}
