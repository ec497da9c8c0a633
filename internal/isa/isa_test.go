/*
   cpu48 - ISA encode/decode tests.

   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   RICHARD CORNWELL BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/

package isa

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []Word{
		{Op: OpAdd, Rd: 3, Rs: 4, Rt: 5, Rm: 6, Imm1: 0, Imm2: 0},
		{Op: OpLw, Rd: 15, Rs: 1, Rt: 2, Rm: 3, Imm1: 2047, Imm2: -2048},
		{Op: OpHalt, Rd: 0, Rs: 0, Rt: 0, Rm: 0, Imm1: -1, Imm2: 1},
		{Op: OpBeq, Rd: 0, Rs: 10, Rt: 11, Rm: 12, Imm1: 0, Imm2: 0},
	}

	for _, w := range tests {
		word := Encode(w)
		got := Decode(word)
		if got != w {
			t.Errorf("Encode/Decode(%+v) = %+v, want %+v", w, got, w)
		}
	}
}

func TestEncodeFieldPlacement(t *testing.T) {
	w := Word{Op: 21, Rd: 15, Rs: 1, Rt: 2, Rm: 3, Imm1: 1, Imm2: 2}
	word := Encode(w)

	if op := (word >> 40) & 0xFF; op != 21 {
		t.Errorf("opcode field = %d, want 21", op)
	}
	if rd := (word >> 36) & 0xF; rd != 15 {
		t.Errorf("rd field = %d, want 15", rd)
	}
	if imm1 := (word >> 12) & 0xFFF; imm1 != 1 {
		t.Errorf("imm1 field = %d, want 1", imm1)
	}
	if imm2 := word & 0xFFF; imm2 != 2 {
		t.Errorf("imm2 field = %d, want 2", imm2)
	}
}

func TestSignExtend12(t *testing.T) {
	tests := []struct {
		in   uint32
		want int32
	}{
		{0, 0},
		{1, 1},
		{0x7FF, 2047},
		{0x800, -2048},
		{0xFFF, -1},
	}
	for _, tt := range tests {
		if got := signExtend12(tt.in); got != tt.want {
			t.Errorf("signExtend12(%#x) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	op, ok := Lookup("add")
	if !ok || op != OpAdd {
		t.Errorf("Lookup(\"add\") = %d, %v, want %d, true", op, ok, OpAdd)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(\"nope\") reported found")
	}
}

func TestLookupRegister(t *testing.T) {
	r, ok := LookupRegister("$ra")
	if !ok || r != RegRa {
		t.Errorf("LookupRegister(\"$ra\") = %d, %v, want %d, true", r, ok, RegRa)
	}
	if _, ok := LookupRegister("$nope"); ok {
		t.Error("LookupRegister(\"$nope\") reported found")
	}
}

func TestMnemonicsCoverAllOpcodes(t *testing.T) {
	for op := 0; op < NumOpcodes; op++ {
		if Mnemonics[op] == "" {
			t.Errorf("opcode %d has no mnemonic", op)
		}
	}
}
