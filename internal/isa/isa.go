/*
   cpu48 - ISA definition: opcodes, registers, and the 48-bit word layout.

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

// Package isa holds the opcode table, register table, and the bit-exact
// layout of the 48-bit instruction word. It is shared by the assembler
// and the machine so both encode/decode a word the same way.
package isa

// Opcode values. Anything outside 0..21 is invalid, both at assemble
// time and at execute time.
const (
	OpAdd = iota
	OpSub
	OpMac
	OpAnd
	OpOr
	OpXor
	OpSll
	OpSra
	OpSrl
	OpBeq
	OpBne
	OpBlt
	OpBgt
	OpBle
	OpBge
	OpJal
	OpLw
	OpSw
	OpReti
	OpIn
	OpOut
	OpHalt

	NumOpcodes
)

// Register slot indices. Slot 0 always reads as 0. Slots 1 and 2 are
// overwritten with imm1/imm2 before every instruction executes.
const (
	RegZero = iota
	RegImm1
	RegImm2
	RegV0
	RegA0
	RegA1
	RegA2
	RegT0
	RegT1
	RegT2
	RegS0
	RegS1
	RegS2
	RegGp
	RegSp
	RegRa

	NumRegisters
)

// Mnemonics indexed by opcode value.
var Mnemonics = [NumOpcodes]string{
	OpAdd:  "add",
	OpSub:  "sub",
	OpMac:  "mac",
	OpAnd:  "and",
	OpOr:   "or",
	OpXor:  "xor",
	OpSll:  "sll",
	OpSra:  "sra",
	OpSrl:  "srl",
	OpBeq:  "beq",
	OpBne:  "bne",
	OpBlt:  "blt",
	OpBgt:  "bgt",
	OpBle:  "ble",
	OpBge:  "bge",
	OpJal:  "jal",
	OpLw:   "lw",
	OpSw:   "sw",
	OpReti: "reti",
	OpIn:   "in",
	OpOut:  "out",
	OpHalt: "halt",
}

// opByName is the assembler's mnemonic lookup table, built once from
// Mnemonics so the two can never drift apart.
var opByName = func() map[string]int {
	m := make(map[string]int, NumOpcodes)
	for op, name := range Mnemonics {
		m[name] = op
	}
	return m
}()

// Lookup returns the opcode for a mnemonic and whether it was found.
func Lookup(name string) (int, bool) {
	op, ok := opByName[name]
	return op, ok
}

// RegisterNames gives the canonical $-prefixed name for each slot.
var RegisterNames = [NumRegisters]string{
	RegZero: "$zero",
	RegImm1: "$imm1",
	RegImm2: "$imm2",
	RegV0:   "$v0",
	RegA0:   "$a0",
	RegA1:   "$a1",
	RegA2:   "$a2",
	RegT0:   "$t0",
	RegT1:   "$t1",
	RegT2:   "$t2",
	RegS0:   "$s0",
	RegS1:   "$s1",
	RegS2:   "$s2",
	RegGp:   "$gp",
	RegSp:   "$sp",
	RegRa:   "$ra",
}

var regByName = func() map[string]int {
	m := make(map[string]int, NumRegisters)
	for r, name := range RegisterNames {
		m[name] = r
	}
	return m
}()

// LookupRegister returns the slot index for a canonical register name.
func LookupRegister(name string) (int, bool) {
	r, ok := regByName[name]
	return r, ok
}

// Word is a decoded 48-bit instruction. Imm1/Imm2 are already
// sign-extended to 32 bits.
type Word struct {
	Op   int
	Rd   int
	Rs   int
	Rt   int
	Rm   int
	Imm1 int32
	Imm2 int32
}

// Encode packs a decoded instruction back into its 48-bit wire form,
// returned in the low 48 bits of a uint64. Immediates are truncated to
// 12 bits, matching encoding at assemble time: the encoder never
// range-checks them, since out-of-range values are simply unusable
// once truncated.
func Encode(w Word) uint64 {
	var word uint64
	word |= uint64(w.Op&0xFF) << 40
	word |= uint64(w.Rd&0xF) << 36
	word |= uint64(w.Rs&0xF) << 32
	word |= uint64(w.Rt&0xF) << 28
	word |= uint64(w.Rm&0xF) << 24
	word |= uint64(uint32(w.Imm1)&0xFFF) << 12
	word |= uint64(uint32(w.Imm2) & 0xFFF)
	return word
}

// Decode splits a 48-bit instruction word (held in the low 48 bits of
// a uint64) into its fields, sign-extending both immediates.
func Decode(word uint64) Word {
	return Word{
		Op:   int((word >> 40) & 0xFF),
		Rd:   int((word >> 36) & 0xF),
		Rs:   int((word >> 32) & 0xF),
		Rt:   int((word >> 28) & 0xF),
		Rm:   int((word >> 24) & 0xF),
		Imm1: signExtend12(uint32((word >> 12) & 0xFFF)),
		Imm2: signExtend12(uint32(word & 0xFFF)),
	}
}

// signExtend12 sign-extends a 12-bit field held in the low bits of v.
func signExtend12(v uint32) int32 {
	v &= 0xFFF
	if v&0x800 != 0 {
		v |= 0xFFFFF000
	}
	return int32(v)
}
