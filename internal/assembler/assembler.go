/*
   cpu48 - Two-pass assembler.

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

// Package assembler orchestrates the two-pass assembly of source text
// into an instruction image and a data image, using isa for the
// opcode/register tables and bit layout and asmsrc for line handling.
package assembler

import (
	"fmt"
	"strings"

	"github.com/rcornwell/cpu48/internal/asmsrc"
	"github.com/rcornwell/cpu48/internal/isa"
)

// Error is the single diagnostic type the assembler ever returns: the
// offending line number, the token or normalized source line it choked
// on, and why.
type Error struct {
	Line   int
	Token  string
	Reason string
}

func (e *Error) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Token, e.Reason)
}

// Result holds the two images produced by a successful assembly.
type Result struct {
	Instructions []uint64 // one 48-bit word per entry, in PC order
	Data         []uint32 // address 0 through the highest used address
}

// Assemble runs both passes over source lines and returns the
// instruction and data images, or the first fatal error encountered.
func Assemble(lines []string) (*Result, error) {
	labels := asmsrc.NewLabels()

	pc := 0
	for lineNum, raw := range lines {
		line := asmsrc.Normalize(raw)
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, ":") {
			name := strings.TrimSuffix(line, ":")
			if err := labels.Define(name, pc); err != nil {
				return nil, &Error{Line: lineNum + 1, Token: name, Reason: err.Error()}
			}
			continue
		}
		if strings.HasPrefix(line, ".word") {
			continue
		}
		pc++
	}

	instructions := make([]uint64, pc)
	data := make([]uint32, 0)
	dataSeen := false
	highest := -1

	pc = 0
	for lineNum, raw := range lines {
		line := asmsrc.Normalize(raw)
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, ":") {
			continue
		}
		if strings.HasPrefix(line, ".word") {
			addr, value, err := parseWord(line, labels)
			if err != nil {
				return nil, &Error{Line: lineNum + 1, Token: line, Reason: err.Error()}
			}
			if addr >= len(data) {
				grown := make([]uint32, addr+1)
				copy(grown, data)
				data = grown
			}
			if data[addr] != 0 {
				return nil, &Error{Line: lineNum + 1, Token: line, Reason: "overlapping .word target"}
			}
			data[addr] = value
			dataSeen = true
			if addr > highest {
				highest = addr
			}
			continue
		}
		word, err := parseInstruction(line, labels)
		if err != nil {
			return nil, &Error{Line: lineNum + 1, Token: line, Reason: err.Error()}
		}
		instructions[pc] = word
		pc++
	}

	if !dataSeen {
		data = nil
	} else {
		data = data[:highest+1]
	}

	return &Result{Instructions: instructions, Data: data}, nil
}

// parseWord parses ".word ADDR VALUE", each operand decimal or
// 0x-prefixed hex.
func parseWord(line string, labels *asmsrc.Labels) (addr int, value uint32, err error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, 0, fmt.Errorf("malformed .word directive")
	}
	a, err := asmsrc.ResolveImmediate(fields[1], labels)
	if err != nil {
		return 0, 0, err
	}
	v, err := asmsrc.ResolveImmediate(fields[2], labels)
	if err != nil {
		return 0, 0, err
	}
	return a, uint32(v), nil
}

// parseInstruction parses "opcode rd rs rt rm imm1 imm2" (trailing
// fields optional, default to zero) and encodes it to a 48-bit word.
func parseInstruction(line string, labels *asmsrc.Labels) (uint64, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || len(fields) > 7 {
		return 0, fmt.Errorf("malformed instruction")
	}

	op, ok := isa.Lookup(fields[0])
	if !ok {
		return 0, fmt.Errorf("unknown opcode %q", fields[0])
	}

	regs := [4]int{}
	for i := range regs {
		if i+1 >= len(fields) {
			break
		}
		r, ok := isa.LookupRegister(fields[i+1])
		if !ok {
			return 0, fmt.Errorf("unknown register %q", fields[i+1])
		}
		regs[i] = r
	}

	imms := [2]int{}
	for i := range imms {
		idx := 5 + i
		if idx >= len(fields) {
			break
		}
		v, err := asmsrc.ResolveImmediate(fields[idx], labels)
		if err != nil {
			return 0, err
		}
		imms[i] = v
	}

	return isa.Encode(isa.Word{
		Op:   op,
		Rd:   regs[0],
		Rs:   regs[1],
		Rt:   regs[2],
		Rm:   regs[3],
		Imm1: int32(imms[0]),
		Imm2: int32(imms[1]),
	}), nil
}
