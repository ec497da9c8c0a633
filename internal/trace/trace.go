/*
   cpu48 - Trace and final-state output emitters.

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

// Package trace formats the simulator's per-cycle trace and final-dump
// output. Every emitter writes to an injected io.Writer so tests can
// observe a run's effects without touching disk.
package trace

import (
	"fmt"
	"io"
	"strings"
)

const hexMap = "0123456789ABCDEF"

func writeHexLower(sb *strings.Builder, value uint32, digits int) {
	shift := (digits - 1) * 4
	for i := 0; i < digits; i++ {
		sb.WriteByte(toLower(hexMap[(value>>shift)&0xF]))
		shift -= 4
	}
}

func writeHexUpper(sb *strings.Builder, value uint32, digits int) {
	shift := (digits - 1) * 4
	for i := 0; i < digits; i++ {
		sb.WriteByte(hexMap[(value>>shift)&0xF])
		shift -= 4
	}
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'F' {
		return b + ('a' - 'A')
	}
	return b
}

// Emitter bundles all the output sinks the simulator writes to. Any
// field left nil is simply skipped — the CLI wires all of them, tests
// wire whichever one they're checking.
type Emitter struct {
	Trace       io.Writer // per-cycle instruction trace
	HWReg       io.Writer // hardware register access log
	Cycles      io.Writer // final cycle count
	LEDs        io.Writer // leds out-log
	Display7Seg io.Writer // 7-seg out-log
	RegOut      io.Writer // final register dump
}

// Instruction writes one instruction-trace line: PC (3-hex), the
// instruction word (12-hex), then all 16 registers (8-hex lowercase).
func (e *Emitter) Instruction(pc int, instr uint64, regs [16]uint32) {
	if e.Trace == nil {
		return
	}
	var sb strings.Builder
	writeHexUpper(&sb, uint32(pc), 3)
	sb.WriteByte(' ')
	writeHexUpper(&sb, uint32(instr>>24), 6)
	writeHexUpper(&sb, uint32(instr&0xFFFFFF), 6)
	for _, r := range regs {
		sb.WriteByte(' ')
		writeHexLower(&sb, r, 8)
	}
	sb.WriteByte('\n')
	io.WriteString(e.Trace, sb.String())
}

// HWRegister logs one access to the I/O register file.
func (e *Emitter) HWRegister(cycle uint32, op string, name string, value uint32) {
	if e.HWReg == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %s %s ", cycle, op, name)
	writeHexLower(&sb, value, 8)
	sb.WriteByte('\n')
	io.WriteString(e.HWReg, sb.String())
}

// LED logs one out to the leds register.
func (e *Emitter) LED(cycle uint32, value uint32) {
	if e.LEDs == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d ", cycle)
	writeHexLower(&sb, value, 8)
	sb.WriteByte('\n')
	io.WriteString(e.LEDs, sb.String())
}

// SevenSeg logs one out to the display7seg register.
func (e *Emitter) SevenSeg(cycle uint32, value uint32) {
	if e.Display7Seg == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d ", cycle)
	writeHexUpper(&sb, value, 8)
	sb.WriteByte('\n')
	io.WriteString(e.Display7Seg, sb.String())
}

// FinalCycles writes the final clock-cycle count as a single decimal line.
func (e *Emitter) FinalCycles(clks uint32) {
	if e.Cycles == nil {
		return
	}
	fmt.Fprintf(e.Cycles, "%d\n", clks)
}

// RegisterDump writes CPU registers 3..15, one 8-hex-uppercase value
// per line.
func (e *Emitter) RegisterDump(regs [16]uint32) {
	if e.RegOut == nil {
		return
	}
	var sb strings.Builder
	for i := 3; i < 16; i++ {
		sb.Reset()
		writeHexUpper(&sb, regs[i], 8)
		sb.WriteByte('\n')
		io.WriteString(e.RegOut, sb.String())
	}
}

// WriteMonitorText writes 2-hex-uppercase bytes, one per line, from
// index 0 through the highest non-zero pixel inclusive. It scans the
// buffer itself for that highest index rather than trusting a running
// high-water mark, so a single non-zero pixel at index 0 is still
// written instead of being mistaken for "nothing written".
func WriteMonitorText(w io.Writer, monitor []byte) error {
	highest := -1
	for i, b := range monitor {
		if b != 0 {
			highest = i
		}
	}
	if highest < 0 {
		return nil
	}
	bw := io.Writer(w)
	var sb strings.Builder
	for i := 0; i <= highest; i++ {
		sb.Reset()
		writeHexUpper(&sb, uint32(monitor[i]), 2)
		sb.WriteByte('\n')
		if _, err := io.WriteString(bw, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteMonitorYUV writes the raw bytes of the full monitor buffer.
func WriteMonitorYUV(w io.Writer, monitor []byte) error {
	_, err := w.Write(monitor)
	return err
}

// Debugger gates verbose diagnostic output behind a bitmask, the way
// debug.Debugf does, but as a value instead of a package global so
// tests can construct one without touching shared state.
type Debugger struct {
	out  io.Writer
	mask int
}

// NewDebugger returns a Debugger writing to out, enabled for the bits
// set in mask. A nil out silences all output.
func NewDebugger(out io.Writer, mask int) *Debugger {
	return &Debugger{out: out, mask: mask}
}

// Debugf emits a formatted line if level is set in the debugger's mask.
func (d *Debugger) Debugf(module string, level int, format string, a ...interface{}) {
	if d == nil || d.out == nil || d.mask&level == 0 {
		return
	}
	fmt.Fprintf(d.out, module+": "+format+"\n", a...)
}
