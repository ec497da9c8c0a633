/*
   cpu48 - Trace and final-state emitter tests.

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

package trace

import (
	"bytes"
	"strings"
	"testing"
)

func TestEmitterInstruction(t *testing.T) {
	var buf bytes.Buffer
	e := &Emitter{Trace: &buf}
	var regs [16]uint32
	regs[3] = 0xCAFEBABE
	e.Instruction(1, 0x123456789ABC, regs)

	line := buf.String()
	if !strings.HasPrefix(line, "001 123456789ABC ") {
		t.Errorf("Instruction line = %q, want prefix \"001 123456789ABC \"", line)
	}
	if !strings.Contains(line, "cafebabe") {
		t.Errorf("Instruction line = %q, want register value in lowercase", line)
	}
}

func TestEmitterNilFieldsAreNoops(t *testing.T) {
	e := &Emitter{}
	e.Instruction(0, 0, [16]uint32{})
	e.HWRegister(0, "READ", "leds", 0)
	e.LED(0, 0)
	e.SevenSeg(0, 0)
	e.FinalCycles(0)
	e.RegisterDump([16]uint32{})
}

func TestEmitterHWRegister(t *testing.T) {
	var buf bytes.Buffer
	e := &Emitter{HWReg: &buf}
	e.HWRegister(42, "WRITE", "leds", 0xFF)
	want := "42 WRITE leds 000000ff\n"
	if buf.String() != want {
		t.Errorf("HWRegister wrote %q, want %q", buf.String(), want)
	}
}

func TestEmitterLEDLowercaseSevenSegUppercase(t *testing.T) {
	var leds, seg bytes.Buffer
	e := &Emitter{LEDs: &leds, Display7Seg: &seg}
	e.LED(3, 0xAB)
	e.SevenSeg(3, 0xAB)
	if leds.String() != "3 000000ab\n" {
		t.Errorf("LED wrote %q", leds.String())
	}
	if seg.String() != "3 000000AB\n" {
		t.Errorf("SevenSeg wrote %q", seg.String())
	}
}

func TestEmitterRegisterDump(t *testing.T) {
	var buf bytes.Buffer
	e := &Emitter{RegOut: &buf}
	var regs [16]uint32
	regs[3] = 1
	regs[15] = 0xFF
	e.RegisterDump(regs)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 13 {
		t.Fatalf("got %d lines, want 13 (registers 3..15)", len(lines))
	}
	if lines[0] != "00000001" {
		t.Errorf("first register dump line = %q, want 00000001", lines[0])
	}
	if lines[12] != "000000FF" {
		t.Errorf("last register dump line = %q, want 000000FF", lines[12])
	}
}

func TestWriteMonitorTextHighestNonzero(t *testing.T) {
	monitor := make([]byte, 256)
	monitor[0] = 0x7
	var buf bytes.Buffer
	if err := WriteMonitorText(&buf, monitor); err != nil {
		t.Fatalf("WriteMonitorText: %v", err)
	}
	if buf.String() != "07\n" {
		t.Errorf("WriteMonitorText = %q, want \"07\\n\" (single nonzero pixel at index 0)", buf.String())
	}
}

func TestWriteMonitorTextAllZero(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMonitorText(&buf, make([]byte, 16)); err != nil {
		t.Fatalf("WriteMonitorText: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("WriteMonitorText wrote %q, want empty", buf.String())
	}
}

func TestWriteMonitorYUV(t *testing.T) {
	var buf bytes.Buffer
	monitor := []byte{1, 2, 3}
	if err := WriteMonitorYUV(&buf, monitor); err != nil {
		t.Fatalf("WriteMonitorYUV: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), monitor) {
		t.Errorf("WriteMonitorYUV wrote %v, want %v", buf.Bytes(), monitor)
	}
}

func TestDebuggerMask(t *testing.T) {
	var buf bytes.Buffer
	d := NewDebugger(&buf, 1)
	d.Debugf("io", 1, "hello %d", 5)
	if !strings.Contains(buf.String(), "io: hello 5") {
		t.Errorf("Debugf wrote %q", buf.String())
	}

	buf.Reset()
	d.Debugf("io", 2, "skip me")
	if buf.Len() != 0 {
		t.Errorf("Debugf should not fire for unset mask bit, got %q", buf.String())
	}
}

func TestDebuggerNilReceiver(t *testing.T) {
	var d *Debugger
	d.Debugf("io", 1, "must not panic")
}
