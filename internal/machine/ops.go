/*
   cpu48 - CPU opcode semantics and the opcode dispatch table.

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

package machine

import "github.com/rcornwell/cpu48/internal/isa"

// ioRegisterNames names each I/O slot for the hardware register trace.
var ioRegisterNames = [numIORegs]string{
	ioIRQ0Enable:   "irq0enable",
	ioIRQ1Enable:   "irq1enable",
	ioIRQ2Enable:   "irq2enable",
	ioIRQ0Status:   "irq0status",
	ioIRQ1Status:   "irq1status",
	ioIRQ2Status:   "irq2status",
	ioIRQHandler:   "irqhandler",
	ioIRQReturn:    "irqreturn",
	ioClks:         "clks",
	ioLEDs:         "leds",
	ioDisplay7Seg:  "display7seg",
	ioTimerEnable:  "timerenable",
	ioTimerCurrent: "timercurrent",
	ioTimerMax:     "timermax",
	ioDiskCmd:      "diskcmd",
	ioDiskSector:   "disksector",
	ioDiskBuffer:   "diskbuffer",
	ioDiskStatus:   "diskstatus",
	ioReserved18:   "reserved18",
	ioReserved19:   "reserved19",
	ioMonitorAddr:  "monitoraddr",
	ioMonitorData:  "monitordata",
	ioMonitorCmd:   "monitorcmd",
}

// createTable builds the opcode-indexed dispatch table, the same
// shape as the teacher's sysCPU.createTable but fixed-size since every
// opcode 0..21 is defined — there is no "unknown opcode" slot to fall
// back to. execute checks word.Op against this range before indexing,
// so a decoded opcode outside 0..21 never reaches this table.
func (m *Machine) createTable() {
	m.opTable = [isa.NumOpcodes]func(*Machine, isa.Word){
		isa.OpAdd:  opAdd,
		isa.OpSub:  opSub,
		isa.OpMac:  opMac,
		isa.OpAnd:  opAnd,
		isa.OpOr:   opOr,
		isa.OpXor:  opXor,
		isa.OpSll:  opSll,
		isa.OpSra:  opSra,
		isa.OpSrl:  opSrl,
		isa.OpBeq:  opBeq,
		isa.OpBne:  opBne,
		isa.OpBlt:  opBlt,
		isa.OpBgt:  opBgt,
		isa.OpBle:  opBle,
		isa.OpBge:  opBge,
		isa.OpJal:  opJal,
		isa.OpLw:   opLw,
		isa.OpSw:   opSw,
		isa.OpReti: opReti,
		isa.OpIn:   opIn,
		isa.OpOut:  opOut,
		isa.OpHalt: opHalt,
	}
}

func opAdd(m *Machine, w isa.Word) {
	m.Regs[w.Rd] = m.Regs[w.Rs] + m.Regs[w.Rt] + m.Regs[w.Rm]
}

func opSub(m *Machine, w isa.Word) {
	m.Regs[w.Rd] = m.Regs[w.Rs] - m.Regs[w.Rt] - m.Regs[w.Rm]
}

func opMac(m *Machine, w isa.Word) {
	m.Regs[w.Rd] = m.Regs[w.Rs]*m.Regs[w.Rt] + m.Regs[w.Rm]
}

func opAnd(m *Machine, w isa.Word) {
	m.Regs[w.Rd] = m.Regs[w.Rs] & m.Regs[w.Rt] & m.Regs[w.Rm]
}

func opOr(m *Machine, w isa.Word) {
	m.Regs[w.Rd] = m.Regs[w.Rs] | m.Regs[w.Rt] | m.Regs[w.Rm]
}

func opXor(m *Machine, w isa.Word) {
	m.Regs[w.Rd] = m.Regs[w.Rs] ^ m.Regs[w.Rt] ^ m.Regs[w.Rm]
}

// shiftAmount masks the shift count to 5 bits, a deliberate conformance
// choice over the original's unmasked native shift (see DESIGN.md).
func shiftAmount(rt uint32) uint32 {
	return rt & 31
}

func opSll(m *Machine, w isa.Word) {
	m.Regs[w.Rd] = m.Regs[w.Rs] << shiftAmount(m.Regs[w.Rt])
}

func opSra(m *Machine, w isa.Word) {
	m.Regs[w.Rd] = uint32(int32(m.Regs[w.Rs]) >> shiftAmount(m.Regs[w.Rt]))
}

func opSrl(m *Machine, w isa.Word) {
	m.Regs[w.Rd] = m.Regs[w.Rs] >> shiftAmount(m.Regs[w.Rt])
}

func opBeq(m *Machine, w isa.Word) {
	if m.Regs[w.Rs] == m.Regs[w.Rt] {
		m.branch(w.Rm)
	}
}

func opBne(m *Machine, w isa.Word) {
	if m.Regs[w.Rs] != m.Regs[w.Rt] {
		m.branch(w.Rm)
	}
}

func opBlt(m *Machine, w isa.Word) {
	if int32(m.Regs[w.Rs]) < int32(m.Regs[w.Rt]) {
		m.branch(w.Rm)
	}
}

func opBgt(m *Machine, w isa.Word) {
	if int32(m.Regs[w.Rs]) > int32(m.Regs[w.Rt]) {
		m.branch(w.Rm)
	}
}

func opBle(m *Machine, w isa.Word) {
	if int32(m.Regs[w.Rs]) <= int32(m.Regs[w.Rt]) {
		m.branch(w.Rm)
	}
}

func opBge(m *Machine, w isa.Word) {
	if int32(m.Regs[w.Rs]) >= int32(m.Regs[w.Rt]) {
		m.branch(w.Rm)
	}
}

// branch sets PC to the low 12 bits of the value held in register rm.
func (m *Machine) branch(rm int) {
	m.PC = m.Regs[rm] & 0xFFF
	m.pcJumped = true
}

func opJal(m *Machine, w isa.Word) {
	m.Regs[w.Rd] = (m.PC + 1) & 0xFFF
	m.branch(w.Rm)
}

func opLw(m *Machine, w isa.Word) {
	addr := (m.Regs[w.Rs] + m.Regs[w.Rt]) & 0xFFF
	m.Regs[w.Rd] = m.Data[addr] + m.Regs[w.Rm]
}

func opSw(m *Machine, w isa.Word) {
	addr := (m.Regs[w.Rs] + m.Regs[w.Rt]) & 0xFFF
	m.Data[addr] = m.Regs[w.Rm] + m.Regs[w.Rd]
}

func opReti(m *Machine, _ isa.Word) {
	m.PC = m.IO[ioIRQReturn] & 0xFFF
	m.pcJumped = true
	m.ISRActive = false
}

func opIn(m *Machine, w isa.Word) {
	addr := int((m.Regs[w.Rs] + m.Regs[w.Rt]) % numIORegs)
	value := m.IO[addr]
	m.Debug.Debugf("io", 1, "read %s = %08x", ioRegisterNames[addr], value)
	m.Trace.HWRegister(m.Clock, "READ", ioRegisterNames[addr], value)
	if addr == ioMonitorCmd {
		m.Regs[w.Rd] = 0
		return
	}
	m.Regs[w.Rd] = value
}

func opOut(m *Machine, w isa.Word) {
	addr := int((m.Regs[w.Rs] + m.Regs[w.Rt]) % numIORegs)
	value := m.Regs[w.Rm]
	m.IO[addr] = value
	m.lastOutReg = addr
	m.Debug.Debugf("io", 1, "write %s = %08x", ioRegisterNames[addr], value)
	m.Trace.HWRegister(m.Clock, "WRITE", ioRegisterNames[addr], value)
}

func opHalt(m *Machine, _ isa.Word) {
	m.Halted = true
}
