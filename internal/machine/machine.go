/*
   cpu48 - Machine: the single owning value bundling every piece of
   simulator state, replacing the package-global CPU/memory pattern the
   teacher's own CPU core uses.

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

// Package machine implements the cycle-accurate execution engine: the
// CPU step loop, the timer/disk/monitor/LED peripheral subsystem, and
// the three-line interrupt controller, all hung off one Machine value.
package machine

import (
	"fmt"

	"github.com/rcornwell/cpu48/internal/isa"
	"github.com/rcornwell/cpu48/internal/trace"
)

// Error is the single diagnostic type Step ever returns: a Bounds
// error (spec §7) for an invalid decoded opcode, naming the cycle and
// PC it was fetched at.
type Error struct {
	Cycle  uint32
	PC     uint32
	Opcode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("cycle %d: pc %03x: invalid opcode %d", e.Cycle, e.PC, e.Opcode)
}

// I/O register indices, per the fixed 23-slot layout.
const (
	ioIRQ0Enable = iota
	ioIRQ1Enable
	ioIRQ2Enable
	ioIRQ0Status
	ioIRQ1Status
	ioIRQ2Status
	ioIRQHandler
	ioIRQReturn
	ioClks
	ioLEDs
	ioDisplay7Seg
	ioTimerEnable
	ioTimerCurrent
	ioTimerMax
	ioDiskCmd
	ioDiskSector
	ioDiskBuffer
	ioDiskStatus
	ioReserved18
	ioReserved19
	ioMonitorAddr
	ioMonitorData
	ioMonitorCmd

	numIORegs
)

const (
	instMemSize = 4096
	dataMemSize = 4096
	diskSize    = 128 * 128
	monitorSize = 256 * 256
)

// Machine bundles every piece of mutable simulator state. It is passed
// by pointer to every step/peripheral/interrupt function; there is no
// package-level state anywhere in this package.
type Machine struct {
	PC        uint32
	Regs      [isa.NumRegisters]uint32
	Clock     uint32
	Halted    bool
	ISRActive bool

	Inst    [instMemSize]uint64
	Data    [dataMemSize]uint32
	Disk    [diskSize]uint32
	Monitor [monitorSize]byte

	IO [numIORegs]uint32

	diskActive bool
	diskCmd    uint32
	diskCycle  int
	diskIndex  int

	irq2Schedule []int
	irq2Cursor   int

	lastOutReg int  // IO register index written by `out` this cycle, or -1
	pcJumped   bool // set by branch/jump/reti ops this cycle

	Trace *trace.Emitter
	Debug *trace.Debugger

	opTable [isa.NumOpcodes]func(*Machine, isa.Word)
}

// New returns a zero-initialized Machine with its dispatch table built
// and instruction/data/disk images loaded. sink and dbg may be nil; a
// nil sink or debugger is replaced with an inert one so call sites
// never need their own nil checks.
func New(inst []uint64, data []uint32, disk []uint32, irq2 []int, sink *trace.Emitter, dbg *trace.Debugger) *Machine {
	if sink == nil {
		sink = &trace.Emitter{}
	}
	if dbg == nil {
		dbg = trace.NewDebugger(nil, 0)
	}
	m := &Machine{
		irq2Schedule: irq2,
		lastOutReg:   -1,
		Trace:        sink,
		Debug:        dbg,
	}
	m.IO[ioTimerMax] = 0xFFFFFFFF
	m.createTable()
	copy(m.Inst[:], inst)
	copy(m.Data[:], data)
	copy(m.Disk[:], disk)
	return m
}

// Terminated reports whether the run should stop: halt has been
// issued and the disk is no longer busy transferring.
func (m *Machine) Terminated() bool {
	return m.Halted && m.IO[ioDiskStatus] == 0
}

// Step executes exactly one loop iteration per the component's
// ordering guarantees: IRQ2 check, fetch/decode/execute, peripheral
// updates, interrupt entry, clock advance, timer advance. It returns a
// *Error if the decoded opcode is out of bounds (spec §7); the caller
// should abort the run rather than continue stepping.
func (m *Machine) Step() error {
	m.checkIRQ2()

	stalling := m.Halted && m.IO[ioDiskStatus] != 0

	word := isa.Decode(m.Inst[m.PC&0xFFF])
	m.Regs[isa.RegImm1] = uint32(word.Imm1)
	m.Regs[isa.RegImm2] = uint32(word.Imm2)

	if !stalling {
		m.Trace.Instruction(int(m.PC), m.Inst[m.PC&0xFFF], m.Regs)
	}

	m.lastOutReg = -1
	pcSet, err := m.execute(word)
	if err != nil {
		return err
	}
	m.Regs[isa.RegZero] = 0

	if !stalling && !pcSet {
		m.PC = (m.PC + 1) & 0xFFF
	}

	m.stepPeripherals()
	m.checkInterrupt()

	m.Clock++
	m.IO[ioClks] = m.Clock
	m.stepTimer()
	return nil
}

// execute dispatches one decoded instruction and reports whether it
// explicitly set PC (branch, jump, or reti), suppressing the default
// PC+1 advance. An opcode outside 0..NumOpcodes-1 is a Bounds error
// (spec §7) rather than an out-of-range dispatch-table access.
func (m *Machine) execute(word isa.Word) (bool, error) {
	if word.Op >= isa.NumOpcodes {
		return false, &Error{Cycle: m.Clock, PC: m.PC, Opcode: word.Op}
	}
	m.pcJumped = false
	m.opTable[word.Op](m, word)
	return m.pcJumped, nil
}
