/*
   cpu48 - Interrupt controller: IRQ0/1/2 enable+status evaluation and
   handler entry. `reti` (in ops.go) performs the matching return.

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

// pending reports whether any of the three IRQ lines is both enabled
// and has its status bit set. Clearing a status bit is software's
// responsibility via `out`; this controller never clears one itself.
func (m *Machine) pending() bool {
	return (m.IO[ioIRQ0Enable] != 0 && m.IO[ioIRQ0Status] != 0) ||
		(m.IO[ioIRQ1Enable] != 0 && m.IO[ioIRQ1Status] != 0) ||
		(m.IO[ioIRQ2Enable] != 0 && m.IO[ioIRQ2Status] != 0)
}

// checkInterrupt evaluates interrupt entry at the end of an executed
// instruction, after peripheral updates. If a line is pending and no
// ISR is already active, it saves PC-next into irqreturn, redirects PC
// to irqhandler, and marks the ISR active — matching spec.md's literal
// "PC-next" wording rather than the original C reference's apparent
// extra decrement (see DESIGN.md).
func (m *Machine) checkInterrupt() {
	if !m.pending() || m.ISRActive {
		return
	}
	m.IO[ioIRQReturn] = m.PC
	m.PC = m.IO[ioIRQHandler] & 0xFFF
	m.ISRActive = true
}
