/*
   cpu48 - Peripheral subsystem: timer, disk controller, monitor frame
   buffer, LED/7-seg mirrors, and the external IRQ2 event feed.

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

// checkIRQ2 raises irq2status if the current cycle matches the next
// scheduled external event, and advances the cursor. EOF (cursor past
// the end of the loaded schedule) means no further IRQ2 events.
func (m *Machine) checkIRQ2() {
	if m.irq2Cursor >= len(m.irq2Schedule) {
		return
	}
	if m.irq2Schedule[m.irq2Cursor] == int(m.Clock) {
		m.IO[ioIRQ2Status] = 1
		m.irq2Cursor++
	}
}

// stepPeripherals runs the disk controller, the monitor commit, and
// the LED/7-seg out-logs, all after execute per the component's
// ordering guarantee. Timer advance is handled separately in
// stepTimer, which runs after the clock cycle increments.
func (m *Machine) stepPeripherals() {
	m.stepDisk()
	m.stepMonitor()
	m.stepOutLogs()
}

// stepDisk advances the disk sector-transfer state machine. A
// transfer begins the first cycle a non-zero diskcmd is observed,
// moves one word every 8th cycle of the operation, and completes
// after 1024 cycles (128 words), at which point diskcmd and
// diskstatus are cleared and irq1status is raised.
func (m *Machine) stepDisk() {
	if !m.diskActive {
		if m.IO[ioDiskCmd] == 0 {
			return
		}
		m.diskActive = true
		m.diskCmd = m.IO[ioDiskCmd]
		m.IO[ioDiskStatus] = 1
		m.diskCycle = 0
		m.diskIndex = 0
		return
	}

	m.diskCycle++
	if m.diskCycle%8 == 0 {
		dataAddr := (m.IO[ioDiskBuffer] + uint32(m.diskIndex)) & 0xFFF
		diskAddr := (m.IO[ioDiskSector]*128 + uint32(m.diskIndex)) % diskSize
		if m.diskCmd == 1 {
			m.Data[dataAddr] = m.Disk[diskAddr]
		} else {
			m.Disk[diskAddr] = m.Data[dataAddr]
		}
		m.diskIndex++
	}

	if m.diskCycle == 1024 {
		m.IO[ioDiskCmd] = 0
		m.IO[ioDiskStatus] = 0
		m.IO[ioIRQ1Status] = 1
		m.diskActive = false
		m.diskCycle = 0
		m.diskIndex = 0
	}
}

// stepMonitor commits one pixel write per cycle when monitorcmd is set.
func (m *Machine) stepMonitor() {
	if m.IO[ioMonitorCmd] != 1 {
		return
	}
	addr := m.IO[ioMonitorAddr] % monitorSize
	m.Monitor[addr] = byte(m.IO[ioMonitorData])
	m.IO[ioMonitorCmd] = 0
}

// stepOutLogs logs the one `out` this cycle touched leds or
// display7seg, mirroring the I/O register's value.
func (m *Machine) stepOutLogs() {
	if m.lastOutReg == ioLEDs {
		m.Trace.LED(m.Clock, m.IO[ioLEDs])
	} else if m.lastOutReg == ioDisplay7Seg {
		m.Trace.SevenSeg(m.Clock, m.IO[ioDisplay7Seg])
	}
}

// stepTimer advances the free-running timer. timermax is initialized
// to 0xFFFFFFFF by New and can be overridden with an out to timermax
// before timerenable is set.
func (m *Machine) stepTimer() {
	if m.IO[ioTimerEnable] == 0 {
		return
	}
	if m.IO[ioTimerCurrent] == m.IO[ioTimerMax] {
		m.IO[ioTimerCurrent] = 0
		m.IO[ioIRQ0Status] = 1
	} else {
		m.IO[ioTimerCurrent]++
	}
}
