/*
   cpu48 - Simulator command-line entry point.

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

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/cpu48/internal/image"
	"github.com/rcornwell/cpu48/internal/logx"
	"github.com/rcornwell/cpu48/internal/machine"
	"github.com/rcornwell/cpu48/internal/trace"
)

// fileArgs names the 14 fixed positional arguments, in order.
var fileArgs = []string{
	"imemin", "dmemin", "diskin", "irq2in",
	"dmemout", "regout", "trace", "hwregtrace", "cycles",
	"leds", "display7seg", "diskout", "monitor", "monitor.yuv",
}

func main() {
	optDebug := getopt.BoolLong("debug", 'd', "Enable debug logging")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var logFile *os.File
	if *optLogFile != "" {
		var err error
		logFile, err = os.Create(*optLogFile)
		if err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
		defer logFile.Close()
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	logger := slog.New(logx.NewHandler(logFile, &slog.HandlerOptions{Level: programLevel}, *optDebug, "sim48"))
	slog.SetDefault(logger)

	args := getopt.Args()
	if len(args) != len(fileArgs) {
		getopt.Usage()
		os.Exit(1)
	}

	imemIn, err := os.Open(args[0])
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer imemIn.Close()
	instructions, err := image.ReadInstructionImage(imemIn)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	dmemIn, err := os.Open(args[1])
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer dmemIn.Close()
	data, err := image.ReadWordImage(dmemIn)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	diskIn, err := os.Open(args[2])
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer diskIn.Close()
	disk, err := image.ReadWordImage(diskIn)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	irq2In, err := os.Open(args[3])
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer irq2In.Close()
	irq2, err := image.ReadIRQSchedule(irq2In)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	outFiles := make([]*os.File, 0, len(fileArgs)-4)
	defer func() {
		for _, f := range outFiles {
			f.Close()
		}
	}()
	openOut := func(path string) *os.File {
		f, err := os.Create(path)
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
		outFiles = append(outFiles, f)
		return f
	}

	dmemOut := openOut(args[4])
	regOut := openOut(args[5])
	traceOut := openOut(args[6])
	hwregOut := openOut(args[7])
	cyclesOut := openOut(args[8])
	ledsOut := openOut(args[9])
	display7segOut := openOut(args[10])
	diskOut := openOut(args[11])
	monitorOut := openOut(args[12])
	monitorYUVOut := openOut(args[13])

	emitter := &trace.Emitter{
		Trace:       traceOut,
		HWReg:       hwregOut,
		Cycles:      cyclesOut,
		LEDs:        ledsOut,
		Display7Seg: display7segOut,
		RegOut:      regOut,
	}

	mask := 0
	if *optDebug {
		mask = 1
	}
	dbg := trace.NewDebugger(os.Stderr, mask)

	m := machine.New(
		image.FitToSize(instructions, 4096),
		image.FitToSize(data, 4096),
		image.FitToSize(disk, 128*128),
		irq2,
		emitter,
		dbg,
	)

	for !m.Terminated() {
		if err := m.Step(); err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
	}

	if err := image.WriteWordImage(dmemOut, image.TrimToHighestNonZero(m.Data[:])); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	if err := image.WriteWordImage(diskOut, image.TrimToHighestNonZero(m.Disk[:])); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	if err := trace.WriteMonitorText(monitorOut, m.Monitor[:]); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	if err := trace.WriteMonitorYUV(monitorYUVOut, m.Monitor[:]); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	emitter.RegisterDump(m.Regs)
	emitter.FinalCycles(m.Clock)

	logger.Info("simulation complete", "cycles", m.Clock)
}
