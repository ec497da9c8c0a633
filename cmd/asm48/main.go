/*
   cpu48 - Assembler command-line entry point.

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
	"strings"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/cpu48/internal/assembler"
	"github.com/rcornwell/cpu48/internal/image"
	"github.com/rcornwell/cpu48/internal/logx"
)

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
	logger := slog.New(logx.NewHandler(logFile, &slog.HandlerOptions{Level: programLevel}, *optDebug, "asm48"))
	slog.SetDefault(logger)

	args := getopt.Args()
	if len(args) != 3 {
		getopt.Usage()
		os.Exit(1)
	}
	srcPath, imemPath, dmemPath := args[0], args[1], args[2]

	src, err := os.ReadFile(srcPath)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	result, err := assembler.Assemble(strings.Split(string(src), "\n"))
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	imemOut, err := os.Create(imemPath)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer imemOut.Close()
	if err := image.WriteInstructionImage(imemOut, result.Instructions); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	if len(result.Data) > 0 {
		dmemOut, err := os.Create(dmemPath)
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
		defer dmemOut.Close()
		if err := image.WriteWordImage(dmemOut, result.Data); err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
	}

	logger.Info("assembled", "instructions", len(result.Instructions), "data words", len(result.Data))
}
