/*
   cpu48 - Memory image I/O: instruction/data/disk hex-line files and
   the IRQ2 schedule file.

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

// Package image reads and writes the hex-line memory images shared by
// the assembler and the simulator (instruction words, data/disk words)
// and the simulator's decimal IRQ2 schedule file.
package image

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const hexMap = "0123456789ABCDEF"

func formatHex(sb *strings.Builder, value uint64, digits int) {
	shift := (digits - 1) * 4
	for i := 0; i < digits; i++ {
		sb.WriteByte(hexMap[(value>>shift)&0xF])
		shift -= 4
	}
}

// WriteInstructionImage writes one instruction per line, 12 uppercase
// hex digits, no prefix.
func WriteInstructionImage(w io.Writer, words []uint64) error {
	bw := bufio.NewWriter(w)
	var sb strings.Builder
	for _, word := range words {
		sb.Reset()
		formatHex(&sb, word, 12)
		sb.WriteByte('\n')
		if _, err := bw.WriteString(sb.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadInstructionImage reads an instruction image back into a slice of
// 48-bit words (held in the low bits of each uint64), one per line.
func ReadInstructionImage(r io.Reader) ([]uint64, error) {
	var words []uint64
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseUint(line, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed instruction image line %q: %w", line, err)
		}
		words = append(words, v)
	}
	return words, sc.Err()
}

// WriteWordImage writes one 32-bit word per line, 8 uppercase hex
// digits, no prefix. Used for both the data image and the disk image.
func WriteWordImage(w io.Writer, words []uint32) error {
	bw := bufio.NewWriter(w)
	var sb strings.Builder
	for _, word := range words {
		sb.Reset()
		formatHex(&sb, uint64(word), 8)
		sb.WriteByte('\n')
		if _, err := bw.WriteString(sb.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadWordImage reads a data or disk image into a slice of 32-bit
// words, one per line.
func ReadWordImage(r io.Reader) ([]uint32, error) {
	var words []uint32
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseUint(line, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("malformed word image line %q: %w", line, err)
		}
		words = append(words, uint32(v))
	}
	return words, sc.Err()
}

// ReadIRQSchedule reads the IRQ2 input file: one decimal cycle number
// per line, monotonically non-decreasing.
func ReadIRQSchedule(r io.Reader) ([]int, error) {
	var cycles []int
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("malformed IRQ2 schedule line %q: %w", line, err)
		}
		cycles = append(cycles, v)
	}
	return cycles, sc.Err()
}

// FitToSize returns a copy of words truncated or zero-padded to
// exactly size entries, for loading a variable-length image file into
// a fixed-size machine memory.
func FitToSize[T any](words []T, size int) []T {
	out := make([]T, size)
	n := len(words)
	if n > size {
		n = size
	}
	copy(out, words[:n])
	return out
}

// TrimToHighestNonZero returns words sliced through its highest
// nonzero entry, or nil if every entry is zero. Output images only
// record the memory a run actually touched, matching the truncation
// the assembler applies to its own data image.
func TrimToHighestNonZero(words []uint32) []uint32 {
	highest := -1
	for i, w := range words {
		if w != 0 {
			highest = i
		}
	}
	if highest < 0 {
		return nil
	}
	return words[:highest+1]
}
