/*
   cpu48 - Assembler source handling: line normalization, label table,
   and immediate resolution.

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

// Package asmsrc holds the assembler's line-level plumbing: comment
// stripping and tokenization, the label→address table built in pass 1,
// and resolution of a token into an integer (decimal, hex, or label).
package asmsrc

import (
	"fmt"
	"strconv"
	"strings"
)

// Normalize reduces one raw source line to canonical form: strip
// anything from the first '#' onward, trim, turn commas into spaces,
// and collapse whitespace runs to single spaces.
func Normalize(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.ReplaceAll(line, ",", " ")
	fields := strings.Fields(line)
	return strings.Join(fields, " ")
}

// Labels maps a symbol to the instruction address it names.
type Labels struct {
	addr map[string]int
}

// NewLabels returns an empty label table.
func NewLabels() *Labels {
	return &Labels{addr: make(map[string]int)}
}

// Define records a symbol at the given address. It fails if the symbol
// was already defined, matching the assembler's "each symbol defined
// at most once" invariant.
func (l *Labels) Define(name string, addr int) error {
	if _, ok := l.addr[name]; ok {
		return fmt.Errorf("duplicate label %q", name)
	}
	l.addr[name] = addr
	return nil
}

// Lookup returns the address of a defined symbol.
func (l *Labels) Lookup(name string) (int, bool) {
	addr, ok := l.addr[name]
	return addr, ok
}

// ResolveImmediate turns a token into an integer per C4's grammar: a
// token matching -?[0-9]+ is decimal, a 0x/0X-prefixed token is hex,
// anything else is a label looked up in the label table.
func ResolveImmediate(token string, labels *Labels) (int, error) {
	if isDecimal(token) {
		v, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("malformed decimal immediate %q", token)
		}
		return int(v), nil
	}
	if strings.HasPrefix(token, "0x") || strings.HasPrefix(token, "0X") {
		v, err := strconv.ParseInt(token[2:], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("malformed hex immediate %q", token)
		}
		return int(v), nil
	}
	addr, ok := labels.Lookup(token)
	if !ok {
		return 0, fmt.Errorf("undefined label %q", token)
	}
	return addr, nil
}

func isDecimal(token string) bool {
	if token == "" {
		return false
	}
	i := 0
	if token[0] == '-' {
		i = 1
	}
	if i >= len(token) {
		return false
	}
	for ; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return false
		}
	}
	return true
}
