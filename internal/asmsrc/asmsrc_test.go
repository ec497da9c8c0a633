/*
   cpu48 - Assembler source plumbing tests.

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

package asmsrc

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  add  $v0, $a0,  $a1  # comment", "add $v0 $a0 $a1"},
		{"# just a comment", ""},
		{"", ""},
		{"loop:", "loop:"},
		{"sub\t$t0,$t1,$t2,$t3", "sub $t0 $t1 $t2 $t3"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLabelsDefineLookup(t *testing.T) {
	l := NewLabels()
	if err := l.Define("loop", 4); err != nil {
		t.Fatalf("Define: %v", err)
	}
	addr, ok := l.Lookup("loop")
	if !ok || addr != 4 {
		t.Errorf("Lookup(\"loop\") = %d, %v, want 4, true", addr, ok)
	}
	if _, ok := l.Lookup("missing"); ok {
		t.Error("Lookup(\"missing\") reported found")
	}
	if err := l.Define("loop", 8); err == nil {
		t.Error("Define did not reject duplicate label")
	}
}

func TestResolveImmediate(t *testing.T) {
	l := NewLabels()
	_ = l.Define("start", 7)

	tests := []struct {
		token   string
		want    int
		wantErr bool
	}{
		{"42", 42, false},
		{"-5", -5, false},
		{"0x1F", 31, false},
		{"0X10", 16, false},
		{"start", 7, false},
		{"nowhere", 0, true},
	}
	for _, tt := range tests {
		got, err := ResolveImmediate(tt.token, l)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ResolveImmediate(%q) expected error", tt.token)
			}
			continue
		}
		if err != nil {
			t.Errorf("ResolveImmediate(%q) unexpected error: %v", tt.token, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveImmediate(%q) = %d, want %d", tt.token, got, tt.want)
		}
	}
}
