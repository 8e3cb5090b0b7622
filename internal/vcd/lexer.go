package vcd

import (
	"bufio"
	"io"
	"strings"
)

// tokenizer splits VCD input into whitespace-separated words while tracking
// the current line for error reporting. VCD is line-oriented only loosely
// (directives may span lines), so the word is the lexical unit.
type tokenizer struct {
	scanner *bufio.Scanner
	words   []string
	next    int
	line    int
	eof     bool
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &tokenizer{scanner: sc}
}

// word returns the next word in the input and the line it appeared on.
// ok is false at end of input.
func (t *tokenizer) word() (w string, line int, ok bool) {
	for t.next >= len(t.words) {
		if t.eof || !t.scanner.Scan() {
			t.eof = true
			return "", t.line, false
		}
		t.line++
		t.words = strings.Fields(t.scanner.Text())
		t.next = 0
	}
	w = t.words[t.next]
	t.next++
	return w, t.line, true
}

// err surfaces any read error from the underlying scanner.
func (t *tokenizer) err() error {
	return t.scanner.Err()
}
