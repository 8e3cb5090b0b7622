// Package query implements the temporal search language run against one
// signal of a decoded waveform: a value predicate (level or transition)
// optionally narrowed by "and after"/"and before" time qualifiers, e.g.
//
//	$value <- h4 and after 400
//
// Compilation binds the signal reference and the literal against a
// Waveform; evaluation walks the signal's edges lazily, producing time
// ranges in order.
package query

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type tokenType int

const (
	tokenError tokenType = iota
	tokenEOF
	tokenSignal  // $name
	tokenEqual   // =
	tokenArrow   // <-
	tokenKeyword // is, equals, becomes, and, after, before
	tokenNumber  // decimal integer
	tokenBin     // b-prefixed literal
	tokenHex     // h-prefixed literal
)

type token struct {
	typ tokenType
	val string
	pos int // byte offset in the expression
}

func (t token) String() string {
	if t.typ == tokenEOF {
		return "end of expression"
	}
	return fmt.Sprintf("%q", t.val)
}

var keywords = map[string]bool{
	"is":      true,
	"equals":  true,
	"becomes": true,
	"and":     true,
	"after":   true,
	"before":  true,
}

// lexer is a hand-written rune scanner over a single expression.
type lexer struct {
	input string
	start int
	pos   int
	width int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return -1
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	return r
}

func (l *lexer) backup() {
	l.pos -= l.width
}

func (l *lexer) emit(t tokenType) token {
	tok := token{typ: t, val: l.input[l.start:l.pos], pos: l.start}
	l.start = l.pos
	return tok
}

// nextToken returns the next token in the expression.
func (l *lexer) nextToken() token {
	for {
		r := l.next()
		if r == -1 {
			return l.emit(tokenEOF)
		}
		if unicode.IsSpace(r) {
			l.start = l.pos
			continue
		}

		switch {
		case r == '$':
			return l.lexSignal()
		case r == '=':
			return l.emit(tokenEqual)
		case r == '<':
			if l.next() == '-' {
				return l.emit(tokenArrow)
			}
			l.backup()
			return l.emit(tokenError)
		case unicode.IsDigit(r):
			return l.lexNumber()
		case unicode.IsLetter(r):
			return l.lexWord()
		default:
			return l.emit(tokenError)
		}
	}
}

// lexSignal consumes a $-prefixed signal reference. Any non-space printable
// character may appear in a signal name (VCD names carry dots, brackets and
// slashes).
func (l *lexer) lexSignal() token {
	for {
		r := l.next()
		if r == -1 || unicode.IsSpace(r) {
			l.backup()
			break
		}
	}
	if l.pos == l.start+1 {
		return l.emit(tokenError)
	}
	return l.emit(tokenSignal)
}

// lexNumber consumes a decimal integer. A letter glued to the digits makes
// the whole word an error token; "400and" is not "400" followed by "and".
func (l *lexer) lexNumber() token {
	for {
		r := l.next()
		if unicode.IsDigit(r) {
			continue
		}
		if unicode.IsLetter(r) {
			for unicode.IsLetter(r) || unicode.IsDigit(r) {
				r = l.next()
			}
			l.backup()
			return l.emit(tokenError)
		}
		l.backup()
		return l.emit(tokenNumber)
	}
}

// lexWord consumes a keyword or a radix-prefixed literal. "b01xz" and "h4a"
// are literals; bare words must be keywords.
func (l *lexer) lexWord() token {
	for {
		r := l.next()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' {
			l.backup()
			break
		}
	}
	word := l.input[l.start:l.pos]
	if keywords[word] {
		return l.emit(tokenKeyword)
	}
	if len(word) > 1 {
		switch word[0] {
		case 'b':
			return l.emit(tokenBin)
		case 'h':
			return l.emit(tokenHex)
		}
	}
	return l.emit(tokenError)
}
