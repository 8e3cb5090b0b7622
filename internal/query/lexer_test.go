package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lexAll(input string) []token {
	l := newLexer(input)
	var toks []token
	for {
		tok := l.nextToken()
		toks = append(toks, tok)
		if tok.typ == tokenEOF || tok.typ == tokenError {
			return toks
		}
	}
}

func TestLexer_FullExpression(t *testing.T) {
	t.Parallel()

	toks := lexAll("$top.value <- h4a and after 400")
	want := []token{
		{tokenSignal, "$top.value", 0},
		{tokenArrow, "<-", 11},
		{tokenHex, "h4a", 14},
		{tokenKeyword, "and", 18},
		{tokenKeyword, "after", 22},
		{tokenNumber, "400", 28},
		{tokenEOF, "", 31},
	}
	assert.Equal(t, want, toks)
}

func TestLexer_Comparators(t *testing.T) {
	t.Parallel()

	toks := lexAll("$v = b01xz")
	want := []token{
		{tokenSignal, "$v", 0},
		{tokenEqual, "=", 3},
		{tokenBin, "b01xz", 5},
		{tokenEOF, "", 10},
	}
	assert.Equal(t, want, toks)

	assert.Equal(t, tokenKeyword, lexAll("$v is 1")[1].typ)
	assert.Equal(t, tokenKeyword, lexAll("$v becomes 1")[1].typ)
}

func TestLexer_Errors(t *testing.T) {
	t.Parallel()

	// A bare $ is not a signal reference.
	assert.Equal(t, tokenError, lexAll("$ = 1")[0].typ)
	// < without - is not a comparator.
	assert.Equal(t, tokenError, lexAll("$v < 1")[1].typ)
	// Bare words that are neither keywords nor radix literals.
	assert.Equal(t, tokenError, lexAll("$v maybe 1")[1].typ)
	assert.Equal(t, tokenError, lexAll("$v = q")[2].typ)
}

func TestLexer_NumberNeedsBoundary(t *testing.T) {
	t.Parallel()

	// A letter glued to digits is one bad token, not a number plus a word.
	toks := lexAll("$v = 2 and after 400and before 10")
	last := toks[len(toks)-1]
	assert.Equal(t, tokenError, last.typ)
	assert.Equal(t, "400and", last.val)

	assert.Equal(t, tokenNumber, lexAll("$v = 2 and after 400")[5].typ)
}

func TestLexer_EOFString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "end of expression", token{typ: tokenEOF}.String())
	assert.Equal(t, `"and"`, token{typ: tokenKeyword, val: "and"}.String())
}
