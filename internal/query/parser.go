package query

import (
	"fmt"
	"strconv"

	"github.com/psurply/dwfv/internal/wave"
)

// CompileError is a fatal error in one query expression. The waveform stays
// usable for other queries.
type CompileError struct {
	Pos   int    // byte offset of the offending token
	Token string // offending token text, empty at end of expression
	Msg   string
}

func (e *CompileError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("query: offset %d: %s: %q", e.Pos, e.Msg, e.Token)
	}
	return fmt.Sprintf("query: offset %d: %s", e.Pos, e.Msg)
}

// Kind selects the evaluation strategy of a compiled predicate.
type Kind int

const (
	// Level matches intervals during which the signal holds the value.
	Level Kind = iota
	// Transition matches the instants at which the signal changes into
	// the value.
	Transition
)

// Query is a compiled predicate bound to one signal of one waveform.
type Query struct {
	wf     *wave.Waveform
	signal *wave.Signal
	target wave.Value
	kind   Kind

	// Qualifier bounds on a result's start timestamp, both strict.
	// Multiple qualifiers compose by conjunction.
	after     uint64
	hasAfter  bool
	before    uint64
	hasBefore bool
}

// Signal returns the signal the query is bound to.
func (q *Query) Signal() *wave.Signal { return q.signal }

// Kind returns the predicate kind.
func (q *Query) Kind() Kind { return q.kind }

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() {
	p.tok = p.lex.nextToken()
}

func (p *parser) errf(format string, args ...any) *CompileError {
	tok := p.tok.val
	if p.tok.typ == tokenEOF {
		tok = ""
	}
	return &CompileError{Pos: p.tok.pos, Token: tok, Msg: fmt.Sprintf(format, args...)}
}

// Compile parses an expression and binds it against the waveform.
//
// Grammar:
//
//	query      := predicate qualifier*
//	predicate  := signal_ref comparator literal
//	comparator := "=" | "is" | "equals" | "<-" | "becomes"
//	qualifier  := "and" ("after" | "before") integer
func Compile(wf *wave.Waveform, expr string) (*Query, error) {
	p := &parser{lex: newLexer(expr)}
	p.advance()

	if p.tok.typ != tokenSignal {
		return nil, p.errf("expected signal reference")
	}
	sig, err := wf.ResolveSignal(p.tok.val[1:])
	if err != nil {
		return nil, p.errf("unknown signal")
	}
	p.advance()

	q := &Query{wf: wf, signal: sig}
	switch {
	case p.tok.typ == tokenEqual,
		p.tok.typ == tokenKeyword && (p.tok.val == "is" || p.tok.val == "equals"):
		q.kind = Level
	case p.tok.typ == tokenArrow,
		p.tok.typ == tokenKeyword && p.tok.val == "becomes":
		q.kind = Transition
	default:
		return nil, p.errf("expected comparator")
	}
	p.advance()

	q.target, err = p.literal(sig.Width)
	if err != nil {
		return nil, err
	}
	p.advance()

	for p.tok.typ != tokenEOF {
		if err := p.qualifier(q); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// literal parses the value literal and resizes it to the bound signal's
// declared width; the literal's own width never wins.
func (p *parser) literal(width int) (wave.Value, error) {
	var (
		v   wave.Value
		err error
	)
	switch p.tok.typ {
	case tokenNumber:
		v, err = wave.ParseDec(p.tok.val)
	case tokenBin:
		v, err = wave.ParseBin(p.tok.val[1:])
	case tokenHex:
		v, err = wave.ParseHex(p.tok.val[1:])
	default:
		return wave.Value{}, p.errf("expected value literal")
	}
	if err != nil {
		return wave.Value{}, p.errf("malformed literal")
	}
	return v.Resize(width), nil
}

// qualifier parses one "and after N" / "and before N" clause. A second
// signal predicate after "and" is rejected: the grammar composes one
// signal's predicate with time windows only.
func (p *parser) qualifier(q *Query) error {
	if p.tok.typ != tokenKeyword || p.tok.val != "and" {
		return p.errf("expected \"and\"")
	}
	p.advance()

	if p.tok.typ == tokenSignal {
		return p.errf("combining signal predicates is not supported")
	}
	if p.tok.typ != tokenKeyword || (p.tok.val != "after" && p.tok.val != "before") {
		return p.errf("expected \"after\" or \"before\"")
	}
	dir := p.tok.val
	p.advance()

	if p.tok.typ != tokenNumber {
		return p.errf("expected time value")
	}
	t, err := strconv.ParseUint(p.tok.val, 10, 64)
	if err != nil {
		return p.errf("malformed time value")
	}
	p.advance()

	// Conjunction: keep the tightest bound seen.
	if dir == "after" {
		if !q.hasAfter || t > q.after {
			q.after, q.hasAfter = t, true
		}
	} else {
		if !q.hasBefore || t < q.before {
			q.before, q.hasBefore = t, true
		}
	}
	return nil
}
