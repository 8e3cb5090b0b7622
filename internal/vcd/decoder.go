// Package vcd decodes Value Change Dump traces into a wave.Waveform.
//
// A VCD file has two sections: a header of $-directives declaring the
// timescale, the scope hierarchy, and the variables, terminated by
// $enddefinitions; then a stream of #-timestamp markers interleaved with
// value-change records. Decoding is a single forward pass; any syntax or
// consistency problem aborts the load with a DecodeError, never a partially
// built waveform.
package vcd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/psurply/dwfv/internal/wave"
)

// DecodeError is a fatal trace-loading error with the line it occurred on.
type DecodeError struct {
	Line  int
	Token string
	Msg   string
}

func (e *DecodeError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("vcd: line %d: %s: %q", e.Line, e.Msg, e.Token)
	}
	return fmt.Sprintf("vcd: line %d: %s", e.Line, e.Msg)
}

// phase is the decoder's position in the two-section grammar.
type phase int

const (
	phaseHeader phase = iota
	phaseChanges
)

type decoder struct {
	tok   *tokenizer
	wf    *wave.Waveform
	phase phase

	scope *wave.Scope // current scope while parsing the header
	now   uint64      // current timestamp in the value-change section

	limit    uint64 // stop consuming changes past this time
	hasLimit bool
}

// Decode parses a complete VCD trace.
func Decode(r io.Reader) (*wave.Waveform, error) {
	return decode(r, 0, false)
}

// DecodeLimit parses a trace but stops consuming value changes once a
// timestamp marker beyond limit is seen; a zero limit keeps only the records
// at #0. The header is always fully parsed. Useful for point-in-time
// inspection of large traces.
func DecodeLimit(r io.Reader, limit uint64) (*wave.Waveform, error) {
	return decode(r, limit, true)
}

func decode(r io.Reader, limit uint64, hasLimit bool) (*wave.Waveform, error) {
	d := &decoder{
		tok:      newTokenizer(r),
		wf:       wave.NewWaveform(),
		limit:    limit,
		hasLimit: hasLimit,
	}
	d.scope = d.wf.Root()
	if err := d.run(); err != nil {
		return nil, err
	}
	if err := d.tok.err(); err != nil {
		return nil, fmt.Errorf("vcd: read: %w", err)
	}
	return d.wf, nil
}

func (d *decoder) errf(line int, token, format string, args ...any) error {
	return &DecodeError{Line: line, Token: token, Msg: fmt.Sprintf(format, args...)}
}

func (d *decoder) run() error {
	for {
		w, line, ok := d.tok.word()
		if !ok {
			if d.phase == phaseHeader && len(d.wf.Signals()) == 0 {
				return d.errf(line, "", "no variable declarations before end of input")
			}
			return nil
		}

		switch {
		case strings.HasPrefix(w, "$"):
			if err := d.directive(w, line); err != nil {
				return err
			}
		case strings.HasPrefix(w, "#"):
			if d.phase != phaseChanges {
				return d.errf(line, w, "timestamp before $enddefinitions")
			}
			t, err := strconv.ParseUint(w[1:], 10, 64)
			if err != nil {
				return d.errf(line, w, "malformed timestamp")
			}
			if t < d.now {
				return d.errf(line, w, "timestamp decreases from %d", d.now)
			}
			if d.hasLimit && t > d.limit {
				return nil
			}
			d.now = t
			d.wf.ExtendTime(t)
		default:
			if d.phase != phaseChanges {
				return d.errf(line, w, "unexpected token in header")
			}
			if err := d.valueChange(w, line); err != nil {
				return err
			}
		}
	}
}

// directive dispatches a $-keyword in either phase.
func (d *decoder) directive(kw string, line int) error {
	switch kw {
	case "$comment", "$date", "$version":
		return d.skipToEnd(kw, line)
	case "$timescale":
		return d.timescale(line)
	case "$scope":
		return d.openScope(line)
	case "$upscope":
		if d.scope.Parent() == nil {
			return d.errf(line, kw, "$upscope at root scope")
		}
		d.scope = d.scope.Parent()
		return d.expectEnd(kw, line)
	case "$var":
		return d.variable(line)
	case "$enddefinitions":
		if err := d.expectEnd(kw, line); err != nil {
			return err
		}
		d.phase = phaseChanges
		return nil
	case "$dumpvars", "$dumpall", "$dumpon", "$dumpoff":
		if d.phase != phaseChanges {
			return d.errf(line, kw, "%s before $enddefinitions", kw)
		}
		// The records inside a dump group are ordinary value changes at
		// the current time; the group's $end just closes it.
		return nil
	case "$end":
		// Stray $end tokens close dump groups.
		if d.phase != phaseChanges {
			return d.errf(line, kw, "unexpected $end")
		}
		return nil
	default:
		return d.errf(line, kw, "unknown directive")
	}
}

// skipToEnd consumes free-form directive text up to the closing $end.
func (d *decoder) skipToEnd(kw string, line int) error {
	for {
		w, l, ok := d.tok.word()
		if !ok {
			return d.errf(l, kw, "unterminated %s", kw)
		}
		if w == "$end" {
			return nil
		}
	}
}

// expectEnd requires the next word to be $end.
func (d *decoder) expectEnd(kw string, line int) error {
	w, l, ok := d.tok.word()
	if !ok || w != "$end" {
		return d.errf(l, w, "expected $end after %s", kw)
	}
	return nil
}

func (d *decoder) timescale(line int) error {
	// Magnitude and unit may be one word ("100ps") or two ("100 ps").
	var parts []string
	for {
		w, l, ok := d.tok.word()
		if !ok {
			return d.errf(l, "$timescale", "unterminated $timescale")
		}
		if w == "$end" {
			break
		}
		parts = append(parts, w)
		if len(parts) > 2 {
			return d.errf(l, w, "malformed $timescale")
		}
	}
	ts, err := wave.ParseTimescale(strings.Join(parts, ""))
	if err != nil {
		return d.errf(line, strings.Join(parts, " "), "malformed $timescale")
	}
	d.wf.SetTimescale(ts)
	return nil
}

func (d *decoder) openScope(line int) error {
	// $scope <type> <name> $end. The scope type (module, task, ...) is
	// recorded nowhere; only the name shapes the hierarchy.
	_, l, ok := d.tok.word()
	if !ok {
		return d.errf(l, "$scope", "unterminated $scope")
	}
	name, l, ok := d.tok.word()
	if !ok || strings.HasPrefix(name, "$") {
		return d.errf(l, name, "malformed $scope")
	}
	if err := d.expectEnd("$scope", line); err != nil {
		return err
	}
	d.scope = d.scope.EnsureChild(name)
	return nil
}

func (d *decoder) variable(line int) error {
	// $var <type> <width> <code> <name> [<range>] $end
	if _, l, ok := d.tok.word(); !ok {
		return d.errf(l, "$var", "unterminated $var")
	}
	widthWord, l, ok := d.tok.word()
	if !ok {
		return d.errf(l, "$var", "unterminated $var")
	}
	width, err := strconv.Atoi(widthWord)
	if err != nil || width <= 0 {
		return d.errf(l, widthWord, "invalid signal width")
	}
	code, l, ok := d.tok.word()
	if !ok {
		return d.errf(l, "$var", "missing identifier code")
	}
	name, l, ok := d.tok.word()
	if !ok {
		return d.errf(l, "$var", "missing signal name")
	}
	// Optional bit range, either glued to the name or a separate word.
	if i := strings.IndexByte(name, '['); i > 0 {
		name = name[:i]
	}
	for {
		w, l2, ok := d.tok.word()
		if !ok {
			return d.errf(l2, "$var", "unterminated $var")
		}
		if w == "$end" {
			break
		}
		if !strings.HasPrefix(w, "[") {
			return d.errf(l2, w, "malformed $var")
		}
	}
	d.wf.Declare(d.scope, code, name, width)
	return nil
}

// valueChange parses one record in the value-change section: either a
// scalar record (state char glued to the identifier code) or the literal
// half of a vector record (the code follows as the next word).
func (d *decoder) valueChange(w string, line int) error {
	switch w[0] {
	case 'b', 'B':
		v, err := wave.ParseBin(w[1:])
		if err != nil {
			return d.errf(line, w, "malformed vector value")
		}
		code, l, ok := d.tok.word()
		if !ok {
			return d.errf(l, w, "vector value without identifier code")
		}
		return d.apply(code, v, l)
	case 'r', 'R', 's', 'S':
		// Real and string variables fall outside the four-state model.
		return d.errf(line, w, "unsupported value type")
	default:
		bit, ok := bitFromState(rune(w[0]))
		if !ok || len(w) < 2 {
			return d.errf(line, w, "malformed value change")
		}
		return d.apply(w[1:], wave.NewValue(1, bit), line)
	}
}

func bitFromState(r rune) (wave.Bit, bool) {
	switch r {
	case '0':
		return wave.Bit0, true
	case '1':
		return wave.Bit1, true
	case 'x', 'X', 'u', 'U', 'w', 'W', '-':
		return wave.BitX, true
	case 'z', 'Z':
		return wave.BitZ, true
	default:
		return 0, false
	}
}

func (d *decoder) apply(code string, v wave.Value, line int) error {
	s, ok := d.wf.SignalByCode(code)
	if !ok {
		return d.errf(line, code, "undeclared identifier code")
	}
	s.Append(d.now, v)
	d.wf.ExtendTime(d.now)
	return nil
}
