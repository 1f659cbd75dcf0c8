package mpcgo

import (
	"strconv"
	"strings"
)

// ParseError is the structured diagnostic produced by the engine. It has
// two shapes: a failure (fatal-style, message only, no alternatives) and an
// expected-set (positional, a deduplicated list of expected phrases plus a
// description of the byte actually received).
type ParseError struct {
	Filename string
	State    State

	// Failure is set for fatal-style errors (Fail, Undefined, file-open
	// failure). When non-empty, Expected/Received are ignored.
	Failure string

	// Expected holds the deduplicated set of "expected" phrases for a
	// positional error. Order of first insertion is preserved.
	Expected []string
	Received byte
	// receivedEOF distinguishes "received the literal NUL byte" from
	// "received end of input", both of which render as "end of input"
	// for a zero Received value but only the latter should.
	receivedEOF bool
}

// newExpectedError builds a single-expected positional error.
func newExpectedError(filename string, s State, expected string, received byte, eof bool) *ParseError {
	return &ParseError{
		Filename:    filename,
		State:       s,
		Expected:    []string{expected},
		Received:    received,
		receivedEOF: eof,
	}
}

// newFailureError builds a fatal-style, message-only error.
func newFailureError(filename string, s State, message string) *ParseError {
	return &ParseError{
		Filename: filename,
		State:    s,
		Failure:  message,
	}
}

func (e *ParseError) containsExpected(expected string) bool {
	for _, x := range e.Expected {
		if x == expected {
			return true
		}
	}
	return false
}

func (e *ParseError) addExpected(expected string) {
	if !e.containsExpected(expected) {
		e.Expected = append(e.Expected, expected)
	}
}

// mergeErrors implements the "furthest failure" union rule: the merged
// position is the maximum Pos across all inputs; only errors at that
// maximum position contribute. If any contributor at that position is a
// failure, the merged error adopts the first such failure (in argument
// order) and drops the rest. Otherwise the merged error accumulates the
// deduplicated union of expected phrases and records the received-byte
// description of the first contributor at the max position.
func mergeErrors(errs ...*ParseError) *ParseError {
	merged := &ParseError{State: invalidState()}
	if len(errs) > 0 {
		merged.Filename = errs[0].Filename
	}

	for _, e := range errs {
		if e.State.Pos > merged.State.Pos {
			merged.State = e.State
		}
	}

	haveReceived := false
	for _, e := range errs {
		if e.State.Pos < merged.State.Pos {
			continue
		}
		if e.Failure != "" {
			merged.Failure = e.Failure
			break
		}
		if !haveReceived {
			merged.Received = e.Received
			merged.receivedEOF = e.receivedEOF
			haveReceived = true
		}
		for _, x := range e.Expected {
			merged.addExpected(x)
		}
	}

	return merged
}

// repeatPrefix rewrites the expected list down to a single phrase of the
// form "<prefix><e1>, <e2>, ... or <eN>", used by Many1 and Count.
func repeatPrefix(e *ParseError, prefix string) *ParseError {
	e.Expected = []string{prefix + joinExpected(e.Expected)}
	return e
}

func joinExpected(expected []string) string {
	switch len(expected) {
	case 0:
		return "ERROR: NOTHING EXPECTED"
	case 1:
		return expected[0]
	default:
		head := expected[:len(expected)-1]
		last := expected[len(expected)-1]
		return strings.Join(head, ", ") + " or " + last
	}
}

// many1Error prefixes a Many1 failure with "one or more of ".
func many1Error(e *ParseError) *ParseError {
	return repeatPrefix(e, "one or more of ")
}

// countError prefixes a Count failure with "<n> of ".
func countError(e *ParseError, n int) *ParseError {
	return repeatPrefix(e, strconv.Itoa(n)+" of ")
}

// byteDescription renders the received byte the way the error message
// contract requires: named control characters, "end of input" at EOF, and
// 'x' quoted otherwise.
func byteDescription(b byte, eof bool) string {
	if eof {
		return "end of input"
	}
	switch b {
	case '\a':
		return "bell"
	case '\b':
		return "backspace"
	case '\f':
		return "formfeed"
	case '\r':
		return "carriage return"
	case '\v':
		return "vertical tab"
	case '\n':
		return "newline"
	case '\t':
		return "tab"
	case ' ':
		return "space"
	default:
		return "'" + string(b) + "'"
	}
}

// Error implements the error interface, rendering in the contractual
// format: tests assert on this string byte-for-byte.
func (e *ParseError) Error() string {
	if e.Failure != "" {
		return e.Filename + ": error: " + e.Failure + "\n"
	}

	var b strings.Builder
	b.WriteString(e.Filename)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(e.State.Row + 1))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(e.State.Col + 1))
	b.WriteString(": error: expected ")
	b.WriteString(joinExpected(e.Expected))
	b.WriteString(" at ")
	b.WriteString(byteDescription(e.Received, e.receivedEOF))
	b.WriteString("\n")
	return b.String()
}
