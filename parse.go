package mpcgo

import (
	"fmt"
	"io"
	"os"
)

// ParseString runs parser against the in-memory text, with filename used
// only for diagnostics.
func ParseString(filename, text string, parser *Parser) Result {
	in := NewStringInput(filename, []byte(text))
	defer in.Close()
	return newEvaluator(in).run(parser)
}

// ParseFile runs parser against a seekable file handle, with filename used
// only for diagnostics. The caller retains ownership of handle and is
// responsible for closing it.
func ParseFile(filename string, handle *os.File, parser *Parser) Result {
	in := NewFileInput(filename, handle)
	return newEvaluator(in).run(parser)
}

// ParsePipe runs parser against a non-seekable byte stream, with filename
// used only for diagnostics. The caller retains ownership of r.
func ParsePipe(filename string, r io.Reader, parser *Parser) Result {
	in := NewPipeInput(filename, r)
	return newEvaluator(in).run(parser)
}

// ParseContents opens filename in binary mode and delegates to ParseFile,
// closing the handle before returning. On open failure it returns a
// failure-style error rather than propagating the os.PathError.
func ParseContents(filename string, parser *Parser) Result {
	f, err := os.Open(filename)
	if err != nil {
		return Result{Err: newFailureError(filename, newState(), "Unable to open file!")}
	}
	defer f.Close()
	return ParseFile(filename, f, parser)
}

// mustParser is a small helper used by constructors in parser.go that need to
// fail loudly on a programmer error rather than produce a confusing parse
// result (e.g. mismatched dtors length for And).
func mustParser(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
