package mpcgoutil

import "github.com/bshepherdson/mpcgo"

func concatFold(values []interface{}) interface{} {
	buf := make([]byte, 0, len(values))
	for _, v := range values {
		if b, ok := v.(byte); ok {
			buf = append(buf, b)
		}
	}
	return string(buf)
}

// Digit matches a single ASCII decimal digit.
func Digit() *mpcgo.Parser {
	return mpcgo.Expect(mpcgo.Satisfy(IsDigit), "a digit")
}

// Alpha matches a single ASCII letter.
func Alpha() *mpcgo.Parser {
	return mpcgo.Expect(mpcgo.Satisfy(IsAlpha), "a letter")
}

// Alnum matches a single ASCII letter or digit.
func Alnum() *mpcgo.Parser {
	return mpcgo.Expect(mpcgo.Satisfy(IsAlnum), "a letter or digit")
}

// Integer matches one or more digits and folds them into their decimal
// string, e.g. for a caller to pass to strconv.Atoi.
func Integer() *mpcgo.Parser {
	return mpcgo.Expect(
		mpcgo.Many1(Digit(), concatFold, nil),
		"an integer",
	)
}

// Spaces matches zero or more whitespace bytes, consuming but discarding
// them.
func Spaces() *mpcgo.Parser {
	return mpcgo.ApplyFn(
		mpcgo.Many(mpcgo.Satisfy(IsSpace), nil, nil),
		func(interface{}) interface{} { return nil },
	)
}

// Lexeme wraps child so that trailing whitespace is consumed and
// discarded along with it, the common "token plus trailing space" shape
// used when composing a grammar out of space-separated pieces.
func Lexeme(child *mpcgo.Parser) *mpcgo.Parser {
	return mpcgo.And(func(values []interface{}) interface{} {
		return values[0]
	}, nil, child, Spaces())
}
