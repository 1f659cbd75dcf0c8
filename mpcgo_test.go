package mpcgo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func concatBytes(values []interface{}) interface{} {
	buf := make([]byte, 0, len(values))
	for _, v := range values {
		buf = append(buf, v.(byte))
	}
	return string(buf)
}

func TestAny(t *testing.T) {
	r := ParseString("test", "x", Any())
	require.True(t, r.OK())
	assert.Equal(t, byte('x'), r.Value)

	r = ParseString("test", "", Any())
	require.False(t, r.OK())
	assert.Equal(t, "test:1:1: error: expected any character at end of input\n", r.Err.Error())
}

func TestSingle(t *testing.T) {
	r := ParseString("test", "a", Single('a'))
	require.True(t, r.OK())
	assert.Equal(t, byte('a'), r.Value)

	r = ParseString("test", "b", Single('a'))
	require.False(t, r.OK())
	assert.Equal(t, "test:1:1: error: expected 'a' at 'b'\n", r.Err.Error())
}

func TestRange(t *testing.T) {
	r := ParseString("test", "m", CharRange('a', 'z'))
	require.True(t, r.OK())
	assert.Equal(t, byte('m'), r.Value)

	r = ParseString("test", "M", CharRange('a', 'z'))
	require.False(t, r.OK())
	assert.Equal(t, "test:1:1: error: expected 'a'-'z' at 'M'\n", r.Err.Error())
}

func TestStringLitReportsMismatchPosition(t *testing.T) {
	r := ParseString("test", "abcd", StringLit("abcx"))
	require.False(t, r.OK())
	// The internal rewind (back to the literal's start) must not hide
	// where the mismatch actually happened: "abcx" vs "abcd" diverges at
	// the 4th byte ('d' where 'x' was expected), not at column 1.
	assert.Equal(t, "test:1:4: error: expected \"abcx\" at 'd'\n", r.Err.Error())
}

func TestOrFurthestFailureWins(t *testing.T) {
	// "for" and "foo" both match "fo" before diverging from "fob" at the
	// 3rd byte; "bar" diverges immediately. The furthest-position merge
	// keeps only the two deepest contributors.
	g := Or(StringLit("for"), StringLit("foo"), StringLit("bar"))
	r := ParseString("test", "fob", g)
	require.False(t, r.OK())
	assert.Equal(t, "test:1:3: error: expected \"for\" or \"foo\" at 'b'\n", r.Err.Error())
}

func TestAndRewindsOnFailure(t *testing.T) {
	var destroyed []interface{}
	dtor := func(v interface{}) { destroyed = append(destroyed, v) }

	g := And(func(vs []interface{}) interface{} { return vs },
		[]Dtor{dtor, dtor, dtor},
		Single('['), Single('a'), Single(']'))

	r := ParseString("test", "[ax", g)
	require.False(t, r.OK())
	assert.Equal(t, "test:1:3: error: expected ']' at 'x'\n", r.Err.Error())
	// The first two children succeeded and were destroyed on rewind,
	// most-recently-produced first.
	assert.Equal(t, []interface{}{byte('a'), byte('[')}, destroyed)
}

func TestAndZeroChildren(t *testing.T) {
	g := And(func([]interface{}) interface{} { return "ok" }, nil)
	r := ParseString("test", "", g)
	require.True(t, r.OK())
	assert.Equal(t, "ok", r.Value)
}

func TestOrZeroChildren(t *testing.T) {
	g := Or()
	r := ParseString("test", "whatever", g)
	require.True(t, r.OK())
	assert.Nil(t, r.Value)
}

func TestMany(t *testing.T) {
	g := Many(CharRange('a', 'z'), concatBytes, nil)
	r := ParseString("test", "abc", g)
	require.True(t, r.OK())
	assert.Equal(t, "abc", r.Value)

	r = ParseString("test", "", g)
	require.True(t, r.OK())
	assert.Equal(t, "", r.Value)
}

func TestMany1RequiresOne(t *testing.T) {
	g := Many1(CharRange('0', '9'), concatBytes, nil)
	r := ParseString("test", "42x", g)
	require.True(t, r.OK())
	assert.Equal(t, "42", r.Value)

	r = ParseString("test", "x", g)
	require.False(t, r.OK())
	assert.Equal(t, "test:1:1: error: expected one or more of '0'-'9' at 'x'\n", r.Err.Error())
}

func TestCountExactlyN(t *testing.T) {
	g := Count(3, Single('x'), concatBytes, nil)

	r := ParseString("test", "xxxy", g)
	require.True(t, r.OK())
	assert.Equal(t, "xxx", r.Value)

	r = ParseString("test", "xxy", g)
	require.False(t, r.OK())
	assert.Equal(t, "test:1:3: error: expected 3 of 'x' at 'y'\n", r.Err.Error())
}

func TestCountLeavesExtraUnconsumed(t *testing.T) {
	// Count(2, ...) followed by an explicit Single must see the 3rd 'x',
	// proving Count doesn't greedily over-consume.
	g := And(func(vs []interface{}) interface{} { return vs }, nil,
		Count(2, Single('x'), concatBytes, nil), Single('x'))
	r := ParseString("test", "xxx", g)
	require.True(t, r.OK())
}

func TestNotSucceedsWhenChildFails(t *testing.T) {
	g := Not(Single('a'), nil, func() interface{} { return nil })
	r := ParseString("test", "b", g)
	require.True(t, r.OK())
	assert.Nil(t, r.Value)
}

func TestNotFailsWhenChildSucceeds(t *testing.T) {
	var destroyedVal interface{}
	g := Not(Single('a'), func(v interface{}) { destroyedVal = v },
		func() interface{} { return nil })
	r := ParseString("test", "a", g)
	require.False(t, r.OK())
	assert.Equal(t, byte('a'), destroyedVal)
}

func TestMaybe(t *testing.T) {
	g := Maybe(Single('?'), func() interface{} { return "none" })
	r := ParseString("test", "?", g)
	require.True(t, r.OK())
	assert.Equal(t, byte('?'), r.Value)

	r = ParseString("test", "", g)
	require.True(t, r.OK())
	assert.Equal(t, "none", r.Value)
}

func TestExpectRelabels(t *testing.T) {
	g := Expect(CharRange('0', '9'), "a digit")
	r := ParseString("test", "x", g)
	require.False(t, r.OK())
	assert.Equal(t, "test:1:1: error: expected a digit at 'x'\n", r.Err.Error())
}

func TestPredictDisablesBacktrack(t *testing.T) {
	// StringLit always reports its error at the true mismatch point, so
	// Predict doesn't change the error text here; its effect is on the
	// input cursor left behind after a failed attempt. Or never snapshots
	// the cursor itself — it trusts each alternative to clean up after
	// itself on failure — so that leftover cursor position is visible to
	// the next alternative tried.
	//
	// Without Predict, StringLit("abc")'s internal rewind puts the cursor
	// back at the start on failure, so Single('a') (the next alternative)
	// still sees the 'a' and the whole Or succeeds.
	g := Or(StringLit("abc"), Single('a'))
	r := ParseString("test", "abd", g)
	require.True(t, r.OK())
	assert.Equal(t, byte('a'), r.Value)

	// Under Predict, StringLit("abc")'s internal rewind is suppressed:
	// the two matched bytes ("ab") stay consumed even though the overall
	// match fails, so Single('a') is tried against 'd' and also fails —
	// taking down the whole Or.
	g = Or(Predict(StringLit("abc")), Single('a'))
	r = ParseString("test", "abd", g)
	require.False(t, r.OK())
	assert.Equal(t, "test:1:3: error: expected \"abc\" or 'a' at 'd'\n", r.Err.Error())
}

func TestFail(t *testing.T) {
	r := ParseString("test", "anything", Fail("nope"))
	require.False(t, r.OK())
	assert.Equal(t, "test: error: nope\n", r.Err.Error())
}

func TestUndefinedBeforeDefine(t *testing.T) {
	p := NewUndefined("loop")
	r := ParseString("test", "x", p)
	require.False(t, r.OK())
	assert.Equal(t, "test: error: Parser Undefined!\n", r.Err.Error())
}

func TestDefineTiesRecursiveGrammar(t *testing.T) {
	// atom := '(' atom ')' | 'x'
	atom := NewUndefined("atom")
	Define(atom, Or(
		And(func(vs []interface{}) interface{} { return vs[1] }, nil,
			Single('('), atom, Single(')')),
		Single('x'),
	))

	r := ParseString("test", "((x))", atom)
	require.True(t, r.OK())

	r = ParseString("test", "((x)", atom)
	require.False(t, r.OK())
}

func TestParsePipe(t *testing.T) {
	r := ParsePipe("test", strings.NewReader("abc"), Many1(CharRange('a', 'z'), concatBytes, nil))
	require.True(t, r.OK())
	assert.Equal(t, "abc", r.Value)
}

func TestParseContentsMissingFile(t *testing.T) {
	r := ParseContents("/no/such/file/mpcgo-test", Any())
	require.False(t, r.OK())
	assert.Equal(t, "/no/such/file/mpcgo-test: error: Unable to open file!\n", r.Err.Error())
}
