package main

import (
	"strconv"
	"strings"

	"github.com/bshepherdson/mpcgo"
	"github.com/bshepherdson/mpcgo/mpcgoutil"
)

// grammar bundles a demo grammar with the metadata the CLI needs to list
// and select it.
type grammar struct {
	name        string
	description string
	build       func() *mpcgo.Parser
}

var grammars = map[string]*grammar{
	"arith": {"arith", "arithmetic over +, -, *, / and parens, e.g. \"2 + 3 * (4 - 1)\"", buildArithGrammar},
	"csv":   {"csv", "one comma-separated row, with optional double-quoted fields", buildCSVGrammar},
	"sexpr": {"sexpr", "one s-expression of symbols, integers and nested lists", buildSexprGrammar},
}

func byteFold(values []interface{}) interface{} {
	buf := make([]byte, 0, len(values))
	for _, v := range values {
		buf = append(buf, v.(byte))
	}
	return string(buf)
}

// collectFold keeps Many/And's folded value as a plain []interface{}
// regardless of how many elements it holds, since the default no-fold
// behavior unwraps a single element instead of slicing it.
func collectFold(values []interface{}) interface{} { return values }

func toInt(v interface{}) interface{} {
	n, _ := strconv.Atoi(v.(string))
	return n
}

// leftAssoc builds `operand (op operand)*`, left-folding each `(op, rhs)`
// pair into the running accumulator as it's produced. ops is a set of
// single-byte operators, each handled by applyOp.
func leftAssoc(operand *mpcgo.Parser, ops string, applyOp func(acc, op, rhs interface{}) interface{}) *mpcgo.Parser {
	opAndOperand := mpcgo.And(
		func(vs []interface{}) interface{} { return [2]interface{}{vs[0], vs[1]} },
		nil, mpcgoutil.Lexeme(mpcgo.OneOf(ops)), operand)

	rest := mpcgo.Many(opAndOperand, collectFold, nil)

	return mpcgo.And(func(vs []interface{}) interface{} {
		acc := vs[0]
		for _, pair0 := range vs[1].([]interface{}) {
			pair := pair0.([2]interface{})
			acc = applyOp(acc, pair[0], pair[1])
		}
		return acc
	}, nil, operand, rest)
}

func arithApply(acc, op, rhs interface{}) interface{} {
	a, b := acc.(int), rhs.(int)
	switch op.(byte) {
	case '+':
		return a + b
	case '-':
		return a - b
	case '*':
		return a * b
	case '/':
		return a / b
	}
	panic("unreachable operator")
}

// buildArithGrammar implements:
//
//	expr   := term (('+'|'-') term)*
//	term   := factor (('*'|'/') factor)*
//	factor := integer | '(' expr ')'
func buildArithGrammar() *mpcgo.Parser {
	expr := mpcgo.NewUndefined("expr")
	factor := mpcgo.NewUndefined("factor")

	number := mpcgoutil.Lexeme(mpcgo.ApplyFn(mpcgoutil.Integer(), toInt))

	parenExpr := mpcgoutil.Lexeme(mpcgo.And(
		func(vs []interface{}) interface{} { return vs[1] }, nil,
		mpcgoutil.Lexeme(mpcgo.Single('(')), expr, mpcgo.Single(')')))

	mpcgo.Define(factor, mpcgo.Or(number, parenExpr))

	term := leftAssoc(factor, "*/", arithApply)
	mpcgo.Define(expr, leftAssoc(term, "+-", arithApply))

	return mpcgo.And(func(vs []interface{}) interface{} { return vs[1] }, nil,
		mpcgoutil.Spaces(), expr)
}

// buildCSVGrammar implements one row: field (',' field)*, where a field
// is either a double-quoted string (no escape handling) or a bare run of
// bytes up to the next comma or newline.
func buildCSVGrammar() *mpcgo.Parser {
	quoted := mpcgo.And(func(vs []interface{}) interface{} { return vs[1] }, nil,
		mpcgo.Single('"'),
		mpcgo.Many(mpcgo.NoneOf("\""), byteFold, nil),
		mpcgo.Single('"'))

	bare := mpcgo.Many(mpcgo.NoneOf(",\r\n"), byteFold, nil)

	field := mpcgo.Or(quoted, bare)

	moreFields := mpcgo.Many(
		mpcgo.And(func(vs []interface{}) interface{} { return vs[1] }, nil,
			mpcgo.Single(','), field),
		collectFold, nil)

	return mpcgo.And(func(vs []interface{}) interface{} {
		row := append([]interface{}{vs[0]}, vs[1].([]interface{})...)
		return row
	}, nil, field, moreFields)
}

func isSymbolByte(b byte) bool {
	return mpcgoutil.IsAlnum(b) || strings.ContainsRune("+-*/_<>=!?", rune(b))
}

// buildSexprGrammar implements a single s-expression: an integer, a bare
// symbol, or a parenthesized (possibly empty) list of s-expressions.
func buildSexprGrammar() *mpcgo.Parser {
	sexpr := mpcgo.NewUndefined("sexpr")

	symbol := mpcgoutil.Lexeme(mpcgo.Expect(
		mpcgo.Many1(mpcgo.Satisfy(isSymbolByte), byteFold, nil), "a symbol"))
	number := mpcgoutil.Lexeme(mpcgo.ApplyFn(mpcgoutil.Integer(), toInt))
	atom := mpcgo.Or(number, symbol)

	items := mpcgo.Many(sexpr, collectFold, nil)
	list := mpcgoutil.Lexeme(mpcgo.And(func(vs []interface{}) interface{} { return vs[1] }, nil,
		mpcgoutil.Lexeme(mpcgo.Single('(')), items, mpcgo.Single(')')))

	mpcgo.Define(sexpr, mpcgo.Or(atom, list))

	return mpcgo.And(func(vs []interface{}) interface{} { return vs[1] }, nil,
		mpcgoutil.Spaces(), sexpr)
}
