package parser

import (
	"strings"

	"github.com/jannah-ayman/arcanequest-lang/lib/lexer"
)

// binaryPrec orders the binary operators from loosest to tightest.
// Everything is left-associative except **.
var binaryPrec = map[string]int{
	"or":  1,
	"and": 2,
	"==":  3, "!=": 3, "<": 3, ">": 3, "<=": 3, ">=": 3,
	"+": 4, "-": 4,
	"*": 5, "/": 5, "%": 5, "//": 5,
	"**": 6,
}

// comparisonPrec is where a prefix 'not' rejoins the climb: not binds
// looser than comparisons, so `not a == b` negates the whole comparison.
const comparisonPrec = 3

func (p *parser) parseExpression() Expr {
	return p.parseBinary(1)
}

// parseBinary is the precedence climb. It parses a left operand, then
// folds in every operator at or above minPrec, recursing on the right
// side with the operator's own precedence bumped by one for the
// left-associative operators.
func (p *parser) parseBinary(minPrec int) Expr {
	left := p.parseUnary()
	for {
		op, ok := p.binaryOp()
		if !ok {
			break
		}
		prec := binaryPrec[op]
		if prec < minPrec {
			break
		}
		line := p.advance().Line

		next := prec + 1
		if op == "**" {
			next = prec // right-associative
		}
		right := p.parseBinary(next)
		left = &BinaryExpr{Line: line, Op: op, Left: left, Right: right}
	}
	return left
}

// binaryOp reports the binary operator at the cursor, if any. The word
// operators and/or arrive as keyword kinds, the rest as OPERATOR tokens.
func (p *parser) binaryOp() (string, bool) {
	t := p.cur()
	switch t.Kind {
	case lexer.KindAnd:
		return "and", true
	case lexer.KindOr:
		return "or", true
	case lexer.KindOperator:
		if _, ok := binaryPrec[t.Lexeme]; ok {
			return t.Lexeme, true
		}
	}
	return "", false
}

func (p *parser) parseUnary() Expr {
	t := p.cur()

	if t.Kind == lexer.KindNot {
		p.advance()
		return &UnaryExpr{Line: t.Line, Op: "not", Operand: p.parseBinary(comparisonPrec)}
	}
	if t.Kind == lexer.KindOperator {
		switch t.Lexeme {
		case "-", "+", "!", "~":
			p.advance()
			return &UnaryExpr{Line: t.Line, Op: t.Lexeme, Operand: p.parseUnary()}
		}
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression and any chain of call and
// attribute-access operators hanging off it.
func (p *parser) parsePostfix() Expr {
	node := p.parsePrimary()
	for {
		switch {
		case p.atOp("."):
			dot := p.advance()
			if !p.at(lexer.KindIdentifier) {
				p.errorf(p.cur().Line, "expected identifier after '.'")
				return node
			}
			name := p.advance()
			node = &AttrExpr{Line: dot.Line, X: node, Name: name.Lexeme}
		case p.atOp("("):
			node = p.parseCallArgs(node)
		default:
			return node
		}
	}
}

func (p *parser) parseCallArgs(fn Expr) Expr {
	lpar := p.advance()
	call := &CallExpr{Line: lpar.Line, Fn: fn}

	if !p.atOp(")") && !p.at(lexer.KindNewline) && !p.at(lexer.KindEOF) {
		for {
			call.Args = append(call.Args, p.parseExpression())
			if !p.atOp(",") {
				break
			}
			p.advance()
		}
	}
	p.expectOp(")", "after call arguments")
	return call
}

func (p *parser) parsePrimary() Expr {
	t := p.cur()
	switch t.Kind {
	case lexer.KindNumber:
		p.advance()
		return &NumberLit{Line: t.Line, Value: t.Lexeme}
	case lexer.KindString:
		p.advance()
		return &StringLit{Line: t.Line, Value: unquote(t.Lexeme)}
	case lexer.KindIdentifier:
		p.advance()
		switch t.Lexeme {
		case "true":
			return &BoolLit{Line: t.Line, Value: true}
		case "false":
			return &BoolLit{Line: t.Line, Value: false}
		}
		return &Ident{Line: t.Line, Name: t.Lexeme}
	case lexer.KindScout:
		return p.parseInputCall()
	case lexer.KindOperator:
		if t.Lexeme == "(" {
			p.advance()
			expr := p.parseExpression()
			p.expectOp(")", "after parenthesized expression")
			return expr
		}
	}

	p.errorf(t.Line, "unexpected token in expression: %s", describe(t))
	switch t.Kind {
	case lexer.KindNewline, lexer.KindDedent, lexer.KindEOF:
		// Leave statement boundaries for the recovery loop.
	default:
		p.advance()
	}
	return &BadExpr{Line: t.Line}
}

// unquote strips the surrounding quotes of a string lexeme, single or
// triple, and resolves the backslash escapes. Unterminated lexemes
// never reach here; the scanner turns those into ERROR tokens.
func unquote(lexeme string) string {
	var body string
	switch {
	case len(lexeme) >= 6 && (strings.HasPrefix(lexeme, `"""`) || strings.HasPrefix(lexeme, "'''")):
		body = lexeme[3 : len(lexeme)-3]
	case len(lexeme) >= 2:
		body = lexeme[1 : len(lexeme)-1]
	default:
		return lexeme
	}

	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 >= len(body) {
			out = append(out, body[i])
			continue
		}
		i++
		switch body[i] {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		default:
			out = append(out, body[i])
		}
	}
	return string(out)
}
