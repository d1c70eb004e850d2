// Package parser builds ArcaneQuest syntax trees from the token stream
// produced by lib/lexer. Parsing is recursive descent with one-token
// lookahead and panic-mode recovery: errors are accumulated, never
// thrown, and a tree is always returned.
package parser

import (
	"fmt"
	"sort"

	"github.com/jannah-ayman/arcanequest-lang/lib/lexer"
)

// Parse consumes a token sequence and returns the syntax tree together
// with every diagnostic found. It never fails fatally for any input;
// Result.Program is always non-nil.
func Parse(tokens []lexer.Token) *Result {
	p := &parser{}

	// ERROR tokens are the scanner's diagnostics riding along in the
	// stream. Lift them out here so the grammar only ever sees clean
	// kinds.
	for _, t := range tokens {
		if t.Kind == lexer.KindError {
			p.errors = append(p.errors, ParseError{Line: t.Line, Message: t.Lexeme})
			continue
		}
		p.tokens = append(p.tokens, t)
	}

	prog := &Program{}
	for {
		p.skipStatementGaps()
		if p.at(lexer.KindEOF) {
			break
		}
		if stmt := p.parseStatement(); stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
		if p.panicking {
			p.synchronize()
		}
	}

	sort.SliceStable(p.errors, func(i, j int) bool {
		return p.errors[i].Line < p.errors[j].Line
	})
	return &Result{Program: prog, Errors: p.errors}
}

type parser struct {
	tokens    []lexer.Token
	pos       int
	errors    []ParseError
	panicking bool
}

func (p *parser) cur() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return lexer.Token{Kind: lexer.KindEOF, Line: p.lastLine()}
}

func (p *parser) peek() lexer.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return lexer.Token{Kind: lexer.KindEOF, Line: p.lastLine()}
}

func (p *parser) lastLine() int {
	if n := len(p.tokens); n > 0 {
		return p.tokens[n-1].Line
	}
	return 1
}

func (p *parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *parser) at(kind lexer.Kind) bool {
	return p.cur().Kind == kind
}

func (p *parser) atOp(lexeme string) bool {
	t := p.cur()
	return t.Kind == lexer.KindOperator && t.Lexeme == lexeme
}

// errorf records a diagnostic and enters panic mode. While panicking,
// follow-up errors are dropped so one mistake does not cascade.
func (p *parser) errorf(line int, format string, args ...interface{}) {
	if p.panicking {
		return
	}
	p.panicking = true
	p.errors = append(p.errors, ParseError{Line: line, Message: fmt.Sprintf(format, args...)})
}

// expectOp consumes the given operator or records an error without
// consuming anything.
func (p *parser) expectOp(lexeme, context string) {
	if p.atOp(lexeme) {
		p.advance()
		return
	}
	p.errorf(p.cur().Line, "expected '%s' %s, got %s", lexeme, context, describe(p.cur()))
}

// synchronize discards tokens until a statement boundary: a NEWLINE
// (consumed), a keyword that can start a statement, or a DEDENT (left
// for the enclosing block). Each pass consumes at least one token, so
// recovery always terminates.
func (p *parser) synchronize() {
	p.panicking = false
	for !p.at(lexer.KindEOF) {
		switch p.cur().Kind {
		case lexer.KindNewline:
			p.advance()
			return
		case lexer.KindDedent:
			return
		case lexer.KindSummon, lexer.KindQuest, lexer.KindGuild, lexer.KindSpot,
			lexer.KindReplay, lexer.KindFarm, lexer.KindEmbark, lexer.KindEncounter,
			lexer.KindAttack, lexer.KindReward, lexer.KindSkipEncounter, lexer.KindEscapeDungeon:
			return
		}
		p.advance()
	}
}

// skipStatementGaps consumes blank lines plus stray block tokens that
// recovery can leave behind between statements at the current level.
func (p *parser) skipStatementGaps() {
	for {
		switch p.cur().Kind {
		case lexer.KindNewline, lexer.KindDedent:
			p.advance()
		case lexer.KindIndent:
			p.errorf(p.cur().Line, "unexpected indent")
			p.panicking = false
			p.advance()
		default:
			return
		}
	}
}

func (p *parser) parseStatement() Stmt {
	t := p.cur()
	switch t.Kind {
	case lexer.KindSummon:
		return p.parseImport()
	case lexer.KindQuest:
		return p.parseFunctionDef()
	case lexer.KindGuild:
		return p.parseClassDef()
	case lexer.KindSpot:
		return p.parseIf()
	case lexer.KindReplay:
		return p.parseWhile()
	case lexer.KindFarm:
		return p.parseFor()
	case lexer.KindEmbark:
		return p.parseTry()
	case lexer.KindEncounter:
		return p.parseMatch()
	case lexer.KindReward:
		return p.parseReturn()
	case lexer.KindAttack:
		return p.parsePrintStmt()
	case lexer.KindScout:
		return &ExprStmt{Line: t.Line, X: p.parseInputCall()}
	case lexer.KindSkipEncounter:
		p.advance()
		return &ContinueStmt{Line: t.Line}
	case lexer.KindEscapeDungeon:
		p.advance()
		return &BreakStmt{Line: t.Line}
	case lexer.KindIdentifier:
		return p.parseSimpleStatement()
	case lexer.KindNewline, lexer.KindDedent, lexer.KindEOF:
		return nil
	}
	p.errorf(t.Line, "unexpected token: %s", describe(t))
	p.advance()
	return nil
}

// parseSimpleStatement handles statements that open with an identifier:
// assignments, compound assignments and call expressions.
func (p *parser) parseSimpleStatement() Stmt {
	ident := p.cur()
	next := p.peek()

	if next.Kind == lexer.KindOperator {
		switch next.Lexeme {
		case "=":
			p.advance()
			p.advance()
			return &AssignStmt{Line: ident.Line, Name: ident.Lexeme, Value: p.parseExpression()}
		case "+=", "-=", "*=", "/=", "%=":
			return p.parseCompoundAssign()
		case "(", ".":
			expr := p.parseExpression()
			if _, ok := expr.(*CallExpr); ok {
				return &ExprStmt{Line: ident.Line, X: expr}
			}
			p.errorf(ident.Line, "expression statement '%s' has no effect", ident.Lexeme)
			return nil
		}
	}

	p.errorf(ident.Line, "bare identifier '%s' cannot stand alone", ident.Lexeme)
	p.advance()
	return nil
}

// parseCompoundAssign desugars x <op>= y into x = x <op> y.
func (p *parser) parseCompoundAssign() Stmt {
	ident := p.advance()
	op := p.advance()
	rhs := p.parseExpression()

	base := op.Lexeme[:len(op.Lexeme)-1]
	value := &BinaryExpr{
		Line:  op.Line,
		Op:    base,
		Left:  &Ident{Line: ident.Line, Name: ident.Lexeme},
		Right: rhs,
	}
	return &AssignStmt{Line: ident.Line, Name: ident.Lexeme, Value: value}
}

func (p *parser) parseImport() Stmt {
	start := p.advance()
	node := &ImportStmt{Line: start.Line}

	if !p.at(lexer.KindIdentifier) {
		p.errorf(p.cur().Line, "expected module name after 'summon'")
		return node
	}
	for {
		if !p.at(lexer.KindIdentifier) {
			p.errorf(p.cur().Line, "expected module name after ',' in summon")
			break
		}
		node.Modules = append(node.Modules, p.advance().Lexeme)
		if !p.atOp(",") {
			break
		}
		p.advance()
	}
	return node
}

func (p *parser) parsePrintStmt() Stmt {
	start := p.advance()
	call := &CallExpr{Line: start.Line, Fn: &Ident{Line: start.Line, Name: "attack"}}

	p.expectOp("(", "after 'attack'")
	if !p.atOp(")") && !p.at(lexer.KindNewline) && !p.at(lexer.KindEOF) {
		for {
			call.Args = append(call.Args, p.parseExpression())
			if !p.atOp(",") {
				break
			}
			p.advance()
		}
	}
	p.expectOp(")", "after attack arguments")
	return &ExprStmt{Line: start.Line, X: call}
}

// parseInputCall parses scout("prompt"), which is valid both as a
// statement and in expression position.
func (p *parser) parseInputCall() Expr {
	start := p.advance()
	call := &CallExpr{Line: start.Line, Fn: &Ident{Line: start.Line, Name: "scout"}}

	p.expectOp("(", "after 'scout'")
	if !p.atOp(")") {
		call.Args = append(call.Args, p.parseExpression())
	}
	p.expectOp(")", "after scout argument")
	return call
}

func (p *parser) parseReturn() Stmt {
	start := p.advance()
	node := &ReturnStmt{Line: start.Line}
	switch p.cur().Kind {
	case lexer.KindNewline, lexer.KindDedent, lexer.KindEOF:
	default:
		node.Value = p.parseExpression()
	}
	return node
}

// parseCondition parses the parenthesized condition shared by spot,
// counter and replay headers.
func (p *parser) parseCondition() Expr {
	p.expectOp("(", "before condition")
	cond := p.parseExpression()
	p.expectOp(")", "after condition")
	return cond
}

func (p *parser) parseIf() Stmt {
	start := p.advance()
	node := &IfStmt{Line: start.Line}

	cond := p.parseCondition()
	p.expectOp(":", "after spot header")
	node.Branches = append(node.Branches, CondBranch{Line: start.Line, Cond: cond, Body: p.parseBlock()})

	for p.at(lexer.KindCounter) {
		clause := p.advance()
		ccond := p.parseCondition()
		p.expectOp(":", "after counter header")
		node.Branches = append(node.Branches, CondBranch{Line: clause.Line, Cond: ccond, Body: p.parseBlock()})
	}

	if p.at(lexer.KindDodge) {
		p.advance()
		p.expectOp(":", "after 'dodge'")
		node.Else = p.parseBlock()
	}
	return node
}

func (p *parser) parseWhile() Stmt {
	start := p.advance()
	cond := p.parseCondition()
	p.expectOp(":", "after replay header")
	return &WhileStmt{Line: start.Line, Cond: cond, Body: p.parseBlock()}
}

func (p *parser) parseFor() Stmt {
	start := p.advance()
	node := &ForStmt{Line: start.Line}

	if p.at(lexer.KindIdentifier) {
		node.Var = p.advance().Lexeme
	} else {
		p.errorf(p.cur().Line, "expected loop variable after 'farm'")
	}

	if p.at(lexer.KindIdentifier) && p.cur().Lexeme == "in" {
		p.advance()
	} else {
		p.errorf(p.cur().Line, "expected 'in' in farm loop")
	}

	node.Iter = p.parseExpression()
	p.expectOp(":", "after farm header")
	node.Body = p.parseBlock()
	return node
}

func (p *parser) parseFunctionDef() Stmt {
	start := p.advance()
	node := &FunctionDef{Line: start.Line}

	if p.at(lexer.KindIdentifier) {
		node.Name = p.advance().Lexeme
	} else {
		p.errorf(p.cur().Line, "expected quest name")
	}

	p.expectOp("(", "in quest definition")
	if p.at(lexer.KindIdentifier) {
		for {
			if !p.at(lexer.KindIdentifier) {
				p.errorf(p.cur().Line, "expected parameter name")
				break
			}
			node.Params = append(node.Params, p.advance().Lexeme)
			if !p.atOp(",") {
				break
			}
			p.advance()
		}
	}
	p.expectOp(")", "after quest parameters")
	p.expectOp(":", "after quest header")
	node.Body = p.parseBlock()
	return node
}

func (p *parser) parseClassDef() Stmt {
	start := p.advance()
	node := &ClassDef{Line: start.Line}

	if p.at(lexer.KindIdentifier) {
		node.Name = p.advance().Lexeme
	} else {
		p.errorf(p.cur().Line, "expected guild name")
	}

	if p.atOp("(") {
		p.advance()
		if p.at(lexer.KindIdentifier) {
			node.Parent = p.advance().Lexeme
		} else {
			p.errorf(p.cur().Line, "expected parent guild name")
		}
		p.expectOp(")", "after parent guild")
	}

	p.expectOp(":", "after guild header")
	node.Body = p.parseBlock()
	return node
}

func (p *parser) parseTry() Stmt {
	start := p.advance()
	node := &TryStmt{Line: start.Line}

	p.expectOp(":", "after 'embark'")
	node.Body = p.parseBlock()

	for p.at(lexer.KindGameOver) {
		clause := p.advance()
		handler := Handler{Line: clause.Line}
		if p.at(lexer.KindIdentifier) {
			handler.Type = p.advance().Lexeme
		}
		p.expectOp(":", "after gameOver clause")
		handler.Body = p.parseBlock()
		node.Handlers = append(node.Handlers, handler)
	}

	// The untyped catch-all, if any, has to be the final handler.
	// Misordered clauses stay in the tree in source order.
	for i, h := range node.Handlers {
		if h.Type == "" && i != len(node.Handlers)-1 {
			p.errorf(h.Line, "catch-all gameOver must be the last handler")
			p.panicking = false
		}
	}

	if p.at(lexer.KindSavePoint) {
		p.advance()
		p.expectOp(":", "after 'savePoint'")
		node.Finally = p.parseBlock()
	}
	return node
}

func (p *parser) parseMatch() Stmt {
	start := p.advance()
	node := &MatchStmt{Line: start.Line, Subject: p.parseExpression()}
	p.expectOp(":", "after encounter subject")

	if !p.consumeBlockOpen() {
		return node
	}

	wildcardSeen := false
	for {
		p.skipNewlines()
		if !p.at(lexer.KindCase) {
			break
		}
		clause := p.advance()
		c := MatchCase{Line: clause.Line}
		if p.at(lexer.KindIdentifier) && p.cur().Lexeme == "_" {
			p.advance()
		} else {
			c.Pattern = p.parseExpression()
		}
		p.expectOp(":", "after case pattern")
		c.Body = p.parseBlock()

		if c.Pattern == nil {
			if wildcardSeen {
				p.errorf(clause.Line, "duplicate wildcard case")
				p.panicking = false
			}
			wildcardSeen = true
		} else if wildcardSeen {
			p.errorf(clause.Line, "wildcard case must be the last case")
			p.panicking = false
		}
		node.Cases = append(node.Cases, c)
	}

	// Anything left before the closing DEDENT is a statement that is
	// not a case clause. Report it and skip to the end of the block so
	// it is neither lost silently nor reparented outside the encounter.
	if len(node.Cases) == 0 || !(p.at(lexer.KindDedent) || p.at(lexer.KindEOF)) {
		p.errorf(p.cur().Line, "expected 'case' clause in encounter block")
		p.panicking = false
	}
	p.skipToBlockEnd()
	if p.at(lexer.KindDedent) {
		p.advance()
	}
	return node
}

// skipToBlockEnd discards tokens up to the DEDENT that closes the
// current block, stepping over nested blocks on the way.
func (p *parser) skipToBlockEnd() {
	depth := 0
	for !p.at(lexer.KindEOF) {
		switch p.cur().Kind {
		case lexer.KindIndent:
			depth++
		case lexer.KindDedent:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}

// parseBlock parses NEWLINE INDENT Statement+ DEDENT. When the indented
// block is missing it records "expected indented block" and substitutes
// an empty one, so header statements always get a body.
func (p *parser) parseBlock() []Stmt {
	if !p.consumeBlockOpen() {
		return nil
	}

	var stmts []Stmt
	for {
		p.skipNewlines()
		if p.at(lexer.KindDedent) || p.at(lexer.KindEOF) {
			break
		}
		if p.at(lexer.KindIndent) {
			p.errorf(p.cur().Line, "unexpected indent")
			p.panicking = false
			p.advance()
			continue
		}
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.panicking {
			p.synchronize()
		}
	}

	if p.at(lexer.KindDedent) {
		p.advance()
	}
	return stmts
}

// consumeBlockOpen eats the NEWLINE INDENT pair that begins a block.
// It records "expected indented block" when the INDENT never comes.
func (p *parser) consumeBlockOpen() bool {
	if p.at(lexer.KindNewline) {
		p.advance()
	} else if !p.at(lexer.KindEOF) {
		p.errorf(p.cur().Line, "expected newline before block")
	}
	p.skipNewlines()

	if !p.at(lexer.KindIndent) {
		p.errorf(p.cur().Line, "expected indented block")
		p.panicking = false
		return false
	}
	p.advance()
	return true
}

func (p *parser) skipNewlines() {
	for p.at(lexer.KindNewline) {
		p.advance()
	}
}

func describe(t lexer.Token) string {
	if t.Lexeme != "" {
		return fmt.Sprintf("'%s'", t.Lexeme)
	}
	return t.Kind.String()
}
