package lexer_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jannah-ayman/arcanequest-lang/lib/lexer"
)

func kinds(tokens []lexer.Token) []lexer.Kind {
	out := make([]lexer.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestScanHelloWorld(t *testing.T) {
	tokens := lexer.Scan(`attack("Hello, World!")`)

	want := []lexer.Token{
		{Kind: lexer.KindAttack, Lexeme: "attack", Line: 1},
		{Kind: lexer.KindOperator, Lexeme: "(", Line: 1},
		{Kind: lexer.KindString, Lexeme: `"Hello, World!"`, Line: 1},
		{Kind: lexer.KindOperator, Lexeme: ")", Line: 1},
		{Kind: lexer.KindNewline, Line: 1},
		{Kind: lexer.KindEOF, Line: 2},
	}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Scan mismatch:\ngot  %v\nwant %v", tokens, want)
	}
}

func TestScanKeywords(t *testing.T) {
	cases := []struct {
		word string
		want lexer.Kind
	}{
		{"summon", lexer.KindSummon},
		{"quest", lexer.KindQuest},
		{"reward", lexer.KindReward},
		{"attack", lexer.KindAttack},
		{"scout", lexer.KindScout},
		{"spot", lexer.KindSpot},
		{"counter", lexer.KindCounter},
		{"dodge", lexer.KindDodge},
		{"replay", lexer.KindReplay},
		{"farm", lexer.KindFarm},
		{"guild", lexer.KindGuild},
		{"encounter", lexer.KindEncounter},
		{"case", lexer.KindCase},
		{"embark", lexer.KindEmbark},
		{"gameOver", lexer.KindGameOver},
		{"savePoint", lexer.KindSavePoint},
		{"skipEncounter", lexer.KindSkipEncounter},
		{"escapeDungeon", lexer.KindEscapeDungeon},
		{"and", lexer.KindAnd},
		{"or", lexer.KindOr},
		{"not", lexer.KindNot},

		// Type names and boolean literals are plain identifiers.
		{"potion", lexer.KindIdentifier},
		{"elixir", lexer.KindIdentifier},
		{"fate", lexer.KindIdentifier},
		{"scroll", lexer.KindIdentifier},
		{"true", lexer.KindIdentifier},
		{"false", lexer.KindIdentifier},

		// Lookup is case-sensitive.
		{"Spot", lexer.KindIdentifier},
		{"gameover", lexer.KindIdentifier},
	}

	for _, tc := range cases {
		tokens := lexer.Scan(tc.word)
		if tokens[0].Kind != tc.want {
			t.Errorf("Scan(%q): got kind %v, want %v", tc.word, tokens[0].Kind, tc.want)
		}
	}
}

func TestScanOperatorsLongestMatch(t *testing.T) {
	tokens := lexer.Scan("a <= b == c // d ** e != f")

	var ops []string
	for _, tok := range tokens {
		if tok.Kind == lexer.KindOperator {
			ops = append(ops, tok.Lexeme)
		}
	}
	want := []string{"<=", "==", "//", "**", "!="}
	if !reflect.DeepEqual(ops, want) {
		t.Errorf("operators: got %v, want %v", ops, want)
	}
}

func TestScanCompoundAssignOperators(t *testing.T) {
	for _, op := range []string{"+=", "-=", "*=", "/=", "%="} {
		tokens := lexer.Scan("x " + op + " 1")
		if tokens[1].Kind != lexer.KindOperator || tokens[1].Lexeme != op {
			t.Errorf("Scan(x %s 1): got %v(%q)", op, tokens[1].Kind, tokens[1].Lexeme)
		}
	}
}

func TestScanNumbers(t *testing.T) {
	tokens := lexer.Scan("42 3.14 7.")

	want := []lexer.Token{
		{Kind: lexer.KindNumber, Lexeme: "42", Line: 1},
		{Kind: lexer.KindNumber, Lexeme: "3.14", Line: 1},
		{Kind: lexer.KindNumber, Lexeme: "7", Line: 1},
		{Kind: lexer.KindOperator, Lexeme: ".", Line: 1},
		{Kind: lexer.KindNewline, Line: 1},
		{Kind: lexer.KindEOF, Line: 2},
	}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Scan mismatch:\ngot  %v\nwant %v", tokens, want)
	}
}

func TestScanStringEscapes(t *testing.T) {
	tokens := lexer.Scan(`x = "he said \"hi\"" + 'single'`)

	var strs []string
	for _, tok := range tokens {
		if tok.Kind == lexer.KindString {
			strs = append(strs, tok.Lexeme)
		}
	}
	want := []string{`"he said \"hi\""`, `'single'`}
	if !reflect.DeepEqual(strs, want) {
		t.Errorf("strings: got %v, want %v", strs, want)
	}
}

func TestScanUnterminatedString(t *testing.T) {
	tokens := lexer.Scan("attack(\"oops)\nx = 1")

	var errLines []int
	for _, tok := range tokens {
		if tok.Kind == lexer.KindError {
			errLines = append(errLines, tok.Line)
			if !strings.Contains(tok.Lexeme, "unterminated string") {
				t.Errorf("error lexeme = %q, want unterminated string message", tok.Lexeme)
			}
		}
	}
	if !reflect.DeepEqual(errLines, []int{1}) {
		t.Fatalf("error lines = %v, want [1]", errLines)
	}

	// The next line scans cleanly.
	want := []lexer.Kind{
		lexer.KindAttack, lexer.KindOperator, lexer.KindError, lexer.KindNewline,
		lexer.KindIdentifier, lexer.KindOperator, lexer.KindNumber, lexer.KindNewline,
		lexer.KindEOF,
	}
	if got := kinds(tokens); !reflect.DeepEqual(got, want) {
		t.Errorf("kinds: got %v, want %v", got, want)
	}
}

func TestScanComments(t *testing.T) {
	tokens := lexer.Scan("x = 1 --> set up the hero\n--> whole line comment\ny = 2")

	for _, tok := range tokens {
		if tok.Kind == lexer.KindIdentifier && (tok.Lexeme == "set" || tok.Lexeme == "whole") {
			t.Errorf("comment text leaked into tokens: %v", tok)
		}
	}

	// A comment-only line still delimits a line: it contributes its
	// NEWLINE, nothing else.
	want := []lexer.Kind{
		lexer.KindIdentifier, lexer.KindOperator, lexer.KindNumber, lexer.KindNewline,
		lexer.KindNewline,
		lexer.KindIdentifier, lexer.KindOperator, lexer.KindNumber, lexer.KindNewline,
		lexer.KindEOF,
	}
	if got := kinds(tokens); !reflect.DeepEqual(got, want) {
		t.Errorf("kinds: got %v, want %v", got, want)
	}
}

func TestScanTripleQuotedString(t *testing.T) {
	tokens := lexer.Scan(`x = """he said "hi" twice"""`)

	want := []lexer.Token{
		{Kind: lexer.KindIdentifier, Lexeme: "x", Line: 1},
		{Kind: lexer.KindOperator, Lexeme: "=", Line: 1},
		{Kind: lexer.KindString, Lexeme: `"""he said "hi" twice"""`, Line: 1},
		{Kind: lexer.KindNewline, Line: 1},
		{Kind: lexer.KindEOF, Line: 2},
	}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Scan mismatch:\ngot  %v\nwant %v", tokens, want)
	}
}

func TestScanMultiLineTripleQuotedString(t *testing.T) {
	src := "banner = '''hail\nand\nwell met'''\nx = 1"
	tokens := lexer.Scan(src)

	want := []lexer.Token{
		{Kind: lexer.KindIdentifier, Lexeme: "banner", Line: 1},
		{Kind: lexer.KindOperator, Lexeme: "=", Line: 1},
		{Kind: lexer.KindString, Lexeme: "'''hail and well met'''", Line: 1},
		{Kind: lexer.KindNewline, Line: 1},
		{Kind: lexer.KindIdentifier, Lexeme: "x", Line: 2},
		{Kind: lexer.KindOperator, Lexeme: "=", Line: 2},
		{Kind: lexer.KindNumber, Lexeme: "1", Line: 2},
		{Kind: lexer.KindNewline, Line: 2},
		{Kind: lexer.KindEOF, Line: 3},
	}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Scan mismatch:\ngot  %v\nwant %v", tokens, want)
	}
}

func TestScanUnterminatedTripleQuotedString(t *testing.T) {
	tokens := lexer.Scan("x = \"\"\"never ends\nhere either")

	found := false
	for _, tok := range tokens {
		if tok.Kind == lexer.KindError {
			found = true
			if !strings.Contains(tok.Lexeme, "unterminated string") {
				t.Errorf("error lexeme = %q, want unterminated string message", tok.Lexeme)
			}
		}
	}
	if !found {
		t.Error("no ERROR token for unterminated triple-quoted string")
	}
	if tokens[len(tokens)-1].Kind != lexer.KindEOF {
		t.Error("token stream does not end with EOF")
	}
}

func TestScanBlankLinesProduceNothing(t *testing.T) {
	tokens := lexer.Scan("\n\n   \n\t\n")
	if len(tokens) != 1 || tokens[0].Kind != lexer.KindEOF {
		t.Errorf("blank input: got %v, want only EOF", tokens)
	}
}

func TestScanIndentation(t *testing.T) {
	src := strings.Join([]string{
		"spot (x):",
		"    a = 1",
		"    spot (y):",
		"        b = 2",
		"c = 3",
	}, "\n")
	tokens := lexer.Scan(src)

	indents, dedents := 0, 0
	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.KindIndent:
			indents++
		case lexer.KindDedent:
			dedents++
		}
	}
	if indents != 2 || dedents != 2 {
		t.Errorf("got %d INDENT / %d DEDENT, want 2 / 2", indents, dedents)
	}
}

func TestScanIndentBalance(t *testing.T) {
	inputs := []string{
		"",
		"x = 1",
		"spot (x):\n    a = 1",
		"spot (x):\n    spot (y):\n        a = 1",
		"spot (x):\n    a = 1\n  b = 2",
		"spot (x):\n    a = 1\n     b = 2",
		"a = \x01\nspot(:\n      x",
	}
	for _, src := range inputs {
		tokens := lexer.Scan(src)

		if tokens[len(tokens)-1].Kind != lexer.KindEOF {
			t.Errorf("Scan(%q): does not end with EOF", src)
		}
		eofs := 0
		indents, dedents := 0, 0
		for _, tok := range tokens {
			switch tok.Kind {
			case lexer.KindEOF:
				eofs++
			case lexer.KindIndent:
				indents++
			case lexer.KindDedent:
				dedents++
			}
		}
		if eofs != 1 {
			t.Errorf("Scan(%q): %d EOF tokens, want 1", src, eofs)
		}
		if indents != dedents {
			t.Errorf("Scan(%q): %d INDENT vs %d DEDENT", src, indents, dedents)
		}
	}
}

func TestScanDedentMismatch(t *testing.T) {
	src := strings.Join([]string{
		"spot (x):",
		"    a = 1",
		"  b = 2",
	}, "\n")
	tokens := lexer.Scan(src)

	found := false
	for _, tok := range tokens {
		if tok.Kind == lexer.KindError && tok.Line == 3 {
			found = true
			if !strings.Contains(tok.Lexeme, "unindent") {
				t.Errorf("error lexeme = %q, want unindent message", tok.Lexeme)
			}
		}
	}
	if !found {
		t.Error("no ERROR token for mismatched dedent")
	}
}

func TestScanInconsistentIndent(t *testing.T) {
	src := strings.Join([]string{
		"spot (x):",
		"    a = 1",
		"     b = 2",
	}, "\n")
	tokens := lexer.Scan(src)

	found := false
	for _, tok := range tokens {
		if tok.Kind == lexer.KindError && tok.Line == 3 {
			found = true
		}
	}
	if !found {
		t.Error("no ERROR token for inconsistent indent width")
	}
}

func TestScanTabsCountAsFourSpaces(t *testing.T) {
	src := "spot (x):\n\ta = 1\n    b = 2"
	tokens := lexer.Scan(src)

	for _, tok := range tokens {
		if tok.Kind == lexer.KindError {
			t.Errorf("unexpected ERROR token: %v", tok)
		}
	}
	if got := countKind(tokens, lexer.KindIndent); got != 1 {
		t.Errorf("INDENT count = %d, want 1", got)
	}
}

func TestScanIllegalCharacter(t *testing.T) {
	tokens := lexer.Scan("x = 1 @ 2")

	found := false
	for _, tok := range tokens {
		if tok.Kind == lexer.KindError {
			found = true
			if !strings.Contains(tok.Lexeme, "@") {
				t.Errorf("error lexeme = %q, want it to carry the character", tok.Lexeme)
			}
		}
	}
	if !found {
		t.Error("no ERROR token for illegal character")
	}
	// Scanning continued past the bad character.
	if got := countKind(tokens, lexer.KindNumber); got != 2 {
		t.Errorf("NUMBER count = %d, want 2", got)
	}
}

func TestScanIsPure(t *testing.T) {
	src := "quest greet(name):\n    attack(\"hi\", name)\ngreet(\"adventurer\")"
	first := lexer.Scan(src)
	second := lexer.Scan(src)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated scans of identical input differ")
	}
}

func TestScanLineOrder(t *testing.T) {
	src := "a = 1\n\nspot (a):\n    b = 2\nc = 3"
	tokens := lexer.Scan(src)

	prev := 0
	for _, tok := range tokens {
		if tok.Line < prev {
			t.Fatalf("line numbers decreased: %v after line %d", tok, prev)
		}
		prev = tok.Line
	}
}

func countKind(tokens []lexer.Token, kind lexer.Kind) int {
	n := 0
	for _, t := range tokens {
		if t.Kind == kind {
			n++
		}
	}
	return n
}
