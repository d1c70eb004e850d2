// Package lexer turns ArcaneQuest source text into an ordered token
// stream. Indentation is resolved into explicit INDENT/DEDENT tokens and
// every lexical problem is surfaced as an ERROR token, so scanning never
// fails fatally.
package lexer

import (
	"strconv"
	"strings"
)

const tabWidth = 4

// Scan tokenizes source and returns the complete token sequence. The
// result always ends with exactly one EOF token, and INDENT/DEDENT
// tokens are balanced once the end-of-input flush has run. Identical
// input always yields an identical sequence.
func Scan(source string) []Token {
	s := &scanner{
		indents: []int{0},
	}
	lines := strings.Split(source, "\n")
	for i, raw := range lines {
		lines[i] = strings.TrimSuffix(raw, "\r")
	}
	for _, line := range mergeTripleQuoted(lines) {
		s.line++
		s.scanLine(line)
	}

	// Flush still-open indentation levels.
	for len(s.indents) > 1 {
		s.indents = s.indents[:len(s.indents)-1]
		s.emit(KindDedent, "")
	}
	s.line++
	s.emit(KindEOF, "")
	return s.tokens
}

// scanner holds the state of a single Scan call. It is never shared, so
// concurrent Scan calls are safe.
type scanner struct {
	tokens  []Token
	indents []int
	unit    int // width of the first indent, fixes the expected step
	line    int
}

func (s *scanner) emit(kind Kind, lexeme string) {
	s.tokens = append(s.tokens, Token{Kind: kind, Lexeme: lexeme, Line: s.line})
}

func (s *scanner) errorf(msg string) {
	s.emit(KindError, msg)
}

func (s *scanner) scanLine(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}

	width, rest := splitIndent(line)
	s.trackIndent(width)
	s.scanContent(rest)
	s.emit(KindNewline, "")
}

// splitIndent measures the leading whitespace of a line, counting a tab
// as 4 spaces, and returns the width plus the remaining content.
func splitIndent(line string) (int, string) {
	width := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			width++
		case '\t':
			width += tabWidth
		default:
			return width, line[i:]
		}
	}
	return width, ""
}

func (s *scanner) trackIndent(width int) {
	top := s.indents[len(s.indents)-1]
	switch {
	case width > top:
		if s.unit == 0 {
			s.unit = width - top
		} else if (width-top)%s.unit != 0 {
			s.errorf("inconsistent indentation: expected a multiple of " + strconv.Itoa(s.unit) + " spaces")
		}
		s.indents = append(s.indents, width)
		s.emit(KindIndent, "")
	case width < top:
		for width < s.indents[len(s.indents)-1] {
			s.indents = s.indents[:len(s.indents)-1]
			s.emit(KindDedent, "")
		}
		// Snap to the nearest enclosing level when nothing matches.
		if width != s.indents[len(s.indents)-1] {
			s.errorf("unindent does not match any outer indentation level")
		}
	}
}

func (s *scanner) scanContent(src string) {
	pos := 0
	for pos < len(src) {
		ch := src[pos]

		if ch == ' ' || ch == '\t' {
			pos++
			continue
		}
		if strings.HasPrefix(src[pos:], "-->") {
			return // comment runs to end of line
		}
		if strings.HasPrefix(src[pos:], `"""`) || strings.HasPrefix(src[pos:], "'''") {
			pos = s.scanTripleString(src, pos)
			continue
		}
		if ch == '"' || ch == '\'' {
			var ok bool
			pos, ok = s.scanString(src, pos)
			if !ok {
				return // resume at the next line
			}
			continue
		}
		if isDigit(ch) {
			pos = s.scanNumber(src, pos)
			continue
		}
		if isIdentStart(ch) {
			pos = s.scanIdentifier(src, pos)
			continue
		}
		if pos+1 < len(src) && isTwoCharOp(src[pos:pos+2]) {
			s.emit(KindOperator, src[pos:pos+2])
			pos += 2
			continue
		}
		if isOneCharOp(ch) {
			s.emit(KindOperator, src[pos:pos+1])
			pos++
			continue
		}

		s.errorf("illegal character: " + src[pos:pos+1])
		pos++
	}
}

// scanString consumes a quoted string starting at pos. It returns the
// position after the closing quote, or false when the quote never
// closes, in which case an ERROR token carries the partial lexeme.
func (s *scanner) scanString(src string, pos int) (int, bool) {
	quote := src[pos]
	i := pos + 1
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
		case quote:
			s.emit(KindString, src[pos:i+1])
			return i + 1, true
		default:
			i++
		}
	}
	s.errorf("unterminated string literal: " + src[pos:])
	return len(src), false
}

// scanTripleString consumes a triple-quoted string. Multi-line bodies
// were folded onto this line by mergeTripleQuoted, so a missing closer
// means the string never ends anywhere in the input; scanning continues
// after the opening quotes in that case.
func (s *scanner) scanTripleString(src string, pos int) int {
	quote := src[pos : pos+3]
	end := strings.Index(src[pos+3:], quote)
	if end == -1 {
		s.errorf("unterminated string literal: " + quote)
		return pos + 3
	}
	s.emit(KindString, src[pos:pos+3+end+3])
	return pos + 3 + end + 3
}

func (s *scanner) scanNumber(src string, pos int) int {
	i := pos
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i+1 < len(src) && src[i] == '.' && isDigit(src[i+1]) {
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	s.emit(KindNumber, src[pos:i])
	return i
}

func (s *scanner) scanIdentifier(src string, pos int) int {
	i := pos
	for i < len(src) && isIdentPart(src[i]) {
		i++
	}
	word := src[pos:i]
	if kind, ok := keywords[word]; ok {
		s.emit(kind, word)
	} else {
		s.emit(KindIdentifier, word)
	}
	return i
}

// mergeTripleQuoted joins the lines of every multi-line triple-quoted
// string into one line, so the per-line pass can tokenize the string
// whole. Line numbers of everything after a merged string shift up
// accordingly. A string that never closes swallows the rest of the
// input, which the tokenizer then reports as unterminated.
func mergeTripleQuoted(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		quote, start := findTripleQuote(line)
		if quote == "" || strings.Contains(line[start+3:], quote) {
			out = append(out, line)
			continue
		}
		merged := []string{line}
		for i+1 < len(lines) {
			i++
			merged = append(merged, lines[i])
			if strings.Contains(lines[i], quote) {
				break
			}
		}
		out = append(out, strings.Join(merged, " "))
	}
	return out
}

// findTripleQuote locates the first triple quote on a line, preferring
// whichever style appears first.
func findTripleQuote(line string) (string, int) {
	d := strings.Index(line, `"""`)
	s := strings.Index(line, "'''")
	switch {
	case d != -1 && (s == -1 || d < s):
		return `"""`, d
	case s != -1:
		return "'''", s
	}
	return "", -1
}

func isTwoCharOp(op string) bool {
	switch op {
	case "**", "<=", ">=", "==", "!=", "+=", "-=", "*=", "/=", "%=", "//":
		return true
	}
	return false
}

func isOneCharOp(ch byte) bool {
	switch ch {
	case '(', ')', '{', '}', '[', ']', ':', ',', '.',
		'+', '-', '*', '/', '%', '<', '>', '=', '!', '~':
		return true
	}
	return false
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
