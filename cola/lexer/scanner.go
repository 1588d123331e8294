// Package lexer tokenizes Cola source, which is Markdown-hosted: a document
// is a sequence of headings, paragraphs, and fenced code blocks, with Cola
// syntax living inside ```cola fences. The Scanner is a cursor over the raw
// input string rather than a buffered token stream; callers drive it one
// token at a time, exactly as the two layers require different scanning
// rules at different points in the input.
package lexer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smasher164/xid"
)

// FileRef names the source file a Pos belongs to, for diagnostics.
type FileRef string

type Pos struct {
	File FileRef
	Line, Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// fenceKind tracks which kind of fenced code block (if any) the Scanner is
// currently positioned inside of. This is the piece of state that lets the
// lexer tell a closing fence line apart from an opening one, since both are
// the literal same three backticks at the start of a line.
type fenceKind int

const (
	noFence fenceKind = iota
	colaFence
	regularFence
)

// Scanner is a cursor in the input buffer with associated utility methods.
// There is no separate lexer/parser split; the recursive-descent parser in
// cola/parse drives the Scanner directly, calling NextMarkdownToken or
// NextColaToken depending on which grammar layer it is currently parsing.
type Scanner struct {
	input string
	file  FileRef

	startIndex int // start of this token
	curIndex   int // current cursor position
	tokenType  TokenType

	fence fenceKind

	// startOfLine is used the same way the teacher scanner uses it for its
	// batch separator: only true right after a line boundary, with no
	// non-whitespace content seen yet. It is how NextColaToken recognizes a
	// closing code fence appearing mid-block.
	startOfLine bool

	startLine        int
	stopLine         int
	indexAtStartLine int
	indexAtStopLine  int

	keyword string // lower-cased token text, set only for keyword tokens
}

func New(file FileRef, input string) *Scanner {
	return &Scanner{input: input, file: file, startOfLine: true}
}

func (s *Scanner) TokenType() TokenType { return s.tokenType }

// Clone returns a copy of the scanner, used for bounded lookahead.
func (s Scanner) Clone() *Scanner {
	result := new(Scanner)
	*result = s
	return result
}

func (s *Scanner) Token() string { return s.input[s.startIndex:s.curIndex] }

func (s *Scanner) TokenLower() string { return strings.ToLower(s.Token()) }

func (s *Scanner) Keyword() string { return s.keyword }

func (s *Scanner) Start() Pos {
	return Pos{File: s.file, Line: s.startLine + 1, Col: s.startIndex - s.indexAtStartLine + 1}
}

func (s *Scanner) Stop() Pos {
	return Pos{File: s.file, Line: s.stopLine + 1, Col: s.curIndex - s.indexAtStopLine + 1}
}

func (s *Scanner) bumpLine(offsetFromCur int) {
	s.stopLine++
	s.indexAtStopLine = s.curIndex + offsetFromCur + 1
}

func (s *Scanner) atEOF() bool {
	return s.curIndex >= len(s.input)
}

// --- Markdown host layer -----------------------------------------------

var fenceTagRegexp = regexp.MustCompile(`^[a-z][a-z0-9_+-]*$`)

// NextMarkdownToken scans one Markdown-layer item: a heading line, a
// paragraph line, or an opening/closing code fence line. It is only valid
// to call this when the Scanner is positioned at the start of a line.
func (s *Scanner) NextMarkdownToken() TokenType {
	s.startOfLine = true
	s.startIndex = s.curIndex
	s.keyword = ""
	s.startLine = s.stopLine
	s.indexAtStartLine = s.indexAtStopLine

	if s.atEOF() {
		s.tokenType = EOFToken
		return s.tokenType
	}

	if strings.HasPrefix(s.input[s.curIndex:], "```") {
		s.tokenType = s.scanFenceLine()
		return s.tokenType
	}

	if s.input[s.curIndex] == '#' {
		n := 0
		for n < 6 && s.curIndex+n < len(s.input) && s.input[s.curIndex+n] == '#' {
			n++
		}
		if s.curIndex+n < len(s.input) && (s.input[s.curIndex+n] == ' ' || s.input[s.curIndex+n] == '\t') {
			s.scanRestOfLine()
			s.tokenType = HeadingLineToken
			return s.tokenType
		}
	}

	s.scanRestOfLine()
	s.tokenType = ParagraphLineToken
	return s.tokenType
}

// scanFenceLine assumes the cursor is on the three opening backticks of a
// fence line, and consumes through the end of that line (or EOF). It
// classifies the fence using s.fence, the only state needed to disambiguate
// an opening fence from a closing one, since both are written identically.
func (s *Scanner) scanFenceLine() TokenType {
	s.curIndex += len("```")
	tagStart := s.curIndex
	for !s.atEOF() && s.input[s.curIndex] != '\n' {
		s.curIndex++
	}
	tag := strings.TrimSpace(s.input[tagStart:s.curIndex])
	if !s.atEOF() {
		s.bumpLine(0)
		s.curIndex++ // consume the newline
	}

	switch s.fence {
	case noFence:
		switch {
		case tag == "cola":
			s.fence = colaFence
			return ColaCodeStartToken
		case tag == "":
			s.fence = regularFence
			return RegularCodeStartUnnamedToken
		case fenceTagRegexp.MatchString(tag):
			s.fence = regularFence
			return RegularCodeStartNamedToken
		default:
			return UnexpectedCharacterErrorToken
		}
	case colaFence:
		s.fence = noFence
		return ColaCodeEndToken
	default: // regularFence
		s.fence = noFence
		return RegularCodeEndToken
	}
}

func (s *Scanner) scanRestOfLine() {
	for !s.atEOF() && s.input[s.curIndex] != '\n' {
		s.curIndex++
	}
	if !s.atEOF() {
		s.bumpLine(0)
		s.curIndex++
	}
}

// --- Cola layer -----------------------------------------------------------

var keywords = map[string]TokenType{
	"plural": PluralKeywordToken,
	"true":   TrueKeywordToken,
	"false":  FalseKeywordToken,
}

// NextColaToken scans one token of the Cola grammar: whitespace,
// punctuation, a quoted string, a number, an identifier/keyword, or (when at
// the start of a line) the closing code fence for the block.
func (s *Scanner) NextColaToken() TokenType {
	s.tokenType = s.nextColaToken()

	switch {
	case s.tokenType == WhitespaceToken:
		if s.stopLine > s.startLine {
			s.startOfLine = true
		}
	default:
		s.startOfLine = false
	}
	return s.tokenType
}

func (s *Scanner) nextColaToken() TokenType {
	s.startIndex = s.curIndex
	s.keyword = ""
	s.startLine = s.stopLine
	s.indexAtStartLine = s.indexAtStopLine

	if s.atEOF() {
		return EOFToken
	}

	if s.startOfLine && strings.HasPrefix(s.input[s.curIndex:], "```") {
		return s.scanFenceLine()
	}

	r, w := utf8.DecodeRuneInString(s.input[s.curIndex:])
	switch {
	case r == utf8.RuneError && w <= 0:
		return NonUTF8ErrorToken
	case r == ':':
		s.curIndex += w
		return ColonToken
	case r == ',':
		s.curIndex += w
		return CommaToken
	case r == ';':
		s.curIndex += w
		return SemicolonToken
	case r == '\'' || r == '"':
		return s.scanString(r)
	case unicode.IsSpace(r):
		return s.scanWhitespace()
	case r == '+' || r == '-' || (r >= '0' && r <= '9'):
		if loc := numberRegexp.FindStringIndex(s.input[s.curIndex:]); loc != nil {
			s.curIndex += loc[1]
			return NumberToken
		}
		fallthrough
	case xid.Start(r) || r == '_':
		s.curIndex += w
		s.scanIdentifierRest()
		if tt, ok := keywords[s.TokenLower()]; ok {
			s.keyword = s.TokenLower()
			return tt
		}
		return IdentifierToken
	default:
		s.curIndex += w
		return UnexpectedCharacterErrorToken
	}
}

var numberRegexp = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?`)

func (s *Scanner) scanIdentifierRest() {
	for {
		r, w := utf8.DecodeRuneInString(s.input[s.curIndex:])
		if w == 0 {
			return
		}
		if xid.Continue(r) || r == '_' || r == '.' || r == '-' {
			s.curIndex += w
			continue
		}
		return
	}
}

// scanString assumes the opening quote has not yet been consumed, and scans
// through the matching closing quote. A `\x` sequence is part of the token
// text; decoding (the neutralizing `\x` -> `x`) happens in the model
// builder, per the grammar's escape rule.
func (s *Scanner) scanString(quote rune) TokenType {
	qw := utf8.RuneLen(quote)
	s.curIndex += qw
	escaped := false
	for !s.atEOF() {
		r, w := utf8.DecodeRuneInString(s.input[s.curIndex:])
		if r == '\n' {
			s.bumpLine(0)
		}
		if escaped {
			escaped = false
			s.curIndex += w
			continue
		}
		if r == '\\' {
			escaped = true
			s.curIndex += w
			continue
		}
		if r == quote {
			s.curIndex += w
			return StringToken
		}
		s.curIndex += w
	}
	return UnterminatedStringErrorToken
}

func (s *Scanner) scanWhitespace() TokenType {
	for !s.atEOF() {
		r, w := utf8.DecodeRuneInString(s.input[s.curIndex:])
		if !unicode.IsSpace(r) {
			return WhitespaceToken
		}
		if r == '\n' {
			s.bumpLine(0)
		}
		s.curIndex += w
	}
	return WhitespaceToken
}

// SkipColaWhitespace advances past any run of whitespace tokens, leaving the
// scanner positioned on the next significant Cola token.
func (s *Scanner) SkipColaWhitespace() TokenType {
	for s.TokenType() == WhitespaceToken {
		s.NextColaToken()
	}
	return s.TokenType()
}

// DecodeStringLiteral strips the surrounding quotes from a raw string token
// and applies the grammar's only escape rule: `\x` becomes `x` for any
// character x, including the backslash and quote themselves.
func DecodeStringLiteral(raw string) string {
	if len(raw) < 2 {
		return ""
	}
	body := raw[1 : len(raw)-1]
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++
		}
		b.WriteByte(body[i])
	}
	return b.String()
}
