package lexer

// TokenType enumerates every token the Markdown host layer and the Cola
// layer can produce. The two layers share a single token stream: the caller
// picks the layer by calling NextMarkdownToken or NextColaToken, and fence
// state only tells an opening fence line from a closing one.
type TokenType int

const (
	WhitespaceToken TokenType = iota + 1

	// Markdown host layer
	HeadingLineToken
	ParagraphLineToken
	ColaCodeStartToken
	ColaCodeEndToken
	RegularCodeStartNamedToken
	RegularCodeStartUnnamedToken
	RegularCodeEndToken

	// Cola layer
	IdentifierToken
	NumberToken
	StringToken
	ColonToken
	CommaToken
	SemicolonToken
	PluralKeywordToken
	TrueKeywordToken
	FalseKeywordToken

	UnterminatedStringErrorToken
	UnexpectedCharacterErrorToken
	NonUTF8ErrorToken

	EOFToken
)

func (tt TokenType) String() string {
	return tokenToDescription[tt]
}

func (tt TokenType) GoString() string {
	return tokenToDescription[tt]
}

func init() {
	// Panic early if a token type was added without updating the
	// description table below.
	for tt := TokenType(1); tt != EOFToken; tt++ {
		if tokenToDescription[tt] == "" {
			panic("cola/lexer: missing description for token type")
		}
	}
}

var tokenToDescription = map[TokenType]string{
	WhitespaceToken: "WhitespaceToken",

	HeadingLineToken:             "HeadingLineToken",
	ParagraphLineToken:           "ParagraphLineToken",
	ColaCodeStartToken:           "ColaCodeStartToken",
	ColaCodeEndToken:             "ColaCodeEndToken",
	RegularCodeStartNamedToken:   "RegularCodeStartNamedToken",
	RegularCodeStartUnnamedToken: "RegularCodeStartUnnamedToken",
	RegularCodeEndToken:          "RegularCodeEndToken",

	IdentifierToken:    "IdentifierToken",
	NumberToken:        "NumberToken",
	StringToken:        "StringToken",
	ColonToken:         "ColonToken",
	CommaToken:         "CommaToken",
	SemicolonToken:     "SemicolonToken",
	PluralKeywordToken: "PluralKeywordToken",
	TrueKeywordToken:   "TrueKeywordToken",
	FalseKeywordToken:  "FalseKeywordToken",

	UnterminatedStringErrorToken:  "UnterminatedStringErrorToken",
	UnexpectedCharacterErrorToken: "UnexpectedCharacterErrorToken",
	NonUTF8ErrorToken:             "NonUTF8ErrorToken",

	EOFToken: "EOFToken",
}
