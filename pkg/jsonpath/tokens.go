// Package jsonpath implements the JSONPath-style expression scanner
// and parser: it turns expression bytes into a JsonPath, an ordered
// list of Steps the evaluator (pkg/patheval) can walk a document tree
// with.
package jsonpath

// Token kind identifiers. These correspond to the terminals of the
// grammar in spec.md §4.2, mirrored after shape-core's string-keyed
// token kinds (see internal/tokenizer.TokenColon and friends).
const (
	TokenDollar      = "Dollar"
	TokenAt          = "At"
	TokenDot         = "Dot"
	TokenDotDot      = "DotDot"
	TokenLBracket    = "LBracket"
	TokenRBracket    = "RBracket"
	TokenLParen      = "LParen"
	TokenRParen      = "RParen"
	TokenStar        = "Star"
	TokenComma       = "Comma"
	TokenColon       = "Colon"
	TokenEq          = "Eq"
	TokenName        = "Name"
	TokenQuotedName  = "QuotedName"
	TokenInteger     = "Integer"
	TokenKwObject    = "KwObject"
	TokenKwArray     = "KwArray"
	TokenKwString    = "KwString"
	TokenKwNumber    = "KwNumber"
	TokenKwBoolean   = "KwBoolean"
	TokenKwNull      = "KwNull"
	TokenWhitespace  = "Whitespace"
	TokenEof         = "Eof"
)

// keywords maps each type-test keyword's text to the token kind the
// Scanner emits for it. The parser reads a keyword token that is not
// immediately followed by "(" as an ordinary name, so a standalone
// "object" etc. selects a mapping key of that spelling. A longer name
// that begins with a keyword (such as "nullable") is still split into
// the keyword token and the rest.
var keywords = map[string]string{
	"object":  TokenKwObject,
	"array":   TokenKwArray,
	"string":  TokenKwString,
	"number":  TokenKwNumber,
	"boolean": TokenKwBoolean,
	"null":    TokenKwNull,
}

// Position is a source location, 1-based for line/column per spec.md §6.
type Position struct {
	Index  int
	Line   int
	Column int
}

// Token is one lexical unit produced by the Scanner.
type Token struct {
	Kind string
	// Text is the raw source text (for Name: the bare identifier; for
	// QuotedName: the decoded, unescaped bytes; for Integer: the digits
	// as written).
	Text []byte
	// Int is populated for TokenInteger.
	Int int64
	Pos Position
	// Err is set when a QuotedName's escape sequence failed to decode;
	// the parser surfaces it as a ParseError at Pos.
	Err error
}
