package jsonpath

import (
	"strconv"
	"unicode/utf8"

	shapetok "github.com/shapestone/shape-core/pkg/tokenizer"
)

// Scanner lexes a JSONPath expression into a token stream, consumed
// lazily by the parser. It is built the same way
// internal/tokenizer.NewTokenizer composes YAML's matchers: an
// ordered list of shape-core tokenizer.Matcher functions, most
// specific first.
type Scanner struct {
	tok    shapetok.Tokenizer
	eofPos Position
}

// New creates a Scanner over expression bytes, starting at the
// beginning of the input (spec.md §4.1's "starting cursor" is always
// 0 here; callers needing a mid-stream start should slice expr
// themselves, since shape-core's Stream has no seek primitive).
func New(expr []byte) *Scanner {
	stream := shapetok.NewStream(string(expr))
	t := shapetok.NewTokenizerWithoutWhitespace(
		pathWhitespaceMatcher(),

		// Two-character token before its one-character prefix.
		shapetok.StringMatcherFunc(TokenDotDot, ".."),

		shapetok.StringMatcherFunc(TokenDollar, "$"),
		shapetok.StringMatcherFunc(TokenAt, "@"),
		shapetok.StringMatcherFunc(TokenDot, "."),
		shapetok.StringMatcherFunc(TokenLBracket, "["),
		shapetok.StringMatcherFunc(TokenRBracket, "]"),
		shapetok.StringMatcherFunc(TokenLParen, "("),
		shapetok.StringMatcherFunc(TokenRParen, ")"),
		shapetok.StringMatcherFunc(TokenStar, "*"),
		shapetok.StringMatcherFunc(TokenComma, ","),
		shapetok.StringMatcherFunc(TokenColon, ":"),
		shapetok.StringMatcherFunc(TokenEq, "="),

		// Type-test keywords, before the generic name matcher (same
		// ordering rationale as YAML's boolean/null keywords).
		shapetok.StringMatcherFunc(TokenKwObject, "object"),
		shapetok.StringMatcherFunc(TokenKwArray, "array"),
		shapetok.StringMatcherFunc(TokenKwString, "string"),
		shapetok.StringMatcherFunc(TokenKwNumber, "number"),
		shapetok.StringMatcherFunc(TokenKwBoolean, "boolean"),
		shapetok.StringMatcherFunc(TokenKwNull, "null"),

		quotedNameMatcher(),
		integerMatcher(),
		nameMatcher(),
	)
	t.InitializeFromStream(stream)
	return &Scanner{tok: t}
}

// Next returns the next token, skipping whitespace. At end of input it
// returns a TokenEof token forever.
func (s *Scanner) Next() Token {
	for {
		raw, ok := s.tok.NextToken()
		if !ok {
			return Token{Kind: TokenEof, Pos: s.eofPos}
		}
		pos := Position{Index: raw.Offset(), Line: raw.Row(), Column: raw.Column()}
		s.eofPos = pos

		switch raw.Kind() {
		case TokenWhitespace:
			continue
		case TokenQuotedName:
			decoded, errCode, msg, ok := unescapeQuoted(raw.Value())
			if !ok {
				return Token{Kind: TokenQuotedName, Pos: pos, Err: newError(pos, errCode, "%s", msg)}
			}
			return Token{Kind: TokenQuotedName, Text: decoded, Pos: pos}
		case TokenInteger:
			n, err := strconv.ParseInt(string(raw.Value()), 10, 64)
			if err != nil {
				return Token{Kind: TokenInteger, Pos: pos, Err: newError(pos, InvalidNumber, "invalid integer %q", string(raw.Value()))}
			}
			return Token{Kind: TokenInteger, Int: n, Text: []byte(string(raw.Value())), Pos: pos}
		default:
			return Token{Kind: raw.Kind(), Text: []byte(string(raw.Value())), Pos: pos}
		}
	}
}

// unescapeQuoted decodes the escape set from spec.md §4.1. raw is the
// matcher's captured text, delimiter included on both ends. When the
// quote was never closed raw lacks the closing delimiter, and decoding
// fails here with UnbalancedPredicateDelimiter, which the parser
// reports as-is.
func unescapeQuoted(raw []rune) (decoded []byte, code ErrorCode, msg string, ok bool) {
	if len(raw) < 2 || raw[len(raw)-1] != raw[0] {
		return nil, UnbalancedPredicateDelimiter, "unterminated quoted name", false
	}
	content := raw[1 : len(raw)-1]
	out := make([]byte, 0, len(content))

	for i := 0; i < len(content); i++ {
		c := content[i]
		if c != '\\' {
			out = appendRune(out, c)
			continue
		}
		i++
		if i >= len(content) {
			return nil, UnsupportedEscapeSequence, "dangling escape at end of quoted name", false
		}
		e := content[i]
		switch e {
		case '"', '\'', '/', '\\':
			out = appendRune(out, e)
		case ' ':
			out = append(out, ' ')
		case 'b':
			out = append(out, '\b')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case '0':
			out = append(out, 0x00)
		case 'a':
			out = append(out, 0x07)
		case 'e':
			out = append(out, 0x1B)
		case 'v':
			out = append(out, 0x0B)
		case '_':
			out = appendRune(out, 0x00A0)
		case 'L':
			out = appendRune(out, 0x2028)
		case 'N':
			out = appendRune(out, 0x0085)
		case 'P':
			out = appendRune(out, 0x2029)
		case 'x':
			v, n, hexOK := parseHex(content, i+1, 2)
			if !hexOK {
				return nil, UnsupportedEscapeSequence, "invalid \\x escape", false
			}
			i += n
			out = append(out, byte(v))
		case 'u':
			v, n, hexOK := parseHex(content, i+1, 4)
			if !hexOK {
				return nil, UnsupportedEscapeSequence, "invalid \\u escape", false
			}
			i += n
			enc, encOK := encodeCodepoint(v)
			if !encOK {
				return nil, UnsupportedUnicodeSequence, "unsupported code point in \\u escape", false
			}
			out = append(out, enc...)
		case 'U':
			v, n, hexOK := parseHex(content, i+1, 8)
			if !hexOK {
				return nil, UnsupportedEscapeSequence, "invalid \\U escape", false
			}
			i += n
			enc, encOK := encodeCodepoint(v)
			if !encOK {
				return nil, UnsupportedUnicodeSequence, "unsupported code point in \\U escape", false
			}
			out = append(out, enc...)
		default:
			return nil, UnsupportedEscapeSequence, "unsupported escape sequence \\" + string(e), false
		}
	}
	return out, 0, "", true
}

func appendRune(out []byte, r rune) []byte {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return append(out, buf[:n]...)
}

func parseHex(content []rune, start, n int) (value int64, consumed int, ok bool) {
	if start+n > len(content) {
		return 0, 0, false
	}
	for i := 0; i < n; i++ {
		d := hexDigit(content[start+i])
		if d < 0 {
			return 0, 0, false
		}
		value = value*16 + int64(d)
	}
	return value, n, true
}

func hexDigit(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	default:
		return -1
	}
}

// encodeCodepoint encodes a UCS-2/UCS-4 code point to UTF-8, rejecting
// the surrogate range U+D800..U+DFFF and the noncharacters
// U+FFFE..U+FFFF, per spec.md §4.1.
func encodeCodepoint(v int64) ([]byte, bool) {
	r := rune(v)
	if v < 0 || v > utf8.MaxRune {
		return nil, false
	}
	if v >= 0xD800 && v <= 0xDFFF {
		return nil, false
	}
	if v >= 0xFFFE && v <= 0xFFFF {
		return nil, false
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return buf[:n], true
}
