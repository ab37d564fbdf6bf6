package jsonpath

import (
	shapetok "github.com/shapestone/shape-core/pkg/tokenizer"
)

// pathWhitespaceMatcher skips spaces and tabs. Unlike YAML,
// significant structure in a JSONPath expression never depends on
// whitespace, so newlines are treated the same as any other
// whitespace rune (expressions are conventionally single-line, but
// nothing here requires it).
func pathWhitespaceMatcher() shapetok.Matcher {
	return func(stream shapetok.Stream) *shapetok.Token {
		var consumed []rune
		for {
			r, ok := stream.PeekChar()
			if !ok || (r != ' ' && r != '\t' && r != '\n' && r != '\r') {
				break
			}
			stream.NextChar()
			consumed = append(consumed, r)
		}
		if len(consumed) == 0 {
			return nil
		}
		return shapetok.NewToken(TokenWhitespace, consumed)
	}
}

// quotedNameMatcher recognizes a ' or " delimited name, consuming
// through the matching delimiter. Escape sequences (\x, \\, the
// delimiter itself, ...) are captured verbatim; decoding per the
// escape set in spec.md §4.1 happens in Scanner.Next, not here, since
// a Matcher can only return a token or refuse to match, not an error.
func quotedNameMatcher() shapetok.Matcher {
	return func(stream shapetok.Stream) *shapetok.Token {
		r, ok := stream.PeekChar()
		if !ok || (r != '\'' && r != '"') {
			return nil
		}
		delim := r
		stream.NextChar()

		var raw []rune
		raw = append(raw, delim)
		for {
			r, ok := stream.PeekChar()
			if !ok {
				// Unterminated; return what we have and let the parser
				// report UnbalancedPredicateDelimiter or similar from
				// context. The closing delimiter is absent from raw.
				return shapetok.NewToken(TokenQuotedName, raw)
			}
			stream.NextChar()
			if r == '\\' {
				raw = append(raw, r)
				if next, ok := stream.PeekChar(); ok {
					stream.NextChar()
					raw = append(raw, next)
				}
				continue
			}
			raw = append(raw, r)
			if r == delim {
				break
			}
		}
		return shapetok.NewToken(TokenQuotedName, raw)
	}
}

// integerMatcher recognizes an optionally signed run of decimal
// digits.
func integerMatcher() shapetok.Matcher {
	return func(stream shapetok.Stream) *shapetok.Token {
		var digits []rune

		r, ok := stream.PeekChar()
		if !ok {
			return nil
		}
		if r == '-' {
			digits = append(digits, r)
			stream.NextChar()
			r, ok = stream.PeekChar()
			if !ok || !isDigit(r) {
				return nil
			}
		}
		if !isDigit(r) && len(digits) == 0 {
			return nil
		}

		for {
			r, ok := stream.PeekChar()
			if !ok || !isDigit(r) {
				break
			}
			stream.NextChar()
			digits = append(digits, r)
		}
		if len(digits) == 0 || (len(digits) == 1 && digits[0] == '-') {
			return nil
		}
		return shapetok.NewToken(TokenInteger, digits)
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// nameDelimiters is the set of characters that terminate a bare name,
// per spec.md §4.2's grammar note: "the longest run of characters not
// in .[]*():, and not whitespace".
func isNameDelimiter(r rune) bool {
	switch r {
	case '.', '[', ']', '*', '(', ')', ':', ',':
		return true
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// nameMatcher recognizes a bare identifier: the longest run of
// characters not in the delimiter set. It is tried last so structural
// tokens, keywords, and quoted/integer literals all take precedence.
func nameMatcher() shapetok.Matcher {
	return func(stream shapetok.Stream) *shapetok.Token {
		var value []rune
		for {
			r, ok := stream.PeekChar()
			if !ok || isNameDelimiter(r) {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}
		if len(value) == 0 {
			return nil
		}
		return shapetok.NewToken(TokenName, value)
	}
}
