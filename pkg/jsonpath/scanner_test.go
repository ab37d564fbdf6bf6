package jsonpath

import "testing"

func scanAll(expr string) []Token {
	s := New([]byte(expr))
	var out []Token
	for {
		tok := s.Next()
		out = append(out, tok)
		if tok.Kind == TokenEof {
			return out
		}
	}
}

func kinds(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func assertKinds(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScannerBasicPunctuation(t *testing.T) {
	toks := scanAll("$.store..*[1]")
	assertKinds(t, kinds(toks),
		TokenDollar, TokenDot, TokenName, TokenDotDot, TokenStar,
		TokenLBracket, TokenInteger, TokenRBracket, TokenEof)
}

func TestScannerDotDotBeforeDot(t *testing.T) {
	// ".." must lex as one DotDot token, not two Dots.
	toks := scanAll("$..name")
	assertKinds(t, kinds(toks), TokenDollar, TokenDotDot, TokenName, TokenEof)
}

func TestScannerTypeKeywordsBeforeName(t *testing.T) {
	toks := scanAll("$.object()")
	assertKinds(t, kinds(toks), TokenDollar, TokenDot, TokenKwObject, TokenLParen, TokenRParen, TokenEof)
}

func TestScannerWhitespaceIsSkipped(t *testing.T) {
	toks := scanAll("$ . name")
	assertKinds(t, kinds(toks), TokenDollar, TokenDot, TokenName, TokenEof)
}

func TestScannerIntegerLiteral(t *testing.T) {
	toks := scanAll("[-42]")
	if len(toks) < 2 {
		t.Fatalf("expected at least 2 tokens, got %d", len(toks))
	}
	found := false
	for _, tok := range toks {
		if tok.Kind == TokenInteger {
			found = true
			if tok.Int != -42 {
				t.Errorf("got Int %d, want -42", tok.Int)
			}
		}
	}
	if !found {
		t.Fatal("expected a TokenInteger in the stream")
	}
}

func TestScannerQuotedNameDecodesEscapes(t *testing.T) {
	toks := scanAll(`["a\tb"]`)
	var q *Token
	for i := range toks {
		if toks[i].Kind == TokenQuotedName {
			q = &toks[i]
		}
	}
	if q == nil {
		t.Fatal("expected a TokenQuotedName")
	}
	if q.Err != nil {
		t.Fatalf("unexpected decode error: %v", q.Err)
	}
	if string(q.Text) != "a\tb" {
		t.Errorf("got %q, want %q", q.Text, "a\tb")
	}
}

func TestScannerQuotedNameUnsupportedEscape(t *testing.T) {
	toks := scanAll(`["a\qb"]`)
	var q *Token
	for i := range toks {
		if toks[i].Kind == TokenQuotedName {
			q = &toks[i]
		}
	}
	if q == nil {
		t.Fatal("expected a TokenQuotedName")
	}
	if q.Err == nil {
		t.Fatal("expected an escape-decode error for \\q")
	}
}

func TestScannerRejectsSurrogateCodePoint(t *testing.T) {
	toks := scanAll(`["\ud800"]`)
	var q *Token
	for i := range toks {
		if toks[i].Kind == TokenQuotedName {
			q = &toks[i]
		}
	}
	if q == nil {
		t.Fatal("expected a TokenQuotedName")
	}
	if q.Err == nil {
		t.Fatal("expected an error for a surrogate-range code point")
	}
}

func TestScannerEofIsSticky(t *testing.T) {
	s := New([]byte("$"))
	s.Next()
	a := s.Next()
	b := s.Next()
	if a.Kind != TokenEof || b.Kind != TokenEof {
		t.Fatalf("expected repeated TokenEof, got %s then %s", a.Kind, b.Kind)
	}
}
