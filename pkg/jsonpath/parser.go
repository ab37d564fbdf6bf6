package jsonpath

import (
	"github.com/shapestone/shape-path/pkg/document"
)

// Parser is a combinator-style recursive descent parser over a
// Scanner, mirroring internal/parser.Parser's single-struct,
// two-token-lookahead shape: current/next plus peek/peekNext/advance
// helpers, just built over JSONPath tokens instead of YAML ones.
type Parser struct {
	scanner *Scanner
	current Token
	next    Token
	errs    []*ParseError
}

func newParser(scanner *Scanner) *Parser {
	p := &Parser{scanner: scanner}
	p.current = p.scanner.Next()
	p.next = p.scanner.Next()
	return p
}

func (p *Parser) peek() Token  { return p.current }
func (p *Parser) peekNext() Token { return p.next }

func (p *Parser) advance() {
	p.current = p.next
	p.next = p.scanner.Next()
}

func (p *Parser) fail(pos Position, code ErrorCode, format string, args ...any) {
	p.errs = append(p.errs, newError(pos, code, format, args...))
}

// Parse turns expression bytes into a JsonPath, or a non-empty list of
// ParseErrors on failure. Per spec.md §8, parse(s).errors.is_empty() ⇔
// result is usable: a non-nil JsonPath is only ever returned alongside
// an empty error list.
func Parse(expr []byte) (*JsonPath, []*ParseError) {
	if expr == nil {
		return nil, []*ParseError{newError(Position{}, NullExpression, "expression is nil")}
	}
	if len(expr) == 0 {
		return nil, []*ParseError{newError(Position{Column: 0}, ZeroLengthExpression, "expression is empty")}
	}

	p := newParser(New(expr))

	var kind PathKind
	switch p.peek().Kind {
	case TokenDollar:
		kind = Absolute
	case TokenAt:
		kind = Relative
	default:
		p.fail(p.peek().Pos, NotAJsonPath, "expression must start with '$' or '@', got %q", string(p.peek().Text))
		return nil, p.errs
	}
	rootPos := p.peek().Pos
	p.advance()

	path := &JsonPath{Kind: kind, Steps: []Step{{Axis: AxisRoot}}}
	_ = rootPos

	for p.peek().Kind != TokenEof {
		step, ok := p.parseStep()
		if !ok {
			p.resyncToStepBoundary()
			if p.peek().Kind == TokenEof {
				break
			}
			continue
		}
		path.Steps = append(path.Steps, step)
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return path, nil
}

// resyncToStepBoundary advances past tokens until the next step
// boundary (a '.' or '..') or end of input, so a single bad step
// doesn't prevent reporting errors in the rest of the expression.
func (p *Parser) resyncToStepBoundary() {
	for p.peek().Kind != TokenEof && p.peek().Kind != TokenDot && p.peek().Kind != TokenDotDot {
		p.advance()
	}
}

func (p *Parser) parseStep() (Step, bool) {
	var axis StepAxis
	switch p.peek().Kind {
	case TokenDot:
		axis = AxisSingle
		p.advance()
	case TokenDotDot:
		axis = AxisRecursive
		p.advance()
	default:
		p.fail(p.peek().Pos, UnexpectedValue, "expected '.' or '..', got %q", describeToken(p.peek()))
		return Step{}, false
	}

	if p.peek().Kind == TokenEof && axis != AxisRecursive {
		p.fail(p.peek().Pos, PrematureEndOfInput, "expected a node test after '.'")
		return Step{}, false
	}

	test, ok := p.parseNodeTest(axis)
	if !ok {
		return Step{}, false
	}

	step := Step{Axis: axis, Test: test}

	if p.peek().Kind == TokenLBracket {
		pred, ok := p.parsePredicate()
		if !ok {
			return Step{}, false
		}
		step.Predicate = pred
	}

	return step, true
}

// parseNodeTest parses "*", a type_test, or a name. A Recursive step
// with nothing that looks like a node test (predicate bracket, a
// further step boundary, or end of input immediately following)
// defaults to Wildcard per spec.md §4.2.
func (p *Parser) parseNodeTest(axis StepAxis) (NodeTest, bool) {
	switch p.peek().Kind {
	case TokenStar:
		p.advance()
		return NodeTest{Kind: TestWildcard}, true

	case TokenLBracket, TokenEof, TokenDot, TokenDotDot:
		if axis == AxisRecursive {
			return NodeTest{Kind: TestWildcard}, true
		}
		p.fail(p.peek().Pos, PrematureEndOfInput, "expected a node test")
		return NodeTest{}, false

	case TokenKwObject, TokenKwArray, TokenKwString, TokenKwNumber, TokenKwBoolean, TokenKwNull:
		if p.peekNext().Kind != TokenLParen {
			// A type keyword without "()" is an ordinary name.
			name := p.peek().Text
			p.advance()
			return NodeTest{Kind: TestName, Name: name}, true
		}
		return p.parseTypeTest()

	case TokenName:
		if p.peekNext().Kind == TokenLParen {
			// A bare Name immediately followed by "()" that isn't one
			// of the six type keywords is a malformed type test.
			p.fail(p.peek().Pos, ExpectedNodeTypeTest, "unknown type test %q()", string(p.peek().Text))
			p.advance()
			return NodeTest{}, false
		}
		name := p.peek().Text
		p.advance()
		return NodeTest{Kind: TestName, Name: name}, true

	case TokenQuotedName:
		if p.peek().Err != nil {
			p.errs = append(p.errs, p.peek().Err)
			p.advance()
			return NodeTest{}, false
		}
		name := p.peek().Text
		p.advance()
		return NodeTest{Kind: TestName, Name: name}, true

	default:
		p.fail(p.peek().Pos, ExpectedNameChar, "unexpected %q in node test", describeToken(p.peek()))
		return NodeTest{}, false
	}
}

var typeKeywordKind = map[string]document.TypeTestKind{
	TokenKwObject:  document.ObjectType,
	TokenKwArray:   document.ArrayType,
	TokenKwString:  document.StringType,
	TokenKwNumber:  document.NumberType,
	TokenKwBoolean: document.BooleanType,
	TokenKwNull:    document.NullType,
}

func (p *Parser) parseTypeTest() (NodeTest, bool) {
	kind, ok := typeKeywordKind[p.peek().Kind]
	if !ok {
		p.fail(p.peek().Pos, ExpectedNodeTypeTest, "expected a type test keyword")
		return NodeTest{}, false
	}
	pos := p.peek().Pos
	p.advance()
	if p.peek().Kind != TokenLParen {
		p.fail(pos, ExpectedNodeTypeTest, "expected '()' after type test keyword")
		return NodeTest{}, false
	}
	p.advance()
	if p.peek().Kind != TokenRParen {
		p.fail(p.peek().Pos, ExpectedNodeTypeTest, "expected ')' to close type test")
		return NodeTest{}, false
	}
	p.advance()
	return NodeTest{Kind: TestType, Type: kind}, true
}

// parsePredicate parses "[" ( "*" | slice | integer | join ) "]".
func (p *Parser) parsePredicate() (*Predicate, bool) {
	openPos := p.peek().Pos
	p.advance() // consume '['

	if p.peek().Kind == TokenRBracket {
		p.fail(openPos, EmptyPredicate, "predicate brackets must not be empty")
		p.advance()
		return nil, false
	}

	if p.peek().Kind == TokenEof {
		p.fail(openPos, UnbalancedPredicateDelimiter, "unterminated '[' predicate")
		return nil, false
	}

	var pred *Predicate
	var ok bool

	switch {
	case p.peek().Kind == TokenStar:
		p.advance()
		pred, ok = &Predicate{Kind: PredWildcard}, true

	case p.peek().Kind == TokenColon:
		pred, ok = p.parseSlice(nil)

	case p.peek().Kind == TokenInteger:
		n := p.peek().Int
		pos := p.peek().Pos
		if p.peek().Err != nil {
			p.errs = append(p.errs, p.peek().Err)
			return nil, false
		}
		p.advance()
		if p.peek().Kind == TokenColon {
			pred, ok = p.parseSlice(&n)
		} else {
			_ = pos
			pred, ok = &Predicate{Kind: PredSubscript, Index: n}, true
		}

	case p.peek().Kind == TokenDollar || p.peek().Kind == TokenAt:
		pred, ok = p.parseJoin()

	default:
		p.fail(p.peek().Pos, ExpectedInteger, "expected an integer, slice, '*', or path in predicate, got %q", describeToken(p.peek()))
		return nil, false
	}

	if !ok {
		return nil, false
	}

	if p.peek().Kind != TokenRBracket {
		p.fail(p.peek().Pos, UnbalancedPredicateDelimiter, "expected ']' to close predicate")
		return nil, false
	}
	p.advance()

	if pred.Kind != PredJoin {
		switch p.peek().Kind {
		case TokenDot, TokenDotDot, TokenEof, TokenRBracket:
		default:
			p.fail(p.peek().Pos, ExtraJunkAfterPredicate, "unexpected %q after predicate", describeToken(p.peek()))
			return nil, false
		}
	}

	return pred, true
}

// parseSlice parses the remainder of "[ from ] ':' [ to ] [ ':' step ]"
// given an already-consumed optional leading integer (from may be
// nil). The current token on entry is ':'.
func (p *Parser) parseSlice(from *int64) (*Predicate, bool) {
	p.advance() // consume ':'

	pred := &Predicate{Kind: PredSlice, From: from}

	if p.peek().Kind == TokenInteger {
		n := p.peek().Int
		pred.To = &n
		p.advance()
	}

	if p.peek().Kind == TokenColon {
		p.advance()
		if p.peek().Kind != TokenInteger {
			p.fail(p.peek().Pos, ExpectedInteger, "expected an integer slice step")
			return nil, false
		}
		n := p.peek().Int
		if n == 0 {
			p.fail(p.peek().Pos, SliceStepIsZero, "slice step must not be zero")
			return nil, false
		}
		pred.Step = &n
		p.advance()
	}

	return pred, true
}

// parseJoin parses the reserved union predicate "path ',' path". It
// always parses successfully but is rejected at evaluation time
// (spec.md §7, §9).
func (p *Parser) parseJoin() (*Predicate, bool) {
	left, ok := p.parseSubPath()
	if !ok {
		return nil, false
	}
	if p.peek().Kind != TokenComma {
		p.fail(p.peek().Pos, UnsupportedPredicateType, "expected ',' in join predicate")
		return nil, false
	}
	p.advance()
	right, ok := p.parseSubPath()
	if !ok {
		return nil, false
	}
	return &Predicate{Kind: PredJoin, Left: left, Right: right}, true
}

// parseSubPath parses a nested "$..." or "@..." path used only inside
// a join predicate, stopping at the enclosing ',' or ']'.
func (p *Parser) parseSubPath() (*JsonPath, bool) {
	var kind PathKind
	switch p.peek().Kind {
	case TokenDollar:
		kind = Absolute
	case TokenAt:
		kind = Relative
	default:
		p.fail(p.peek().Pos, NotAJsonPath, "expected '$' or '@' to start a join operand")
		return nil, false
	}
	p.advance()

	sub := &JsonPath{Kind: kind, Steps: []Step{{Axis: AxisRoot}}}
	for p.peek().Kind == TokenDot || p.peek().Kind == TokenDotDot {
		step, ok := p.parseStep()
		if !ok {
			return nil, false
		}
		sub.Steps = append(sub.Steps, step)
	}
	return sub, true
}

func describeToken(t Token) string {
	if len(t.Text) > 0 {
		return string(t.Text)
	}
	return t.Kind
}
