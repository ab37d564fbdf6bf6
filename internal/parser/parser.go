// Package parser implements LL(1) recursive descent parsing of a YAML
// subset into document.Node trees. Each production corresponds to a
// parse function, following the same two-token-lookahead shape as
// pkg/jsonpath's Parser.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-path/internal/tokenizer"
	"github.com/shapestone/shape-path/pkg/document"
)

// Parser implements recursive descent parsing of the supported YAML
// subset: block mappings, block sequences, flow collections, scalars,
// anchors, aliases, and core tags. Directives, literal/folded block
// scalars, complex (?) mapping keys, and merge keys (<<) are not
// supported; see DESIGN.md for why this loader's scope stops there.
type Parser struct {
	tokenizer *tokenizer.IndentationTokenizer
	current   *shapetokenizer.Token
	next      *shapetokenizer.Token
	hasToken  bool
	hasNext   bool
	anchors   map[string]document.Node
	onDup     DuplicateKeyPolicy
}

// DuplicateKeyPolicy governs how a mapping handles a repeated key,
// left to the loader's discretion by spec.md §9.
type DuplicateKeyPolicy int

const (
	// DuplicateKeyError rejects the document with a parse error, the
	// default policy.
	DuplicateKeyError DuplicateKeyPolicy = iota
	// DuplicateKeyFirstWins keeps the first occurrence's value and
	// silently discards later ones.
	DuplicateKeyFirstWins
	// DuplicateKeyLastWins overwrites earlier occurrences with the
	// last one parsed, preserving the first occurrence's position in
	// entry order.
	DuplicateKeyLastWins
)

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithDuplicateKeyPolicy overrides the default DuplicateKeyError
// policy.
func WithDuplicateKeyPolicy(policy DuplicateKeyPolicy) Option {
	return func(p *Parser) { p.onDup = policy }
}

// NewParser creates a parser over a YAML source string.
func NewParser(input string, opts ...Option) *Parser {
	return newParserWithStream(shapetokenizer.NewStream(input), opts...)
}

// NewParserFromStream creates a parser over a pre-configured stream,
// for reading from something other than an in-memory string.
func NewParserFromStream(stream shapetokenizer.Stream, opts ...Option) *Parser {
	return newParserWithStream(stream, opts...)
}

func newParserWithStream(stream shapetokenizer.Stream, opts ...Option) *Parser {
	base := tokenizer.NewTokenizer()
	base.InitializeFromStream(stream)
	indented := tokenizer.NewIndentationTokenizer(base)

	p := &Parser{
		tokenizer: indented,
		anchors:   make(map[string]document.Node),
	}
	for _, opt := range opts {
		opt(p)
	}

	if token, ok := indented.NextToken(); ok {
		p.current = token
		p.hasToken = true
	}
	if token, ok := indented.NextToken(); ok {
		p.next = token
		p.hasNext = true
	}
	return p
}

// insertEntry applies the parser's DuplicateKeyPolicy when adding a
// parsed key/value pair to a mapping under construction.
func (p *Parser) insertEntry(m *document.MappingNode, key *document.ScalarNode, value document.Node, pos string) error {
	for i, e := range m.Entries {
		if string(e.Key.Bytes) != string(key.Bytes) {
			continue
		}
		switch p.onDup {
		case DuplicateKeyFirstWins:
			return nil
		case DuplicateKeyLastWins:
			m.Entries[i].Value = value
			return nil
		default:
			return fmt.Errorf("duplicate key %q at %s", key.Bytes, pos)
		}
	}
	m.Entries = append(m.Entries, document.MappingEntry{Key: key, Value: value})
	return nil
}

// Parse parses the input and returns the single root document.Node, or
// an error. An empty document parses to an empty mapping.
func (p *Parser) Parse() (document.Node, error) {
	p.skipWhitespaceAndComments()

	for p.peek() != nil && (p.peek().Kind() == tokenizer.TokenDocSep || p.peek().Kind() == tokenizer.TokenDocEnd) {
		p.advance()
		p.skipWhitespaceAndComments()
	}

	if p.peek() == nil || !p.hasToken {
		return &document.MappingNode{}, nil
	}

	node, err := p.parseNode()
	if err != nil {
		return nil, err
	}

	p.skipWhitespaceAndComments()
	for p.peek() != nil && p.peek().Kind() == tokenizer.TokenDedent {
		p.advance()
	}

	if token := p.peek(); token != nil && p.hasToken {
		return nil, fmt.Errorf("unexpected content after document at %s", p.positionStr())
	}
	return node, nil
}

// parseNode parses any supported node using one token of lookahead.
func (p *Parser) parseNode() (document.Node, error) {
	token := p.peek()
	if token == nil || !p.hasToken {
		return nil, fmt.Errorf("unexpected end of input")
	}

	switch token.Kind() {
	case tokenizer.TokenString:
		return p.parseMappingOrScalar()
	case tokenizer.TokenDash:
		return p.parseBlockSequence()
	case tokenizer.TokenNumber, tokenizer.TokenTrue, tokenizer.TokenFalse, tokenizer.TokenNull:
		return p.parseScalar()
	case tokenizer.TokenLBrace:
		return p.parseFlowMapping()
	case tokenizer.TokenLBracket:
		return p.parseFlowSequence()
	case tokenizer.TokenAnchor:
		return p.parseAnchoredNode()
	case tokenizer.TokenAlias:
		return p.parseAlias()
	case tokenizer.TokenTag:
		return p.parseTaggedNode()
	default:
		return nil, fmt.Errorf("expected a YAML value at %s, got %s", p.positionStr(), token.Kind())
	}
}

// parseMappingOrScalar distinguishes "key: value" from a bare scalar
// using the second lookahead token.
func (p *Parser) parseMappingOrScalar() (document.Node, error) {
	if next := p.peekNext(); next != nil && next.Kind() == tokenizer.TokenColon {
		return p.parseBlockMapping()
	}
	return p.parseScalar()
}

// parseBlockMapping parses a sequence of "key: value" entries at the
// same indentation level, preserving insertion order.
func (p *Parser) parseBlockMapping() (*document.MappingNode, error) {
	m := &document.MappingNode{}
	indentDepth := 0

	for {
		token := p.peek()
		if token == nil || !p.hasToken || token.Kind() == tokenizer.TokenDedent {
			break
		}
		if token.Kind() == tokenizer.TokenNewline {
			p.advance()
			continue
		}
		if token.Kind() == tokenizer.TokenIndent {
			p.advance()
			indentDepth++
			continue
		}
		if token.Kind() != tokenizer.TokenString {
			break
		}

		keyToken := p.current
		p.advance()
		keyBytes := []byte(p.unquoteString(keyToken.ValueString()))
		key := &document.ScalarNode{Kind: document.String, Bytes: keyBytes}

		if err := p.expect(tokenizer.TokenColon); err != nil {
			return nil, fmt.Errorf("after key %q: %w", keyBytes, err)
		}

		value, err := p.parseMappingValue(keyBytes)
		if err != nil {
			return nil, err
		}

		if err := p.insertEntry(m, key, value, p.positionStr()); err != nil {
			return nil, err
		}
	}

	for indentDepth > 0 && p.peek() != nil && p.peek().Kind() == tokenizer.TokenDedent {
		p.advance()
		indentDepth--
	}
	return m, nil
}

// parseMappingValue parses the value half of a mapping entry, which
// may sit on the same line as the colon or be indented on the next.
func (p *Parser) parseMappingValue(key []byte) (document.Node, error) {
	if p.peek() != nil && p.peek().Kind() == tokenizer.TokenNewline {
		p.advance()
		p.skipWhitespaceAndComments()

		if p.peek() != nil && p.peek().Kind() == tokenizer.TokenIndent {
			p.advance()
			value, err := p.parseNode()
			if err != nil {
				return nil, fmt.Errorf("in value for key %q: %w", key, err)
			}
			if p.peek() != nil && p.peek().Kind() == tokenizer.TokenDedent {
				p.advance()
			}
			return value, nil
		}
		return &document.ScalarNode{Kind: document.Null}, nil
	}

	if p.peek() == nil || !p.hasToken {
		return &document.ScalarNode{Kind: document.Null}, nil
	}

	value, err := p.parseNode()
	if err != nil {
		return nil, fmt.Errorf("in value for key %q: %w", key, err)
	}
	if p.peek() != nil && p.peek().Kind() == tokenizer.TokenNewline {
		p.advance()
	}
	return value, nil
}

// parseBlockSequence parses a run of "- value" entries at the same
// indentation level.
func (p *Parser) parseBlockSequence() (*document.SequenceNode, error) {
	seq := &document.SequenceNode{}

	for {
		token := p.peek()
		if token == nil || !p.hasToken || token.Kind() == tokenizer.TokenDedent {
			break
		}
		if token.Kind() == tokenizer.TokenNewline {
			p.advance()
			continue
		}
		if token.Kind() != tokenizer.TokenDash {
			break
		}
		p.advance()

		if p.peek() != nil && p.peek().Kind() == tokenizer.TokenNewline {
			p.advance()
			p.skipWhitespaceAndComments()

			if p.peek() != nil && p.peek().Kind() == tokenizer.TokenIndent {
				p.advance()
				value, err := p.parseNode()
				if err != nil {
					return nil, fmt.Errorf("in sequence item %d: %w", len(seq.Items), err)
				}
				seq.Items = append(seq.Items, value)
				if p.peek() != nil && p.peek().Kind() == tokenizer.TokenDedent {
					p.advance()
				}
			} else {
				seq.Items = append(seq.Items, &document.ScalarNode{Kind: document.Null})
			}
			continue
		}

		value, err := p.parseNode()
		if err != nil {
			return nil, fmt.Errorf("in sequence item %d: %w", len(seq.Items), err)
		}
		seq.Items = append(seq.Items, value)
		if p.peek() != nil && p.peek().Kind() == tokenizer.TokenNewline {
			p.advance()
		}
	}
	return seq, nil
}

// parseFlowMapping parses "{ key: value, ... }".
func (p *Parser) parseFlowMapping() (*document.MappingNode, error) {
	if err := p.expect(tokenizer.TokenLBrace); err != nil {
		return nil, err
	}
	m := &document.MappingNode{}

	if p.peek().Kind() != tokenizer.TokenRBrace {
		if err := p.parseFlowMember(m); err != nil {
			return nil, err
		}
		for p.peek() != nil && p.peek().Kind() == tokenizer.TokenComma {
			p.advance()
			if err := p.parseFlowMember(m); err != nil {
				return nil, fmt.Errorf("after ',' in flow mapping: %w", err)
			}
		}
	}
	if err := p.expect(tokenizer.TokenRBrace); err != nil {
		return nil, err
	}
	return m, nil
}

func (p *Parser) parseFlowMember(m *document.MappingNode) error {
	if p.peek().Kind() != tokenizer.TokenString {
		return fmt.Errorf("flow mapping key must be a string at %s, got %s", p.positionStr(), p.peek().Kind())
	}
	keyToken := p.current
	p.advance()
	keyBytes := []byte(p.unquoteString(keyToken.ValueString()))

	if err := p.expect(tokenizer.TokenColon); err != nil {
		return fmt.Errorf("after flow key %q: %w", keyBytes, err)
	}
	value, err := p.parseNode()
	if err != nil {
		return fmt.Errorf("in value for key %q: %w", keyBytes, err)
	}
	key := &document.ScalarNode{Kind: document.String, Bytes: keyBytes}
	return p.insertEntry(m, key, value, p.positionStr())
}

// parseFlowSequence parses "[ value, ... ]".
func (p *Parser) parseFlowSequence() (*document.SequenceNode, error) {
	if err := p.expect(tokenizer.TokenLBracket); err != nil {
		return nil, err
	}
	seq := &document.SequenceNode{}

	if p.peek().Kind() != tokenizer.TokenRBracket {
		value, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		seq.Items = append(seq.Items, value)

		for p.peek() != nil && p.peek().Kind() == tokenizer.TokenComma {
			p.advance()
			value, err := p.parseNode()
			if err != nil {
				return nil, fmt.Errorf("in flow sequence element %d: %w", len(seq.Items), err)
			}
			seq.Items = append(seq.Items, value)
		}
	}
	if err := p.expect(tokenizer.TokenRBracket); err != nil {
		return nil, err
	}
	return seq, nil
}

// parseAnchoredNode parses "&name value", recording the parsed value
// under name so a later "*name" alias can find it.
func (p *Parser) parseAnchoredNode() (document.Node, error) {
	anchorToken := p.current
	p.advance()
	name := strings.TrimPrefix(anchorToken.ValueString(), "&")

	if p.peek() != nil && p.peek().Kind() == tokenizer.TokenNewline {
		p.advance()
		p.skipWhitespaceAndComments()
		if p.peek() != nil && p.peek().Kind() == tokenizer.TokenIndent {
			p.advance()
		}
	}

	value, err := p.parseNode()
	if err != nil {
		return nil, fmt.Errorf("in anchored node &%s: %w", name, err)
	}
	if p.peek() != nil && p.peek().Kind() == tokenizer.TokenDedent {
		p.advance()
	}

	if m, ok := value.(interface{ SetAnchor(string) }); ok {
		m.SetAnchor(name)
	}
	p.anchors[name] = value
	return value, nil
}

// parseAlias parses "*name", resolving it immediately to an
// AliasNode wrapping the anchor's value. An undefined alias is a
// parse error rather than a deferred evaluator failure, since the
// source it was anchored from is always in the same document.
func (p *Parser) parseAlias() (document.Node, error) {
	aliasToken := p.current
	p.advance()
	name := strings.TrimPrefix(aliasToken.ValueString(), "*")

	target, ok := p.anchors[name]
	if !ok {
		return nil, fmt.Errorf("undefined alias *%s at %s", name, p.positionStr())
	}
	return &document.AliasNode{Target: target}, nil
}

// parseScalar parses a plain or quoted scalar, resolving its core
// YAML type (string, int, float, bool, null) from its lexical form.
func (p *Parser) parseScalar() (*document.ScalarNode, error) {
	token := p.peek()
	if token == nil || !p.hasToken {
		return nil, fmt.Errorf("unexpected end of input")
	}

	switch token.Kind() {
	case tokenizer.TokenString:
		tokenValue := p.current.ValueString()
		p.advance()
		return &document.ScalarNode{Kind: document.String, Bytes: []byte(p.unquoteString(tokenValue))}, nil

	case tokenizer.TokenNumber:
		tokenValue := p.current.ValueString()
		p.advance()
		if strings.Contains(tokenValue, ".") || strings.ContainsAny(tokenValue, "eE") {
			return &document.ScalarNode{Kind: document.Decimal, Bytes: []byte(tokenValue)}, nil
		}
		return &document.ScalarNode{Kind: document.Integer, Bytes: []byte(tokenValue)}, nil

	case tokenizer.TokenTrue:
		p.advance()
		return &document.ScalarNode{Kind: document.Boolean, Bytes: []byte("true")}, nil

	case tokenizer.TokenFalse:
		p.advance()
		return &document.ScalarNode{Kind: document.Boolean, Bytes: []byte("false")}, nil

	case tokenizer.TokenNull:
		p.advance()
		return &document.ScalarNode{Kind: document.Null}, nil

	default:
		return nil, fmt.Errorf("expected a scalar at %s, got %s", p.positionStr(), token.Kind())
	}
}

// Helper methods

func (p *Parser) peek() *shapetokenizer.Token {
	for p.hasToken && (p.current.Kind() == "Whitespace" || p.current.Kind() == tokenizer.TokenComment) {
		p.advance()
	}
	return p.current
}

func (p *Parser) advance() {
	p.current = p.next
	p.hasToken = p.hasNext

	token, ok := p.tokenizer.NextToken()
	if ok {
		p.next = token
		p.hasNext = true
	} else {
		p.next = nil
		p.hasNext = false
	}
}

func (p *Parser) peekNext() *shapetokenizer.Token {
	for p.hasNext && (p.next.Kind() == "Whitespace" || p.next.Kind() == tokenizer.TokenComment) {
		token, ok := p.tokenizer.NextToken()
		if ok {
			p.next = token
		} else {
			p.hasNext = false
			return nil
		}
	}
	return p.next
}

func (p *Parser) expect(kind string) error {
	if p.peek() == nil || !p.hasToken {
		return fmt.Errorf("expected %s at %s, got end of input", kind, p.positionStr())
	}
	if p.peek().Kind() != kind {
		return fmt.Errorf("expected %s at %s, got %s", kind, p.positionStr(), p.peek().Kind())
	}
	p.advance()
	return nil
}

func (p *Parser) positionStr() string {
	if p.hasToken && p.current != nil {
		return fmt.Sprintf("%d:%d", p.current.Row(), p.current.Column())
	}
	return "end of input"
}

func (p *Parser) skipWhitespaceAndComments() {
	for p.hasToken && p.current != nil &&
		(p.current.Kind() == tokenizer.TokenNewline ||
			p.current.Kind() == "Whitespace" ||
			p.current.Kind() == tokenizer.TokenComment) {
		p.advance()
	}
}

// unquoteString strips quote delimiters and unescapes a double- or
// single-quoted string; a plain string passes through unchanged.
func (p *Parser) unquoteString(s string) string {
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		return p.unescapeDoubleQuoted(s[1 : len(s)-1])
	}
	if strings.HasPrefix(s, `'`) && strings.HasSuffix(s, `'`) && len(s) >= 2 {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}

func (p *Parser) unescapeDoubleQuoted(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			buf.WriteByte(s[i])
			continue
		}
		i++
		if i >= len(s) {
			buf.WriteByte('\\')
			break
		}
		switch s[i] {
		case '"', '\\', '/':
			buf.WriteByte(s[i])
		case 'b':
			buf.WriteByte('\b')
		case 'f':
			buf.WriteByte('\f')
		case 'n':
			buf.WriteByte('\n')
		case 'r':
			buf.WriteByte('\r')
		case 't':
			buf.WriteByte('\t')
		case '0':
			buf.WriteByte('\x00')
		case 'a':
			buf.WriteByte('\a')
		case 'v':
			buf.WriteByte('\v')
		case 'e':
			buf.WriteByte('\x1b')
		case ' ':
			buf.WriteByte(' ')
		case 'N':
			buf.WriteRune('\u0085')
		case '_':
			buf.WriteRune('\u00a0')
		case 'L':
			buf.WriteRune('\u2028')
		case 'P':
			buf.WriteRune('\u2029')
		case 'u':
			if i+4 < len(s) {
				if codepoint, err := strconv.ParseUint(s[i+1:i+5], 16, 32); err == nil {
					buf.WriteRune(rune(codepoint))
					i += 4
					continue
				}
			}
			buf.WriteString("\\u")
		case 'U':
			if i+8 < len(s) {
				if codepoint, err := strconv.ParseUint(s[i+1:i+9], 16, 32); err == nil {
					buf.WriteRune(rune(codepoint))
					i += 8
					continue
				}
			}
			buf.WriteString("\\U")
		default:
			buf.WriteByte('\\')
			buf.WriteByte(s[i])
		}
	}
	return buf.String()
}
