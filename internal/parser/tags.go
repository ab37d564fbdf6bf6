package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shapestone/shape-path/internal/tokenizer"
	"github.com/shapestone/shape-path/pkg/document"
)

// parseTaggedNode parses "[ Tag ] Node". Core tags (!!str, !!int,
// !!float, !!bool, !!null) force a scalar's resolved Kind, overriding
// whatever the scanner inferred from its lexical form. A custom or
// verbatim tag is stamped onto the node unchanged, for a caller that
// wants to inspect it later.
func (p *Parser) parseTaggedNode() (document.Node, error) {
	token := p.peek()
	if token == nil || token.Kind() != tokenizer.TokenTag {
		return p.parseNode()
	}

	tagValue := p.current.ValueString()
	p.advance()

	for {
		tok := p.peek()
		if tok == nil {
			break
		}
		if tok.ValueString() == " " || tok.ValueString() == "\t" {
			p.advance()
			continue
		}
		break
	}

	node, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	return p.applyTag(tagValue, node)
}

func (p *Parser) applyTag(tag string, node document.Node) (document.Node, error) {
	switch tag {
	case "!!str":
		return p.coerceScalar(tag, node, document.String)
	case "!!int":
		return p.coerceScalar(tag, node, document.Integer)
	case "!!float":
		return p.coerceScalar(tag, node, document.Decimal)
	case "!!bool":
		return p.coerceScalar(tag, node, document.Boolean)
	case "!!null":
		return &document.ScalarNode{Kind: document.Null}, nil
	case "!!map":
		if _, ok := node.(*document.MappingNode); !ok {
			return nil, fmt.Errorf("!!map tag applied to a non-mapping node")
		}
		return node, nil
	case "!!seq":
		if _, ok := node.(*document.SequenceNode); !ok {
			return nil, fmt.Errorf("!!seq tag applied to a non-sequence node")
		}
		return node, nil
	}

	if m, ok := node.(interface{ SetTag(string) }); ok {
		m.SetTag(tag)
	}
	return node, nil
}

// coerceScalar reinterprets a scalar's bytes under a new core tag's
// kind, converting its textual representation where the two kinds
// disagree (e.g. !!str applied to a bare 42 yields the string "42").
func (p *Parser) coerceScalar(tag string, node document.Node, kind document.ScalarKind) (document.Node, error) {
	lit, ok := node.(*document.ScalarNode)
	if !ok {
		return nil, fmt.Errorf("%s tag cannot be applied to a non-scalar node", tag)
	}
	if lit.Kind == kind {
		return lit, nil
	}

	switch kind {
	case document.String:
		return &document.ScalarNode{Kind: document.String, Bytes: []byte(scalarText(lit))}, nil

	case document.Integer:
		text := string(lit.Bytes)
		switch lit.Kind {
		case document.Decimal:
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: cannot convert %q to integer: %w", tag, text, err)
			}
			return &document.ScalarNode{Kind: document.Integer, Bytes: []byte(strconv.FormatInt(int64(f), 10))}, nil
		case document.Boolean:
			if text == "true" {
				return &document.ScalarNode{Kind: document.Integer, Bytes: []byte("1")}, nil
			}
			return &document.ScalarNode{Kind: document.Integer, Bytes: []byte("0")}, nil
		case document.Null:
			return &document.ScalarNode{Kind: document.Integer, Bytes: []byte("0")}, nil
		default:
			if _, err := strconv.ParseInt(text, 10, 64); err != nil {
				return nil, fmt.Errorf("%s: cannot convert %q to integer: %w", tag, text, err)
			}
			return &document.ScalarNode{Kind: document.Integer, Bytes: []byte(text)}, nil
		}

	case document.Decimal:
		text := string(lit.Bytes)
		switch lit.Kind {
		case document.Boolean:
			if text == "true" {
				return &document.ScalarNode{Kind: document.Decimal, Bytes: []byte("1")}, nil
			}
			return &document.ScalarNode{Kind: document.Decimal, Bytes: []byte("0")}, nil
		case document.Null:
			return &document.ScalarNode{Kind: document.Decimal, Bytes: []byte("0")}, nil
		default:
			if _, err := strconv.ParseFloat(text, 64); err != nil {
				return nil, fmt.Errorf("%s: cannot convert %q to float: %w", tag, text, err)
			}
			return &document.ScalarNode{Kind: document.Decimal, Bytes: []byte(text)}, nil
		}

	case document.Boolean:
		text := strings.ToLower(string(lit.Bytes))
		switch lit.Kind {
		case document.Integer, document.Decimal:
			f, err := strconv.ParseFloat(string(lit.Bytes), 64)
			if err != nil {
				return nil, fmt.Errorf("%s: cannot convert %q to boolean: %w", tag, lit.Bytes, err)
			}
			return &document.ScalarNode{Kind: document.Boolean, Bytes: []byte(strconv.FormatBool(f != 0))}, nil
		case document.Null:
			return &document.ScalarNode{Kind: document.Boolean, Bytes: []byte("false")}, nil
		default:
			switch text {
			case "true", "yes", "on":
				return &document.ScalarNode{Kind: document.Boolean, Bytes: []byte("true")}, nil
			case "false", "no", "off":
				return &document.ScalarNode{Kind: document.Boolean, Bytes: []byte("false")}, nil
			default:
				return nil, fmt.Errorf("%s: cannot convert %q to boolean", tag, lit.Bytes)
			}
		}
	}
	return lit, nil
}

func scalarText(s *document.ScalarNode) string {
	if s.Kind == document.Null {
		return "null"
	}
	return string(s.Bytes)
}
