package parser

import (
	"github.com/shapestone/shape-path/internal/tokenizer"
	"github.com/shapestone/shape-path/pkg/document"
)

// ParseMultiDoc parses a stream that may contain multiple documents
// separated by "---" markers and optionally ending with a "..." marker,
// returning one document.Node per document in stream order. Empty
// documents (a bare separator with no content) become an empty
// mapping.
func (p *Parser) ParseMultiDoc() ([]document.Node, error) {
	var documents []document.Node

	p.skipWhitespaceAndComments()

	if p.peek() == nil || !p.hasToken {
		return documents, nil
	}

	if p.peek() != nil && p.peek().Kind() == tokenizer.TokenDocSep {
		p.advance()
		p.skipWhitespaceAndComments()
	}

	for {
		token := p.peek()
		if token != nil && p.hasToken {
			if token.Kind() == tokenizer.TokenDocSep {
				documents = append(documents, &document.MappingNode{})
				p.advance()
				p.skipWhitespaceAndComments()
				continue
			}
			if token.Kind() == tokenizer.TokenDocEnd {
				documents = append(documents, &document.MappingNode{})
				break
			}
		}

		if token == nil || !p.hasToken {
			if len(documents) == 0 {
				break
			}
			documents = append(documents, &document.MappingNode{})
			break
		}

		doc, err := p.parseDocumentContent()
		if err != nil {
			return nil, err
		}
		documents = append(documents, doc)

		p.skipWhitespaceAndComments()

		token = p.peek()
		if token == nil || !p.hasToken {
			break
		}

		if token.Kind() == tokenizer.TokenDocSep {
			p.advance()
			p.skipWhitespaceAndComments()
			continue
		}

		if token.Kind() == tokenizer.TokenDocEnd {
			p.advance()
			p.skipWhitespaceAndComments()

			token = p.peek()
			if token != nil && p.hasToken && token.Kind() == tokenizer.TokenDocSep {
				p.advance()
				p.skipWhitespaceAndComments()
				continue
			}
			break
		}

		break
	}

	return documents, nil
}

// parseDocumentContent parses one document's node, then consumes its
// trailing whitespace and any DEDENT tokens left over from it, without
// consuming the separator or end marker that follows.
func (p *Parser) parseDocumentContent() (document.Node, error) {
	node, err := p.parseNode()
	if err != nil {
		return nil, err
	}

	p.skipWhitespaceAndComments()
	for p.peek() != nil && p.peek().Kind() == tokenizer.TokenDedent {
		p.advance()
	}

	return node, nil
}
