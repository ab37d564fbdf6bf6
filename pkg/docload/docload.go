// Package docload builds a document.Set from YAML source, the
// reference loader that stands in for whatever system actually owns
// document ingestion in a real deployment (spec.md §1 treats the
// document model and its loader as separate concerns: a caller is free
// to substitute a JSON decoder, a database row mapper, or any other
// producer of document.Node, as long as it respects the tagged-variant
// shape).
//
// # Thread Safety
//
// Every function here creates its own parser with no shared mutable
// state, so concurrent calls from multiple goroutines are safe.
package docload

import (
	"fmt"
	"io"

	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-path/internal/parser"
	"github.com/shapestone/shape-path/pkg/document"
)

// DuplicateKeyPolicy re-exports the loader's duplicate-key resolution
// strategies (spec.md §9 leaves this to the loader's discretion).
type DuplicateKeyPolicy = parser.DuplicateKeyPolicy

const (
	DuplicateKeyError     = parser.DuplicateKeyError
	DuplicateKeyFirstWins = parser.DuplicateKeyFirstWins
	DuplicateKeyLastWins  = parser.DuplicateKeyLastWins
)

// Option configures how a parse call handles duplicate mapping keys.
type Option = parser.Option

// WithDuplicateKeyPolicy overrides the default DuplicateKeyError
// policy for a single Parse/ParseAll call.
func WithDuplicateKeyPolicy(policy DuplicateKeyPolicy) Option {
	return parser.WithDuplicateKeyPolicy(policy)
}

// Parse parses a single YAML document from a string into a
// document.Set containing exactly one DocumentNode.
func Parse(input string, opts ...Option) (*document.Set, error) {
	p := parser.NewParser(input, opts...)
	root, err := p.Parse()
	if err != nil {
		return nil, fmt.Errorf("docload: %w", err)
	}
	return &document.Set{Documents: []*document.DocumentNode{{Root: root}}}, nil
}

// ParseReader is the streaming form of Parse, for a file or any other
// io.Reader source too large to hold as a string.
func ParseReader(r io.Reader, opts ...Option) (*document.Set, error) {
	stream := shapetokenizer.NewStreamFromReader(r)
	p := parser.NewParserFromStream(stream, opts...)
	root, err := p.Parse()
	if err != nil {
		return nil, fmt.Errorf("docload: %w", err)
	}
	return &document.Set{Documents: []*document.DocumentNode{{Root: root}}}, nil
}

// ParseAll parses a stream that may hold multiple "---"-separated
// documents into a document.Set with one DocumentNode per document, in
// stream order.
func ParseAll(input string, opts ...Option) (*document.Set, error) {
	p := parser.NewParser(input, opts...)
	roots, err := p.ParseMultiDoc()
	if err != nil {
		return nil, fmt.Errorf("docload: %w", err)
	}
	set := &document.Set{Documents: make([]*document.DocumentNode, len(roots))}
	for i, root := range roots {
		set.Documents[i] = &document.DocumentNode{Root: root}
	}
	return set, nil
}

// ParseAllReader is the streaming form of ParseAll.
func ParseAllReader(r io.Reader, opts ...Option) (*document.Set, error) {
	stream := shapetokenizer.NewStreamFromReader(r)
	p := parser.NewParserFromStream(stream, opts...)
	roots, err := p.ParseMultiDoc()
	if err != nil {
		return nil, fmt.Errorf("docload: %w", err)
	}
	set := &document.Set{Documents: make([]*document.DocumentNode, len(roots))}
	for i, root := range roots {
		set.Documents[i] = &document.DocumentNode{Root: root}
	}
	return set, nil
}

// Validate reports whether input parses as a single well-formed
// document, discarding the result. It exists for callers that only
// want a syntax check.
func Validate(input string) error {
	_, err := Parse(input)
	return err
}
