// Package document implements the tagged node tree that JSONPath
// expressions are evaluated against: documents, scalars, sequences,
// mappings, and YAML alias references.
//
// The model is deliberately a closed set of concrete types behind the
// Node interface rather than a base struct with virtual dispatch: Go
// has no vtables to re-architect away, so the tagged variant is just
// five structs and a type switch.
package document

import (
	"fmt"
	"hash/fnv"

	"github.com/cockroachdb/apd/v3"
)

// ScalarKind distinguishes the YAML-resolved type of a Scalar's bytes.
type ScalarKind int

const (
	String ScalarKind = iota
	Integer
	Decimal
	Timestamp
	Boolean
	Null
)

func (k ScalarKind) String() string {
	switch k {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Decimal:
		return "decimal"
	case Timestamp:
		return "timestamp"
	case Boolean:
		return "boolean"
	case Null:
		return "null"
	default:
		return "unknown"
	}
}

// Node is the tagged variant every element of a document tree
// implements. The unexported marker method closes the set to the five
// concrete kinds defined in this package.
type Node interface {
	nodeTag()

	// Tag returns the node's YAML tag name ("" if none was given).
	Tag() string
	// Anchor returns the node's YAML anchor name ("" if none was given).
	Anchor() string
}

// meta is embedded by every non-document node to carry its optional
// tag and anchor.
type meta struct {
	tag    string
	anchor string
}

func (m meta) Tag() string    { return m.tag }
func (m meta) Anchor() string { return m.anchor }

// SetAnchor and SetTag let a loader stamp a node's anchor/tag after
// construction, since both are known only once the node's value has
// already been parsed.
func (m *meta) SetAnchor(name string) { m.anchor = name }
func (m *meta) SetTag(tag string)     { m.tag = tag }

// DocumentNode wraps exactly one root child. It never appears as an
// inner node of another node; the parser/loader is responsible for
// that invariant.
type DocumentNode struct {
	Root Node
}

func (*DocumentNode) nodeTag()       {}
func (*DocumentNode) Tag() string    { return "" }
func (*DocumentNode) Anchor() string { return "" }

// ScalarNode is a leaf value: the already-unescaped bytes of a string,
// number, timestamp, boolean, or null, tagged with the resolved kind.
type ScalarNode struct {
	meta
	Kind  ScalarKind
	Bytes []byte
}

func (*ScalarNode) nodeTag() {}

// Decimal parses Bytes as an arbitrary-precision decimal. It is an
// accessor for callers (e.g. an emitter) and is never consulted by the
// evaluator, which only inspects Kind.
func (s *ScalarNode) Decimal() (*apd.Decimal, error) {
	if s.Kind != Decimal && s.Kind != Integer {
		return nil, fmt.Errorf("document: scalar kind %s has no decimal representation", s.Kind)
	}
	d, _, err := apd.NewFromString(string(s.Bytes))
	if err != nil {
		return nil, fmt.Errorf("document: parse decimal %q: %w", s.Bytes, err)
	}
	return d, nil
}

// SequenceNode is an ordered list of child nodes.
type SequenceNode struct {
	meta
	Items []Node
}

func (*SequenceNode) nodeTag() {}

// MappingEntry is one key/value pair of a MappingNode, preserving
// source insertion order.
type MappingEntry struct {
	Key   *ScalarNode
	Value Node
}

// MappingNode is an ordered list of key/value entries. Keys are
// unique under byte-equality of the key scalar's bytes; lookup is by
// those bytes, not by position.
type MappingNode struct {
	meta
	Entries []MappingEntry

	// index is built lazily on first Get call.
	index map[string]int
}

func (*MappingNode) nodeTag() {}

func (m *MappingNode) ensureIndex() {
	if m.index != nil {
		return
	}
	m.index = make(map[string]int, len(m.Entries))
	for i, e := range m.Entries {
		m.index[string(e.Key.Bytes)] = i
	}
}

// Get returns the value bound to key, and whether it was present.
func (m *MappingNode) Get(key []byte) (Node, bool) {
	m.ensureIndex()
	i, ok := m.index[string(key)]
	if !ok {
		return nil, false
	}
	return m.Entries[i].Value, true
}

// AliasNode is a non-owning reference to a node already present in the
// tree (the target of a YAML `&anchor`/`*alias` pair).
type AliasNode struct {
	meta
	Target Node
}

func (*AliasNode) nodeTag() {}

// Resolve follows a node through any AliasNode wrapper, returning the
// first non-alias node reached. Aliasing an alias is not produced by
// this package's loader, but Resolve tolerates it defensively by
// capping the number of hops rather than looping forever.
func Resolve(n Node) Node {
	const maxHops = 64
	for i := 0; i < maxHops; i++ {
		a, ok := n.(*AliasNode)
		if !ok {
			return n
		}
		n = a.Target
	}
	return n
}

// Size returns: for a scalar, the byte length; for a sequence or
// mapping, the entry count; for a document, 1; for an alias, 0 (it
// owns nothing).
func Size(n Node) int {
	switch v := n.(type) {
	case *ScalarNode:
		return len(v.Bytes)
	case *SequenceNode:
		return len(v.Items)
	case *MappingNode:
		return len(v.Entries)
	case *DocumentNode:
		return 1
	case *AliasNode:
		return 0
	default:
		return 0
	}
}

// Equal reports structural equality: kinds and contents must match
// element-wise. Alias equality compares resolved targets, not
// pointers.
func Equal(a, b Node) bool {
	a, b = Resolve(a), Resolve(b)
	switch av := a.(type) {
	case *ScalarNode:
		bv, ok := b.(*ScalarNode)
		return ok && av.Kind == bv.Kind && string(av.Bytes) == string(bv.Bytes)
	case *SequenceNode:
		bv, ok := b.(*SequenceNode)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *MappingNode:
		bv, ok := b.(*MappingNode)
		if !ok || len(av.Entries) != len(bv.Entries) {
			return false
		}
		for i := range av.Entries {
			if string(av.Entries[i].Key.Bytes) != string(bv.Entries[i].Key.Bytes) {
				return false
			}
			if !Equal(av.Entries[i].Value, bv.Entries[i].Value) {
				return false
			}
		}
		return true
	case *DocumentNode:
		bv, ok := b.(*DocumentNode)
		return ok && Equal(av.Root, bv.Root)
	default:
		return false
	}
}

// KeyHash hashes mapping-key bytes with FNV-1a, the byte-level string
// hash spec.md calls for. It must stay consistent with Equal's
// byte-equality comparison, which MappingNode.Get relies on via a
// plain Go map keyed on the key bytes; KeyHash exists for
// callers that need a hash outside of MappingNode's own index, such as
// a caching emitter.
func KeyHash(key []byte) uint64 {
	h := fnv.New64a()
	h.Write(key)
	return h.Sum64()
}

// Set is the ordered collection of loaded documents the evaluator
// walks. It is read-only during evaluation.
type Set struct {
	Documents []*DocumentNode
}

// TypeTestKind is the set of type() node-test targets.
type TypeTestKind int

const (
	ObjectType TypeTestKind = iota
	ArrayType
	StringType
	NumberType
	BooleanType
	NullType
)

func (k TypeTestKind) String() string {
	switch k {
	case ObjectType:
		return "object"
	case ArrayType:
		return "array"
	case StringType:
		return "string"
	case NumberType:
		return "number"
	case BooleanType:
		return "boolean"
	case NullType:
		return "null"
	default:
		return "unknown"
	}
}

// Matches reports whether node (after alias resolution) satisfies the
// type test, per spec.md §4.3's Single+Type(T) mapping:
// Mapping→Object, Sequence→Array, Scalar(String)→String,
// Scalar(Integer|Decimal)→Number, Scalar(Boolean)→Boolean,
// Scalar(Null)→Null.
func (k TypeTestKind) Matches(n Node) bool {
	n = Resolve(n)
	switch v := n.(type) {
	case *MappingNode:
		return k == ObjectType
	case *SequenceNode:
		return k == ArrayType
	case *ScalarNode:
		switch v.Kind {
		case String, Timestamp:
			return k == StringType
		case Integer, Decimal:
			return k == NumberType
		case Boolean:
			return k == BooleanType
		case Null:
			return k == NullType
		}
	}
	return false
}
