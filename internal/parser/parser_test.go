package parser

import (
	"testing"

	"github.com/shapestone/shape-path/pkg/document"
)

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func mustParse(t *testing.T, input string) document.Node {
	t.Helper()
	node, err := NewParser(input).Parse()
	assertNoError(t, err)
	return node
}

func scalarBytes(t *testing.T, n document.Node) []byte {
	t.Helper()
	s, ok := n.(*document.ScalarNode)
	if !ok {
		t.Fatalf("expected *document.ScalarNode, got %T", n)
	}
	return s.Bytes
}

func TestParseScalarValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  document.ScalarKind
		bytes string
	}{
		{"plain string", "hello", document.String, "hello"},
		{"double quoted string", `"hello world"`, document.String, "hello world"},
		{"single quoted string", `'it''s'`, document.String, "it's"},
		{"integer", "42", document.Integer, "42"},
		{"negative integer", "-17", document.Integer, "-17"},
		{"float", "3.14", document.Decimal, "3.14"},
		{"exponent", "1e10", document.Decimal, "1e10"},
		{"true", "true", document.Boolean, "true"},
		{"yes as true", "yes", document.Boolean, "true"},
		{"false", "false", document.Boolean, "false"},
		{"null", "null", document.Null, ""},
		{"tilde null", "~", document.Null, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := mustParse(t, tt.input)
			s, ok := node.(*document.ScalarNode)
			if !ok {
				t.Fatalf("expected *document.ScalarNode, got %T", node)
			}
			if s.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", s.Kind, tt.kind)
			}
			if tt.kind != document.Null && string(s.Bytes) != tt.bytes {
				t.Errorf("bytes = %q, want %q", s.Bytes, tt.bytes)
			}
		})
	}
}

func TestParseBlockMapping(t *testing.T) {
	node := mustParse(t, "name: Alice\nage: 30\n")

	m, ok := node.(*document.MappingNode)
	if !ok {
		t.Fatalf("expected *document.MappingNode, got %T", node)
	}
	if len(m.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(m.Entries))
	}

	name, ok := m.Get([]byte("name"))
	if !ok {
		t.Fatal("missing key \"name\"")
	}
	if string(scalarBytes(t, name)) != "Alice" {
		t.Errorf("name = %q, want %q", scalarBytes(t, name), "Alice")
	}

	age, ok := m.Get([]byte("age"))
	if !ok {
		t.Fatal("missing key \"age\"")
	}
	if string(scalarBytes(t, age)) != "30" {
		t.Errorf("age = %q, want %q", scalarBytes(t, age), "30")
	}
}

func TestParseNestedMapping(t *testing.T) {
	input := "person:\n  name: Alice\n  address:\n    city: NYC\n    zip: 10001\n"
	node := mustParse(t, input)

	root := node.(*document.MappingNode)
	person, ok := root.Get([]byte("person"))
	if !ok {
		t.Fatal("missing key \"person\"")
	}
	personMap, ok := person.(*document.MappingNode)
	if !ok {
		t.Fatalf("expected person to be a mapping, got %T", person)
	}
	address, ok := personMap.Get([]byte("address"))
	if !ok {
		t.Fatal("missing key \"address\"")
	}
	addressMap, ok := address.(*document.MappingNode)
	if !ok {
		t.Fatalf("expected address to be a mapping, got %T", address)
	}
	city, ok := addressMap.Get([]byte("city"))
	if !ok || string(scalarBytes(t, city)) != "NYC" {
		t.Errorf("city = %v, want NYC", city)
	}
}

func TestParseBlockSequence(t *testing.T) {
	node := mustParse(t, "- apple\n- banana\n- cherry\n")

	seq, ok := node.(*document.SequenceNode)
	if !ok {
		t.Fatalf("expected *document.SequenceNode, got %T", node)
	}
	if len(seq.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(seq.Items))
	}
	want := []string{"apple", "banana", "cherry"}
	for i, w := range want {
		if got := string(scalarBytes(t, seq.Items[i])); got != w {
			t.Errorf("item %d = %q, want %q", i, got, w)
		}
	}
}

func TestParseSequenceOfMappings(t *testing.T) {
	input := "- name: Alice\n  age: 30\n- name: Bob\n  age: 25\n"
	node := mustParse(t, input)

	seq, ok := node.(*document.SequenceNode)
	if !ok {
		t.Fatalf("expected *document.SequenceNode, got %T", node)
	}
	if len(seq.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(seq.Items))
	}

	first, ok := seq.Items[0].(*document.MappingNode)
	if !ok {
		t.Fatalf("expected item 0 to be a mapping, got %T", seq.Items[0])
	}
	name, ok := first.Get([]byte("name"))
	if !ok || string(scalarBytes(t, name)) != "Alice" {
		t.Errorf("item 0 name = %v, want Alice", name)
	}
}

func TestParseMappingWithSequenceValue(t *testing.T) {
	input := "fruits:\n  - apple\n  - banana\n"
	node := mustParse(t, input)

	root := node.(*document.MappingNode)
	fruits, ok := root.Get([]byte("fruits"))
	if !ok {
		t.Fatal("missing key \"fruits\"")
	}
	seq, ok := fruits.(*document.SequenceNode)
	if !ok {
		t.Fatalf("expected fruits to be a sequence, got %T", fruits)
	}
	if len(seq.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(seq.Items))
	}
}

func TestParseFlowMapping(t *testing.T) {
	node := mustParse(t, `{name: Alice, age: 30}`)

	m, ok := node.(*document.MappingNode)
	if !ok {
		t.Fatalf("expected *document.MappingNode, got %T", node)
	}
	if len(m.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(m.Entries))
	}
}

func TestParseFlowSequence(t *testing.T) {
	node := mustParse(t, `[1, 2, 3]`)

	seq, ok := node.(*document.SequenceNode)
	if !ok {
		t.Fatalf("expected *document.SequenceNode, got %T", node)
	}
	if len(seq.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(seq.Items))
	}
}

func TestParseAnchorAndAlias(t *testing.T) {
	input := "defaults: &defaults\n  timeout: 30\nservice:\n  alias_ref: *defaults\n"
	node := mustParse(t, input)

	root := node.(*document.MappingNode)
	service, ok := root.Get([]byte("service"))
	if !ok {
		t.Fatal("missing key \"service\"")
	}
	serviceMap := service.(*document.MappingNode)
	aliasRef, ok := serviceMap.Get([]byte("alias_ref"))
	if !ok {
		t.Fatal("missing key \"alias_ref\"")
	}

	alias, ok := aliasRef.(*document.AliasNode)
	if !ok {
		t.Fatalf("expected *document.AliasNode, got %T", aliasRef)
	}
	resolved := document.Resolve(alias)
	resolvedMap, ok := resolved.(*document.MappingNode)
	if !ok {
		t.Fatalf("expected resolved alias to be a mapping, got %T", resolved)
	}
	timeout, ok := resolvedMap.Get([]byte("timeout"))
	if !ok || string(scalarBytes(t, timeout)) != "30" {
		t.Errorf("timeout = %v, want 30", timeout)
	}
}

func TestParseDuplicateKeyIsError(t *testing.T) {
	_, err := NewParser("name: a\nname: b\n").Parse()
	if err == nil {
		t.Fatal("expected an error for a duplicate key, got nil")
	}
}

func TestParseEmptyDocument(t *testing.T) {
	node, err := NewParser("").Parse()
	assertNoError(t, err)
	m, ok := node.(*document.MappingNode)
	if !ok {
		t.Fatalf("expected *document.MappingNode, got %T", node)
	}
	if len(m.Entries) != 0 {
		t.Errorf("expected an empty mapping, got %d entries", len(m.Entries))
	}
}

func TestParseEscapedDoubleQuotedString(t *testing.T) {
	node := mustParse(t, `"line1\nline2\ttabbed"`)
	got := string(scalarBytes(t, node))
	want := "line1\nline2\ttabbed"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
