package docload

import (
	"strings"
	"testing"

	"github.com/shapestone/shape-path/pkg/document"
)

func TestParse(t *testing.T) {
	set, err := Parse("name: Alice\nage: 30\n")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(set.Documents) != 1 {
		t.Fatalf("expected 1 document, got %d", len(set.Documents))
	}

	root, ok := set.Documents[0].Root.(*document.MappingNode)
	if !ok {
		t.Fatalf("root is %T, want *document.MappingNode", set.Documents[0].Root)
	}
	name, ok := root.Get([]byte("name"))
	if !ok {
		t.Fatal("missing key \"name\"")
	}
	if got := string(name.(*document.ScalarNode).Bytes); got != "Alice" {
		t.Errorf("name = %q, want Alice", got)
	}
}

func TestParseReader(t *testing.T) {
	reader := strings.NewReader("name: Bob\ncity: NYC\n")
	set, err := ParseReader(reader)
	if err != nil {
		t.Fatalf("ParseReader() error: %v", err)
	}

	root := set.Documents[0].Root.(*document.MappingNode)
	city, ok := root.Get([]byte("city"))
	if !ok || string(city.(*document.ScalarNode).Bytes) != "NYC" {
		t.Errorf("city = %v, want NYC", city)
	}
}

func TestParseAll(t *testing.T) {
	input := "---\nname: doc1\n---\nname: doc2\n...\n"
	set, err := ParseAll(input)
	if err != nil {
		t.Fatalf("ParseAll() error: %v", err)
	}
	if len(set.Documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(set.Documents))
	}

	first := set.Documents[0].Root.(*document.MappingNode)
	name, ok := first.Get([]byte("name"))
	if !ok || string(name.(*document.ScalarNode).Bytes) != "doc1" {
		t.Errorf("doc 0 name = %v, want doc1", name)
	}

	second := set.Documents[1].Root.(*document.MappingNode)
	name2, ok := second.Get([]byte("name"))
	if !ok || string(name2.(*document.ScalarNode).Bytes) != "doc2" {
		t.Errorf("doc 1 name = %v, want doc2", name2)
	}
}

func TestValidateRejectsMalformedInput(t *testing.T) {
	if err := Validate("name: a\nname: b\n"); err == nil {
		t.Fatal("expected an error for a duplicate key, got nil")
	}
}

func TestValidateAcceptsWellFormedInput(t *testing.T) {
	if err := Validate("a: 1\nb: 2\n"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
