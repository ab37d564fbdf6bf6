package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/shapestone/shape-path/pkg/document"
	"github.com/shapestone/shape-path/pkg/patheval"
)

// render writes a Nodelist as a JSON or YAML array of plain Go
// values. This is a minimal renderer sufficient to exercise the
// evaluator end-to-end; a full shell-quoting bash/zsh emitter is out
// of scope (see ErrOutputUnsupported).
func render(w io.Writer, format string, result patheval.Nodelist) error {
	values := make([]any, len(result))
	for i, n := range result {
		values[i] = toPlainValue(n)
	}

	switch format {
	case "yaml":
		return renderYAML(w, values)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(values)
	}
}

// toPlainValue converts a document.Node into the nearest plain Go
// value (string, float64, bool, nil, []any, map[string]any) for
// marshaling. Integer and Decimal scalars become float64, so digits
// beyond float64 precision are rounded; a number that apd cannot parse
// or that is out of float64 range is rendered as its source text.
func toPlainValue(n document.Node) any {
	n = document.Resolve(n)
	switch v := n.(type) {
	case *document.ScalarNode:
		return scalarValue(v)
	case *document.SequenceNode:
		out := make([]any, len(v.Items))
		for i, item := range v.Items {
			out[i] = toPlainValue(item)
		}
		return out
	case *document.MappingNode:
		out := make(map[string]any, len(v.Entries))
		for _, e := range v.Entries {
			out[string(e.Key.Bytes)] = toPlainValue(e.Value)
		}
		return out
	case *document.DocumentNode:
		return toPlainValue(v.Root)
	default:
		return nil
	}
}

func scalarValue(s *document.ScalarNode) any {
	switch s.Kind {
	case document.Null:
		return nil
	case document.Boolean:
		return string(s.Bytes) == "true"
	case document.Integer, document.Decimal:
		d, err := s.Decimal()
		if err != nil {
			return string(s.Bytes)
		}
		f, err := strconv.ParseFloat(d.String(), 64)
		if err != nil {
			return string(s.Bytes)
		}
		return f
	default:
		return string(s.Bytes)
	}
}

// renderYAML writes values as a line-oriented flow-style YAML
// sequence, adequate for the small nodelists this CLI deals with
// without pulling in a full YAML encoder.
func renderYAML(w io.Writer, values []any) error {
	for _, v := range values {
		line, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "- %s\n", line); err != nil {
			return err
		}
	}
	return nil
}
