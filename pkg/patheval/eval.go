// Package patheval walks a document.Set with a jsonpath.JsonPath,
// producing an ordered Nodelist. Evaluation is synchronous,
// single-threaded, and read-only with respect to the document set
// (spec.md §5): each step discards its predecessor's working list and
// builds a fresh one, never mutating a document.Node.
package patheval

import (
	"fmt"

	"github.com/shapestone/shape-path/pkg/document"
	"github.com/shapestone/shape-path/pkg/jsonpath"
)

// ErrorCode enumerates the evaluator's fatal error codes from
// spec.md §7.
type ErrorCode int

const (
	ModelIsNull ErrorCode = iota
	PathIsNull
	NoDocumentInModel
	NoRootInDocument
	PathIsEmpty
	UnexpectedDocumentNode
	UnsupportedPath
	OutOfMemory
)

func (c ErrorCode) String() string {
	switch c {
	case ModelIsNull:
		return "ModelIsNull"
	case PathIsNull:
		return "PathIsNull"
	case NoDocumentInModel:
		return "NoDocumentInModel"
	case NoRootInDocument:
		return "NoRootInDocument"
	case PathIsEmpty:
		return "PathIsEmpty"
	case UnexpectedDocumentNode:
		return "UnexpectedDocumentNode"
	case UnsupportedPath:
		return "UnsupportedPath"
	case OutOfMemory:
		return "OutOfMemory"
	default:
		return "UnknownError"
	}
}

// EvalError is the evaluator's single fatal error shape: the whole
// evaluation aborts on the first one, carrying the index of the step
// that failed.
type EvalError struct {
	Code ErrorCode
	Step int
	Msg  string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluator aborted at step %d: %s", e.Step, e.Msg)
}

func fail(step int, code ErrorCode, format string, args ...any) *EvalError {
	return &EvalError{Code: code, Step: step, Msg: fmt.Sprintf(format, args...)}
}

// Nodelist is the ordered, possibly-duplicate result of evaluation.
// It borrows nodes from the document.Set and must not outlive it.
type Nodelist []document.Node

// Evaluate applies path to documents, in document order, per the
// state machine in spec.md §4.3: PreTest → PreTestApplied → Predicate?
// → NextStep, aborting with an EvalError on the first failure.
func Evaluate(documents *document.Set, path *jsonpath.JsonPath) (Nodelist, error) {
	if documents == nil {
		return nil, fail(-1, ModelIsNull, "document set is nil")
	}
	if path == nil {
		return nil, fail(-1, PathIsNull, "path is nil")
	}
	if len(documents.Documents) == 0 {
		return nil, fail(-1, NoDocumentInModel, "document set has no documents")
	}
	if documents.Documents[0].Root == nil {
		return nil, fail(-1, NoRootInDocument, "first document has no root")
	}
	if len(path.Steps) == 0 {
		return nil, fail(-1, PathIsEmpty, "path has no steps")
	}

	working := Nodelist{documents.Documents[0]}

	for i, step := range path.Steps {
		result, err := applyStep(working, step, i)
		if err != nil {
			return nil, err
		}
		working = result
	}

	return working, nil
}

func applyStep(working Nodelist, step jsonpath.Step, stepIndex int) (Nodelist, error) {
	if step.Axis == jsonpath.AxisRoot {
		result := make(Nodelist, 0, len(working))
		for _, n := range working {
			doc, ok := n.(*document.DocumentNode)
			if !ok {
				return nil, fail(stepIndex, UnexpectedDocumentNode, "root step applied to a non-document node")
			}
			result = append(result, doc.Root)
		}
		return result, nil
	}

	afterTest, err := applyNodeTest(working, step, stepIndex)
	if err != nil {
		return nil, err
	}

	if step.Predicate == nil {
		return afterTest, nil
	}
	return applyPredicate(afterTest, step.Predicate, stepIndex)
}

func applyNodeTest(working Nodelist, step jsonpath.Step, stepIndex int) (Nodelist, error) {
	result := make(Nodelist, 0, len(working))

	if step.Axis == jsonpath.AxisSingle {
		for _, n := range working {
			if _, ok := n.(*document.DocumentNode); ok {
				return nil, fail(stepIndex, UnexpectedDocumentNode, "node test applied to a document node")
			}
			result = append(result, matchSingle(n, step.Test)...)
		}
		return result, nil
	}

	// AxisRecursive: pre-order depth-first walk of each working node,
	// applying the step's test as if it were a single step at every
	// node visited, then descending into children.
	visited := map[document.Node]bool{}
	for _, n := range working {
		if _, ok := n.(*document.DocumentNode); ok {
			return nil, fail(stepIndex, UnexpectedDocumentNode, "node test applied to a document node")
		}
		result = append(result, recurse(n, step.Test, visited)...)
	}
	return result, nil
}

// matchSingle applies a single-step node test to one node, after
// resolving it through any alias.
func matchSingle(n document.Node, test jsonpath.NodeTest) Nodelist {
	n = document.Resolve(n)

	switch test.Kind {
	case jsonpath.TestWildcard:
		return wildcardChildren(n)
	case jsonpath.TestType:
		if test.Type.Matches(n) {
			return Nodelist{n}
		}
		return nil
	case jsonpath.TestName:
		m, ok := n.(*document.MappingNode)
		if !ok {
			return nil
		}
		v, ok := m.Get(test.Name)
		if !ok {
			return nil
		}
		return Nodelist{document.Resolve(v)}
	}
	return nil
}

// wildcardChildren emits: mapping → values in order; sequence → items
// in order; scalar → itself.
func wildcardChildren(n document.Node) Nodelist {
	switch v := n.(type) {
	case *document.MappingNode:
		out := make(Nodelist, 0, len(v.Entries))
		for _, e := range v.Entries {
			out = append(out, document.Resolve(e.Value))
		}
		return out
	case *document.SequenceNode:
		out := make(Nodelist, 0, len(v.Items))
		for _, it := range v.Items {
			out = append(out, document.Resolve(it))
		}
		return out
	case *document.ScalarNode:
		return Nodelist{v}
	default:
		return nil
	}
}

// recurse visits n, applying test as a single-step test, then
// descends into children regardless of whether n matched. A
// Recursive+Wildcard test matches every node visited, not just
// leaves. Dedup keys on the resolved node, not n itself: a subtree
// reached once directly and again through an alias shares one
// resolved node, so keying only on alias identity would let it
// through twice. This both guarantees termination on a cyclic alias
// graph and gives each shared target at most one match per recursive
// descent (spec.md §8 item 4, §9).
func recurse(n document.Node, test jsonpath.NodeTest, visited map[document.Node]bool) Nodelist {
	resolved := document.Resolve(n)
	if visited[resolved] {
		return nil
	}
	visited[resolved] = true

	var out Nodelist
	if test.Kind == jsonpath.TestWildcard {
		out = append(out, resolved)
	} else {
		out = append(out, matchSingle(resolved, test)...)
	}

	switch v := resolved.(type) {
	case *document.SequenceNode:
		for _, it := range v.Items {
			out = append(out, recurse(it, test, visited)...)
		}
	case *document.MappingNode:
		for _, e := range v.Entries {
			out = append(out, recurse(e.Value, test, visited)...)
		}
	}
	return out
}

func applyPredicate(working Nodelist, pred *jsonpath.Predicate, stepIndex int) (Nodelist, error) {
	result := make(Nodelist, 0, len(working))

	for _, n := range working {
		switch pred.Kind {
		case jsonpath.PredWildcard:
			result = append(result, applyWildcardPredicate(n)...)
		case jsonpath.PredSubscript:
			if v, ok := applySubscript(n, pred.Index); ok {
				result = append(result, v)
			}
		case jsonpath.PredSlice:
			result = append(result, applySlice(n, pred)...)
		case jsonpath.PredJoin:
			return nil, fail(stepIndex, UnsupportedPath, "join predicate is not supported at evaluation time")
		}
	}
	return result, nil
}

func applyWildcardPredicate(n document.Node) Nodelist {
	n = document.Resolve(n)
	switch v := n.(type) {
	case *document.SequenceNode:
		out := make(Nodelist, 0, len(v.Items))
		for _, it := range v.Items {
			out = append(out, document.Resolve(it))
		}
		return out
	case *document.MappingNode, *document.ScalarNode:
		return Nodelist{n}
	default:
		return nil
	}
}

// applySubscript indexes a sequence. Negative indices are never
// normalized (bug-compatible with the source this was distilled from,
// spec.md §9): they are always dropped, regardless of magnitude.
func applySubscript(n document.Node, index int64) (document.Node, bool) {
	n = document.Resolve(n)
	seq, ok := n.(*document.SequenceNode)
	if !ok {
		return nil, false
	}
	if index < 0 {
		return nil, false
	}
	if index >= int64(len(seq.Items)) {
		return nil, false
	}
	return document.Resolve(seq.Items[index]), true
}

func applySlice(n document.Node, pred *jsonpath.Predicate) Nodelist {
	n = document.Resolve(n)
	seq, ok := n.(*document.SequenceNode)
	if !ok {
		return nil
	}
	count := int64(len(seq.Items))

	step := int64(1)
	if pred.Step != nil {
		step = *pred.Step
	}

	normalize := func(v *int64, def, limit int64) int64 {
		if v == nil {
			return def
		}
		r := *v
		if r < 0 {
			r += limit
		}
		if r < 0 {
			r = 0
		}
		if r > limit {
			r = limit
		}
		return r
	}

	var out Nodelist
	if step > 0 {
		from := normalize(pred.From, 0, count)
		to := normalize(pred.To, count, count)
		for i := from; i < to; i += step {
			out = append(out, document.Resolve(seq.Items[i]))
		}
		return out
	}

	// step < 0: endpoints swap, per spec.md §4.3.
	from := normalize(pred.To, count, count) - 1
	to := normalize(pred.From, 0, count)
	for i := from; i >= to; i += step {
		if i < 0 || i >= count {
			break
		}
		out = append(out, document.Resolve(seq.Items[i]))
	}
	return out
}
