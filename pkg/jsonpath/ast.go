package jsonpath

import "github.com/shapestone/shape-path/pkg/document"

// PathKind distinguishes an absolute path (rooted at $) from a
// relative one (rooted at @). Parse accepts both; the evaluator does
// not read the kind and starts every path at the document root.
type PathKind int

const (
	Absolute PathKind = iota
	Relative
)

// StepAxis is how a Step reaches its candidate nodes.
type StepAxis int

const (
	AxisRoot StepAxis = iota
	AxisSingle
	AxisRecursive
)

// NodeTestKind discriminates a Step's NodeTest.
type NodeTestKind int

const (
	TestWildcard NodeTestKind = iota
	TestType
	TestName
)

// NodeTest selects which children of a candidate node continue to
// match at this step.
type NodeTest struct {
	Kind NodeTestKind
	Type document.TypeTestKind // valid when Kind == TestType
	Name []byte                // valid when Kind == TestName
}

// PredicateKind discriminates a Step's bracketed Predicate.
type PredicateKind int

const (
	PredWildcard PredicateKind = iota
	PredSubscript
	PredSlice
	PredJoin
)

// Predicate is the optional bracketed refinement following a Step's
// node test.
type Predicate struct {
	Kind  PredicateKind
	Index int64 // valid when Kind == PredSubscript

	// valid when Kind == PredSlice; nil means "absent" per spec.md §4.3.
	From *int64
	To   *int64
	Step *int64

	// valid when Kind == PredJoin; recognized by the grammar but
	// unsupported at evaluation time (spec.md §7, §9).
	Left  *JsonPath
	Right *JsonPath
}

// Step is one path segment: an axis, a node test, and an optional
// predicate.
type Step struct {
	Axis      StepAxis
	Test      NodeTest
	Predicate *Predicate
}

// JsonPath is the parser's output: an ordered list of Steps plus the
// kind of path (Absolute for an expression starting with '$',
// Relative for one starting with '@').
type JsonPath struct {
	Kind  PathKind
	Steps []Step
}
