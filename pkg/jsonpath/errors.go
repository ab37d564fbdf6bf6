package jsonpath

import "fmt"

// ErrorCode enumerates the parser/scanner error codes from spec.md §4.1–4.2.
type ErrorCode int

const (
	PrematureEndOfInput ErrorCode = iota
	UnexpectedValue
	ExpectedNameChar
	ExpectedNodeTypeTest
	ExpectedInteger
	InvalidNumber
	EmptyPredicate
	UnbalancedPredicateDelimiter
	ExtraJunkAfterPredicate
	UnsupportedPredicateType
	SliceStepIsZero
	NotAJsonPath
	NullExpression
	ZeroLengthExpression
	OutOfMemory
	UnsupportedEscapeSequence
	UnsupportedUnicodeSequence
)

func (c ErrorCode) String() string {
	switch c {
	case PrematureEndOfInput:
		return "PrematureEndOfInput"
	case UnexpectedValue:
		return "UnexpectedValue"
	case ExpectedNameChar:
		return "ExpectedNameChar"
	case ExpectedNodeTypeTest:
		return "ExpectedNodeTypeTest"
	case ExpectedInteger:
		return "ExpectedInteger"
	case InvalidNumber:
		return "InvalidNumber"
	case EmptyPredicate:
		return "EmptyPredicate"
	case UnbalancedPredicateDelimiter:
		return "UnbalancedPredicateDelimiter"
	case ExtraJunkAfterPredicate:
		return "ExtraJunkAfterPredicate"
	case UnsupportedPredicateType:
		return "UnsupportedPredicateType"
	case SliceStepIsZero:
		return "SliceStepIsZero"
	case NotAJsonPath:
		return "NotAJsonPath"
	case NullExpression:
		return "NullExpression"
	case ZeroLengthExpression:
		return "ZeroLengthExpression"
	case OutOfMemory:
		return "OutOfMemory"
	case UnsupportedEscapeSequence:
		return "UnsupportedEscapeSequence"
	case UnsupportedUnicodeSequence:
		return "UnsupportedUnicodeSequence"
	default:
		return "UnknownError"
	}
}

// ParseError is one diagnostic from parsing an expression. Position
// columns are 1-based, per spec.md §4.2.
type ParseError struct {
	Position Position
	Code     ErrorCode
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("at position %d: %s", e.Position.Column, e.Message)
}

func newError(pos Position, code ErrorCode, format string, args ...any) *ParseError {
	return &ParseError{Position: pos, Code: code, Message: fmt.Sprintf(format, args...)}
}
