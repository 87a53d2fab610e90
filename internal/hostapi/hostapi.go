// Package hostapi defines the contract between the executor and a
// pluggable host expression evaluator: Row is the per-record environment
// handed to compiled expressions, Value is the tagged result type, and
// Evaluator/CompiledExpr is the pluggable interface a caller can swap out
// for an embedded scripting engine or a JIT. internal/hostexpr is the
// default implementation.
package hostapi

import "fmt"

// Kind tags the variant of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	// KindTuple represents a composite ORDER BY key (`order by a2, int(a1)`):
	// ordering compares elements left to right, falling through to the next
	// element on a tie. Any expression whose source is a top-level
	// comma-separated list evaluates to it; SELECT expressions never do,
	// because the select list is split on those commas before compilation.
	KindTuple
)

// Value is the tagged result of evaluating a host expression.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Str   string
	Bool  bool
	Tuple []Value
}

func Null() Value              { return Value{Kind: KindNull} }
func Int(v int64) Value        { return Value{Kind: KindInt, Int: v} }
func Float(v float64) Value    { return Value{Kind: KindFloat, Float: v} }
func Str(v string) Value       { return Value{Kind: KindString, Str: v} }
func Bool(v bool) Value        { return Value{Kind: KindBool, Bool: v} }
func TupleOf(vs []Value) Value { return Value{Kind: KindTuple, Tuple: vs} }

// AsFloat widens Int/Float values to float64; used for numeric ops.
func (v Value) AsFloat() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

// Truthy implements the boolean-conversion rule used by WHERE predicates
// and AND/OR/NOT operators.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNull:
		return false
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int != 0
	case KindFloat:
		return v.Float != 0
	case KindString:
		return v.Str != ""
	default:
		return false
	}
}

// String renders a Value the way the executor projects it into an output
// field: NULL becomes the literal "None".
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "None"
	case KindBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindString:
		return v.Str
	default:
		return ""
	}
}

// Row is the per-record environment exposed to the host evaluator.
type Row interface {
	NR() int
	NF() int
	// Field returns A's field at 0-based index i, or an error satisfying
	// errors.As into a bad-field condition when i is out of range.
	Field(i int) (string, error)
	// BField returns B's matched field at 0-based index i (only valid
	// when a join is configured and matched/NULL-filled for this row).
	BField(i int) (string, error)
	StarLine() string
}

// CompiledExpr is a parsed, ready-to-evaluate host expression.
type CompiledExpr interface {
	Eval(row Row) (Value, error)
}

// Evaluator compiles host expression source into a CompiledExpr. It is the
// pluggable seam: an embedded scripting engine or a JIT can satisfy this
// interface in place of the default hand-rolled interpreter.
type Evaluator interface {
	Compile(exprSrc string) (CompiledExpr, error)
}
