// Package rbqlerr defines the two error kinds the engine raises: parsing
// errors (query compilation) and runtime errors (query execution). They
// live in their own package so both internal/parser and internal/engine can
// produce them without importing the root package (which imports both).
package rbqlerr

import "fmt"

// ParsingError is raised synchronously during query compilation: multiline
// string literal, missing SELECT, duplicate clause, malformed join syntax.
type ParsingError struct {
	Msg string
}

func (e ParsingError) Error() string {
	return e.Msg
}

func NewParsingError(format string, args ...interface{}) ParsingError {
	return ParsingError{Msg: fmt.Sprintf(format, args...)}
}

// RuntimeError is raised during query execution: inaccessible table B,
// duplicate B key, unmatched STRICT LEFT JOIN key, a bad field access, or
// any wrapped evaluator failure.
type RuntimeError struct {
	NR  int // 0 when not tied to a specific A record, e.g. join-load errors
	Msg string
}

func (e RuntimeError) Error() string {
	return e.Msg
}

func NewRuntimeError(format string, args ...interface{}) RuntimeError {
	return RuntimeError{Msg: fmt.Sprintf(format, args...)}
}

func NewRowRuntimeError(nr int, format string, args ...interface{}) RuntimeError {
	return RuntimeError{NR: nr, Msg: fmt.Sprintf(format, args...)}
}

// BadFieldError is the typed "out of range" condition raised by field
// access helpers. It never escapes the executor: it is always converted
// into a RuntimeError carrying the offending NR before being returned to
// the caller.
type BadFieldError struct {
	// Index is the 0-based field index that was missing.
	Index int
	// Side is "a" or "b", identifying which record the access targeted.
	Side string
}

func (e BadFieldError) Error() string {
	return fmt.Sprintf("no %s%d column", e.Side, e.Index+1)
}
