package rbql

import "github.com/rbql-go/rbql/internal/rbqlerr"

// ParsingError is raised synchronously during query compilation:
// multiline string literal, missing SELECT, duplicate clause, malformed
// join syntax.
type ParsingError = rbqlerr.ParsingError

// RuntimeError is raised during query execution: inaccessible table B,
// duplicate B key, unmatched STRICT LEFT JOIN key, a bad field access, or
// any wrapped evaluator failure. NR is 0 when the error is not tied to a
// specific A record (e.g. a join-load failure).
type RuntimeError = rbqlerr.RuntimeError

// BadFieldError is the typed "out of range" condition raised by field
// access helpers; the executor always converts it into a RuntimeError
// before it reaches a caller of Query/Execute.
type BadFieldError = rbqlerr.BadFieldError
