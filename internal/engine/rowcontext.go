// Package engine drives per-record execution of a compiled parser.Plan: the
// join loader, writer strategies, and the executor's streaming pipeline.
package engine

import (
	"github.com/rbql-go/rbql/internal/hostapi"
	"github.com/rbql-go/rbql/internal/rbqlerr"
)

// rowContext is the per-record environment handed to the host evaluator. It
// implements hostapi.Row. bfields is nil until a join is configured and a
// lookup has populated it for the current A record.
type rowContext struct {
	nr       int
	fields   []string
	bfields  []string
	starLine string
}

func (r *rowContext) NR() int { return r.nr }
func (r *rowContext) NF() int { return len(r.fields) }

func (r *rowContext) Field(i int) (string, error) {
	if i < 0 || i >= len(r.fields) {
		return "", rbqlerr.BadFieldError{Index: i, Side: "a"}
	}
	return r.fields[i], nil
}

func (r *rowContext) BField(i int) (string, error) {
	if i < 0 || i >= len(r.bfields) {
		return "", rbqlerr.BadFieldError{Index: i, Side: "b"}
	}
	return r.bfields[i], nil
}

func (r *rowContext) StarLine() string { return r.starLine }

var _ hostapi.Row = (*rowContext)(nil)
