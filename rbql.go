// Package rbql is the public entry point for the RBQL query engine: compile
// a query into a Plan, then run it over an input stream with Query. The
// pipeline itself lives in internal/lexer, internal/parser, internal/record
// and internal/engine; this package wires them together and exposes the
// pluggable host-expression seam (Evaluator) that internal/hostexpr
// implements by default.
package rbql

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/rbql-go/rbql/internal/engine"
	"github.com/rbql-go/rbql/internal/hostapi"
	"github.com/rbql-go/rbql/internal/hostexpr"
	"github.com/rbql-go/rbql/internal/parser"
)

// Row, Value, CompiledExpr and Evaluator are re-exported from internal/hostapi
// so callers embedding their own evaluator never need to import an internal
// package.
type (
	Row          = hostapi.Row
	Value        = hostapi.Value
	CompiledExpr = hostapi.CompiledExpr
	Evaluator    = hostapi.Evaluator
)

// Plan is the compiled, post-rewrite representation of a query.
type Plan = parser.Plan

// TableBOpener opens the join file named by a JOIN clause. The zero value of
// Options resolves it to os.Open.
type TableBOpener = engine.TableBOpener

// Compile lexes, splits, rewrites and validates RBQL source into a Plan
// without running it.
func Compile(query string) (*Plan, error) {
	return parser.Compile(query)
}

// DefaultEvaluator returns the built-in hand-rolled expression interpreter.
func DefaultEvaluator() Evaluator {
	return hostexpr.New()
}

// Options configures a Query run. Every field has a usable zero value: a nil
// Evaluator falls back to DefaultEvaluator, a nil Logger is silent, a zero
// Delimiter defaults to tab, and an empty OutputSeparator defaults to "\n".
type Options struct {
	Delimiter       byte
	OutputSeparator string
	Evaluator       Evaluator
	Logger          logrus.FieldLogger
	OpenTableB      TableBOpener
}

func (o Options) withDefaults() Options {
	if o.Delimiter == 0 {
		o.Delimiter = '\t'
	}
	if o.OutputSeparator == "" {
		o.OutputSeparator = "\n"
	}
	if o.Evaluator == nil {
		o.Evaluator = DefaultEvaluator()
	}
	if o.OpenTableB == nil {
		o.OpenTableB = openFile
	}
	return o
}

func openFile(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Query compiles query, then executes it against a, writing the delimited
// result to out.
func Query(ctx context.Context, query string, a io.Reader, out io.Writer, opts Options) error {
	plan, err := Compile(query)
	if err != nil {
		return err
	}
	return Execute(ctx, plan, a, out, opts)
}

// Execute runs an already-compiled Plan, skipping recompilation for callers
// that compile once and run many times.
func Execute(ctx context.Context, plan *Plan, a io.Reader, out io.Writer, opts Options) error {
	opts = opts.withDefaults()
	ex := engine.NewExecutor(plan, opts.Evaluator, opts.Logger, opts.OpenTableB)
	return ex.Execute(ctx, a, out, opts.Delimiter, opts.OutputSeparator)
}
