package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rbql-go/rbql/internal/debug"
	"github.com/rbql-go/rbql/internal/hostapi"
	"github.com/rbql-go/rbql/internal/parser"
	"github.com/rbql-go/rbql/internal/rbqlerr"
	"github.com/rbql-go/rbql/internal/record"
)

// TableBOpener opens table B for a join. Production callers pass a function
// backed by os.Open; tests can substitute an in-memory reader.
type TableBOpener func(path string) (io.ReadCloser, error)

// Executor drives one query execution: join loading, per-record evaluation,
// and writing. It is not safe for concurrent reuse across executions.
type Executor struct {
	Plan      *parser.Plan
	Evaluator hostapi.Evaluator
	Logger    logrus.FieldLogger
	OpenB     TableBOpener
}

// NewExecutor wires a compiled plan to an evaluator and logger. A nil logger
// defaults to a silent logrus instance (so callers need not special-case
// "no logging configured").
func NewExecutor(plan *parser.Plan, evaluator hostapi.Evaluator, logger logrus.FieldLogger, openB TableBOpener) *Executor {
	if logger == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		logger = silent
	}
	return &Executor{Plan: plan, Evaluator: evaluator, Logger: logger, OpenB: openB}
}

type compiledPlan struct {
	selectExprs []hostapi.CompiledExpr
	whereExpr   hostapi.CompiledExpr
	orderExpr   hostapi.CompiledExpr
}

func (e *Executor) compile() (*compiledPlan, error) {
	cp := &compiledPlan{}

	for _, src := range e.Plan.SelectExprs {
		ce, err := e.Evaluator.Compile(src)
		if err != nil {
			return nil, rbqlerr.NewParsingError("bad SELECT expression %q: %s", src, err)
		}
		cp.selectExprs = append(cp.selectExprs, ce)
	}

	if e.Plan.WhereExpr != "" {
		ce, err := e.Evaluator.Compile(e.Plan.WhereExpr)
		if err != nil {
			return nil, rbqlerr.NewParsingError("bad WHERE expression %q: %s", e.Plan.WhereExpr, err)
		}
		cp.whereExpr = ce
	}

	if e.Plan.OrderBy != nil {
		ce, err := e.Evaluator.Compile(e.Plan.OrderBy.KeyExpr)
		if err != nil {
			return nil, rbqlerr.NewParsingError("bad ORDER BY expression %q: %s", e.Plan.OrderBy.KeyExpr, err)
		}
		cp.orderExpr = ce
	}

	return cp, nil
}

type bufferedRow struct {
	sortKey hostapi.Value
	line    string
	seq     int
}

// Execute streams A (read from a, delimited by delim), applies the
// compiled plan's join/WHERE/SELECT/ORDER BY/DISTINCT pipeline, and writes
// the result to out. The run is stamped with a UUID attached to every log
// line so concurrent invocations are distinguishable in shared output.
func (e *Executor) Execute(ctx context.Context, a io.Reader, out io.Writer, delim byte, outSep string) error {
	runID, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("generating run id: %w", err)
	}
	log := e.Logger.WithField("run_id", runID.String())
	log.WithField("select_count", len(e.Plan.SelectExprs)).Debug("executing compiled plan")

	cp, err := e.compile()
	if err != nil {
		return err
	}

	var idx *joinIndex
	if e.Plan.Join != nil {
		if e.OpenB == nil {
			return rbqlerr.NewRuntimeError("Table B: %s is not accessible", e.Plan.Join.TablePath)
		}
		idx, err = loadJoin(e.Plan.Join, delim, e.OpenB)
		if err != nil {
			return err
		}
		log.WithField("b_rows", len(idx.rows)).Debug("loaded join table B")
	}

	w := newWriter(out, outSep, e.Plan.Distinct)

	var buffered []bufferedRow
	skipped := 0

	it := record.New(a, '\n', delim)
	nr := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rec, ok, err := it.Next()
		if err != nil {
			return fmt.Errorf("reading table A: %w", err)
		}
		if !ok {
			break
		}
		nr++
		debug.Printf("processing A record %d: %q\n", nr, rec.Raw)

		line, sortKey, skip, err := e.processRecord(nr, rec, idx, cp, delim)
		if err != nil {
			return err
		}
		if skip {
			skipped++
			continue
		}

		if cp.orderExpr != nil {
			buffered = append(buffered, bufferedRow{sortKey: sortKey, line: line, seq: len(buffered)})
			continue
		}
		if err := w.Write(line); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	log.WithField("skipped", skipped).Debug("finished streaming table A")

	if cp.orderExpr != nil {
		sortRows(buffered, e.Plan.OrderBy.Descending)
		for _, row := range buffered {
			if err := w.Write(row.line); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
	}

	return nil
}

// processRecord runs the join lookup, WHERE filter, and SELECT projection
// for a single A record. skip is true when the record is dropped by an
// INNER JOIN miss or the WHERE predicate.
func (e *Executor) processRecord(nr int, rec record.Record, idx *joinIndex, cp *compiledPlan, delim byte) (line string, sortKey hostapi.Value, skip bool, err error) {
	row := &rowContext{nr: nr, fields: rec.Fields, starLine: rec.Raw}

	if e.Plan.Join != nil {
		key, err := fieldAt(rec.Fields, e.Plan.Join.AIndex)
		if err != nil {
			return "", hostapi.Value{}, false, rowError(nr, err)
		}
		outcome, err := lookup(e.Plan.Join.Mode, idx, key)
		if err != nil {
			return "", hostapi.Value{}, false, err
		}
		if outcome.skip {
			return "", hostapi.Value{}, true, nil
		}
		row.bfields = outcome.bfields
		row.starLine = joinStarLine(rec.Raw, outcome.bfields, delim)
	}

	if cp.whereExpr != nil {
		v, err := cp.whereExpr.Eval(row)
		if err != nil {
			return "", hostapi.Value{}, false, rowError(nr, err)
		}
		if !v.Truthy() {
			return "", hostapi.Value{}, true, nil
		}
	}

	outFields := make([]string, len(cp.selectExprs))
	for i, ce := range cp.selectExprs {
		v, err := ce.Eval(row)
		if err != nil {
			return "", hostapi.Value{}, false, rowError(nr, err)
		}
		outFields[i] = v.String()
	}
	line = strings.Join(outFields, string(delim))

	if cp.orderExpr != nil {
		sortKey, err = cp.orderExpr.Eval(row)
		if err != nil {
			return "", hostapi.Value{}, false, rowError(nr, err)
		}
	}

	return line, sortKey, false, nil
}

func fieldAt(fields []string, i int) (string, error) {
	if i < 0 || i >= len(fields) {
		return "", rbqlerr.BadFieldError{Index: i, Side: "a"}
	}
	return fields[i], nil
}

// rowError converts the typed bad-field condition into the user-facing
// "No aK column" message; any other evaluator failure is wrapped with its
// originating NR. The message always uses the "a" prefix regardless of
// which side's field access actually failed, matching the original
// rb_transform's per-record handler.
func rowError(nr int, err error) error {
	var bad rbqlerr.BadFieldError
	if ok := asBadField(err, &bad); ok {
		return rbqlerr.NewRowRuntimeError(nr, `No %q column at line: %d`, fmt.Sprintf("a%d", bad.Index+1), nr)
	}
	return rbqlerr.NewRowRuntimeError(nr, "Error at line: %d, Details: %s", nr, err)
}

func asBadField(err error, target *rbqlerr.BadFieldError) bool {
	return errors.As(err, target)
}

// compareValues orders two host values: numeric when both sides are
// numeric, lexicographic string comparison otherwise. This mirrors the
// default evaluator's own Compare so ORDER BY behaves consistently
// regardless of which hostapi.Evaluator implementation is plugged in.
func compareValues(x, y hostapi.Value) (int, error) {
	if x.Kind == hostapi.KindTuple || y.Kind == hostapi.KindTuple {
		n := len(x.Tuple)
		if len(y.Tuple) < n {
			n = len(y.Tuple)
		}
		for i := 0; i < n; i++ {
			c, err := compareValues(x.Tuple[i], y.Tuple[i])
			if err != nil {
				return 0, err
			}
			if c != 0 {
				return c, nil
			}
		}
		return len(x.Tuple) - len(y.Tuple), nil
	}
	if xf, xok := x.AsFloat(); xok {
		if yf, yok := y.AsFloat(); yok {
			switch {
			case xf < yf:
				return -1, nil
			case xf > yf:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	return strings.Compare(x.String(), y.String()), nil
}

func sortRows(rows []bufferedRow, descending bool) {
	less := func(i, j int) bool {
		c, err := compareValues(rows[i].sortKey, rows[j].sortKey)
		if err != nil {
			c = 0
		}
		if c == 0 {
			return rows[i].seq < rows[j].seq
		}
		if descending {
			return c > 0
		}
		return c < 0
	}
	sort.SliceStable(rows, less)
}
