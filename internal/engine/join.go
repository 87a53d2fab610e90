package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/rbql-go/rbql/internal/parser"
	"github.com/rbql-go/rbql/internal/rbqlerr"
	"github.com/rbql-go/rbql/internal/record"
)

// joinIndex is the loaded, in-memory B table: key -> matched B-row fields,
// plus the widest B row seen (for LEFT JOIN's NULL-fill width).
type joinIndex struct {
	rows         map[string][]string
	fieldsMaxLen int
}

// loadJoinIndex reads every record out of r, keying each by its BIndex'th
// field. A key collision or a row too short to expose BIndex is a runtime
// error; both are load-time failures with no associated A record (NR 0).
func loadJoinIndex(r io.Reader, plan *parser.JoinPlan, delim byte) (*joinIndex, error) {
	idx := &joinIndex{rows: make(map[string][]string)}

	it := record.New(r, '\n', delim)
	il := 0
	for {
		rec, ok, err := it.Next()
		if err != nil {
			return nil, rbqlerr.NewRuntimeError("Error reading table B: %s", err)
		}
		if !ok {
			break
		}
		il++

		if len(rec.Fields) > idx.fieldsMaxLen {
			idx.fieldsMaxLen = len(rec.Fields)
		}
		if plan.BIndex < 0 || plan.BIndex >= len(rec.Fields) {
			return nil, rbqlerr.NewRuntimeError(`No %q column at line: %d in "B" table`, bColumnName(plan.BIndex), il)
		}

		key := rec.Fields[plan.BIndex]
		if _, exists := idx.rows[key]; exists {
			return nil, rbqlerr.NewRuntimeError(`Join column must be unique in right-hand-side "B" table`)
		}
		idx.rows[key] = rec.Fields
	}
	return idx, nil
}

func bColumnName(index int) string {
	return fmt.Sprintf("b%d", index+1)
}

func loadJoin(plan *parser.JoinPlan, delim byte, open TableBOpener) (*joinIndex, error) {
	f, err := open(plan.TablePath)
	if err != nil {
		return nil, rbqlerr.NewRuntimeError("Table B: %s is not accessible", plan.TablePath)
	}
	defer f.Close()
	return loadJoinIndex(f, plan, delim)
}

// lookupOutcome is the tagged result of a joiner strategy lookup, mirroring
// the Skip/Match/Fail shape of the join design: exactly one of matched,
// skip, or err is meaningful per call.
type lookupOutcome struct {
	bfields []string
	skip    bool
}

// lookup applies the configured join mode's strategy against idx for key.
func lookup(mode parser.JoinMode, idx *joinIndex, key string) (lookupOutcome, error) {
	bfields, found := idx.rows[key]
	switch mode {
	case parser.JoinInner:
		if !found {
			return lookupOutcome{skip: true}, nil
		}
		return lookupOutcome{bfields: bfields}, nil
	case parser.JoinLeft:
		if !found {
			return lookupOutcome{bfields: nullFilled(idx.fieldsMaxLen)}, nil
		}
		return lookupOutcome{bfields: bfields}, nil
	case parser.JoinStrictLeft:
		if !found {
			return lookupOutcome{}, rbqlerr.NewRuntimeError(
				`In "STRICT LEFT JOIN" mode all A table keys must be present in table B. Key %q was not found`, key)
		}
		return lookupOutcome{bfields: bfields}, nil
	default:
		return lookupOutcome{}, fmt.Errorf("unknown join mode %v", mode)
	}
}

const nullRendering = "None"

func nullFilled(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = nullRendering
	}
	return out
}

func joinStarLine(aRaw string, bfields []string, delim byte) string {
	sep := string(delim)
	return aRaw + sep + strings.Join(bfields, sep)
}
