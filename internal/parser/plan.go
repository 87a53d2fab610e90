package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rbql-go/rbql/internal/lexer"
	"github.com/rbql-go/rbql/internal/rbqlerr"
	"github.com/rbql-go/rbql/internal/token"
)

// JoinMode selects the lookup strategy used against the preloaded B index.
type JoinMode int

const (
	JoinInner JoinMode = iota + 1
	JoinLeft
	JoinStrictLeft
)

// JoinPlan is the compiled join descriptor: a single equi-join column pair
// plus the B-table path and lookup mode. Composite keys are out of scope.
type JoinPlan struct {
	Mode      JoinMode
	TablePath string
	AIndex    int // 0-based index into A's fields
	BIndex    int // 0-based index into B's fields
}

// OrderByPlan is the compiled ORDER BY descriptor.
type OrderByPlan struct {
	KeyExpr    string
	Descending bool
}

// Plan is the compiled, post-rewrite representation of an RBQL query.
type Plan struct {
	SelectExprs []string
	Distinct    bool
	Join        *JoinPlan
	WhereExpr   string // empty means "true"
	OrderBy     *OrderByPlan
}

// Compile lexes, splits, rewrites and validates RBQL source into a Plan.
func Compile(query string) (*Plan, error) {
	tokens, err := lexer.Lex(query)
	if err != nil {
		return nil, err
	}

	clauses, err := Split(tokens)
	if err != nil {
		return nil, err
	}

	plan := &Plan{}

	if body, ok := clauses[SelectDistinct]; ok {
		plan.Distinct = true
		plan.SelectExprs = compileExprList(body)
	} else if body, ok := clauses[Select]; ok {
		plan.SelectExprs = compileExprList(body)
	}

	if err := compileJoin(clauses, plan); err != nil {
		return nil, err
	}

	if body, ok := clauses[Where]; ok {
		rewritten := RewriteColumns(body, false)
		plan.WhereExpr = strings.TrimSpace(token.Join(rewritten))
	}

	if body, ok := clauses[OrderBy]; ok {
		key, desc := splitOrderByDirection(body)
		rewritten := RewriteColumns(key, false)
		expr := strings.TrimSpace(token.Join(rewritten))
		if expr == "" {
			return nil, rbqlerr.NewParsingError("ORDER BY requires a key expression")
		}
		plan.OrderBy = &OrderByPlan{KeyExpr: expr, Descending: desc}
	}

	return plan, nil
}

func compileExprList(body []token.Token) []string {
	rewritten := RewriteColumns(body, true)
	var out []string
	for _, segment := range splitTopLevelCommas(rewritten) {
		expr := strings.TrimSpace(token.Join(segment))
		if expr != "" {
			out = append(out, expr)
		}
	}
	return out
}

// splitTopLevelCommas splits a token run on commas that are not nested
// inside parentheses and not inside a string literal (string literals are
// never split on because their content is an opaque single token).
func splitTopLevelCommas(tokens []token.Token) [][]token.Token {
	var segments [][]token.Token
	var cur []token.Token
	depth := 0

	for _, t := range tokens {
		if t.Kind == token.SymbolRaw {
			switch t.Text {
			case "(":
				depth++
			case ")":
				if depth > 0 {
					depth--
				}
			case ",":
				if depth == 0 {
					segments = append(segments, cur)
					cur = nil
					continue
				}
			}
		}
		cur = append(cur, t)
	}
	segments = append(segments, cur)
	return segments
}

var joinClauseKinds = []ClauseKind{InnerJoin, LeftJoin, StrictLeftJoin}

func compileJoin(clauses ClauseMap, plan *Plan) error {
	var present []ClauseKind
	for _, k := range joinClauseKinds {
		if _, ok := clauses[k]; ok {
			present = append(present, k)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if len(present) > 1 {
		return rbqlerr.NewParsingError("Only one JOIN clause is allowed")
	}

	kind := present[0]
	body := clauses[kind]
	expr, err := ParseJoin(body)
	if err != nil {
		return err
	}

	mode := map[ClauseKind]JoinMode{
		InnerJoin:      JoinInner,
		LeftJoin:       JoinLeft,
		StrictLeftJoin: JoinStrictLeft,
	}[kind]

	plan.Join = &JoinPlan{
		Mode:      mode,
		TablePath: expr.TablePath,
		AIndex:    columnIndex(aColumnRef, expr.AField),
		BIndex:    columnIndex(bColumnRef, expr.BField),
	}
	return nil
}

func columnIndex(re *regexp.Regexp, s string) int {
	n, _ := strconv.Atoi(re.FindStringSubmatch(s)[1])
	return n - 1
}

// splitOrderByDirection strips a trailing, case-insensitive ` DESC` or
// ` ASC` word from an ORDER BY clause body and reports the sort direction.
// ` ASC` is accepted and ignored (ascending is already the default).
func splitOrderByDirection(body []token.Token) ([]token.Token, bool) {
	end := len(body)
	for end > 0 && body[end-1].Kind == token.Whitespace {
		end--
	}
	if end == 0 {
		return body, false
	}
	last := body[end-1]
	if last.Kind != token.AlphanumRaw {
		return body, false
	}
	upper := strings.ToUpper(last.Text)
	if upper != "DESC" && upper != "ASC" {
		return body, false
	}

	trimEnd := end - 1
	for trimEnd > 0 && body[trimEnd-1].Kind == token.Whitespace {
		trimEnd--
	}
	return body[:trimEnd], upper == "DESC"
}
