package gopaginate

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm/clause"
)

const dialectPostgres = "postgres"

type (
	tConjunct struct {
		Column   string
		Operator FilterOperator
		Values   []any
		Not      bool
	}

	tDisjunct []tConjunct

	// tDNF represents the disjunctive normal form (DNF) of a logical expression.
	// Each disjunct is joined by OR, and each disjunct consists of a list of
	// conjuncts which are joined by AND. A conjunct is the value of
	// Operator(Column, Values), optionally negated.
	//
	// Thus:
	//
	//	DNF = X1 OR X2 ... OR Xn, where Xi = Ai1 AND Ai2 ... AND Aim.
	//	DNF = (A11 AND A12 AND A13) OR (A21 AND A22 AND A23), for n=2, m=3.
	//
	//  Where (A11 AND A12 AND A13), (A21 AND A22 AND A23) are disjuncts and
	//  A11, A12, A13, A21, A22, A23 are conjuncts.
	tDNF []tDisjunct
)

// supported reports whether the conjunct can be rendered for the dialect.
func (c tConjunct) supported(dialect string) bool {
	return c.Operator != FilterContains || dialect == dialectPostgres
}

// toGORMExpression converts a conjunct into a clause.Expression.
//
// IMPORTANT: The method uses the SQL placeholder "?".
//
// Example:
//
//	tConjunct = { Column: "id", Operator: "$gt", Values: ["123"] }
//
// Result:
//
//	"id > ?"
func (c tConjunct) toGORMExpression(dialect string) clause.Expression {
	sqlClause, args := c.toSQLClause(dialect)

	return clause.Expr{
		SQL:  sqlClause,
		Vars: lo.Map(args, func(arg driver.Value, _ int) any { return arg }),
	}
}

// toSQLClause converts a conjunct to an SQL condition with "?" placeholders
// and the corresponding values.
//
// Example:
//
//	tConjunct = { Column: "age", Operator: "$btw", Values: [4, 6], Not: true }
//
// Result:
//
//	("NOT (age BETWEEN ? AND ?)", [4, 6])
func (c tConjunct) toSQLClause(dialect string) (string, []driver.Value) {
	var (
		sqlClause string
		values    = lo.Map(c.Values, func(v any, _ int) driver.Value { return parseAnyValue(v) })
	)

	switch c.Operator {
	case FilterNull:
		if c.Not {
			return fmt.Sprintf("%s IS NOT NULL", c.Column), nil
		}
		return fmt.Sprintf("%s IS NULL", c.Column), nil
	case FilterIn:
		sqlClause = fmt.Sprintf("%s IN (%s)", c.Column, placeholders(len(values)))
	case FilterBetween:
		sqlClause = fmt.Sprintf("%s BETWEEN ? AND ?", c.Column)
	case FilterILike, FilterStartsWith:
		pattern := lo.Ternary(c.Operator == FilterILike, "%%%v%%", "%v%%")
		values = []driver.Value{fmt.Sprintf(pattern, lo.FirstOrEmpty(c.Values))}
		sqlClause = caseInsensitiveLike(c.Column, dialect)
	case FilterContains:
		sqlClause = fmt.Sprintf("%s @> ARRAY[%s]", c.Column, placeholders(len(values)))
	default:
		sqlClause = fmt.Sprintf("%s %s ?", c.Column, c.Operator.comparisonSQL())
	}

	if c.Not {
		sqlClause = fmt.Sprintf("NOT (%s)", sqlClause)
	}

	return sqlClause, values
}

// caseInsensitiveLike renders "column ILIKE ?" for postgres and a portable
// LOWER() comparison for every other dialect.
func caseInsensitiveLike(column, dialect string) string {
	if dialect == dialectPostgres {
		return fmt.Sprintf("%s ILIKE ?", column)
	}

	return fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", column)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func parseAnyValue(v any) any {
	// Try parsing a value as time.Time. If it succeeds, return time.Time.
	// Otherwise return the original value.
	fnParseBytesToTimeOrValue := func(vBytes []byte) any {
		dst := time.Time{}
		err := dst.UnmarshalText(vBytes)
		if err == nil {
			return dst
		}

		return v
	}

	switch vt := v.(type) {
	case string:
		return fnParseBytesToTimeOrValue([]byte(vt))
	case []byte:
		return fnParseBytesToTimeOrValue(vt)
	default:
		return v
	}
}

// toGORMExpression converts a disjunct (K1, K2, K3) into a gorm expression
// "K1 AND K2 AND K3" where each Ki is expanded via tConjunct.toGORMExpression.
func (d tDisjunct) toGORMExpression(dialect string) clause.Expression {
	andExpressions := make([]clause.Expression, 0, len(d))
	for _, conjunct := range d {
		andExpressions = append(andExpressions, conjunct.toGORMExpression(dialect))
	}

	if len(andExpressions) == 1 {
		return andExpressions[0]
	} else if len(andExpressions) > 1 {
		return clause.And(andExpressions...)
	}

	return nil
}

// toSQLClause converts a disjunct (K1, K2, K3) into an SQL condition
// "(K1 AND K2 AND K3)" with corresponding values.
//
// Example:
//
//	tDisjunct = {
//		{Column: "id", Operator: "$gt", Values: [5]},
//		{Column: "name", Operator: "$lt", Values: ["abc"]}
//	}
//
// Result:
//
//	("(id > ? AND name < ?)", [5, "abc"])
func (d tDisjunct) toSQLClause(dialect string) (string, []driver.Value) {
	andClauses := make([]string, 0, len(d))
	andValues := make([]driver.Value, 0, len(d))

	for _, conjunct := range d {
		andClause, values := conjunct.toSQLClause(dialect)
		andClauses = append(andClauses, andClause)
		andValues = append(andValues, values...)
	}

	if len(andClauses) >= 1 {
		return fmt.Sprintf("(%s)", strings.Join(andClauses, " AND ")), andValues
	}

	return "", nil
}

// toGORMExpression converts a DNF (tDNF) into a clause.Expression.
// For each disjunct it calls tDisjunct.toGORMExpression and joins disjuncts with OR.
func (d tDNF) toGORMExpression(dialect string) clause.Expression {
	orExpressions := make([]clause.Expression, 0, len(d))

	for _, disjunct := range d {
		andExpressions := disjunct.toGORMExpression(dialect)
		if andExpressions == nil {
			continue
		}

		orExpressions = append(orExpressions, andExpressions)
	}

	if len(orExpressions) == 1 {
		return orExpressions[0]
	} else if len(orExpressions) > 1 {
		return clause.Or(orExpressions...)
	}

	return nil
}

// toSQLClause converts a DNF (tDNF) into an SQL condition. For each disjunct it
// calls tDisjunct.toSQLClause and joins disjuncts with OR.
//
// Example:
//
//	tDNF = {
//		{{Column: "id", Operator: "$lt", Values: [10]}},
//		{{Column: "id", Operator: "$eq", Values: [10]}, {Column: "name", Operator: "$lt", Values: ["abc"]}},
//	}
//
// Result:
//
//	("((id < ?) OR (id = ? AND name < ?))", [10, 10, "abc"])
func (d tDNF) toSQLClause(dialect string) (string, []driver.Value) {
	orClauses := make([]string, 0, len(d))
	values := make([]driver.Value, 0, len(d))

	for _, disjunct := range d {
		orClause, orValues := disjunct.toSQLClause(dialect)
		if orClause == "" {
			continue
		}

		orClauses = append(orClauses, orClause)
		values = append(values, orValues...)
	}

	if len(orClauses) >= 1 {
		return fmt.Sprintf("(%s)", strings.Join(orClauses, " OR ")), values
	}

	return "TRUE", nil
}
