package gopaginate

import (
	"database/sql/driver"
	"slices"
	"sort"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FilterApplier turns the raw request filter into query predicates. Only
// columns present in filterable may be filtered on.
type FilterApplier interface {
	ApplyFilter(db *gorm.DB, filter map[string][]string, filterable FilterableColumns) *gorm.DB
}

// DefaultFilter is the FilterApplier used unless WithFilter overrides it.
//
// Every filter value has the form
//
//	[$or:|$and:][$not:][<operator>:]<value>
//
// A value without an operator means $eq. $in and $contains take comma
// separated lists, $btw takes exactly two values and $null takes none.
//
// The values of one column form a DNF: "$or:" starts a new alternative,
// everything else is AND-ed into the current one. Columns are AND-ed.
// Values on columns that are not filterable, with operators the column does
// not permit, or with malformed arguments are dropped.
type DefaultFilter struct{}

// ApplyFilter implements FilterApplier.
//
// Columns are qualified with the root table when the query joins relations.
func (f DefaultFilter) ApplyFilter(db *gorm.DB, filter map[string][]string, filterable FilterableColumns) *gorm.DB {
	exp := f.expression(db.Dialector.Name(), filter, filterable, columnQualifier(db))
	if exp == nil {
		return db
	}

	return db.Clauses(exp)
}

// Expression returns the filter predicate for the dialect, or nil when no
// filter value survived validation.
func (f DefaultFilter) Expression(dialect string, filter map[string][]string, filterable FilterableColumns) clause.Expression {
	return f.expression(dialect, filter, filterable, nil)
}

func (f DefaultFilter) expression(dialect string, filter map[string][]string, filterable FilterableColumns, qualify func(string) string) clause.Expression {
	columnExpressions := make([]clause.Expression, 0, len(filter))
	for _, dnf := range f.compile(dialect, filter, filterable, qualify) {
		if exp := dnf.toGORMExpression(dialect); exp != nil {
			columnExpressions = append(columnExpressions, exp)
		}
	}

	if len(columnExpressions) == 1 {
		return columnExpressions[0]
	} else if len(columnExpressions) > 1 {
		return clause.And(columnExpressions...)
	}

	return nil
}

// ToSQL renders the filter as a plain SQL condition with "?" placeholders.
//
// Usage:
//
//	cond, args := gopaginate.DefaultFilter{}.ToSQL("postgres", filter, filterable)
//	query := fmt.Sprintf("SELECT * FROM table WHERE %s", cond)
func (f DefaultFilter) ToSQL(dialect string, filter map[string][]string, filterable FilterableColumns) (string, []driver.Value) {
	var (
		clauses []string
		values  []driver.Value
	)

	for _, dnf := range f.compile(dialect, filter, filterable, nil) {
		sqlClause, dnfValues := dnf.toSQLClause(dialect)
		clauses = append(clauses, sqlClause)
		values = append(values, dnfValues...)
	}

	if len(clauses) == 0 {
		return "TRUE", nil
	}

	return strings.Join(clauses, " AND "), values
}

// compile builds one DNF per filterable column, in column name order.
// Conjunct columns are passed through qualify when it is not nil.
func (f DefaultFilter) compile(dialect string, filter map[string][]string, filterable FilterableColumns, qualify func(string) string) []tDNF {
	columns := permittedColumns(lo.Keys(filterable), lo.Keys(filter))
	sort.Strings(columns)

	ret := make([]tDNF, 0, len(columns))
	for _, column := range columns {
		if !validColumnName(column) {
			continue
		}

		target := column
		if qualify != nil {
			target = qualify(column)
		}

		var dnf tDNF
		for _, raw := range filter[column] {
			token, ok := parseFilterToken(raw)
			if !ok || !token.permittedBy(filterable[column]) {
				continue
			}

			conjunct := tConjunct{
				Column:   target,
				Operator: token.operator,
				Values:   token.values,
				Not:      token.not,
			}
			if !conjunct.supported(dialect) {
				continue
			}

			if token.comparator == FilterComparatorOr || len(dnf) == 0 {
				dnf = append(dnf, tDisjunct{conjunct})
			} else {
				dnf[len(dnf)-1] = append(dnf[len(dnf)-1], conjunct)
			}
		}

		if len(dnf) > 0 {
			ret = append(ret, dnf)
		}
	}

	return ret
}

var _ FilterApplier = DefaultFilter{}

type filterToken struct {
	comparator FilterComparator
	not        bool
	operator   FilterOperator
	values     []any
}

func (t filterToken) permittedBy(operators []FilterOperator) bool {
	if t.not && !slices.Contains(operators, FilterSuffixNot) {
		return false
	}

	return slices.Contains(operators, t.operator)
}

// parseFilterToken parses a single filter value. Returns false when the value
// is malformed.
func parseFilterToken(raw string) (filterToken, bool) {
	token := filterToken{comparator: FilterComparatorAnd}
	rest := raw

	if after, ok := strings.CutPrefix(rest, string(FilterComparatorOr)+":"); ok {
		token.comparator = FilterComparatorOr
		rest = after
	} else if after, ok := strings.CutPrefix(rest, string(FilterComparatorAnd)+":"); ok {
		rest = after
	}

	if after, ok := strings.CutPrefix(rest, string(FilterSuffixNot)+":"); ok {
		token.not = true
		rest = after
	}

	token.operator = FilterEqual
	if strings.HasPrefix(rest, "$") {
		operator, argument, _ := strings.Cut(rest, ":")
		token.operator = FilterOperator(operator)
		rest = argument
	}

	if !token.operator.Valid() {
		return filterToken{}, false
	}

	switch token.operator {
	case FilterNull:
		token.values = nil
	case FilterIn, FilterContains:
		items := lo.Filter(strings.Split(rest, ","), func(item string, _ int) bool { return item != "" })
		if len(items) == 0 {
			return filterToken{}, false
		}
		token.values = lo.ToAnySlice(items)
	case FilterBetween:
		items := strings.Split(rest, ",")
		if len(items) != 2 || items[0] == "" || items[1] == "" {
			return filterToken{}, false
		}
		token.values = lo.ToAnySlice(items)
	default:
		token.values = []any{rest}
	}

	return token, true
}
