package gopaginate

import (
	"database/sql/driver"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseFilterToken(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
		want filterToken
	}{
		{
			name: "bare value means equality",
			raw:  "Bob",
			ok:   true,
			want: filterToken{comparator: FilterComparatorAnd, operator: FilterEqual, values: []any{"Bob"}},
		},
		{
			name: "explicit operator",
			raw:  "$gte:3",
			ok:   true,
			want: filterToken{comparator: FilterComparatorAnd, operator: FilterGreaterThanOrEqual, values: []any{"3"}},
		},
		{
			name: "or comparator with negation",
			raw:  "$or:$not:$eq:Bob",
			ok:   true,
			want: filterToken{comparator: FilterComparatorOr, not: true, operator: FilterEqual, values: []any{"Bob"}},
		},
		{
			name: "negated bare value",
			raw:  "$not:Bob",
			ok:   true,
			want: filterToken{comparator: FilterComparatorAnd, not: true, operator: FilterEqual, values: []any{"Bob"}},
		},
		{
			name: "explicit and comparator",
			raw:  "$and:$lt:10",
			ok:   true,
			want: filterToken{comparator: FilterComparatorAnd, operator: FilterLessThan, values: []any{"10"}},
		},
		{
			name: "in list drops empty items",
			raw:  "$in:1,,2",
			ok:   true,
			want: filterToken{comparator: FilterComparatorAnd, operator: FilterIn, values: []any{"1", "2"}},
		},
		{
			name: "null takes no value",
			raw:  "$null",
			ok:   true,
			want: filterToken{comparator: FilterComparatorAnd, operator: FilterNull},
		},
		{"unknown operator", "$like:x", false, filterToken{}},
		{"between needs two values", "$btw:1", false, filterToken{}},
		{"between with empty bound", "$btw:1,", false, filterToken{}},
		{"empty in list", "$in:", false, filterToken{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseFilterToken(tt.raw)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_filterToken_permittedBy(t *testing.T) {
	eq := filterToken{operator: FilterEqual}
	notEq := filterToken{operator: FilterEqual, not: true}

	assert.True(t, eq.permittedBy([]FilterOperator{FilterEqual}))
	assert.False(t, eq.permittedBy([]FilterOperator{FilterGreaterThan}))
	assert.False(t, notEq.permittedBy([]FilterOperator{FilterEqual}))
	assert.True(t, notEq.permittedBy([]FilterOperator{FilterEqual, FilterSuffixNot}))
	assert.True(t, notEq.permittedBy(AllFilterOperators))
}

func Test_DefaultFilter_ToSQL(t *testing.T) {
	filterable := FilterableColumns{
		"age":  {FilterGreaterThanOrEqual, FilterLessThan, FilterNull, FilterSuffixNot},
		"name": {FilterEqual},
		"tags": {FilterContains},
	}

	tests := []struct {
		name     string
		dialect  string
		filter   map[string][]string
		wantSQL  string
		wantVals []driver.Value
	}{
		{
			name:     "empty filter",
			dialect:  "postgres",
			filter:   nil,
			wantSQL:  "TRUE",
			wantVals: nil,
		},
		{
			name:     "single value",
			dialect:  "postgres",
			filter:   map[string][]string{"name": {"Bob"}},
			wantSQL:  "((name = ?))",
			wantVals: []driver.Value{"Bob"},
		},
		{
			name:     "values of a column are AND-ed, columns sorted",
			dialect:  "postgres",
			filter:   map[string][]string{"name": {"Bob"}, "age": {"$gte:3", "$lt:10"}},
			wantSQL:  "((age >= ? AND age < ?)) AND ((name = ?))",
			wantVals: []driver.Value{"3", "10", "Bob"},
		},
		{
			name:     "or comparator starts a new disjunct",
			dialect:  "postgres",
			filter:   map[string][]string{"age": {"$gte:3", "$lt:10", "$or:$null"}},
			wantSQL:  "((age >= ? AND age < ?) OR (age IS NULL))",
			wantVals: []driver.Value{"3", "10"},
		},
		{
			name:     "not filterable column dropped",
			dialect:  "postgres",
			filter:   map[string][]string{"password": {"secret"}, "name": {"Bob"}},
			wantSQL:  "((name = ?))",
			wantVals: []driver.Value{"Bob"},
		},
		{
			name:     "operator not permitted dropped",
			dialect:  "postgres",
			filter:   map[string][]string{"name": {"$not:Bob", "$gt:A"}},
			wantSQL:  "TRUE",
			wantVals: nil,
		},
		{
			name:     "negation permitted",
			dialect:  "postgres",
			filter:   map[string][]string{"age": {"$not:$null"}},
			wantSQL:  "((age IS NOT NULL))",
			wantVals: nil,
		},
		{
			name:     "contains is postgres only",
			dialect:  "mysql",
			filter:   map[string][]string{"tags": {"$contains:go"}},
			wantSQL:  "TRUE",
			wantVals: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotVals := DefaultFilter{}.ToSQL(tt.dialect, tt.filter, filterable)

			assert.Equal(t, tt.wantSQL, gotSQL)
			assert.Equal(t, tt.wantVals, gotVals)
		})
	}
}

func Test_DefaultFilter_Expression(t *testing.T) {
	filterable := FilterableColumns{"name": {FilterEqual}, "age": {FilterGreaterThan}}

	assert.Nil(t, DefaultFilter{}.Expression("postgres", map[string][]string{"name": {"$gt:1"}}, filterable))
	assert.NotNil(t, DefaultFilter{}.Expression("postgres", map[string][]string{"name": {"Bob"}}, filterable))
	assert.NotNil(t, DefaultFilter{}.Expression("postgres", map[string][]string{"name": {"Bob"}, "age": {"$gt:1"}}, filterable))
}

func Test_DefaultFilter_ApplyFilter(t *testing.T) {
	for _, mockFn := range sqlMockFnList() {
		dialect, db, _, err := mockFn()
		require.NoError(t, err)

		t.Run(dialect, func(t *testing.T) {
			type tUser struct {
				ID   uint
				Name string
				Age  int
			}

			filterable := FilterableColumns{"name": {FilterILike}, "age": {FilterBetween}}
			filter := map[string][]string{"name": {"$ilike:bo"}, "age": {"$btw:18,30"}}

			stmt := DefaultFilter{}.
				ApplyFilter(dryRun(db).Model(&tUser{}), filter, filterable).
				Find(&[]tUser{}).Statement

			assert.Regexp(t, "WHERE \\(?age BETWEEN (?:\\$\\d|\\?) AND (?:\\$\\d|\\?)\\)? AND \\(?(?:name ILIKE|LOWER\\(name\\) LIKE LOWER\\()", stmt.SQL.String())
			assert.Equal(t, []interface{}{"18", "30", "%bo%"}, stmt.Vars)
		})
	}
}
