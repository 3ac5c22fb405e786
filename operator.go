package gopaginate

// FilterOperator defines a comparison operator for filtering by column.
// Operators prefix filter values: "$gte:3", "$in:1,2,3", "$null".
type FilterOperator string

const (
	FilterEqual              FilterOperator = "$eq"
	FilterGreaterThan        FilterOperator = "$gt"
	FilterGreaterThanOrEqual FilterOperator = "$gte"
	FilterIn                 FilterOperator = "$in"
	FilterNull               FilterOperator = "$null"
	FilterLessThan           FilterOperator = "$lt"
	FilterLessThanOrEqual    FilterOperator = "$lte"
	FilterBetween            FilterOperator = "$btw"
	FilterILike              FilterOperator = "$ilike"
	FilterStartsWith         FilterOperator = "$sw"
	// FilterContains matches array columns containing every value. Postgres only.
	FilterContains FilterOperator = "$contains"

	// FilterSuffixNot negates the operator that follows it: "$not:$null".
	// A column must list it in FilterableColumns to accept negation.
	FilterSuffixNot FilterOperator = "$not"
)

// AllFilterOperators permits every operator and negation on a column.
var AllFilterOperators = []FilterOperator{
	FilterEqual,
	FilterGreaterThan,
	FilterGreaterThanOrEqual,
	FilterIn,
	FilterNull,
	FilterLessThan,
	FilterLessThanOrEqual,
	FilterBetween,
	FilterILike,
	FilterStartsWith,
	FilterContains,
	FilterSuffixNot,
}

func (o FilterOperator) Valid() bool {
	switch o {
	case FilterEqual, FilterGreaterThan, FilterGreaterThanOrEqual, FilterIn, FilterNull,
		FilterLessThan, FilterLessThanOrEqual, FilterBetween, FilterILike, FilterStartsWith,
		FilterContains:
		return true
	default:
		return false
	}
}

// comparisonSQL returns the SQL comparison for scalar operators.
func (o FilterOperator) comparisonSQL() string {
	switch o {
	case FilterEqual:
		return "="
	case FilterGreaterThan:
		return ">"
	case FilterGreaterThanOrEqual:
		return ">="
	case FilterLessThan:
		return "<"
	case FilterLessThanOrEqual:
		return "<="
	default:
		return ""
	}
}

// FilterComparator joins a filter value with the previous values of the same
// column. "$or:" starts a new alternative, "$and:" (the default) narrows the
// current one.
type FilterComparator string

const (
	FilterComparatorAnd FilterComparator = "$and"
	FilterComparatorOr  FilterComparator = "$or"
)

// FilterableColumns maps a column to the operators a request may use on it.
type FilterableColumns map[string][]FilterOperator
