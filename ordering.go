package gopaginate

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Direction defines the sort direction for the requested dataset.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (o Direction) Valid() bool {
	return o == DirectionASC || o == DirectionDESC
}

// NullSort places NULL values first or last.
type NullSort string

const (
	NullSortFirst NullSort = "first"
	NullSortLast  NullSort = "last"
)

func (n NullSort) toSQL() string {
	switch n {
	case NullSortFirst:
		return "NULLS FIRST"
	case NullSortLast:
		return "NULLS LAST"
	default:
		return ""
	}
}

type (
	Orderings []OrderBy
	OrderBy   struct {
		Column    string
		Direction Direction
	}
)

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

func (o OrderBy) validate() error {
	if !o.Direction.Valid() {
		return fmt.Errorf("invalid ordering direction '%s'", o.Direction)
	}

	// Guard against SQL injection by restricting allowed characters in column names.
	if !validColumnName(o.Column) {
		return fmt.Errorf("ordering column name contains forbidden symbols '%s'", o.Column)
	}

	return nil
}

func validColumnName(column string) bool {
	return column != "" && lo.Every(_availableColumnNameSymbols, []rune(column))
}

// MarshalJSON encodes the ordering as a ["column", "DIRECTION"] pair.
func (o OrderBy) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{o.Column, string(o.Direction)})
}

func (o *OrderBy) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("failed to unmarshal ordering pair: %w", err)
	}

	o.Column = pair[0]
	o.Direction = Direction(pair[1])

	return nil
}

// ToSQLSlice converts Orderings to a slice of strings in the form
// "<order_column> <order_direction>[ NULLS FIRST|LAST]".
//
// Example: for Orderings: [{"a", "ASC"}, {"b", "DESC"}] returns ["a ASC", "b DESC"].
func (o Orderings) ToSQLSlice(nullSort NullSort) []string {
	nulls := nullSort.toSQL()

	ret := make([]string, 0, len(o))
	for _, ordering := range o {
		sql := fmt.Sprintf("%s %s", ordering.Column, ordering.Direction)
		if nulls != "" {
			sql += " " + nulls
		}

		ret = append(ret, sql)
	}

	return ret
}

// ToSQL joins ToSQLSlice with commas.
//
// Usage:
//
//	query := fmt.Sprintf("SELECT * FROM table ORDER BY %s", orderings.ToSQL(""))
func (o Orderings) ToSQL(nullSort NullSort) string {
	return strings.Join(o.ToSQLSlice(nullSort), ", ")
}

// Apply applies the ordering to a gorm query. Columns without a table are
// qualified with the root table when the query joins relations.
func (o Orderings) Apply(db *gorm.DB, nullSort NullSort) *gorm.DB {
	if len(o) == 0 {
		return db
	}

	qualify := columnQualifier(db)
	qualified := lo.Map(o, func(item OrderBy, _ int) OrderBy {
		return OrderBy{Column: qualify(item.Column), Direction: item.Direction}
	})

	return db.Order(Orderings(qualified).ToSQL(nullSort))
}

// String renders the orderings as "column:DIRECTION" entries joined by commas.
func (o Orderings) String() string {
	return strings.Join(lo.Map(o, func(item OrderBy, _ int) string {
		return item.Column + ":" + string(item.Direction)
	}), ",")
}

func (o Orderings) validate() error {
	if len(o) == 0 {
		return fmt.Errorf("empty ordering list")
	}

	var err error
	for _, ordering := range o {
		err = ordering.validate()
		if err != nil {
			return err
		}
	}

	return nil
}

// ParseSort builds Orderings from "column:direction" entries. The direction is
// case-insensitive and defaults to ASC when omitted. Malformed entries are
// skipped; allow-list checks are left to the paginator.
func ParseSort(entries []string) Orderings {
	ret := make(Orderings, 0, len(entries))

	for _, entry := range entries {
		column, direction, found := strings.Cut(strings.TrimSpace(entry), ":")
		column = strings.TrimSpace(column)
		if column == "" {
			continue
		}

		if !found {
			direction = string(DirectionASC)
		}

		ret = append(ret, OrderBy{
			Column:    column,
			Direction: Direction(strings.ToUpper(strings.TrimSpace(direction))),
		})
	}

	return ret
}

func closestAlias(input string, dataSet []string) string {
	minDist := math.MaxInt
	closest := ""

	for _, dataSetAlias := range dataSet {
		dist := levenshtein([]rune(dataSetAlias), []rune(input))
		if dist < minDist {
			minDist = dist
			closest = dataSetAlias
		}
	}

	return closest
}
