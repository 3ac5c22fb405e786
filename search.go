package gopaginate

import (
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// searchColumns narrows the requested columns against the searchable
// allow-list. Without a request the whole allow-list is searched.
func searchColumns(searchable, requested []string) []string {
	if len(requested) == 0 {
		return searchable
	}

	return permittedColumns(searchable, requested)
}

// searchExpression returns the OR of case-insensitive substring matches of
// term over columns, or nil when there is nothing to search.
func searchExpression(dialect string, columns []string, term string) clause.Expression {
	if term == "" || len(columns) == 0 {
		return nil
	}

	pattern := "%" + term + "%"
	exprs := lo.Map(columns, func(column string, _ int) clause.Expression {
		return clause.Expr{
			SQL:  searchSQL(dialect, column),
			Vars: []any{pattern},
		}
	})

	if len(exprs) == 1 {
		return exprs[0]
	}

	return clause.Or(exprs...)
}

func searchSQL(dialect, column string) string {
	if dialect == dialectPostgres {
		return fmt.Sprintf("CAST(%s AS text) ILIKE ?", column)
	}

	return caseInsensitiveLike(column, dialect)
}

// applySearch adds the search predicate to db. Columns are qualified with
// the root table when the query joins relations.
func applySearch(db *gorm.DB, columns []string, term string) *gorm.DB {
	exp := searchExpression(db.Dialector.Name(), qualifyColumns(db, columns), term)
	if exp == nil {
		return db
	}

	return db.Where(exp)
}
