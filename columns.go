package gopaginate

import (
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// permitted reports whether column is on the allow-list.
func permitted(allowList []string, column string) bool {
	return lo.Contains(allowList, column)
}

// permittedColumns keeps the requested columns that are on the allow-list,
// preserving the requested order and dropping duplicates.
func permittedColumns(allowList, requested []string) []string {
	return lo.Uniq(lo.Filter(requested, func(column string, _ int) bool {
		return permitted(allowList, column)
	}))
}

// columnQualifier returns the function that prefixes columns of the root
// model with its quoted table name. It only qualifies once the query joins
// other tables, and leaves dotted names as they are, so "Author.name" still
// addresses a joined relation.
func columnQualifier(db *gorm.DB) func(column string) string {
	identity := func(column string) string { return column }

	if len(db.Statement.Joins) == 0 {
		return identity
	}

	table := statementTable(db)
	if table == "" {
		return identity
	}

	return func(column string) string {
		if strings.Contains(column, ".") {
			return column
		}

		return db.Statement.Quote(table + "." + column)
	}
}

func qualifyColumns(db *gorm.DB, columns []string) []string {
	qualify := columnQualifier(db)

	return lo.Map(columns, func(column string, _ int) string {
		return qualify(column)
	})
}

// statementTable returns the table the query reads from, parsing its model
// when no table was set explicitly.
func statementTable(db *gorm.DB) string {
	if db.Statement.Table != "" {
		return db.Statement.Table
	}

	model := db.Statement.Model
	if model == nil {
		model = db.Statement.Dest
	}
	if model == nil {
		return ""
	}

	s, ok := modelSchema(db, model)
	if !ok {
		return ""
	}

	return s.Table
}
