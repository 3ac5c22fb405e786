package gopaginate

import (
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// selectColumns resolves the effective column selection. A requested subset
// narrows the configured one, but only while it still covers the primary key
// so rows keep their identity. Otherwise the configured selection is used.
func selectColumns(configured, requested, primaryKeys []string) []string {
	if len(configured) == 0 {
		return configured
	}

	if len(requested) > 0 {
		narrowed := permittedColumns(requested, configured)
		if coversPrimaryKey(narrowed, primaryKeys) {
			return narrowed
		}
	}

	return configured
}

func coversPrimaryKey(columns, primaryKeys []string) bool {
	return len(columns) > 0 && lo.Every(columns, primaryKeys)
}

// withLoadKeys adds the columns preloaded relations are matched on to a
// non-empty selection.
func withLoadKeys(columns, loadKeys []string) []string {
	if len(columns) == 0 || len(loadKeys) == 0 {
		return columns
	}

	return lo.Union(columns, loadKeys)
}

// modelSchema parses model. The boolean is false when the model cannot be
// parsed, e.g. for untyped map destinations.
func modelSchema(db *gorm.DB, model any) (*schema.Schema, bool) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil || stmt.Schema == nil {
		return nil, false
	}

	return stmt.Schema, true
}

// primaryKeys returns the primary key columns of model.
func primaryKeys(db *gorm.DB, model any) ([]string, bool) {
	s, ok := modelSchema(db, model)
	if !ok {
		return nil, false
	}

	return s.PrimaryFieldDBNames, true
}

// relationKeys returns the columns of s that the named relations are loaded
// by: the foreign key of a belongs-to relation, the referenced key of the
// others. Unknown names are skipped.
func relationKeys(s *schema.Schema, names []string) []string {
	var ret []string

	for _, name := range names {
		relation, ok := s.Relationships.Relations[name]
		if !ok {
			continue
		}

		for _, ref := range relation.References {
			for _, field := range []*schema.Field{ref.PrimaryKey, ref.ForeignKey} {
				if field != nil && field.Schema == s && field.DBName != "" {
					ret = append(ret, field.DBName)
				}
			}
		}
	}

	return lo.Uniq(ret)
}

// applySelect selects columns when they cover primaryKeys. Nil primaryKeys
// means the key is unknown and any selection is applied. Columns are
// qualified with the root table when the query joins relations.
func applySelect(db *gorm.DB, columns, primaryKeys []string) *gorm.DB {
	if !coversPrimaryKey(columns, primaryKeys) {
		return db
	}

	return db.Select(qualifyColumns(db, columns))
}
