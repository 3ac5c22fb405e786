package gopaginate

import (
	"context"

	"gorm.io/gorm"
)

type sourceKind int

const (
	sourceRepository sourceKind = iota
	sourceQuery
)

// Source is the query a paginator reads pages from.
type Source struct {
	db   *gorm.DB
	kind sourceKind
}

// Repository reads pages from the whole table of model T.
func Repository[T any](db *gorm.DB) Source {
	return Source{
		db:   db.Session(&gorm.Session{}).Model(new(T)),
		kind: sourceRepository,
	}
}

// QueryBuilder reads pages from a pre-built query. The query may carry its
// own conditions, joins and ordering. It is counted as a subquery with its
// ORDER BY and LIMIT clauses stripped.
//
// Usage:
//
//	src := gopaginate.QueryBuilder(db.Model(&User{}).Where("active = ?", true))
func QueryBuilder(db *gorm.DB) Source {
	return Source{
		db:   db,
		kind: sourceQuery,
	}
}

// IsRepository reports whether the source was built with Repository.
func (s Source) IsRepository() bool {
	return s.kind == sourceRepository
}

// session returns a reusable query bound to ctx. Chained calls on the result
// never modify it.
func (s Source) session(ctx context.Context) *gorm.DB {
	return s.db.Session(&gorm.Session{Context: ctx})
}

// countQuery returns the query counting the rows of db.
func (s Source) countQuery(db *gorm.DB) *gorm.DB {
	if s.IsRepository() {
		return db
	}

	return db.Session(&gorm.Session{NewDB: true}).
		Table("(?) AS paginate_count", withoutPaging(db))
}

// withoutPaging clones db without its ORDER BY and LIMIT clauses.
func withoutPaging(db *gorm.DB) *gorm.DB {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}

	// A session with a context clones the statement, so db keeps its clauses.
	tx := db.Session(&gorm.Session{Context: ctx})

	delete(tx.Statement.Clauses, "ORDER BY")
	delete(tx.Statement.Clauses, "LIMIT")

	return tx
}
