package gopaginate

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm/clause"
)

// PaginationType selects the addressing vocabulary of the page query.
type PaginationType string

const (
	// PaginationLimit addresses pages with LIMIT/OFFSET on the joined query.
	// Relations are LEFT JOINed, so one-to-many relations skew page sizes.
	PaginationLimit PaginationType = "limit"
	// PaginationTake addresses pages on the root rows only and loads
	// relations with separate queries.
	PaginationTake PaginationType = "take"
)

// Config is the per-endpoint configuration of a Paginator.
//
// Column names without a dot refer to the root model. Once relations are
// joined (PaginationLimit) they are qualified with the root table in every
// sort, search, filter and select clause. Dotted names are used as written.
type Config struct {
	// Relations to load with every page.
	Relations []Relation
	// SortableColumns is the sort allow-list. Required.
	SortableColumns []string `validate:"required,min=1,dive,required"`
	NullSort        NullSort `validate:"omitempty,oneof=first last"`
	// SearchableColumns is the search allow-list.
	SearchableColumns []string `validate:"dive,required"`
	// Select limits the selected columns. It must cover the primary key.
	Select []string `validate:"dive,required"`
	// MaxLimit caps the page size. Nil means DefaultMaxLimit. Zero together
	// with a requested limit of zero disables pagination.
	MaxLimit *int `validate:"omitempty,min=0"`
	// DefaultSortBy is used when the request has no valid sort entry.
	// Defaults to the first sortable column, ascending.
	DefaultSortBy Orderings
	// DefaultLimit is the page size of requests without a limit. Zero means
	// the package DefaultLimit.
	DefaultLimit int `validate:"min=0"`
	// Where conditions are AND-ed as one group with the rest of the query.
	Where             []clause.Expression
	FilterableColumns FilterableColumns
	// LoadEagerRelations preloads every association of repository sources
	// when Relations is empty.
	LoadEagerRelations bool
	// WithDeleted includes soft deleted rows.
	WithDeleted    bool
	PaginationType PaginationType `validate:"omitempty,oneof=limit take"`
	// RelativePath renders links without scheme and host.
	RelativePath bool
	// Origin replaces the scheme and host of the request in links.
	Origin string `validate:"omitempty,url"`
}

var _configValidator = validator.New()

// Validate returns a *ConfigError describing the first invalid field.
func (c Config) Validate() error {
	err := _configValidator.Struct(c)

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		name, _, indexed := strings.Cut(fe.StructField(), "[")
		field := lowerFirst(name)

		if name == "SortableColumns" && !indexed && (fe.Tag() == "required" || fe.Tag() == "min") {
			return newConfigError(field, "missing required 'sortableColumns' config", err)
		}

		return newConfigError(field, fmt.Sprintf("invalid '%s' config", field), err)
	} else if err != nil {
		return newConfigError("", "invalid config", err)
	}

	for _, column := range c.SortableColumns {
		if !validColumnName(column) {
			return newConfigError("sortableColumns", fmt.Sprintf("sortable column '%s' contains forbidden symbols", column), nil)
		}
	}

	for _, column := range c.SearchableColumns {
		if !validColumnName(column) {
			return newConfigError("searchableColumns", fmt.Sprintf("searchable column '%s' contains forbidden symbols", column), nil)
		}
	}

	if len(c.DefaultSortBy) > 0 {
		if err := c.DefaultSortBy.validate(); err != nil {
			return newConfigError("defaultSortBy", "invalid 'defaultSortBy' config", err)
		}
	}

	return nil
}

func (c Config) paginationType() PaginationType {
	if c.PaginationType == "" {
		return PaginationTake
	}

	return c.PaginationType
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}
