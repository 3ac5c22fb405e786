package gopaginate

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Paginator pages a source according to a Query, restricted by Config.
type Paginator[T any] struct {
	cfg  Config
	opts options
}

func NewPaginator[T any](cfg Config, opts ...Option) *Paginator[T] {
	return &Paginator[T]{
		cfg:  cfg,
		opts: newOptions(opts),
	}
}

// Paginate is a shortcut for NewPaginator[T](cfg, opts...).Paginate.
func Paginate[T any](ctx context.Context, query Query, src Source, cfg Config, opts ...Option) (*Paginated[T], error) {
	return NewPaginator[T](cfg, opts...).Paginate(ctx, query, src)
}

// Paginate returns the page of src described by query.
//
// Invalid request directives never fail the call: they are normalized or
// dropped. An invalid Config fails with a *ConfigError before any query runs.
func (p *Paginator[T]) Paginate(ctx context.Context, query Query, src Source) (*Paginated[T], error) {
	if p == nil {
		p = NewPaginator[T](Config{})
	}

	if err := p.cfg.Validate(); err != nil {
		p.opts.logger.Error("pagination is misconfigured", zap.Error(err))
		return nil, err
	}

	page := max(query.Page, 1)
	limit, paginated := p.limit(query.Limit)
	sortBy := p.sortBy(query.SortBy)
	searchBy := searchColumns(p.cfg.SearchableColumns, query.SearchBy)
	take := p.cfg.paginationType() == PaginationTake

	q := src.session(ctx)
	if p.cfg.WithDeleted {
		q = q.Unscoped()
	}
	if !take {
		q = joinRelations(q, p.cfg.Relations)
	}
	if len(p.cfg.Where) > 0 {
		q = q.Where(clause.And(p.cfg.Where...))
	}
	q = applySearch(q, searchBy, query.Search)
	if len(query.Filter) > 0 {
		q = p.opts.filter.ApplyFilter(q, query.Filter, p.cfg.FilterableColumns)
	}
	base := q.Session(&gorm.Session{})

	eager := len(p.cfg.Relations) == 0 && p.cfg.LoadEagerRelations && src.IsRepository()

	var keys, loadKeys []string
	if s, ok := modelSchema(base, new(T)); ok {
		keys = s.PrimaryFieldDBNames

		preloaded := lo.Map(p.cfg.Relations, func(r Relation, _ int) string { return r.Name })
		if eager {
			preloaded = lo.Keys(s.Relationships.Relations)
			sort.Strings(preloaded)
		}
		if take || eager {
			loadKeys = relationKeys(s, preloaded)
		}
	}
	selected := selectColumns(p.cfg.Select, query.Select, keys)
	// Preloaded relations are matched on these columns, so they stay selected.
	selected = withLoadKeys(selected, loadKeys)

	items := sortBy.Apply(base, p.cfg.NullSort)
	items = applySelect(items, selected, keys)
	if take {
		items = preloadRelations(items, p.cfg.Relations)
	}
	if eager {
		items = preloadAssociations(items)
	}

	var count *gorm.DB
	if paginated {
		items = pageQuery(items, page, limit)
		count = src.countQuery(base)
	}

	data, total, err := fetch[T](ctx, items, count)
	if err != nil {
		return nil, fmt.Errorf("failed to paginate: %w", err)
	}

	meta := Meta{
		CurrentPage:  page,
		ItemsPerPage: limit,
		TotalItems:   total,
		TotalPages:   1,
		SortBy:       sortBy,
		Search:       query.Search,
	}
	if paginated {
		meta.TotalPages = totalPages(total, limit)
	} else {
		meta.ItemsPerPage = len(data)
		meta.TotalItems = int64(len(data))
	}
	if query.Search != "" {
		meta.SearchBy = searchBy
	}
	// Only reported when the request narrowed the configured selection.
	if len(selected) != len(p.cfg.Select) {
		meta.Select = selected
	}
	if len(query.Filter) > 0 {
		meta.Filter = FilterValues(query.Filter)
	}

	basePath := p.linkBase(query.Path)
	options := p.linkOptions(limit, sortBy, query, searchBy, meta.Select)
	meta.Links = p.opts.links.Build(page, meta.TotalPages, func(page int) string {
		return basePath + "?page=" + strconv.Itoa(page) + options
	})

	return &Paginated[T]{
		Data:       data,
		Pagination: meta,
	}, nil
}

// limit returns the effective page size and whether pagination is enabled.
func (p *Paginator[T]) limit(requested *int) (int, bool) {
	defaultLimit := lo.Ternary(p.cfg.DefaultLimit > 0, p.cfg.DefaultLimit, DefaultLimit)
	maxLimit := NumberOrDefault(p.cfg.MaxLimit, DefaultMaxLimit, 0)
	queryLimit := NumberOrDefault(requested, defaultLimit, 0)

	if queryLimit == NoPagination && maxLimit == NoPagination {
		return NoPagination, false
	}

	maxLimit = lo.Ternary(maxLimit > 0, maxLimit, DefaultMaxLimit)

	return min(NormalizeLimitMax(queryLimit, defaultLimit, maxLimit), maxLimit), true
}

// sortBy keeps the requested orderings on sortable columns with a valid
// direction. Without any, the default ordering applies.
func (p *Paginator[T]) sortBy(requested Orderings) Orderings {
	ret := lo.Filter(requested, func(o OrderBy, _ int) bool {
		if permitted(p.cfg.SortableColumns, o.Column) && o.Direction.Valid() {
			return true
		}

		p.opts.logger.Debug("dropping sort entry",
			zap.String("column", o.Column),
			zap.String("direction", string(o.Direction)),
			zap.String("closest_sortable_column", closestAlias(o.Column, p.cfg.SortableColumns)),
		)

		return false
	})

	if len(ret) > 0 {
		return ret
	}

	if len(p.cfg.DefaultSortBy) > 0 {
		return p.cfg.DefaultSortBy
	}

	return Orderings{{Column: p.cfg.SortableColumns[0], Direction: DirectionASC}}
}

// linkBase derives the scheme, host and path links are built on.
func (p *Paginator[T]) linkBase(rawPath string) string {
	u, err := url.Parse(rawPath)
	if err != nil {
		p.opts.logger.Debug("cannot parse request path, links are rendered without it",
			zap.String("path", rawPath),
			zap.Error(err),
		)
		u = &url.URL{}
	}

	path := u.EscapedPath()

	switch {
	case p.cfg.RelativePath:
		return path
	case p.cfg.Origin != "":
		return strings.TrimSuffix(p.cfg.Origin, "/") + path
	case u.Scheme != "" && u.Host != "":
		return u.Scheme + "://" + u.Host + path
	default:
		return path
	}
}

// linkOptions serializes the applied directives so every link reproduces
// the same query for another page.
func (p *Paginator[T]) linkOptions(limit int, sortBy Orderings, query Query, searchBy, selected []string) string {
	var b strings.Builder

	b.WriteString("&limit=")
	b.WriteString(strconv.Itoa(limit))

	for _, o := range sortBy {
		b.WriteString("&sortBy=" + o.Column + ":" + string(o.Direction))
	}

	if query.Search != "" {
		b.WriteString("&search=" + url.QueryEscape(query.Search))
	}

	if len(query.SearchBy) > 0 {
		for _, column := range searchBy {
			b.WriteString("&searchBy=" + column)
		}
	}

	if len(selected) > 0 {
		b.WriteString("&select=" + strings.Join(selected, ","))
	}

	columns := make([]string, 0, len(query.Filter))
	for column := range query.Filter {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	for _, column := range columns {
		for _, value := range query.Filter[column] {
			b.WriteString("&" + filterParamPrefix + escapeFilterParam(column) + "=" + escapeFilterParam(value))
		}
	}

	return b.String()
}

// filterParamReplacer restores the characters of the filter grammar that are
// safe in a query string.
var filterParamReplacer = strings.NewReplacer("%24", "$", "%3A", ":", "%2C", ",")

func escapeFilterParam(s string) string {
	return filterParamReplacer.Replace(url.QueryEscape(s))
}
