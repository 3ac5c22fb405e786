package gopaginate

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OffsetOptions addresses one page of an OffsetPaginator.
type OffsetOptions struct {
	// Page is 1-based. Negative values fall back to OffsetDefaultPage, zero
	// yields an empty result without querying the source.
	Page int
	// Limit is the page size. Values below 1 fall back to OffsetDefaultLimit.
	Limit int
	// PaginationType defaults to PaginationLimit.
	PaginationType PaginationType
	// Where conditions are AND-ed as one group with the source query.
	Where []clause.Expression
}

// OffsetPaginator pages a source by page number and page size only. Links
// use the fixed "/?page={n}" template.
type OffsetPaginator[T any] struct {
	opts options
}

func NewOffsetPaginator[T any](opts ...Option) *OffsetPaginator[T] {
	return &OffsetPaginator[T]{
		opts: newOptions(opts),
	}
}

// Paginate returns the requested page of src.
func (p *OffsetPaginator[T]) Paginate(ctx context.Context, src Source, in OffsetOptions) (*Paginated[T], error) {
	if p == nil {
		p = NewOffsetPaginator[T]()
	}

	switch in.PaginationType {
	case "", PaginationLimit, PaginationTake:
	default:
		err := newConfigError("paginationType", fmt.Sprintf("invalid pagination type '%s'", in.PaginationType), nil)
		p.opts.logger.Error("offset pagination is misconfigured", zap.Error(err))
		return nil, err
	}

	page, limit := p.resolve(in)
	if page < 1 {
		return emptyPage[T](page, limit, []PageLink{}), nil
	}

	q := src.session(ctx)
	if len(in.Where) > 0 {
		q = q.Where(clause.And(in.Where...))
	}
	base := q.Session(&gorm.Session{})

	items := pageQuery(base, page, limit)

	data, total, err := fetch[T](ctx, items, src.countQuery(base))
	if err != nil {
		return nil, fmt.Errorf("failed to paginate: %w", err)
	}

	pages := totalPages(total, limit)

	return &Paginated[T]{
		Data: data,
		Pagination: Meta{
			CurrentPage:  page,
			ItemsPerPage: limit,
			TotalItems:   total,
			TotalPages:   pages,
			From:         limit*(page-1) + 1,
			Links:        p.opts.links.Build(page, pages, offsetURL),
		},
	}, nil
}

func (p *OffsetPaginator[T]) resolve(in OffsetOptions) (page, limit int) {
	page, limit = in.Page, in.Limit

	if page < 0 {
		p.opts.logger.Warn("invalid page, falling back to default",
			zap.Int("page", page),
			zap.Int("default", OffsetDefaultPage),
		)
		page = OffsetDefaultPage
	}

	if limit < 1 {
		p.opts.logger.Warn("invalid limit, falling back to default",
			zap.Int("limit", limit),
			zap.Int("default", OffsetDefaultLimit),
		)
		limit = OffsetDefaultLimit
	}

	return page, limit
}

func offsetURL(page int) string {
	return fmt.Sprintf("/?page=%d", page)
}

// pageQuery restricts db to the given 1-based page. GORM renders take/skip
// and limit/offset addressing with the same LIMIT/OFFSET clause.
func pageQuery(db *gorm.DB, page, limit int) *gorm.DB {
	return db.Limit(limit).Offset(limit * (page - 1))
}
