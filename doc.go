// Package gopaginate provides page/limit pagination for GORM queries.
//
// Overview
//
// gopaginate offers two paginators sharing one link builder:
//   - OffsetPaginator: pages a source by page number and page size only and
//     renders links with the fixed "/?page={n}" template.
//   - Paginator: additionally applies sorting, searching, filtering, column
//     selection and relation loading from a Query, restricted by the
//     allow-lists of a Config, and renders self-sufficient links derived from
//     the request URL.
//
// Key concepts
//   - Source: a repository (Repository) or a pre-built query (QueryBuilder).
//   - Window: the page numbers rendered around the current page.
//   - LinkBuilder: turns a Window into PageLink values, injectable with
//     WithLinkBuilder.
//   - FilterApplier: compiles "filter.<column>" values into predicates,
//     injectable with WithFilter.
//
// Invalid request input never fails a call, it is normalized or dropped.
// An invalid Config fails with a *ConfigError matching ErrMisconfigured.
//
// The ginpaginate and echopaginate packages build a Query from a gin or echo
// request.
package gopaginate
