package gopaginate

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const filterParamPrefix = "filter."

// Query is a pagination request. Build it with ParseQuery or by hand.
type Query struct {
	// Page is 1-based. Values below 1 mean the first page.
	Page int
	// Limit is the requested page size. Nil means the configured default.
	Limit    *int
	SortBy   Orderings
	Search   string
	SearchBy []string
	// Filter maps a column to its raw filter values, see DefaultFilter.
	Filter map[string][]string
	Select []string
	// Path is the request URL links are derived from.
	Path string
}

// ParseQuery reads a Query from the request URL parameters:
//
//	page, limit, sortBy=col:dir (repeatable), search, searchBy (repeatable),
//	select=col1,col2 and filter.<column> (repeatable).
//
// Unparseable numbers are treated as unset.
func ParseQuery(u *url.URL) Query {
	if u == nil {
		return Query{}
	}

	values := u.Query()

	q := Query{
		Page:     ResolveNumeric(values.Get("page"), 0),
		Limit:    parseLimit(values.Get("limit")),
		SortBy:   ParseSort(values["sortBy"]),
		Search:   values.Get("search"),
		SearchBy: splitList(values["searchBy"]...),
		Select:   splitList(values["select"]...),
		Path:     u.String(),
	}

	for key, raw := range values {
		column, ok := strings.CutPrefix(key, filterParamPrefix)
		if !ok || column == "" {
			continue
		}

		if q.Filter == nil {
			q.Filter = make(map[string][]string)
		}
		q.Filter[column] = append(q.Filter[column], raw...)
	}

	return q
}

func parseLimit(raw string) *int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return nil
	}

	return &limit
}

// splitList splits comma separated entries, dropping blanks.
func splitList(entries ...string) []string {
	var ret []string
	for _, entry := range entries {
		for _, item := range strings.Split(entry, ",") {
			if item = strings.TrimSpace(item); item != "" {
				ret = append(ret, item)
			}
		}
	}

	if len(ret) == 0 {
		return nil
	}

	return lo.Uniq(ret)
}
