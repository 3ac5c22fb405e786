package gopaginate

import "strconv"

const (
	// NoPagination disables paging when used both as the requested limit and
	// as Config.MaxLimit.
	NoPagination = 0

	DefaultLimit    = 20
	DefaultMaxLimit = 100

	// OffsetDefaultLimit is the page size OffsetPaginator falls back to.
	OffsetDefaultLimit = 10
	// OffsetDefaultPage is the page OffsetPaginator falls back to.
	OffsetDefaultPage = 1
)

// IsNormalizedLimitMax clamps limit into (0, maxLimit]. A non-positive limit
// is replaced by defaultLimit. The boolean reports whether limit was kept as is.
func IsNormalizedLimitMax(limit, defaultLimit, maxLimit int) (int, bool) {
	if limit <= 0 {
		return defaultLimit, false
	} else if limit > maxLimit {
		return maxLimit, false
	}

	return limit, true
}

func NormalizeLimitMax(limit, defaultLimit, maxLimit int) int {
	ret, _ := IsNormalizedLimitMax(limit, defaultLimit, maxLimit)
	return ret
}

// NumberOrDefault returns value unless it is nil or below minValue, in which
// case defaultValue is returned.
func NumberOrDefault(value *int, defaultValue, minValue int) int {
	if value == nil || *value < minValue {
		return defaultValue
	}

	return *value
}

// ResolveNumeric parses a raw query parameter. Anything that is not a
// non-negative integer resolves to defaultValue.
func ResolveNumeric(raw string, defaultValue int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return defaultValue
	}

	return value
}

// totalPages returns ceil(totalItems / limit).
func totalPages(totalItems int64, limit int) int {
	if limit <= 0 {
		return 0
	}

	return int((totalItems + int64(limit) - 1) / int64(limit))
}
