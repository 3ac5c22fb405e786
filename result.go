package gopaginate

import (
	"encoding/json"
)

// Paginated is a page of items with its pagination metadata.
type Paginated[T any] struct {
	Data       []T  `json:"data"`
	Pagination Meta `json:"pagination"`
}

// Meta describes the page and the directives that produced it.
type Meta struct {
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	// From is the 1-based position of the first item of the page. Only set
	// by OffsetPaginator.
	From     int          `json:"from,omitempty"`
	SortBy   Orderings    `json:"sortBy,omitempty"`
	Search   string       `json:"search,omitempty"`
	SearchBy []string     `json:"searchBy,omitempty"`
	Select   []string     `json:"select,omitempty"`
	Filter   FilterValues `json:"filter,omitempty"`
	Links    []PageLink   `json:"links"`
}

// FilterValues is the applied filter as reported in Meta. A column with a
// single value is encoded as a string, otherwise as a list.
type FilterValues map[string][]string

func (f FilterValues) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}

	out := make(map[string]any, len(f))
	for column, values := range f {
		if len(values) == 1 {
			out[column] = values[0]
		} else {
			out[column] = values
		}
	}

	return json.Marshal(out)
}

func (f *FilterValues) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw == nil {
		*f = nil
		return nil
	}

	ret := make(FilterValues, len(raw))
	for column, value := range raw {
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			ret[column] = []string{single}
			continue
		}

		var list []string
		if err := json.Unmarshal(value, &list); err != nil {
			return err
		}
		ret[column] = list
	}

	*f = ret

	return nil
}

func emptyPage[T any](page, limit int, links []PageLink) *Paginated[T] {
	return &Paginated[T]{
		Data: []T{},
		Pagination: Meta{
			CurrentPage:  page,
			ItemsPerPage: limit,
			Links:        links,
		},
	}
}
