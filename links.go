package gopaginate

import (
	"math"
	"strconv"
)

const (
	DefaultPreviousLabel = "&laquo; Previous"
	DefaultNextLabel     = "Next &raquo;"

	// windowFullCount is the largest page count rendered without collapsing.
	windowFullCount = 7
)

// PageLink is a single clickable pagination link.
type PageLink struct {
	URL    string `json:"url"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
	Page   int    `json:"page"`
}

// URLFunc renders the URL of the given page.
type URLFunc func(page int) string

// LinkBuilder builds the links of a result page. Both paginators accept a
// custom implementation through WithLinkBuilder.
type LinkBuilder interface {
	Build(currentPage, totalPages int, url URLFunc) []PageLink
}

// WindowedLinks is the default LinkBuilder. It renders the previous link,
// the Window around the current page and the next link.
type WindowedLinks struct {
	PreviousLabel string
	NextLabel     string
}

func NewWindowedLinks() *WindowedLinks {
	return &WindowedLinks{
		PreviousLabel: DefaultPreviousLabel,
		NextLabel:     DefaultNextLabel,
	}
}

// Build implements LinkBuilder.
//
// The previous link is present iff currentPage > 1, the next link iff
// currentPage < totalPages.
func (w *WindowedLinks) Build(currentPage, totalPages int, url URLFunc) []PageLink {
	if w == nil {
		w = NewWindowedLinks()
	}

	pages := w.Pages(currentPage, totalPages, url)
	links := make([]PageLink, 0, len(pages)+2)

	if currentPage > 1 {
		links = append(links, PageLink{
			URL:    url(currentPage - 1),
			Label:  w.PreviousLabel,
			Active: false,
			Page:   currentPage - 1,
		})
	}

	links = append(links, pages...)

	if currentPage < totalPages {
		links = append(links, PageLink{
			URL:    url(currentPage + 1),
			Label:  w.NextLabel,
			Active: false,
			Page:   currentPage + 1,
		})
	}

	return links
}

// Pages renders the Window without previous/next links.
func (w *WindowedLinks) Pages(currentPage, pageCount int, url URLFunc) []PageLink {
	window := Window(currentPage, pageCount)

	ret := make([]PageLink, 0, len(window))
	for _, page := range window {
		ret = append(ret, PageLink{
			URL:    url(page),
			Label:  strconv.Itoa(page),
			Active: page == currentPage,
			Page:   page,
		})
	}

	return ret
}

var _ LinkBuilder = (*WindowedLinks)(nil)

// Window returns the ordered page numbers to render for currentPage out of
// pageCount pages.
//
// Up to 7 pages are all rendered. Above that a window of 3 pages (when the
// current page is safely inside) or 5 pages (near either end) is rendered,
// and the first and last pages are always included. The caller decides
// whether to draw an ellipsis between a boundary page and the window.
//
// Example: Window(5, 10) returns [1 4 5 6 10].
func Window(currentPage, pageCount int) []int {
	if pageCount < 1 {
		return nil
	}

	delta := windowFullCount
	if pageCount > windowFullCount {
		delta = 4
		if currentPage > 4 && currentPage < pageCount-3 {
			delta = 2
		}
	}

	start := roundHalfUp(float64(currentPage) - float64(delta)/2)
	end := roundHalfUp(float64(currentPage) + float64(delta)/2)

	// Avoid a lone page between the window and a boundary page.
	if start-1 == 1 || end+1 == pageCount {
		start++
		end++
	}

	var pages []int
	if currentPage > delta {
		pages = pageRange(max(1, min(start, pageCount-delta)), min(end, pageCount))
	} else {
		pages = pageRange(1, min(pageCount, delta+1))
	}

	if len(pages) == 0 || pages[0] != 1 {
		pages = append([]int{1}, pages...)
	}

	if pages[len(pages)-1] < pageCount {
		pages = append(pages, pageCount)
	}

	return pages
}

func pageRange(start, end int) []int {
	if end < start {
		return nil
	}

	ret := make([]int, 0, end-start+1)
	for page := start; page <= end; page++ {
		ret = append(ret, page)
	}

	return ret
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
