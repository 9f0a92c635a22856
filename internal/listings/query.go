package listings

import (
	"cmp"
	"errors"
	"slices"

	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/angelmondragon/storefront/pkg/pagination"
)

// ErrPageOutOfRange is returned when the requested page does not exist for
// the filtered result. It is recoverable: callers keep their previous page.
var ErrPageOutOfRange = errors.New("requested page is out of range")

// PagedResult is one page of filtered, sorted listings.
type PagedResult struct {
	Items       []Listing `json:"items"`
	CurrentPage int       `json:"current_page"`
	TotalPages  int       `json:"total_pages"`
	TotalCount  int       `json:"total_count"`
}

func (r PagedResult) clone() PagedResult {
	out := r
	out.Items = make([]Listing, len(r.Items))
	for i, item := range r.Items {
		out.Items[i] = item.clone()
	}
	return out
}

// Engine evaluates filter criteria against a catalog snapshot. It holds no
// per-query state and is safe for concurrent use.
type Engine struct {
	pageSize int
}

// NewEngine builds an Engine; non-positive page sizes fall back to the default.
func NewEngine(pageSize int) *Engine {
	return &Engine{pageSize: pagination.NormalizePageSize(pageSize)}
}

// PageSize reports how many listings fit on one page.
func (e *Engine) PageSize() int {
	return e.pageSize
}

// Query filters, sorts and paginates catalog without modifying it.
// On ErrPageOutOfRange the returned result carries the totals but no items.
func (e *Engine) Query(catalog []Listing, criteria FilterCriteria) (PagedResult, error) {
	if err := criteria.Validate(); err != nil {
		return PagedResult{}, err
	}

	matched := Filter(catalog, criteria)
	SortListings(matched, criteria.SortKey)

	total := len(matched)
	totalPages := pagination.TotalPages(total, e.pageSize)
	if !pagination.InRange(criteria.Page, totalPages) {
		return PagedResult{Items: []Listing{}, TotalPages: totalPages, TotalCount: total}, ErrPageOutOfRange
	}

	start, end := pagination.Bounds(criteria.Page, e.pageSize, total)
	items := make([]Listing, 0, end-start)
	for _, l := range matched[start:end] {
		items = append(items, l.clone())
	}

	return PagedResult{
		Items:       items,
		CurrentPage: criteria.Page,
		TotalPages:  totalPages,
		TotalCount:  total,
	}, nil
}

// Filter returns the listings satisfying every predicate of criteria, in
// catalog order. The returned slice is newly allocated.
func Filter(catalog []Listing, criteria FilterCriteria) []Listing {
	chain := predicatesFor(criteria)
	out := make([]Listing, 0, len(catalog))
	for _, l := range catalog {
		if matchesAll(l, chain) {
			out = append(out, l)
		}
	}
	return out
}

// SortListings orders items in place. Relevance keeps catalog order and every
// key preserves the relative order of ties.
func SortListings(items []Listing, key enums.SortKey) {
	switch key {
	case enums.SortKeyRating:
		slices.SortStableFunc(items, func(a, b Listing) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case enums.SortKeyDeliveryTime:
		slices.SortStableFunc(items, func(a, b Listing) int {
			return cmp.Compare(a.DeliveryTime.LowMinutes, b.DeliveryTime.LowMinutes)
		})
	}
}
