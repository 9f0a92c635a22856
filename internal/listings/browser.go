package listings

import (
	"errors"
	"sync"
)

// PageOutcome tells the caller whether the requested page was served.
type PageOutcome string

const (
	PageOutcomeOK         PageOutcome = "ok"
	PageOutcomeOutOfRange PageOutcome = "page_out_of_range"
)

// Browser is a single viewer's paging state. It remembers the last page that
// was actually served so an out-of-range request leaves the view unchanged.
type Browser struct {
	engine *Engine

	mu           sync.Mutex
	lastCriteria *FilterCriteria
	lastResult   *PagedResult
}

// NewBrowser returns a Browser with no history.
func NewBrowser(engine *Engine) *Browser {
	return &Browser{engine: engine}
}

// RestoreBrowser rebuilds a Browser whose last served page was produced by
// criteria. The cached result is recomputed lazily on the next out-of-range
// request.
func RestoreBrowser(engine *Engine, criteria *FilterCriteria) *Browser {
	b := NewBrowser(engine)
	if criteria != nil {
		restored := criteria.clone()
		b.lastCriteria = &restored
	}
	return b
}

// Query runs criteria against catalog. A page that does not exist yields the
// last served result with PageOutcomeOutOfRange; with no history the first
// page of the new criteria is served instead.
func (b *Browser) Query(catalog []Listing, criteria FilterCriteria) (PagedResult, PageOutcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	result, err := b.engine.Query(catalog, criteria)
	if err == nil {
		b.remember(criteria, result)
		return result.clone(), PageOutcomeOK, nil
	}
	if !errors.Is(err, ErrPageOutOfRange) {
		return PagedResult{}, "", err
	}

	if b.lastResult != nil {
		return b.lastResult.clone(), PageOutcomeOutOfRange, nil
	}

	fallback := criteria.WithPage(1)
	if b.lastCriteria != nil {
		fallback = b.lastCriteria.clone()
	}
	result, err = b.engine.Query(catalog, fallback)
	if errors.Is(err, ErrPageOutOfRange) && fallback.Page != 1 {
		// Restored history no longer fits the catalog.
		fallback = fallback.WithPage(1)
		result, err = b.engine.Query(catalog, fallback)
	}
	if err != nil {
		return PagedResult{}, "", err
	}
	b.remember(fallback, result)
	return result.clone(), PageOutcomeOutOfRange, nil
}

// LastCriteria returns the criteria of the last served page.
func (b *Browser) LastCriteria() (FilterCriteria, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lastCriteria == nil {
		return FilterCriteria{}, false
	}
	return b.lastCriteria.clone(), true
}

// Reset drops the paging history.
func (b *Browser) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCriteria = nil
	b.lastResult = nil
}

func (b *Browser) remember(criteria FilterCriteria, result PagedResult) {
	c := criteria.clone()
	r := result.clone()
	b.lastCriteria = &c
	b.lastResult = &r
}
