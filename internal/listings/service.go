package listings

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

// Service exposes catalog browsing.
type Service interface {
	// Browse queries the catalog through browser, which carries the viewer's
	// paging history. A nil browser behaves as a fresh viewer.
	Browse(ctx context.Context, browser *Browser, criteria FilterCriteria) (PagedResult, PageOutcome, error)
	// NewBrowser returns an empty paging state bound to the service's engine.
	NewBrowser() *Browser
	Cuisines() []string
}

type service struct {
	source  Source
	engine  *Engine
	metrics *metrics.StorefrontMetrics
	logg    *logger.Logger
}

// NewService constructs a listings service instance.
func NewService(source Source, engine *Engine, m *metrics.StorefrontMetrics, logg *logger.Logger) (Service, error) {
	if source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	if engine == nil {
		return nil, fmt.Errorf("query engine required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{source: source, engine: engine, metrics: m, logg: logg}, nil
}

func (s *service) NewBrowser() *Browser {
	return NewBrowser(s.engine)
}

func (s *service) Cuisines() []string {
	return append([]string(nil), AllCuisines...)
}

func (s *service) Browse(ctx context.Context, browser *Browser, criteria FilterCriteria) (PagedResult, PageOutcome, error) {
	if err := criteria.Validate(); err != nil {
		return PagedResult{}, "", err
	}

	catalog, err := s.source.Listings(ctx)
	if err != nil {
		return PagedResult{}, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog unavailable")
	}

	if browser == nil {
		browser = s.NewBrowser()
	}

	started := time.Now()
	result, outcome, err := browser.Query(catalog, criteria)
	if err != nil {
		return PagedResult{}, "", err
	}
	s.metrics.ObserveQuery(criteria.SortKey.String(), string(outcome), time.Since(started))

	if outcome == PageOutcomeOutOfRange {
		warnCtx := s.logg.WithFields(ctx, map[string]any{
			"requested_page": criteria.Page,
			"served_page":    result.CurrentPage,
			"total_pages":    result.TotalPages,
		})
		s.logg.Warn(warnCtx, "listings.page_out_of_range")
	}
	return result, outcome, nil
}
