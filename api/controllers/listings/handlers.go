package listings

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/api/responses"
	listingsvc "github.com/angelmondragon/storefront/internal/listings"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// ListingsPage is one page of listings plus how the requested page resolved.
type ListingsPage struct {
	listingsvc.PagedResult
	Outcome listingsvc.PageOutcome `json:"outcome"`
}

// browser is the slice of the checkout service the listing routes need.
type browser interface {
	Browse(ctx context.Context, sessionID string, criteria listingsvc.FilterCriteria) (listingsvc.PagedResult, listingsvc.PageOutcome, error)
}

// ListingsBrowse filters, sorts and pages the catalog. With an X-Session-Id
// header the paging history lives on that session.
func ListingsBrowse(svc browser, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "listings service unavailable"))
			return
		}

		criteria, err := criteriaFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, outcome, err := svc.Browse(r.Context(), middleware.SessionIDFromContext(r.Context()), criteria)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, ListingsPage{PagedResult: result, Outcome: outcome})
	}
}

// CuisinesList returns the fixed cuisine tags offered as filters.
func CuisinesList(svc listingsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeInternal, "listings service unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string][]string{"cuisines": svc.Cuisines()})
	}
}
