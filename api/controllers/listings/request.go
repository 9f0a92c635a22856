package listings

import (
	"net/http"

	"github.com/angelmondragon/storefront/api/validators"
	listingsvc "github.com/angelmondragon/storefront/internal/listings"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

const (
	maxSearchLen     = 120
	maxCuisineLen    = 32
	maxCuisines      = 20
	maxDeliveryLimit = 600
	maxPage          = 10000
)

// criteriaFromQuery maps the listing query string onto filter criteria.
// Missing parameters take the reset-filters defaults. Page bounds are left to
// the engine so a stale page reports page_out_of_range instead of a 400.
func criteriaFromQuery(r *http.Request) (listingsvc.FilterCriteria, error) {
	criteria := listingsvc.DefaultCriteria()
	query := r.URL.Query()

	criteria.SearchTerm = validators.SanitizeString(query.Get("q"), maxSearchLen)

	cuisines, err := validators.ParseQueryList(r, "cuisine", maxCuisines, maxCuisineLen)
	if err != nil {
		return listingsvc.FilterCriteria{}, err
	}
	criteria.SelectedCuisines = cuisines

	if criteria.MinRating, err = validators.ParseQueryFloat(r, "min_rating", listingsvc.MinRating, listingsvc.MinRating, listingsvc.MaxRating); err != nil {
		return listingsvc.FilterCriteria{}, err
	}
	if criteria.MaxDeliveryTime, err = validators.ParseQueryInt(r, "max_delivery", listingsvc.DefaultMaxDeliveryTime, 0, maxDeliveryLimit); err != nil {
		return listingsvc.FilterCriteria{}, err
	}

	sortKey, err := enums.ParseSortKey(query.Get("sort"))
	if err != nil {
		return listingsvc.FilterCriteria{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort key").
			WithDetails(map[string]any{"field": "sort"})
	}
	criteria.SortKey = sortKey

	if criteria.Page, err = validators.ParseQueryInt(r, "page", 1, 0, maxPage); err != nil {
		return listingsvc.FilterCriteria{}, err
	}
	return criteria, nil
}
