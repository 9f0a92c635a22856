package listings

import (
	"math"

	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// DefaultMaxDeliveryTime is the slider ceiling used when no limit is chosen.
const DefaultMaxDeliveryTime = 60

// FilterCriteria is the full set of user-chosen filter, sort and page inputs.
type FilterCriteria struct {
	SearchTerm       string        `json:"search_term"`
	SelectedCuisines []string      `json:"selected_cuisines"`
	MinRating        float64       `json:"min_rating"`
	MaxDeliveryTime  int           `json:"max_delivery_time"`
	SortKey          enums.SortKey `json:"sort_key"`
	Page             int           `json:"page"`
}

// DefaultCriteria mirrors the "reset filters" state: everything matches,
// relevance order, first page.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		MinRating:       MinRating,
		MaxDeliveryTime: DefaultMaxDeliveryTime,
		SortKey:         enums.SortKeyRelevance,
		Page:            1,
	}
}

// Validate rejects malformed criteria. Page bounds are not checked here; the
// engine reports them as ErrPageOutOfRange.
func (c FilterCriteria) Validate() error {
	details := map[string]string{}
	if math.IsNaN(c.MinRating) || c.MinRating < MinRating || c.MinRating > MaxRating {
		details["min_rating"] = "must be between 0 and 5"
	}
	if c.MaxDeliveryTime < 0 {
		details["max_delivery_time"] = "must not be negative"
	}
	if c.SortKey != "" && !c.SortKey.IsValid() {
		details["sort_key"] = "must be one of relevance, rating, deliveryTime"
	}
	if len(details) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid filter criteria").WithDetails(details)
}

// WithPage returns a copy of c targeting page.
func (c FilterCriteria) WithPage(page int) FilterCriteria {
	out := c.clone()
	out.Page = page
	return out
}

func (c FilterCriteria) clone() FilterCriteria {
	out := c
	if c.SelectedCuisines != nil {
		out.SelectedCuisines = append([]string(nil), c.SelectedCuisines...)
	}
	return out
}
