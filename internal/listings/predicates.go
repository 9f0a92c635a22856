package listings

import "strings"

// Predicate decides whether a listing stays in the result.
type Predicate func(Listing) bool

// predicatesFor builds the ordered filter chain for c. Each predicate is
// vacuous under its match-all input.
func predicatesFor(c FilterCriteria) []Predicate {
	return []Predicate{
		matchesText(c.SearchTerm),
		matchesAnyCuisine(c.SelectedCuisines),
		ratedAtLeast(c.MinRating),
		deliversWithin(c.MaxDeliveryTime),
	}
}

func matchesText(term string) Predicate {
	needle := strings.ToLower(term)
	return func(l Listing) bool {
		if needle == "" {
			return true
		}
		if strings.Contains(strings.ToLower(l.Name), needle) {
			return true
		}
		for _, tag := range l.Cuisines {
			if strings.Contains(strings.ToLower(tag), needle) {
				return true
			}
		}
		return false
	}
}

func matchesAnyCuisine(selected []string) Predicate {
	return func(l Listing) bool {
		if len(selected) == 0 {
			return true
		}
		for _, want := range selected {
			for _, tag := range l.Cuisines {
				if strings.EqualFold(tag, want) {
					return true
				}
			}
		}
		return false
	}
}

func ratedAtLeast(min float64) Predicate {
	return func(l Listing) bool {
		return l.Rating >= min
	}
}

func deliversWithin(maxMinutes int) Predicate {
	return func(l Listing) bool {
		return l.DeliveryTime.HighMinutes <= maxMinutes
	}
}

func matchesAll(l Listing, chain []Predicate) bool {
	for _, p := range chain {
		if !p(l) {
			return false
		}
	}
	return true
}
