package listings

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinRating = 0.0
	MaxRating = 5.0
)

// DeliveryTime is the advertised delivery window in minutes.
type DeliveryTime struct {
	LowMinutes  int `json:"low_minutes"`
	HighMinutes int `json:"high_minutes"`
}

// String renders the window the way storefront cards show it, e.g. "25-35 min".
func (d DeliveryTime) String() string {
	if d.LowMinutes == d.HighMinutes {
		return fmt.Sprintf("%d min", d.LowMinutes)
	}
	return fmt.Sprintf("%d-%d min", d.LowMinutes, d.HighMinutes)
}

// ParseDeliveryTime reads "25-35 min" (or "30 min") into a DeliveryTime.
func ParseDeliveryTime(raw string) (DeliveryTime, error) {
	value := strings.TrimSpace(strings.ToLower(raw))
	value = strings.TrimSpace(strings.TrimSuffix(value, "min"))
	if value == "" {
		return DeliveryTime{}, fmt.Errorf("delivery time %q is empty", raw)
	}

	parts := strings.SplitN(value, "-", 2)
	low, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return DeliveryTime{}, fmt.Errorf("delivery time %q: invalid low bound: %w", raw, err)
	}
	high := low
	if len(parts) == 2 {
		high, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return DeliveryTime{}, fmt.Errorf("delivery time %q: invalid high bound: %w", raw, err)
		}
	}

	window := DeliveryTime{LowMinutes: low, HighMinutes: high}
	if err := window.validate(); err != nil {
		return DeliveryTime{}, fmt.Errorf("delivery time %q: %w", raw, err)
	}
	return window, nil
}

func (d DeliveryTime) validate() error {
	if d.LowMinutes < 0 {
		return fmt.Errorf("low bound %d is negative", d.LowMinutes)
	}
	if d.LowMinutes > d.HighMinutes {
		return fmt.Errorf("low bound %d exceeds high bound %d", d.LowMinutes, d.HighMinutes)
	}
	return nil
}

// Listing is one catalog entry (a restaurant).
type Listing struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ImageURL     string       `json:"image_url,omitempty"`
	Cuisines     []string     `json:"cuisines"`
	Rating       float64      `json:"rating"`
	DeliveryTime DeliveryTime `json:"delivery_time"`
}

// Validate checks the listing invariants the query engine relies on.
func (l Listing) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("listing id is required")
	}
	if l.Rating < MinRating || l.Rating > MaxRating {
		return fmt.Errorf("listing %s: rating %.2f outside [%.0f,%.0f]", l.ID, l.Rating, MinRating, MaxRating)
	}
	if err := l.DeliveryTime.validate(); err != nil {
		return fmt.Errorf("listing %s: %w", l.ID, err)
	}
	return nil
}

func (l Listing) clone() Listing {
	out := l
	if l.Cuisines != nil {
		out.Cuisines = append([]string(nil), l.Cuisines...)
	}
	return out
}
