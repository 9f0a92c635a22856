package enums

import (
	"fmt"
	"strings"
)

// SortKey selects the ordering applied to filtered listings.
type SortKey string

const (
	SortKeyRelevance    SortKey = "relevance"
	SortKeyRating       SortKey = "rating"
	SortKeyDeliveryTime SortKey = "deliveryTime"
)

var validSortKeys = []SortKey{
	SortKeyRelevance,
	SortKeyRating,
	SortKeyDeliveryTime,
}

// String implements fmt.Stringer.
func (s SortKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortKey.
func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey. Empty input maps to relevance.
func ParseSortKey(value string) (SortKey, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return SortKeyRelevance, nil
	}
	for _, candidate := range validSortKeys {
		if strings.EqualFold(string(candidate), trimmed) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
