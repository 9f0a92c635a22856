package enums

import (
	"fmt"
	"strings"
)

// PromoKind distinguishes percentage-of-subtotal rules from fixed amounts.
type PromoKind string

const (
	PromoKindPercentage PromoKind = "percentage"
	PromoKindFixed      PromoKind = "fixed"
)

var validPromoKinds = []PromoKind{
	PromoKindPercentage,
	PromoKindFixed,
}

// String implements fmt.Stringer.
func (k PromoKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known PromoKind.
func (k PromoKind) IsValid() bool {
	for _, candidate := range validPromoKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParsePromoKind converts raw input into a PromoKind.
func ParsePromoKind(value string) (PromoKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validPromoKinds {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid promo kind %q", value)
}
