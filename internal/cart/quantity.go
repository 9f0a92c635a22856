package cart

import (
	"math"
	"strconv"
	"strings"
)

// MinQuantity is the floor every line quantity is clamped to.
const MinQuantity = 1

// ParseQuantity reads a quantity typed by the shopper. ok is false when raw is
// not a positive integer; the returned quantity is then MinQuantity.
func ParseQuantity(raw string) (int, bool) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < MinQuantity {
		return MinQuantity, false
	}
	return value, true
}

func clampQuantity(q int) (int, bool) {
	if q < MinQuantity {
		return MinQuantity, true
	}
	return q, false
}

// addQuantity returns a+b, saturating at the int bounds instead of wrapping.
// saturated reports whether the bound was hit.
func addQuantity(a, b int) (sum int, saturated bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt, true
	case b < 0 && a < math.MinInt-b:
		return math.MinInt, true
	}
	return a + b, false
}
