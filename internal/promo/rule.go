package promo

import (
	"strings"

	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/shopspring/decimal"
)

// Rule maps a promo code to a discount.
type Rule struct {
	Code   string          `json:"code"`
	Kind   enums.PromoKind `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// NormalizeCode is the canonical form codes are matched in.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate checks that the rule can produce a sensible discount.
func (r Rule) Validate() error {
	details := map[string]string{}
	if NormalizeCode(r.Code) == "" {
		details["code"] = "is required"
	}
	switch r.Kind {
	case enums.PromoKindPercentage:
		if !r.Amount.IsPositive() || r.Amount.GreaterThan(decimal.NewFromInt(1)) {
			details["amount"] = "percentage must be in (0, 1]"
		}
	case enums.PromoKindFixed:
		if !r.Amount.IsPositive() {
			details["amount"] = "fixed amount must be greater than zero"
		}
	default:
		details["kind"] = "must be percentage or fixed"
	}
	if len(details) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid promo rule").WithDetails(details)
}

// Discount is the amount the rule takes off subtotal. Percentage rules scale
// with subtotal; fixed rules do not.
func (r Rule) Discount(subtotal decimal.Decimal) decimal.Decimal {
	switch r.Kind {
	case enums.PromoKindPercentage:
		return r.Amount.Mul(subtotal)
	case enums.PromoKindFixed:
		return r.Amount
	default:
		return decimal.Zero
	}
}
