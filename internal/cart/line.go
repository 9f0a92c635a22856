package cart

import (
	"strings"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/shopspring/decimal"
)

// Line is one orderable item in the cart.
type Line struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageRef  string          `json:"image_ref,omitempty"`
}

// Total is unit price times quantity.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Validate checks the invariants a stored line must hold.
func (l Line) Validate() error {
	details := map[string]string{}
	if strings.TrimSpace(l.ID) == "" {
		details["id"] = "is required"
	}
	if !l.UnitPrice.IsPositive() {
		details["unit_price"] = "must be greater than zero"
	}
	if l.Quantity < MinQuantity {
		details["quantity"] = "must be at least 1"
	}
	if len(details) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid cart line").WithDetails(details)
}

// ReferenceLines is the sample cart shown to new visitors.
func ReferenceLines() []Line {
	return []Line{
		{ID: "item1", Name: "Margherita Pizza", UnitPrice: decimal.RequireFromString("12.99"), Quantity: 1, ImageRef: "https://images.unsplash.com/photo-1574071318508-1cdbab80d002"},
		{ID: "item2", Name: "Pepsi Can (330ml)", UnitPrice: decimal.RequireFromString("1.50"), Quantity: 2, ImageRef: "https://images.unsplash.com/photo-1553480139-a919847539b6"},
		{ID: "item3", Name: "Gourmet Side Salad", UnitPrice: decimal.RequireFromString("4.75"), Quantity: 1, ImageRef: "https://images.unsplash.com/photo-1512621776951-a57141f2eefd"},
	}
}
