package sessionsdto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AddLineRequest adds a product line to the cart. UnitPrice is a decimal
// string so no precision is lost in transit.
type AddLineRequest struct {
	ID        string `json:"id" validate:"required,max=64"`
	Name      string `json:"name" validate:"required,max=200"`
	UnitPrice string `json:"unit_price" validate:"required,money"`
	Quantity  int    `json:"quantity"`
	ImageRef  string `json:"image_ref" validate:"max=500"`
}

// SetQuantityRequest carries the raw quantity text. Unparseable text is
// corrected to the minimum rather than rejected.
type SetQuantityRequest struct {
	Quantity RawQuantity `json:"quantity"`
}

type IncrementRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type ApplyPromoRequest struct {
	Code string `json:"code" validate:"max=64"`
}

// RawQuantity accepts either a JSON number or a JSON string and keeps the
// text as typed.
type RawQuantity string

func (q *RawQuantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = RawQuantity(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("quantity must be a number or string: %w", err)
	}
	*q = RawQuantity(n.String())
	return nil
}
