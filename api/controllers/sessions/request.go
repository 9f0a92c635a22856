package sessions

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	sessionsdto "github.com/angelmondragon/storefront/api/controllers/sessions/dto"
	"github.com/angelmondragon/storefront/internal/cart"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

func toCartLine(payload sessionsdto.AddLineRequest) (cart.Line, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(payload.UnitPrice))
	if err != nil {
		return cart.Line{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit price").
			WithDetails(map[string]string{"unit_price": "must be a decimal amount"})
	}
	return cart.Line{
		ID:        strings.TrimSpace(payload.ID),
		Name:      strings.TrimSpace(payload.Name),
		UnitPrice: price,
		Quantity:  payload.Quantity,
		ImageRef:  strings.TrimSpace(payload.ImageRef),
	}, nil
}

func sessionIDParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "sessionID"))
}

func lineIDParam(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "lineID"))
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "line id required")
	}
	return id, nil
}

func sampleCartParam(r *http.Request) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("sample"))
	if raw == "" {
		return false, nil
	}
	sample, err := strconv.ParseBool(raw)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "sample must be a boolean").
			WithDetails(map[string]any{"field": "sample"})
	}
	return sample, nil
}
