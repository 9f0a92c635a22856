package cart

import (
	"math"
	"testing"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFee = decimal.RequireFromString("5.00")

func newReferenceStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(testFee, ReferenceLines()...)
	require.NoError(t, err)
	return store
}

func quantities(lines []Line) map[string]int {
	out := make(map[string]int, len(lines))
	for _, l := range lines {
		out[l.ID] = l.Quantity
	}
	return out
}

func lineIDs(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.ID)
	}
	return out
}

func TestStoreSubtotalAndFee(t *testing.T) {
	store := newReferenceStore(t)

	assert.True(t, decimal.RequireFromString("20.74").Equal(store.Subtotal()), "subtotal %s", store.Subtotal())
	assert.True(t, testFee.Equal(store.DeliveryFee()))
	assert.Equal(t, 4, store.ItemCount())
}

func TestStoreSetQuantity(t *testing.T) {
	store := newReferenceStore(t)

	res := store.SetQuantity("item1", 3)
	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, 3, quantities(res.Lines)["item1"])

	res = store.SetQuantity("item1", 0)
	assert.Equal(t, OutcomeCorrected, res.Outcome)
	assert.Equal(t, 1, quantities(res.Lines)["item1"])

	res = store.SetQuantity("item2", -4)
	assert.Equal(t, OutcomeCorrected, res.Outcome)
	assert.Equal(t, 1, quantities(res.Lines)["item2"])

	before := store.Lines()
	res = store.SetQuantity("missing", 5)
	assert.Equal(t, OutcomeNoop, res.Outcome)
	assert.Equal(t, before, res.Lines)
}

func TestStoreSetQuantityInput(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		outcome Outcome
	}{
		{raw: "4", want: 4, outcome: OutcomeApplied},
		{raw: " 7 ", want: 7, outcome: OutcomeApplied},
		{raw: "abc", want: 1, outcome: OutcomeCorrected},
		{raw: "", want: 1, outcome: OutcomeCorrected},
		{raw: "0", want: 1, outcome: OutcomeCorrected},
		{raw: "2.5", want: 1, outcome: OutcomeCorrected},
		{raw: "NaN", want: 1, outcome: OutcomeCorrected},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			store := newReferenceStore(t)
			res := store.SetQuantityInput("item2", tc.raw)
			assert.Equal(t, tc.outcome, res.Outcome)
			assert.Equal(t, tc.want, quantities(res.Lines)["item2"])
		})
	}

	store := newReferenceStore(t)
	assert.Equal(t, OutcomeNoop, store.SetQuantityInput("missing", "3").Outcome)
}

func TestStoreIncrementQuantity(t *testing.T) {
	store := newReferenceStore(t)

	res := store.IncrementQuantity("item2", 1)
	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, 3, quantities(res.Lines)["item2"])

	res = store.IncrementQuantity("item2", -1)
	assert.Equal(t, 2, quantities(res.Lines)["item2"])

	res = store.IncrementQuantity("item2", -5)
	assert.Equal(t, OutcomeCorrected, res.Outcome)
	assert.Equal(t, 1, quantities(res.Lines)["item2"])
	assert.Len(t, res.Lines, 3, "floor never removes the line")

	assert.Equal(t, OutcomeNoop, store.IncrementQuantity("missing", 1).Outcome)
}

func TestStoreIncrementQuantitySaturates(t *testing.T) {
	store := newReferenceStore(t)

	res := store.IncrementQuantity("item2", math.MaxInt)
	assert.Equal(t, OutcomeCorrected, res.Outcome)
	assert.Equal(t, math.MaxInt, quantities(res.Lines)["item2"])
	assert.True(t, store.Subtotal().IsPositive())

	res = store.IncrementQuantity("item2", 1)
	assert.Equal(t, math.MaxInt, quantities(res.Lines)["item2"])

	res = store.IncrementQuantity("item1", math.MinInt)
	assert.Equal(t, OutcomeCorrected, res.Outcome)
	assert.Equal(t, 1, quantities(res.Lines)["item1"])

	assert.Equal(t, math.MaxInt, store.ItemCount())
	_, err := NewStore(testFee, store.Lines()...)
	require.NoError(t, err, "saturated lines must still restore")
}

func TestStoreRemoveLine(t *testing.T) {
	store := newReferenceStore(t)

	res := store.RemoveLine("item2")
	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, []string{"item1", "item3"}, lineIDs(res.Lines))

	assert.Equal(t, OutcomeNoop, store.RemoveLine("item2").Outcome)

	store.RemoveLine("item1")
	store.RemoveLine("item3")
	assert.True(t, store.IsEmpty())
	assert.True(t, store.Subtotal().IsZero())
	assert.True(t, store.DeliveryFee().IsZero())
	assert.Equal(t, 0, store.ItemCount())
}

func TestStoreAddLine(t *testing.T) {
	store, err := NewStore(testFee)
	require.NoError(t, err)
	assert.True(t, store.DeliveryFee().IsZero())

	res, err := store.AddLine(Line{ID: "a", Name: "Fries", UnitPrice: decimal.RequireFromString("2.50"), Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, res.Outcome)

	res, err = store.AddLine(Line{ID: "a", Name: "Fries", UnitPrice: decimal.RequireFromString("2.50")})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCorrected, res.Outcome)
	assert.Equal(t, 3, quantities(res.Lines)["a"])

	_, err = store.AddLine(Line{ID: "b", Name: "Free", UnitPrice: decimal.Zero, Quantity: 1})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = store.AddLine(Line{Name: "No id", UnitPrice: decimal.NewFromInt(1), Quantity: 1})
	assert.Error(t, err)
	assert.Len(t, store.Lines(), 1)
}

func TestStoreAddLineMergeSaturates(t *testing.T) {
	store := newReferenceStore(t)

	res, err := store.AddLine(Line{ID: "item2", Name: "Garlic Bread", UnitPrice: decimal.RequireFromString("1.50"), Quantity: math.MaxInt})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCorrected, res.Outcome)
	assert.Equal(t, math.MaxInt, quantities(res.Lines)["item2"])
	assert.True(t, store.Subtotal().IsPositive())

	_, err = NewStore(testFee, store.Lines()...)
	require.NoError(t, err, "merged lines must still restore")
}

func TestStoreLinesAreCopies(t *testing.T) {
	store := newReferenceStore(t)
	lines := store.Lines()
	lines[0].Quantity = 99

	got, ok := store.Line("item1")
	require.True(t, ok)
	assert.Equal(t, 1, got.Quantity)
}

func TestNewStoreValidatesLines(t *testing.T) {
	_, err := NewStore(decimal.NewFromInt(-1))
	assert.Error(t, err)

	_, err = NewStore(testFee, Line{ID: "x", UnitPrice: decimal.NewFromInt(1), Quantity: 0})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	dup := ReferenceLines()[0]
	_, err = NewStore(testFee, dup, dup)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestParseQuantity(t *testing.T) {
	q, ok := ParseQuantity("12")
	assert.True(t, ok)
	assert.Equal(t, 12, q)

	q, ok = ParseQuantity("-3")
	assert.False(t, ok)
	assert.Equal(t, MinQuantity, q)
}
