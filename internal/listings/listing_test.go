package listings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeliveryTime(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  DeliveryTime
	}{
		{name: "range", input: "25-35 min", want: DeliveryTime{LowMinutes: 25, HighMinutes: 35}},
		{name: "single", input: "30 min", want: DeliveryTime{LowMinutes: 30, HighMinutes: 30}},
		{name: "spacing and case", input: " 15 - 25 MIN ", want: DeliveryTime{LowMinutes: 15, HighMinutes: 25}},
		{name: "no unit", input: "20-30", want: DeliveryTime{LowMinutes: 20, HighMinutes: 30}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDeliveryTime(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, bad := range []string{"", "min", "abc", "40-30 min", "20-x min", "-5 min"} {
		_, err := ParseDeliveryTime(bad)
		assert.Errorf(t, err, "expected %q to fail", bad)
	}
}

func TestDeliveryTimeString(t *testing.T) {
	assert.Equal(t, "25-35 min", DeliveryTime{25, 35}.String())
	assert.Equal(t, "30 min", DeliveryTime{30, 30}.String())
}

func TestListingValidate(t *testing.T) {
	valid := Listing{ID: "1", Name: "Pizza Palace", Rating: 4.5, DeliveryTime: DeliveryTime{25, 35}}
	require.NoError(t, valid.Validate())

	noID := valid
	noID.ID = " "
	assert.Error(t, noID.Validate())

	badRating := valid
	badRating.Rating = 5.1
	assert.Error(t, badRating.Validate())

	inverted := valid
	inverted.DeliveryTime = DeliveryTime{40, 30}
	assert.Error(t, inverted.Validate())
}

func TestReferenceCatalogIsValid(t *testing.T) {
	catalog := ReferenceCatalog()
	require.Len(t, catalog, 10)

	src, err := NewStaticSource(catalog)
	require.NoError(t, err)
	got, err := src.Listings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, catalog, got)
}

func TestStaticSourceRejectsDuplicates(t *testing.T) {
	catalog := ReferenceCatalog()
	catalog = append(catalog, catalog[0])
	_, err := NewStaticSource(catalog)
	assert.Error(t, err)
}

func TestStaticSourceCopiesInput(t *testing.T) {
	catalog := ReferenceCatalog()
	src, err := NewStaticSource(catalog)
	require.NoError(t, err)

	catalog[0].Name = "mutated"
	catalog[0].Cuisines[0] = "mutated"

	got, _ := src.Listings(context.Background())
	assert.Equal(t, "Pizza Palace", got[0].Name)
	assert.Equal(t, "Pizza", got[0].Cuisines[0])
}
