package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-agent/internal/model"
)

func TestParseQuery_FullPhrase(t *testing.T) {
	f := ParseQuery("3 BHK flat under 50 lakh in Panaji")

	require.NotNil(t, f.Type)
	assert.Equal(t, model.PropertyTypeFlat, *f.Type)
	require.NotNil(t, f.Bedrooms)
	assert.Equal(t, 3, *f.Bedrooms)
	require.NotNil(t, f.Price)
	assert.Equal(t, int64(5_000_000), f.Price.LTE)
	require.NotNil(t, f.Location)
	assert.Equal(t, "panaji", *f.Location)
	assert.Nil(t, f.ForSale)
	assert.True(t, f.IsAvailable)
}

func TestParseQuery_RentInBaga(t *testing.T) {
	f := ParseQuery("1BHK for rent in Baga")

	require.NotNil(t, f.Bedrooms)
	assert.Equal(t, 1, *f.Bedrooms)
	require.NotNil(t, f.ForSale)
	assert.False(t, *f.ForSale)
	require.NotNil(t, f.Location)
	assert.Equal(t, "baga", *f.Location)
}

func TestParseQuery_PropertyType(t *testing.T) {
	tests := []struct {
		query string
		want  model.PropertyType
	}{
		{"looking for an apartment", model.PropertyTypeFlat},
		{"2bhk please", model.PropertyTypeFlat},
		{"a BUNGALOW near the beach", model.PropertyTypeHouse},
		{"villa with pool", model.PropertyTypeHouse},
		{"agricultural land", model.PropertyTypePlot},
		{"corner plot", model.PropertyTypePlot},
		{"commercial space", model.PropertyTypeShop},
		{"showroom on main road", model.PropertyTypeShop},
		{"shared workspace", model.PropertyTypeOffice},
		{"office", model.PropertyTypeOffice},
		// two groups present: the earlier-declared group wins
		{"house or apartment", model.PropertyTypeFlat},
		{"office in a shop complex", model.PropertyTypeShop},
		{"plot with a small house", model.PropertyTypeHouse},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			f := ParseQuery(tt.query)
			require.NotNil(t, f.Type)
			assert.Equal(t, tt.want, *f.Type)
		})
	}

	assert.Nil(t, ParseQuery("something nice near the sea").Type)
}

func TestParseQuery_Price(t *testing.T) {
	tests := []struct {
		query string
		want  int64
	}{
		{"under 50 lakh", 5_000_000},
		{"Below 2 Crore", 20_000_000},
		{"under 25 thousand", 25_000},
		{"under25lakh", 2_500_000},
		{"80 lakh budget", 8_000_000},
		// "under" phrasing is tried before "below"
		{"below 1 crore but ideally under 90 lakh", 9_000_000},
		{"below 1 crore, 70 lakh budget", 10_000_000},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			f := ParseQuery(tt.query)
			require.NotNil(t, f.Price)
			assert.Equal(t, tt.want, f.Price.LTE)
		})
	}

	assert.Nil(t, ParseQuery("under 50").Price, "unit word is required")
	assert.Nil(t, ParseQuery("cheap flat").Price)
	assert.Nil(t, ParseQuery("under 99999999999999999999 crore").Price, "overflow is not a match")
}

func TestParseQuery_LocationPrecedence(t *testing.T) {
	f := ParseQuery("flat in North Goa")
	require.NotNil(t, f.Location)
	assert.Equal(t, "goa", *f.Location, "goa is listed before north goa")

	f = ParseQuery("villa in anjuna or calangute")
	require.NotNil(t, f.Location)
	assert.Equal(t, "calangute", *f.Location)

	assert.Nil(t, ParseQuery("flat in Mumbai").Location)
}

func TestParseQuery_Intent(t *testing.T) {
	tests := []struct {
		query string
		want  *bool
	}{
		{"flat for rent", boolPtr(false)},
		{"rental house", boolPtr(false)},
		{"want to buy a plot", boolPtr(true)},
		{"house for sale", boolPtr(true)},
		{"purchase a shop", boolPtr(true)},
		{"buy or rent", boolPtr(false)},
		{"office in Ponda", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuery(tt.query).ForSale)
		})
	}
}

func TestParseQuery_EmptyAndIdempotent(t *testing.T) {
	assert.Equal(t, model.NewFilter(), ParseQuery(""))

	q := "2 BHK apartment for rent under 30 thousand in Mapusa"
	assert.Equal(t, ParseQuery(q), ParseQuery(q))
}

func TestFirstMatch(t *testing.T) {
	rules := []matcher[string]{
		containsAny("a", "alpha"),
		containsAny("b", "beta", "alp"),
	}
	v, ok := firstMatch(rules, "alpha beta")
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = firstMatch(rules, "gamma")
	assert.False(t, ok)
	assert.Empty(t, v)
}

func boolPtr(v bool) *bool {
	return &v
}
