package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyValidate(t *testing.T) {
	valid := Property{Title: "Shop", Type: PropertyTypeShop, Location: "Margao", City: "South Goa", Price: 3500000}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(p *Property)
	}{
		{"missing title", func(p *Property) { p.Title = "" }},
		{"unknown type", func(p *Property) { p.Type = "castle" }},
		{"missing location", func(p *Property) { p.Location = "" }},
		{"missing city", func(p *Property) { p.City = "" }},
		{"zero price", func(p *Property) { p.Price = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestPropertyTypeValid(t *testing.T) {
	for _, pt := range PropertyTypes {
		assert.True(t, pt.Valid(), pt)
	}
	assert.False(t, PropertyType("bungalow").Valid())
}

func TestJSONColumnScan(t *testing.T) {
	var amenities JSONArray
	require.NoError(t, amenities.Scan([]byte(`["Parking","Garden"]`)))
	assert.Equal(t, JSONArray{"Parking", "Garden"}, amenities)

	var owner OwnerContact
	require.NoError(t, owner.Scan(`{"name":"John Doe","phone":"9876543210"}`))
	assert.Equal(t, "John Doe", owner.Name)
	assert.Error(t, owner.Scan(42))

	var msgs Messages
	require.NoError(t, msgs.Scan(nil))
	assert.Empty(t, msgs)
}
