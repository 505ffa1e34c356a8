package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-agent/internal/model"
	"realestate-agent/internal/repository"
)

func TestDefault(t *testing.T) {
	props := Default()
	require.Len(t, props, 5)

	first := props[0]
	assert.Equal(t, "Luxury 2BHK Flat in North Goa", first.Title)
	assert.Equal(t, model.PropertyTypeFlat, first.Type)
	require.NotNil(t, first.Bedrooms)
	assert.Equal(t, 2, *first.Bedrooms)
	require.NotNil(t, first.AreaValue)
	assert.InDelta(t, 1200, *first.AreaValue, 1e-9)
	assert.Equal(t, "9876543210", first.Owner.Phone)
	assert.True(t, first.IsAvailable)

	shop := props[2]
	assert.Nil(t, shop.Bedrooms)

	rent := props[3]
	assert.False(t, rent.ForSale)
	assert.Equal(t, int64(25_000), rent.Price)

	assert.Equal(t, model.PropertyTypeVilla, props[4].Type)
}

func TestLoad_Rejects(t *testing.T) {
	_, err := Load(strings.NewReader("properties:\n  - title: Castle\n    type: castle\n    location: Vasco\n    city: South Goa\n    price: 1\n"))
	assert.Error(t, err)

	_, err = Load(strings.NewReader("properties:\n  - title: Plot\n    colour: blue\n"))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()

	n, err := Seed(ctx, store, Default(), false, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = Seed(ctx, store, Default(), false, nil)
	require.NoError(t, err)
	assert.Zero(t, n, "populated catalog is left alone")

	n, err = Seed(ctx, store, Default()[:2], true, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
