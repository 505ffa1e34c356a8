package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"realestate-agent/internal/model"
)

func TestBuildWhere_BaseFilter(t *testing.T) {
	where, args := buildWhere(model.NewFilter())
	assert.Equal(t, "1=1 AND is_available = true", where)
	assert.Empty(t, args)
}

func TestBuildWhere_AllDimensions(t *testing.T) {
	flat := model.PropertyTypeFlat
	beds := 3
	loc := "panaji"
	forSale := false
	filter := model.Filter{
		IsAvailable: true,
		Type:        &flat,
		Bedrooms:    &beds,
		Price:       &model.PriceCeiling{LTE: 5_000_000},
		Location:    &loc,
		ForSale:     &forSale,
	}

	where, args := buildWhere(filter)
	assert.Equal(t,
		"1=1 AND is_available = true AND type = $1 AND bedrooms = $2 AND price <= $3 "+
			"AND (location ILIKE $4 OR city ILIKE $4) AND for_sale = $5",
		where)
	assert.Equal(t, []interface{}{"flat", 3, int64(5_000_000), "%panaji%", false}, args)
}

func TestBuildWhere_EscapesLikeWildcards(t *testing.T) {
	loc := `50%_off\`
	_, args := buildWhere(model.Filter{Location: &loc})
	assert.Equal(t, []interface{}{`%50\%\_off\\%`}, args)
}

func TestBuildFindQuery(t *testing.T) {
	shop := model.PropertyTypeShop
	query, args := buildFindQuery(model.Filter{IsAvailable: true, Type: &shop}, model.FindOptions{Limit: 5, SortByPrice: true})

	assert.Contains(t, query, "FROM properties WHERE 1=1 AND is_available = true AND type = $1")
	assert.Contains(t, query, "ORDER BY price ASC LIMIT $2")
	assert.Equal(t, []interface{}{"shop", 5}, args)

	query, args = buildFindQuery(model.NewFilter(), model.FindOptions{})
	assert.Contains(t, query, "ORDER BY date_added DESC")
	assert.NotContains(t, query, "LIMIT")
	assert.Empty(t, args)
}
