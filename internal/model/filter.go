package model

// Filter is the structured constraint set handed to the property store.
// Unset pointers mean "no constraint on this dimension".
type Filter struct {
	IsAvailable bool          `json:"isAvailable"`
	Type        *PropertyType `json:"type,omitempty"`
	Bedrooms    *int          `json:"bedrooms,omitempty"`
	Price       *PriceCeiling `json:"price,omitempty"`
	Location    *string       `json:"location,omitempty"` // matched against location or city
	ForSale     *bool         `json:"forSale,omitempty"`
}

// PriceCeiling is an upper-bound-only price constraint
type PriceCeiling struct {
	LTE int64 `json:"lte"`
}

// NewFilter returns a filter carrying only the availability constraint
func NewFilter() Filter {
	return Filter{IsAvailable: true}
}

// FindOptions controls ordering and size of a store lookup
type FindOptions struct {
	Limit       int
	SortByPrice bool // ascending
}
