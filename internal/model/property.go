package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PropertyType is the catalog's enumerated property category
type PropertyType string

const (
	PropertyTypeHouse  PropertyType = "house"
	PropertyTypeFlat   PropertyType = "flat"
	PropertyTypePlot   PropertyType = "plot"
	PropertyTypeShop   PropertyType = "shop"
	PropertyTypeOffice PropertyType = "office"
	PropertyTypeLand   PropertyType = "land"
	PropertyTypeVilla  PropertyType = "villa"
)

// PropertyTypes lists every valid PropertyType
var PropertyTypes = []PropertyType{
	PropertyTypeHouse,
	PropertyTypeFlat,
	PropertyTypePlot,
	PropertyTypeShop,
	PropertyTypeOffice,
	PropertyTypeLand,
	PropertyTypeVilla,
}

// Valid reports whether t is one of the enumerated property types
func (t PropertyType) Valid() bool {
	for _, v := range PropertyTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Property represents a catalog listing
type Property struct {
	ID          string       `json:"id" db:"id"`
	Title       string       `json:"title" db:"title"`
	Type        PropertyType `json:"type" db:"type"`
	Location    string       `json:"location" db:"location"`
	City        string       `json:"city" db:"city"`
	State       string       `json:"state" db:"state"`
	Bedrooms    *int         `json:"bedrooms,omitempty" db:"bedrooms"`
	Bathrooms   *int         `json:"bathrooms,omitempty" db:"bathrooms"`
	AreaValue   *float64     `json:"areaValue,omitempty" db:"area_value"`
	AreaUnit    string       `json:"areaUnit,omitempty" db:"area_unit"`
	Price       int64        `json:"price" db:"price"`
	ForSale     bool         `json:"forSale" db:"for_sale"`
	Amenities   JSONArray    `json:"amenities,omitempty" db:"amenities"`
	Description string       `json:"description,omitempty" db:"description"`
	Owner       OwnerContact `json:"ownerContact" db:"owner"`
	IsAvailable bool         `json:"isAvailable" db:"is_available"`
	DateAdded   time.Time    `json:"dateAdded" db:"date_added"`
}

// OwnerContact holds the listing owner's contact details, stored as JSONB
type OwnerContact struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Value implements driver.Valuer interface
func (o OwnerContact) Value() (driver.Value, error) {
	b, err := json.Marshal(o)
	return string(b), err
}

// Scan implements sql.Scanner interface
func (o *OwnerContact) Scan(value interface{}) error {
	if value == nil {
		*o = OwnerContact{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return fmt.Errorf("unsupported owner contact column type %T", value)
	}
}

// PropertySummary is the short form echoed back by contact-owner
type PropertySummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
}

// Summary returns the short form of p
func (p *Property) Summary() PropertySummary {
	return PropertySummary{ID: p.ID, Title: p.Title, Location: p.Location}
}

// Validate checks the fields a new listing must carry
func (p *Property) Validate() error {
	switch {
	case p.Title == "":
		return fmt.Errorf("title is required")
	case !p.Type.Valid():
		return fmt.Errorf("type must be one of %v", PropertyTypes)
	case p.Location == "":
		return fmt.Errorf("location is required")
	case p.City == "":
		return fmt.Errorf("city is required")
	case p.Price <= 0:
		return fmt.Errorf("price must be positive")
	}
	return nil
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return "[]", nil
	}
	b, err := json.Marshal(j)
	return string(b), err
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
