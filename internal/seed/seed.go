// Package seed loads sample catalog listings into a property store.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"realestate-agent/internal/model"
	"realestate-agent/internal/repository"
)

//go:embed properties.yaml
var defaultCatalog []byte

type catalogFile struct {
	Properties []listing `yaml:"properties"`
}

type listing struct {
	Title     string   `yaml:"title"`
	Type      string   `yaml:"type"`
	Location  string   `yaml:"location"`
	City      string   `yaml:"city"`
	State     string   `yaml:"state"`
	Bedrooms  *int     `yaml:"bedrooms"`
	Bathrooms *int     `yaml:"bathrooms"`
	Area      *struct {
		Value float64 `yaml:"value"`
		Unit  string  `yaml:"unit"`
	} `yaml:"area"`
	Price       int64    `yaml:"price"`
	ForSale     *bool    `yaml:"forSale"`
	Amenities   []string `yaml:"amenities"`
	Description string   `yaml:"description"`
	Owner       struct {
		Name  string `yaml:"name"`
		Phone string `yaml:"phone"`
		Email string `yaml:"email"`
	} `yaml:"ownerContact"`
}

func (l listing) toProperty() model.Property {
	p := model.Property{
		Title:       l.Title,
		Type:        model.PropertyType(l.Type),
		Location:    l.Location,
		City:        l.City,
		State:       l.State,
		Bedrooms:    l.Bedrooms,
		Bathrooms:   l.Bathrooms,
		Price:       l.Price,
		ForSale:     true,
		Amenities:   model.JSONArray(l.Amenities),
		Description: l.Description,
		Owner: model.OwnerContact{
			Name:  l.Owner.Name,
			Phone: l.Owner.Phone,
			Email: l.Owner.Email,
		},
		IsAvailable: true,
	}
	if l.ForSale != nil {
		p.ForSale = *l.ForSale
	}
	if l.Area != nil {
		v := l.Area.Value
		p.AreaValue = &v
		p.AreaUnit = l.Area.Unit
	}
	return p
}

// Load parses a YAML catalog and validates every listing
func Load(r io.Reader) ([]model.Property, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	props := make([]model.Property, 0, len(file.Properties))
	for i, l := range file.Properties {
		p := l.toProperty()
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("listing %d (%q): %w", i, l.Title, err)
		}
		props = append(props, p)
	}
	return props, nil
}

// LoadFile parses the catalog at path
func LoadFile(path string) ([]model.Property, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the bundled sample catalog
func Default() []model.Property {
	props, err := Load(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("seed: bundled catalog is invalid: %v", err))
	}
	return props
}

// Seed inserts props when the store is empty. With reset, existing
// listings are removed first. It returns the number of inserted listings.
func Seed(ctx context.Context, store repository.PropertyStore, props []model.Property, reset bool, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if reset {
		if err := store.DeleteAll(ctx); err != nil {
			return 0, err
		}
		logger.Info("cleared existing properties")
	} else {
		count, err := store.Count(ctx)
		if err != nil {
			return 0, err
		}
		if count > 0 {
			logger.Info("catalog already populated, skipping seed", "count", count)
			return 0, nil
		}
	}

	for i := range props {
		p := props[i]
		if err := store.Create(ctx, &p); err != nil {
			return i, fmt.Errorf("failed to insert %q: %w", p.Title, err)
		}
	}
	logger.Info("added sample properties", "count", len(props))
	return len(props), nil
}
