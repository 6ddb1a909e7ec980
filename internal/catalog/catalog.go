// Package catalog loads the storefront product list from its external
// sources: the embedded default YAML file and XLSX workbooks.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"gopkg.in/yaml.v3"
)

//go:embed products.yaml
var defaultYAML []byte

var ErrInvalidCatalog = errors.New("invalid catalog")

type entry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Cut         string `yaml:"cut"`
	Category    string `yaml:"category"`
	ImageURL    string `yaml:"image_url,omitempty"`
}

type document struct {
	Products []entry `yaml:"products"`
}

// Default returns the built-in catalog.
func Default() ([]model.Product, error) {
	return Parse(defaultYAML)
}

// Parse decodes a YAML catalog and validates it.
func Parse(data []byte) ([]model.Product, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	products := make([]model.Product, 0, len(doc.Products))
	for i, e := range doc.Products {
		p, err := e.toProduct(i)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := Validate(products); err != nil {
		return nil, err
	}
	return products, nil
}

func (e entry) toProduct(order int) (model.Product, error) {
	cut, ok := model.ParseBeefCut(e.Cut)
	if !ok {
		return model.Product{}, fmt.Errorf("%w: product %q has unknown cut %q", ErrInvalidCatalog, e.ID, e.Cut)
	}
	return model.Product{
		ID:          strings.TrimSpace(e.ID),
		Name:        strings.TrimSpace(e.Name),
		Description: strings.TrimSpace(e.Description),
		Price:       strings.TrimSpace(e.Price),
		Cut:         cut,
		Category:    model.ProductCategory(strings.ToLower(strings.TrimSpace(e.Category))),
		ImageURL:    strings.TrimSpace(e.ImageURL),
		SortOrder:   order,
	}, nil
}

// Validate enforces unique ids, a name, and a concrete category per product.
func Validate(products []model.Product) error {
	seen := make(map[string]bool, len(products))
	for _, p := range products {
		if p.ID == "" {
			return fmt.Errorf("%w: product without id", ErrInvalidCatalog)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate product id %q", ErrInvalidCatalog, p.ID)
		}
		seen[p.ID] = true

		if p.Name == "" {
			return fmt.Errorf("%w: product %q has no name", ErrInvalidCatalog, p.ID)
		}
		if !p.Category.IsValid() || p.Category == model.CategoryAll {
			return fmt.Errorf("%w: product %q has invalid category %q", ErrInvalidCatalog, p.ID, p.Category)
		}
	}
	return nil
}
