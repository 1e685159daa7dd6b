package catalog

import (
	"context"
	"fmt"

	"github.com/excavacionesmoreno/quote-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Product is a priced catalog entry. Catalog data is read-only once loaded.
type Product struct {
	ID          string
	Name        string
	Emoji       string
	Description string
	Unit        enums.ProductUnit
	UnitLabel   string
	Price       decimal.Decimal
	Category    enums.ProductCategory
	Popular     bool
}

// Category describes a catalog section and how it is headed in a quote message.
type Category struct {
	ID          enums.ProductCategory
	Name        string
	Description string
	Color       string
	Icon        string
	QuoteName   string
	Emoji       string
}

// CategorySummary pairs a category with the number of products it holds.
type CategorySummary struct {
	Category
	ProductCount int
}

// Catalog is an immutable, ordered set of categories and products.
type Catalog struct {
	categories []Category
	products   []Product
	byID       map[string]int
	byCategory map[enums.ProductCategory]int
}

// New validates the input and builds a catalog. Order of both slices is preserved.
func New(categories []Category, products []Product) (*Catalog, error) {
	c := &Catalog{
		categories: make([]Category, 0, len(categories)),
		products:   make([]Product, 0, len(products)),
		byID:       make(map[string]int, len(products)),
		byCategory: make(map[enums.ProductCategory]int, len(categories)),
	}

	for _, cat := range categories {
		if !cat.ID.IsValid() {
			return nil, fmt.Errorf("category %q is not a known category", cat.ID)
		}
		if _, dup := c.byCategory[cat.ID]; dup {
			return nil, fmt.Errorf("duplicate category %q", cat.ID)
		}
		c.byCategory[cat.ID] = len(c.categories)
		c.categories = append(c.categories, cat)
	}

	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product %q has an empty id", p.Name)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		if _, ok := c.byCategory[p.Category]; !ok {
			return nil, fmt.Errorf("product %q references undeclared category %q", p.ID, p.Category)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("product %q has a negative price", p.ID)
		}
		if !p.Unit.IsValid() {
			return nil, fmt.Errorf("product %q has unknown unit %q", p.ID, p.Unit)
		}
		if p.UnitLabel == "" {
			p.UnitLabel = p.Unit.Label()
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	return c, nil
}

// Products returns every product in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Product looks up a single product by id.
func (c *Catalog) Product(_ context.Context, id string) (Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// Categories returns the declared categories in display order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category looks up a category by id.
func (c *Catalog) Category(id enums.ProductCategory) (Category, bool) {
	idx, ok := c.byCategory[id]
	if !ok {
		return Category{}, false
	}
	return c.categories[idx], true
}

// CategorySummaries counts products per category on every call.
func (c *Catalog) CategorySummaries() []CategorySummary {
	counts := make(map[enums.ProductCategory]int, len(c.categories))
	for _, p := range c.products {
		counts[p.Category]++
	}
	out := make([]CategorySummary, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, CategorySummary{Category: cat, ProductCount: counts[cat.ID]})
	}
	return out
}
