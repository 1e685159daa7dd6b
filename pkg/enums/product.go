package enums

import "fmt"

// ProductCategory is the closed set of catalog sections.
type ProductCategory string

const (
	ProductCategoryAridos      ProductCategory = "aridos"
	ProductCategoryMaquinaria  ProductCategory = "maquinaria"
	ProductCategoryTransportes ProductCategory = "transportes"
)

var validProductCategories = []ProductCategory{
	ProductCategoryAridos,
	ProductCategoryMaquinaria,
	ProductCategoryTransportes,
}

// ProductCategories returns the categories in display order.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductUnit is the unit of measure a price is quoted in.
type ProductUnit string

const (
	ProductUnitTonne   ProductUnit = "Tn"
	ProductUnitHour    ProductUnit = "h"
	ProductUnitService ProductUnit = "ud"
)

var productUnitLabels = map[ProductUnit]string{
	ProductUnitTonne:   "Tonelada",
	ProductUnitHour:    "Hora",
	ProductUnitService: "Servicio",
}

func (u ProductUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known ProductUnit.
func (u ProductUnit) IsValid() bool {
	_, ok := productUnitLabels[u]
	return ok
}

// Label returns the human readable unit name, or the raw code when unknown.
func (u ProductUnit) Label() string {
	if label, ok := productUnitLabels[u]; ok {
		return label
	}
	return string(u)
}

// ParseProductUnit converts raw input into a ProductUnit.
func ParseProductUnit(value string) (ProductUnit, error) {
	unit := ProductUnit(value)
	if !unit.IsValid() {
		return "", fmt.Errorf("invalid product unit %q", value)
	}
	return unit, nil
}
