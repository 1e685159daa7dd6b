package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/excavacionesmoreno/quote-backend/pkg/enums"
)

func TestDefaultCatalogShape(t *testing.T) {
	c := Default()

	require.Len(t, c.Categories(), 3)
	require.Len(t, c.Products(), 23)

	p, ok := c.Product(context.Background(), "arena-fina")
	require.True(t, ok)
	assert.Equal(t, "Arena Fina", p.Name)
	assert.Equal(t, enums.ProductUnitTonne, p.Unit)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("19.50")))

	_, ok = c.Product(context.Background(), "does-not-exist")
	assert.False(t, ok)
}

func TestCategorySummariesCountFromProducts(t *testing.T) {
	summaries := Default().CategorySummaries()

	got := map[enums.ProductCategory]int{}
	for _, s := range summaries {
		got[s.ID] = s.ProductCount
	}
	assert.Equal(t, map[enums.ProductCategory]int{
		enums.ProductCategoryAridos:      9,
		enums.ProductCategoryMaquinaria:  11,
		enums.ProductCategoryTransportes: 3,
	}, got)
	assert.Equal(t, enums.ProductCategoryAridos, summaries[0].ID, "display order kept")
}

func TestNewRejectsInvalidInput(t *testing.T) {
	cats := DefaultCategories()
	base := Product{ID: "x", Name: "X", Unit: enums.ProductUnitHour, Price: decimal.NewFromInt(1), Category: enums.ProductCategoryMaquinaria}

	tests := []struct {
		name     string
		cats     []Category
		products []Product
	}{
		{name: "duplicate id", cats: cats, products: []Product{base, base}},
		{name: "negative price", cats: cats, products: []Product{func() Product { p := base; p.Price = decimal.NewFromInt(-1); return p }()}},
		{name: "empty id", cats: cats, products: []Product{func() Product { p := base; p.ID = ""; return p }()}},
		{name: "unknown unit", cats: cats, products: []Product{func() Product { p := base; p.Unit = "kg"; return p }()}},
		{name: "undeclared category", cats: cats[:1], products: []Product{base}},
		{name: "unknown category", cats: []Category{{ID: "piedras"}}, products: nil},
		{name: "duplicate category", cats: []Category{cats[0], cats[0]}, products: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cats, tt.products)
			assert.Error(t, err)
		})
	}
}

func TestNewFillsUnitLabel(t *testing.T) {
	c, err := New(DefaultCategories(), []Product{{ID: "x", Name: "X", Unit: enums.ProductUnitService, Price: decimal.Zero, Category: enums.ProductCategoryTransportes}})
	require.NoError(t, err)
	p, _ := c.Product(context.Background(), "x")
	assert.Equal(t, "Servicio", p.UnitLabel)
}

func TestListFilters(t *testing.T) {
	products := DefaultProducts()
	products[0].Popular = true
	products[10].Popular = true
	c, err := New(DefaultCategories(), products)
	require.NoError(t, err)

	transportes := enums.ProductCategoryTransportes
	aridos := enums.ProductCategoryAridos

	tests := []struct {
		name    string
		filters ListFilters
		wantIDs []string
	}{
		{name: "category", filters: ListFilters{Category: &transportes}, wantIDs: []string{"batea-tierra", "batea-vegetales", "gondola"}},
		{name: "popular", filters: ListFilters{PopularOnly: true}, wantIDs: []string{"arena-fina", "retro-cat-318"}},
		{name: "accent insensitive", filters: ListFilters{Query: "GRAVIN"}, wantIDs: []string{"gravin-20"}},
		{name: "accented query", filters: ListFilters{Query: "góndola"}, wantIDs: []string{"gondola"}},
		{name: "description match", filters: ListFilters{Query: "drenajes"}, wantIDs: []string{"bolos-30-60"}},
		{name: "combined", filters: ListFilters{Category: &aridos, Query: "zahorra"}, wantIDs: []string{"zahorra-artificial", "zahorra-reciclada"}},
		{name: "no match", filters: ListFilters{Query: "hormigonera"}, wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, p := range c.List(tt.filters) {
				got = append(got, p.ID)
			}
			assert.Equal(t, tt.wantIDs, got)
		})
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "camion banera", Fold("  Camión Bañera "))
	assert.Equal(t, "", Fold("   "))
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := Default()
	products := c.Products()
	products[0].Name = "mutated"
	cats := c.Categories()
	cats[0].Name = "mutated"

	p, _ := c.Product(context.Background(), "arena-fina")
	assert.Equal(t, "Arena Fina", p.Name)
	cat, ok := c.Category(enums.ProductCategoryAridos)
	require.True(t, ok)
	assert.Equal(t, "Áridos", cat.Name)
}
