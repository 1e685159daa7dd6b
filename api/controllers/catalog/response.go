package catalog

import (
	catalogdto "github.com/excavacionesmoreno/quote-backend/api/controllers/catalog/dto"
	"github.com/excavacionesmoreno/quote-backend/internal/catalog"
	"github.com/excavacionesmoreno/quote-backend/pkg/types"
)

func newCategories(summaries []catalog.CategorySummary) []catalogdto.Category {
	out := make([]catalogdto.Category, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, catalogdto.Category{
			ID:           string(s.ID),
			Name:         s.Name,
			Description:  s.Description,
			Color:        s.Color,
			Icon:         s.Icon,
			Emoji:        s.Emoji,
			ProductCount: s.ProductCount,
		})
	}
	return out
}

func newProduct(p catalog.Product) catalogdto.Product {
	return catalogdto.Product{
		ID:          p.ID,
		Name:        p.Name,
		Emoji:       p.Emoji,
		Description: p.Description,
		Unit:        p.Unit.String(),
		UnitLabel:   p.UnitLabel,
		Price:       types.NewMoney(p.Price),
		Category:    string(p.Category),
		Popular:     p.Popular,
	}
}

func newProductList(products []catalog.Product) catalogdto.ProductList {
	out := make([]catalogdto.Product, 0, len(products))
	for _, p := range products {
		out = append(out, newProduct(p))
	}
	return catalogdto.ProductList{Products: out, Total: len(out)}
}
