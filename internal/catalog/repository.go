package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/excavacionesmoreno/quote-backend/pkg/db/models"
)

// Repository reads and writes the catalog tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a repository to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Load reads every category and item once and builds an immutable catalog.
func (r *Repository) Load(ctx context.Context) (*Catalog, error) {
	var catRows []models.CatalogCategory
	if err := r.db.WithContext(ctx).Order("position ASC, id ASC").Find(&catRows).Error; err != nil {
		return nil, fmt.Errorf("query catalog categories: %w", err)
	}
	var itemRows []models.CatalogItem
	if err := r.db.WithContext(ctx).Order("position ASC, id ASC").Find(&itemRows).Error; err != nil {
		return nil, fmt.Errorf("query catalog items: %w", err)
	}

	categories := make([]Category, 0, len(catRows))
	for _, row := range catRows {
		categories = append(categories, Category{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			Color:       row.Color,
			Icon:        row.Icon,
			QuoteName:   row.QuoteName,
			Emoji:       row.Emoji,
		})
	}

	products := make([]Product, 0, len(itemRows))
	for _, row := range itemRows {
		products = append(products, Product{
			ID:          row.ID,
			Name:        row.Name,
			Emoji:       row.Emoji,
			Description: row.Description,
			Unit:        row.Unit,
			UnitLabel:   row.UnitLabel,
			Price:       row.Price,
			Category:    row.CategoryID,
			Popular:     row.Popular,
		})
	}

	c, err := New(categories, products)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	return c, nil
}

// Sync upserts every category and product of c, keeping catalog order in the position column.
func (r *Repository) Sync(ctx context.Context, c *Catalog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, cat := range c.Categories() {
			row := models.CatalogCategory{
				ID:          cat.ID,
				Position:    i,
				Name:        cat.Name,
				Description: cat.Description,
				Color:       cat.Color,
				Icon:        cat.Icon,
				QuoteName:   cat.QuoteName,
				Emoji:       cat.Emoji,
			}
			if err := upsert(tx, &row); err != nil {
				return fmt.Errorf("upsert category %s: %w", cat.ID, err)
			}
		}
		for i, p := range c.Products() {
			row := models.CatalogItem{
				ID:          p.ID,
				CategoryID:  p.Category,
				Position:    i,
				Name:        p.Name,
				Emoji:       p.Emoji,
				Description: p.Description,
				Unit:        p.Unit,
				UnitLabel:   p.UnitLabel,
				Price:       p.Price,
				Popular:     p.Popular,
			}
			if err := upsert(tx, &row); err != nil {
				return fmt.Errorf("upsert item %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

func upsert(tx *gorm.DB, row any) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(row).Error
}
