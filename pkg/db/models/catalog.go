package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/excavacionesmoreno/quote-backend/pkg/enums"
)

// CatalogCategory is a row of catalog_categories.
type CatalogCategory struct {
	ID          enums.ProductCategory `gorm:"column:id;primaryKey"`
	Position    int                   `gorm:"column:position;not null;default:0"`
	Name        string                `gorm:"column:name;not null"`
	Description string                `gorm:"column:description;not null;default:''"`
	Color       string                `gorm:"column:color;not null;default:''"`
	Icon        string                `gorm:"column:icon;not null;default:''"`
	QuoteName   string                `gorm:"column:quote_name;not null;default:''"`
	Emoji       string                `gorm:"column:emoji;not null;default:''"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (CatalogCategory) TableName() string {
	return "catalog_categories"
}

// CatalogItem is a row of catalog_items.
type CatalogItem struct {
	ID          string                `gorm:"column:id;primaryKey"`
	CategoryID  enums.ProductCategory `gorm:"column:category_id;not null;index"`
	Position    int                   `gorm:"column:position;not null;default:0"`
	Name        string                `gorm:"column:name;not null"`
	Emoji       string                `gorm:"column:emoji;not null;default:''"`
	Description string                `gorm:"column:description;not null;default:''"`
	Unit        enums.ProductUnit     `gorm:"column:unit;not null"`
	UnitLabel   string                `gorm:"column:unit_label;not null;default:''"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null"`
	Popular     bool                  `gorm:"column:popular;not null;default:false"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (CatalogItem) TableName() string {
	return "catalog_items"
}
