package dto

import "github.com/excavacionesmoreno/quote-backend/pkg/types"

type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Color        string `json:"color"`
	Icon         string `json:"icon"`
	Emoji        string `json:"emoji"`
	ProductCount int    `json:"product_count"`
}

type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Emoji       string      `json:"emoji"`
	Description string      `json:"description"`
	Unit        string      `json:"unit"`
	UnitLabel   string      `json:"unit_label"`
	Price       types.Money `json:"price"`
	Category    string      `json:"category"`
	Popular     bool        `json:"popular,omitempty"`
}

type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}
