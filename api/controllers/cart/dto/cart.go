package dto

import "github.com/excavacionesmoreno/quote-backend/pkg/types"

// AddItemRequest adds quantity units of a catalog product. Quantity defaults to 1.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
	Quantity  *int   `json:"quantity" validate:"omitempty,min=1,max=9999"`
}

// UpdateItemRequest sets an absolute quantity; zero or less removes the line.
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,max=9999"`
}

type CartLine struct {
	ProductID string      `json:"product_id"`
	Name      string      `json:"name"`
	Category  string      `json:"category"`
	Unit      string      `json:"unit"`
	UnitLabel string      `json:"unit_label"`
	Price     types.Money `json:"price"`
	Quantity  int         `json:"quantity"`
	Subtotal  types.Money `json:"subtotal"`
}

// Cart is the session cart. Total is pre-tax; the VAT fields are estimates on top of it.
type Cart struct {
	SessionID    string      `json:"session_id"`
	Items        []CartLine  `json:"items"`
	Count        int         `json:"count"`
	Total        types.Money `json:"total"`
	VATRate      string      `json:"vat_rate"`
	VATEstimate  types.Money `json:"vat_estimate"`
	TotalWithVAT types.Money `json:"total_with_vat"`
	Empty        bool        `json:"empty"`
}

type Quote struct {
	Message      string      `json:"message"`
	URL          string      `json:"url"`
	Empty        bool        `json:"empty"`
	Count        int         `json:"count"`
	Total        types.Money `json:"total"`
	VATEstimate  types.Money `json:"vat_estimate"`
	TotalWithVAT types.Money `json:"total_with_vat"`
}
