package dto

import (
	"encoding/json"
	"time"
)

// ProductResponse representación JSON de un Product del catálogo.
type ProductResponse struct {
	ID           string          `json:"id"`
	BrandID      string          `json:"brandId"`
	SKUCode      string          `json:"skuCode"`
	Name         string          `json:"name"`
	BasePrice    int64           `json:"basePrice"`
	PricingTiers json.RawMessage `json:"pricingTiers"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductListResponse listado de productos filtrado por marca.
type ProductListResponse struct {
	Data []ProductResponse `json:"data"`
	Meta PageMeta          `json:"meta"`
}

// CreateProductRequest alta de producto (Admin/Manager).
type CreateProductRequest struct {
	BrandID      string          `json:"brand_id"`
	SKUCode      string          `json:"sku_code"`
	Name         string          `json:"name"`
	BasePrice    int64           `json:"base_price"`
	PricingTiers json.RawMessage `json:"pricing_tiers"`
	Status       string          `json:"status"`
}

// UpdateProductRequest patch parcial de producto (Admin/Manager).
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	BasePrice    *int64           `json:"base_price"`
	PricingTiers *json.RawMessage `json:"pricing_tiers"`
	Status       *string          `json:"status"`
}
