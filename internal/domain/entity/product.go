package entity

import (
	"encoding/json"
	"time"
)

// Estados de ciclo de vida de Product.
const (
	ProductActive   = "active"
	ProductDraft    = "draft"
	ProductArchived = "archived"
)

// ValidProductStatus indica si el estado pertenece al ciclo de vida conocido.
func ValidProductStatus(status string) bool {
	switch status {
	case ProductActive, ProductDraft, ProductArchived:
		return true
	}
	return false
}

// Product representa un SKU del catálogo. Pertenece a exactamente una marca.
// BasePrice se guarda en unidades menores (centavos/paisa) como entero: nada
// de punto flotante en montos. PricingTiers es la configuración por modelo de
// pago tal como la consume la capa de presentación.
type Product struct {
	ID           string
	BrandID      string
	SKUCode      string // único global
	Name         string
	BasePrice    int64 // unidades menores
	PricingTiers json.RawMessage
	Status       string // active, draft, archived
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
