package repository

import (
	"github.com/novuscrm/novus-api/internal/domain/brand"
	"github.com/novuscrm/novus-api/internal/domain/entity"
)

// LeadFilter parámetros de listado de leads.
type LeadFilter struct {
	Stage      string // vacío = todas las etapas
	SortByHeat bool   // true = engagement+fit desc; false = created_at desc
	Limit      int
	Offset     int
}

// LeadRepository define el puerto de persistencia para Lead (DIP).
// Toda lectura/escritura con scope intersecta brand_id con las marcas del
// caller; Admin omite el filtro. No hay Delete: los leads solo transicionan
// de etapa.
type LeadRepository interface {
	Create(lead *entity.Lead) error
	GetByScope(id string, scope brand.Scope) (*entity.Lead, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE); usar solo dentro
	// de una transacción.
	GetForUpdate(id string, scope brand.Scope) (*entity.Lead, error)
	GetByEmail(email string) (*entity.Lead, error)
	List(scope brand.Scope, filter LeadFilter) ([]*entity.Lead, error)
	Count(scope brand.Scope, stage string) (int, error)
	// UpdateFields persiste los campos mutables (allow-list) del lead.
	UpdateFields(lead *entity.Lead) error
	UpdateStage(id, stage string) error
	// IncrementEngagement suma delta al engagement_score con tope en 50.
	IncrementEngagement(id string, delta int) error
}
