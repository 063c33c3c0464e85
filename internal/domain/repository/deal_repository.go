package repository

import "github.com/novuscrm/novus-api/internal/domain/entity"

// DealRepository define el puerto de persistencia para Deal (DIP).
// Amount y EMISchedule son inmutables después de Create.
type DealRepository interface {
	Create(deal *entity.Deal) error
	// ListByLead devuelve los deals del lead, más recientes primero, con
	// nombre y SKU del producto (join superficial de presentación).
	ListByLead(leadID string) ([]*entity.Deal, error)
}
