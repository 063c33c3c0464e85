package repository

import "github.com/novuscrm/novus-api/internal/domain/entity"

// ActivityRepository define el puerto de persistencia para Activity (DIP).
// Las actividades son append-only: no hay Update ni Delete.
type ActivityRepository interface {
	Create(activity *entity.Activity) error
	// ListByLead devuelve la línea de tiempo del lead, más recientes primero,
	// con el email del actor (join superficial de presentación).
	ListByLead(leadID string) ([]*entity.Activity, error)
}
