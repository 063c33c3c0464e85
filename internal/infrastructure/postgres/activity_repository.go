package postgres

import (
	"context"
	"fmt"

	"github.com/novuscrm/novus-api/internal/domain/entity"
	"github.com/novuscrm/novus-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo implementación del puerto ActivityRepository sobre PostgreSQL.
// user_id NULL = actividad generada por el sistema.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Create persiste una nueva actividad en la línea de tiempo del lead.
func (r *ActivityRepo) Create(activity *entity.Activity) error {
	query := `
		INSERT INTO activities (id, lead_id, user_id, type, content_rich, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		activity.ID, activity.LeadID, nullable(activity.UserID),
		activity.Type, activity.ContentRich, activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListByLead devuelve la línea de tiempo del lead, más recientes primero,
// con el email del actor cuando lo hay.
func (r *ActivityRepo) ListByLead(leadID string) ([]*entity.Activity, error) {
	query := `
		SELECT a.id, a.lead_id, a.user_id, a.type, a.content_rich, a.created_at, u.email
		FROM activities a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.lead_id = $1
		ORDER BY a.created_at DESC`
	rows, err := r.q.Query(context.Background(), query, leadID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var list []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		var userID, userEmail *string
		if err := rows.Scan(
			&a.ID, &a.LeadID, &userID, &a.Type, &a.ContentRich, &a.CreatedAt, &userEmail,
		); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.UserID = deref(userID)
		a.UserEmail = deref(userEmail)
		list = append(list, &a)
	}
	return list, rows.Err()
}
