package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/novuscrm/novus-api/internal/domain/entity"
	"github.com/novuscrm/novus-api/internal/domain/repository"
)

var _ repository.DealRepository = (*DealRepo)(nil)

// DealRepo implementación del puerto DealRepository sobre PostgreSQL.
// emi_schedule es jsonb: NULL para modelos de pago sin cuotas.
type DealRepo struct {
	q Querier
}

// NewDealRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDealRepository(q Querier) *DealRepo {
	return &DealRepo{q: q}
}

// Create persiste un nuevo deal con su plan EMI serializado.
func (r *DealRepo) Create(deal *entity.Deal) error {
	var schedule []byte
	if deal.EMISchedule != nil {
		b, err := json.Marshal(deal.EMISchedule)
		if err != nil {
			return fmt.Errorf("marshal emi schedule: %w", err)
		}
		schedule = b
	}
	query := `
		INSERT INTO deals (id, lead_id, sku_id, amount, emi_schedule, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		deal.ID, deal.LeadID, deal.SKUID, deal.Amount, schedule,
		deal.Status, deal.CreatedAt, deal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deal: %w", err)
	}
	return nil
}

// ListByLead devuelve los deals del lead, más recientes primero, con nombre
// y SKU del producto.
func (r *DealRepo) ListByLead(leadID string) ([]*entity.Deal, error) {
	query := `
		SELECT d.id, d.lead_id, d.sku_id, d.amount, d.emi_schedule, d.status,
		       d.created_at, d.updated_at, p.name, p.sku_code
		FROM deals d
		JOIN products p ON p.id = d.sku_id
		WHERE d.lead_id = $1
		ORDER BY d.created_at DESC`
	rows, err := r.q.Query(context.Background(), query, leadID)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()

	var list []*entity.Deal
	for rows.Next() {
		var d entity.Deal
		var schedule []byte
		if err := rows.Scan(
			&d.ID, &d.LeadID, &d.SKUID, &d.Amount, &schedule, &d.Status,
			&d.CreatedAt, &d.UpdatedAt, &d.ProductName, &d.ProductSKU,
		); err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		if len(schedule) > 0 {
			if err := json.Unmarshal(schedule, &d.EMISchedule); err != nil {
				return nil, fmt.Errorf("unmarshal emi schedule: %w", err)
			}
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
