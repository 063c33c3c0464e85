package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/novuscrm/novus-api/internal/domain/brand"
	"github.com/novuscrm/novus-api/internal/domain/entity"
	"github.com/novuscrm/novus-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

const leadColumns = `id, brand_id, name, mobile, email, qualification_stage, engagement_score, fit_score, assigned_to, created_at, updated_at`

// LeadRepo implementación del puerto LeadRepository sobre PostgreSQL (usable con pool o tx).
// Toda consulta con scope no-admin intersecta brand_id con las marcas del caller.
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var l entity.Lead
	var email, assignedTo *string
	err := row.Scan(
		&l.ID, &l.BrandID, &l.Name, &l.Mobile, &email, &l.QualificationStage,
		&l.EngagementScore, &l.FitScore, &assignedTo, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Email = deref(email)
	l.AssignedTo = deref(assignedTo)
	return &l, nil
}

// Create persiste un nuevo lead.
func (r *LeadRepo) Create(lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, brand_id, name, mobile, email, qualification_stage, engagement_score, fit_score, assigned_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		lead.ID, lead.BrandID, lead.Name, lead.Mobile, nullable(lead.Email),
		lead.QualificationStage, lead.EngagementScore, lead.FitScore,
		nullable(lead.AssignedTo), lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// GetByScope obtiene un lead por ID dentro de las marcas del caller.
// Devuelve nil tanto si no existe como si está fuera de alcance.
func (r *LeadRepo) GetByScope(id string, scope brand.Scope) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	args := []any{id}
	if !scope.IsAdmin() {
		query += ` AND brand_id = ANY($2)`
		args = append(args, scope.BrandIDs)
	}
	lead, err := scanLead(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return lead, nil
}

// GetForUpdate obtiene y bloquea la fila del lead (SELECT ... FOR UPDATE).
// Usar solo dentro de una transacción.
func (r *LeadRepo) GetForUpdate(id string, scope brand.Scope) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	args := []any{id}
	if !scope.IsAdmin() {
		query += ` AND brand_id = ANY($2)`
		args = append(args, scope.BrandIDs)
	}
	query += ` FOR UPDATE`
	lead, err := scanLead(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead for update: %w", err)
	}
	return lead, nil
}

// GetByEmail localiza un lead por email (ingesta de eventos, sin scope).
func (r *LeadRepo) GetByEmail(email string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE email = $1 LIMIT 1`
	lead, err := scanLead(r.q.QueryRow(context.Background(), query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead by email: %w", err)
	}
	return lead, nil
}

// List devuelve leads filtrados por marca y etapa, ordenados por fecha o por
// heat score (engagement + fit), con paginación y el email del agente asignado.
func (r *LeadRepo) List(scope brand.Scope, filter repository.LeadFilter) ([]*entity.Lead, error) {
	var conds []string
	var args []any
	idx := 1
	if !scope.IsAdmin() {
		conds = append(conds, fmt.Sprintf("l.brand_id = ANY($%d)", idx))
		args = append(args, scope.BrandIDs)
		idx++
	}
	if filter.Stage != "" {
		conds = append(conds, fmt.Sprintf("l.qualification_stage = $%d", idx))
		args = append(args, filter.Stage)
		idx++
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	order := "l.created_at DESC"
	if filter.SortByHeat {
		order = "(l.engagement_score + l.fit_score) DESC"
	}

	query := `
		SELECT l.id, l.brand_id, l.name, l.mobile, l.email, l.qualification_stage,
		       l.engagement_score, l.fit_score, l.assigned_to, l.created_at, l.updated_at,
		       u.email
		FROM leads l
		LEFT JOIN users u ON u.id = l.assigned_to` + where +
		fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", order, idx, idx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var list []*entity.Lead
	for rows.Next() {
		var l entity.Lead
		var email, assignedTo, assignedEmail *string
		if err := rows.Scan(
			&l.ID, &l.BrandID, &l.Name, &l.Mobile, &email, &l.QualificationStage,
			&l.EngagementScore, &l.FitScore, &assignedTo, &l.CreatedAt, &l.UpdatedAt,
			&assignedEmail,
		); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		l.Email = deref(email)
		l.AssignedTo = deref(assignedTo)
		l.AssignedEmail = deref(assignedEmail)
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Count devuelve el total de leads para la misma condición del listado.
func (r *LeadRepo) Count(scope brand.Scope, stage string) (int, error) {
	var conds []string
	var args []any
	idx := 1
	if !scope.IsAdmin() {
		conds = append(conds, fmt.Sprintf("brand_id = ANY($%d)", idx))
		args = append(args, scope.BrandIDs)
		idx++
	}
	if stage != "" {
		conds = append(conds, fmt.Sprintf("qualification_stage = $%d", idx))
		args = append(args, stage)
	}
	query := `SELECT COUNT(*) FROM leads`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return total, nil
}

// UpdateFields persiste los campos mutables del lead (allow-list del patch).
func (r *LeadRepo) UpdateFields(lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET name = $2, mobile = $3, email = $4, qualification_stage = $5,
		    engagement_score = $6, fit_score = $7, assigned_to = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		lead.ID, lead.Name, lead.Mobile, nullable(lead.Email), lead.QualificationStage,
		lead.EngagementScore, lead.FitScore, nullable(lead.AssignedTo), lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	return nil
}

// UpdateStage transiciona la etapa de calificación del lead.
func (r *LeadRepo) UpdateStage(id, stage string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE leads SET qualification_stage = $2, updated_at = now() WHERE id = $1`,
		id, stage,
	)
	if err != nil {
		return fmt.Errorf("update lead stage: %w", err)
	}
	return nil
}

// IncrementEngagement suma delta al engagement_score con tope en el máximo
// del modelo (50).
func (r *LeadRepo) IncrementEngagement(id string, delta int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE leads SET engagement_score = LEAST(engagement_score + $2, $3), updated_at = now() WHERE id = $1`,
		id, delta, entity.MaxScore,
	)
	if err != nil {
		return fmt.Errorf("increment engagement: %w", err)
	}
	return nil
}
