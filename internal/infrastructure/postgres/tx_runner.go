package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	appdeal "github.com/novuscrm/novus-api/internal/application/deal"
	"github.com/novuscrm/novus-api/internal/application/ingest"
	"github.com/novuscrm/novus-api/internal/application/usecase"
	"github.com/novuscrm/novus-api/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos transaccionales de la aplicación.
var _ appdeal.TxRunner = (*TxRunner)(nil)
var _ ingest.TxRunner = (*TxRunner)(nil)
var _ usecase.LeadTxRunner = (*TxRunner)(nil)
var _ usecase.ProductTxRunner = (*TxRunner)(nil)
var _ usecase.UserTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Todo camino
// de mutación que toca más de una tabla pasa por aquí: sin dual-write fuera
// de la frontera transaccional.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunDeal inicia una transacción con los repos del motor de deals
// (deal + transición del lead + audit log).
func (r *TxRunner) RunDeal(ctx context.Context, fn func(
	leadRepo repository.LeadRepository,
	dealRepo repository.DealRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewLeadRepository(q), NewDealRepository(q), NewAuditLogRepository(q))
	})
}

// RunLeadUpdate inicia una transacción para mutación de lead + audit log.
func (r *TxRunner) RunLeadUpdate(ctx context.Context, fn func(
	leadRepo repository.LeadRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewLeadRepository(q), NewAuditLogRepository(q))
	})
}

// RunProductChange inicia una transacción para mutación de producto + audit log.
func (r *TxRunner) RunProductChange(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewProductRepository(q), NewAuditLogRepository(q))
	})
}

// RunUserChange inicia una transacción para mutación de usuario + audit log.
func (r *TxRunner) RunUserChange(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewUserRepository(q), NewAuditLogRepository(q))
	})
}

// RunIngest inicia una transacción para actividad + incremento de score.
func (r *TxRunner) RunIngest(ctx context.Context, fn func(
	leadRepo repository.LeadRepository,
	activityRepo repository.ActivityRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewLeadRepository(q), NewActivityRepository(q))
	})
}
