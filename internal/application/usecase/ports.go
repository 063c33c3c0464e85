package usecase

import (
	"context"

	"github.com/novuscrm/novus-api/internal/domain/repository"
)

// LeadTxRunner ejecuta una mutación de lead y su registro de auditoría como
// unidad atómica (Commit o Rollback conjunto). Lo implementa postgres.TxRunner.
type LeadTxRunner interface {
	RunLeadUpdate(ctx context.Context, fn func(
		leadRepo repository.LeadRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}

// ProductTxRunner ejecuta una mutación de producto y su registro de auditoría
// como unidad atómica.
type ProductTxRunner interface {
	RunProductChange(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}

// UserTxRunner ejecuta una mutación de usuario y su registro de auditoría
// como unidad atómica.
type UserTxRunner interface {
	RunUserChange(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}
