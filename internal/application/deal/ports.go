package deal

import (
	"context"

	"github.com/novuscrm/novus-api/internal/domain/repository"
)

// TxRunner ejecuta la creación de un deal como unidad atómica: alta del deal,
// transición del lead a Won y registro de auditoría hacen Commit o Rollback
// juntos. Lo implementa postgres.TxRunner.
type TxRunner interface {
	RunDeal(ctx context.Context, fn func(
		leadRepo repository.LeadRepository,
		dealRepo repository.DealRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}
