package repository

import "github.com/novuscrm/novus-api/internal/domain/entity"

// AuditLogRepository define el puerto de persistencia para AuditLog (DIP).
// Append-only; se invoca siempre dentro de la transacción de la mutación que
// documenta, nunca de forma best-effort.
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
}
