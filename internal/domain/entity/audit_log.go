package entity

import (
	"encoding/json"
	"time"
)

// Acciones de AuditLog.
const (
	AuditCreate = "CREATE"
	AuditUpdate = "UPDATE"
	AuditDelete = "DELETE"
)

// FieldChange es el par antes/después de un campo mutado.
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Diff mapea nombre de campo -> cambio. Es la forma canónica de Changes para
// acciones UPDATE; las creaciones usan una descripción plana de los insumos
// (no hay estado previo contra el cual diferenciar).
type Diff map[string]FieldChange

// AuditLog es el registro inmutable de una mutación. Se inserta siempre dentro
// de la misma transacción que la mutación que documenta: es el único historial
// de cambios del sistema.
type AuditLog struct {
	ID          string
	TableName   string
	RecordID    string
	Action      string // CREATE, UPDATE, DELETE
	Changes     json.RawMessage
	PerformedBy string
	CreatedAt   time.Time
}
