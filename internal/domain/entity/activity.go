package entity

import "time"

// Tipos de Activity.
const (
	ActivityNote   = "note"
	ActivityEmail  = "email"
	ActivitySMS    = "sms"
	ActivitySystem = "system"
)

// Activity es una entrada inmutable en la línea de tiempo de un Lead.
// Para email/sms/system, ContentRich es un registro JSON de la entrega o del
// evento; para note es texto libre. UserID vacío = generado por el sistema.
type Activity struct {
	ID          string
	LeadID      string
	UserID      string
	Type        string // note, email, sms, system
	ContentRich string
	CreatedAt   time.Time

	// Campo de presentación poblado por join de lectura.
	UserEmail string
}
