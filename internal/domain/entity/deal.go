package entity

import "time"

// Estados de Deal.
const (
	DealOpen = "open"
	DealWon  = "won"
	DealLost = "lost"
)

// Modelos de pago aceptados. El backend solo bifurca en EMI (cuotas); los demás
// toman el precio base tal cual — los descuentos/premiums se aplican en la
// capa de presentación antes del envío.
const (
	PaymentFixed        = "Fixed"
	PaymentEMI          = "EMI"
	PaymentEarlyBird    = "Early Bird"
	PaymentBundle       = "Bundle"
	PaymentSubscription = "Subscription"
)

// ValidPaymentModel indica si el modelo pertenece al conjunto conocido.
func ValidPaymentModel(model string) bool {
	switch model {
	case PaymentFixed, PaymentEMI, PaymentEarlyBird, PaymentBundle, PaymentSubscription:
		return true
	}
	return false
}

// Estado de una cuota EMI.
const InstallmentPending = "pending"

// Installment es una cuota del plan EMI. DueDate en formato YYYY-MM-DD;
// Amount en unidades menores.
type Installment struct {
	DueDate string `json:"due_date"`
	Amount  int64  `json:"amount"`
	Status  string `json:"status"`
}

// Deal referencia exactamente un Lead y un Product. Amount es el snapshot del
// precio al momento de la creación y es inmutable después. EMISchedule es nil
// para modelos de pago distintos de EMI.
type Deal struct {
	ID          string
	LeadID      string
	SKUID       string
	Amount      int64 // unidades menores
	EMISchedule []Installment
	Status      string // open, won, lost
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Campos de presentación poblados por joins de lectura.
	ProductName string
	ProductSKU  string
}
