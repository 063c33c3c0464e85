// Package deal contiene la lógica pura de negocio del motor de deals:
// el cálculo del plan de cuotas EMI.
package deal

import (
	"time"

	"github.com/novuscrm/novus-api/internal/domain/entity"
)

// Las cuotas se espacian a intervalos fijos de 30 días desde la creación,
// no por meses calendario.
const installmentInterval = 30 * 24 * time.Hour

// MinEMIMonths es el mínimo de cuotas aceptado para el modelo EMI.
const MinEMIMonths = 2

// CalculateEMISchedule divide amount (unidades menores) en months cuotas por
// división entera: las primeras months-1 reciben floor(amount/months) y la
// última absorbe el resto, de modo que la suma del plan es exactamente amount.
// Todas las cuotas inician en estado pending con vencimientos a +30, +60, ... días.
func CalculateEMISchedule(amount int64, months int, from time.Time) []entity.Installment {
	base := amount / int64(months)
	schedule := make([]entity.Installment, 0, months)

	var accumulated int64
	for i := 0; i < months; i++ {
		installment := base
		if i == months-1 {
			// Última cuota: captura el residuo de la división entera.
			installment = amount - accumulated
		} else {
			accumulated += installment
		}
		due := from.Add(time.Duration(i+1) * installmentInterval)
		schedule = append(schedule, entity.Installment{
			DueDate: due.Format("2006-01-02"),
			Amount:  installment,
			Status:  entity.InstallmentPending,
		})
	}
	return schedule
}
