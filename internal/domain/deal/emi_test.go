package deal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novuscrm/novus-api/internal/domain/deal"
	"github.com/novuscrm/novus-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// El plan EMI es el único cálculo financiero del sistema; estos tests fijan
// los vectores exactos: división entera, residuo en la última cuota y cadencia
// de 30 días (no meses calendario).
// ──────────────────────────────────────────────────────────────────────────────

var testFrom = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestCalculateEMISchedule_DivisionExacta(t *testing.T) {
	// 150000 / 3 = 50000 sin residuo
	schedule := deal.CalculateEMISchedule(150000, 3, testFrom)

	require.Len(t, schedule, 3)
	for i, inst := range schedule {
		assert.Equal(t, int64(50000), inst.Amount, "cuota %d", i+1)
		assert.Equal(t, entity.InstallmentPending, inst.Status)
	}
	assert.Equal(t, "2026-03-31", schedule[0].DueDate, "primera cuota a +30 días")
	assert.Equal(t, "2026-04-30", schedule[1].DueDate, "segunda cuota a +60 días")
	assert.Equal(t, "2026-05-30", schedule[2].DueDate, "tercera cuota a +90 días")
}

func TestCalculateEMISchedule_ResiduoEnUltimaCuota(t *testing.T) {
	// 100000 / 3 = 33333 con residuo 1; la última cuota lo absorbe
	schedule := deal.CalculateEMISchedule(100000, 3, testFrom)

	require.Len(t, schedule, 3)
	assert.Equal(t, int64(33333), schedule[0].Amount)
	assert.Equal(t, int64(33333), schedule[1].Amount)
	assert.Equal(t, int64(33334), schedule[2].Amount)
}

func TestCalculateEMISchedule_SumaExacta(t *testing.T) {
	// Propiedad: para todo amount >= 0 y months >= 2, sum(cuotas) == amount,
	// len == months y todas menos la última valen floor(amount/months).
	cases := []struct {
		amount int64
		months int
	}{
		{0, 2},
		{1, 2},
		{99999, 7},
		{150000, 3},
		{100000, 3},
		{1234567, 12},
		{500, 6},
	}
	for _, tc := range cases {
		schedule := deal.CalculateEMISchedule(tc.amount, tc.months, testFrom)
		require.Len(t, schedule, tc.months, "amount=%d months=%d", tc.amount, tc.months)

		base := tc.amount / int64(tc.months)
		var sum int64
		for i, inst := range schedule {
			sum += inst.Amount
			if i < tc.months-1 {
				assert.Equal(t, base, inst.Amount, "amount=%d months=%d cuota=%d", tc.amount, tc.months, i+1)
			}
		}
		assert.Equal(t, tc.amount, sum, "la suma del plan debe ser exactamente el monto (amount=%d months=%d)", tc.amount, tc.months)
	}
}

func TestCalculateEMISchedule_VencimientosAscendentes(t *testing.T) {
	schedule := deal.CalculateEMISchedule(75000, 5, testFrom)

	require.Len(t, schedule, 5)
	for i := 1; i < len(schedule); i++ {
		assert.Less(t, schedule[i-1].DueDate, schedule[i].DueDate,
			"los vencimientos deben ser estrictamente ascendentes")
	}
}
