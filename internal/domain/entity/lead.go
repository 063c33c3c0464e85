package entity

import "time"

// Etapas de calificación del lead (embudo de ventas).
const (
	StageRaw  = "Raw"
	StageIQL  = "IQL"
	StageMQL  = "MQL"
	StageSAL  = "SAL"
	StageSQL  = "SQL"
	StageWon  = "Won"
	StageLost = "Lost"
)

// Límite superior de EngagementScore y FitScore.
const MaxScore = 50

// ValidStage indica si el valor pertenece a la taxonomía de etapas.
func ValidStage(stage string) bool {
	switch stage {
	case StageRaw, StageIQL, StageMQL, StageSAL, StageSQL, StageWon, StageLost:
		return true
	}
	return false
}

// Lead representa un prospecto. Pertenece a exactamente una marca (BrandID) y
// nunca se elimina: su ciclo de vida es la transición de QualificationStage.
// Email y AssignedTo vacíos significan "sin valor" (NULL en persistencia).
type Lead struct {
	ID                 string
	BrandID            string
	Name               string
	Mobile             string
	Email              string
	QualificationStage string
	EngagementScore    int // 0..50
	FitScore           int // 0..50
	AssignedTo         string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Campos de presentación poblados por joins de lectura (no persistidos aquí).
	AssignedEmail string
}

// HeatScore suma engagement + fit; se usa para ordenar por prioridad.
func (l *Lead) HeatScore() int {
	return l.EngagementScore + l.FitScore
}
