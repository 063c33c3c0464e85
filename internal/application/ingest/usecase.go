// Package ingest procesa eventos de comportamiento de terceros: traduce el
// tipo de evento a un delta de engagement y lo aplica junto con la entrada de
// línea de tiempo en una sola transacción.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/novuscrm/novus-api/internal/application/dto"
	"github.com/novuscrm/novus-api/internal/domain"
	"github.com/novuscrm/novus-api/internal/domain/entity"
	"github.com/novuscrm/novus-api/internal/domain/repository"
)

// Tabla fija de deltas por tipo de evento; tipos desconocidos valen +0 (se
// registra la actividad pero no se toca el score).
var scoreDeltas = map[string]int{
	"course_completed": 15,
	"cart_abandoned":   5,
	"email_opened":     1,
}

// TxRunner ejecuta la inserción de actividad y el incremento de score como
// unidad atómica. Lo implementa postgres.TxRunner.
type TxRunner interface {
	RunIngest(ctx context.Context, fn func(
		leadRepo repository.LeadRepository,
		activityRepo repository.ActivityRepository,
	) error) error
}

// EventUseCase caso de uso de ingesta de eventos.
type EventUseCase struct {
	txRunner TxRunner
	leadRepo repository.LeadRepository
}

// NewEventUseCase construye el caso de uso.
func NewEventUseCase(txRunner TxRunner, leadRepo repository.LeadRepository) *EventUseCase {
	return &EventUseCase{txRunner: txRunner, leadRepo: leadRepo}
}

// eventRecord es el contenido JSON de la actividad system que documenta el
// evento, incluyendo el token de idempotencia del cliente y su metadata para
// dedupe o auditoría posterior.
type eventRecord struct {
	Title         string         `json:"title"`
	ScoreChange   string         `json:"score_change"`
	ClientEventID string         `json:"client_event_id"`
	Metadata      map[string]any `json:"metadata"`
}

// Process localiza el lead por email, registra la actividad system y —solo si
// el delta es positivo— incrementa engagement_score, ambos en la misma
// transacción: nunca un delta positivo registrado sin aplicar, ni aplicado sin
// registrar. Email sin lead devuelve ErrNotFound sin persistir nada (el evento
// se descarta, no se encola).
func (uc *EventUseCase) Process(ctx context.Context, in dto.IngestEventRequest) error {
	if in.Email == "" || in.EventType == "" {
		return domain.ErrInvalidInput
	}

	lead, err := uc.leadRepo.GetByEmail(in.Email)
	if err != nil {
		return err
	}
	if lead == nil {
		return domain.ErrNotFound
	}

	delta := scoreDeltas[in.EventType]
	scoreChange := "0"
	if delta > 0 {
		scoreChange = fmt.Sprintf("+%d", delta)
	}
	metadata := in.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	content, err := json.Marshal(eventRecord{
		Title:         "Event: " + in.EventType,
		ScoreChange:   scoreChange,
		ClientEventID: in.ClientEventID,
		Metadata:      metadata,
	})
	if err != nil {
		return err
	}

	activity := &entity.Activity{
		ID:          uuid.New().String(),
		LeadID:      lead.ID,
		UserID:      "", // evento del sistema, sin actor
		Type:        entity.ActivitySystem,
		ContentRich: string(content),
		CreatedAt:   time.Now(),
	}

	return uc.txRunner.RunIngest(ctx, func(leadRepo repository.LeadRepository, activityRepo repository.ActivityRepository) error {
		if err := activityRepo.Create(activity); err != nil {
			return err
		}
		if delta > 0 {
			return leadRepo.IncrementEngagement(lead.ID, delta)
		}
		return nil
	})
}
