// Package comms envuelve el envío de email/SMS a un lead: resuelve y verifica
// la marca igual que el resto de endpoints, invoca al proveedor y registra el
// resultado como actividad, incluso cuando el envío falla.
package comms

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/novuscrm/novus-api/internal/application/dto"
	"github.com/novuscrm/novus-api/internal/domain"
	"github.com/novuscrm/novus-api/internal/domain/brand"
	"github.com/novuscrm/novus-api/internal/domain/entity"
	"github.com/novuscrm/novus-api/internal/domain/repository"
)

// Estados de entrega registrados en la actividad.
const (
	statusSent   = "Sent"
	statusFailed = "Failed"
)

// CommsUseCase casos de uso de comunicaciones salientes.
type CommsUseCase struct {
	leadRepo     repository.LeadRepository
	activityRepo repository.ActivityRepository
	email        EmailSender
	sms          SMSSender
}

// NewCommsUseCase construye el caso de uso.
func NewCommsUseCase(
	leadRepo repository.LeadRepository,
	activityRepo repository.ActivityRepository,
	email EmailSender,
	sms SMSSender,
) *CommsUseCase {
	return &CommsUseCase{leadRepo: leadRepo, activityRepo: activityRepo, email: email, sms: sms}
}

// emailRecord es el registro JSON de entrega guardado en ContentRich.
type emailRecord struct {
	Subject   string `json:"subject"`
	MessageID string `json:"messageId,omitempty"`
	Preview   string `json:"preview"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// smsRecord es el registro JSON de entrega de SMS.
type smsRecord struct {
	Message         string `json:"message"`
	GatewayResponse string `json:"gateway_response,omitempty"`
	Status          string `json:"status"`
	Error           string `json:"error,omitempty"`
}

// SendEmail valida precondiciones (lead en marca y con email), envía y
// registra la actividad con el resultado. Un fallo del proveedor se registra
// con status Failed y se devuelve ErrDeliveryFailed: queda consultable, no se
// pierde en silencio.
func (uc *CommsUseCase) SendEmail(scope brand.Scope, actorID string, in dto.SendEmailRequest) (*dto.SendEmailResponse, error) {
	if in.LeadID == "" || in.Subject == "" || in.BodyHTML == "" {
		return nil, domain.ErrInvalidInput
	}
	lead, err := uc.leadRepo.GetByScope(in.LeadID, scope)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if lead.Email == "" {
		return nil, domain.ErrNoEmail
	}

	messageID, sendErr := uc.email.Send(lead.Email, in.Subject, in.BodyHTML)

	record := emailRecord{
		Subject:   in.Subject,
		MessageID: messageID,
		Preview:   preview(in.BodyHTML),
		Status:    statusSent,
	}
	if sendErr != nil {
		record.Status = statusFailed
		record.Error = sendErr.Error()
	}
	if err := uc.logActivity(lead.ID, actorID, entity.ActivityEmail, record); err != nil {
		return nil, err
	}

	if sendErr != nil {
		return nil, domain.ErrDeliveryFailed
	}
	return &dto.SendEmailResponse{Success: true, MessageID: messageID}, nil
}

// SendSMS valida precondiciones (lead en marca y con móvil), envía por la
// pasarela y registra la actividad con la respuesta cruda del proveedor.
func (uc *CommsUseCase) SendSMS(scope brand.Scope, actorID string, in dto.SendSMSRequest) (*dto.SendSMSResponse, error) {
	if in.LeadID == "" || in.Message == "" {
		return nil, domain.ErrInvalidInput
	}
	lead, err := uc.leadRepo.GetByScope(in.LeadID, scope)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if lead.Mobile == "" {
		return nil, domain.ErrNoMobile
	}

	gatewayResp, sendErr := uc.sms.Send(lead.Mobile, in.Message)

	record := smsRecord{
		Message:         in.Message,
		GatewayResponse: gatewayResp,
		Status:          statusSent,
	}
	if sendErr != nil {
		record.Status = statusFailed
		record.Error = sendErr.Error()
	}
	if err := uc.logActivity(lead.ID, actorID, entity.ActivitySMS, record); err != nil {
		return nil, err
	}

	if sendErr != nil {
		return nil, domain.ErrDeliveryFailed
	}
	return &dto.SendSMSResponse{Success: true, GatewayResponse: gatewayResp}, nil
}

func (uc *CommsUseCase) logActivity(leadID, actorID, activityType string, record any) error {
	content, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return uc.activityRepo.Create(&entity.Activity{
		ID:          uuid.New().String(),
		LeadID:      leadID,
		UserID:      actorID,
		Type:        activityType,
		ContentRich: string(content),
		CreatedAt:   time.Now(),
	})
}

// preview recorta el cuerpo a 100 caracteres para el registro de entrega.
func preview(body string) string {
	runes := []rune(body)
	if len(runes) <= 100 {
		return body
	}
	return string(runes[:100]) + "..."
}
