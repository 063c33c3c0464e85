package dto

// SendEmailRequest envío de email a un lead.
type SendEmailRequest struct {
	LeadID   string `json:"lead_id"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
}

// SendSMSRequest envío de SMS a un lead.
type SendSMSRequest struct {
	LeadID  string `json:"lead_id"`
	Message string `json:"message"`
}

// SendEmailResponse resultado de envío de email.
type SendEmailResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

// SendSMSResponse resultado de envío de SMS.
type SendSMSResponse struct {
	Success         bool   `json:"success"`
	GatewayResponse string `json:"gateway_response"`
}

// IngestEventRequest evento de comportamiento de un tercero.
type IngestEventRequest struct {
	ClientEventID string         `json:"client_event_id"`
	Email         string         `json:"email"`
	EventType     string         `json:"event_type"`
	Metadata      map[string]any `json:"metadata"`
}

// IngestEventResponse confirmación de ingesta.
type IngestEventResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
