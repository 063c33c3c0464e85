package dto

import "time"

// LeadResponse representación JSON de un Lead. Email y assignedTo en null
// cuando no tienen valor, como en el esquema.
type LeadResponse struct {
	ID                 string     `json:"id"`
	BrandID            string     `json:"brandId"`
	Name               string     `json:"name"`
	Mobile             string     `json:"mobile"`
	Email              *string    `json:"email"`
	QualificationStage string     `json:"qualificationStage"`
	EngagementScore    int        `json:"engagementScore"`
	FitScore           int        `json:"fitScore"`
	AssignedTo         *string    `json:"assignedTo"`
	AssignedEmail      string     `json:"assignedEmail,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// LeadListResponse listado paginado de leads.
type LeadListResponse struct {
	Data []LeadResponse `json:"data"`
	Meta PageMeta       `json:"meta"`
}

// LeadDetailResponse lead con su línea de tiempo y deals (más recientes primero).
type LeadDetailResponse struct {
	Data struct {
		LeadResponse
		Activities []ActivityResponse `json:"activities"`
		Deals      []DealResponse     `json:"deals"`
	} `json:"data"`
}

// CreateLeadRequest alta manual de lead (entrada de agente).
type CreateLeadRequest struct {
	BrandID string `json:"brand_id"`
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email"`
}

// UpdateLeadRequest patch parcial de lead. Solo los campos de la allow-list;
// punteros para distinguir "no enviado" de valor cero.
type UpdateLeadRequest struct {
	Name               *string `json:"name"`
	Mobile             *string `json:"mobile"`
	Email              *string `json:"email"`
	QualificationStage *string `json:"qualificationStage"`
	EngagementScore    *int    `json:"engagementScore"`
	FitScore           *int    `json:"fitScore"`
	AssignedTo         *string `json:"assignedTo"`
}

// UpdateLeadResponse resultado del patch. Si no hubo cambios, Message lo indica
// y Changes viene vacío (no se escribió nada).
type UpdateLeadResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    LeadResponse   `json:"data"`
	Changes map[string]any `json:"changes,omitempty"`
}

// ActivityResponse entrada de la línea de tiempo.
type ActivityResponse struct {
	ID          string    `json:"id"`
	LeadID      string    `json:"leadId"`
	UserID      *string   `json:"userId"`
	UserEmail   string    `json:"userEmail,omitempty"`
	Type        string    `json:"type"`
	ContentRich string    `json:"contentRich"`
	CreatedAt   time.Time `json:"createdAt"`
}
