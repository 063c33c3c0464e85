package dto

import (
	"time"

	"github.com/novuscrm/novus-api/internal/domain/entity"
)

// CreateDealRequest entrada del motor de deals.
type CreateDealRequest struct {
	LeadID       string `json:"lead_id"`
	SKUID        string `json:"sku_id"`
	PaymentModel string `json:"payment_model"`
	EMIMonths    int    `json:"emi_months"`
}

// DealResponse representación JSON de un Deal. EMISchedule null para modelos
// sin cuotas.
type DealResponse struct {
	ID          string               `json:"id"`
	LeadID      string               `json:"leadId"`
	SKUID       string               `json:"skuId"`
	Amount      int64                `json:"amount"`
	EMISchedule []entity.Installment `json:"emiSchedule"`
	Status      string               `json:"status"`
	ProductName string               `json:"productName,omitempty"`
	ProductSKU  string               `json:"productSku,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// CreateDealResponse resultado de la creación atómica.
type CreateDealResponse struct {
	Success bool         `json:"success"`
	Data    DealResponse `json:"data"`
}
