package deal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/novuscrm/novus-api/internal/application/dto"
	"github.com/novuscrm/novus-api/internal/domain"
	"github.com/novuscrm/novus-api/internal/domain/brand"
	domaindeal "github.com/novuscrm/novus-api/internal/domain/deal"
	"github.com/novuscrm/novus-api/internal/domain/entity"
	"github.com/novuscrm/novus-api/internal/domain/repository"
)

// CreateDealUseCase es el motor de deals: valida la solicitud, calcula el
// plan EMI cuando aplica y registra de forma atómica el deal, la transición
// del lead a Won y el audit log.
type CreateDealUseCase struct {
	txRunner    TxRunner
	leadRepo    repository.LeadRepository
	productRepo repository.ProductRepository
}

// NewCreateDealUseCase construye el caso de uso.
func NewCreateDealUseCase(
	txRunner TxRunner,
	leadRepo repository.LeadRepository,
	productRepo repository.ProductRepository,
) *CreateDealUseCase {
	return &CreateDealUseCase{
		txRunner:    txRunner,
		leadRepo:    leadRepo,
		productRepo: productRepo,
	}
}

// creationChanges es la descripción plana de los insumos que produjeron el
// deal; en una creación no hay estado previo contra el cual diferenciar.
type creationChanges struct {
	LeadID          string `json:"lead_id"`
	SKUID           string `json:"sku_id"`
	PaymentModel    string `json:"payment_model"`
	Amount          int64  `json:"amount"`
	LeadStageUpdate string `json:"lead_stage_update"`
}

// Create ejecuta el flujo completo del motor:
//  1. valida campos y modelo de pago (EMI exige emi_months >= 2),
//  2. resuelve producto y lead restringidos a las marcas del caller
//     (inexistente y fuera de alcance son el mismo ErrNotFound),
//  3. monto = snapshot del precio base del producto; si el modelo es EMI
//     calcula el plan de cuotas por división entera,
//  4. dentro de una transacción: bloquea la fila del lead (FOR UPDATE),
//     inserta el deal (open), transiciona el lead a Won e inserta el audit
//     log. Las tres escrituras se confirman o se revierten juntas.
//
// Toda falla de validación aborta antes de cualquier persistencia.
func (uc *CreateDealUseCase) Create(ctx context.Context, scope brand.Scope, actorID string, in dto.CreateDealRequest) (*entity.Deal, error) {
	if in.LeadID == "" || in.SKUID == "" || in.PaymentModel == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidPaymentModel(in.PaymentModel) {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentModel == entity.PaymentEMI && in.EMIMonths < domaindeal.MinEMIMonths {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByScope(in.SKUID, scope)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	lead, err := uc.leadRepo.GetByScope(in.LeadID, scope)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}

	// El motor no re-deriva descuentos de otros modelos: el monto es siempre
	// el precio base; el modelo solo decide si hay plan de cuotas.
	now := time.Now()
	amount := product.BasePrice
	var schedule []entity.Installment
	if in.PaymentModel == entity.PaymentEMI {
		schedule = domaindeal.CalculateEMISchedule(amount, in.EMIMonths, now)
	}

	newDeal := &entity.Deal{
		ID:          uuid.New().String(),
		LeadID:      in.LeadID,
		SKUID:       in.SKUID,
		Amount:      amount,
		EMISchedule: schedule,
		Status:      entity.DealOpen, // el deal queda abierto aunque el lead pase a Won
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	changes, err := json.Marshal(creationChanges{
		LeadID:          in.LeadID,
		SKUID:           in.SKUID,
		PaymentModel:    in.PaymentModel,
		Amount:          amount,
		LeadStageUpdate: entity.StageWon,
	})
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunDeal(ctx, func(
		leadRepo repository.LeadRepository,
		dealRepo repository.DealRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		// Bloquea la fila del lead: creaciones concurrentes contra el mismo
		// lead se serializan dentro de la transacción.
		locked, err := leadRepo.GetForUpdate(in.LeadID, scope)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if err := dealRepo.Create(newDeal); err != nil {
			return err
		}
		if err := leadRepo.UpdateStage(in.LeadID, entity.StageWon); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditLog{
			ID:          uuid.New().String(),
			TableName:   "deals",
			RecordID:    newDeal.ID,
			Action:      entity.AuditCreate,
			Changes:     changes,
			PerformedBy: actorID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return newDeal, nil
}
