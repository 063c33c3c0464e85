package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/novuscrm/novus-api/internal/application/dto"
	"github.com/novuscrm/novus-api/internal/domain"
	"github.com/novuscrm/novus-api/internal/domain/brand"
	"github.com/novuscrm/novus-api/internal/domain/entity"
	"github.com/novuscrm/novus-api/internal/domain/repository"
)

// LeadUseCase casos de uso de leads: listado con aislamiento por marca,
// detalle con línea de tiempo, alta manual y patch auditado.
type LeadUseCase struct {
	leadRepo     repository.LeadRepository
	activityRepo repository.ActivityRepository
	dealRepo     repository.DealRepository
	txRunner     LeadTxRunner
}

// NewLeadUseCase construye el caso de uso.
func NewLeadUseCase(
	leadRepo repository.LeadRepository,
	activityRepo repository.ActivityRepository,
	dealRepo repository.DealRepository,
	txRunner LeadTxRunner,
) *LeadUseCase {
	return &LeadUseCase{
		leadRepo:     leadRepo,
		activityRepo: activityRepo,
		dealRepo:     dealRepo,
		txRunner:     txRunner,
	}
}

// List devuelve leads de las marcas del caller, con filtro opcional por etapa,
// orden por fecha (default) o por heat score, y paginación. Un scope sin
// marcas responde vacío, nunca error.
func (uc *LeadUseCase) List(scope brand.Scope, stage string, sortByHeat bool, page, limit int) (*dto.LeadListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	out := &dto.LeadListResponse{
		Data: []dto.LeadResponse{},
		Meta: dto.PageMeta{Page: page, Limit: limit},
	}
	if scope.Empty() {
		return out, nil
	}

	filter := repository.LeadFilter{
		Stage:      stage,
		SortByHeat: sortByHeat,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}
	leads, err := uc.leadRepo.List(scope, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.leadRepo.Count(scope, stage)
	if err != nil {
		return nil, err
	}

	for _, l := range leads {
		out.Data = append(out.Data, toLeadResponse(l))
	}
	out.Meta.Total = total
	out.Meta.TotalPages = (total + limit - 1) / limit
	return out, nil
}

// Get devuelve el lead con sus actividades y deals (más recientes primero).
// Inexistente y fuera de marca son indistinguibles: ambos ErrNotFound.
func (uc *LeadUseCase) Get(id string, scope brand.Scope) (*dto.LeadDetailResponse, error) {
	lead, err := uc.leadRepo.GetByScope(id, scope)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}

	activities, err := uc.activityRepo.ListByLead(lead.ID)
	if err != nil {
		return nil, err
	}
	deals, err := uc.dealRepo.ListByLead(lead.ID)
	if err != nil {
		return nil, err
	}

	out := &dto.LeadDetailResponse{}
	out.Data.LeadResponse = toLeadResponse(lead)
	out.Data.Activities = make([]dto.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		out.Data.Activities = append(out.Data.Activities, toActivityResponse(a))
	}
	out.Data.Deals = make([]dto.DealResponse, 0, len(deals))
	for _, d := range deals {
		out.Data.Deals = append(out.Data.Deals, ToDealResponse(d))
	}
	return out, nil
}

// Create da de alta un lead por entrada de agente. La marca del lead debe
// estar en el entitlement del caller (ErrForbidden si no); el alta y su
// registro de auditoría son atómicos.
func (uc *LeadUseCase) Create(ctx context.Context, scope brand.Scope, actorID string, in dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	if in.BrandID == "" || in.Name == "" || in.Mobile == "" {
		return nil, domain.ErrInvalidInput
	}
	if !scope.CanAccess(in.BrandID) {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	lead := &entity.Lead{
		ID:                 uuid.New().String(),
		BrandID:            in.BrandID,
		Name:               in.Name,
		Mobile:             in.Mobile,
		Email:              in.Email,
		QualificationStage: entity.StageRaw,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	changes, err := json.Marshal(map[string]any{
		"brand_id": lead.BrandID,
		"name":     lead.Name,
		"mobile":   lead.Mobile,
		"email":    lead.Email,
	})
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunLeadUpdate(ctx, func(leadRepo repository.LeadRepository, auditRepo repository.AuditLogRepository) error {
		if err := leadRepo.Create(lead); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditLog{
			ID:          uuid.New().String(),
			TableName:   "leads",
			RecordID:    lead.ID,
			Action:      entity.AuditCreate,
			Changes:     changes,
			PerformedBy: actorID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	resp := toLeadResponse(lead)
	return &resp, nil
}

// Patch aplica un update parcial restringido a la allow-list de campos
// mutables. Calcula {old, new} por campo cambiado; si el diff queda vacío no
// escribe nada y lo indica. Si hay cambios, update + audit log son una sola
// unidad atómica.
func (uc *LeadUseCase) Patch(ctx context.Context, scope brand.Scope, actorID, id string, in dto.UpdateLeadRequest) (*dto.UpdateLeadResponse, error) {
	existing, err := uc.leadRepo.GetByScope(id, scope)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	updated := *existing
	diff := entity.Diff{}

	if in.Name != nil && *in.Name != existing.Name {
		diff["name"] = entity.FieldChange{Old: existing.Name, New: *in.Name}
		updated.Name = *in.Name
	}
	if in.Mobile != nil && *in.Mobile != existing.Mobile {
		diff["mobile"] = entity.FieldChange{Old: existing.Mobile, New: *in.Mobile}
		updated.Mobile = *in.Mobile
	}
	if in.Email != nil && *in.Email != existing.Email {
		diff["email"] = entity.FieldChange{Old: existing.Email, New: *in.Email}
		updated.Email = *in.Email
	}
	if in.QualificationStage != nil && *in.QualificationStage != existing.QualificationStage {
		if !entity.ValidStage(*in.QualificationStage) {
			return nil, domain.ErrInvalidInput
		}
		diff["qualificationStage"] = entity.FieldChange{Old: existing.QualificationStage, New: *in.QualificationStage}
		updated.QualificationStage = *in.QualificationStage
	}
	if in.EngagementScore != nil && *in.EngagementScore != existing.EngagementScore {
		if *in.EngagementScore < 0 || *in.EngagementScore > entity.MaxScore {
			return nil, domain.ErrInvalidInput
		}
		diff["engagementScore"] = entity.FieldChange{Old: existing.EngagementScore, New: *in.EngagementScore}
		updated.EngagementScore = *in.EngagementScore
	}
	if in.FitScore != nil && *in.FitScore != existing.FitScore {
		if *in.FitScore < 0 || *in.FitScore > entity.MaxScore {
			return nil, domain.ErrInvalidInput
		}
		diff["fitScore"] = entity.FieldChange{Old: existing.FitScore, New: *in.FitScore}
		updated.FitScore = *in.FitScore
	}
	if in.AssignedTo != nil && *in.AssignedTo != existing.AssignedTo {
		diff["assignedTo"] = entity.FieldChange{Old: existing.AssignedTo, New: *in.AssignedTo}
		updated.AssignedTo = *in.AssignedTo
	}

	if len(diff) == 0 {
		return &dto.UpdateLeadResponse{
			Success: true,
			Message: "No changes detected",
			Data:    toLeadResponse(existing),
		}, nil
	}

	changes, err := json.Marshal(diff)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	updated.UpdatedAt = now

	err = uc.txRunner.RunLeadUpdate(ctx, func(leadRepo repository.LeadRepository, auditRepo repository.AuditLogRepository) error {
		if err := leadRepo.UpdateFields(&updated); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditLog{
			ID:          uuid.New().String(),
			TableName:   "leads",
			RecordID:    updated.ID,
			Action:      entity.AuditUpdate,
			Changes:     changes,
			PerformedBy: actorID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}

	changesOut := make(map[string]any, len(diff))
	for field, change := range diff {
		changesOut[field] = change
	}
	return &dto.UpdateLeadResponse{
		Success: true,
		Data:    toLeadResponse(&updated),
		Changes: changesOut,
	}, nil
}

func toLeadResponse(l *entity.Lead) dto.LeadResponse {
	resp := dto.LeadResponse{
		ID:                 l.ID,
		BrandID:            l.BrandID,
		Name:               l.Name,
		Mobile:             l.Mobile,
		QualificationStage: l.QualificationStage,
		EngagementScore:    l.EngagementScore,
		FitScore:           l.FitScore,
		AssignedEmail:      l.AssignedEmail,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
	if l.Email != "" {
		email := l.Email
		resp.Email = &email
	}
	if l.AssignedTo != "" {
		assigned := l.AssignedTo
		resp.AssignedTo = &assigned
	}
	return resp
}

func toActivityResponse(a *entity.Activity) dto.ActivityResponse {
	resp := dto.ActivityResponse{
		ID:          a.ID,
		LeadID:      a.LeadID,
		UserEmail:   a.UserEmail,
		Type:        a.Type,
		ContentRich: a.ContentRich,
		CreatedAt:   a.CreatedAt,
	}
	if a.UserID != "" {
		userID := a.UserID
		resp.UserID = &userID
	}
	return resp
}

// ToDealResponse convierte la entidad Deal a su representación JSON.
func ToDealResponse(d *entity.Deal) dto.DealResponse {
	return dto.DealResponse{
		ID:          d.ID,
		LeadID:      d.LeadID,
		SKUID:       d.SKUID,
		Amount:      d.Amount,
		EMISchedule: d.EMISchedule,
		Status:      d.Status,
		ProductName: d.ProductName,
		ProductSKU:  d.ProductSKU,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
