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

// ProductUseCase casos de uso del catálogo: listado por marca y altas/cambios
// auditados (la autorización por rol Admin/Manager la aplica la ruta).
type ProductUseCase struct {
	productRepo repository.ProductRepository
	txRunner    ProductTxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, txRunner ProductTxRunner) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, txRunner: txRunner}
}

// List devuelve productos de las marcas del caller ordenados por nombre.
// Scope sin marcas responde vacío, nunca error.
func (uc *ProductUseCase) List(scope brand.Scope, page, limit int) (*dto.ProductListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	out := &dto.ProductListResponse{
		Data: []dto.ProductResponse{},
		Meta: dto.PageMeta{Page: page, Limit: limit},
	}
	if scope.Empty() {
		return out, nil
	}

	products, err := uc.productRepo.List(scope, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	total, err := uc.productRepo.Count(scope)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		out.Data = append(out.Data, toProductResponse(p))
	}
	out.Meta.Total = total
	out.Meta.TotalPages = (total + limit - 1) / limit
	return out, nil
}

// Create da de alta un producto. La marca debe estar en el entitlement del
// caller; SKU duplicado devuelve ErrDuplicate. Alta y auditoría atómicas.
func (uc *ProductUseCase) Create(ctx context.Context, scope brand.Scope, actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.BrandID == "" || in.SKUCode == "" || in.Name == "" || in.BasePrice < 0 {
		return nil, domain.ErrInvalidInput
	}
	if !scope.CanAccess(in.BrandID) {
		return nil, domain.ErrForbidden
	}
	status := in.Status
	if status == "" {
		status = entity.ProductActive
	}
	if !entity.ValidProductStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	tiers := in.PricingTiers
	if len(tiers) == 0 {
		tiers = json.RawMessage(`{}`)
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		BrandID:      in.BrandID,
		SKUCode:      in.SKUCode,
		Name:         in.Name,
		BasePrice:    in.BasePrice,
		PricingTiers: tiers,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	changes, err := json.Marshal(map[string]any{
		"brand_id":   product.BrandID,
		"sku_code":   product.SKUCode,
		"name":       product.Name,
		"base_price": product.BasePrice,
		"status":     product.Status,
	})
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunProductChange(ctx, func(productRepo repository.ProductRepository, auditRepo repository.AuditLogRepository) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditLog{
			ID:          uuid.New().String(),
			TableName:   "products",
			RecordID:    product.ID,
			Action:      entity.AuditCreate,
			Changes:     changes,
			PerformedBy: actorID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// Update aplica un patch parcial con diff {old, new} auditado. Sin cambios no
// escribe nada. BasePrice puede cambiar para ventas futuras: los deals ya
// creados guardan su propio snapshot.
func (uc *ProductUseCase) Update(ctx context.Context, scope brand.Scope, actorID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.productRepo.GetByScope(id, scope)
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
	if in.BasePrice != nil && *in.BasePrice != existing.BasePrice {
		if *in.BasePrice < 0 {
			return nil, domain.ErrInvalidInput
		}
		diff["basePrice"] = entity.FieldChange{Old: existing.BasePrice, New: *in.BasePrice}
		updated.BasePrice = *in.BasePrice
	}
	if in.Status != nil && *in.Status != existing.Status {
		if !entity.ValidProductStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		diff["status"] = entity.FieldChange{Old: existing.Status, New: *in.Status}
		updated.Status = *in.Status
	}
	if in.PricingTiers != nil && string(*in.PricingTiers) != string(existing.PricingTiers) {
		diff["pricingTiers"] = entity.FieldChange{Old: json.RawMessage(existing.PricingTiers), New: *in.PricingTiers}
		updated.PricingTiers = *in.PricingTiers
	}

	if len(diff) == 0 {
		resp := toProductResponse(existing)
		return &resp, nil
	}

	changes, err := json.Marshal(diff)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	updated.UpdatedAt = now

	err = uc.txRunner.RunProductChange(ctx, func(productRepo repository.ProductRepository, auditRepo repository.AuditLogRepository) error {
		if err := productRepo.Update(&updated); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditLog{
			ID:          uuid.New().String(),
			TableName:   "products",
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
	resp := toProductResponse(&updated)
	return &resp, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		BrandID:      p.BrandID,
		SKUCode:      p.SKUCode,
		Name:         p.Name,
		BasePrice:    p.BasePrice,
		PricingTiers: p.PricingTiers,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
