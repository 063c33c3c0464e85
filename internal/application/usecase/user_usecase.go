package usecase

import (
	"context"
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/novuscrm/novus-api/internal/application/auth"
	"github.com/novuscrm/novus-api/internal/application/dto"
	"github.com/novuscrm/novus-api/internal/domain"
	"github.com/novuscrm/novus-api/internal/domain/entity"
	"github.com/novuscrm/novus-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase administración de usuarios (rutas solo Admin). Los usuarios
// nunca se eliminan: IsActive=false es la baja lógica.
type UserUseCase struct {
	userRepo repository.UserRepository
	txRunner UserTxRunner
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository, txRunner UserTxRunner) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, txRunner: txRunner}
}

// Create da de alta un usuario con hash bcrypt. Email duplicado devuelve
// ErrEmailAlreadyExists.
func (uc *UserUseCase) Create(ctx context.Context, actorID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleAgent
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	brands := in.BrandIDs
	if brands == nil {
		brands = []string{}
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		BrandIDs:     brands,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	changes, err := json.Marshal(map[string]any{
		"email":     user.Email,
		"role":      user.Role,
		"brand_ids": user.BrandIDs,
	})
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunUserChange(ctx, func(userRepo repository.UserRepository, auditRepo repository.AuditLogRepository) error {
		if err := userRepo.Create(user); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditLog{
			ID:          uuid.New().String(),
			TableName:   "users",
			RecordID:    user.ID,
			Action:      entity.AuditCreate,
			Changes:     changes,
			PerformedBy: actorID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List devuelve usuarios paginados.
func (uc *UserUseCase) List(page, limit int) (*dto.UserListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	users, err := uc.userRepo.List(limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{Data: []dto.UserResponse{}}
	for _, u := range users {
		out.Data = append(out.Data, *auth.ToUserResponse(u))
	}
	return out, nil
}

// Update aplica cambios de rol, marcas o estado activo con diff auditado.
func (uc *UserUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrUserNotFound
	}

	updated := *existing
	diff := entity.Diff{}

	if in.Role != nil && *in.Role != existing.Role {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		diff["role"] = entity.FieldChange{Old: existing.Role, New: *in.Role}
		updated.Role = *in.Role
	}
	if in.BrandIDs != nil && !slices.Equal(*in.BrandIDs, existing.BrandIDs) {
		diff["brandIds"] = entity.FieldChange{Old: existing.BrandIDs, New: *in.BrandIDs}
		updated.BrandIDs = *in.BrandIDs
	}
	if in.IsActive != nil && *in.IsActive != existing.IsActive {
		diff["isActive"] = entity.FieldChange{Old: existing.IsActive, New: *in.IsActive}
		updated.IsActive = *in.IsActive
	}

	if len(diff) == 0 {
		return auth.ToUserResponse(existing), nil
	}

	changes, err := json.Marshal(diff)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	updated.UpdatedAt = now

	err = uc.txRunner.RunUserChange(ctx, func(userRepo repository.UserRepository, auditRepo repository.AuditLogRepository) error {
		if err := userRepo.Update(&updated); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditLog{
			ID:          uuid.New().String(),
			TableName:   "users",
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
	return auth.ToUserResponse(&updated), nil
}
