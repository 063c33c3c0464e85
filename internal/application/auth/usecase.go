package auth

import (
	"github.com/novuscrm/novus-api/internal/application/dto"
	"github.com/novuscrm/novus-api/internal/domain"
	"github.com/novuscrm/novus-api/internal/domain/entity"
	"github.com/novuscrm/novus-api/internal/domain/repository"
	"github.com/novuscrm/novus-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de autenticación: login con cookie de sesión.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password contra el hash bcrypt y genera el JWT con
// rol y marcas habilitadas. Cuenta inexistente, inactiva o password incorrecto
// devuelven el mismo ErrUnauthorized: el mensaje hacia afuera es genérico.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (string, *dto.UserResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !user.IsActive {
		return "", nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, user.BrandIDs, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return "", nil, err
	}
	return token, ToUserResponse(user), nil
}

// ToUserResponse convierte la entidad a su representación sin hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	brands := u.BrandIDs
	if brands == nil {
		brands = []string{}
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		BrandIDs:  brands,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
