package dto

import "time"

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse usuario sin hash de contraseña.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	BrandIDs  []string  `json:"brandIds"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginResponse resultado de login. El token viaja además en la cookie
// HTTP-only novus_auth; aquí solo se devuelve el usuario.
type LoginResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// MeResponse identidad decodificada del token.
type MeResponse struct {
	UserID   string   `json:"user_id"`
	Role     string   `json:"role"`
	BrandIDs []string `json:"brand_ids"`
}

// CreateUserRequest alta de usuario (solo Admin).
type CreateUserRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     string   `json:"role"`
	BrandIDs []string `json:"brand_ids"`
}

// UpdateUserRequest cambios de rol/marcas/activo (solo Admin). Punteros para
// distinguir "no enviado" de valor cero.
type UpdateUserRequest struct {
	Role     *string   `json:"role"`
	BrandIDs *[]string `json:"brand_ids"`
	IsActive *bool     `json:"is_active"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Data []UserResponse `json:"data"`
}
