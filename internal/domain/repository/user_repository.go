package repository

import "github.com/novuscrm/novus-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// No hay Delete: los usuarios solo se desactivan.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
}
