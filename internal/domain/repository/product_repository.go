package repository

import (
	"github.com/novuscrm/novus-api/internal/domain/brand"
	"github.com/novuscrm/novus-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByScope(id string, scope brand.Scope) (*entity.Product, error)
	List(scope brand.Scope, limit, offset int) ([]*entity.Product, error)
	Count(scope brand.Scope) (int, error)
	Update(product *entity.Product) error
}
