// Package brand implementa el filtro de aislamiento por marca: decide qué
// filas puede ver o mutar una identidad según su conjunto de marcas habilitadas.
package brand

import "github.com/novuscrm/novus-api/internal/domain/entity"

// Scope es la vista de autorización de una identidad: rol + marcas habilitadas.
// Se construye una vez por request a partir del token y se propaga explícitamente
// hacia los casos de uso y repositorios.
type Scope struct {
	Role     string
	BrandIDs []string
}

// IsAdmin indica si el scope omite por completo el filtrado por marca.
func (s Scope) IsAdmin() bool {
	return s.Role == entity.RoleAdmin
}

// CanAccess decide si un recurso de una sola marca es visible/mutable.
func (s Scope) CanAccess(brandID string) bool {
	if s.IsAdmin() {
		return true
	}
	for _, id := range s.BrandIDs {
		if id == brandID {
			return true
		}
	}
	return false
}

// Intersects decide una capacidad a nivel de ruta: autorizado si al menos una
// de las marcas requeridas está en las habilitadas (Admin siempre pasa).
func (s Scope) Intersects(required []string) bool {
	if s.IsAdmin() {
		return true
	}
	for _, req := range required {
		for _, id := range s.BrandIDs {
			if id == req {
				return true
			}
		}
	}
	return false
}

// Empty indica que un no-admin no tiene ninguna marca habilitada. Los listados
// deben responder con resultado vacío, nunca con error, para no filtrar
// existencia vía la distinción error-vs-vacío.
func (s Scope) Empty() bool {
	return !s.IsAdmin() && len(s.BrandIDs) == 0
}
