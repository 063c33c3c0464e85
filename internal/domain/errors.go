package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// ErrNotFound cubre tanto "no existe" como "existe pero fuera de las marcas del
// usuario": ambos casos deben ser indistinguibles hacia afuera para no confirmar
// la existencia de registros ajenos.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrNoEmail            = errors.New("el lead no tiene dirección de email")
	ErrNoMobile           = errors.New("el lead no tiene número de móvil")
	ErrDeliveryFailed     = errors.New("fallo en el envío al proveedor")
)
