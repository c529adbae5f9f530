package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicatePartNumber = errors.New("el número de parte ya existe")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrNegativeStock       = errors.New("la cantidad no puede quedar por debajo de cero")

	// ErrTransient señala fallas de almacenamiento/transacción (timeout, deadlock,
	// conexión perdida). El caller puede reintentar la operación completa: la
	// transacción garantiza que no quedó estado parcial.
	ErrTransient = errors.New("falla transitoria de almacenamiento")
)
