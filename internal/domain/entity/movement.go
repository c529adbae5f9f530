package entity

import "time"

// MovementKind clasifica un movimiento de stock. Tipo cerrado: los handlers
// pueden hacer switch exhaustivo sobre las tres variantes.
type MovementKind string

const (
	KindAdd        MovementKind = "add"        // entrada de stock
	KindSale       MovementKind = "sale"       // venta
	KindAdjustment MovementKind = "adjustment" // corrección manual o importación
)

// Valid reporta si el kind es una de las variantes conocidas.
func (k MovementKind) Valid() bool {
	switch k {
	case KindAdd, KindSale, KindAdjustment:
		return true
	}
	return false
}

// Movement es una entrada del libro de movimientos: un registro inmutable por
// cada cambio de cantidad de una parte. Nunca se actualiza ni se borra; al
// eliminar una parte sus movimientos se conservan para auditoría.
type Movement struct {
	ID        int64 // autoincremental
	PartID    string
	Delta     int // positivo = entrada, negativo = salida
	Kind      MovementKind
	Note      string
	ActorID   *string // nil para cambios iniciados por el sistema
	ActorName string  // resuelto al leer el historial; vacío si no hay actor
	CreatedAt time.Time
}
