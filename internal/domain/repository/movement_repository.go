package repository

import "github.com/tu-usuario/parts-tracker/internal/domain/entity"

// MovementRepository define el puerto de lectura del libro de movimientos.
// El libro es write-once: la única escritura (Append) vive en el puerto
// transaccional del motor de stock, no aquí.
type MovementRepository interface {
	// HistoryFor devuelve los movimientos de una parte, más recientes primero,
	// con el nombre del actor resuelto cuando existe.
	HistoryFor(partID string) ([]*entity.Movement, error)
}
