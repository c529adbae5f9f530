package stock

import (
	"context"

	"github.com/tu-usuario/parts-tracker/internal/domain/entity"
)

// PartStore primitivas de parte visibles solo dentro de la transacción del
// motor. SetQuantity no aparece en repository.PartRepository a propósito:
// cambiar la cantidad sin pasar por el motor dejaría el libro sin registro.
type PartStore interface {
	// GetForUpdate lee la parte y bloquea su fila (SELECT FOR UPDATE o
	// equivalente). Devuelve nil, nil si la parte no existe.
	GetForUpdate(id string) (*entity.Part, error)
	SetQuantity(id string, quantity int) error
}

// MovementStore append-only: la única escritura permitida sobre el libro.
type MovementStore interface {
	Append(movement *entity.Movement) error
}

// TxRunner ejecuta fn dentro de una transacción, pasando los stores atados a
// esa tx. Contrato: si fn devuelve error o el commit falla, ningún efecto de
// fn persiste; si Run devuelve nil, todos persisten.
type TxRunner interface {
	Run(ctx context.Context, fn func(parts PartStore, movements MovementStore) error) error
}
