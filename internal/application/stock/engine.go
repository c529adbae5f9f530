package stock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tu-usuario/parts-tracker/internal/domain"
	"github.com/tu-usuario/parts-tracker/internal/domain/entity"
)

// Engine es la única vía autorizada para cambiar la cantidad de una parte.
// Cada cambio exitoso escribe la nueva cantidad y exactamente una entrada en
// el libro de movimientos, dentro de la misma transacción: o persisten ambos
// o ninguno. El bloqueo de fila en la lectura serializa mutaciones
// concurrentes sobre la misma parte; partes distintas no comparten estado.
type Engine struct {
	txRunner TxRunner
}

// NewEngine construye el motor sobre el runner transaccional inyectado.
func NewEngine(txRunner TxRunner) *Engine {
	return &Engine{txRunner: txRunner}
}

// ChangeInput entrada para ApplyStockChange.
type ChangeInput struct {
	PartID  string
	Delta   int // positivo entrada, negativo salida
	Kind    entity.MovementKind
	Note    string
	ActorID *string // nil = cambio iniciado por el sistema
}

// ApplyStockChange aplica un delta con firma a la cantidad de una parte.
//
// Dentro de la transacción: lee la cantidad actual bloqueando la fila,
// calcula la nueva, rechaza con ErrNegativeStock si quedaría por debajo de
// cero (sin efectos: ni cantidad ni libro cambian), y si es válida escribe la
// cantidad y agrega el movimiento. Devuelve la parte ya mutada.
//
// Fallas de negocio (ErrNotFound, ErrNegativeStock) se devuelven tal cual;
// cualquier falla de almacenamiento sale envuelta en ErrTransient. El motor
// no reintenta: reintentar es seguro para el caller porque nunca queda estado
// parcial.
func (e *Engine) ApplyStockChange(ctx context.Context, in ChangeInput) (*entity.Part, error) {
	if in.PartID == "" || !in.Kind.Valid() || in.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Part
	err := e.txRunner.Run(ctx, func(parts PartStore, movements MovementStore) error {
		part, err := parts.GetForUpdate(in.PartID)
		if err != nil {
			return err
		}
		if part == nil {
			return domain.ErrNotFound
		}

		newQuantity := part.Quantity + in.Delta
		if newQuantity < 0 {
			return domain.ErrNegativeStock
		}

		if err := parts.SetQuantity(part.ID, newQuantity); err != nil {
			return err
		}

		now := time.Now()
		movement := &entity.Movement{
			PartID:    part.ID,
			Delta:     in.Delta,
			Kind:      in.Kind,
			Note:      in.Note,
			ActorID:   in.ActorID,
			CreatedAt: now,
		}
		if err := movements.Append(movement); err != nil {
			return err
		}

		part.Quantity = newQuantity
		part.UpdatedAt = now
		updated = part
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return updated, nil
}

// AddStock entrada de stock: qty positivo del caller, kind "add".
func (e *Engine) AddStock(ctx context.Context, partID string, qty int, actorID *string, note string) (*entity.Part, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return e.ApplyStockChange(ctx, ChangeInput{
		PartID:  partID,
		Delta:   qty,
		Kind:    entity.KindAdd,
		Note:    note,
		ActorID: actorID,
	})
}

// SellStock venta: qty positivo del caller, delta negativo, kind "sale".
// El wording "no se puede vender más de lo disponible" es del handler; aquí
// la condición sigue siendo ErrNegativeStock.
func (e *Engine) SellStock(ctx context.Context, partID string, qty int, actorID *string, note string) (*entity.Part, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return e.ApplyStockChange(ctx, ChangeInput{
		PartID:  partID,
		Delta:   -qty,
		Kind:    entity.KindSale,
		Note:    note,
		ActorID: actorID,
	})
}

// Adjust corrección con delta de cualquier signo (distinto de cero),
// kind "adjustment". Lo usan el endpoint de stock y los jobs de importación.
func (e *Engine) Adjust(ctx context.Context, partID string, delta int, actorID *string, note string) (*entity.Part, error) {
	return e.ApplyStockChange(ctx, ChangeInput{
		PartID:  partID,
		Delta:   delta,
		Kind:    entity.KindAdjustment,
		Note:    note,
		ActorID: actorID,
	})
}

// classify separa fallas de negocio de fallas de infraestructura.
func classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrNegativeStock),
		errors.Is(err, domain.ErrInvalidInput):
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrTransient, err)
}
