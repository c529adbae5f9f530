package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/parts-tracker/internal/application/stock"
	"github.com/tu-usuario/parts-tracker/internal/domain/entity"
	"github.com/tu-usuario/parts-tracker/internal/domain/repository"
)

var (
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ stock.MovementStore           = (*MovementRepo)(nil)
)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). El libro es append-only: no hay UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append persiste una entrada del libro y asigna su ID autoincremental.
func (r *MovementRepo) Append(movement *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (part_id, delta, kind, note, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		movement.PartID, movement.Delta, string(movement.Kind), movement.Note,
		movement.ActorID, movement.CreatedAt,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}

// HistoryFor lista los movimientos de una parte, más recientes primero, con
// el nombre del actor resuelto (LEFT JOIN: los movimientos de sistema no
// tienen actor).
func (r *MovementRepo) HistoryFor(partID string) ([]*entity.Movement, error) {
	query := `
		SELECT m.id, m.part_id, m.delta, m.kind, m.note, m.actor_id, COALESCE(u.name, ''), m.created_at
		FROM stock_movements m
		LEFT JOIN users u ON u.id = m.actor_id
		WHERE m.part_id = $1
		ORDER BY m.created_at DESC, m.id DESC`
	rows, err := r.q.Query(context.Background(), query, partID)
	if err != nil {
		return nil, fmt.Errorf("history for part: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var kind string
		if err := rows.Scan(&m.ID, &m.PartID, &m.Delta, &kind, &m.Note, &m.ActorID, &m.ActorName, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Kind = entity.MovementKind(kind)
		list = append(list, &m)
	}
	return list, rows.Err()
}
