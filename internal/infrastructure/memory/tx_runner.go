package memory

import (
	"context"
	"time"

	"github.com/tu-usuario/parts-tracker/internal/application/stock"
	"github.com/tu-usuario/parts-tracker/internal/domain"
	"github.com/tu-usuario/parts-tracker/internal/domain/entity"
)

var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner unidad atómica sobre el Store en memoria. Toma el mutex durante
// todo fn (serializa mutaciones concurrentes, como el row lock en postgres)
// y guarda un snapshot del estado mutable: si fn falla, lo restaura, así que
// ni la cantidad ni el libro conservan efectos parciales.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn bajo el lock con semántica todo-o-nada.
func (r *TxRunner) Run(ctx context.Context, fn func(parts stock.PartStore, movements stock.MovementStore) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// Snapshot para rollback.
	savedParts := make(map[string]entity.Part, len(s.parts))
	for id, p := range s.parts {
		savedParts[id] = p
	}
	savedMovLen := len(s.movements)
	savedNextID := s.nextMovID

	err := fn(&txPartStore{s: s}, &txMovementStore{s: s})
	if err != nil {
		s.parts = savedParts
		s.movements = s.movements[:savedMovLen]
		s.nextMovID = savedNextID
		return err
	}
	return nil
}

// txPartStore acceso a partes con el lock ya tomado por Run.
type txPartStore struct {
	s *Store
}

// GetForUpdate devuelve una copia de la parte; el lock del Run hace las veces
// de bloqueo de fila. nil, nil si no existe.
func (t *txPartStore) GetForUpdate(id string) (*entity.Part, error) {
	return t.s.partByID(id), nil
}

// SetQuantity escribe la nueva cantidad. Solo el motor de stock llega aquí.
func (t *txPartStore) SetQuantity(id string, quantity int) error {
	p, ok := t.s.parts[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	p.UpdatedAt = time.Now()
	t.s.parts[id] = p
	return nil
}

// txMovementStore append al libro con el lock ya tomado por Run.
type txMovementStore struct {
	s *Store
}

// Append asigna el ID autoincremental y agrega la entrada.
func (t *txMovementStore) Append(movement *entity.Movement) error {
	movement.ID = t.s.nextMovID
	t.s.nextMovID++
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = time.Now()
	}
	t.s.movements = append(t.s.movements, *movement)
	return nil
}
