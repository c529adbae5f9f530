// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Sirve como backend embebido para desarrollo y como doble de
// pruebas del motor de stock: mismo contrato transaccional que postgres,
// sin base de datos.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/parts-tracker/internal/domain"
	"github.com/tu-usuario/parts-tracker/internal/domain/entity"
	"github.com/tu-usuario/parts-tracker/internal/domain/repository"
)

var (
	_ repository.PartRepository      = (*Store)(nil)
	_ repository.MovementRepository  = (*Store)(nil)
	_ repository.DashboardRepository = (*Store)(nil)
)

// Store estado en memoria protegido por un mutex único. El mutex es más
// grueso que el bloqueo por fila de postgres (serializa también partes
// distintas), pero cumple el mismo contrato de aislamiento.
type Store struct {
	mu         sync.Mutex
	parts      map[string]entity.Part
	movements  []entity.Movement
	users      map[string]entity.User
	nextMovID  int64
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		parts:     make(map[string]entity.Part),
		users:     make(map[string]entity.User),
		nextMovID: 1,
	}
}

// ── PartRepository ────────────────────────────────────────────────────────────

// Create persiste una nueva parte. Genera ID y timestamps si faltan.
func (s *Store) Create(part *entity.Part) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.parts {
		if p.PartNumber == part.PartNumber {
			return domain.ErrDuplicatePartNumber
		}
	}
	if part.ID == "" {
		part.ID = uuid.New().String()
	}
	now := time.Now()
	if part.CreatedAt.IsZero() {
		part.CreatedAt = now
		part.UpdatedAt = now
	}
	s.parts[part.ID] = *part
	return nil
}

// GetByID devuelve una copia de la parte, o nil, nil si no existe.
func (s *Store) GetByID(id string) (*entity.Part, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.partByID(id), nil
}

// GetByPartNumber devuelve la parte con ese número, o nil, nil.
func (s *Store) GetByPartNumber(partNumber string) (*entity.Part, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.parts {
		if p.PartNumber == partNumber {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

// List aplica filtro (AND) y orden; campo de orden desconocido cae al
// default created_at DESC.
func (s *Store) List(filter repository.PartFilter) ([]*entity.Part, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*entity.Part
	for _, p := range s.parts {
		if !matches(p, filter) {
			continue
		}
		cp := p
		out = append(out, &cp)
	}
	sortParts(out, filter.SortBy, filter.SortOrder)
	return out, nil
}

func matches(p entity.Part, f repository.PartFilter) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		hay := strings.ToLower(strings.Join([]string{
			p.PartNumber, p.Name, p.Category, p.Manufacturer, p.Description,
		}, "\x00"))
		if !strings.Contains(hay, needle) {
			return false
		}
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.LowStock && p.Quantity > p.LowStockThreshold {
		return false
	}
	return true
}

func sortParts(parts []*entity.Part, sortBy, sortOrder string) {
	asc := sortOrder == "asc"
	var less func(a, b *entity.Part) bool
	switch sortBy {
	case repository.SortPartNumber:
		less = func(a, b *entity.Part) bool { return a.PartNumber < b.PartNumber }
	case repository.SortName:
		less = func(a, b *entity.Part) bool { return a.Name < b.Name }
	case repository.SortQuantity:
		less = func(a, b *entity.Part) bool { return a.Quantity < b.Quantity }
	case repository.SortCategory:
		less = func(a, b *entity.Part) bool { return a.Category < b.Category }
	case repository.SortPrice:
		less = func(a, b *entity.Part) bool { return a.Price.LessThan(b.Price) }
	case repository.SortManufacturer:
		less = func(a, b *entity.Part) bool { return a.Manufacturer < b.Manufacturer }
	case repository.SortCreatedAt:
		less = func(a, b *entity.Part) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		// Default: created_at DESC, ignorando sortOrder.
		sort.SliceStable(parts, func(i, j int) bool { return parts[i].CreatedAt.After(parts[j].CreatedAt) })
		return
	}
	sort.SliceStable(parts, func(i, j int) bool {
		if asc {
			return less(parts[i], parts[j])
		}
		return less(parts[j], parts[i])
	})
}

// Update reemplaza los atributos editables. ErrNotFound si el ID no existe;
// ErrDuplicatePartNumber si renombra a un número ya usado por otra parte.
// Quantity y CreatedAt se conservan: la cantidad solo cambia vía el motor.
func (s *Store) Update(part *entity.Part) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.parts[part.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, p := range s.parts {
		if id != part.ID && p.PartNumber == part.PartNumber {
			return domain.ErrDuplicatePartNumber
		}
	}
	part.Quantity = current.Quantity
	part.CreatedAt = current.CreatedAt
	part.UpdatedAt = time.Now()
	s.parts[part.ID] = *part
	return nil
}

// Delete elimina la parte. Sus movimientos se conservan (auditoría).
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.parts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.parts, id)
	return nil
}

// Categories devuelve las categorías distintas no vacías.
func (s *Store) Categories() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var out []string
	for _, p := range s.parts {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ── MovementRepository ────────────────────────────────────────────────────────

// HistoryFor devuelve los movimientos de la parte, más recientes primero.
func (s *Store) HistoryFor(partID string) ([]*entity.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*entity.Movement
	for i := range s.movements {
		m := s.movements[i]
		if m.PartID != partID {
			continue
		}
		if m.ActorID != nil {
			if u, ok := s.users[*m.ActorID]; ok {
				m.ActorName = u.Name
			}
		}
		out = append(out, &m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// ── DashboardRepository ───────────────────────────────────────────────────────

// Counts recalcula los conteos del dashboard. Low y out son disjuntos.
func (s *Store) Counts() (repository.DashboardCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var c repository.DashboardCounts
	categories := make(map[string]bool)
	for _, p := range s.parts {
		c.TotalParts++
		switch {
		case p.Quantity <= 0:
			c.OutOfStockParts++
		case p.Quantity <= p.LowStockThreshold:
			c.LowStockParts++
		}
		if p.Category != "" {
			categories[p.Category] = true
		}
	}
	c.Categories = len(categories)
	return c, nil
}

// LatestParts devuelve las N partes creadas más recientemente.
func (s *Store) LatestParts(limit int) ([]*entity.Part, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*entity.Part
	for _, p := range s.parts {
		cp := p
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// LowStockParts lista qty <= umbral ordenado por severidad ascendente.
// Umbral cero = severidad máxima (ratio 0), va primero.
func (s *Store) LowStockParts() ([]*entity.Part, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*entity.Part
	for _, p := range s.parts {
		if p.Quantity <= p.LowStockThreshold {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := severityRatio(out[i]), severityRatio(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i].PartNumber < out[j].PartNumber
	})
	return out, nil
}

func severityRatio(p *entity.Part) float64 {
	if p.LowStockThreshold == 0 {
		return 0
	}
	return float64(p.Quantity) / float64(p.LowStockThreshold)
}

// partByID asume lock tomado.
func (s *Store) partByID(id string) *entity.Part {
	p, ok := s.parts[id]
	if !ok {
		return nil
	}
	cp := p
	return &cp
}
