package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/parts-tracker/internal/application/stock"
	"github.com/tu-usuario/parts-tracker/internal/domain"
	"github.com/tu-usuario/parts-tracker/internal/domain/entity"
	"github.com/tu-usuario/parts-tracker/internal/domain/repository"
)

var (
	_ repository.PartRepository = (*PartRepo)(nil)
	_ stock.PartStore           = (*PartRepo)(nil)
)

const partColumns = `id, part_number, name, description, category, manufacturer, location, unit, price, quantity, low_stock_threshold, created_at, updated_at`

// sortFields mapea los nombres de campo del frontend a columnas reales.
// Campo desconocido cae al default created_at DESC.
var sortFields = map[string]string{
	repository.SortPartNumber:   "part_number",
	repository.SortName:         "name",
	repository.SortQuantity:     "quantity",
	repository.SortCategory:     "category",
	repository.SortPrice:        "price",
	repository.SortCreatedAt:    "created_at",
	repository.SortManufacturer: "manufacturer",
}

// PartRepo implementación de PartRepository sobre PostgreSQL (usable con pool
// o tx). Atado a una tx, además implementa el puerto stock.PartStore:
// GetForUpdate y SetQuantity solo los invoca el motor de stock.
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de partes. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// Create persiste una nueva parte. ErrDuplicatePartNumber si el número ya existe.
func (r *PartRepo) Create(part *entity.Part) error {
	if part.ID == "" {
		part.ID = uuid.New().String()
	}
	query := `
		INSERT INTO parts (` + partColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		part.ID, part.PartNumber, part.Name, part.Description, part.Category,
		part.Manufacturer, part.Location, part.Unit, part.Price,
		part.Quantity, part.LowStockThreshold,
	).Scan(&part.CreatedAt, &part.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePartNumber
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// GetByID obtiene una parte por ID. nil, nil si no existe.
func (r *PartRepo) GetByID(id string) (*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByPartNumber obtiene una parte por su número único. nil, nil si no existe.
func (r *PartRepo) GetByPartNumber(partNumber string) (*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE part_number = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, partNumber))
}

// List aplica búsqueda, filtros y orden. Las condiciones se combinan con AND.
func (r *PartRepo) List(filter repository.PartFilter) ([]*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts`
	var conditions []string
	var args []any

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(part_number ILIKE $%d OR name ILIKE $%d OR category ILIKE $%d OR manufacturer ILIKE $%d OR description ILIKE $%d)",
			n, n, n, n, n))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.LowStock {
		conditions = append(conditions, "quantity <= low_stock_threshold")
	}
	for i, c := range conditions {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}

	if column, ok := sortFields[filter.SortBy]; ok {
		order := "DESC"
		if filter.SortOrder == "asc" {
			order = "ASC"
		}
		query += fmt.Sprintf(" ORDER BY %s %s", column, order)
	} else {
		query += " ORDER BY created_at DESC"
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	return scanParts(rows)
}

// Update actualiza los atributos editables de una parte. No toca quantity:
// la cantidad solo cambia vía el motor de stock. ErrNotFound si no existe;
// ErrDuplicatePartNumber si renombra a un número ya usado.
func (r *PartRepo) Update(part *entity.Part) error {
	query := `
		UPDATE parts
		SET part_number = $2, name = $3, description = $4, category = $5,
		    manufacturer = $6, location = $7, unit = $8, price = $9,
		    low_stock_threshold = $10, updated_at = now()
		WHERE id = $1
		RETURNING quantity, created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		part.ID, part.PartNumber, part.Name, part.Description, part.Category,
		part.Manufacturer, part.Location, part.Unit, part.Price, part.LowStockThreshold,
	).Scan(&part.Quantity, &part.CreatedAt, &part.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePartNumber
		}
		return fmt.Errorf("update part: %w", err)
	}
	return nil
}

// Delete elimina la parte. Sus movimientos quedan en el libro (sin cascade).
func (r *PartRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM parts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Categories devuelve las categorías distintas no vacías.
func (r *PartRepo) Categories() ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT DISTINCT category FROM parts WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetForUpdate obtiene la parte y bloquea su fila (SELECT FOR UPDATE).
// Punto de serialización del motor de stock: dos mutaciones concurrentes
// sobre la misma parte no pueden leer la misma cantidad inicial.
func (r *PartRepo) GetForUpdate(id string) (*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// SetQuantity escribe la nueva cantidad. Primitiva interna del motor de
// stock; usarla fuera de su transacción dejaría el libro sin registro.
func (r *PartRepo) SetQuantity(id string, quantity int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE parts SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity)
	if err != nil {
		return fmt.Errorf("set part quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PartRepo) scanOne(row pgx.Row) (*entity.Part, error) {
	var p entity.Part
	err := row.Scan(
		&p.ID, &p.PartNumber, &p.Name, &p.Description, &p.Category,
		&p.Manufacturer, &p.Location, &p.Unit, &p.Price,
		&p.Quantity, &p.LowStockThreshold, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return &p, nil
}

func scanParts(rows pgx.Rows) ([]*entity.Part, error) {
	var list []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(
			&p.ID, &p.PartNumber, &p.Name, &p.Description, &p.Category,
			&p.Manufacturer, &p.Location, &p.Unit, &p.Price,
			&p.Quantity, &p.LowStockThreshold, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
