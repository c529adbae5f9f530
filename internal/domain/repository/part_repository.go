package repository

import "github.com/tu-usuario/parts-tracker/internal/domain/entity"

// Campos de orden aceptados por PartFilter.SortBy. Cualquier otro valor cae al
// orden por defecto (created_at DESC).
const (
	SortPartNumber   = "partNumber"
	SortName         = "name"
	SortQuantity     = "quantity"
	SortCategory     = "category"
	SortPrice        = "price"
	SortCreatedAt    = "createdAt"
	SortManufacturer = "manufacturer"
)

// PartFilter criterios de listado; las condiciones se combinan con AND.
type PartFilter struct {
	Search    string // sobre part_number, name, category, manufacturer, description
	Category  string // igualdad exacta
	LowStock  bool   // quantity <= low_stock_threshold
	SortBy    string // uno de Sort*; desconocido = default
	SortOrder string // "asc" | "desc" (default desc)
}

// PartRepository define el puerto de persistencia para Part (DIP).
// No expone escritura de Quantity: eso pasa solo por el motor de stock.
type PartRepository interface {
	Create(part *entity.Part) error
	GetByID(id string) (*entity.Part, error)
	GetByPartNumber(partNumber string) (*entity.Part, error)
	List(filter PartFilter) ([]*entity.Part, error)
	Update(part *entity.Part) error
	Delete(id string) error
	Categories() ([]string, error)
}
