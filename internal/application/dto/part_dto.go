package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/parts-tracker/internal/domain/entity"
)

// CreatePartRequest entrada para crear una parte. Quantity es la existencia
// inicial: no genera movimiento en el libro (solo los cambios posteriores).
type CreatePartRequest struct {
	PartNumber        string          `json:"part_number" validate:"required,min=1,max=100"`
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Description       string          `json:"description"`
	Category          string          `json:"category" validate:"max=100"`
	Manufacturer      string          `json:"manufacturer" validate:"max=200"`
	Location          string          `json:"location" validate:"max=200"`
	Unit              string          `json:"unit" validate:"max=20"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int             `json:"quantity" validate:"min=0"`
	LowStockThreshold *int            `json:"low_stock_threshold" validate:"omitempty,min=0"`
}

// UpdatePartRequest entrada para actualizar atributos (sin Quantity: la
// cantidad solo cambia por los endpoints de stock).
type UpdatePartRequest struct {
	PartNumber        *string          `json:"part_number" validate:"omitempty,min=1,max=100"`
	Name              *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description       *string          `json:"description"`
	Category          *string          `json:"category" validate:"omitempty,max=100"`
	Manufacturer      *string          `json:"manufacturer" validate:"omitempty,max=200"`
	Location          *string          `json:"location" validate:"omitempty,max=200"`
	Unit              *string          `json:"unit" validate:"omitempty,max=20"`
	Price             *decimal.Decimal `json:"price"`
	LowStockThreshold *int             `json:"low_stock_threshold" validate:"omitempty,min=0"`
}

// PartResponse salida de una parte.
type PartResponse struct {
	ID                string          `json:"id"`
	PartNumber        string          `json:"part_number"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Category          string          `json:"category"`
	Manufacturer      string          `json:"manufacturer"`
	Location          string          `json:"location"`
	Unit              string          `json:"unit"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int             `json:"quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// FromPart convierte la entidad a su DTO de salida.
func FromPart(p *entity.Part) *PartResponse {
	if p == nil {
		return nil
	}
	return &PartResponse{
		ID:                p.ID,
		PartNumber:        p.PartNumber,
		Name:              p.Name,
		Description:       p.Description,
		Category:          p.Category,
		Manufacturer:      p.Manufacturer,
		Location:          p.Location,
		Unit:              p.Unit,
		Price:             p.Price,
		Quantity:          p.Quantity,
		LowStockThreshold: p.LowStockThreshold,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// FromParts convierte un slice de entidades.
func FromParts(parts []*entity.Part) []PartResponse {
	out := make([]PartResponse, 0, len(parts))
	for _, p := range parts {
		out = append(out, *FromPart(p))
	}
	return out
}

// StockChangeRequest entrada del endpoint genérico de stock (ajustes).
type StockChangeRequest struct {
	QuantityChange int    `json:"quantity_change" validate:"required"`
	Notes          string `json:"notes" validate:"max=500"`
	MovementType   string `json:"movement_type" validate:"omitempty,oneof=add sale adjustment"`
}

// SellRequest entrada del endpoint de venta. Quantity por defecto 1.
type SellRequest struct {
	Quantity int    `json:"quantity" validate:"omitempty,min=1"`
	Notes    string `json:"notes" validate:"max=500"`
}

// MovementResponse una entrada del historial de stock.
type MovementResponse struct {
	ID        int64     `json:"id"`
	PartID    string    `json:"part_id"`
	Delta     int       `json:"delta"`
	Kind      string    `json:"kind"`
	Note      string    `json:"note"`
	ActorID   *string   `json:"actor_id"`
	ActorName string    `json:"actor_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FromMovements convierte el historial a DTOs.
func FromMovements(movements []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, MovementResponse{
			ID:        m.ID,
			PartID:    m.PartID,
			Delta:     m.Delta,
			Kind:      string(m.Kind),
			Note:      m.Note,
			ActorID:   m.ActorID,
			ActorName: m.ActorName,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}
