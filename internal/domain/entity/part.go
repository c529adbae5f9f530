package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part representa un repuesto del catálogo con su cantidad actual en bodega.
// Quantity solo se modifica a través del motor de stock (transaccional);
// el resto de atributos se editan por el CRUD normal.
type Part struct {
	ID                string
	PartNumber        string // único
	Name              string
	Description       string
	Category          string
	Manufacturer      string
	Location          string
	Unit              string // etiqueta de unidad de medida, ej. "pcs"
	Price             decimal.Decimal
	Quantity          int // invariante: siempre >= 0
	LowStockThreshold int // >= 0
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si la parte está en o por debajo de su umbral.
func (p *Part) IsLowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}

// IsOutOfStock indica si la parte no tiene existencias.
func (p *Part) IsOutOfStock() bool {
	return p.Quantity <= 0
}
