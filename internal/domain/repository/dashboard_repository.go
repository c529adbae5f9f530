package repository

import "github.com/tu-usuario/parts-tracker/internal/domain/entity"

// DashboardCounts conteos agregados del catálogo. LowStockParts y
// OutOfStockParts son categorías disjuntas: low = 0 < qty <= umbral,
// out = qty <= 0.
type DashboardCounts struct {
	TotalParts      int
	LowStockParts   int
	OutOfStockParts int
	Categories      int
}

// DashboardRepository consultas de solo lectura para el dashboard y las
// alertas de stock bajo. Se recalculan en cada llamada; no hay capa de caché.
type DashboardRepository interface {
	Counts() (DashboardCounts, error)
	LatestParts(limit int) ([]*entity.Part, error)
	// LowStockParts lista las partes con qty <= umbral ordenadas por severidad
	// ascendente (ratio qty/umbral; umbral cero cuenta como severidad máxima).
	LowStockParts() ([]*entity.Part, error)
}
