package dto

// DashboardSummary resumen del inventario para la pantalla principal.
// LowStockParts y OutOfStockParts son conteos disjuntos.
type DashboardSummary struct {
	TotalParts      int            `json:"total_parts"`
	LowStockParts   int            `json:"low_stock_parts"`
	OutOfStockParts int            `json:"out_of_stock_parts"`
	Categories      int            `json:"categories"`
	LatestParts     []PartResponse `json:"latest_parts"`
}
