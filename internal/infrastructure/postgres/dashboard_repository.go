package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/parts-tracker/internal/domain/entity"
	"github.com/tu-usuario/parts-tracker/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el dashboard y las alertas de
// stock bajo. Sin caché: cada llamada recalcula contra la DB.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador de dashboard.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// Counts devuelve los conteos agregados. Stock bajo (0 < qty <= umbral) y
// agotado (qty <= 0) son disjuntos.
func (r *DashboardRepo) Counts() (repository.DashboardCounts, error) {
	const query = `
		SELECT
		    COUNT(*)                                                               AS total,
		    COUNT(*) FILTER (WHERE quantity > 0 AND quantity <= low_stock_threshold) AS low_stock,
		    COUNT(*) FILTER (WHERE quantity <= 0)                                  AS out_of_stock,
		    COUNT(DISTINCT category) FILTER (WHERE category <> '')                 AS categories
		FROM parts`
	var c repository.DashboardCounts
	err := r.pool.QueryRow(context.Background(), query).Scan(
		&c.TotalParts, &c.LowStockParts, &c.OutOfStockParts, &c.Categories,
	)
	if err != nil {
		return repository.DashboardCounts{}, fmt.Errorf("dashboard counts: %w", err)
	}
	return c, nil
}

// LatestParts devuelve las N partes creadas más recientemente.
func (r *DashboardRepo) LatestParts(limit int) ([]*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("latest parts: %w", err)
	}
	defer rows.Close()
	return scanParts(rows)
}

// LowStockParts lista qty <= umbral ordenado por severidad ascendente.
// Umbral cero se trata como severidad máxima (ratio 0) en vez de dividir por
// cero, así esas partes encabezan la lista.
func (r *DashboardRepo) LowStockParts() ([]*entity.Part, error) {
	query := `
		SELECT ` + partColumns + `
		FROM parts
		WHERE quantity <= low_stock_threshold
		ORDER BY CASE
		    WHEN low_stock_threshold = 0 THEN 0
		    ELSE quantity::float8 / low_stock_threshold
		END ASC, part_number ASC`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("low stock parts: %w", err)
	}
	defer rows.Close()
	return scanParts(rows)
}
