// Package analytics contiene las vistas derivadas de solo lectura: el
// resumen del dashboard y el listado de stock bajo. Todo se recalcula en
// cada llamada; no hay caché ni protocolo de invalidación.
package analytics

import (
	"fmt"

	"github.com/tu-usuario/parts-tracker/internal/application/dto"
	"github.com/tu-usuario/parts-tracker/internal/domain/repository"
)

const dashboardLatestParts = 5 // partes recientes en el widget del dashboard

// DashboardUseCase genera el resumen del inventario.
//
// Fuente de datos: DashboardRepository (consultas read-only). No toca las
// tablas directamente; delega todo en el repositorio.
type DashboardUseCase struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dashboardRepo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{dashboardRepo: dashboardRepo}
}

// GetSummary construye el DashboardSummary.
//
// Dos consultas en paralelo:
//  1. Counts()        → totales, stock bajo, agotados, categorías
//  2. LatestParts(5)  → últimas partes creadas
func (uc *DashboardUseCase) GetSummary() (*dto.DashboardSummary, error) {
	type countsResult struct {
		counts repository.DashboardCounts
		err    error
	}
	type latestResult struct {
		parts []dto.PartResponse
		err   error
	}

	countsCh := make(chan countsResult, 1)
	latestCh := make(chan latestResult, 1)

	go func() {
		counts, err := uc.dashboardRepo.Counts()
		countsCh <- countsResult{counts, err}
	}()
	go func() {
		parts, err := uc.dashboardRepo.LatestParts(dashboardLatestParts)
		if err != nil {
			latestCh <- latestResult{nil, err}
			return
		}
		latestCh <- latestResult{dto.FromParts(parts), nil}
	}()

	counts := <-countsCh
	latest := <-latestCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteos: %w", counts.err)
	}
	if latest.err != nil {
		return nil, fmt.Errorf("dashboard: últimas partes: %w", latest.err)
	}

	return &dto.DashboardSummary{
		TotalParts:      counts.counts.TotalParts,
		LowStockParts:   counts.counts.LowStockParts,
		OutOfStockParts: counts.counts.OutOfStockParts,
		Categories:      counts.counts.Categories,
		LatestParts:     latest.parts,
	}, nil
}

// LowStock devuelve las partes en o por debajo de su umbral, ordenadas por
// severidad (las más críticas primero; umbral cero cuenta como máxima).
func (uc *DashboardUseCase) LowStock() ([]dto.PartResponse, error) {
	parts, err := uc.dashboardRepo.LowStockParts()
	if err != nil {
		return nil, err
	}
	return dto.FromParts(parts), nil
}
