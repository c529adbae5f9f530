package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/parts-tracker/internal/application/analytics"
	"github.com/tu-usuario/parts-tracker/internal/domain/entity"
	"github.com/tu-usuario/parts-tracker/internal/infrastructure/memory"
)

// GetSummary combina conteos y últimas partes en una sola respuesta.
func TestDashboard_GetSummary(t *testing.T) {
	store := memory.NewStore()
	now := time.Now()
	seed := []struct {
		pn        string
		qty       int
		threshold int
	}{
		{"A-1", 0, 5},  // agotada
		{"B-2", 2, 5},  // baja
		{"C-3", 50, 5}, // sana
	}
	for i, s := range seed {
		require.NoError(t, store.Create(&entity.Part{
			PartNumber:        s.pn,
			Name:              s.pn,
			Category:          "General",
			Quantity:          s.qty,
			LowStockThreshold: s.threshold,
			CreatedAt:         now.Add(time.Duration(i) * time.Minute),
			UpdatedAt:         now,
		}))
	}

	uc := analytics.NewDashboardUseCase(store)
	sum, err := uc.GetSummary()
	require.NoError(t, err)

	assert.Equal(t, 3, sum.TotalParts)
	assert.Equal(t, 1, sum.LowStockParts)
	assert.Equal(t, 1, sum.OutOfStockParts)
	assert.Equal(t, 1, sum.Categories)
	require.Len(t, sum.LatestParts, 3)
	assert.Equal(t, "C-3", sum.LatestParts[0].PartNumber, "las más recientes primero")
}

func TestDashboard_SummaryVacio(t *testing.T) {
	uc := analytics.NewDashboardUseCase(memory.NewStore())
	sum, err := uc.GetSummary()
	require.NoError(t, err)

	assert.Equal(t, 0, sum.TotalParts)
	assert.Empty(t, sum.LatestParts)
}
