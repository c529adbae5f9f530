package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/parts-tracker/internal/application/dto"
	"github.com/tu-usuario/parts-tracker/internal/application/usecase"
	"github.com/tu-usuario/parts-tracker/internal/domain"
	"github.com/tu-usuario/parts-tracker/internal/infrastructure/memory"
)

func newPartUC() (*usecase.PartUseCase, *memory.Store) {
	store := memory.NewStore()
	return usecase.NewPartUseCase(store, store), store
}

func strPtr(s string) *string { return &s }

// Crear con el mínimo de campos aplica defaults: umbral 10, unidad pcs.
func TestPartUseCase_CreateAplicaDefaults(t *testing.T) {
	uc, _ := newPartUC()

	out, err := uc.Create(dto.CreatePartRequest{PartNumber: "BRK-1001", Name: "Pastilla"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, 10, out.LowStockThreshold)
	assert.Equal(t, "pcs", out.Unit)
	assert.Equal(t, 0, out.Quantity)
}

func TestPartUseCase_CreateRechazaPrecioNegativo(t *testing.T) {
	uc, _ := newPartUC()

	_, err := uc.Create(dto.CreatePartRequest{
		PartNumber: "BRK-1001",
		Name:       "Pastilla",
		Price:      decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Update parcial: solo los campos presentes cambian, el resto se conserva.
func TestPartUseCase_UpdateParcial(t *testing.T) {
	uc, _ := newPartUC()
	created, err := uc.Create(dto.CreatePartRequest{
		PartNumber:   "BRK-1001",
		Name:         "Pastilla",
		Category:     "Frenos",
		Manufacturer: "Brembo",
		Quantity:     7,
	})
	require.NoError(t, err)

	out, err := uc.Update(created.ID, dto.UpdatePartRequest{Name: strPtr("Pastilla premium")})
	require.NoError(t, err)
	assert.Equal(t, "Pastilla premium", out.Name)
	assert.Equal(t, "Frenos", out.Category, "los campos ausentes no cambian")
	assert.Equal(t, "Brembo", out.Manufacturer)
	assert.Equal(t, 7, out.Quantity, "la cantidad no es editable por este camino")
}

func TestPartUseCase_UpdateInexistente(t *testing.T) {
	uc, _ := newPartUC()

	_, err := uc.Update("no-existe", dto.UpdatePartRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPartUseCase_HistoryParteInexistente(t *testing.T) {
	uc, _ := newPartUC()

	_, err := uc.History("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// La existencia inicial no genera movimiento: el libro nace vacío.
func TestPartUseCase_CreateNoEscribeEnElLibro(t *testing.T) {
	uc, store := newPartUC()
	created, err := uc.Create(dto.CreatePartRequest{PartNumber: "BRK-1001", Name: "Pastilla", Quantity: 50})
	require.NoError(t, err)

	hist, err := store.HistoryFor(created.ID)
	require.NoError(t, err)
	assert.Empty(t, hist)
}
