package stock_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/parts-tracker/internal/application/stock"
	"github.com/tu-usuario/parts-tracker/internal/domain"
	"github.com/tu-usuario/parts-tracker/internal/domain/entity"
	"github.com/tu-usuario/parts-tracker/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newFixture construye el motor sobre el backend en memoria y siembra una
// parte con la cantidad inicial dada.
func newFixture(t *testing.T, initialQty int) (*stock.Engine, *memory.Store, string) {
	t.Helper()
	store := memory.NewStore()
	part := &entity.Part{
		PartNumber:        "BRK-1001",
		Name:              "Pastilla de freno",
		Category:          "Frenos",
		Unit:              "pcs",
		Price:             decimal.NewFromFloat(25.50),
		Quantity:          initialQty,
		LowStockThreshold: 5,
	}
	require.NoError(t, store.Create(part))
	engine := stock.NewEngine(memory.NewTxRunner(store))
	return engine, store, part.ID
}

func currentQty(t *testing.T, store *memory.Store, id string) int {
	t.Helper()
	p, err := store.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

// failingMovements simula una falla de almacenamiento al escribir el libro.
type failingMovements struct{}

func (failingMovements) Append(*entity.Movement) error {
	return errors.New("disco lleno")
}

// failingMovementRunner delega en el runner real pero sustituye el store de
// movimientos por uno que siempre falla, para provocar el rollback.
type failingMovementRunner struct {
	inner stock.TxRunner
}

func (r failingMovementRunner) Run(ctx context.Context, fn func(parts stock.PartStore, movements stock.MovementStore) error) error {
	return r.inner.Run(ctx, func(parts stock.PartStore, _ stock.MovementStore) error {
		return fn(parts, failingMovements{})
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos básicos: add / sell / adjust
// ──────────────────────────────────────────────────────────────────────────────

// Una entrada de stock incrementa la cantidad y deja exactamente un movimiento
// con el delta y el tipo correctos.
func TestEngine_AddStock(t *testing.T) {
	engine, store, id := newFixture(t, 10)
	actor := "00000000-0000-0000-0000-0000000000aa"

	part, err := engine.AddStock(context.Background(), id, 7, &actor, "reposición")
	require.NoError(t, err)
	assert.Equal(t, 17, part.Quantity, "la parte devuelta refleja la mutación")
	assert.Equal(t, 17, currentQty(t, store, id))

	hist, err := store.HistoryFor(id)
	require.NoError(t, err)
	require.Len(t, hist, 1, "un cambio exitoso = exactamente una entrada en el libro")
	assert.Equal(t, 7, hist[0].Delta)
	assert.Equal(t, entity.KindAdd, hist[0].Kind)
	assert.Equal(t, "reposición", hist[0].Note)
	require.NotNil(t, hist[0].ActorID)
	assert.Equal(t, actor, *hist[0].ActorID)
}

func TestEngine_SellStock(t *testing.T) {
	engine, store, id := newFixture(t, 10)

	part, err := engine.SellStock(context.Background(), id, 4, nil, "Sale")
	require.NoError(t, err)
	assert.Equal(t, 6, part.Quantity)

	hist, err := store.HistoryFor(id)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, -4, hist[0].Delta, "la venta registra el delta con signo negativo")
	assert.Equal(t, entity.KindSale, hist[0].Kind)
	assert.Nil(t, hist[0].ActorID, "sin actor el movimiento queda como cambio de sistema")
}

// Ajustar exactamente hasta cero es válido: cero no es stock negativo.
func TestEngine_AdjustHastaCero(t *testing.T) {
	engine, store, id := newFixture(t, 5)

	part, err := engine.Adjust(context.Background(), id, -5, nil, "conteo físico")
	require.NoError(t, err)
	assert.Equal(t, 0, part.Quantity)
	assert.Equal(t, 0, currentQty(t, store, id))
}

// ──────────────────────────────────────────────────────────────────────────────
// Rechazos: stock negativo, parte inexistente, entradas inválidas
// ──────────────────────────────────────────────────────────────────────────────

// Un delta que dejaría la cantidad bajo cero se rechaza sin efectos: ni la
// cantidad ni el libro cambian.
func TestEngine_RechazaStockNegativo(t *testing.T) {
	engine, store, id := newFixture(t, 3)

	_, err := engine.SellStock(context.Background(), id, 4, nil, "Sale")
	require.ErrorIs(t, err, domain.ErrNegativeStock)

	assert.Equal(t, 3, currentQty(t, store, id), "la cantidad no debe cambiar")
	hist, err := store.HistoryFor(id)
	require.NoError(t, err)
	assert.Empty(t, hist, "un cambio rechazado no deja rastro en el libro")
}

func TestEngine_ParteInexistente(t *testing.T) {
	engine, _, _ := newFixture(t, 3)

	_, err := engine.AddStock(context.Background(), "11111111-2222-3333-4444-555555555555", 1, nil, "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEngine_EntradasInvalidas(t *testing.T) {
	engine, _, id := newFixture(t, 3)
	ctx := context.Background()

	// Delta cero no describe ningún cambio.
	_, err := engine.Adjust(ctx, id, 0, nil, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// ID vacío.
	_, err = engine.ApplyStockChange(ctx, stock.ChangeInput{PartID: "", Delta: 1, Kind: entity.KindAdd})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Tipo de movimiento fuera del conjunto cerrado.
	_, err = engine.ApplyStockChange(ctx, stock.ChangeInput{PartID: id, Delta: 1, Kind: entity.MovementKind("transfer")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Venta y entrada requieren cantidad positiva.
	_, err = engine.SellStock(ctx, id, 0, nil, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = engine.AddStock(ctx, id, -2, nil, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad e invariantes del libro
// ──────────────────────────────────────────────────────────────────────────────

// Si la escritura del movimiento falla, la cantidad se revierte: nunca queda
// una mutación de cantidad sin su entrada en el libro.
func TestEngine_RollbackSiFallaElLibro(t *testing.T) {
	store := memory.NewStore()
	part := &entity.Part{PartNumber: "FLT-200", Name: "Filtro de aceite", Quantity: 8}
	require.NoError(t, store.Create(part))

	engine := stock.NewEngine(failingMovementRunner{inner: memory.NewTxRunner(store)})

	_, err := engine.AddStock(context.Background(), part.ID, 5, nil, "")
	require.ErrorIs(t, err, domain.ErrTransient, "una falla de almacenamiento se reporta como transitoria")

	assert.Equal(t, 8, currentQty(t, store, part.ID), "la cantidad debe revertirse")
	hist, err := store.HistoryFor(part.ID)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

// La suma de deltas del historial más la cantidad inicial reproduce la
// cantidad actual, y cada cambio exitoso aporta exactamente un movimiento.
func TestEngine_SumaDeDeltasReproduceLaCantidad(t *testing.T) {
	engine, store, id := newFixture(t, 20)
	ctx := context.Background()

	_, err := engine.AddStock(ctx, id, 10, nil, "")
	require.NoError(t, err)
	_, err = engine.SellStock(ctx, id, 6, nil, "")
	require.NoError(t, err)
	_, err = engine.Adjust(ctx, id, -3, nil, "merma")
	require.NoError(t, err)
	// Intento rechazado: no debe aportar movimiento.
	_, err = engine.SellStock(ctx, id, 100, nil, "")
	require.ErrorIs(t, err, domain.ErrNegativeStock)

	hist, err := store.HistoryFor(id)
	require.NoError(t, err)
	require.Len(t, hist, 3)

	sum := 0
	for _, m := range hist {
		sum += m.Delta
	}
	assert.Equal(t, currentQty(t, store, id), 20+sum,
		"cantidad inicial + suma de deltas = cantidad actual")
}

// El historial sale más reciente primero; a igual timestamp desempata el ID.
func TestEngine_HistorialMasRecientePrimero(t *testing.T) {
	engine, store, id := newFixture(t, 10)
	ctx := context.Background()

	_, err := engine.AddStock(ctx, id, 1, nil, "primero")
	require.NoError(t, err)
	_, err = engine.AddStock(ctx, id, 2, nil, "segundo")
	require.NoError(t, err)
	_, err = engine.AddStock(ctx, id, 3, nil, "tercero")
	require.NoError(t, err)

	hist, err := store.HistoryFor(id)
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, "tercero", hist[0].Note)
	assert.Equal(t, "segundo", hist[1].Note)
	assert.Equal(t, "primero", hist[2].Note)
	assert.Greater(t, hist[0].ID, hist[1].ID)
}

// Eliminar la parte no borra su historial: el libro es evidencia permanente.
func TestEngine_ElLibroSobreviveAlBorradoDeLaParte(t *testing.T) {
	engine, store, id := newFixture(t, 10)

	_, err := engine.SellStock(context.Background(), id, 2, nil, "Sale")
	require.NoError(t, err)
	require.NoError(t, store.Delete(id))

	hist, err := store.HistoryFor(id)
	require.NoError(t, err)
	assert.Len(t, hist, 1, "los movimientos de una parte eliminada se conservan")
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Dos ventas simultáneas de 3 sobre una cantidad de 5: el bloqueo serializa
// las transacciones, así que exactamente una debe ganar y la otra recibir
// ErrNegativeStock. La cantidad final es 2 y el libro tiene un solo movimiento.
func TestEngine_VentasConcurrentesSerializadas(t *testing.T) {
	engine, store, id := newFixture(t, 5)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.SellStock(context.Background(), id, 3, nil, "Sale")
		}(i)
	}
	wg.Wait()

	okCount, negCount := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, domain.ErrNegativeStock):
			negCount++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente una venta debe aplicarse")
	assert.Equal(t, 1, negCount, "la otra debe rechazarse por stock insuficiente")

	assert.Equal(t, 2, currentQty(t, store, id))
	hist, err := store.HistoryFor(id)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}
