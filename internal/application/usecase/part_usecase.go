package usecase

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/parts-tracker/internal/application/dto"
	"github.com/tu-usuario/parts-tracker/internal/domain"
	"github.com/tu-usuario/parts-tracker/internal/domain/entity"
	"github.com/tu-usuario/parts-tracker/internal/domain/repository"
)

const defaultLowStockThreshold = 10

// PartUseCase CRUD de partes e historial de movimientos. La cantidad no se
// edita por aquí: los cambios de stock pasan por el motor (stock.Engine).
type PartUseCase struct {
	partRepo     repository.PartRepository
	movementRepo repository.MovementRepository
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(partRepo repository.PartRepository, movementRepo repository.MovementRepository) *PartUseCase {
	return &PartUseCase{partRepo: partRepo, movementRepo: movementRepo}
}

// Create valida invariantes (precio y umbral no negativos, cantidad inicial
// >= 0) y persiste. La cantidad inicial no genera movimiento en el libro.
func (uc *PartUseCase) Create(in dto.CreatePartRequest) (*dto.PartResponse, error) {
	if in.Price.LessThan(decimal.Zero) || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	threshold := defaultLowStockThreshold
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		threshold = *in.LowStockThreshold
	}
	unit := in.Unit
	if unit == "" {
		unit = "pcs"
	}
	part := &entity.Part{
		PartNumber:        in.PartNumber,
		Name:              in.Name,
		Description:       in.Description,
		Category:          in.Category,
		Manufacturer:      in.Manufacturer,
		Location:          in.Location,
		Unit:              unit,
		Price:             in.Price,
		Quantity:          in.Quantity,
		LowStockThreshold: threshold,
	}
	if err := uc.partRepo.Create(part); err != nil {
		return nil, err
	}
	return dto.FromPart(part), nil
}

// GetByID devuelve la parte o nil, nil si no existe.
func (uc *PartUseCase) GetByID(id string) (*dto.PartResponse, error) {
	part, err := uc.partRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return dto.FromPart(part), nil
}

// List aplica el filtro y devuelve las partes.
func (uc *PartUseCase) List(filter repository.PartFilter) ([]dto.PartResponse, error) {
	parts, err := uc.partRepo.List(filter)
	if err != nil {
		return nil, err
	}
	return dto.FromParts(parts), nil
}

// Update aplica un parcial sobre los atributos editables.
// ErrNotFound si la parte no existe; ErrDuplicatePartNumber al renombrar a un
// número existente; ErrInvalidInput si precio o umbral quedarían negativos.
func (uc *PartUseCase) Update(id string, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	part, err := uc.partRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}

	if in.PartNumber != nil {
		part.PartNumber = *in.PartNumber
	}
	if in.Name != nil {
		part.Name = *in.Name
	}
	if in.Description != nil {
		part.Description = *in.Description
	}
	if in.Category != nil {
		part.Category = *in.Category
	}
	if in.Manufacturer != nil {
		part.Manufacturer = *in.Manufacturer
	}
	if in.Location != nil {
		part.Location = *in.Location
	}
	if in.Unit != nil {
		part.Unit = *in.Unit
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		part.Price = *in.Price
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		part.LowStockThreshold = *in.LowStockThreshold
	}

	if err := uc.partRepo.Update(part); err != nil {
		return nil, err
	}
	return dto.FromPart(part), nil
}

// Delete elimina la parte. El historial de movimientos se conserva.
func (uc *PartUseCase) Delete(id string) error {
	return uc.partRepo.Delete(id)
}

// Categories devuelve las categorías distintas en uso.
func (uc *PartUseCase) Categories() ([]string, error) {
	return uc.partRepo.Categories()
}

// History devuelve el historial de movimientos de una parte, más recientes
// primero. ErrNotFound si la parte no existe.
func (uc *PartUseCase) History(partID string) ([]dto.MovementResponse, error) {
	part, err := uc.partRepo.GetByID(partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movementRepo.HistoryFor(partID)
	if err != nil {
		return nil, err
	}
	return dto.FromMovements(movements), nil
}
