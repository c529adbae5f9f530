package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/parts-tracker/internal/application/analytics"
	"github.com/tu-usuario/parts-tracker/internal/application/dto"
	"github.com/tu-usuario/parts-tracker/internal/application/stock"
	"github.com/tu-usuario/parts-tracker/internal/application/usecase"
	"github.com/tu-usuario/parts-tracker/internal/domain"
	"github.com/tu-usuario/parts-tracker/internal/domain/entity"
	"github.com/tu-usuario/parts-tracker/internal/domain/repository"
)

// PartHandler maneja las peticiones HTTP de partes: CRUD, stock e historial
// (protegido).
type PartHandler struct {
	uc        *usecase.PartUseCase
	engine    *stock.Engine
	dashboard *analytics.DashboardUseCase
}

// NewPartHandler construye el handler.
func NewPartHandler(uc *usecase.PartUseCase, engine *stock.Engine, dashboard *analytics.DashboardUseCase) *PartHandler {
	return &PartHandler{uc: uc, engine: engine, dashboard: dashboard}
}

// List godoc
// @Summary      Listar partes
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        search     query  string  false  "Texto sobre número, nombre, categoría, fabricante y descripción"
// @Param        category   query  string  false  "Categoría exacta"
// @Param        lowStock   query  bool    false  "Solo partes en o bajo su umbral"
// @Param        sortBy     query  string  false  "partNumber|name|quantity|category|price|createdAt|manufacturer"
// @Param        sortOrder  query  string  false  "asc|desc"
// @Success      200  {array}  dto.PartResponse
// @Router       /api/parts [get]
func (h *PartHandler) List(c *fiber.Ctx) error {
	filter := repository.PartFilter{
		Search:    c.Query("search"),
		Category:  c.Query("category"),
		LowStock:  c.Query("lowStock") == "true",
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	out, err := h.uc.List(filter)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Partes con stock bajo, ordenadas por severidad
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PartResponse
// @Router       /api/parts/low-stock [get]
func (h *PartHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.dashboard.LowStock()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Categorías en uso
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/parts/categories [get]
func (h *PartHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories()
	if err != nil {
		return internalError(c, err)
	}
	if out == nil {
		out = []string{}
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener parte por ID
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la parte"
// @Success      200  {object}  dto.PartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [get]
func (h *PartHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return internalError(c, err)
	}
	if out == nil {
		return partNotFound(c)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de movimientos de una parte
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la parte"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id}/history [get]
func (h *PartHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return partNotFound(c)
		}
		return internalError(c, err)
	}
	if out == nil {
		out = []dto.MovementResponse{}
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear parte
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartRequest  true  "Datos de la parte"
// @Success      201   {object}  dto.PartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/parts [post]
func (h *PartHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicatePartNumber):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_PART_NUMBER", Message: "ya existe una parte con ese número"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar atributos de una parte (sin cantidad)
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la parte"
// @Param        body  body  dto.UpdatePartRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.PartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [put]
func (h *PartHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return partNotFound(c)
		case errors.Is(err, domain.ErrDuplicatePartNumber):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_PART_NUMBER", Message: "ya existe una parte con ese número"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar parte (el historial de movimientos se conserva)
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la parte"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [delete]
func (h *PartHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return partNotFound(c)
		}
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"message": "parte eliminada"})
}

// UpdateStock godoc
// @Summary      Ajustar stock (delta con signo, queda registrado en el libro)
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la parte"
// @Param        body  body  dto.StockChangeRequest  true  "quantity_change, notes, movement_type (add|sale|adjustment; default adjustment)"
// @Success      200   {object}  dto.PartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/parts/{id}/stock [put]
func (h *PartHandler) UpdateStock(c *fiber.Ctx) error {
	var in dto.StockChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	kind := entityKind(in.MovementType)
	out, err := h.engine.ApplyStockChange(c.Context(), stock.ChangeInput{
		PartID:  c.Params("id"),
		Delta:   in.QuantityChange,
		Kind:    kind,
		Note:    in.Notes,
		ActorID: actorID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return partNotFound(c)
		case errors.Is(err, domain.ErrNegativeStock):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NEGATIVE_STOCK", Message: "la cantidad no puede quedar por debajo de cero"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cambio de stock inválido"})
		}
		return internalError(c, err)
	}
	return c.JSON(dto.FromPart(out))
}

// Sell godoc
// @Summary      Vender (descuenta stock y registra movimiento de venta)
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la parte"
// @Param        body  body  dto.SellRequest  false  "quantity (default 1), notes (default Sale)"
// @Success      200   {object}  dto.PartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/parts/{id}/sell [patch]
func (h *PartHandler) Sell(c *fiber.Ctx) error {
	in := dto.SellRequest{Quantity: 1, Notes: "Sale"}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		if in.Quantity == 0 {
			in.Quantity = 1
		}
		if in.Notes == "" {
			in.Notes = "Sale"
		}
	}
	out, err := h.engine.SellStock(c.Context(), c.Params("id"), in.Quantity, actorID(c), in.Notes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return partNotFound(c)
		case errors.Is(err, domain.ErrNegativeStock):
			// Misma condición que NEGATIVE_STOCK, wording propio de venta.
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "no se puede vender más de la cantidad disponible"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidad de venta inválida"})
		}
		return internalError(c, err)
	}
	return c.JSON(dto.FromPart(out))
}

// entityKind mapea el movement_type del request al tipo cerrado; vacío =
// adjustment (compatibilidad con el endpoint genérico de stock).
func entityKind(movementType string) entity.MovementKind {
	if movementType == "" {
		return entity.KindAdjustment
	}
	return entity.MovementKind(movementType)
}
