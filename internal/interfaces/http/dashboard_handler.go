package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/parts-tracker/internal/application/analytics"
)

// DashboardHandler expone el resumen agregado del inventario.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del inventario (conteos y partes recientes)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummary
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}
