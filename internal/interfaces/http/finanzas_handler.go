package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/alianzanet/gestion-api/internal/application/dto"
	"github.com/alianzanet/gestion-api/internal/application/finanzas"
	"github.com/alianzanet/gestion-api/internal/domain"
)

// FinanzasHandler maneja cierres mensuales y el dashboard (protegido).
type FinanzasHandler struct {
	cierreUC    *finanzas.CierreUseCase
	dashboardUC *finanzas.DashboardUseCase
}

// NewFinanzasHandler construye el handler.
func NewFinanzasHandler(cierreUC *finanzas.CierreUseCase, dashboardUC *finanzas.DashboardUseCase) *FinanzasHandler {
	return &FinanzasHandler{cierreUC: cierreUC, dashboardUC: dashboardUC}
}

// CrearCierre godoc
// @Summary      Registrar cierre financiero mensual
// @Tags         finanzas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearCierreRequest  true  "mes, ano, ingresos, gastos"
// @Success      201   {object}  dto.CierreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/finanzas/cierres [post]
func (h *FinanzasHandler) CrearCierre(c *fiber.Ctx) error {
	var in dto.CrearCierreRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.cierreUC.Registrar(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un cierre para ese periodo"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Historial godoc
// @Summary      Historial de cierres financieros
// @Tags         finanzas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CierreResponse
// @Router       /api/finanzas/cierres [get]
func (h *FinanzasHandler) Historial(c *fiber.Ctx) error {
	out, err := h.cierreUC.Historial(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Resumen operativo y financiero
// @Tags         finanzas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *FinanzasHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboardUC.Resumen(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
