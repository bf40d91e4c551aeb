package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/alianzanet/gestion-api/internal/application/cobranza"
	"github.com/alianzanet/gestion-api/internal/application/dto"
	"github.com/alianzanet/gestion-api/internal/domain"
)

// CobranzaHandler maneja morosos y envíos masivos de recordatorios (protegido).
type CobranzaHandler struct {
	uc *cobranza.UseCase
}

// NewCobranzaHandler construye el handler.
func NewCobranzaHandler(uc *cobranza.UseCase) *CobranzaHandler {
	return &CobranzaHandler{uc: uc}
}

// Morosos godoc
// @Summary      Listar clientes en mora
// @Tags         cobranza
// @Security     Bearer
// @Produce      json
// @Param        mes  query  string  false  "Mes de referencia (por defecto el mes actual)"
// @Success      200  {object}  dto.MorososResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/morosos [get]
func (h *CobranzaHandler) Morosos(c *fiber.Ctx) error {
	out, err := h.uc.ListarMorosos(c.Context(), c.Query("mes"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Recordatorios godoc
// @Summary      Enviar recordatorios de pago a los morosos
// @Tags         cobranza
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EnviarRecordatoriosRequest  true  "mes, confirmado, cliente_ids opcional"
// @Success      200   {object}  dto.ResultadoDispatch
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cobranza/recordatorios [post]
func (h *CobranzaHandler) Recordatorios(c *fiber.Ctx) error {
	var in dto.EnviarRecordatoriosRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.EnviarRecordatorios(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrConfirmacionRequerida) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CONFIRMATION_REQUIRED", Message: "el envío masivo requiere confirmado:true"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Reporte godoc
// @Summary      Enviar reporte de cartera al administrador
// @Tags         cobranza
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EnviarReporteRequest  true  "mes, confirmado"
// @Success      200   {object}  dto.MorososResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cobranza/reporte [post]
func (h *CobranzaHandler) Reporte(c *fiber.Ctx) error {
	var in dto.EnviarReporteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.EnviarReporteAdmin(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrConfirmacionRequerida) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CONFIRMATION_REQUIRED", Message: "el envío del reporte requiere confirmado:true"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
