package http

import (
	"errors"
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pasteleria-api/internal/application/auth"
	"github.com/jhoicas/pasteleria-api/internal/application/dto"
	"github.com/jhoicas/pasteleria-api/internal/domain"
)

// AuthHandler maneja el login por PIN y el estado del bloqueo.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión con PIN
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "pin de 4 dígitos"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      423   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPIN) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el PIN debe ser de 4 dígitos"})
		}
		if errors.Is(err, domain.ErrLockedOut) {
			st := h.uc.LockoutStatus()
			return c.Status(fiber.StatusLocked).JSON(fiber.Map{
				"code":              "LOCKED_OUT",
				"message":           "demasiados intentos fallidos",
				"remaining_seconds": remainingSeconds(st),
			})
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "PIN incorrecto"})
		}
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "almacén no disponible"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// LockoutStatus GET /api/auth/lockout — alimenta el contador de la pantalla de login.
func (h *AuthHandler) LockoutStatus(c *fiber.Ctx) error {
	st := h.uc.LockoutStatus()
	return c.JSON(dto.LockoutStatusResponse{
		Locked:           st.Locked,
		RemainingSeconds: remainingSeconds(st),
		FailedAttempts:   st.FailedAttempts,
	})
}

// OverrideTap POST /api/auth/lockout/tap — un toque del gesto de rescate.
func (h *AuthHandler) OverrideTap(c *fiber.Ctx) error {
	cleared, err := h.uc.OverrideTap()
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "almacén no disponible"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.OverrideTapResponse{Cleared: cleared})
}

// remainingSeconds redondea hacia arriba para que el contador nunca muestre 0
// mientras el candado siga vigente.
func remainingSeconds(st auth.Status) int {
	if !st.Locked {
		return 0
	}
	return int(math.Ceil(st.Remaining.Seconds()))
}
