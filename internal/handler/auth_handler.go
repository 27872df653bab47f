package handler

import (
	"crypto/subtle"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/universocelular/unicel-server-web/internal/auth"
	"github.com/universocelular/unicel-server-web/internal/config"
)

// loginRequest is the DTO for the admin login endpoint.
type loginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}

// AuthHandler handles admin authentication.
type AuthHandler struct {
	cfg       config.AdminConfig
	issuer    *auth.TokenIssuer
	validator *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg config.AdminConfig, issuer *auth.TokenIssuer, v *validator.Validate) *AuthHandler {
	return &AuthHandler{cfg: cfg, issuer: issuer, validator: v}
}

// Login handles POST /api/auth/login. Credentials are checked against the
// configured admin account; a success issues a bearer token for the admin
// routes.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.Password)) == 1
	if !userOK || !passOK {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	token, err := h.issuer.Issue(req.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue admin token")
		return internalError(c)
	}
	return c.JSON(fiber.Map{"token": token})
}
