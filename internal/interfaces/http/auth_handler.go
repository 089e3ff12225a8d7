package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/categorias-api/internal/application/auth"
	"github.com/jhoicas/categorias-api/internal/application/dto"
	"github.com/jhoicas/categorias-api/internal/domain"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

var loginErrors = map[error]string{
	domain.ErrUnauthorized: "Invalid email or password.",
}

// AuthHandler maneja registro, login y perfil.
type AuthHandler struct {
	uc           *auth.AuthUseCase
	val          *bodyValidator
	log          *logger.Logger
	secureCookie bool
	cookieTTL    time.Duration
}

// NewAuthHandler construye el handler de auth. secureCookie se activa en producción.
func NewAuthHandler(uc *auth.AuthUseCase, log *logger.Logger, secureCookie bool) *AuthHandler {
	return &AuthHandler{uc: uc, val: newBodyValidator(), log: log, secureCookie: secureCookie, cookieTTL: 24 * time.Hour}
}

// Public godoc
// @Summary      Endpoint público de prueba
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/public [get]
func (h *AuthHandler) Public(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "This is a public endpoint that does not require authentication."})
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := h.val.parse(c, &in); err != nil {
		return writeDomainError(c, h.log, err, nil)
	}
	user, token, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, h.log, err, nil)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		Success: true,
		Message: "User registered successfully.",
		User:    *user,
		Token:   token,
	})
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Devuelve el token y además lo deja en la cookie http-only "jwt".
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := h.val.parse(c, &in); err != nil {
		return writeDomainError(c, h.log, domain.Invalid("Email and password are required."), nil)
	}
	user, token, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, h.log, err, loginErrors)
	}
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieTTL),
		MaxAge:   int(h.cookieTTL.Seconds()),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(dto.AuthResponse{
		Success: true,
		Message: "Login successful.",
		User:    *user,
		Token:   token,
	})
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserEnvelope
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeDomainError(c, h.log, err, nil)
	}
	return c.JSON(dto.UserEnvelope{Success: true, User: *user})
}

// AdminDashboard godoc
// @Summary      Panel de administración
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/auth/admin/dashboard [get]
func (h *AuthHandler) AdminDashboard(c *fiber.Ctx) error {
	user, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeDomainError(c, h.log, err, nil)
	}
	return c.JSON(fiber.Map{"message": "Welcome to the Admin Dashboard", "user": user})
}
