package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/categorias-api/internal/application/dto"
	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/pkg/jwt"
)

// Locals keys para UserID y Role en Fiber. Solo AuthMiddleware las escribe.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// CookieName cookie http-only con el JWT que emite el login.
const CookieName = "jwt"

// AuthMiddleware valida el JWT (cookie "jwt" o Bearer Token) y extrae UserID y Role a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(CookieName)
		if tokenString == "" {
			authHeader := c.Get(fiber.HeaderAuthorization)
			if authHeader == "" {
				return unauthorized(c, "MISSING_TOKEN", "Not authorized, no token")
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return unauthorized(c, "INVALID_TOKEN", "Invalid token")
			}
			tokenString = strings.TrimSpace(parts[1])
		}
		if tokenString == "" {
			return unauthorized(c, "MISSING_TOKEN", "Not authorized, no token")
		}
		userID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil || userID == "" {
			return unauthorized(c, "INVALID_TOKEN", "Invalid token")
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole deja pasar solo a los roles indicados, comparando en forma canónica.
// Debe usarse DESPUÉS de AuthMiddleware.
//   - 401 MISSING_ROLE si el token no trae rol.
//   - 403 FORBIDDEN si el rol no está permitido.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		if n := entity.NormalizeRole(r); n != "" {
			allowed[n] = struct{}{}
		}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return unauthorized(c, "MISSING_ROLE", "Access denied, role missing")
		}
		if _, ok := allowed[entity.NormalizeRole(role)]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Access denied"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
