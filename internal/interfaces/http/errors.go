package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/categorias-api/internal/application/dto"
	"github.com/jhoicas/categorias-api/internal/domain"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Orden relevante: los errores más específicos primero.
var errorMappings = []errorMapping{
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND", "User not found"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "Resource not found"},
	{domain.ErrEmailAlreadyExists, fiber.StatusBadRequest, "EMAIL_EXISTS", "User already exists."},
	{domain.ErrDuplicate, fiber.StatusBadRequest, "DUPLICATE", "Resource already exists"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "Not authorized"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "Access denied"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "Invalid request data"},
}

// writeDomainError traduce err a {success:false, code, message}. messages reemplaza el mensaje
// por defecto de un error de dominio. Lo desconocido se registra y se responde 500 genérico.
func writeDomainError(c *fiber.Ctx, log *logger.Logger, err error, messages map[error]string) error {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		msg := m.message
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			msg = verr.Message
		}
		if override, ok := messages[m.target]; ok {
			msg = override
		}
		return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Server error"})
}

// NotFoundHandler responde las rutas no registradas.
func NotFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.MessageResponse{Message: "Not Found - " + c.OriginalURL()})
}

// ErrorHandler handler de errores de Fiber (panics recuperados, errores de framework).
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code == fiber.StatusNotFound {
				return NotFoundHandler(c)
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
		}
		return writeDomainError(c, log, err, nil)
	}
}

// bodyValidator valida DTOs y reporta los campos con su nombre JSON.
type bodyValidator struct {
	v *validator.Validate
}

func newBodyValidator() *bodyValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &bodyValidator{v: v}
}

// parse decodifica el cuerpo en out y lo valida. Devuelve un domain.ValidationError.
func (b *bodyValidator) parse(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Invalid("Invalid request data")
	}
	if err := b.v.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return domain.Invalid(validationMessage(verrs))
		}
		return domain.Invalid("Invalid request data")
	}
	return nil
}

func validationMessage(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", err.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email", err.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must contain at least %s item(s)", err.Field(), err.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is not valid", err.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
