package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/categorias-api/internal/application/dto"
	"github.com/jhoicas/categorias-api/internal/application/usecase"
	"github.com/jhoicas/categorias-api/internal/domain"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

var (
	categoryErrors = map[error]string{
		domain.ErrNotFound:  "Category not found",
		domain.ErrDuplicate: "Category already exists",
	}
	categoryRenameErrors = map[error]string{
		domain.ErrNotFound:  "Category not found",
		domain.ErrDuplicate: "Category name already exists",
	}
)

// CategoryHandler maneja las peticiones HTTP del árbol de categorías (protegido).
type CategoryHandler struct {
	uc  *usecase.CategoryUseCase
	val *bodyValidator
	log *logger.Logger
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, val: newBodyValidator(), log: log}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "name y parent opcional"
// @Success      201   {object}  dto.CategoryEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := h.val.parse(c, &in); err != nil {
		return writeDomainError(c, h.log, err, nil)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeDomainError(c, h.log, err, categoryErrors)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CategoryEnvelope{
		Success:  true,
		Message:  "Category created successfully",
		Category: out,
	})
}

// List godoc
// @Summary      Listar categorías como árbol
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CategoryTreeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	tree, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeDomainError(c, h.log, err, nil)
	}
	return c.JSON(dto.CategoryTreeResponse{Success: true, Categories: tree})
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryEnvelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, h.log, err, categoryErrors)
	}
	return c.JSON(dto.CategoryEnvelope{Success: true, Category: out})
}

// Update godoc
// @Summary      Renombrar o cambiar estado de una categoría (sin cascada)
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "name y/o status"
// @Success      200   {object}  dto.CategoryEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := h.val.parse(c, &in); err != nil {
		return writeDomainError(c, h.log, err, nil)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, h.log, err, categoryRenameErrors)
	}
	return c.JSON(dto.CategoryEnvelope{
		Success:  true,
		Message:  "Category updated successfully",
		Category: out,
	})
}

// BulkUpdateStatus godoc
// @Summary      Cambiar el estado de varias categorías
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkUpdateStatusRequest  true  "categoryIds y status"
// @Success      200   {object}  dto.BulkUpdateStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories/bulk-update [put]
func (h *CategoryHandler) BulkUpdateStatus(c *fiber.Ctx) error {
	var in dto.BulkUpdateStatusRequest
	if err := h.val.parse(c, &in); err != nil {
		return writeDomainError(c, h.log, domain.Invalid("Invalid request data"), nil)
	}
	n, err := h.uc.BulkUpdateStatus(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, h.log, err, nil)
	}
	return c.JSON(dto.BulkUpdateStatusResponse{
		Success:       true,
		Message:       "Categories updated successfully",
		ModifiedCount: n,
	})
}

// CascadeStatus godoc
// @Summary      Cambiar el estado de una categoría y propagarlo a su subárbol
// @Description  inactive desactiva todos los descendientes; active reactiva solo las ramas inactivas.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.CascadeStatusRequest  true  "status"
// @Success      200   {object}  dto.CascadeStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/status [put]
func (h *CategoryHandler) CascadeStatus(c *fiber.Ctx) error {
	var in dto.CascadeStatusRequest
	if err := h.val.parse(c, &in); err != nil {
		return writeDomainError(c, h.log, err, nil)
	}
	res, err := h.uc.CascadeStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return writeDomainError(c, h.log, err, categoryErrors)
	}
	return c.JSON(dto.CascadeStatusResponse{
		Success:       true,
		Message:       "Category status updated successfully",
		Category:      res.Category,
		ModifiedCount: res.ModifiedCount,
		AffectedIDs:   res.AffectedIDs,
	})
}

// Delete godoc
// @Summary      Eliminar categoría (los hijos pasan al abuelo)
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeDomainError(c, h.log, err, categoryErrors)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Category deleted successfully"})
}
