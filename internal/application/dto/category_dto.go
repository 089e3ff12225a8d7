package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría. Parent nulo o vacío = raíz.
type CreateCategoryRequest struct {
	Name   string  `json:"name" validate:"required,max=120"`
	Parent *string `json:"parent"`
}

// UpdateCategoryRequest renombrado y/o cambio de estado (sin cascada).
type UpdateCategoryRequest struct {
	Name   *string `json:"name" validate:"omitempty,max=120"`
	Status *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// BulkUpdateStatusRequest cambio de estado de varias categorías en una sola operación.
type BulkUpdateStatusRequest struct {
	CategoryIDs []string `json:"categoryIds" validate:"required,min=1"`
	Status      string   `json:"status" validate:"required"`
}

// CascadeStatusRequest cambio de estado de un subárbol con propagación en el servidor.
type CascadeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CategoryResponse salida de una categoría. Parent es null en las raíces.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Parent    *string   `json:"parent"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryNodeResponse categoría con sus subcategorías anidadas.
type CategoryNodeResponse struct {
	CategoryResponse
	Subcategories []CategoryNodeResponse `json:"subcategories"`
}

// CascadeStatusResult resultado de la propagación de estado.
type CascadeStatusResult struct {
	Category      CategoryResponse
	ModifiedCount int64
	AffectedIDs   []string
}

// CategoryEnvelope {success, message, category}.
type CategoryEnvelope struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message,omitempty"`
	Category *CategoryResponse `json:"category"`
}

// CategoryTreeResponse {success, categories} con el árbol completo.
type CategoryTreeResponse struct {
	Success    bool                   `json:"success"`
	Categories []CategoryNodeResponse `json:"categories"`
}

// BulkUpdateStatusResponse {success, message, modifiedCount}.
type BulkUpdateStatusResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ModifiedCount int64  `json:"modifiedCount"`
}

// CascadeStatusResponse salida de PUT /categories/:id/status.
type CascadeStatusResponse struct {
	Success       bool             `json:"success"`
	Message       string           `json:"message"`
	Category      CategoryResponse `json:"category"`
	ModifiedCount int64            `json:"modifiedCount"`
	AffectedIDs   []string         `json:"affectedIds"`
}
