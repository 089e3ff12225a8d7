package repository

import (
	"context"

	"github.com/jhoicas/categorias-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Las búsquedas devuelven (nil, nil) cuando no hay coincidencia.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// GetByName busca por nombre exacto (distingue mayúsculas).
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	// FindByNameFold busca otra categoría con el mismo nombre sin distinguir mayúsculas, excluyendo excludeID.
	FindByNameFold(ctx context.Context, name, excludeID string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context) ([]*entity.Category, error)
	// UpdateStatusMany aplica status a los ids indicados y devuelve cuántos registros cambiaron realmente.
	UpdateStatusMany(ctx context.Context, ids []string, status string) (int64, error)
	// ReassignParent mueve los hijos directos de fromParentID a toParentID ("" = raíz).
	ReassignParent(ctx context.Context, fromParentID, toParentID string) (int64, error)
	Delete(ctx context.Context, id string) error
}
