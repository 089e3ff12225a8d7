package usecase

import (
	"context"

	"github.com/jhoicas/categorias-api/internal/domain/repository"
)

// CategoryTxRunner ejecuta fn dentro de una transacción de almacenamiento.
// fn recibe el ctx atado a la transacción y un repositorio que opera sobre ella;
// si fn devuelve error se hace rollback.
type CategoryTxRunner interface {
	RunCategories(ctx context.Context, fn func(ctx context.Context, repo repository.CategoryRepository) error) error
}

// Cache caché clave/valor serializada en JSON (árbol de categorías).
// Invalidate avanza la generación de key; Generation la devuelve para versionar claves derivadas.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, key string) error
	Generation(ctx context.Context, key string) (int64, error)
}
