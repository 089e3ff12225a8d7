package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/categorias-api/internal/application/dto"
	"github.com/jhoicas/categorias-api/internal/domain"
	"github.com/jhoicas/categorias-api/internal/domain/category"
	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/internal/domain/repository"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

// TreeCacheKey clave del árbol materializado en la caché.
const TreeCacheKey = "categories:tree"

// CategoryUseCase casos de uso del árbol de categorías: alta, listado en árbol,
// edición, cambio masivo de estado, borrado con re-asignación de hijos y cascada de estado.
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	tx    CategoryTxRunner
	cache Cache
	log   *logger.Logger
}

// NewCategoryUseCase construye el caso de uso. cache puede ser un no-op.
func NewCategoryUseCase(repo repository.CategoryRepository, tx CategoryTxRunner, cache Cache, log *logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, tx: tx, cache: cache, log: log}
}

// Create crea una categoría activa a nombre de actorID.
// Devuelve domain.ErrDuplicate si ya existe una categoría con exactamente el mismo nombre.
func (uc *CategoryUseCase) Create(ctx context.Context, actorID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("Category name is required")
	}

	parentID := ""
	if in.Parent != nil {
		parentID = strings.TrimSpace(*in.Parent)
	}
	if parentID != "" {
		if err := uuid.Validate(parentID); err != nil {
			return nil, domain.Invalid("Invalid parent category id")
		}
		parent, err := uc.repo.GetByID(ctx, parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.Invalid("Parent category not found")
		}
	}

	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now().UTC()
	c := &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		ParentID:  parentID,
		Status:    entity.StatusActive,
		CreatedBy: actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.invalidateTree(ctx)
	return toCategoryResponse(c), nil
}

// List devuelve todas las categorías como bosque de raíces con subcategorías anidadas.
// Las categorías con padre inexistente quedan fuera del árbol y se reportan en el log.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryNodeResponse, error) {
	key, cacheable := uc.treeKey(ctx)
	if cacheable {
		var cached []dto.CategoryNodeResponse
		if hit, err := uc.cache.Get(ctx, key, &cached); err != nil {
			uc.log.Warn().Err(err).Msg("leer árbol de categorías desde caché")
		} else if hit {
			return cached, nil
		}
	}

	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if orphans := category.Orphans(all); len(orphans) > 0 {
		ids := make([]string, 0, len(orphans))
		for _, o := range orphans {
			ids = append(ids, o.ID)
		}
		uc.log.Warn().Int("count", len(orphans)).Strs("ids", ids).
			Msg("categorías fuera del árbol: padre inexistente o ciclo")
	}

	tree := toNodeResponses(category.BuildTree(all))
	if cacheable {
		if err := uc.cache.Set(ctx, key, tree); err != nil {
			uc.log.Warn().Err(err).Msg("guardar árbol de categorías en caché")
		}
	}
	return tree, nil
}

// treeKey arma la clave del árbol con la generación vigente. La generación se lee antes de
// consultar el repositorio: si una mutación invalida mientras tanto, el árbol leído se guarda
// bajo una generación ya superada y ninguna lectura posterior lo devuelve.
func (uc *CategoryUseCase) treeKey(ctx context.Context) (string, bool) {
	gen, err := uc.cache.Generation(ctx, TreeCacheKey)
	if err != nil {
		uc.log.Warn().Err(err).Msg("leer generación del árbol en caché")
		return "", false
	}
	return fmt.Sprintf("%s:%d", TreeCacheKey, gen), true
}

// GetByID obtiene una categoría. domain.ErrNotFound si no existe.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(c), nil
}

// Update renombra y/o cambia el estado de una categoría. El estado se aplica tal cual, sin cascada.
// El nombre nuevo no puede coincidir (sin distinguir mayúsculas) con el de otra categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("Category name cannot be empty")
		}
		other, err := uc.repo.FindByNameFold(ctx, name, id)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrDuplicate
		}
		c.Name = name
	}
	if in.Status != nil {
		if !entity.IsValidStatus(*in.Status) {
			return nil, domain.Invalid("Status must be 'active' or 'inactive'")
		}
		c.Status = *in.Status
	}

	c.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.invalidateTree(ctx)
	return toCategoryResponse(c), nil
}

// BulkUpdateStatus aplica status a todas las categorías indicadas en una sola operación.
// No propaga a los hijos. Devuelve cuántos registros cambiaron.
func (uc *CategoryUseCase) BulkUpdateStatus(ctx context.Context, in dto.BulkUpdateStatusRequest) (int64, error) {
	if len(in.CategoryIDs) == 0 || in.Status == "" {
		return 0, domain.Invalid("Invalid request data")
	}
	if !entity.IsValidStatus(in.Status) {
		return 0, domain.Invalid("Status must be 'active' or 'inactive'")
	}
	for _, id := range in.CategoryIDs {
		if uuid.Validate(id) != nil {
			return 0, domain.Invalid("Invalid request data")
		}
	}

	n, err := uc.repo.UpdateStatusMany(ctx, in.CategoryIDs, in.Status)
	if err != nil {
		return 0, err
	}
	uc.invalidateTree(ctx)
	return n, nil
}

// Delete borra una categoría. Antes, sus hijos directos pasan a colgar del padre de la
// categoría borrada. Ambos pasos corren en la misma transacción.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	err := uc.tx.RunCategories(ctx, func(ctx context.Context, repo repository.CategoryRepository) error {
		c, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if _, err := repo.ReassignParent(ctx, id, c.ParentID); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.invalidateTree(ctx)
	return nil
}

// CascadeStatus cambia el estado de id y lo propaga a su subárbol (ver category.CascadeTargets)
// con una única actualización masiva dentro de una transacción.
func (uc *CategoryUseCase) CascadeStatus(ctx context.Context, id, status string) (*dto.CascadeStatusResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if !entity.IsValidStatus(status) {
		return nil, domain.Invalid("Status must be 'active' or 'inactive'")
	}

	var out dto.CascadeStatusResult
	err := uc.tx.RunCategories(ctx, func(ctx context.Context, repo repository.CategoryRepository) error {
		all, err := repo.List(ctx)
		if err != nil {
			return err
		}
		targets := category.CascadeTargets(all, id, status)
		if targets == nil {
			return domain.ErrNotFound
		}
		n, err := repo.UpdateStatusMany(ctx, targets, status)
		if err != nil {
			return err
		}
		root, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if root == nil {
			return domain.ErrNotFound
		}
		out = dto.CascadeStatusResult{
			Category:      *toCategoryResponse(root),
			ModifiedCount: n,
			AffectedIDs:   targets,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.invalidateTree(ctx)
	return &out, nil
}

func (uc *CategoryUseCase) invalidateTree(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx, TreeCacheKey); err != nil {
		uc.log.Warn().Err(err).Msg("invalidar árbol de categorías en caché")
	}
}

func validateID(id string) error {
	if uuid.Validate(id) != nil {
		return domain.Invalid("Invalid category id")
	}
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	var parent *string
	if c.ParentID != "" {
		p := c.ParentID
		parent = &p
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Parent:    parent,
		Status:    c.Status,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toNodeResponses(nodes []*category.Node) []dto.CategoryNodeResponse {
	out := make([]dto.CategoryNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dto.CategoryNodeResponse{
			CategoryResponse: *toCategoryResponse(n.Category),
			Subcategories:    toNodeResponses(n.Subcategories),
		})
	}
	return out
}
