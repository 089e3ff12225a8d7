package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/categorias-api/internal/domain"
	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, name, COALESCE(parent_id::text, ''), status, created_by, created_at, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, name_fold, parent_id, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, entity.FoldName(c.Name), nullableID(c.ParentID), c.Status, c.CreatedBy, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.Invalid("Parent category not found")
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return r.scanOne(ctx, "get category by id", query, id)
}

// GetByName busca por nombre exacto.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1`
	return r.scanOne(ctx, "get category by name", query, name)
}

// FindByNameFold compara contra name_fold, el plegado que calcula entity.FoldName al escribir,
// para que "STRASSE" y "straße" coincidan igual que en los demás drivers.
func (r *CategoryRepo) FindByNameFold(ctx context.Context, name, excludeID string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + `
		FROM categories
		WHERE name_fold = $1 AND ($2 = '' OR id::text <> $2)
		LIMIT 1`
	return r.scanOne(ctx, "find category by name", query, entity.FoldName(name), excludeID)
}

// Update actualiza nombre (y su plegado), estado y updated_at.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `UPDATE categories SET name = $2, name_fold = $3, status = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, c.ID, c.Name, entity.FoldName(c.Name), c.Status, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todas las categorías en orden de creación.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID, &c.Status, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// UpdateStatusMany solo cuenta las filas cuyo estado cambia.
func (r *CategoryRepo) UpdateStatusMany(ctx context.Context, ids []string, status string) (int64, error) {
	query := `
		UPDATE categories SET status = $2, updated_at = now()
		WHERE id::text = ANY($1) AND status <> $2`
	tag, err := r.q.Exec(ctx, query, ids, status)
	if err != nil {
		return 0, fmt.Errorf("update categories status: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ReassignParent mueve los hijos directos de fromParentID a toParentID ("" = raíz).
func (r *CategoryRepo) ReassignParent(ctx context.Context, fromParentID, toParentID string) (int64, error) {
	query := `UPDATE categories SET parent_id = $2, updated_at = now() WHERE parent_id = $1`
	tag, err := r.q.Exec(ctx, query, fromParentID, nullableID(toParentID))
	if err != nil {
		return 0, fmt.Errorf("reassign category parent: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete elimina una categoría por ID.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) scanOne(ctx context.Context, op, query string, args ...any) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.ParentID, &c.Status, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}
