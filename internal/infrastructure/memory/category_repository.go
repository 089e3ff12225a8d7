package memory

import (
	"context"

	"github.com/jhoicas/categorias-api/internal/domain"
	"github.com/jhoicas/categorias-api/internal/domain/entity"
)

// CategoryRepository implementación en memoria de repository.CategoryRepository.
// Fuera de una transacción las escrituras esperan a que termine la que esté en curso,
// para que un rollback no pise cambios ajenos.
type CategoryRepository struct {
	store *Store
	inTx  bool
}

// NewCategoryRepository crea el repositorio sobre store.
func NewCategoryRepository(store *Store) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// lockWrite toma el cerrojo de escritura (y el de transacción si no se está dentro de una).
func (r *CategoryRepository) lockWrite() (unlock func()) {
	s := r.store
	if !r.inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !r.inTx {
			s.txMu.Unlock()
		}
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	defer r.lockWrite()()
	s := r.store
	if _, ok := s.categories[c.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range s.categories {
		if existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	s.categories[c.ID] = *c
	s.order = append(s.order, c.ID)
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if c := s.categories[id]; c.Name == name {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepository) FindByNameFold(ctx context.Context, name, excludeID string) (*entity.Category, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	folded := entity.FoldName(name)
	for _, id := range s.order {
		c := s.categories[id]
		if c.ID != excludeID && entity.FoldName(c.Name) == folded {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	defer r.lockWrite()()
	s := r.store
	if _, ok := s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range s.categories {
		if id != c.ID && existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	s.categories[c.ID] = *c
	return nil
}

// List devuelve las categorías en orden de inserción.
func (r *CategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(s.order))
	for _, id := range s.order {
		c := s.categories[id]
		out = append(out, &c)
	}
	return out, nil
}

func (r *CategoryRepository) UpdateStatusMany(ctx context.Context, ids []string, status string) (int64, error) {
	defer r.lockWrite()()
	s := r.store
	var n int64
	for _, id := range ids {
		c, ok := s.categories[id]
		if !ok || c.Status == status {
			continue
		}
		c.Status = status
		s.categories[id] = c
		n++
	}
	return n, nil
}

func (r *CategoryRepository) ReassignParent(ctx context.Context, fromParentID, toParentID string) (int64, error) {
	defer r.lockWrite()()
	s := r.store
	var n int64
	for id, c := range s.categories {
		if c.ParentID != fromParentID {
			continue
		}
		c.ParentID = toParentID
		s.categories[id] = c
		n++
	}
	return n, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	defer r.lockWrite()()
	s := r.store
	if _, ok := s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.categories, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
