// Package memory implementa los repositorios sobre mapas en memoria.
// Se usa con DB_DRIVER=memory (desarrollo local) y en las pruebas de los casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/internal/domain/repository"
)

// Store datos compartidos por los repositorios en memoria.
type Store struct {
	mu         sync.RWMutex
	txMu       sync.Mutex
	categories map[string]entity.Category
	order      []string
	users      map[string]entity.User
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		categories: make(map[string]entity.Category),
		users:      make(map[string]entity.User),
	}
}

type snapshot struct {
	categories map[string]entity.Category
	order      []string
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make(map[string]entity.Category, len(s.categories))
	for k, v := range s.categories {
		cp[k] = v
	}
	return snapshot{categories: cp, order: append([]string(nil), s.order...)}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = snap.categories
	s.order = snap.order
}

// TxRunner serializa las transacciones y restaura el estado de categorías si fn falla.
// Mientras una transacción está abierta las escrituras de categorías fuera de ella esperan.
type TxRunner struct {
	store *Store
}

// NewTxRunner crea el runner sobre store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// RunCategories ejecuta fn con un repositorio sobre el mismo store; rollback por snapshot.
func (r *TxRunner) RunCategories(ctx context.Context, fn func(ctx context.Context, repo repository.CategoryRepository) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()
	snap := r.store.snapshot()
	if err := fn(ctx, &CategoryRepository{store: r.store, inTx: true}); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
