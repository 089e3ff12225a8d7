package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/internal/domain/repository"
	"github.com/jhoicas/categorias-api/internal/infrastructure/memory"
)

func newCategory(name string) *entity.Category {
	now := time.Now().UTC()
	return &entity.Category{
		ID: uuid.New().String(), Name: name, Status: entity.StatusActive,
		CreatedAt: now, UpdatedAt: now,
	}
}

func TestTxRunner_RollbackConservaEscriturasExternas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewCategoryRepository(store)
	runner := memory.NewTxRunner(store)

	written := make(chan error, 1)
	err := runner.RunCategories(ctx, func(ctx context.Context, tx repository.CategoryRepository) error {
		require.NoError(t, tx.Create(ctx, newCategory("Draft")))

		go func() { written <- repo.Create(context.Background(), newCategory("Books")) }()
		select {
		case <-written:
			require.FailNow(t, "la escritura externa terminó con la transacción abierta")
		case <-time.After(50 * time.Millisecond):
		}
		return errors.New("disk full")
	})
	require.Error(t, err)
	require.NoError(t, <-written)

	books, err := repo.GetByName(ctx, "Books")
	require.NoError(t, err)
	assert.NotNil(t, books, "el rollback no debe borrar la categoría creada fuera de la transacción")

	draft, err := repo.GetByName(ctx, "Draft")
	require.NoError(t, err)
	assert.Nil(t, draft)
}

func TestTxRunner_CommitVisibleFuera(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewCategoryRepository(store)
	root := newCategory("Root")
	require.NoError(t, repo.Create(ctx, root))

	err := memory.NewTxRunner(store).RunCategories(ctx, func(ctx context.Context, tx repository.CategoryRepository) error {
		n, err := tx.UpdateStatusMany(ctx, []string{root.ID}, entity.StatusInactive)
		if err != nil {
			return err
		}
		assert.Equal(t, int64(1), n)
		return nil
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInactive, got.Status)
}

func TestFindByNameFold_PlegadoUnicode(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCategoryRepository(memory.NewStore())
	street := newCategory("Straße")
	require.NoError(t, repo.Create(ctx, street))

	for _, name := range []string{"STRASSE", "strasse", "STRAßE"} {
		got, err := repo.FindByNameFold(ctx, name, "")
		require.NoError(t, err)
		require.NotNil(t, got, name)
		assert.Equal(t, street.ID, got.ID)
	}

	got, err := repo.FindByNameFold(ctx, "STRASSE", street.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "excludeID descarta la propia categoría")
}
