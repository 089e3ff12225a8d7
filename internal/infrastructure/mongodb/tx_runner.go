package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/categorias-api/internal/application/usecase"
	"github.com/jhoicas/categorias-api/internal/domain/repository"
)

var _ usecase.CategoryTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción multi-documento.
type TxRunner struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewTxRunner construye el runner.
func NewTxRunner(client *mongo.Client, db *mongo.Database) *TxRunner {
	return &TxRunner{client: client, db: db}
}

// RunCategories abre una sesión y ejecuta fn con el SessionContext; WithTransaction hace commit o abort.
func (r *TxRunner) RunCategories(ctx context.Context, fn func(ctx context.Context, repo repository.CategoryRepository) error) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	repo := NewCategoryRepository(r.db)
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, repo)
	})
	return err
}
