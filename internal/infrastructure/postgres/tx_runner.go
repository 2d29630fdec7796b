package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/karnifashions/catalog-api/internal/application/catalog"
	"github.com/karnifashions/catalog-api/internal/domain/repository"
)

var _ catalog.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool   *pgxpool.Pool
	policy RetryPolicy
}

// NewTxRunner construye el runner con el pool. policy aplica a la tx completa.
func NewTxRunner(pool *pgxpool.Pool, policy RetryPolicy) *TxRunner {
	return &TxRunner{pool: pool, policy: policy}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Ante conflicto de unicidad o fallo transitorio repite la tx completa (hasta MaxRetries),
// así un upsert que choca con otro insert concurrente termina como actualización.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	imageRepo repository.ImageRepository,
) error) error {
	return retry(ctx, r.policy, func(c errorClass) bool { return c != classPermanent }, func(ctx context.Context) error {
		return r.runOnce(ctx, fn)
	})
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	imageRepo repository.ImageRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx, NoRetry)
	imageRepo := NewImageRepository(tx, NoRetry)

	if err := fn(productRepo, imageRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
