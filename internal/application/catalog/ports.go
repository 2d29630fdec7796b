package catalog

import (
	"context"

	"github.com/karnifashions/catalog-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Resolver el producto y guardar su imagen ocurre de forma atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		imageRepo repository.ImageRepository,
	) error) error
}
