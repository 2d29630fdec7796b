package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/karnifashions/catalog-api/internal/domain"
	"github.com/karnifashions/catalog-api/internal/domain/entity"
	"github.com/karnifashions/catalog-api/internal/domain/repository"
)

var _ repository.ImageRepository = (*ImageRepo)(nil)

// ImageRepo imagen única por producto (product_images.product_id es PK).
type ImageRepo struct {
	q      Querier
	policy RetryPolicy
	inTx   bool // dentro de una tx abortada no se puede reintentar; lo hace TxRunner
}

// NewImageRepository construye el adaptador de imágenes. Pasar pool o tx (Querier).
func NewImageRepository(q Querier, policy RetryPolicy) *ImageRepo {
	_, inTx := q.(pgx.Tx)
	return &ImageRepo{q: q, policy: policy, inTx: inTx}
}

// GetImage obtiene la imagen del producto. (nil, nil) si no hay registro.
func (r *ImageRepo) GetImage(ctx context.Context, productID int64) (*entity.ProductImage, error) {
	query := `SELECT product_id, image_url, updated_at FROM product_images WHERE product_id = $1`
	var img entity.ProductImage
	found := true
	err := withRetry(ctx, r.policy, "get image", func(ctx context.Context) error {
		err := r.q.QueryRow(ctx, query, productID).Scan(&img.ProductID, &img.ImageURL, &img.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			found = false
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &img, nil
}

// UpsertImage inserta o actualiza la URL del producto en una sola sentencia.
// Si aun así llega una violación de unicidad (carrera con otro insert), se resuelve como UPDATE.
func (r *ImageRepo) UpsertImage(ctx context.Context, productID int64, url string) (*entity.ProductImage, error) {
	upsert := `
		INSERT INTO product_images (product_id, image_url, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (product_id)
		DO UPDATE SET image_url = EXCLUDED.image_url, updated_at = now()
		RETURNING product_id, image_url, updated_at`
	var img entity.ProductImage
	err := withRetry(ctx, r.policy, "upsert image", func(ctx context.Context) error {
		return r.q.QueryRow(ctx, upsert, productID, url).Scan(&img.ProductID, &img.ImageURL, &img.UpdatedAt)
	})
	if err == nil {
		return &img, nil
	}
	if !isUniqueViolation(err) || r.inTx {
		return nil, err
	}

	update := `
		UPDATE product_images SET image_url = $2, updated_at = now()
		WHERE product_id = $1
		RETURNING product_id, image_url, updated_at`
	err = withRetry(ctx, r.policy, "update image after conflict", func(ctx context.Context) error {
		return r.q.QueryRow(ctx, update, productID, url).Scan(&img.ProductID, &img.ImageURL, &img.UpdatedAt)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("upsert image %d: %w", productID, domain.ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}
