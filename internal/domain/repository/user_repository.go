package repository

import (
	"context"

	"github.com/karnifashions/catalog-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create persiste el usuario y completa ID y CreatedAt.
	Create(ctx context.Context, user *entity.User) error
	// FindByUsername devuelve (nil, nil) si no existe.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByID(ctx context.Context, id int64) (*entity.User, error)
}
