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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `user_id, username, password_hash, COALESCE(full_name, ''), role, customer_type,
		COALESCE(business_name, ''), COALESCE(address, ''), COALESCE(mobile, ''), created_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q      Querier
	policy RetryPolicy
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier, policy RetryPolicy) *UserRepo {
	return &UserRepo{q: q, policy: policy}
}

// Create persiste un nuevo usuario y completa ID y CreatedAt.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (username, password_hash, full_name, role, customer_type, business_name, address, mobile)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
		RETURNING user_id, created_at`
	err := withRetry(ctx, r.policy, "insert user", func(ctx context.Context) error {
		return r.q.QueryRow(ctx, query,
			user.Username, user.PasswordHash, user.FullName, user.Role, user.CustomerType,
			user.BusinessName, user.Address, user.Mobile,
		).Scan(&user.ID, &user.CreatedAt)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameAlreadyExists
		}
		return err
	}
	return nil
}

// FindByUsername obtiene un usuario por username. (nil, nil) si no existe.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, "get user by username",
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// FindByID obtiene un usuario por ID. (nil, nil) si no existe.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findOne(ctx, "get user by id",
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
}

func (r *UserRepo) findOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	var u entity.User
	found := true
	err := withRetry(ctx, r.policy, op, func(ctx context.Context) error {
		err := r.q.QueryRow(ctx, query, arg).Scan(
			&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Role, &u.CustomerType,
			&u.BusinessName, &u.Address, &u.Mobile, &u.CreatedAt,
		)
		if errors.Is(err, pgx.ErrNoRows) {
			found = false
			return nil
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("user repo: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &u, nil
}
