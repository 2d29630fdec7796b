package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/karnifashions/catalog-api/internal/application/dto"
	"github.com/karnifashions/catalog-api/internal/domain"
	"github.com/karnifashions/catalog-api/internal/domain/entity"
	"github.com/karnifashions/catalog-api/internal/domain/repository"
	"github.com/karnifashions/catalog-api/pkg/jwt"
	"github.com/karnifashions/catalog-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Límites de password. bcrypt sólo considera los primeros 72 bytes.
const (
	MinPasswordLen   = 6
	MaxPasswordBytes = 72
)

// AuthUseCase casos de uso de autenticación: registro de clientes y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log.Named("auth")}
}

// Signup registra un cliente nuevo como Customer/Basic. El personal se crea por migración.
// Devuelve ErrUsernameAlreadyExists si el usuario ya existe.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || len(in.Password) < MinPasswordLen || len(in.Password) > MaxPasswordBytes {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, uc.storeErr("Signup", err)
	}
	if existing != nil {
		return nil, domain.ErrUsernameAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.ErrInvalidInput
		}
		uc.log.Error().Err(err).Str("op", "Signup").Msg("no se pudo generar el hash del password")
		return nil, fmt.Errorf("hash password: %w", err)
	}
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		name = username
	}
	user := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     name,
		Role:         entity.RoleCustomer,
		CustomerType: entity.CustomerTypeBasic,
		BusinessName: strings.TrimSpace(in.BusinessName),
		Address:      strings.TrimSpace(in.Address),
		Mobile:       strings.TrimSpace(in.Mobile),
	}
	// La restricción única cubre la carrera entre FindByUsername y Create.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, uc.storeErr("Signup", err)
	}
	uc.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("cliente registrado")
	return toUserResponse(user), nil
}

// Login verifica usuario/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, uc.storeErr("Login", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Identity{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		CustomerType: user.CustomerType,
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Profile devuelve el perfil del usuario autenticado. ErrUserNotFound si ya no existe.
func (uc *AuthUseCase) Profile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, uc.storeErr("Profile", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) storeErr(op string, err error) error {
	if errors.Is(err, domain.ErrUsernameAlreadyExists) {
		return domain.ErrUsernameAlreadyExists
	}
	uc.log.Error().Err(err).Str("op", op).Msg("fallo del almacén de datos")
	return domain.ErrStoreUnavailable
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		FullName:     u.FullName,
		Role:         u.Role,
		CustomerType: u.CustomerType,
		BusinessName: u.BusinessName,
		Address:      u.Address,
		Mobile:       u.Mobile,
		CreatedAt:    u.CreatedAt,
	}
}
