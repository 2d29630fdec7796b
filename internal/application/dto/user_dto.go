package dto

import "time"

// SignupRequest registro de cliente. Los clientes nuevos quedan como Customer/Basic.
type SignupRequest struct {
	Username     string `json:"username" validate:"required"`
	Password     string `json:"password" validate:"required,min=6"`
	FullName     string `json:"full_name"`
	BusinessName string `json:"business_name"`
	Address      string `json:"address"`
	Mobile       string `json:"mobile"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	CustomerType int       `json:"customer_type"`
	BusinessName string    `json:"business_name"`
	Address      string    `json:"address"`
	Mobile       string    `json:"mobile"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
