package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "Admin"
	RoleUser     = "User"
	RoleCustomer = "Customer"
)

// Tipos de cliente (solo aplican cuando Role = Customer).
const (
	CustomerTypeNone    = 0
	CustomerTypeBasic   = 1
	CustomerTypePremium = 2
)

// User representa un usuario del sistema: personal (Admin, User) o cliente.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash
	FullName     string
	Role         string // Admin, User, Customer
	CustomerType int    // 1 = Basic, 2 = Premium
	BusinessName string
	Address      string
	Mobile       string
	CreatedAt    time.Time
}
