package identity

import (
	"github.com/dressshop/backend/internal/domain/shared"
)

// Role is the coarse role carried by a storefront user
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// User is a storefront account. Registration and login live elsewhere;
// the checkout flow only reads the shipping address and role.
type User struct {
	shared.BaseEntity
	Name    string
	Email   string
	Address string
	Role    Role
}

// IsAdmin returns true if the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
