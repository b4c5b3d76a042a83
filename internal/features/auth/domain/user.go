package domain

import "strings"

// AdminEmail is the only address granted the admin role.
const AdminEmail = "admin@nearzy.com"

// Role gates access to the dashboards.
type Role string

const (
	// RoleCustomer is every signed-in shopper.
	RoleCustomer Role = "customer"
	// RoleShopkeeper sees the shopkeeper dashboard.
	RoleShopkeeper Role = "shopkeeper"
	// RoleAdmin sees the admin dashboard.
	RoleAdmin Role = "admin"
)

// DeriveRole maps an identity's email and phone to a role. Phone-only
// identities are customers.
func DeriveRole(email, phone string) Role {
	switch {
	case email == AdminEmail:
		return RoleAdmin
	case strings.Contains(email, "shop"):
		return RoleShopkeeper
	default:
		return RoleCustomer
	}
}

// Identity is an authenticated account as reported by the identity provider.
type Identity struct {
	UID          string
	Email        string
	Phone        string
	DisplayName  string
	IDToken      string
	RefreshToken string
}

// User is the signed-in shopper as the storefront sees it.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  Role   `json:"role"`
}

// NewUser converts a provider identity into a User with a derived role.
func NewUser(id Identity) *User {
	name := id.DisplayName
	if name == "" {
		name = "User"
	}
	return &User{
		ID:    id.UID,
		Name:  name,
		Email: id.Email,
		Phone: id.Phone,
		Role:  DeriveRole(id.Email, id.Phone),
	}
}
