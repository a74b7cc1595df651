package user

import "github.com/almansori/corona/internal/domain/cart"

// Role classifies an account at registration time. There is no reserved
// username; the admin account is whichever user was registered with RoleAdmin.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// User is an account identity owning exactly one cart. PasswordHash is a
// bcrypt hash; the plaintext password is never stored.
type User struct {
	Username     string
	PasswordHash []byte
	Email        string
	Role         Role
	Cart         cart.Cart
}

// IsAdmin reports whether the account was registered with the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
