package user

import (
	"github.com/go-faster/errors"
	"golang.org/x/crypto/bcrypt"
)

// Sentinel errors for account operations.
var (
	// ErrUsernameTaken is returned when registering a username that already
	// exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUnauthorized is returned on login when the username is unknown or
	// the password does not verify. The two cases are deliberately not
	// distinguished.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidRole is returned when registering with an unknown role.
	ErrInvalidRole = errors.New("invalid role")
)

// Manager is the registry of user accounts. It enforces username uniqueness
// and performs credential verification.
type Manager struct {
	users []*User
	taken map[string]struct{}
	cost  int
}

// NewManager returns an empty registry. cost is the bcrypt work factor used
// when hashing passwords at registration.
func NewManager(cost int) *Manager {
	return &Manager{
		taken: make(map[string]struct{}),
		cost:  cost,
	}
}

// ManagerFromUsers rebuilds a registry from a restored user list. The
// taken-usernames index is not persisted; it is reconstructed here.
func ManagerFromUsers(cost int, users []*User) *Manager {
	m := NewManager(cost)
	m.users = users
	for _, u := range users {
		m.taken[u.Username] = struct{}{}
	}
	return m
}

// Register hashes the password and stores a new user with an empty cart.
// It returns ErrUsernameTaken when the username already exists; no state is
// modified on any failure path.
func (m *Manager) Register(username, password, email string, role Role) (*User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if _, ok := m.taken[username]; ok {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	u := &User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		Role:         role,
	}
	m.users = append(m.users, u)
	m.taken[username] = struct{}{}

	return u, nil
}

// Login scans for a user with the given username whose stored hash verifies
// against password. Unknown usernames and failed verification both return
// ErrUnauthorized.
func (m *Manager) Login(username, password string) (*User, error) {
	for _, u := range m.users {
		if u.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
			continue
		}
		return u, nil
	}
	return nil, ErrUnauthorized
}

// Users returns the registered accounts in registration order. The slice is
// shared for traversal; callers mutate accounts only through their methods.
func (m *Manager) Users() []*User {
	return m.users
}

// Len reports the number of registered accounts.
func (m *Manager) Len() int {
	return len(m.users)
}
