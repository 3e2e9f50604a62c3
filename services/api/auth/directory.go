package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for an unknown email or wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Account seeds a directory entry with a plaintext password.
type Account struct {
	Email    string
	Password string
	Role     Role
}

type user struct {
	hash []byte
	role Role
}

// Directory holds the known users with hashed passwords.
type Directory struct {
	users map[string]user
}

// DemoAccounts returns the three built-in accounts sharing password.
func DemoAccounts(password string) []Account {
	return []Account{
		{Email: "analyst@cpcb.gov.in", Password: password, Role: RoleAnalyst},
		{Email: "policy@cpcb.gov.in", Password: password, Role: RolePolicymaker},
		{Email: "field@cpcb.gov.in", Password: password, Role: RoleFieldOfficer},
	}
}

// NewDirectory hashes the given accounts. cost is passed to bcrypt; values
// below bcrypt.MinCost select bcrypt.DefaultCost.
func NewDirectory(accounts []Account, cost int) (*Directory, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	d := &Directory{users: make(map[string]user, len(accounts))}
	for _, a := range accounts {
		if _, err := ParseRole(string(a.Role)); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), cost)
		if err != nil {
			return nil, err
		}
		d.users[normalizeEmail(a.Email)] = user{hash: hash, role: a.Role}
	}
	return d, nil
}

// Authenticate checks credentials and returns the matching principal.
func (d *Directory) Authenticate(email, password string) (Principal, error) {
	key := normalizeEmail(email)
	u, ok := d.users[key]
	if !ok {
		return Principal{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.hash, []byte(password)); err != nil {
		return Principal{}, ErrInvalidCredentials
	}
	return Principal{Email: key, Role: u.role}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
