package models

import (
	"strings"
	"time"
)

// Account is a shop customer. Passwords are stored and compared in plain text.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicAccount is an Account with the password removed. It is the only account
// shape that leaves the API.
type PublicAccount struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public redacts the password.
func (a Account) Public() PublicAccount {
	return PublicAccount{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}

// AdminName is the account name that carries admin capability, compared case-insensitively.
const AdminName = "admin"

// IsAdminName reports whether name designates the admin account.
func IsAdminName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), AdminName)
}
