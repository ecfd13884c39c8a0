package entity

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("role %q: %w", s, ErrInvalidData)
	}
	return r, nil
}

type User struct {
	Email     string     `json:"email"      validate:"required,email,max=255"`
	Name      string     `json:"name"       validate:"required,max=255"`
	Role      Role       `json:"role"       validate:"required,oneof=admin user"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type Credential struct {
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
