package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleAnalyst UserRole = "analyst"
	RoleViewer  UserRole = "viewer"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleAnalyst, RoleViewer:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     *string   `json:"full_name"`
	Role         UserRole  `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type SignUpRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
}

type Claims struct {
	UserID    string
	UserEmail string
	UserRole  UserRole
	jwt.RegisteredClaims
}
