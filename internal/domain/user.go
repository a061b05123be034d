package domain

import "time"

type UserRole string

const (
	RoleCustomer      UserRole = "customer"
	RoleBusinessOwner UserRole = "business_owner"
	RoleAdmin         UserRole = "admin"
)

type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email" validate:"required,email"`
	PasswordHash  string    `json:"-"`
	Role          UserRole  `json:"role"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
