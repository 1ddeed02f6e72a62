package user

import (
	"time"

	"github.com/foody-app/foody-api/internal/auth"
)

type User struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	Role           auth.Role  `json:"role"`
	Phone          string     `json:"phone,omitempty"`
	Avatar         string     `json:"avatar,omitempty"`
	Active         bool       `json:"active"`
	ResetTokenHash string     `json:"-"`
	ResetExpiresAt *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RegisterRequest payload of sign-up.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name"     binding:"required,max=80"    example:"Sita Rai"`
	Email    string `json:"email"    binding:"required,email"     example:"sita@example.com"`
	Password string `json:"password" binding:"required,min=6"     example:"secret123"`
	Phone    string `json:"phone"    binding:"max=20"`
}

// LoginRequest payload of sign-in.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"  binding:"max=80"`
	Phone string `json:"phone" binding:"max=20"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password"     binding:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// AdminUpdateRequest lets an admin change a user's role or active flag.
type AdminUpdateRequest struct {
	Role   *string `json:"role"   binding:"omitempty,oneof=customer staff admin"`
	Active *bool   `json:"active"`
}

type Query struct {
	Search string
	Role   string
	Limit  int
	Offset int
}
