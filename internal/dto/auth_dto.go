package dto

import (
	"time"

	"github.com/elitestore/storefront/internal/models"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// UpdateProfileRequest carries the mutable profile fields. Role, email and
// password are deliberately absent; they change through dedicated flows.
type UpdateProfileRequest struct {
	Name        *string             `json:"name"`
	Image       *string             `json:"image"`
	Phone       *string             `json:"phone"`
	DateOfBirth *time.Time          `json:"dateOfBirth"`
	Address     *models.Address     `json:"address"`
	Preferences *models.Preferences `json:"preferences"`
}
