package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role values stored on a profile. RoleAdmin is the only role that unlocks
// privileged mutations.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is an account record. The password is stored as a bcrypt hash and
// never serialized.
type User struct {
	ID           string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile carries the customer-facing attributes of an account plus the
// role used for authorization.
type Profile struct {
	UserID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Email         string    `json:"email" gorm:"type:varchar(255)"`
	Role          string    `json:"role" gorm:"type:varchar(50);not null;default:customer"`
	UserName      string    `json:"user_name" gorm:"type:varchar(100)"`
	PhoneNumber   string    `json:"phone_number" gorm:"type:varchar(50)"`
	Postcode      string    `json:"postcode" gorm:"type:varchar(20)"`
	Address       string    `json:"address" gorm:"type:varchar(255)"`
	DetailAddress string    `json:"detail_address" gorm:"type:varchar(255)"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsAdmin reports whether this profile unlocks privileged mutations.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// JWTClaims is the payload of a session token. The role here reflects the
// profile at issue time only; privileged routes re-resolve it from storage.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SignupRequest is the account creation payload.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	UserName string `json:"user_name"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned from signup and login.
type LoginResponse struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}

// UpdateProfileRequest updates the caller's own profile. The role is
// deliberately absent: it cannot be changed through this path.
type UpdateProfileRequest struct {
	UserName      *string `json:"user_name,omitempty"`
	PhoneNumber   *string `json:"phone_number,omitempty"`
	Postcode      *string `json:"postcode,omitempty"`
	Address       *string `json:"address,omitempty"`
	DetailAddress *string `json:"detail_address,omitempty"`
}
