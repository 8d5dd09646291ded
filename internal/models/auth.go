package models

import "github.com/golang-jwt/jwt/v5"

// UserRole distinguishes the administrator from a unit actor.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

// JWTClaims carries the authenticated session identity.
type JWTClaims struct {
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
	UnitID   string   `json:"unitId,omitempty"`
	jwt.RegisteredClaims
}

// AdminTarget is the login target that selects the administrator account.
const AdminTarget = "admin"

// LoginRequest selects either the admin account or a unit by id.
type LoginRequest struct {
	Target   string `json:"target" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and the session identity.
type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresIn int64    `json:"expiresIn"`
	Role      UserRole `json:"role"`
	UnitID    string   `json:"unitId,omitempty"`
	Unit      *Unit    `json:"unit,omitempty"`
}
