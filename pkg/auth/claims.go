package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/agencydesk/agencydesk-backend/pkg/enums"
)

// AccessTokenPayload carries the identity facts minted into an access token.
type AccessTokenPayload struct {
	UserID     uuid.UUID
	Role       enums.UserRole
	EmployeeID *uuid.UUID
	Name       string
	JTI        string
}

// AccessTokenClaims is the JWT claim set used across the API.
type AccessTokenClaims struct {
	UserID     uuid.UUID      `json:"uid"`
	Role       enums.UserRole `json:"role"`
	EmployeeID *uuid.UUID     `json:"eid,omitempty"`
	Name       string         `json:"name,omitempty"`
	jwt.RegisteredClaims
}
