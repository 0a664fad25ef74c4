package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
)

// LoginRequest carries the login form fields.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest rotates an access/refresh pair.
type RefreshRequest struct {
	AccessToken  string `json:"accessToken" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// UserSummary is the sanitized account projection returned on login. The
// password hash never leaves the service layer.
type UserSummary struct {
	ID          uuid.UUID      `json:"id"`
	Username    string         `json:"username"`
	Name        string         `json:"name"`
	Role        enums.UserRole `json:"role"`
	EmployeeID  *uuid.UUID     `json:"employeeId,omitempty"`
	LastLoginAt *time.Time     `json:"lastLoginAt,omitempty"`
}

// LoginResponse is the token pair plus the sanitized account.
type LoginResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         UserSummary `json:"user"`
}

// RefreshResponse is the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SummaryFromModel strips the account down to its public fields.
func SummaryFromModel(user *models.User) UserSummary {
	return UserSummary{
		ID:          user.ID,
		Username:    user.Username,
		Name:        user.Name,
		Role:        user.Role,
		EmployeeID:  user.EmployeeID,
		LastLoginAt: user.LastLoginAt,
	}
}
