package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/agencydesk/agencydesk-backend/pkg/enums"
)

// User is a login account. Staff accounts link back to their Employee row so
// task views can be scoped to the signed-in employee.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username     string         `gorm:"column:username;not null;uniqueIndex" json:"username"`
	Name         string         `gorm:"column:name;not null" json:"name"`
	Role         enums.UserRole `gorm:"column:role;not null;default:'employee'" json:"role"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	EmployeeID   *uuid.UUID     `gorm:"column:employee_id;type:uuid;index" json:"employeeId,omitempty"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
