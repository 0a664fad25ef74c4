package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
)

// Repository handles login account persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to user operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a user by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername loads a user by login name.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmployeeID loads the account linked to an employee record.
func (r *Repository) FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateCredentials rewrites the username and password hash.
func (r *Repository) UpdateCredentials(ctx context.Context, id uuid.UUID, username, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"username":      username,
			"password_hash": passwordHash,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TouchLastLogin stamps the most recent successful login.
func (r *Repository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

// DeleteByEmployeeID removes the account tied to an employee record.
func (r *Repository) DeleteByEmployeeID(ctx context.Context, employeeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&models.User{}).Error
}
