package employees

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
)

// Repository handles employee persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to employee operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithAccount persists the employee row and its login account in one
// transaction, so a unique violation on either insert leaves nothing behind.
func (r *Repository) CreateWithAccount(ctx context.Context, employee *models.Employee, account *models.User) error {
	if employee == nil || account == nil {
		return fmt.Errorf("employee and account are required")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(employee).Error; err != nil {
			return err
		}
		return tx.Create(account).Error
	})
}

// FindEmployee loads an employee by id.
func (r *Repository) FindEmployee(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// List returns all employees, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// Update saves the employee row.
func (r *Repository) Update(ctx context.Context, employee *models.Employee) error {
	if employee == nil {
		return fmt.Errorf("employee is required")
	}
	return r.db.WithContext(ctx).Save(employee).Error
}

// Delete removes the employee row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Employee{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementWarnings bumps the warning counter and returns the new value.
func (r *Repository) IncrementWarnings(ctx context.Context, id uuid.UUID) (int, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&employee).Error; err != nil {
			return err
		}
		employee.WarningCount++
		return tx.Model(&models.Employee{}).
			Where("id = ?", id).
			Update("warning_count", employee.WarningCount).Error
	})
	if err != nil {
		return 0, err
	}
	return employee.WarningCount, nil
}

// ResetWarnings zeroes the warning counter.
func (r *Repository) ResetWarnings(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("id = ?", id).
		Update("warning_count", 0)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
