package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
)

// Repository handles price catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a catalog row.
func (r *Repository) Create(ctx context.Context, price *models.ServicePrice) error {
	if price == nil {
		return fmt.Errorf("service price is required")
	}
	return r.db.WithContext(ctx).Create(price).Error
}

// FindByID loads a catalog row by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ServicePrice, error) {
	var price models.ServicePrice
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&price).Error; err != nil {
		return nil, err
	}
	return &price, nil
}

// FindByCategoryType resolves the unique (category, type) catalog entry.
func (r *Repository) FindByCategoryType(ctx context.Context, category enums.ServiceCategory, serviceType string) (*models.ServicePrice, error) {
	var price models.ServicePrice
	if err := r.db.WithContext(ctx).
		Where("category = ? AND type = ?", category, serviceType).
		First(&price).Error; err != nil {
		return nil, err
	}
	return &price, nil
}

// List returns catalog rows, optionally scoped to one category.
func (r *Repository) List(ctx context.Context, category *enums.ServiceCategory) ([]models.ServicePrice, error) {
	q := r.db.WithContext(ctx).Order("category ASC, type ASC")
	if category != nil {
		q = q.Where("category = ?", *category)
	}
	var prices []models.ServicePrice
	if err := q.Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// Update saves the catalog row.
func (r *Repository) Update(ctx context.Context, price *models.ServicePrice) error {
	if price == nil {
		return fmt.Errorf("service price is required")
	}
	return r.db.WithContext(ctx).Save(price).Error
}

// Delete removes the catalog row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ServicePrice{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
