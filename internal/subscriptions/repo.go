package subscriptions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
)

var preloadAssociations = []string{
	"EmailCredentials",
	"WebsiteServices",
	"DesignServices",
	"ManagementServices",
	"AdvertisingServices",
}

// Repository handles subscription persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to subscription operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func withPreloads(q *gorm.DB) *gorm.DB {
	for _, assoc := range preloadAssociations {
		q = q.Preload(assoc)
	}
	return q
}

// Create persists a subscription with all of its line items.
func (r *Repository) Create(ctx context.Context, sub *models.Subscription) error {
	if sub == nil {
		return fmt.Errorf("subscription is required")
	}
	return r.db.WithContext(ctx).Create(sub).Error
}

// FindByID loads a subscription and its line items regardless of status.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	if err := withPreloads(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// List returns non-deleted subscriptions matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Subscription, error) {
	q := withPreloads(r.db.WithContext(ctx)).
		Where("status <> ?", enums.SubscriptionStatusDeleted)
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Tier != nil {
		q = q.Where("tier = ?", *filter.Tier)
	}
	var subs []models.Subscription
	if err := q.Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// ListRecycle returns subscriptions sitting in the recycle bin.
func (r *Repository) ListRecycle(ctx context.Context) ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := withPreloads(r.db.WithContext(ctx)).
		Where("status = ?", enums.SubscriptionStatusDeleted).
		Order("deleted_at DESC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// UpdateWithLineItems swaps the stored line items for the provided sets and
// saves the subscription row in the same transaction, so the derived columns
// (tier, end date, total price) never commit against a different set of line
// items than the one they were computed from. Nil slices leave the
// corresponding table untouched.
func (r *Repository) UpdateWithLineItems(
	ctx context.Context,
	sub *models.Subscription,
	credentials *[]models.EmailCredential,
	website *[]models.WebsiteService,
	design *[]models.DesignService,
	management *[]models.ManagementService,
	advertising *[]models.AdvertisingService,
) error {
	if sub == nil {
		return fmt.Errorf("subscription is required")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if credentials != nil {
			if err := replaceSet(tx, sub.ID, &models.EmailCredential{}, *credentials); err != nil {
				return err
			}
		}
		if website != nil {
			if err := replaceSet(tx, sub.ID, &models.WebsiteService{}, *website); err != nil {
				return err
			}
		}
		if design != nil {
			if err := replaceSet(tx, sub.ID, &models.DesignService{}, *design); err != nil {
				return err
			}
		}
		if management != nil {
			if err := replaceSet(tx, sub.ID, &models.ManagementService{}, *management); err != nil {
				return err
			}
		}
		if advertising != nil {
			if err := replaceSet(tx, sub.ID, &models.AdvertisingService{}, *advertising); err != nil {
				return err
			}
		}
		return tx.Omit(preloadAssociations...).Save(sub).Error
	})
}

func replaceSet[T any](tx *gorm.DB, subID uuid.UUID, model *T, rows []T) error {
	if err := tx.Where("subscription_id = ?", subID).Delete(model).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// MoveToRecycle flips an active or expired subscription into the deleted state.
func (r *Repository) MoveToRecycle(ctx context.Context, id uuid.UUID, now time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("id = ? AND status <> ?", id, enums.SubscriptionStatusDeleted).
		Updates(map[string]any{
			"status":     enums.SubscriptionStatusDeleted,
			"deleted_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Restore reactivates a recycled subscription, clearing the deletion stamp.
func (r *Repository) Restore(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	updates := map[string]any{
		"status":     enums.SubscriptionStatusActive,
		"deleted_at": nil,
	}
	for k, v := range fields {
		updates[k] = v
	}
	result := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("id = ? AND status = ?", id, enums.SubscriptionStatusDeleted).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListActive returns every active subscription with line items preloaded.
func (r *Repository) ListActive(ctx context.Context) ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := withPreloads(r.db.WithContext(ctx)).
		Where("status = ?", enums.SubscriptionStatusActive).
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// ListEndingBetween returns active subscriptions whose end date falls in
// [from, to].
func (r *Repository) ListEndingBetween(ctx context.Context, from, to time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := withPreloads(r.db.WithContext(ctx)).
		Where("status = ? AND end_date >= ? AND end_date <= ?", enums.SubscriptionStatusActive, from, to).
		Order("end_date ASC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// MarkExpiredBefore flips active subscriptions past their end date to expired
// and reports how many rows changed.
func (r *Repository) MarkExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("status = ? AND end_date < ?", enums.SubscriptionStatusActive, cutoff).
		Update("status", enums.SubscriptionStatusExpired)
	return result.RowsAffected, result.Error
}

// CountByStatusBetween counts subscriptions entering the given status within
// the window, keyed off the relevant timestamp column.
func (r *Repository) CountByStatusBetween(ctx context.Context, status enums.SubscriptionStatus, column string, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("status = ?", status).
		Where(fmt.Sprintf("%s >= ? AND %s < ?", column, column), from, to).
		Count(&count).Error
	return count, err
}

// SumTotalByStatus sums total_price over subscriptions in the given status.
func (r *Repository) SumTotalByStatus(ctx context.Context, status enums.SubscriptionStatus) (string, error) {
	var sum *string
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("status = ?", status).
		Select("CAST(COALESCE(SUM(total_price), 0) AS TEXT)").
		Scan(&sum).Error
	if err != nil {
		return "0", err
	}
	if sum == nil {
		return "0", nil
	}
	return *sum, nil
}

// CountCreatedBetween counts subscriptions opened within the window,
// regardless of their current status.
func (r *Repository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

// CountByStatus counts all subscriptions currently in the given status.
func (r *Repository) CountByStatus(ctx context.Context, status enums.SubscriptionStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
