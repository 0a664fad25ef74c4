package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
)

// Repository handles task persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to task operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new task row.
func (r *Repository) Create(ctx context.Context, task *models.Task) error {
	if task == nil {
		return fmt.Errorf("task is required")
	}
	return r.db.WithContext(ctx).Create(task).Error
}

// CreateBatch persists the provided tasks in one statement.
func (r *Repository) CreateBatch(ctx context.Context, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&tasks).Error
}

// FindByID loads a task by id, including soft-deleted rows.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update saves the task row.
func (r *Repository) Update(ctx context.Context, task *models.Task) error {
	if task == nil {
		return fmt.Errorf("task is required")
	}
	return r.db.WithContext(ctx).Save(task).Error
}

// ListPendingBetween returns live pending tasks with due dates in [from, to],
// optionally scoped to one assignee.
func (r *Repository) ListPendingBetween(ctx context.Context, from, to time.Time, assignedTo *uuid.UUID) ([]models.Task, error) {
	q := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Where("status = ?", enums.TaskStatusPending).
		Where("due_date >= ? AND due_date <= ?", from, to)
	if assignedTo != nil {
		q = q.Where("assigned_to = ?", *assignedTo)
	}
	var tasks []models.Task
	if err := q.Order("due_date ASC, created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByClient returns a client's live tasks, optionally completed only.
func (r *Repository) ListByClient(ctx context.Context, clientID uuid.UUID, completedOnly bool) ([]models.Task, error) {
	q := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Where("client_id = ?", clientID)
	if completedOnly {
		q = q.Where("status = ?", enums.TaskStatusCompleted)
	}
	var tasks []models.Task
	if err := q.Order("due_date DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ExistsGenerated reports whether a live task already covers the generation
// key (subscription, category, type, due date).
func (r *Repository) ExistsGenerated(ctx context.Context, subscriptionID uuid.UUID, category enums.ServiceCategory, serviceType string, dueDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("is_deleted = ?", false).
		Where("subscription_id = ?", subscriptionID).
		Where("service_category = ?", category).
		Where("service_type = ?", serviceType).
		Where("due_date = ?", dueDate).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SoftDelete flags the task as deleted without removing the row.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
