package members

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/pagination"
)

// Repository handles folder and contact persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to member operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateFolder persists a new folder row.
func (r *Repository) CreateFolder(ctx context.Context, folder *models.Folder) error {
	if folder == nil {
		return fmt.Errorf("folder is required")
	}
	return r.db.WithContext(ctx).Create(folder).Error
}

// FindFolder loads a folder and its contacts.
func (r *Repository) FindFolder(ctx context.Context, id uuid.UUID) (*models.Folder, error) {
	var folder models.Folder
	if err := r.db.WithContext(ctx).
		Preload("Contacts").
		Where("id = ?", id).
		First(&folder).Error; err != nil {
		return nil, err
	}
	return &folder, nil
}

// ListFolders returns a cursor page of folders with contacts preloaded,
// newest first.
func (r *Repository) ListFolders(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Folder, error) {
	q := r.db.WithContext(ctx).
		Preload("Contacts").
		Order("created_at DESC, id DESC").
		Limit(limit)
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	var folders []models.Folder
	if err := q.Find(&folders).Error; err != nil {
		return nil, err
	}
	return folders, nil
}

// UpdateFolder saves the folder row.
func (r *Repository) UpdateFolder(ctx context.Context, folder *models.Folder) error {
	if folder == nil {
		return fmt.Errorf("folder is required")
	}
	return r.db.WithContext(ctx).Omit("Contacts").Save(folder).Error
}

// DeleteFolder removes the folder and, through the FK cascade, its contacts.
func (r *Repository) DeleteFolder(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Folder{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateContact persists a contact inside a folder.
func (r *Repository) CreateContact(ctx context.Context, contact *models.Contact) error {
	if contact == nil {
		return fmt.Errorf("contact is required")
	}
	return r.db.WithContext(ctx).Create(contact).Error
}

// FindContact loads a contact by id.
func (r *Repository) FindContact(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// UpdateContact saves the contact row.
func (r *Repository) UpdateContact(ctx context.Context, contact *models.Contact) error {
	if contact == nil {
		return fmt.Errorf("contact is required")
	}
	return r.db.WithContext(ctx).Save(contact).Error
}

// DeleteContact removes a contact scoped to its folder.
func (r *Repository) DeleteContact(ctx context.Context, folderID, contactID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("folder_id = ?", folderID).
		Delete(&models.Contact{}, "id = ?", contactID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
