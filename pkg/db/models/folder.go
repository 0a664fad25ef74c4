package models

import (
	"time"

	"github.com/google/uuid"
)

// Folder groups contacts in the client address book. Contacts are owned rows
// and are removed with the folder.
type Folder struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Contacts  []Contact `gorm:"foreignKey:FolderID;constraint:OnDelete:CASCADE" json:"contacts"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
