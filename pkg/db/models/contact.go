package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/agencydesk/agencydesk-backend/pkg/types"
)

// Contact is a client entry inside a folder.
type Contact struct {
	ID           uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FolderID     uuid.UUID    `gorm:"column:folder_id;type:uuid;not null;index" json:"folderId"`
	PhoneNumber  string       `gorm:"column:phone_number;not null" json:"phoneNumber"`
	CompanyName  string       `gorm:"column:company_name" json:"companyName"`
	PersonalName string       `gorm:"column:personal_name;not null" json:"personalName"`
	Nationality  string       `gorm:"column:nationality" json:"nationality"`
	Social       types.Social `gorm:"column:social;type:social_t" json:"socialMedia"`
	CreatedAt    time.Time    `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time    `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
