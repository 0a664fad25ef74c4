package members

import (
	"github.com/agencydesk/agencydesk-backend/pkg/types"
)

// CreateFolderInput names a new address book folder.
type CreateFolderInput struct {
	Name string `json:"name" validate:"required"`
}

// UpdateFolderInput renames a folder.
type UpdateFolderInput struct {
	Name string `json:"name" validate:"required"`
}

// ContactInput carries the client fields for create and update.
type ContactInput struct {
	PhoneNumber  string        `json:"phoneNumber" validate:"required"`
	CompanyName  string        `json:"companyName"`
	PersonalName string        `json:"personalName" validate:"required"`
	Nationality  string        `json:"nationality"`
	Social       *types.Social `json:"socialMedia"`
}
