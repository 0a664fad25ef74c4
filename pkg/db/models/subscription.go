package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agencydesk/agencydesk-backend/pkg/enums"
)

// Subscription is a sold service bundle. Client name/phone are snapshotted at
// creation so the record stays historically accurate if the contact is later
// edited. Tier, end date, and total price are derived columns owned by the
// subscriptions service.
type Subscription struct {
	ID             uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID       uuid.UUID                `gorm:"column:client_id;type:uuid;not null;index" json:"clientId"`
	ClientName     string                   `gorm:"column:client_name;not null" json:"clientName"`
	ClientPhone    string                   `gorm:"column:client_phone" json:"clientPhone"`
	Tier           enums.SubscriptionTier   `gorm:"column:tier;not null;default:'regular'" json:"tier"`
	DurationMonths int                      `gorm:"column:duration_months;not null" json:"duration"`
	StartDate      time.Time                `gorm:"column:start_date;not null" json:"startDate"`
	EndDate        time.Time                `gorm:"column:end_date;not null;index" json:"endDate"`
	TotalPrice     decimal.Decimal          `gorm:"column:total_price;type:numeric(12,2);not null" json:"totalPrice"`
	Status         enums.SubscriptionStatus `gorm:"column:status;not null;default:'active';index" json:"status"`

	EmailCredentials    []EmailCredential    `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:CASCADE" json:"emailCredentials"`
	WebsiteServices     []WebsiteService     `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:CASCADE" json:"websiteServices"`
	DesignServices      []DesignService      `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:CASCADE" json:"designServices"`
	ManagementServices  []ManagementService  `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:CASCADE" json:"managementServices"`
	AdvertisingServices []AdvertisingService `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:CASCADE" json:"advertisingServices"`

	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deletedAt,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// ServiceCategories returns the distinct categories with at least one line
// item attached, in catalog order.
func (s Subscription) ServiceCategories() []enums.ServiceCategory {
	var categories []enums.ServiceCategory
	if len(s.WebsiteServices) > 0 {
		categories = append(categories, enums.ServiceCategoryWebsite)
	}
	if len(s.DesignServices) > 0 {
		categories = append(categories, enums.ServiceCategoryDesign)
	}
	if len(s.ManagementServices) > 0 {
		categories = append(categories, enums.ServiceCategoryManagement)
	}
	if len(s.AdvertisingServices) > 0 {
		categories = append(categories, enums.ServiceCategoryAdvertising)
	}
	return categories
}
