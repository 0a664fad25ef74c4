package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agencydesk/agencydesk-backend/pkg/types"
)

// WebsiteService is a one-time setup line item. Its price is independent of
// the subscription duration.
type WebsiteService struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SubscriptionID uuid.UUID       `gorm:"column:subscription_id;type:uuid;not null;index" json:"subscriptionId"`
	Type           string          `gorm:"column:type;not null" json:"type"`
	Price          decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
}

// DesignService is a recurring deliverable billed per instance per month.
type DesignService struct {
	ID               uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SubscriptionID   uuid.UUID          `gorm:"column:subscription_id;type:uuid;not null;index" json:"subscriptionId"`
	Type             string             `gorm:"column:type;not null" json:"type"`
	Platforms        types.PlatformList `gorm:"column:platforms;type:text" json:"platforms"`
	MonthlyInstances int                `gorm:"column:monthly_instances;not null" json:"monthlyInstances"`
	Price            decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
}

// ManagementService is recurring content work billed per update per month.
type ManagementService struct {
	ID             uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SubscriptionID uuid.UUID          `gorm:"column:subscription_id;type:uuid;not null;index" json:"subscriptionId"`
	Type           string             `gorm:"column:type;not null" json:"type"`
	Platforms      types.PlatformList `gorm:"column:platforms;type:text" json:"platforms,omitempty"`
	MonthlyUpdates int                `gorm:"column:monthly_updates;not null" json:"monthlyUpdates"`
	Price          decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
}

// AdvertisingService is a campaign line item. Price already folds in the
// service fee and ad budget, so it is not scaled by duration.
type AdvertisingService struct {
	ID             uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SubscriptionID uuid.UUID          `gorm:"column:subscription_id;type:uuid;not null;index" json:"subscriptionId"`
	Type           string             `gorm:"column:type;not null" json:"type"`
	Platforms      types.PlatformList `gorm:"column:platforms;type:text" json:"platforms"`
	Budget         *decimal.Decimal   `gorm:"column:budget;type:numeric(12,2)" json:"budget,omitempty"`
	ServiceFee     decimal.Decimal    `gorm:"column:service_fee;type:numeric(12,2);not null" json:"serviceFee"`
	Price          decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
}
