package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agencydesk/agencydesk-backend/pkg/enums"
)

// ServicePrice is a catalog row consumed when pricing subscription line items.
type ServicePrice struct {
	ID        uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Category  enums.ServiceCategory `gorm:"column:category;not null;index" json:"category"`
	Type      string                `gorm:"column:type;not null" json:"type"`
	Name      string                `gorm:"column:name;not null" json:"name"`
	BasePrice decimal.Decimal       `gorm:"column:base_price;type:numeric(12,2);not null" json:"basePrice"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
