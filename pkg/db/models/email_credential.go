package models

import "github.com/google/uuid"

// EmailCredential is an inbox the agency manages on the client's behalf.
type EmailCredential struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SubscriptionID uuid.UUID `gorm:"column:subscription_id;type:uuid;not null;index" json:"subscriptionId"`
	Provider       string    `gorm:"column:provider;not null" json:"provider"`
	Email          string    `gorm:"column:email;not null" json:"email"`
	Password       string    `gorm:"column:password;not null" json:"password"`
}
