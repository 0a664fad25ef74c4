package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agencydesk/agencydesk-backend/pkg/enums"
	"github.com/agencydesk/agencydesk-backend/pkg/types"
)

// Employee is a staff record. Performance is nullable: new hires stay unrated
// until the owner grades them. The warning cap is a UI concern and is not
// enforced here.
type Employee struct {
	ID             uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string             `gorm:"column:name;not null" json:"name"`
	Age            int                `gorm:"column:age" json:"age"`
	Specialization string             `gorm:"column:specialization" json:"specialization"`
	PhoneNumber    string             `gorm:"column:phone_number" json:"phoneNumber"`
	WhatsappNumber string             `gorm:"column:whatsapp_number" json:"whatsappNumber"`
	Social         types.Social       `gorm:"column:social;type:social_t" json:"socialMedia"`
	MonthlySalary  decimal.Decimal    `gorm:"column:monthly_salary;type:numeric(12,2);not null" json:"monthlySalary"`
	Performance    *enums.Performance `gorm:"column:performance" json:"performance"`
	Username       string             `gorm:"column:username;not null;uniqueIndex" json:"username"`
	WarningCount   int                `gorm:"column:warning_count;not null;default:0" json:"warningCount"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
