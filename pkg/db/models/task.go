package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/agencydesk/agencydesk-backend/pkg/enums"
)

// TaskDueDateLayout is the canonical date-only format for task due dates.
const TaskDueDateLayout = "2006-01-02"

// Task is one day's unit of work generated from a subscription line item.
// Tasks soft-delete in place via IsDeleted, unlike subscriptions which move to
// the recycle collection.
type Task struct {
	ID              uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Description     string                `gorm:"column:description;not null" json:"description"`
	ClientID        uuid.UUID             `gorm:"column:client_id;type:uuid;not null;index" json:"clientId"`
	ClientName      string                `gorm:"column:client_name;not null" json:"clientName"`
	SubscriptionID  uuid.UUID             `gorm:"column:subscription_id;type:uuid;not null;index" json:"subscriptionId"`
	DueDate         time.Time             `gorm:"column:due_date;type:date;not null;index" json:"dueDate"`
	AssignedTo      *uuid.UUID            `gorm:"column:assigned_to;type:uuid;index" json:"assignedTo,omitempty"`
	AssignedToName  *string               `gorm:"column:assigned_to_name" json:"assignedToName,omitempty"`
	Status          enums.TaskStatus      `gorm:"column:status;not null;default:'pending'" json:"status"`
	CompletedAt     *time.Time            `gorm:"column:completed_at" json:"completedAt,omitempty"`
	ServiceCategory enums.ServiceCategory `gorm:"column:service_category;not null" json:"serviceCategory"`
	ServiceType     string                `gorm:"column:service_type;not null" json:"serviceType"`
	IsDeleted       bool                  `gorm:"column:is_deleted;not null;default:false" json:"isDeleted"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
