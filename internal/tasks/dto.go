package tasks

import (
	"time"

	"github.com/google/uuid"

	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
)

// CreateTaskInput captures a manually created task. Client name is
// snapshotted from the contact record.
type CreateTaskInput struct {
	Description     string                `json:"description" validate:"required"`
	ClientID        uuid.UUID             `json:"clientId" validate:"required"`
	SubscriptionID  uuid.UUID             `json:"subscriptionId" validate:"required"`
	DueDate         time.Time             `json:"dueDate" validate:"required"`
	AssignedTo      *uuid.UUID            `json:"assignedTo"`
	ServiceCategory enums.ServiceCategory `json:"serviceCategory" validate:"required"`
	ServiceType     string                `json:"serviceType" validate:"required"`
}

// UpdateTaskInput mutates an existing task. Nil fields are left alone.
type UpdateTaskInput struct {
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	AssignedTo  *uuid.UUID `json:"assignedTo"`
	Unassign    bool       `json:"unassign"`
}

// Buckets partitions pending tasks into the three daily views. The buckets
// are disjoint: tomorrow is excluded from upcoming.
type Buckets struct {
	Today    []models.Task `json:"today"`
	Tomorrow []models.Task `json:"tomorrow"`
	Upcoming []models.Task `json:"upcoming"`
}

// BucketFilter narrows the bucket listing.
type BucketFilter struct {
	// AssignedTo limits results to one employee when set.
	AssignedTo *uuid.UUID
	// HorizonDays is how far past tomorrow the upcoming bucket reaches.
	HorizonDays int
}

// HistoryFilter narrows a client's task history.
type HistoryFilter struct {
	CompletedOnly bool
}
