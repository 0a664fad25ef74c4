package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agencydesk/agencydesk-backend/internal/exports"
	"github.com/agencydesk/agencydesk-backend/pkg/config"
	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
	pkgerrors "github.com/agencydesk/agencydesk-backend/pkg/errors"
)

type taskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	ListPendingBetween(ctx context.Context, from, to time.Time, assignedTo *uuid.UUID) ([]models.Task, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, completedOnly bool) ([]models.Task, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type contactDirectory interface {
	FindContact(ctx context.Context, id uuid.UUID) (*models.Contact, error)
}

type employeeDirectory interface {
	FindEmployee(ctx context.Context, id uuid.UUID) (*models.Employee, error)
}

// Service exposes task operations.
type Service interface {
	Create(ctx context.Context, input CreateTaskInput) (*models.Task, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*models.Task, error)
	Complete(ctx context.Context, id uuid.UUID) (*models.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListBuckets(ctx context.Context, filter BucketFilter) (*Buckets, error)
	ClientHistory(ctx context.Context, clientID uuid.UUID, filter HistoryFilter) ([]models.Task, error)
	RequestClientSheetExport(ctx context.Context, clientID uuid.UUID, format enums.ExportFormat) error
}

type service struct {
	repo        taskRepository
	contacts    contactDirectory
	employees   employeeDirectory
	exporter    exports.Exporter
	horizonDays int
	now         func() time.Time
}

// ServiceParams collects the dependencies for NewService.
type ServiceParams struct {
	Repo      taskRepository
	Contacts  contactDirectory
	Employees employeeDirectory
	Exporter  exports.Exporter
	Tasks     config.TasksConfig
	Now       func() time.Time
}

// NewService builds a task service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("task repository required")
	}
	if params.Contacts == nil {
		return nil, fmt.Errorf("contact directory required")
	}
	if params.Employees == nil {
		return nil, fmt.Errorf("employee directory required")
	}
	if params.Exporter == nil {
		return nil, fmt.Errorf("exporter required")
	}
	horizon := params.Tasks.UpcomingHorizonDays
	if horizon <= 0 {
		horizon = 2
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:        params.Repo,
		contacts:    params.Contacts,
		employees:   params.Employees,
		exporter:    params.Exporter,
		horizonDays: horizon,
		now:         now,
	}, nil
}

// DayOf truncates a timestamp to its calendar date in UTC.
func DayOf(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), t.UTC().Month(), t.UTC().Day(), 0, 0, 0, 0, time.UTC)
}

func (s *service) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if !input.ServiceCategory.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid service category")
	}

	contact, err := s.contacts.FindContact(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client")
	}

	task := &models.Task{
		ID:              uuid.New(),
		Description:     input.Description,
		ClientID:        contact.ID,
		ClientName:      contact.PersonalName,
		SubscriptionID:  input.SubscriptionID,
		DueDate:         DayOf(input.DueDate),
		Status:          enums.TaskStatusPending,
		ServiceCategory: input.ServiceCategory,
		ServiceType:     input.ServiceType,
	}

	if input.AssignedTo != nil {
		if err := s.assign(ctx, task, *input.AssignedTo); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create task")
	}
	return task, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.loadLiveTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.DueDate != nil {
		task.DueDate = DayOf(*input.DueDate)
	}
	if input.Unassign {
		task.AssignedTo = nil
		task.AssignedToName = nil
	} else if input.AssignedTo != nil {
		if err := s.assign(ctx, task, *input.AssignedTo); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update task")
	}
	return task, nil
}

func (s *service) Complete(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.loadLiveTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status == enums.TaskStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "task already completed")
	}

	completedAt := s.now()
	task.Status = enums.TaskStatusCompleted
	task.CompletedAt = &completedAt
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete task")
	}
	return task, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete task")
	}
	return nil
}

func (s *service) ListBuckets(ctx context.Context, filter BucketFilter) (*Buckets, error) {
	horizon := filter.HorizonDays
	if horizon <= 0 {
		horizon = s.horizonDays
	}

	today := DayOf(s.now())
	tomorrow := today.AddDate(0, 0, 1)
	limit := today.AddDate(0, 0, horizon)

	rows, err := s.repo.ListPendingBetween(ctx, today, limit, filter.AssignedTo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tasks")
	}

	buckets := &Buckets{
		Today:    []models.Task{},
		Tomorrow: []models.Task{},
		Upcoming: []models.Task{},
	}
	for _, task := range rows {
		due := DayOf(task.DueDate)
		switch {
		case due.Equal(today):
			buckets.Today = append(buckets.Today, task)
		case due.Equal(tomorrow):
			buckets.Tomorrow = append(buckets.Tomorrow, task)
		case due.After(today) && !due.After(limit):
			buckets.Upcoming = append(buckets.Upcoming, task)
		}
	}
	return buckets, nil
}

func (s *service) ClientHistory(ctx context.Context, clientID uuid.UUID, filter HistoryFilter) ([]models.Task, error) {
	rows, err := s.repo.ListByClient(ctx, clientID, filter.CompletedOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list client tasks")
	}
	return rows, nil
}

func (s *service) RequestClientSheetExport(ctx context.Context, clientID uuid.UUID, format enums.ExportFormat) error {
	if !format.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid export format")
	}
	if err := s.exporter.Request(ctx, exports.Request{
		Scope:   enums.ExportScopeClientTasks,
		Format:  format,
		Subject: clientID.String(),
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "request export")
	}
	return nil
}

func (s *service) assign(ctx context.Context, task *models.Task, employeeID uuid.UUID) error {
	employee, err := s.employees.FindEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load employee")
	}
	task.AssignedTo = &employee.ID
	task.AssignedToName = &employee.Name
	return nil
}

func (s *service) loadLiveTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load task")
	}
	if task.IsDeleted {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
	}
	return task, nil
}
