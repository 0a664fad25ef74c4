package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/agencydesk/agencydesk-backend/internal/tasks"
	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
	"github.com/agencydesk/agencydesk-backend/pkg/logger"
)

type activeSubscriptionLister interface {
	ListActive(ctx context.Context) ([]models.Subscription, error)
}

type generatedTaskStore interface {
	ExistsGenerated(ctx context.Context, subscriptionID uuid.UUID, category enums.ServiceCategory, serviceType string, dueDate time.Time) (bool, error)
	CreateBatch(ctx context.Context, rows []models.Task) error
}

// TaskGenerationJobParams configures the daily task generation job.
type TaskGenerationJobParams struct {
	Logger    *logger.Logger
	Subs      activeSubscriptionLister
	TaskStore generatedTaskStore
	Now       func() time.Time
}

// NewTaskGenerationJob builds the job that turns recurring subscription line
// items into the day's pending tasks. Generation is idempotent per
// (subscription, service type, due date), so reruns within a day are safe.
func NewTaskGenerationJob(params TaskGenerationJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Subs == nil {
		return nil, fmt.Errorf("subscription lister required")
	}
	if params.TaskStore == nil {
		return nil, fmt.Errorf("task store required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &taskGenerationJob{
		logg:  params.Logger,
		subs:  params.Subs,
		store: params.TaskStore,
		now:   now,
	}, nil
}

type taskGenerationJob struct {
	logg  *logger.Logger
	subs  activeSubscriptionLister
	store generatedTaskStore
	now   func() time.Time
}

func (j *taskGenerationJob) Name() string { return "task-generation" }

func (j *taskGenerationJob) Run(ctx context.Context) error {
	today := tasks.DayOf(j.now())

	subs, err := j.subs.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active subscriptions: %w", err)
	}

	var errs []error
	created := 0
	for i := range subs {
		n, err := j.generateForSubscription(ctx, &subs[i], today)
		if err != nil {
			errs = append(errs, fmt.Errorf("subscription %s: %w", subs[i].ID, err))
			continue
		}
		created += n
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"subscriptions": len(subs),
		"created":       created,
	})
	j.logg.Info(logCtx, "task generation loop complete")
	return multierr.Combine(errs...)
}

func (j *taskGenerationJob) generateForSubscription(ctx context.Context, sub *models.Subscription, today time.Time) (int, error) {
	if today.Before(tasks.DayOf(sub.StartDate)) || !today.Before(tasks.DayOf(sub.EndDate)) {
		return 0, nil
	}

	var rows []models.Task
	for _, item := range sub.DesignServices {
		if item.MonthlyInstances <= 0 {
			continue
		}
		task, ok, err := j.buildTask(ctx, sub, enums.ServiceCategoryDesign, item.Type, today,
			fmt.Sprintf("Design %s for %s", item.Type, sub.ClientName))
		if err != nil {
			return 0, err
		}
		if ok {
			rows = append(rows, task)
		}
	}
	for _, item := range sub.ManagementServices {
		if item.MonthlyUpdates <= 0 {
			continue
		}
		task, ok, err := j.buildTask(ctx, sub, enums.ServiceCategoryManagement, item.Type, today,
			fmt.Sprintf("Manage %s for %s", item.Type, sub.ClientName))
		if err != nil {
			return 0, err
		}
		if ok {
			rows = append(rows, task)
		}
	}

	if len(rows) == 0 {
		return 0, nil
	}
	if err := j.store.CreateBatch(ctx, rows); err != nil {
		return 0, fmt.Errorf("persist generated tasks: %w", err)
	}
	return len(rows), nil
}

func (j *taskGenerationJob) buildTask(
	ctx context.Context,
	sub *models.Subscription,
	category enums.ServiceCategory,
	serviceType string,
	dueDate time.Time,
	description string,
) (models.Task, bool, error) {
	exists, err := j.store.ExistsGenerated(ctx, sub.ID, category, serviceType, dueDate)
	if err != nil {
		return models.Task{}, false, fmt.Errorf("check existing task: %w", err)
	}
	if exists {
		return models.Task{}, false, nil
	}
	return models.Task{
		ID:              uuid.New(),
		Description:     description,
		ClientID:        sub.ClientID,
		ClientName:      sub.ClientName,
		SubscriptionID:  sub.ID,
		DueDate:         dueDate,
		Status:          enums.TaskStatusPending,
		ServiceCategory: category,
		ServiceType:     serviceType,
	}, true, nil
}
