package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/agencydesk/agencydesk-backend/internal/tasks"
	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/logger"
)

type expiringSubscriptionRepo interface {
	MarkExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
	ListEndingBetween(ctx context.Context, from, to time.Time) ([]models.Subscription, error)
}

// SubscriptionExpiryJobParams configures the expiry sweep.
type SubscriptionExpiryJobParams struct {
	Logger      *logger.Logger
	Subs        expiringSubscriptionRepo
	WarningDays int
	Now         func() time.Time
}

// NewSubscriptionExpiryJob builds the job that expires lapsed subscriptions
// and flags the ones inside the warning window.
func NewSubscriptionExpiryJob(params SubscriptionExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Subs == nil {
		return nil, fmt.Errorf("subscription repository required")
	}
	warningDays := params.WarningDays
	if warningDays <= 0 {
		warningDays = 7
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &subscriptionExpiryJob{
		logg:        params.Logger,
		subs:        params.Subs,
		warningDays: warningDays,
		now:         now,
	}, nil
}

type subscriptionExpiryJob struct {
	logg        *logger.Logger
	subs        expiringSubscriptionRepo
	warningDays int
	now         func() time.Time
}

func (j *subscriptionExpiryJob) Name() string { return "subscription-expiry" }

func (j *subscriptionExpiryJob) Run(ctx context.Context) error {
	var errs []error

	today := tasks.DayOf(j.now())
	expired, err := j.subs.MarkExpiredBefore(ctx, today)
	if err != nil {
		errs = append(errs, fmt.Errorf("mark expired: %w", err))
	} else {
		logCtx := j.logg.WithFields(ctx, map[string]any{"expired": expired})
		j.logg.Info(logCtx, "subscription expiry sweep complete")
	}

	warnLimit := today.AddDate(0, 0, j.warningDays)
	expiring, err := j.subs.ListEndingBetween(ctx, today, warnLimit)
	if err != nil {
		errs = append(errs, fmt.Errorf("list expiring: %w", err))
	} else {
		for _, sub := range expiring {
			logCtx := j.logg.WithFields(ctx, map[string]any{
				"subscription_id": sub.ID.String(),
				"client":          sub.ClientName,
				"end_date":        sub.EndDate.Format(models.TaskDueDateLayout),
			})
			j.logg.Warn(logCtx, "subscription expiring soon")
		}
	}

	return multierr.Combine(errs...)
}
