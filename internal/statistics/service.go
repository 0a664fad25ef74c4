package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agencydesk/agencydesk-backend/pkg/enums"
	pkgerrors "github.com/agencydesk/agencydesk-backend/pkg/errors"
)

type subscriptionStats interface {
	CountByStatus(ctx context.Context, status enums.SubscriptionStatus) (int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountByStatusBetween(ctx context.Context, status enums.SubscriptionStatus, column string, from, to time.Time) (int64, error)
	SumTotalByStatus(ctx context.Context, status enums.SubscriptionStatus) (string, error)
}

// Overview is the aggregate picture of subscription activity over one window.
type Overview struct {
	Period       enums.StatsPeriod `json:"period"`
	From         time.Time         `json:"from"`
	To           time.Time         `json:"to"`
	ActiveCount  int64             `json:"activeCount"`
	NewCount     int64             `json:"newCount"`
	ExpiredCount int64             `json:"expiredCount"`
	DeletedCount int64             `json:"deletedCount"`
	ActiveValue  decimal.Decimal   `json:"activeValue"`
	ExpiredValue decimal.Decimal   `json:"expiredValue"`
	Indicator    enums.Performance `json:"indicator"`
}

// Service exposes the read-only statistics surface.
type Service interface {
	Overview(ctx context.Context, period enums.StatsPeriod) (*Overview, error)
}

type service struct {
	subs subscriptionStats
	now  func() time.Time
}

// NewService builds a statistics service over the subscriptions repository.
func NewService(subs subscriptionStats, now func() time.Time) (Service, error) {
	if subs == nil {
		return nil, fmt.Errorf("subscription stats source required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{subs: subs, now: now}, nil
}

// WindowFor maps a period onto [from, to) anchored at the current moment.
func WindowFor(period enums.StatsPeriod, now time.Time) (time.Time, time.Time) {
	switch period {
	case enums.StatsPeriodDaily:
		return now.AddDate(0, 0, -1), now
	case enums.StatsPeriodWeekly:
		return now.AddDate(0, 0, -7), now
	case enums.StatsPeriodMonthly:
		return now.AddDate(0, -1, 0), now
	default:
		return now.AddDate(-1, 0, 0), now
	}
}

func (s *service) Overview(ctx context.Context, period enums.StatsPeriod) (*Overview, error) {
	if !period.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid stats period")
	}

	from, to := WindowFor(period, s.now())
	overview := &Overview{Period: period, From: from, To: to}

	var err error
	if overview.ActiveCount, err = s.subs.CountByStatus(ctx, enums.SubscriptionStatusActive); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active")
	}
	if overview.NewCount, err = s.subs.CountCreatedBetween(ctx, from, to); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count new")
	}
	if overview.ExpiredCount, err = s.subs.CountByStatusBetween(ctx, enums.SubscriptionStatusExpired, "end_date", from, to); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count expired")
	}
	if overview.DeletedCount, err = s.subs.CountByStatusBetween(ctx, enums.SubscriptionStatusDeleted, "deleted_at", from, to); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count deleted")
	}

	activeValue, err := s.subs.SumTotalByStatus(ctx, enums.SubscriptionStatusActive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum active value")
	}
	if overview.ActiveValue, err = decimal.NewFromString(activeValue); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse active value")
	}

	expiredValue, err := s.subs.SumTotalByStatus(ctx, enums.SubscriptionStatusExpired)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum expired value")
	}
	if overview.ExpiredValue, err = decimal.NewFromString(expiredValue); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse expired value")
	}

	overview.Indicator = IndicatorFor(overview.NewCount, overview.ExpiredCount)
	return overview, nil
}

// IndicatorFor grades the window from the ratio of new subscriptions against
// churn. No movement at all reads as excellent.
func IndicatorFor(newCount, expiredCount int64) enums.Performance {
	total := newCount + expiredCount
	if total == 0 {
		return enums.PerformanceExcellent
	}
	ratio := float64(newCount) / float64(total)
	switch {
	case ratio >= 0.9:
		return enums.PerformanceExcellent
	case ratio >= 0.7:
		return enums.PerformanceGood
	default:
		return enums.PerformanceWeak
	}
}
