package subscriptions

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

type subscriptionRepository interface {
	Create(ctx context.Context, sub *models.Subscription) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	List(ctx context.Context, filter ListFilter) ([]models.Subscription, error)
	ListRecycle(ctx context.Context) ([]models.Subscription, error)
	UpdateWithLineItems(
		ctx context.Context,
		sub *models.Subscription,
		credentials *[]models.EmailCredential,
		website *[]models.WebsiteService,
		design *[]models.DesignService,
		management *[]models.ManagementService,
		advertising *[]models.AdvertisingService,
	) error
	MoveToRecycle(ctx context.Context, id uuid.UUID, now time.Time) error
	Restore(ctx context.Context, id uuid.UUID, fields map[string]any) error
	ListEndingBetween(ctx context.Context, from, to time.Time) ([]models.Subscription, error)
}

type contactDirectory interface {
	FindContact(ctx context.Context, id uuid.UUID) (*models.Contact, error)
}

// Service exposes subscription operations.
type Service interface {
	Create(ctx context.Context, input CreateSubscriptionInput) (*SubscriptionDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SubscriptionDTO, error)
	List(ctx context.Context, filter ListFilter) ([]SubscriptionDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateSubscriptionInput) (*SubscriptionDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListRecycle(ctx context.Context) ([]SubscriptionDTO, error)
	Restore(ctx context.Context, id uuid.UUID, input RestoreSubscriptionInput) (*SubscriptionDTO, error)
	ListExpiringSoon(ctx context.Context) ([]SubscriptionDTO, error)
	RequestExport(ctx context.Context, format enums.ExportFormat) error
}

type service struct {
	repo        subscriptionRepository
	contacts    contactDirectory
	exporter    exports.Exporter
	warningDays int
	now         func() time.Time
}

// ServiceParams collects the dependencies for NewService.
type ServiceParams struct {
	Repo     subscriptionRepository
	Contacts contactDirectory
	Exporter exports.Exporter
	Tasks    config.TasksConfig
	Now      func() time.Time
}

// NewService builds a subscription service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("subscription repository required")
	}
	if params.Contacts == nil {
		return nil, fmt.Errorf("contact directory required")
	}
	if params.Exporter == nil {
		return nil, fmt.Errorf("exporter required")
	}
	warningDays := params.Tasks.ExpiryWarningDays
	if warningDays <= 0 {
		warningDays = 7
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:        params.Repo,
		contacts:    params.Contacts,
		exporter:    params.Exporter,
		warningDays: warningDays,
		now:         now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateSubscriptionInput) (*SubscriptionDTO, error) {
	if input.DurationMonths <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "duration must be positive")
	}
	if input.StartDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start date is required")
	}

	contact, err := s.contacts.FindContact(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client")
	}

	subID := uuid.New()
	sub := &models.Subscription{
		ID:             subID,
		ClientID:       contact.ID,
		ClientName:     contact.PersonalName,
		ClientPhone:    contact.PhoneNumber,
		DurationMonths: input.DurationMonths,
		StartDate:      input.StartDate,
		EndDate:        EndDate(input.StartDate, input.DurationMonths),
		Status:         enums.SubscriptionStatusActive,
	}

	for _, in := range input.EmailCredentials {
		sub.EmailCredentials = append(sub.EmailCredentials, in.toModel(subID))
	}
	for _, in := range input.WebsiteServices {
		sub.WebsiteServices = append(sub.WebsiteServices, in.toModel(subID))
	}
	for _, in := range input.DesignServices {
		sub.DesignServices = append(sub.DesignServices, in.toModel(subID))
	}
	for _, in := range input.ManagementServices {
		sub.ManagementServices = append(sub.ManagementServices, in.toModel(subID))
	}
	for _, in := range input.AdvertisingServices {
		sub.AdvertisingServices = append(sub.AdvertisingServices, in.toModel(subID))
	}

	sub.Tier = TierFor(sub.ServiceCategories())
	sub.TotalPrice = TotalPrice(
		sub.DurationMonths,
		sub.WebsiteServices,
		sub.DesignServices,
		sub.ManagementServices,
		sub.AdvertisingServices,
	)

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create subscription")
	}
	return s.toDTO(sub), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*SubscriptionDTO, error) {
	sub, err := s.loadSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDTO(sub), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]SubscriptionDTO, error) {
	subs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subscriptions")
	}
	return s.toDTOs(subs), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateSubscriptionInput) (*SubscriptionDTO, error) {
	if input.DurationMonths != nil && *input.DurationMonths <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "duration must be positive")
	}

	sub, err := s.loadSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status == enums.SubscriptionStatusDeleted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "subscription is in the recycle bin")
	}

	if input.DurationMonths != nil {
		sub.DurationMonths = *input.DurationMonths
	}
	if input.StartDate != nil {
		sub.StartDate = *input.StartDate
	}

	credentials := convertSet(input.EmailCredentials, id, EmailCredentialInput.toModel)
	website := convertSet(input.WebsiteServices, id, WebsiteServiceInput.toModel)
	design := convertSet(input.DesignServices, id, DesignServiceInput.toModel)
	management := convertSet(input.ManagementServices, id, ManagementServiceInput.toModel)
	advertising := convertSet(input.AdvertisingServices, id, AdvertisingServiceInput.toModel)

	if credentials != nil {
		sub.EmailCredentials = *credentials
	}
	if website != nil {
		sub.WebsiteServices = *website
	}
	if design != nil {
		sub.DesignServices = *design
	}
	if management != nil {
		sub.ManagementServices = *management
	}
	if advertising != nil {
		sub.AdvertisingServices = *advertising
	}

	sub.EndDate = EndDate(sub.StartDate, sub.DurationMonths)
	sub.TotalPrice = TotalPrice(
		sub.DurationMonths,
		sub.WebsiteServices,
		sub.DesignServices,
		sub.ManagementServices,
		sub.AdvertisingServices,
	)
	if input.RecomputeTier {
		sub.Tier = TierFor(sub.ServiceCategories())
	}

	// One repository call so the recomputed derived columns and the replaced
	// line items commit together or not at all.
	if err := s.repo.UpdateWithLineItems(ctx, sub, credentials, website, design, management, advertising); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update subscription")
	}
	return s.toDTO(sub), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.MoveToRecycle(ctx, id, s.now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "subscription not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete subscription")
	}
	return nil
}

func (s *service) ListRecycle(ctx context.Context) ([]SubscriptionDTO, error) {
	subs, err := s.repo.ListRecycle(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recycle bin")
	}
	return s.toDTOs(subs), nil
}

func (s *service) Restore(ctx context.Context, id uuid.UUID, input RestoreSubscriptionInput) (*SubscriptionDTO, error) {
	if input.DurationMonths != nil && *input.DurationMonths <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "duration must be positive")
	}

	sub, err := s.loadSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != enums.SubscriptionStatusDeleted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "subscription is not in the recycle bin")
	}

	duration := sub.DurationMonths
	start := sub.StartDate
	if input.DurationMonths != nil {
		duration = *input.DurationMonths
	}
	if input.StartDate != nil {
		start = *input.StartDate
	}

	fields := map[string]any{}
	if input.DurationMonths != nil || input.StartDate != nil {
		fields["duration_months"] = duration
		fields["start_date"] = start
		fields["end_date"] = EndDate(start, duration)
	}

	if err := s.repo.Restore(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subscription not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore subscription")
	}
	return s.GetByID(ctx, id)
}

func (s *service) ListExpiringSoon(ctx context.Context) ([]SubscriptionDTO, error) {
	now := s.now()
	// End dates are midnight stamps, so the window starts at today's midnight
	// or a subscription ending today would vanish from the list after 00:00.
	from := StartOfDay(now)
	to := now.AddDate(0, 0, s.warningDays)
	subs, err := s.repo.ListEndingBetween(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list expiring subscriptions")
	}

	dtos := make([]SubscriptionDTO, 0, len(subs))
	for i := range subs {
		if IsExpiringSoon(subs[i].EndDate, now, s.warningDays) {
			dtos = append(dtos, *s.toDTO(&subs[i]))
		}
	}
	return dtos, nil
}

func (s *service) RequestExport(ctx context.Context, format enums.ExportFormat) error {
	if !format.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid export format")
	}
	if err := s.exporter.Request(ctx, exports.Request{
		Scope:  enums.ExportScopeSubscriptions,
		Format: format,
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "request export")
	}
	return nil
}

func (s *service) loadSubscription(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subscription not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subscription")
	}
	return sub, nil
}

func (s *service) toDTO(sub *models.Subscription) *SubscriptionDTO {
	return &SubscriptionDTO{
		Subscription:   *sub,
		IsExpiringSoon: sub.Status == enums.SubscriptionStatusActive && IsExpiringSoon(sub.EndDate, s.now(), s.warningDays),
	}
}

func (s *service) toDTOs(subs []models.Subscription) []SubscriptionDTO {
	dtos := make([]SubscriptionDTO, 0, len(subs))
	for i := range subs {
		dtos = append(dtos, *s.toDTO(&subs[i]))
	}
	return dtos
}

func convertSet[I any, M any](in *[]I, subID uuid.UUID, convert func(I, uuid.UUID) M) *[]M {
	if in == nil {
		return nil
	}
	out := make([]M, 0, len(*in))
	for _, item := range *in {
		out = append(out, convert(item, subID))
	}
	return &out
}
