package subscriptions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agencydesk/agencydesk-backend/internal/exports"
	"github.com/agencydesk/agencydesk-backend/pkg/config"
	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
	pkgerrors "github.com/agencydesk/agencydesk-backend/pkg/errors"
)

type stubSubscriptionRepo struct {
	created *models.Subscription
	stored  *models.Subscription
	updated *models.Subscription

	findErr    error
	recycleErr error
	restored   map[string]any

	replaceCalled bool
	updatedDesign *[]models.DesignService
	windowFrom    time.Time
	windowTo      time.Time
}

func (s *stubSubscriptionRepo) Create(_ context.Context, sub *models.Subscription) error {
	s.created = sub
	return nil
}

func (s *stubSubscriptionRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Subscription, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.stored, nil
}

func (s *stubSubscriptionRepo) List(_ context.Context, _ ListFilter) ([]models.Subscription, error) {
	if s.stored == nil {
		return nil, nil
	}
	return []models.Subscription{*s.stored}, nil
}

func (s *stubSubscriptionRepo) ListRecycle(_ context.Context) ([]models.Subscription, error) {
	return nil, nil
}

func (s *stubSubscriptionRepo) UpdateWithLineItems(
	_ context.Context,
	sub *models.Subscription,
	_ *[]models.EmailCredential,
	_ *[]models.WebsiteService,
	design *[]models.DesignService,
	_ *[]models.ManagementService,
	_ *[]models.AdvertisingService,
) error {
	s.updated = sub
	if design != nil {
		s.updatedDesign = design
		s.replaceCalled = true
	}
	return nil
}

func (s *stubSubscriptionRepo) MoveToRecycle(_ context.Context, _ uuid.UUID, _ time.Time) error {
	return s.recycleErr
}

func (s *stubSubscriptionRepo) Restore(_ context.Context, _ uuid.UUID, fields map[string]any) error {
	s.restored = fields
	if s.stored != nil {
		s.stored.Status = enums.SubscriptionStatusActive
	}
	return nil
}

func (s *stubSubscriptionRepo) ListEndingBetween(_ context.Context, from, to time.Time) ([]models.Subscription, error) {
	s.windowFrom = from
	s.windowTo = to
	if s.stored == nil {
		return nil, nil
	}
	end := s.stored.EndDate
	if end.Before(from) || end.After(to) {
		return nil, nil
	}
	return []models.Subscription{*s.stored}, nil
}

type stubContacts struct {
	contact *models.Contact
	err     error
}

func (s stubContacts) FindContact(_ context.Context, _ uuid.UUID) (*models.Contact, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.contact, nil
}

type stubExporter struct {
	requests []exports.Request
}

func (s *stubExporter) Request(_ context.Context, req exports.Request) error {
	s.requests = append(s.requests, req)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T, repo *stubSubscriptionRepo, contacts stubContacts) (Service, *stubExporter) {
	t.Helper()
	exporter := &stubExporter{}
	svc, err := NewService(ServiceParams{
		Repo:     repo,
		Contacts: contacts,
		Exporter: exporter,
		Tasks:    config.TasksConfig{ExpiryWarningDays: 7},
		Now:      fixedNow,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, exporter
}

func testContact() *models.Contact {
	return &models.Contact{
		ID:           uuid.New(),
		FolderID:     uuid.New(),
		PersonalName: "Layla Hassan",
		PhoneNumber:  "+20100000000",
	}
}

func TestServiceCreateComputesDerivedFields(t *testing.T) {
	repo := &stubSubscriptionRepo{}
	contact := testContact()
	svc, _ := newTestService(t, repo, stubContacts{contact: contact})

	start := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	dto, err := svc.Create(context.Background(), CreateSubscriptionInput{
		ClientID:       contact.ID,
		DurationMonths: 3,
		StartDate:      start,
		DesignServices: []DesignServiceInput{{
			Type:             "post",
			MonthlyInstances: 4,
			Price:            decimal.NewFromInt(50),
		}},
		ManagementServices: []ManagementServiceInput{{
			Type:           "instagram",
			MonthlyUpdates: 12,
			Price:          decimal.NewFromInt(10),
		}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if dto.ClientName != contact.PersonalName {
		t.Fatalf("expected client name %q got %q", contact.PersonalName, dto.ClientName)
	}
	if dto.ClientPhone != contact.PhoneNumber {
		t.Fatalf("expected client phone %q got %q", contact.PhoneNumber, dto.ClientPhone)
	}
	if dto.Tier != enums.SubscriptionTierBronze {
		t.Fatalf("expected bronze tier got %s", dto.Tier)
	}
	if !dto.TotalPrice.Equal(decimal.NewFromInt(960)) {
		t.Fatalf("expected total 960 got %s", dto.TotalPrice)
	}
	if want := start.AddDate(0, 3, 0); !dto.EndDate.Equal(want) {
		t.Fatalf("expected end date %s got %s", want, dto.EndDate)
	}
	if dto.Status != enums.SubscriptionStatusActive {
		t.Fatalf("expected active status got %s", dto.Status)
	}
	if repo.created == nil {
		t.Fatal("expected subscription persisted")
	}
}

func TestServiceCreateRejectsBadDuration(t *testing.T) {
	repo := &stubSubscriptionRepo{}
	svc, _ := newTestService(t, repo, stubContacts{contact: testContact()})

	_, err := svc.Create(context.Background(), CreateSubscriptionInput{
		ClientID:       uuid.New(),
		DurationMonths: 0,
		StartDate:      fixedNow(),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceCreateUnknownClient(t *testing.T) {
	repo := &stubSubscriptionRepo{}
	svc, _ := newTestService(t, repo, stubContacts{err: gorm.ErrRecordNotFound})

	_, err := svc.Create(context.Background(), CreateSubscriptionInput{
		ClientID:       uuid.New(),
		DurationMonths: 3,
		StartDate:      fixedNow(),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestServiceUpdateRejectsRecycledSubscription(t *testing.T) {
	repo := &stubSubscriptionRepo{stored: &models.Subscription{
		ID:     uuid.New(),
		Status: enums.SubscriptionStatusDeleted,
	}}
	svc, _ := newTestService(t, repo, stubContacts{contact: testContact()})

	_, err := svc.Update(context.Background(), repo.stored.ID, UpdateSubscriptionInput{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if repo.replaceCalled {
		t.Fatal("line items must not be replaced for recycled subscriptions")
	}
}

func TestServiceUpdateKeepsTierUnlessAsked(t *testing.T) {
	start := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	stored := &models.Subscription{
		ID:             uuid.New(),
		Status:         enums.SubscriptionStatusActive,
		Tier:           enums.SubscriptionTierGold,
		DurationMonths: 3,
		StartDate:      start,
		DesignServices: []models.DesignService{{
			Type:             "post",
			MonthlyInstances: 2,
			Price:            decimal.NewFromInt(30),
		}},
	}
	repo := &stubSubscriptionRepo{stored: stored}
	svc, _ := newTestService(t, repo, stubContacts{contact: testContact()})

	empty := []DesignServiceInput{}
	dto, err := svc.Update(context.Background(), stored.ID, UpdateSubscriptionInput{
		DesignServices: &empty,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if dto.Tier != enums.SubscriptionTierGold {
		t.Fatalf("tier should stay locked, got %s", dto.Tier)
	}
	if !dto.TotalPrice.Equal(decimal.Zero) {
		t.Fatalf("expected total recomputed to zero got %s", dto.TotalPrice)
	}
	if !repo.replaceCalled {
		t.Fatal("expected line item replacement")
	}

	dto, err = svc.Update(context.Background(), stored.ID, UpdateSubscriptionInput{RecomputeTier: true})
	if err != nil {
		t.Fatalf("update with recompute: %v", err)
	}
	if dto.Tier != enums.SubscriptionTierRegular {
		t.Fatalf("expected tier recomputed to regular got %s", dto.Tier)
	}
}

func TestServiceUpdateCommitsDerivedColumnsWithLineItems(t *testing.T) {
	start := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	stored := &models.Subscription{
		ID:             uuid.New(),
		Status:         enums.SubscriptionStatusActive,
		DurationMonths: 3,
		StartDate:      start,
		TotalPrice:     decimal.NewFromInt(90),
	}
	repo := &stubSubscriptionRepo{stored: stored}
	svc, _ := newTestService(t, repo, stubContacts{contact: testContact()})

	design := []DesignServiceInput{{
		Type:             "post",
		MonthlyInstances: 4,
		Price:            decimal.NewFromInt(50),
	}}
	if _, err := svc.Update(context.Background(), stored.ID, UpdateSubscriptionInput{
		DesignServices: &design,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	// The row and the replaced line items must arrive in the same repository
	// call, carrying the total recomputed from the new set.
	if repo.updated == nil || repo.updatedDesign == nil {
		t.Fatal("expected row and line items in one repository call")
	}
	if want := decimal.NewFromInt(600); !repo.updated.TotalPrice.Equal(want) {
		t.Fatalf("expected total %s got %s", want, repo.updated.TotalPrice)
	}
	if want := start.AddDate(0, 3, 0); !repo.updated.EndDate.Equal(want) {
		t.Fatalf("expected end date %s got %s", want, repo.updated.EndDate)
	}
	if len(*repo.updatedDesign) != 1 || (*repo.updatedDesign)[0].Type != "post" {
		t.Fatalf("unexpected design set %+v", *repo.updatedDesign)
	}
}

func TestServiceDeleteNotFound(t *testing.T) {
	repo := &stubSubscriptionRepo{recycleErr: gorm.ErrRecordNotFound}
	svc, _ := newTestService(t, repo, stubContacts{contact: testContact()})

	err := svc.Delete(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestServiceRestoreRequiresRecycledState(t *testing.T) {
	repo := &stubSubscriptionRepo{stored: &models.Subscription{
		ID:     uuid.New(),
		Status: enums.SubscriptionStatusActive,
	}}
	svc, _ := newTestService(t, repo, stubContacts{contact: testContact()})

	_, err := svc.Restore(context.Background(), repo.stored.ID, RestoreSubscriptionInput{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestServiceRestoreWithFreshTerm(t *testing.T) {
	repo := &stubSubscriptionRepo{stored: &models.Subscription{
		ID:             uuid.New(),
		Status:         enums.SubscriptionStatusDeleted,
		DurationMonths: 3,
		StartDate:      time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	}}
	svc, _ := newTestService(t, repo, stubContacts{contact: testContact()})

	months := 6
	start := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Restore(context.Background(), repo.stored.ID, RestoreSubscriptionInput{
		DurationMonths: &months,
		StartDate:      &start,
	})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	if repo.restored == nil {
		t.Fatal("expected restore fields")
	}
	if got := repo.restored["end_date"].(time.Time); !got.Equal(start.AddDate(0, 6, 0)) {
		t.Fatalf("expected recomputed end date, got %s", got)
	}
}

func TestServiceListExpiringSoonAnnotates(t *testing.T) {
	now := fixedNow()
	repo := &stubSubscriptionRepo{stored: &models.Subscription{
		ID:      uuid.New(),
		Status:  enums.SubscriptionStatusActive,
		EndDate: now.AddDate(0, 0, 3),
	}}
	svc, _ := newTestService(t, repo, stubContacts{contact: testContact()})

	dtos, err := svc.ListExpiringSoon(context.Background())
	if err != nil {
		t.Fatalf("list expiring: %v", err)
	}
	if len(dtos) != 1 {
		t.Fatalf("expected one subscription got %d", len(dtos))
	}
	if !dtos[0].IsExpiringSoon {
		t.Fatal("expected expiry flag set")
	}
}

func TestServiceListExpiringSoonIncludesEndingToday(t *testing.T) {
	// End dates are stored at midnight, so a subscription ending today must
	// stay in the listing even though the clock has moved past 00:00.
	now := fixedNow()
	endToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	repo := &stubSubscriptionRepo{stored: &models.Subscription{
		ID:      uuid.New(),
		Status:  enums.SubscriptionStatusActive,
		EndDate: endToday,
	}}
	svc, _ := newTestService(t, repo, stubContacts{contact: testContact()})

	dtos, err := svc.ListExpiringSoon(context.Background())
	if err != nil {
		t.Fatalf("list expiring: %v", err)
	}
	if len(dtos) != 1 {
		t.Fatalf("expected subscription ending today to be listed, got %d", len(dtos))
	}
	if !dtos[0].IsExpiringSoon {
		t.Fatal("expected expiry flag set")
	}
	if !repo.windowFrom.Equal(endToday) {
		t.Fatalf("expected window anchored at start of day, got %s", repo.windowFrom)
	}
}

func TestServiceRequestExport(t *testing.T) {
	repo := &stubSubscriptionRepo{}
	svc, exporter := newTestService(t, repo, stubContacts{contact: testContact()})

	if err := svc.RequestExport(context.Background(), enums.ExportFormatExcel); err != nil {
		t.Fatalf("request export: %v", err)
	}
	if len(exporter.requests) != 1 {
		t.Fatalf("expected one export request got %d", len(exporter.requests))
	}
	if exporter.requests[0].Scope != enums.ExportScopeSubscriptions {
		t.Fatalf("unexpected scope %s", exporter.requests[0].Scope)
	}

	err := svc.RequestExport(context.Background(), enums.ExportFormat("docx"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceGetByIDDependencyError(t *testing.T) {
	repo := &stubSubscriptionRepo{findErr: errors.New("boom")}
	svc, _ := newTestService(t, repo, stubContacts{contact: testContact()})

	_, err := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
