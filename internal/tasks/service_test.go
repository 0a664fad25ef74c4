package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agencydesk/agencydesk-backend/internal/exports"
	"github.com/agencydesk/agencydesk-backend/pkg/config"
	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
	pkgerrors "github.com/agencydesk/agencydesk-backend/pkg/errors"
)

type stubTaskRepo struct {
	created *models.Task
	stored  *models.Task
	pending []models.Task

	deleteErr error
}

func (s *stubTaskRepo) Create(_ context.Context, task *models.Task) error {
	s.created = task
	return nil
}

func (s *stubTaskRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Task, error) {
	if s.stored == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.stored, nil
}

func (s *stubTaskRepo) Update(_ context.Context, task *models.Task) error {
	s.stored = task
	return nil
}

func (s *stubTaskRepo) ListPendingBetween(_ context.Context, _, _ time.Time, _ *uuid.UUID) ([]models.Task, error) {
	return s.pending, nil
}

func (s *stubTaskRepo) ListByClient(_ context.Context, _ uuid.UUID, _ bool) ([]models.Task, error) {
	return s.pending, nil
}

func (s *stubTaskRepo) SoftDelete(_ context.Context, _ uuid.UUID) error {
	return s.deleteErr
}

type stubTaskContacts struct {
	contact *models.Contact
}

func (s stubTaskContacts) FindContact(_ context.Context, _ uuid.UUID) (*models.Contact, error) {
	if s.contact == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.contact, nil
}

type stubEmployees struct {
	employee *models.Employee
}

func (s stubEmployees) FindEmployee(_ context.Context, _ uuid.UUID) (*models.Employee, error) {
	if s.employee == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.employee, nil
}

type stubTaskExporter struct {
	requests []exports.Request
}

func (s *stubTaskExporter) Request(_ context.Context, req exports.Request) error {
	s.requests = append(s.requests, req)
	return nil
}

func taskTestNow() time.Time {
	return time.Date(2026, time.June, 10, 15, 30, 0, 0, time.UTC)
}

func newTaskService(t *testing.T, repo *stubTaskRepo, contacts stubTaskContacts, employees stubEmployees) (Service, *stubTaskExporter) {
	t.Helper()
	exporter := &stubTaskExporter{}
	svc, err := NewService(ServiceParams{
		Repo:      repo,
		Contacts:  contacts,
		Employees: employees,
		Exporter:  exporter,
		Tasks:     config.TasksConfig{UpcomingHorizonDays: 2},
		Now:       taskTestNow,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, exporter
}

func TestCreateSnapshotsNames(t *testing.T) {
	repo := &stubTaskRepo{}
	contact := &models.Contact{ID: uuid.New(), PersonalName: "Omar Farouk"}
	employee := &models.Employee{ID: uuid.New(), Name: "Sara Adel"}
	svc, _ := newTaskService(t, repo, stubTaskContacts{contact: contact}, stubEmployees{employee: employee})

	due := time.Date(2026, time.June, 12, 18, 45, 0, 0, time.UTC)
	task, err := svc.Create(context.Background(), CreateTaskInput{
		Description:     "publish weekly reel",
		ClientID:        contact.ID,
		DueDate:         due,
		ServiceCategory: enums.ServiceCategoryManagement,
		ServiceType:     "instagram",
		AssignedTo:      &employee.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if task.ClientName != contact.PersonalName {
		t.Fatalf("expected client name snapshot, got %q", task.ClientName)
	}
	if task.AssignedToName == nil || *task.AssignedToName != employee.Name {
		t.Fatalf("expected employee name snapshot, got %v", task.AssignedToName)
	}
	if want := time.Date(2026, time.June, 12, 0, 0, 0, 0, time.UTC); !task.DueDate.Equal(want) {
		t.Fatalf("expected due date truncated to %s got %s", want, task.DueDate)
	}
	if task.Status != enums.TaskStatusPending {
		t.Fatalf("expected pending status got %s", task.Status)
	}
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	repo := &stubTaskRepo{}
	svc, _ := newTaskService(t, repo, stubTaskContacts{}, stubEmployees{})

	_, err := svc.Create(context.Background(), CreateTaskInput{
		ClientID:        uuid.New(),
		DueDate:         taskTestNow(),
		ServiceCategory: enums.ServiceCategory("catering"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListBucketsPartitionsByDueDate(t *testing.T) {
	today := DayOf(taskTestNow())
	repo := &stubTaskRepo{pending: []models.Task{
		{ID: uuid.New(), DueDate: today},
		{ID: uuid.New(), DueDate: today.AddDate(0, 0, 1)},
		{ID: uuid.New(), DueDate: today.AddDate(0, 0, 2)},
	}}
	svc, _ := newTaskService(t, repo, stubTaskContacts{}, stubEmployees{})

	buckets, err := svc.ListBuckets(context.Background(), BucketFilter{})
	if err != nil {
		t.Fatalf("list buckets: %v", err)
	}

	if len(buckets.Today) != 1 {
		t.Fatalf("expected one task today got %d", len(buckets.Today))
	}
	if len(buckets.Tomorrow) != 1 {
		t.Fatalf("expected one task tomorrow got %d", len(buckets.Tomorrow))
	}
	if len(buckets.Upcoming) != 1 {
		t.Fatalf("expected one upcoming task got %d", len(buckets.Upcoming))
	}

	// A task may land in exactly one bucket.
	total := len(buckets.Today) + len(buckets.Tomorrow) + len(buckets.Upcoming)
	if total != len(repo.pending) {
		t.Fatalf("expected %d bucketed tasks got %d", len(repo.pending), total)
	}
}

func TestListBucketsHorizonBoundary(t *testing.T) {
	today := DayOf(taskTestNow())

	// Several tasks per day across the horizon edge. Upcoming must cover
	// (today, today+horizon] minus tomorrow, and anything past the horizon
	// lands in no bucket at all.
	cases := []struct {
		name         string
		offsetDays   []int
		wantToday    int
		wantTomorrow int
		wantUpcoming int
	}{
		{
			name:         "everything inside the horizon",
			offsetDays:   []int{0, 0, 1, 2, 2},
			wantToday:    2,
			wantTomorrow: 1,
			wantUpcoming: 2,
		},
		{
			name:         "task one day past the horizon is dropped",
			offsetDays:   []int{0, 1, 2, 3},
			wantToday:    1,
			wantTomorrow: 1,
			wantUpcoming: 1,
		},
		{
			name:         "only out of range tasks",
			offsetDays:   []int{3, 4},
			wantToday:    0,
			wantTomorrow: 0,
			wantUpcoming: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var pending []models.Task
			for _, offset := range tc.offsetDays {
				pending = append(pending, models.Task{
					ID:      uuid.New(),
					DueDate: today.AddDate(0, 0, offset),
				})
			}
			repo := &stubTaskRepo{pending: pending}
			svc, _ := newTaskService(t, repo, stubTaskContacts{}, stubEmployees{})

			buckets, err := svc.ListBuckets(context.Background(), BucketFilter{})
			if err != nil {
				t.Fatalf("list buckets: %v", err)
			}

			if len(buckets.Today) != tc.wantToday {
				t.Fatalf("expected %d today got %d", tc.wantToday, len(buckets.Today))
			}
			if len(buckets.Tomorrow) != tc.wantTomorrow {
				t.Fatalf("expected %d tomorrow got %d", tc.wantTomorrow, len(buckets.Tomorrow))
			}
			if len(buckets.Upcoming) != tc.wantUpcoming {
				t.Fatalf("expected %d upcoming got %d", tc.wantUpcoming, len(buckets.Upcoming))
			}

			seen := map[uuid.UUID]int{}
			for _, bucket := range [][]models.Task{buckets.Today, buckets.Tomorrow, buckets.Upcoming} {
				for _, task := range bucket {
					seen[task.ID]++
				}
			}
			for id, count := range seen {
				if count != 1 {
					t.Fatalf("task %s appeared in %d buckets", id, count)
				}
			}
		})
	}
}

func TestCompleteAlreadyCompleted(t *testing.T) {
	completedAt := taskTestNow().Add(-time.Hour)
	repo := &stubTaskRepo{stored: &models.Task{
		ID:          uuid.New(),
		Status:      enums.TaskStatusCompleted,
		CompletedAt: &completedAt,
	}}
	svc, _ := newTaskService(t, repo, stubTaskContacts{}, stubEmployees{})

	_, err := svc.Complete(context.Background(), repo.stored.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestCompleteStampsTimestamp(t *testing.T) {
	repo := &stubTaskRepo{stored: &models.Task{
		ID:     uuid.New(),
		Status: enums.TaskStatusPending,
	}}
	svc, _ := newTaskService(t, repo, stubTaskContacts{}, stubEmployees{})

	task, err := svc.Complete(context.Background(), repo.stored.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if task.Status != enums.TaskStatusCompleted {
		t.Fatalf("expected completed status got %s", task.Status)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(taskTestNow()) {
		t.Fatalf("expected completion stamp %s got %v", taskTestNow(), task.CompletedAt)
	}
}

func TestUpdateDeletedTaskNotFound(t *testing.T) {
	repo := &stubTaskRepo{stored: &models.Task{
		ID:        uuid.New(),
		IsDeleted: true,
	}}
	svc, _ := newTaskService(t, repo, stubTaskContacts{}, stubEmployees{})

	desc := "updated"
	_, err := svc.Update(context.Background(), repo.stored.ID, UpdateTaskInput{Description: &desc})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateUnassignClearsSnapshot(t *testing.T) {
	empID := uuid.New()
	name := "Sara Adel"
	repo := &stubTaskRepo{stored: &models.Task{
		ID:             uuid.New(),
		Status:         enums.TaskStatusPending,
		AssignedTo:     &empID,
		AssignedToName: &name,
	}}
	svc, _ := newTaskService(t, repo, stubTaskContacts{}, stubEmployees{})

	task, err := svc.Update(context.Background(), repo.stored.ID, UpdateTaskInput{Unassign: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if task.AssignedTo != nil || task.AssignedToName != nil {
		t.Fatal("expected assignment cleared")
	}
}

func TestDeleteMissingTask(t *testing.T) {
	repo := &stubTaskRepo{deleteErr: gorm.ErrRecordNotFound}
	svc, _ := newTaskService(t, repo, stubTaskContacts{}, stubEmployees{})

	err := svc.Delete(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRequestClientSheetExport(t *testing.T) {
	repo := &stubTaskRepo{}
	svc, exporter := newTaskService(t, repo, stubTaskContacts{}, stubEmployees{})

	clientID := uuid.New()
	if err := svc.RequestClientSheetExport(context.Background(), clientID, enums.ExportFormatPDF); err != nil {
		t.Fatalf("request export: %v", err)
	}
	if len(exporter.requests) != 1 {
		t.Fatalf("expected one export request got %d", len(exporter.requests))
	}
	if exporter.requests[0].Subject != clientID.String() {
		t.Fatalf("expected subject %s got %s", clientID, exporter.requests[0].Subject)
	}
}
