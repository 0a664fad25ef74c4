package employees

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agencydesk/agencydesk-backend/pkg/config"
	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
	pkgerrors "github.com/agencydesk/agencydesk-backend/pkg/errors"
	"github.com/agencydesk/agencydesk-backend/pkg/security"
)

type stubEmployeeRepo struct {
	created        *models.Employee
	createdAccount *models.User
	stored         *models.Employee

	createErr error
	warnings  int
	warnErr   error
}

func (s *stubEmployeeRepo) CreateWithAccount(_ context.Context, employee *models.Employee, account *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = employee
	s.createdAccount = account
	return nil
}

func (s *stubEmployeeRepo) FindEmployee(_ context.Context, _ uuid.UUID) (*models.Employee, error) {
	if s.stored == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.stored, nil
}

func (s *stubEmployeeRepo) List(_ context.Context) ([]models.Employee, error) {
	if s.stored == nil {
		return nil, nil
	}
	return []models.Employee{*s.stored}, nil
}

func (s *stubEmployeeRepo) Update(_ context.Context, employee *models.Employee) error {
	s.stored = employee
	return nil
}

func (s *stubEmployeeRepo) Delete(_ context.Context, _ uuid.UUID) error {
	if s.stored == nil {
		return gorm.ErrRecordNotFound
	}
	s.stored = nil
	return nil
}

func (s *stubEmployeeRepo) IncrementWarnings(_ context.Context, _ uuid.UUID) (int, error) {
	if s.warnErr != nil {
		return 0, s.warnErr
	}
	s.warnings++
	return s.warnings, nil
}

func (s *stubEmployeeRepo) ResetWarnings(_ context.Context, _ uuid.UUID) error {
	s.warnings = 0
	return nil
}

type stubUserRepo struct {
	account     *models.User
	credentials map[string]string
}

func (s *stubUserRepo) FindByEmployeeID(_ context.Context, _ uuid.UUID) (*models.User, error) {
	if s.account == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.account, nil
}

func (s *stubUserRepo) UpdateCredentials(_ context.Context, _ uuid.UUID, username, passwordHash string) error {
	if s.credentials == nil {
		s.credentials = map[string]string{}
	}
	s.credentials[username] = passwordHash
	return nil
}

func (s *stubUserRepo) DeleteByEmployeeID(_ context.Context, _ uuid.UUID) error {
	s.account = nil
	return nil
}

func passwordCfg() config.PasswordConfig {
	// Deliberately cheap parameters to keep the test fast.
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newEmployeeService(t *testing.T, repo *stubEmployeeRepo, users *stubUserRepo) Service {
	t.Helper()
	svc, err := NewService(repo, users, passwordCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateProvisionsAccount(t *testing.T) {
	repo := &stubEmployeeRepo{}
	users := &stubUserRepo{}
	svc := newEmployeeService(t, repo, users)

	created, err := svc.Create(context.Background(), CreateEmployeeInput{
		Name:     "Sara Adel",
		Age:      27,
		Username: "sara.adel",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.TempPassword == "" {
		t.Fatal("expected a temporary password")
	}
	if repo.createdAccount == nil {
		t.Fatal("expected a login account")
	}
	if repo.createdAccount.Role != enums.UserRoleEmployee {
		t.Fatalf("expected employee role got %s", repo.createdAccount.Role)
	}
	if repo.createdAccount.EmployeeID == nil || *repo.createdAccount.EmployeeID != created.Employee.ID {
		t.Fatal("expected account linked to employee")
	}

	ok, err := security.VerifyPassword(created.TempPassword, repo.createdAccount.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("temp password should verify against stored hash: ok=%v err=%v", ok, err)
	}
}

func TestCreateDuplicateUsername(t *testing.T) {
	repo := &stubEmployeeRepo{
		createErr: errors.New(`duplicate key value violates unique constraint "employees_username_key"`),
	}
	svc := newEmployeeService(t, repo, &stubUserRepo{})

	_, err := svc.Create(context.Background(), CreateEmployeeInput{
		Name:     "Sara Adel",
		Username: "sara.adel",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	// The rolled back transaction must leave neither row behind.
	if repo.created != nil || repo.createdAccount != nil {
		t.Fatal("expected no employee or account after conflict")
	}
}

func TestSetPerformanceRejectsUnknownRating(t *testing.T) {
	repo := &stubEmployeeRepo{stored: &models.Employee{ID: uuid.New()}}
	svc := newEmployeeService(t, repo, &stubUserRepo{})

	_, err := svc.SetPerformance(context.Background(), repo.stored.ID, SetPerformanceInput{
		Performance: enums.Performance("stellar"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestWarningLifecycle(t *testing.T) {
	repo := &stubEmployeeRepo{stored: &models.Employee{ID: uuid.New()}}
	svc := newEmployeeService(t, repo, &stubUserRepo{})

	count, err := svc.AddWarning(context.Background(), repo.stored.ID)
	if err != nil {
		t.Fatalf("add warning: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one warning got %d", count)
	}

	count, err = svc.AddWarning(context.Background(), repo.stored.ID)
	if err != nil {
		t.Fatalf("add second warning: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected two warnings got %d", count)
	}

	if err := svc.ResetWarnings(context.Background(), repo.stored.ID); err != nil {
		t.Fatalf("reset warnings: %v", err)
	}
	if repo.warnings != 0 {
		t.Fatalf("expected warnings cleared got %d", repo.warnings)
	}
}

func TestAddWarningUnknownEmployee(t *testing.T) {
	repo := &stubEmployeeRepo{warnErr: gorm.ErrRecordNotFound}
	svc := newEmployeeService(t, repo, &stubUserRepo{})

	_, err := svc.AddWarning(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateCredentialsSyncsUsername(t *testing.T) {
	empID := uuid.New()
	repo := &stubEmployeeRepo{stored: &models.Employee{ID: empID, Username: "old.name"}}
	users := &stubUserRepo{account: &models.User{
		ID:         uuid.New(),
		Username:   "old.name",
		EmployeeID: &empID,
	}}
	svc := newEmployeeService(t, repo, users)

	err := svc.UpdateCredentials(context.Background(), empID, UpdateCredentialsInput{
		Username: "new.name",
		Password: "long-enough-secret",
	})
	if err != nil {
		t.Fatalf("update credentials: %v", err)
	}

	if repo.stored.Username != "new.name" {
		t.Fatalf("expected username synced, got %q", repo.stored.Username)
	}
	hash, ok := users.credentials["new.name"]
	if !ok {
		t.Fatal("expected rotated credentials stored")
	}
	verified, err := security.VerifyPassword("long-enough-secret", hash)
	if err != nil || !verified {
		t.Fatalf("rotated password should verify: ok=%v err=%v", verified, err)
	}
}

func TestDeleteRemovesAccount(t *testing.T) {
	empID := uuid.New()
	repo := &stubEmployeeRepo{stored: &models.Employee{ID: empID}}
	users := &stubUserRepo{account: &models.User{ID: uuid.New(), EmployeeID: &empID}}
	svc := newEmployeeService(t, repo, users)

	if err := svc.Delete(context.Background(), empID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if users.account != nil {
		t.Fatal("expected login account removed")
	}
}
