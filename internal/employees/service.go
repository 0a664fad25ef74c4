package employees

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agencydesk/agencydesk-backend/pkg/config"
	"github.com/agencydesk/agencydesk-backend/pkg/db"
	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
	pkgerrors "github.com/agencydesk/agencydesk-backend/pkg/errors"
	"github.com/agencydesk/agencydesk-backend/pkg/security"
)

type employeeRepository interface {
	CreateWithAccount(ctx context.Context, employee *models.Employee, account *models.User) error
	FindEmployee(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementWarnings(ctx context.Context, id uuid.UUID) (int, error)
	ResetWarnings(ctx context.Context, id uuid.UUID) error
}

type userRepository interface {
	FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) (*models.User, error)
	UpdateCredentials(ctx context.Context, id uuid.UUID, username, passwordHash string) error
	DeleteByEmployeeID(ctx context.Context, employeeID uuid.UUID) error
}

// CreatedEmployee pairs the new record with the one-time temp password.
type CreatedEmployee struct {
	Employee     *models.Employee `json:"employee"`
	TempPassword string           `json:"tempPassword"`
}

// Service exposes employee operations.
type Service interface {
	Create(ctx context.Context, input CreateEmployeeInput) (*CreatedEmployee, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateEmployeeInput) (*models.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetPerformance(ctx context.Context, id uuid.UUID, input SetPerformanceInput) (*models.Employee, error)
	AddWarning(ctx context.Context, id uuid.UUID) (int, error)
	ResetWarnings(ctx context.Context, id uuid.UUID) error
	UpdateCredentials(ctx context.Context, id uuid.UUID, input UpdateCredentialsInput) error
}

type service struct {
	repo        employeeRepository
	users       userRepository
	passwordCfg config.PasswordConfig
}

// NewService builds an employee service with the provided dependencies.
func NewService(repo employeeRepository, usersRepo userRepository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("employee repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{
		repo:        repo,
		users:       usersRepo,
		passwordCfg: passwordCfg,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateEmployeeInput) (*CreatedEmployee, error) {
	employee := &models.Employee{
		ID:             uuid.New(),
		Name:           input.Name,
		Age:            input.Age,
		Specialization: input.Specialization,
		PhoneNumber:    input.PhoneNumber,
		WhatsappNumber: input.WhatsappNumber,
		MonthlySalary:  input.MonthlySalary,
		Username:       input.Username,
	}
	if input.Social != nil {
		employee.Social = *input.Social
	}

	tempPassword, err := security.GenerateTempPassword(16)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
	}
	hash, err := security.HashPassword(tempPassword, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	account := &models.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Name:         input.Name,
		Role:         enums.UserRoleEmployee,
		PasswordHash: hash,
		EmployeeID:   &employee.ID,
	}

	// Both inserts ride one transaction so a conflict on either leaves no
	// orphaned employee row without a login.
	if err := s.repo.CreateWithAccount(ctx, employee, account); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create employee")
	}

	return &CreatedEmployee{Employee: employee, TempPassword: tempPassword}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	employee, err := s.repo.FindEmployee(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load employee")
	}
	return employee, nil
}

func (s *service) List(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list employees")
	}
	return employees, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateEmployeeInput) (*models.Employee, error) {
	employee, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		employee.Name = *input.Name
	}
	if input.Age != nil {
		employee.Age = *input.Age
	}
	if input.Specialization != nil {
		employee.Specialization = *input.Specialization
	}
	if input.PhoneNumber != nil {
		employee.PhoneNumber = *input.PhoneNumber
	}
	if input.WhatsappNumber != nil {
		employee.WhatsappNumber = *input.WhatsappNumber
	}
	if input.Social != nil {
		employee.Social = *input.Social
	}
	if input.MonthlySalary != nil {
		employee.MonthlySalary = *input.MonthlySalary
	}

	if err := s.repo.Update(ctx, employee); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update employee")
	}
	return employee, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete employee")
	}
	if err := s.users.DeleteByEmployeeID(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete account")
	}
	return nil
}

func (s *service) SetPerformance(ctx context.Context, id uuid.UUID, input SetPerformanceInput) (*models.Employee, error) {
	if !input.Performance.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid performance rating")
	}

	employee, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	employee.Performance = &input.Performance
	if err := s.repo.Update(ctx, employee); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set performance")
	}
	return employee, nil
}

func (s *service) AddWarning(ctx context.Context, id uuid.UUID) (int, error) {
	count, err := s.repo.IncrementWarnings(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add warning")
	}
	return count, nil
}

func (s *service) ResetWarnings(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.ResetWarnings(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reset warnings")
	}
	return nil
}

func (s *service) UpdateCredentials(ctx context.Context, id uuid.UUID, input UpdateCredentialsInput) error {
	employee, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	account, err := s.users.FindByEmployeeID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account")
	}
	if err := s.users.UpdateCredentials(ctx, account.ID, input.Username, hash); err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update credentials")
	}

	employee.Username = input.Username
	if err := s.repo.Update(ctx, employee); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sync username")
	}
	return nil
}
