package employees

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
)

func setupEmployeesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	employees := `
CREATE TABLE IF NOT EXISTS employees (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  age INTEGER,
  specialization TEXT,
  phone_number TEXT,
  whatsapp_number TEXT,
  social TEXT,
  monthly_salary NUMERIC NOT NULL DEFAULT 0,
  performance TEXT,
  username TEXT NOT NULL UNIQUE,
  warning_count INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'employee',
  password_hash TEXT NOT NULL,
  employee_id TEXT,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS users`).Error)
	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS employees`).Error)
	require.NoError(t, db.Exec(employees).Error)
	require.NoError(t, db.Exec(users).Error)
	return db
}

func staffPair(name, username string) (*models.Employee, *models.User) {
	employee := &models.Employee{
		ID:       uuid.New(),
		Name:     name,
		Username: username,
	}
	account := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Name:         name,
		Role:         enums.UserRoleEmployee,
		PasswordHash: "hash",
		EmployeeID:   &employee.ID,
	}
	return employee, account
}

func TestCreateWithAccountPersistsBothRows(t *testing.T) {
	db := setupEmployeesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	employee, account := staffPair("Sara Adel", "sara.adel")
	require.NoError(t, repo.CreateWithAccount(ctx, employee, account))

	loaded, err := repo.FindEmployee(ctx, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, "sara.adel", loaded.Username)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Where("employee_id = ?", employee.ID).Count(&users).Error)
	assert.EqualValues(t, 1, users)
}

func TestCreateWithAccountRollsBackOnAccountConflict(t *testing.T) {
	db := setupEmployeesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first, firstAccount := staffPair("Sara Adel", "sara.adel")
	require.NoError(t, repo.CreateWithAccount(ctx, first, firstAccount))

	// Second employee reuses the login name: the account insert fails and the
	// employee insert must roll back with it, leaving no row without a login.
	second := &models.Employee{
		ID:       uuid.New(),
		Name:     "Sara A.",
		Username: "sara.a",
	}
	conflicting := &models.User{
		ID:           uuid.New(),
		Username:     "sara.adel",
		Name:         "Sara A.",
		Role:         enums.UserRoleEmployee,
		PasswordHash: "hash",
		EmployeeID:   &second.ID,
	}
	require.Error(t, repo.CreateWithAccount(ctx, second, conflicting))

	_, err := repo.FindEmployee(ctx, second.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
