package employees

import (
	"github.com/shopspring/decimal"

	"github.com/agencydesk/agencydesk-backend/pkg/enums"
	"github.com/agencydesk/agencydesk-backend/pkg/types"
)

// CreateEmployeeInput captures a new staff record. A login account is created
// alongside it with a temporary password.
type CreateEmployeeInput struct {
	Name           string          `json:"name" validate:"required"`
	Age            int             `json:"age" validate:"min=0"`
	Specialization string          `json:"specialization"`
	PhoneNumber    string          `json:"phoneNumber"`
	WhatsappNumber string          `json:"whatsappNumber"`
	Social         *types.Social   `json:"socialMedia"`
	MonthlySalary  decimal.Decimal `json:"monthlySalary"`
	Username       string          `json:"username" validate:"required"`
}

// UpdateEmployeeInput mutates the staff record. Nil fields are left alone.
type UpdateEmployeeInput struct {
	Name           *string          `json:"name"`
	Age            *int             `json:"age"`
	Specialization *string          `json:"specialization"`
	PhoneNumber    *string          `json:"phoneNumber"`
	WhatsappNumber *string          `json:"whatsappNumber"`
	Social         *types.Social    `json:"socialMedia"`
	MonthlySalary  *decimal.Decimal `json:"monthlySalary"`
}

// SetPerformanceInput grades an employee.
type SetPerformanceInput struct {
	Performance enums.Performance `json:"performance" validate:"required"`
}

// UpdateCredentialsInput rotates an employee's login. The password is
// re-hashed; the username is synced onto both the employee and the account.
type UpdateCredentialsInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}
