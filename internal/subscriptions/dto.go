package subscriptions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
	"github.com/agencydesk/agencydesk-backend/pkg/types"
)

// EmailCredentialInput is a managed inbox supplied at creation.
type EmailCredentialInput struct {
	Provider string `json:"provider" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// WebsiteServiceInput is a one-time website line item.
type WebsiteServiceInput struct {
	Type  string          `json:"type" validate:"required"`
	Price decimal.Decimal `json:"price"`
}

// DesignServiceInput is a recurring design line item priced per instance.
type DesignServiceInput struct {
	Type             string           `json:"type" validate:"required"`
	Platforms        []enums.Platform `json:"platforms"`
	MonthlyInstances int              `json:"monthlyInstances" validate:"min=0"`
	Price            decimal.Decimal  `json:"price"`
}

// ManagementServiceInput is a recurring management line item priced per update.
type ManagementServiceInput struct {
	Type           string           `json:"type" validate:"required"`
	Platforms      []enums.Platform `json:"platforms"`
	MonthlyUpdates int              `json:"monthlyUpdates" validate:"min=0"`
	Price          decimal.Decimal  `json:"price"`
}

// AdvertisingServiceInput is a campaign line item. The stored price is the
// service fee plus the optional budget.
type AdvertisingServiceInput struct {
	Type       string           `json:"type" validate:"required"`
	Platforms  []enums.Platform `json:"platforms"`
	Budget     *decimal.Decimal `json:"budget"`
	ServiceFee decimal.Decimal  `json:"serviceFee"`
}

// CreateSubscriptionInput captures everything needed to open a subscription.
// Client name and phone are snapshotted from the contact at creation time.
type CreateSubscriptionInput struct {
	ClientID       uuid.UUID `json:"clientId" validate:"required"`
	DurationMonths int       `json:"duration" validate:"required"`
	StartDate      time.Time `json:"startDate" validate:"required"`

	EmailCredentials    []EmailCredentialInput    `json:"emailCredentials" validate:"dive"`
	WebsiteServices     []WebsiteServiceInput     `json:"websiteServices" validate:"dive"`
	DesignServices      []DesignServiceInput      `json:"designServices" validate:"dive"`
	ManagementServices  []ManagementServiceInput  `json:"managementServices" validate:"dive"`
	AdvertisingServices []AdvertisingServiceInput `json:"advertisingServices" validate:"dive"`
}

// UpdateSubscriptionInput mutates an existing subscription. Nil slices leave
// the stored line items alone; non-nil slices replace them wholesale. Tier is
// locked at creation unless RecomputeTier is set.
type UpdateSubscriptionInput struct {
	DurationMonths *int       `json:"duration"`
	StartDate      *time.Time `json:"startDate"`

	EmailCredentials    *[]EmailCredentialInput    `json:"emailCredentials" validate:"omitempty,dive"`
	WebsiteServices     *[]WebsiteServiceInput     `json:"websiteServices" validate:"omitempty,dive"`
	DesignServices      *[]DesignServiceInput      `json:"designServices" validate:"omitempty,dive"`
	ManagementServices  *[]ManagementServiceInput  `json:"managementServices" validate:"omitempty,dive"`
	AdvertisingServices *[]AdvertisingServiceInput `json:"advertisingServices" validate:"omitempty,dive"`

	RecomputeTier bool `json:"recomputeTier"`
}

// RestoreSubscriptionInput reactivates a recycled subscription, optionally
// with a fresh term.
type RestoreSubscriptionInput struct {
	DurationMonths *int       `json:"duration"`
	StartDate      *time.Time `json:"startDate"`
}

// ListFilter narrows subscription listings.
type ListFilter struct {
	Status *enums.SubscriptionStatus
	Tier   *enums.SubscriptionTier
}

// SubscriptionDTO is the API-facing projection, annotated with the expiry
// warning flag.
type SubscriptionDTO struct {
	models.Subscription
	IsExpiringSoon bool `json:"isExpiringSoon"`
}

func (in EmailCredentialInput) toModel(subID uuid.UUID) models.EmailCredential {
	return models.EmailCredential{
		ID:             uuid.New(),
		SubscriptionID: subID,
		Provider:       in.Provider,
		Email:          in.Email,
		Password:       in.Password,
	}
}

func (in WebsiteServiceInput) toModel(subID uuid.UUID) models.WebsiteService {
	return models.WebsiteService{
		ID:             uuid.New(),
		SubscriptionID: subID,
		Type:           in.Type,
		Price:          in.Price,
	}
}

func (in DesignServiceInput) toModel(subID uuid.UUID) models.DesignService {
	return models.DesignService{
		ID:               uuid.New(),
		SubscriptionID:   subID,
		Type:             in.Type,
		Platforms:        types.PlatformList(in.Platforms),
		MonthlyInstances: in.MonthlyInstances,
		Price:            in.Price,
	}
}

func (in ManagementServiceInput) toModel(subID uuid.UUID) models.ManagementService {
	return models.ManagementService{
		ID:             uuid.New(),
		SubscriptionID: subID,
		Type:           in.Type,
		Platforms:      types.PlatformList(in.Platforms),
		MonthlyUpdates: in.MonthlyUpdates,
		Price:          in.Price,
	}
}

func (in AdvertisingServiceInput) toModel(subID uuid.UUID) models.AdvertisingService {
	return models.AdvertisingService{
		ID:             uuid.New(),
		SubscriptionID: subID,
		Type:           in.Type,
		Platforms:      types.PlatformList(in.Platforms),
		Budget:         in.Budget,
		ServiceFee:     in.ServiceFee,
		Price:          AdvertisingPrice(in.ServiceFee, in.Budget),
	}
}
