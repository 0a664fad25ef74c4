package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agencydesk/agencydesk-backend/pkg/db"
	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
	pkgerrors "github.com/agencydesk/agencydesk-backend/pkg/errors"
)

type catalogRepository interface {
	Create(ctx context.Context, price *models.ServicePrice) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ServicePrice, error)
	FindByCategoryType(ctx context.Context, category enums.ServiceCategory, serviceType string) (*models.ServicePrice, error)
	List(ctx context.Context, category *enums.ServiceCategory) ([]models.ServicePrice, error)
	Update(ctx context.Context, price *models.ServicePrice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PriceInput carries the catalog fields for create and update.
type PriceInput struct {
	Category  enums.ServiceCategory `json:"category" validate:"required"`
	Type      string                `json:"type" validate:"required"`
	Name      string                `json:"name" validate:"required"`
	BasePrice decimal.Decimal       `json:"basePrice"`
}

// Service exposes price catalog operations.
type Service interface {
	Create(ctx context.Context, input PriceInput) (*models.ServicePrice, error)
	List(ctx context.Context, category *enums.ServiceCategory) ([]models.ServicePrice, error)
	Lookup(ctx context.Context, category enums.ServiceCategory, serviceType string) (*models.ServicePrice, error)
	Update(ctx context.Context, id uuid.UUID, input PriceInput) (*models.ServicePrice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Categories() []enums.ServiceCategory
}

type service struct {
	repo catalogRepository
}

// NewService builds a catalog service over the provided repository.
func NewService(repo catalogRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input PriceInput) (*models.ServicePrice, error) {
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid service category")
	}

	price := &models.ServicePrice{
		ID:        uuid.New(),
		Category:  input.Category,
		Type:      input.Type,
		Name:      input.Name,
		BasePrice: input.BasePrice,
	}
	if err := s.repo.Create(ctx, price); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "price already defined for this service")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create price")
	}
	return price, nil
}

func (s *service) List(ctx context.Context, category *enums.ServiceCategory) ([]models.ServicePrice, error) {
	if category != nil && !category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid service category")
	}
	prices, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list prices")
	}
	return prices, nil
}

func (s *service) Lookup(ctx context.Context, category enums.ServiceCategory, serviceType string) (*models.ServicePrice, error) {
	if !category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid service category")
	}
	price, err := s.repo.FindByCategoryType(ctx, category, serviceType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "price not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup price")
	}
	return price, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input PriceInput) (*models.ServicePrice, error) {
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid service category")
	}

	price, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "price not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load price")
	}

	price.Category = input.Category
	price.Type = input.Type
	price.Name = input.Name
	price.BasePrice = input.BasePrice
	if err := s.repo.Update(ctx, price); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update price")
	}
	return price, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "price not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete price")
	}
	return nil
}

func (s *service) Categories() []enums.ServiceCategory {
	return enums.ServiceCategories()
}
