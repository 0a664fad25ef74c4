package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
	pkgerrors "github.com/agencydesk/agencydesk-backend/pkg/errors"
)

type stubCatalogRepo struct {
	price     *models.ServicePrice
	createErr error
}

func (s *stubCatalogRepo) Create(_ context.Context, price *models.ServicePrice) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.price = price
	return nil
}

func (s *stubCatalogRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.ServicePrice, error) {
	if s.price == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.price, nil
}

func (s *stubCatalogRepo) FindByCategoryType(_ context.Context, _ enums.ServiceCategory, _ string) (*models.ServicePrice, error) {
	if s.price == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.price, nil
}

func (s *stubCatalogRepo) List(_ context.Context, _ *enums.ServiceCategory) ([]models.ServicePrice, error) {
	if s.price == nil {
		return nil, nil
	}
	return []models.ServicePrice{*s.price}, nil
}

func (s *stubCatalogRepo) Update(_ context.Context, price *models.ServicePrice) error {
	s.price = price
	return nil
}

func (s *stubCatalogRepo) Delete(_ context.Context, _ uuid.UUID) error {
	if s.price == nil {
		return gorm.ErrRecordNotFound
	}
	s.price = nil
	return nil
}

func newCatalogService(t *testing.T, repo *stubCatalogRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCatalogCreate(t *testing.T) {
	repo := &stubCatalogRepo{}
	svc := newCatalogService(t, repo)

	price, err := svc.Create(context.Background(), PriceInput{
		Category:  enums.ServiceCategoryDesign,
		Type:      "logo",
		Name:      "Logo design",
		BasePrice: decimal.NewFromInt(120),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if price.ID == uuid.Nil {
		t.Fatal("expected an id assigned")
	}

	_, err = svc.Create(context.Background(), PriceInput{Category: enums.ServiceCategory("printing"), Type: "x", Name: "x"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCatalogCreateDuplicate(t *testing.T) {
	repo := &stubCatalogRepo{
		createErr: errors.New(`duplicate key value violates unique constraint "service_prices_category_type_key"`),
	}
	svc := newCatalogService(t, repo)

	_, err := svc.Create(context.Background(), PriceInput{
		Category: enums.ServiceCategoryDesign,
		Type:     "logo",
		Name:     "Logo design",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCatalogLookupNotFound(t *testing.T) {
	svc := newCatalogService(t, &stubCatalogRepo{})

	_, err := svc.Lookup(context.Background(), enums.ServiceCategoryWebsite, "landing")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCatalogCategories(t *testing.T) {
	svc := newCatalogService(t, &stubCatalogRepo{})

	categories := svc.Categories()
	if len(categories) != 4 {
		t.Fatalf("expected four categories got %d", len(categories))
	}
	for _, category := range categories {
		if !category.IsValid() {
			t.Fatalf("unexpected category %s", category)
		}
	}
}
