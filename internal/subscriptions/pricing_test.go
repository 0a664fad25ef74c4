package subscriptions

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
)

func TestTotalPriceRecurringItems(t *testing.T) {
	// A three month term: four design pieces at 50 each per month plus twelve
	// management updates at 10 each per month.
	design := []models.DesignService{{
		Type:             "post",
		MonthlyInstances: 4,
		Price:            decimal.NewFromInt(50),
	}}
	management := []models.ManagementService{{
		Type:           "instagram",
		MonthlyUpdates: 12,
		Price:          decimal.NewFromInt(10),
	}}

	total := TotalPrice(3, nil, design, management, nil)
	if !total.Equal(decimal.NewFromInt(960)) {
		t.Fatalf("expected 960 got %s", total)
	}
}

func TestTotalPriceOneTimeItems(t *testing.T) {
	website := []models.WebsiteService{{Type: "landing", Price: decimal.NewFromInt(500)}}
	advertising := []models.AdvertisingService{{
		Type:  "google",
		Price: decimal.NewFromInt(350),
	}}

	// One-time charges ignore the duration.
	total := TotalPrice(12, website, nil, nil, advertising)
	if !total.Equal(decimal.NewFromInt(850)) {
		t.Fatalf("expected 850 got %s", total)
	}
}

func TestTotalPriceEmpty(t *testing.T) {
	total := TotalPrice(6, nil, nil, nil, nil)
	if !total.Equal(decimal.Zero) {
		t.Fatalf("expected zero got %s", total)
	}
}

func TestTotalPriceZeroQuantityRecurring(t *testing.T) {
	design := []models.DesignService{{
		Type:             "logo",
		MonthlyInstances: 0,
		Price:            decimal.NewFromInt(100),
	}}
	total := TotalPrice(3, nil, design, nil, nil)
	if !total.Equal(decimal.Zero) {
		t.Fatalf("expected zero got %s", total)
	}
}

func TestAdvertisingPrice(t *testing.T) {
	fee := decimal.NewFromInt(150)

	if got := AdvertisingPrice(fee, nil); !got.Equal(fee) {
		t.Fatalf("expected %s got %s", fee, got)
	}

	budget := decimal.NewFromInt(200)
	if got := AdvertisingPrice(fee, &budget); !got.Equal(decimal.NewFromInt(350)) {
		t.Fatalf("expected 350 got %s", got)
	}
}
