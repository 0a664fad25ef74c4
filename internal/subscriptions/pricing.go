package subscriptions

import (
	"github.com/shopspring/decimal"

	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
)

// TotalPrice aggregates the line items of a subscription. Website and
// advertising items are one-time charges; design and management items recur
// per instance/update per month across the whole duration.
func TotalPrice(
	durationMonths int,
	website []models.WebsiteService,
	design []models.DesignService,
	management []models.ManagementService,
	advertising []models.AdvertisingService,
) decimal.Decimal {
	duration := decimal.NewFromInt(int64(durationMonths))
	total := decimal.Zero

	for _, item := range website {
		total = total.Add(item.Price)
	}
	for _, item := range design {
		instances := decimal.NewFromInt(int64(item.MonthlyInstances))
		total = total.Add(item.Price.Mul(instances).Mul(duration))
	}
	for _, item := range management {
		updates := decimal.NewFromInt(int64(item.MonthlyUpdates))
		total = total.Add(item.Price.Mul(updates).Mul(duration))
	}
	for _, item := range advertising {
		total = total.Add(item.Price)
	}

	return total
}

// AdvertisingPrice folds the service fee and the optional ad budget into the
// stored line item price.
func AdvertisingPrice(serviceFee decimal.Decimal, budget *decimal.Decimal) decimal.Decimal {
	if budget == nil {
		return serviceFee
	}
	return serviceFee.Add(*budget)
}
