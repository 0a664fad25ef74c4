package subscriptions

import (
	"testing"

	"github.com/agencydesk/agencydesk-backend/pkg/enums"
)

func TestTierFor(t *testing.T) {
	cases := []struct {
		name       string
		categories []enums.ServiceCategory
		want       enums.SubscriptionTier
	}{
		{
			name: "all four categories earn gold",
			categories: []enums.ServiceCategory{
				enums.ServiceCategoryWebsite,
				enums.ServiceCategoryDesign,
				enums.ServiceCategoryManagement,
				enums.ServiceCategoryAdvertising,
			},
			want: enums.SubscriptionTierGold,
		},
		{
			name: "three categories earn silver",
			categories: []enums.ServiceCategory{
				enums.ServiceCategoryDesign,
				enums.ServiceCategoryManagement,
				enums.ServiceCategoryAdvertising,
			},
			want: enums.SubscriptionTierSilver,
		},
		{
			name: "two categories earn bronze",
			categories: []enums.ServiceCategory{
				enums.ServiceCategoryDesign,
				enums.ServiceCategoryManagement,
			},
			want: enums.SubscriptionTierBronze,
		},
		{
			name:       "single category stays regular",
			categories: []enums.ServiceCategory{enums.ServiceCategoryWebsite},
			want:       enums.SubscriptionTierRegular,
		},
		{
			name:       "no categories stays regular",
			categories: nil,
			want:       enums.SubscriptionTierRegular,
		},
		{
			name: "duplicates count once",
			categories: []enums.ServiceCategory{
				enums.ServiceCategoryDesign,
				enums.ServiceCategoryDesign,
				enums.ServiceCategoryDesign,
			},
			want: enums.SubscriptionTierRegular,
		},
		{
			name: "unknown categories are ignored",
			categories: []enums.ServiceCategory{
				enums.ServiceCategoryDesign,
				enums.ServiceCategory("printing"),
			},
			want: enums.SubscriptionTierRegular,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TierFor(tc.categories); got != tc.want {
				t.Fatalf("expected %s got %s", tc.want, got)
			}
		})
	}
}
