package subscriptions

import "github.com/agencydesk/agencydesk-backend/pkg/enums"

// TierFor classifies a subscription by how many distinct service categories it
// carries: all four earn gold, three silver, two bronze, anything less regular.
func TierFor(categories []enums.ServiceCategory) enums.SubscriptionTier {
	distinct := make(map[enums.ServiceCategory]struct{}, len(categories))
	for _, c := range categories {
		if c.IsValid() {
			distinct[c] = struct{}{}
		}
	}
	switch len(distinct) {
	case 4:
		return enums.SubscriptionTierGold
	case 3:
		return enums.SubscriptionTierSilver
	case 2:
		return enums.SubscriptionTierBronze
	default:
		return enums.SubscriptionTierRegular
	}
}
