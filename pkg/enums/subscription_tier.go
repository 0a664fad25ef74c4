package enums

import "fmt"

// SubscriptionTier is the quality class derived from service breadth.
type SubscriptionTier string

const (
	SubscriptionTierGold    SubscriptionTier = "gold"
	SubscriptionTierSilver  SubscriptionTier = "silver"
	SubscriptionTierBronze  SubscriptionTier = "bronze"
	SubscriptionTierRegular SubscriptionTier = "regular"
)

var validSubscriptionTiers = []SubscriptionTier{
	SubscriptionTierGold,
	SubscriptionTierSilver,
	SubscriptionTierBronze,
	SubscriptionTierRegular,
}

// String implements fmt.Stringer.
func (t SubscriptionTier) String() string {
	return string(t)
}

// IsValid reports whether the value is known.
func (t SubscriptionTier) IsValid() bool {
	for _, candidate := range validSubscriptionTiers {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseSubscriptionTier converts raw input into a SubscriptionTier.
func ParseSubscriptionTier(value string) (SubscriptionTier, error) {
	for _, candidate := range validSubscriptionTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid subscription tier %q", value)
}
