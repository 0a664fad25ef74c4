package enums

import "fmt"

// ServiceCategory is one of the four service domains the agency sells.
type ServiceCategory string

const (
	ServiceCategoryWebsite     ServiceCategory = "website"
	ServiceCategoryDesign      ServiceCategory = "design"
	ServiceCategoryManagement  ServiceCategory = "management"
	ServiceCategoryAdvertising ServiceCategory = "advertising"
)

var validServiceCategories = []ServiceCategory{
	ServiceCategoryWebsite,
	ServiceCategoryDesign,
	ServiceCategoryManagement,
	ServiceCategoryAdvertising,
}

// ServiceCategories returns the closed set of categories in catalog order.
func ServiceCategories() []ServiceCategory {
	out := make([]ServiceCategory, len(validServiceCategories))
	copy(out, validServiceCategories)
	return out
}

// String implements fmt.Stringer.
func (c ServiceCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is known.
func (c ServiceCategory) IsValid() bool {
	for _, candidate := range validServiceCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseServiceCategory converts raw input into a ServiceCategory.
func ParseServiceCategory(value string) (ServiceCategory, error) {
	for _, candidate := range validServiceCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service category %q", value)
}
