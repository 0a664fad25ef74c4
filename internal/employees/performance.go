package employees

import "github.com/agencydesk/agencydesk-backend/pkg/enums"

// PerformanceFor grades an employee from their task completion ratio. An
// employee with nothing assigned has nothing held against them.
func PerformanceFor(completed, total int) enums.Performance {
	if total == 0 {
		return enums.PerformanceExcellent
	}
	ratio := float64(completed) / float64(total)
	switch {
	case ratio >= 0.9:
		return enums.PerformanceExcellent
	case ratio >= 0.7:
		return enums.PerformanceGood
	default:
		return enums.PerformanceWeak
	}
}
