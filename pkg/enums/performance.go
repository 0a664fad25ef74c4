package enums

import "fmt"

// Performance grades an employee's completed-task ratio. The zero value means
// the employee has not been rated yet.
type Performance string

const (
	PerformanceExcellent Performance = "excellent"
	PerformanceGood      Performance = "good"
	PerformanceWeak      Performance = "weak"
)

var validPerformances = []Performance{
	PerformanceExcellent,
	PerformanceGood,
	PerformanceWeak,
}

// String implements fmt.Stringer.
func (p Performance) String() string {
	return string(p)
}

// IsValid reports whether the value is known.
func (p Performance) IsValid() bool {
	for _, candidate := range validPerformances {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePerformance converts raw input into a Performance.
func ParsePerformance(value string) (Performance, error) {
	for _, candidate := range validPerformances {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid performance %q", value)
}
