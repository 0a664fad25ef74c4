package enums

import "fmt"

// StatsPeriod selects the statistics reporting window.
type StatsPeriod string

const (
	StatsPeriodDaily   StatsPeriod = "daily"
	StatsPeriodWeekly  StatsPeriod = "weekly"
	StatsPeriodMonthly StatsPeriod = "monthly"
	StatsPeriodYearly  StatsPeriod = "yearly"
)

func (p StatsPeriod) String() string { return string(p) }

func (p StatsPeriod) IsValid() bool {
	switch p {
	case StatsPeriodDaily, StatsPeriodWeekly, StatsPeriodMonthly, StatsPeriodYearly:
		return true
	}
	return false
}

// ParseStatsPeriod validates the raw value into a StatsPeriod.
func ParseStatsPeriod(value string) (StatsPeriod, error) {
	p := StatsPeriod(value)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid stats period %q", value)
	}
	return p, nil
}
