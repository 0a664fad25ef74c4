package subscriptions

import (
	"testing"
	"time"
)

func TestEndDate(t *testing.T) {
	start := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	end := EndDate(start, 6)
	want := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Fatalf("expected %s got %s", want, end)
	}
}

func TestEndDateMonthOverflowNormalizes(t *testing.T) {
	start := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)
	end := EndDate(start, 1)
	// January 31 plus one month normalizes past February's end.
	want := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Fatalf("expected %s got %s", want, end)
	}
}

func TestStartOfDay(t *testing.T) {
	at := time.Date(2026, time.June, 1, 12, 45, 30, 0, time.UTC)
	want := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	if got := StartOfDay(at); !got.Equal(want) {
		t.Fatalf("expected %s got %s", want, got)
	}
	if got := StartOfDay(want); !got.Equal(want) {
		t.Fatalf("midnight must be a fixed point, got %s", got)
	}
}

func TestIsExpiringSoon(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want bool
	}{
		{"ends today", now, true},
		{"ends at window edge", now.AddDate(0, 0, 7), true},
		{"ends just past window", now.AddDate(0, 0, 8), false},
		{"already expired", now.AddDate(0, 0, -1), false},
		{"partial day rounds up", now.Add(6 * time.Hour), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsExpiringSoon(tc.end, now, 7); got != tc.want {
				t.Fatalf("expected %v got %v", tc.want, got)
			}
		})
	}
}
