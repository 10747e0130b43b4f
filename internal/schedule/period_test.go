package schedule

import (
	"testing"
	"time"
)

func TestPeriodArithmetic(t *testing.T) {
	t.Run("add_months_forward_across_year", func(t *testing.T) {
		p := Period{Year: 2025, Month: 11}
		got := p.AddMonths(3)
		want := Period{Year: 2026, Month: 2}
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("add_months_backward_across_year", func(t *testing.T) {
		p := Period{Year: 2025, Month: 2}
		got := p.AddMonths(-3)
		want := Period{Year: 2024, Month: 11}
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("add_zero_is_identity", func(t *testing.T) {
		p := Period{Year: 2025, Month: 6}
		if got := p.AddMonths(0); got != p {
			t.Errorf("expected %+v, got %+v", p, got)
		}
	})

	t.Run("before_and_after", func(t *testing.T) {
		early := Period{Year: 2024, Month: 12}
		late := Period{Year: 2025, Month: 1}
		if !early.Before(late) {
			t.Error("expected December 2024 to be before January 2025")
		}
		if !late.After(early) {
			t.Error("expected January 2025 to be after December 2024")
		}
		if early.Before(early) || early.After(early) {
			t.Error("a period is neither before nor after itself")
		}
	})

	t.Run("period_of_time", func(t *testing.T) {
		got := PeriodOf(time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC))
		want := Period{Year: 2025, Month: 6}
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("label", func(t *testing.T) {
		p := Period{Year: 2025, Month: 1}
		if got := p.Label(); got != "January 2025" {
			t.Errorf("expected 'January 2025', got %q", got)
		}
	})

	t.Run("valid", func(t *testing.T) {
		if !(Period{Year: 2025, Month: 12}).Valid() {
			t.Error("expected December 2025 to be valid")
		}
		if (Period{Year: 2025, Month: 13}).Valid() {
			t.Error("expected month 13 to be invalid")
		}
		if (Period{Year: 2025, Month: 0}).Valid() {
			t.Error("expected month 0 to be invalid")
		}
	})
}

func TestDivRoundHalfUp(t *testing.T) {
	cases := []struct {
		name  string
		total int64
		count int64
		want  int64
	}{
		{"exact_division", 120000, 12, 10000},
		{"rounds_down_below_half", 100000, 12, 8333},
		{"rounds_up_at_half", 100, 8, 13},
		{"single_part", 99999, 1, 99999},
		{"zero_count", 100, 0, 0},
		{"negative_total", -100000, 12, -8333},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DivRoundHalfUp(tc.total, tc.count); got != tc.want {
				t.Errorf("DivRoundHalfUp(%d, %d) = %d, want %d", tc.total, tc.count, got, tc.want)
			}
		})
	}
}
