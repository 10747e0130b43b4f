package schedule

import "splitnest/internal/models"

// WindowMonths is how far the sliding timeline window extends on each side
// of the reference period for recurring plans.
const WindowMonths = 12

// Entry is one row of an expense timeline: an occurrence of the plan with
// overrides and payment state folded in. IsPast and IsCurrent are computed
// against the reference period at read time, never stored.
type Entry struct {
	Year       int                 `json:"year"`
	Month      int                 `json:"month"`
	Label      string              `json:"label"`
	Amount     int64               `json:"amount"`
	IsOverride bool                `json:"is_override"`
	IsSkipped  bool                `json:"is_skipped"`
	IsPast     bool                `json:"is_past"`
	IsCurrent  bool                `json:"is_current"`
	Status     models.PaymentState `json:"status"`
}

// PeriodKey identifies a period inside override/status lookup maps.
type PeriodKey struct {
	Year  int
	Month int
}

// BuildTimeline produces the ordered occurrence rows for a plan. Recurring
// plans get a sliding window of WindowMonths periods on either side of now
// (inclusive), restricted to periods where the plan occurs. One-time plans
// get their fixed schedule in full, regardless of now.
func BuildTimeline(
	plan Plan,
	overrides map[PeriodKey]*models.RecurringOverride,
	statuses map[PeriodKey]models.PaymentState,
	now Period,
) []Entry {
	var periods []Period
	switch p := plan.(type) {
	case OneTimeFull:
		periods = []Period{p.Start}
	case OneTimeInstallments:
		for i := 0; i < p.Count; i++ {
			periods = append(periods, p.Start.AddMonths(i*p.Step))
		}
	default:
		for i := -WindowMonths; i <= WindowMonths; i++ {
			candidate := now.AddMonths(i)
			if _, ok := Resolve(plan, candidate); ok {
				periods = append(periods, candidate)
			}
		}
	}

	entries := make([]Entry, 0, len(periods))
	for _, p := range periods {
		nominal, ok := Resolve(plan, p)
		if !ok {
			continue
		}
		key := PeriodKey{Year: p.Year, Month: p.Month}
		override := overrides[key]
		amount, skipped := ApplyOverride(nominal, override)

		status := models.PaymentStatePending
		if s, found := statuses[key]; found {
			status = s
		}

		entries = append(entries, Entry{
			Year:       p.Year,
			Month:      p.Month,
			Label:      p.Label(),
			Amount:     amount,
			IsOverride: override != nil && !skipped,
			IsSkipped:  skipped,
			IsPast:     p.Before(now),
			IsCurrent:  p == now,
			Status:     status,
		})
	}
	return entries
}

// WindowEnd returns the last period of the sliding timeline window for a
// recurring plan. Batch "all upcoming" override writes run from their
// starting period through this bound.
func WindowEnd(now Period) Period {
	return now.AddMonths(WindowMonths)
}
