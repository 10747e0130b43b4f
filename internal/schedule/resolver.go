package schedule

import "splitnest/internal/models"

// Resolve computes the nominal amount an expense plan costs in the given
// period. The second return value is false when the plan has no occurrence
// in that period; a zero amount with true is a real occurrence (e.g. a
// skipped one), distinct from "not applicable".
func Resolve(plan Plan, at Period) (int64, bool) {
	switch p := plan.(type) {
	case Monthly:
		return p.Amount, true

	case YearlyFull:
		if at.Month != p.PaymentMonth {
			return 0, false
		}
		return p.Amount, true

	case YearlyInstallments:
		// Installments recur cyclically: any month whose offset from the
		// anchor is a multiple of the step is an occurrence, every year.
		offset := ((at.Month-p.AnchorMonth)%12 + 12) % 12
		if p.Step <= 0 || offset%p.Step != 0 {
			return 0, false
		}
		return DivRoundHalfUp(p.Amount, int64(p.Count)), true

	case OneTimeFull:
		if at != p.Start {
			return 0, false
		}
		return p.Amount, true

	case OneTimeInstallments:
		diff := at.Index() - p.Start.Index()
		if diff < 0 || p.Step <= 0 || diff%p.Step != 0 || diff/p.Step >= p.Count {
			return 0, false
		}
		return DivRoundHalfUp(p.Amount, int64(p.Count)), true
	}
	return 0, false
}

// ApplyOverride applies a per-period override to a nominal amount. A nil
// override leaves the nominal amount untouched. A skip override forces the
// resolved amount to zero regardless of its stored amount; the second
// return value surfaces the skip to the caller.
func ApplyOverride(nominal int64, override *models.RecurringOverride) (int64, bool) {
	if override == nil {
		return nominal, false
	}
	if override.Skipped {
		return 0, true
	}
	return override.Amount, false
}
