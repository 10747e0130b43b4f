// Package schedule implements the expense occurrence engine: payment-plan
// resolution, per-period overrides, and timeline construction. Everything
// here is a pure function of an explicitly passed reference period so the
// engine stays deterministic and testable.
package schedule

import (
	"fmt"
	"time"
)

// Period addresses a calendar month: Month is 1-12, Year is four digits.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// Index maps the period onto a continuous month axis so periods can be
// compared and offset with plain integer arithmetic.
func (p Period) Index() int {
	return p.Year*12 + p.Month - 1
}

// AddMonths returns the period n months after p (n may be negative).
func (p Period) AddMonths(n int) Period {
	idx := p.Index() + n
	year := idx / 12
	month := idx%12 + 1
	if month <= 0 {
		month += 12
		year--
	}
	return Period{Year: year, Month: month}
}

// Before reports whether p is strictly earlier than q.
func (p Period) Before(q Period) bool { return p.Index() < q.Index() }

// After reports whether p is strictly later than q.
func (p Period) After(q Period) bool { return p.Index() > q.Index() }

// Label formats the period for display, e.g. "January 2025".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", time.Month(p.Month).String(), p.Year)
}

// Valid reports whether the month is in 1-12 and the year is plausible.
func (p Period) Valid() bool {
	return p.Month >= 1 && p.Month <= 12 && p.Year >= 1000 && p.Year <= 9999
}

// DivRoundHalfUp divides total cents into count parts, rounding half up.
// This is the single rounding rule used for installment amounts and
// aggregate averages.
func DivRoundHalfUp(total int64, count int64) int64 {
	if count == 0 {
		return 0
	}
	if total >= 0 {
		return (total + count/2) / count
	}
	return -((-total + count/2) / count)
}
