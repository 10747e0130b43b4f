package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"splitnest/internal/cache"
	apperrors "splitnest/internal/errors"
	"splitnest/internal/models"
	"splitnest/internal/schedule"
)

// dashboardService aggregates resolved amounts across all household
// members into income/expense/savings totals and the pairwise settlement.
// Results are cached per (household, period) with whole-household
// invalidation, since any expense mutation can shift the totals.
type dashboardService struct {
	db         *gorm.DB
	households HouseholdServicer
	salaries   SalaryServicer
	overviews  *cache.HouseholdCache[*Overview]
}

// NewDashboardService creates a new DashboardServicer. The overview cache
// is shared with the mutating services, which invalidate through it.
func NewDashboardService(db *gorm.DB, households HouseholdServicer, salaries SalaryServicer, overviews *cache.HouseholdCache[*Overview]) DashboardServicer {
	return &dashboardService{
		db:         db,
		households: households,
		salaries:   salaries,
		overviews:  overviews,
	}
}

// ComputeOverview returns the household overview for the period. Yearly
// mode computes all twelve months of the year and averages the totals.
func (s *dashboardService) ComputeOverview(ctx context.Context, userID uint, at schedule.Period, mode ViewMode) (*Overview, error) {
	if !at.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be 1-12")
	}
	member, err := s.households.RequireMembership(userID)
	if err != nil {
		return nil, err
	}

	if mode == ViewModeYearly {
		return s.computeYearly(ctx, member.HouseholdID, at.Year)
	}
	return s.computeMonthly(member.HouseholdID, at)
}

// computeMonthly builds (or serves from cache) the overview for one period.
func (s *dashboardService) computeMonthly(householdID uint, at schedule.Period) (*Overview, error) {
	key := fmt.Sprintf("%d-%02d", at.Year, at.Month)
	if cached, ok := s.overviews.Get(householdID, key); ok {
		return cached, nil
	}

	overview, err := s.buildOverview(householdID, at)
	if err != nil {
		return nil, err
	}

	s.overviews.Set(householdID, key, overview)
	return overview, nil
}

// memberBalance accumulates one member's settlement inputs.
type memberBalance struct {
	fronted int64 // shared expense amounts the member paid for
}

func (s *dashboardService) buildOverview(householdID uint, at schedule.Period) (*Overview, error) {
	members, err := s.households.GetMembers(householdID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, apperrors.ErrHouseholdNotFound
	}

	var expenses []models.Expense
	if err := s.db.Where("household_id = ?", householdID).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	expenseIDs := make([]uint, 0, len(expenses))
	for _, e := range expenses {
		expenseIDs = append(expenseIDs, e.ID)
	}
	var overrideRows []models.RecurringOverride
	if len(expenseIDs) > 0 {
		err = s.db.Where("expense_id IN ? AND year = ? AND month = ?", expenseIDs, at.Year, at.Month).
			Find(&overrideRows).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	overrides := make(map[uint]*models.RecurringOverride, len(overrideRows))
	for i := range overrideRows {
		overrides[overrideRows[i].ExpenseID] = &overrideRows[i]
	}

	overview := &Overview{Year: at.Year, Month: at.Month}

	personalTotals := make(map[uint]int64, len(members))
	balances := make(map[uint]*memberBalance, len(members))
	for _, m := range members {
		balances[m.UserID] = &memberBalance{}
	}

	var sharedTotal int64
	for i := range expenses {
		e := &expenses[i]
		plan, err := schedule.PlanOf(e)
		if err != nil {
			return nil, err
		}
		nominal, ok := schedule.Resolve(plan, at)
		if !ok {
			continue
		}
		resolved, skipped := schedule.ApplyOverride(nominal, overrides[e.ID])
		if skipped {
			continue
		}

		switch e.Type {
		case models.ExpenseTypePersonal:
			personalTotals[e.CreatedByID] += resolved
		case models.ExpenseTypeShared:
			sharedTotal += resolved
			if e.PaidByUserID != nil {
				if b, known := balances[*e.PaidByUserID]; known {
					b.fronted += resolved
				}
			}
		}
	}

	memberCount := int64(len(members))
	fairShare := schedule.DivRoundHalfUp(sharedTotal, memberCount)

	var savings []models.Saving
	err = s.db.Where("household_id = ? AND year = ? AND month = ?", householdID, at.Year, at.Month).
		Find(&savings).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	savingTotals := make(map[uint]*MemberSavings, len(members))
	for _, m := range members {
		savingTotals[m.UserID] = &MemberSavings{UserID: m.UserID}
	}
	var savingsTotal int64
	for _, sv := range savings {
		entry, known := savingTotals[sv.UserID]
		if !known {
			continue
		}
		if sv.Type == models.SavingTypeShared {
			entry.Shared += sv.Amount
		} else {
			entry.Personal += sv.Amount
		}
		savingsTotal += sv.Amount
	}

	var personalSum int64
	for _, m := range members {
		income, err := s.salaries.EffectiveSalary(m.UserID, at)
		if err != nil {
			return nil, err
		}
		personal := personalTotals[m.UserID]
		personalSum += personal
		memberSavings := savingTotals[m.UserID]

		overview.Income = append(overview.Income, MemberIncome{
			UserID: m.UserID,
			Name:   m.User.FirstName,
			Amount: income,
		})
		overview.PersonalExpenses = append(overview.PersonalExpenses, MemberExpense{
			UserID: m.UserID,
			Amount: personal,
		})
		overview.Savings = append(overview.Savings, *memberSavings)
		overview.RemainingBudget = append(overview.RemainingBudget, MemberExpense{
			UserID: m.UserID,
			Amount: income - personal - fairShare - memberSavings.Personal - memberSavings.Shared,
		})
	}

	overview.SharedTotal = sharedTotal
	overview.ExpenseTotal = personalSum + sharedTotal
	overview.FairShare = fairShare
	overview.SavingsTotal = savingsTotal
	overview.Settlement = settlementInstruction(members, balances, fairShare)

	if overview.Settlement != nil {
		settled, err := s.isSettled(householdID, at, overview.Settlement.Amount)
		if err != nil {
			return nil, err
		}
		overview.IsSettled = settled
	}

	return overview, nil
}

// settlementInstruction nets each member's fronted shared costs against
// their fair share and pairs the largest creditor with the largest debtor.
// For a two-member household this is the direct single transfer. Ties are
// broken by the lowest user ID so the instruction is deterministic.
func settlementInstruction(members []models.HouseholdMember, balances map[uint]*memberBalance, fairShare int64) *SettlementInstruction {
	var creditor, debtor uint
	var maxCredit, maxDebt int64

	for _, m := range members {
		net := balances[m.UserID].fronted - fairShare
		switch {
		case net > maxCredit || (net == maxCredit && net > 0 && m.UserID < creditor):
			creditor = m.UserID
			maxCredit = net
		case -net > maxDebt || (-net == maxDebt && net < 0 && m.UserID < debtor):
			debtor = m.UserID
			maxDebt = -net
		}
	}

	if maxCredit <= 0 || maxDebt <= 0 {
		return nil
	}

	amount := maxCredit
	if maxDebt < amount {
		amount = maxDebt
	}
	return &SettlementInstruction{
		OwedByUserID: debtor,
		OwedToUserID: creditor,
		Amount:       amount,
	}
}

// isSettled reports whether a settlement record covering the owed amount
// exists for the period.
func (s *dashboardService) isSettled(householdID uint, at schedule.Period, owed int64) (bool, error) {
	var settlement models.Settlement
	err := s.db.Where("household_id = ? AND year = ? AND month = ?", householdID, at.Year, at.Month).
		First(&settlement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return settlement.Amount >= owed, nil
}

// computeYearly fans the twelve monthly computations out and averages the
// totals. Settling is a per-month action, so no settlement instruction is
// emitted in yearly mode.
func (s *dashboardService) computeYearly(ctx context.Context, householdID uint, year int) (*Overview, error) {
	monthly := make([]*Overview, 12)

	g, _ := errgroup.WithContext(ctx)
	for month := 1; month <= 12; month++ {
		month := month
		g.Go(func() error {
			ov, err := s.computeMonthly(householdID, schedule.Period{Year: year, Month: month})
			if err != nil {
				return err
			}
			monthly[month-1] = ov
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	avg := &Overview{Year: year, Month: 0}
	incomes := make(map[uint]*MemberIncome)
	personals := make(map[uint]*MemberExpense)
	remainings := make(map[uint]*MemberExpense)
	savings := make(map[uint]*MemberSavings)
	var order []uint

	for _, ov := range monthly {
		avg.SharedTotal += ov.SharedTotal
		avg.ExpenseTotal += ov.ExpenseTotal
		avg.FairShare += ov.FairShare
		avg.SavingsTotal += ov.SavingsTotal
		for _, in := range ov.Income {
			if _, seen := incomes[in.UserID]; !seen {
				incomes[in.UserID] = &MemberIncome{UserID: in.UserID, Name: in.Name}
				personals[in.UserID] = &MemberExpense{UserID: in.UserID}
				remainings[in.UserID] = &MemberExpense{UserID: in.UserID}
				savings[in.UserID] = &MemberSavings{UserID: in.UserID}
				order = append(order, in.UserID)
			}
			incomes[in.UserID].Amount += in.Amount
		}
		for _, pe := range ov.PersonalExpenses {
			if entry, seen := personals[pe.UserID]; seen {
				entry.Amount += pe.Amount
			}
		}
		for _, rb := range ov.RemainingBudget {
			if entry, seen := remainings[rb.UserID]; seen {
				entry.Amount += rb.Amount
			}
		}
		for _, sv := range ov.Savings {
			if entry, seen := savings[sv.UserID]; seen {
				entry.Personal += sv.Personal
				entry.Shared += sv.Shared
			}
		}
	}

	avg.SharedTotal = schedule.DivRoundHalfUp(avg.SharedTotal, 12)
	avg.ExpenseTotal = schedule.DivRoundHalfUp(avg.ExpenseTotal, 12)
	avg.FairShare = schedule.DivRoundHalfUp(avg.FairShare, 12)
	avg.SavingsTotal = schedule.DivRoundHalfUp(avg.SavingsTotal, 12)
	for _, userID := range order {
		avg.Income = append(avg.Income, MemberIncome{
			UserID: userID,
			Name:   incomes[userID].Name,
			Amount: schedule.DivRoundHalfUp(incomes[userID].Amount, 12),
		})
		avg.PersonalExpenses = append(avg.PersonalExpenses, MemberExpense{
			UserID: userID,
			Amount: schedule.DivRoundHalfUp(personals[userID].Amount, 12),
		})
		avg.RemainingBudget = append(avg.RemainingBudget, MemberExpense{
			UserID: userID,
			Amount: schedule.DivRoundHalfUp(remainings[userID].Amount, 12),
		})
		avg.Savings = append(avg.Savings, MemberSavings{
			UserID:   userID,
			Personal: schedule.DivRoundHalfUp(savings[userID].Personal, 12),
			Shared:   schedule.DivRoundHalfUp(savings[userID].Shared, 12),
		})
	}
	return avg, nil
}

// MarkSettlementPaid persists the period's settlement. It is rejected with
// a conflict when a settlement already exists; settling is the terminal
// action for a period's balance.
func (s *dashboardService) MarkSettlementPaid(userID uint, at schedule.Period) (*models.Settlement, error) {
	member, err := s.households.RequireMembership(userID)
	if err != nil {
		return nil, err
	}

	var existing models.Settlement
	err = s.db.Where("household_id = ? AND year = ? AND month = ?", member.HouseholdID, at.Year, at.Month).
		First(&existing).Error
	if err == nil {
		return nil, apperrors.ErrAlreadySettled
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	overview, err := s.buildOverview(member.HouseholdID, at)
	if err != nil {
		return nil, err
	}
	if overview.Settlement == nil {
		return nil, apperrors.ErrNothingToSettle
	}

	settlement := &models.Settlement{
		HouseholdID:  member.HouseholdID,
		Year:         at.Year,
		Month:        at.Month,
		Amount:       overview.Settlement.Amount,
		PaidByUserID: overview.Settlement.OwedByUserID,
		PaidToUserID: overview.Settlement.OwedToUserID,
	}
	if err := s.db.Create(settlement).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.overviews.InvalidateHousehold(member.HouseholdID)
	return settlement, nil
}
