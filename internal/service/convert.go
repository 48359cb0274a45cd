package service

import (
	"fmt"

	"github.com/mmynk/tripledger/internal/calculator"
	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/money"
	"github.com/mmynk/tripledger/pkg/api"
)

func toMembers(in []api.Member) []models.Member {
	members := make([]models.Member, len(in))
	for i, m := range in {
		members[i] = models.Member{ID: m.ID, DisplayName: m.DisplayName}
	}
	return members
}

func fromMembers(in []models.Member) []api.Member {
	members := make([]api.Member, len(in))
	for i, m := range in {
		members[i] = api.Member{ID: m.ID, DisplayName: m.DisplayName}
	}
	return members
}

func fromTrip(trip *models.Trip) *api.Trip {
	return &api.Trip{
		ID:        trip.ID,
		Name:      trip.Name,
		Members:   fromMembers(trip.Members),
		CreatedAt: trip.CreatedAt,
	}
}

// toExpense converts a wire expense; amounts are rounded to whole cents.
// Amounts outside the money range fail with a FieldError naming the field.
func toExpense(in api.Expense) (models.Expense, error) {
	amount, err := money.FromFloat(in.Amount)
	if err != nil {
		return models.Expense{}, &calculator.FieldError{Field: "amount", Err: err}
	}
	expense := models.Expense{
		ID:          in.ID,
		TripID:      in.TripID,
		Description: in.Description,
		Amount:      amount,
		Category:    models.Category(in.Category),
		PayerID:     in.PayerID,
		SplitType:   models.SplitType(in.SplitType),
		CreatedAt:   in.CreatedAt,
	}
	if in.OccurredAt != nil {
		expense.OccurredAt = in.OccurredAt.UTC()
	}
	if len(in.Splits) > 0 {
		expense.Splits = make([]models.ExpenseSplit, len(in.Splits))
		for i, s := range in.Splits {
			amount, err := money.FromFloat(s.Amount)
			if err != nil {
				return models.Expense{}, &calculator.FieldError{Field: fmt.Sprintf("splits[%d].amount", i), Err: err}
			}
			expense.Splits[i] = models.ExpenseSplit{MemberID: s.MemberID, Amount: amount}
		}
	}
	return expense, nil
}

func toExpenses(in []api.Expense) ([]models.Expense, error) {
	expenses := make([]models.Expense, len(in))
	for i, e := range in {
		expense, err := toExpense(e)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		expenses[i] = expense
	}
	return expenses, nil
}

func fromExpense(e *models.Expense) *api.Expense {
	out := &api.Expense{
		ID:          e.ID,
		TripID:      e.TripID,
		Description: e.Description,
		Amount:      e.Amount.Float64(),
		Category:    string(e.Category),
		PayerID:     e.PayerID,
		SplitType:   string(e.SplitType),
		Splits:      make([]api.Split, len(e.Splits)),
		CreatedAt:   e.CreatedAt,
	}
	if !e.OccurredAt.IsZero() {
		occurred := e.OccurredAt.UTC()
		out.OccurredAt = &occurred
	}
	for i, s := range e.Splits {
		out.Splits[i] = api.Split{MemberID: s.MemberID, Amount: s.Amount.Float64()}
	}
	return out
}

func fromSummary(summary *calculator.Summary) api.Summary {
	out := api.Summary{
		Balances:          make([]api.Balance, len(summary.Balances)),
		Settlements:       make([]api.Settlement, len(summary.Settlements)),
		CategoryTotals:    make(map[string]float64, len(summary.CategoryTotals)),
		CategoryBreakdown: []api.CategoryTotal{},
	}
	for i, b := range summary.Balances {
		out.Balances[i] = api.Balance{
			MemberID: b.MemberID,
			Paid:     b.Paid.Float64(),
			Owed:     b.Owed.Float64(),
			Balance:  b.Balance.Float64(),
		}
	}
	for i, s := range summary.Settlements {
		out.Settlements[i] = api.Settlement{From: s.From, To: s.To, Amount: s.Amount.Float64()}
	}
	for category, total := range summary.CategoryTotals {
		out.CategoryTotals[string(category)] = total.Amount.Float64()
	}
	for _, total := range calculator.SortCategoryTotals(summary.CategoryTotals) {
		out.CategoryBreakdown = append(out.CategoryBreakdown, api.CategoryTotal{
			Category: string(total.Category),
			Amount:   total.Amount.Float64(),
			Percent:  total.Percent,
		})
	}
	return out
}
