package calculator

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/money"
)

var hundred = decimal.NewFromInt(100)

// ComputeCategoryTotals rolls spend up by category, with each category's
// percentage of the grand total. Empty input yields an empty map.
func ComputeCategoryTotals(expenses []models.Expense) map[models.Category]models.CategoryTotal {
	totals := make(map[models.Category]models.CategoryTotal)
	var grand money.Cents
	for _, e := range expenses {
		t := totals[e.Category]
		t.Category = e.Category
		t.Amount += e.Amount
		totals[e.Category] = t
		grand += e.Amount
	}

	for cat, t := range totals {
		t.Percent = percentOf(t.Amount, grand)
		totals[cat] = t
	}
	return totals
}

// SortCategoryTotals orders totals by descending amount, then category name.
func SortCategoryTotals(totals map[models.Category]models.CategoryTotal) []models.CategoryTotal {
	sorted := make([]models.CategoryTotal, 0, len(totals))
	for _, t := range totals {
		sorted = append(sorted, t)
	}
	slices.SortFunc(sorted, func(a, b models.CategoryTotal) int {
		if a.Amount != b.Amount {
			if a.Amount > b.Amount {
				return -1
			}
			return 1
		}
		return strings.Compare(string(a.Category), string(b.Category))
	})
	return sorted
}

func percentOf(part, whole money.Cents) float64 {
	if whole == 0 {
		return 0
	}
	pct := part.Decimal().Mul(hundred).DivRound(whole.Decimal(), 2)
	return pct.InexactFloat64()
}
