package calculator

import (
	"fmt"

	"github.com/mmynk/tripledger/internal/models"
)

// Summary is everything the presentation layer needs for one trip snapshot.
type Summary struct {
	// Balances has one entry per member, ordered by member id.
	Balances []models.MemberBalance

	// Settlements are the recommended payments, in the order the resolver chose them.
	Settlements []models.SettlementTransaction

	// CategoryTotals is keyed by category; empty when there are no expenses.
	CategoryTotals map[models.Category]models.CategoryTotal
}

// Summarize runs the read-time pipeline over already validated expenses:
// balances, then settlements, plus the category rollup.
// The only possible error wraps ErrInconsistentLedger.
func Summarize(expenses []models.Expense, members []models.Member) (*Summary, error) {
	balances := ComputeBalances(expenses, members)

	settlements, err := Resolve(NetBalances(balances))
	if err != nil {
		return nil, fmt.Errorf("resolve settlements: %w", err)
	}

	return &Summary{
		Balances:       SortBalances(balances),
		Settlements:    settlements,
		CategoryTotals: ComputeCategoryTotals(expenses),
	}, nil
}
