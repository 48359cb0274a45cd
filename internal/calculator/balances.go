package calculator

import (
	"slices"
	"strings"

	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/money"
)

// ComputeBalances folds a trip's expenses into per-member paid/owed/net totals.
//
// Algorithm:
//   - Every roster member starts at zero, so members without expenses still appear
//   - For each expense: payer paid +amount, each split member owes their split
//   - balance = paid - owed (exact in cents)
//
// Member ids that appear in expenses but not in the roster still get an entry,
// which keeps the sum of all balances at zero.
func ComputeBalances(expenses []models.Expense, members []models.Member) map[string]models.MemberBalance {
	balances := make(map[string]*models.MemberBalance, len(members))
	entry := func(id string) *models.MemberBalance {
		bal, exists := balances[id]
		if !exists {
			bal = &models.MemberBalance{MemberID: id}
			balances[id] = bal
		}
		return bal
	}

	for _, m := range members {
		entry(m.ID)
	}

	for _, e := range expenses {
		entry(e.PayerID).Paid += e.Amount
		for _, s := range e.Splits {
			entry(s.MemberID).Owed += s.Amount
		}
	}

	out := make(map[string]models.MemberBalance, len(balances))
	for id, bal := range balances {
		bal.Balance = bal.Paid - bal.Owed
		out[id] = *bal
	}
	return out
}

// SortBalances returns the balances ordered by ascending member id.
func SortBalances(balances map[string]models.MemberBalance) []models.MemberBalance {
	sorted := make([]models.MemberBalance, 0, len(balances))
	for _, bal := range balances {
		sorted = append(sorted, bal)
	}
	slices.SortFunc(sorted, func(a, b models.MemberBalance) int {
		return strings.Compare(a.MemberID, b.MemberID)
	})
	return sorted
}

// NetBalances extracts the signed balance of every member, the input the
// settlement resolver works on.
func NetBalances(balances map[string]models.MemberBalance) map[string]money.Cents {
	net := make(map[string]money.Cents, len(balances))
	for id, bal := range balances {
		net[id] = bal.Balance
	}
	return net
}
