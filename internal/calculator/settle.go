package calculator

import (
	"slices"

	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/money"
)

// party is a creditor or debtor with the amount still to be settled
// (always positive, for debtors too).
type party struct {
	id        string
	remaining money.Cents
}

// Resolve converts net balances into directional payments that zero every balance.
//
// Algorithm (greedy largest-pair matching):
//   - Reject the input if balances do not sum to zero within money.Epsilon
//   - Split members into creditors (balance > 0) and debtors (balance < 0)
//   - Repeatedly pair the largest creditor with the largest debtor, ties broken
//     by ascending member id, and transfer min(credit, debt) from debtor to creditor
//   - Drop whoever reaches zero; stop when either side is empty
//
// Balances are exact cents, so the partition uses the sign rather than a
// ±money.Epsilon band: a member at exactly one cent still gets a one-cent transfer.
//
// Each step settles at least one participant, so at most (nonzero - 1)
// transactions are emitted. This is a heuristic: it is not guaranteed to find
// the globally smallest set of transactions for every input.
func Resolve(balances map[string]money.Cents) ([]models.SettlementTransaction, error) {
	var (
		sum       money.Cents
		creditors []party
		debtors   []party
	)
	for id, bal := range balances {
		sum += bal
		switch {
		case bal > 0:
			creditors = append(creditors, party{id: id, remaining: bal})
		case bal < 0:
			debtors = append(debtors, party{id: id, remaining: -bal})
		}
	}
	if sum.Abs() > money.Epsilon {
		return nil, &InconsistentLedgerError{Sum: sum}
	}

	txns := make([]models.SettlementTransaction, 0, max(len(creditors), len(debtors)))
	for len(creditors) > 0 && len(debtors) > 0 {
		ci, di := largest(creditors), largest(debtors)
		amount := min(creditors[ci].remaining, debtors[di].remaining)

		txns = append(txns, models.SettlementTransaction{
			From:   debtors[di].id,
			To:     creditors[ci].id,
			Amount: amount,
		})

		creditors[ci].remaining -= amount
		debtors[di].remaining -= amount
		if creditors[ci].remaining == 0 {
			creditors = slices.Delete(creditors, ci, ci+1)
		}
		if debtors[di].remaining == 0 {
			debtors = slices.Delete(debtors, di, di+1)
		}
	}
	return txns, nil
}

// largest returns the index of the party with the most remaining,
// preferring the smaller member id on ties.
func largest(parties []party) int {
	best := 0
	for i := 1; i < len(parties); i++ {
		p, b := parties[i], parties[best]
		if p.remaining > b.remaining || (p.remaining == b.remaining && p.id < b.id) {
			best = i
		}
	}
	return best
}
