package calculator

import (
	"fmt"
	"slices"

	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/money"
)

// EqualSplit divides amount across every member of the roster.
//
// Members are ordered by ascending id. Every member but the last receives
// floor(amount/N) cents; the last member receives the exact remainder, so the
// splits always sum to amount.
func EqualSplit(amount money.Cents, members []models.Member) []models.ExpenseSplit {
	if len(members) == 0 {
		return nil
	}

	ids := models.MemberIDs(members)
	slices.Sort(ids)

	n := money.Cents(len(ids))
	share := amount / n
	splits := make([]models.ExpenseSplit, len(ids))
	for i, id := range ids {
		splits[i] = models.ExpenseSplit{MemberID: id, Amount: share}
	}
	splits[len(splits)-1].Amount = amount - share*(n-1)
	return splits
}

// ValidateExpense is the write-time check every new or edited expense goes through.
// It returns the expense as it should be stored:
//   - EQUAL: splits are (re)computed from the full roster; caller splits are ignored
//   - CUSTOM: splits are checked against the roster and the amount
//
// The input expense is not modified.
func ValidateExpense(expense models.Expense, members []models.Member) (models.Expense, error) {
	roster, err := rosterIndex(members)
	if err != nil {
		return models.Expense{}, err
	}
	if err := checkHeader(&expense, roster); err != nil {
		return models.Expense{}, err
	}

	switch expense.SplitType {
	case models.SplitEqual:
		expense.Splits = EqualSplit(expense.Amount, members)
	case models.SplitCustom:
		splits, err := checkSplits(&expense, roster)
		if err != nil {
			return models.Expense{}, err
		}
		expense.Splits = splits
	default:
		return models.Expense{}, &FieldError{Field: "splitType", Err: ErrInvalidSplitType}
	}
	return expense, nil
}

// ValidateResolved checks an expense whose splits were already resolved,
// as read back from a snapshot. EQUAL splits are kept as stored, never
// re-derived from the current roster.
func ValidateResolved(expense models.Expense, members []models.Member) (models.Expense, error) {
	roster, err := rosterIndex(members)
	if err != nil {
		return models.Expense{}, err
	}
	if err := checkHeader(&expense, roster); err != nil {
		return models.Expense{}, err
	}
	if !expense.SplitType.Valid() {
		return models.Expense{}, &FieldError{Field: "splitType", Err: ErrInvalidSplitType}
	}
	splits, err := checkSplits(&expense, roster)
	if err != nil {
		return models.Expense{}, err
	}
	expense.Splits = splits
	return expense, nil
}

// ResolveSnapshot validates a whole snapshot of expenses against a roster.
// EQUAL expenses arriving without splits are resolved against this roster;
// everything else is checked as already resolved. The roster is checked even
// when there are no expenses. The first failure is returned, wrapped with the
// expense id.
func ResolveSnapshot(expenses []models.Expense, members []models.Member) ([]models.Expense, error) {
	if err := CheckRoster(members); err != nil {
		return nil, err
	}

	resolved := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		var (
			out models.Expense
			err error
		)
		if e.SplitType == models.SplitEqual && len(e.Splits) == 0 {
			out, err = ValidateExpense(e, members)
		} else {
			out, err = ValidateResolved(e, members)
		}
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		resolved = append(resolved, out)
	}
	if err := CheckLedgerTotal(resolved); err != nil {
		return nil, err
	}
	return resolved, nil
}

// CheckLedgerTotal rejects a set of validated expenses whose amounts add up
// past money.MaxTotal.
func CheckLedgerTotal(expenses []models.Expense) error {
	var total money.Cents
	for _, e := range expenses {
		total += e.Amount
		if total > money.MaxTotal {
			return fmt.Errorf("expense %s: %w", e.ID, &FieldError{Field: "amount", Err: ErrLedgerTooLarge})
		}
	}
	return nil
}

// CheckRoster reports an empty roster or a member listed twice.
func CheckRoster(members []models.Member) error {
	_, err := rosterIndex(members)
	return err
}

func rosterIndex(members []models.Member) (map[string]struct{}, error) {
	if len(members) == 0 {
		return nil, ErrNoMembers
	}
	roster := make(map[string]struct{}, len(members))
	for _, m := range members {
		if _, dup := roster[m.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateMember, m.ID)
		}
		roster[m.ID] = struct{}{}
	}
	return roster, nil
}

func checkHeader(expense *models.Expense, roster map[string]struct{}) error {
	if !expense.Amount.Positive() {
		return &FieldError{Field: "amount", Err: ErrInvalidAmount}
	}
	if expense.Amount > money.MaxAmount {
		return &FieldError{Field: "amount", Err: money.ErrOutOfRange}
	}
	if !expense.Category.Valid() {
		return &FieldError{Field: "category", Err: fmt.Errorf("%w: %q", ErrInvalidCategory, expense.Category)}
	}
	if _, ok := roster[expense.PayerID]; !ok {
		return &UnknownMemberError{MemberID: expense.PayerID, Field: "payerId"}
	}
	return nil
}

// checkSplits verifies the splits of expense and returns a copy of them.
// A discrepancy within money.Epsilon is absorbed by the largest split (ties go
// to the highest member id, matching the equal-split remainder rule) so that
// stored splits always sum to the amount exactly.
func checkSplits(expense *models.Expense, roster map[string]struct{}) ([]models.ExpenseSplit, error) {
	if len(expense.Splits) == 0 {
		return nil, &FieldError{Field: "splits", Err: ErrEmptySplits}
	}

	splits := slices.Clone(expense.Splits)
	seen := make(map[string]struct{}, len(splits))
	var sum money.Cents
	largest := 0
	for i, s := range splits {
		field := fmt.Sprintf("splits[%d]", i)
		if _, ok := roster[s.MemberID]; !ok {
			return nil, &UnknownMemberError{MemberID: s.MemberID, Field: field + ".memberId"}
		}
		if _, dup := seen[s.MemberID]; dup {
			return nil, &FieldError{Field: field + ".memberId", Err: ErrDuplicateSplit}
		}
		seen[s.MemberID] = struct{}{}
		if s.Amount < 0 {
			return nil, &FieldError{Field: field + ".amount", Err: ErrNegativeSplit}
		}
		if s.Amount > money.MaxAmount {
			return nil, &FieldError{Field: field + ".amount", Err: money.ErrOutOfRange}
		}
		// Past amount+Epsilon the mismatch is certain; stop adding.
		if sum <= expense.Amount+money.Epsilon {
			sum += s.Amount
		}

		best := splits[largest]
		if s.Amount > best.Amount || (s.Amount == best.Amount && s.MemberID > best.MemberID) {
			largest = i
		}
	}

	if !money.Within(sum, expense.Amount, money.Epsilon) {
		return nil, &SplitMismatchError{Expected: expense.Amount, Actual: sum}
	}
	splits[largest].Amount += expense.Amount - sum
	return splits, nil
}
