package calculator

import (
	"errors"
	"fmt"

	"github.com/mmynk/tripledger/internal/money"
)

var (
	ErrInvalidAmount      = errors.New("amount must be strictly positive")
	ErrInvalidCategory    = errors.New("unknown category")
	ErrInvalidSplitType   = errors.New("unknown split type")
	ErrEmptySplits        = errors.New("expense must have at least one split")
	ErrNegativeSplit      = errors.New("split amount cannot be negative")
	ErrDuplicateSplit     = errors.New("member appears in more than one split")
	ErrNoMembers          = errors.New("trip has no members")
	ErrDuplicateMember    = errors.New("member listed more than once in roster")
	ErrInconsistentLedger = errors.New("inconsistent ledger")
	ErrLedgerTooLarge     = errors.New("expense total exceeds ledger limit")
)

// FieldError attaches the offending request field to a validation failure.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// SplitMismatchError reports custom splits that do not add up to the expense amount.
type SplitMismatchError struct {
	Expected money.Cents
	Actual   money.Cents
}

func (e *SplitMismatchError) Error() string {
	return fmt.Sprintf("split amounts sum to %s, expected %s", e.Actual, e.Expected)
}

// UnknownMemberError reports a payer or split referencing someone who is not on the roster.
type UnknownMemberError struct {
	MemberID string
	Field    string
}

func (e *UnknownMemberError) Error() string {
	return fmt.Sprintf("%s: %q is not a trip member", e.Field, e.MemberID)
}

// InconsistentLedgerError means the balances handed to the resolver do not
// net to zero. Every write goes through the validator, so this signals a bug
// upstream rather than bad user input.
type InconsistentLedgerError struct {
	Sum money.Cents
}

func (e *InconsistentLedgerError) Error() string {
	return fmt.Sprintf("%v: balances sum to %s", ErrInconsistentLedger, e.Sum)
}

func (e *InconsistentLedgerError) Unwrap() error {
	return ErrInconsistentLedger
}

// IsValidationError reports whether err is an expected, user-facing validation
// failure (as opposed to an internal fault).
func IsValidationError(err error) bool {
	if err == nil || errors.Is(err, ErrInconsistentLedger) {
		return false
	}
	var (
		fieldErr    *FieldError
		mismatchErr *SplitMismatchError
		unknownErr  *UnknownMemberError
	)
	return errors.As(err, &fieldErr) ||
		errors.As(err, &mismatchErr) ||
		errors.As(err, &unknownErr) ||
		errors.Is(err, ErrNoMembers) ||
		errors.Is(err, ErrDuplicateMember)
}

// FieldOf returns the request field a validation error refers to, or "" if none.
func FieldOf(err error) string {
	var unknownErr *UnknownMemberError
	if errors.As(err, &unknownErr) {
		return unknownErr.Field
	}
	var mismatchErr *SplitMismatchError
	if errors.As(err, &mismatchErr) {
		return "splits"
	}
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Field
	}
	if errors.Is(err, ErrNoMembers) || errors.Is(err, ErrDuplicateMember) {
		return "members"
	}
	return ""
}
