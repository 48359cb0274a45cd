package models

import "github.com/mmynk/tripledger/internal/money"

// MemberBalance is a member's net position across a trip's expenses.
// Derived on every read; never persisted.
type MemberBalance struct {
	MemberID string

	// Paid is the total this member paid across all expenses.
	Paid money.Cents

	// Owed is the total of this member's splits across all expenses.
	Owed money.Cents

	// Balance is Paid - Owed. Positive = owed money by the group,
	// negative = owes money to the group.
	Balance money.Cents
}

// SettlementTransaction is a recommended one-way payment between two members.
// It is not tracked as paid or unpaid.
type SettlementTransaction struct {
	// From is the debtor who should pay.
	From string

	// To is the creditor who should receive.
	To string

	// Amount is always strictly positive.
	Amount money.Cents
}

// CategoryTotal is the spend for one category and its share of the grand total.
type CategoryTotal struct {
	Category Category
	Amount   money.Cents

	// Percent is the category's share of all spend, rounded to two decimals.
	Percent float64
}
