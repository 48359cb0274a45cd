package models

import (
	"time"

	"github.com/mmynk/tripledger/internal/money"
)

// SplitType selects how an expense amount is attributed to members.
type SplitType string

const (
	// SplitEqual divides the amount evenly across the full roster at creation time.
	SplitEqual SplitType = "EQUAL"
	// SplitCustom uses caller-supplied per-member amounts.
	SplitCustom SplitType = "CUSTOM"
)

// Valid reports whether t is a known split type.
func (t SplitType) Valid() bool {
	return t == SplitEqual || t == SplitCustom
}

// Category is the closed set of expense categories.
type Category string

const (
	CategoryAccommodation  Category = "ACCOMMODATION"
	CategoryTransportation Category = "TRANSPORTATION"
	CategoryFood           Category = "FOOD"
	CategoryActivities     Category = "ACTIVITIES"
	CategoryShopping       Category = "SHOPPING"
	CategoryOther          Category = "OTHER"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryAccommodation,
	CategoryTransportation,
	CategoryFood,
	CategoryActivities,
	CategoryShopping,
	CategoryOther,
}

// Valid reports whether c is one of the closed set of categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense represents one payment made by a member on behalf of the group.
// Expenses are immutable once read by the ledger engine.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// TripID is the trip this expense belongs to.
	TripID string

	// Description is a free-text label (e.g., "Dinner at Ramiro").
	Description string

	// Amount is the total paid, always strictly positive.
	Amount money.Cents

	// Category is one of Categories.
	Category Category

	// PayerID is the member who paid the full amount.
	PayerID string

	// SplitType records how Splits were produced.
	SplitType SplitType

	// Splits attribute the amount to members. Their sum equals Amount.
	// For SplitEqual they were resolved against the roster at creation time.
	Splits []ExpenseSplit

	// OccurredAt is when the expense happened (zero if unknown).
	OccurredAt time.Time

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// ExpenseSplit is the portion of one expense attributed to one member.
type ExpenseSplit struct {
	MemberID string
	Amount   money.Cents
}
